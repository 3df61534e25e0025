//go:build !prod

package database

// GetDefaultDBPath returns the database path for development mode: the
// working directory, for easy inspection while hacking.
func GetDefaultDBPath() string {
	return "chronicle.db"
}

func IsDevelopment() bool {
	return true
}
