//go:build prod

package database

import (
	"log"
	"os"
	"path/filepath"
)

// GetDefaultDBPath returns the database path for release builds: the user's
// config directory, falling back to the working directory.
func GetDefaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("warning: failed to get user config dir: %v, using fallback", err)
		return "chronicle.db"
	}

	appDir := filepath.Join(configDir, "chronicle")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		log.Printf("warning: failed to create app config dir: %v, using fallback", err)
		return "chronicle.db"
	}

	return filepath.Join(appDir, "chronicle.db")
}

func IsDevelopment() bool {
	return false
}
