package models

import "time"

// GenerationRecord is a saved changelog run. Written only after a run
// succeeds; failed runs leave no trace.
type GenerationRecord struct {
	ID          uint   `gorm:"primaryKey"`
	SessionKey  string `gorm:"size:64;not null;uniqueIndex"`
	RepoPath    string `gorm:"size:512;not null"`
	CommitCount int    `gorm:"not null"`
	NewestHash  string `gorm:"size:64"`
	OldestHash  string `gorm:"size:64"`
	Provider    string `gorm:"size:50;not null"`
	ModelKey    string `gorm:"size:255"`
	Format      string `gorm:"size:16;not null"`
	Changelog   string `gorm:"type:text;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
