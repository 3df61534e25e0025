package models

import "time"

// CommitRecord is one commit as read from the repository. Records are
// immutable after fetching; later stages only read them.
type CommitRecord struct {
	Hash         string    `json:"hash"`
	Author       string    `json:"author"`
	Date         time.Time `json:"date"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body,omitempty"`
	FilesChanged int       `json:"filesChanged,omitempty"`
}

// CommitCategory is the conventional-commit style label derived from the
// subject prefix (feat, fix, docs, ...). CategoryNone marks commits without
// a recognizable prefix.
type CommitCategory string

const (
	CategoryNone     CommitCategory = ""
	CategoryFeature  CommitCategory = "feat"
	CategoryFix      CommitCategory = "fix"
	CategoryPerf     CommitCategory = "perf"
	CategoryRefactor CommitCategory = "refactor"
	CategoryDocs     CommitCategory = "docs"
	CategoryTest     CommitCategory = "test"
	CategoryBuild    CommitCategory = "build"
	CategoryCI       CommitCategory = "ci"
	CategoryChore    CommitCategory = "chore"
	CategoryStyle    CommitCategory = "style"
)

// ScoredCommit wraps a CommitRecord with its significance score and
// category. Scored commits are ordered by descending score, ties broken by
// recency.
type ScoredCommit struct {
	CommitRecord
	Score    int            `json:"score"`
	Category CommitCategory `json:"category"`
}
