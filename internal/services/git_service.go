package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chronicle/internal/models"
	"chronicle/internal/utils"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// RepositoryError reports that the repository could not be opened or its
// history could not be read.
type RepositoryError struct {
	Path string
	Err  error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s: %v", e.Path, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

type GitService struct{}

func NewGitService() *GitService {
	return &GitService{}
}

// Open opens an existing repository at path.
func (g *GitService) Open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, &RepositoryError{Path: path, Err: err}
	}
	return repo, nil
}

// ValidateRepository checks that path is a git working tree with a readable
// HEAD.
func (g *GitService) ValidateRepository(path string) error {
	if path == "" {
		return &RepositoryError{Path: path, Err: errors.New("repository path cannot be empty")}
	}
	if !utils.DirectoryExists(path) {
		return &RepositoryError{Path: path, Err: errors.New("directory does not exist")}
	}
	repo, err := git.PlainOpen(path)
	if err != nil {
		return &RepositoryError{Path: path, Err: fmt.Errorf("not a valid git repository: %w", err)}
	}
	if _, err := repo.Head(); err != nil {
		return &RepositoryError{Path: path, Err: fmt.Errorf("repository has no readable HEAD: %w", err)}
	}
	return nil
}

// RecentCommits returns up to n commits reachable from HEAD, newest first.
// The files-changed count is best effort: commits whose stats cannot be
// computed keep a zero count rather than failing the fetch.
func (g *GitService) RecentCommits(ctx context.Context, repoPath string, n int) ([]models.CommitRecord, error) {
	if n <= 0 {
		return nil, &RepositoryError{Path: repoPath, Err: fmt.Errorf("commit count must be positive, got %d", n)}
	}
	if err := g.ValidateRepository(repoPath); err != nil {
		return nil, err
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, &RepositoryError{Path: repoPath, Err: err}
	}

	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, &RepositoryError{Path: repoPath, Err: fmt.Errorf("read log: %w", err)}
	}
	defer iter.Close()

	var commits []models.CommitRecord
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, commitRecord(c))
		if len(commits) >= n {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, &RepositoryError{Path: repoPath, Err: fmt.Errorf("walk log: %w", err)}
	}
	return commits, nil
}

func commitRecord(c *object.Commit) models.CommitRecord {
	subject, body := splitMessage(c.Message)
	rec := models.CommitRecord{
		Hash:    c.Hash.String(),
		Author:  c.Author.Name,
		Date:    c.Author.When,
		Subject: subject,
		Body:    body,
	}
	if stats, err := c.Stats(); err == nil {
		rec.FilesChanged = len(stats)
	}
	return rec
}

// splitMessage separates a full commit message into its subject line and the
// remaining body.
func splitMessage(message string) (subject, body string) {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	subject, body, _ = strings.Cut(message, "\n")
	return strings.TrimSpace(subject), strings.TrimSpace(body)
}
