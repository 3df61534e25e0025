package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// initTestRepo creates a repository with one commit per message, oldest
// first, each touching its own file.
func initTestRepo(t *testing.T, messages ...string) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, msg := range messages {
		name := fmt.Sprintf("file_%d.txt", i)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(msg), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("add: %v", err)
		}
		_, err := wt.Commit(msg, &git.CommitOptions{
			Author: &object.Signature{
				Name:  "Test Author",
				Email: "test@example.com",
				When:  base.Add(time.Duration(i) * time.Minute),
			},
		})
		if err != nil {
			t.Fatalf("commit: %v", err)
		}
	}
	return dir
}

func TestRecentCommits_NewestFirstAndCapped(t *testing.T) {
	dir := initTestRepo(t, "first commit", "second commit", "third commit")
	svc := NewGitService()

	commits, err := svc.RecentCommits(context.Background(), dir, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if commits[0].Subject != "third commit" || commits[1].Subject != "second commit" {
		t.Fatalf("expected newest-first order, got %q then %q", commits[0].Subject, commits[1].Subject)
	}
}

func TestRecentCommits_ReturnsAllWhenFewerThanN(t *testing.T) {
	dir := initTestRepo(t, "only commit")
	svc := NewGitService()

	commits, err := svc.RecentCommits(context.Background(), dir, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(commits))
	}
	if commits[0].Author != "Test Author" {
		t.Fatalf("unexpected author %q", commits[0].Author)
	}
	if commits[0].FilesChanged != 1 {
		t.Fatalf("expected 1 changed file, got %d", commits[0].FilesChanged)
	}
}

func TestRecentCommits_SplitsSubjectAndBody(t *testing.T) {
	dir := initTestRepo(t, "feat: add login\n\nAdds the login form and session handling.")
	svc := NewGitService()

	commits, err := svc.RecentCommits(context.Background(), dir, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if commits[0].Subject != "feat: add login" {
		t.Fatalf("unexpected subject %q", commits[0].Subject)
	}
	if commits[0].Body != "Adds the login form and session handling." {
		t.Fatalf("unexpected body %q", commits[0].Body)
	}
}

func TestRecentCommits_InvalidPath(t *testing.T) {
	svc := NewGitService()

	_, err := svc.RecentCommits(context.Background(), t.TempDir(), 5)
	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) {
		t.Fatalf("expected RepositoryError, got %v", err)
	}
}

func TestRecentCommits_RejectsNonPositiveCount(t *testing.T) {
	dir := initTestRepo(t, "a commit")
	svc := NewGitService()

	_, err := svc.RecentCommits(context.Background(), dir, 0)
	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) {
		t.Fatalf("expected RepositoryError for n=0, got %v", err)
	}
}

func TestValidateRepository_EmptyDirFails(t *testing.T) {
	svc := NewGitService()
	if err := svc.ValidateRepository(t.TempDir()); err == nil {
		t.Fatal("expected error for a directory without a repository")
	}
}
