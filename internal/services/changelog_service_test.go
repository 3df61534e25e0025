package services

import (
	"context"
	"errors"
	"testing"

	"chronicle/internal/models"
)

// stubGenerator satisfies client.Generator without touching the network.
type stubGenerator struct {
	text     string
	err      error
	calls    int
	lastUser string
}

func (g *stubGenerator) Provider() string { return "stub" }

func (g *stubGenerator) Generate(_ context.Context, payload models.PromptPayload) (string, error) {
	g.calls++
	g.lastUser = payload.UserPrompt
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func TestChangelogService_GeneratesMarkdown(t *testing.T) {
	dir := initTestRepo(t, "feat: add login", "fix: null pointer on logout")
	gen := &stubGenerator{text: "## v1.0\n- Added login"}

	svc := NewChangelogService(NewGitService(), NewScoreService(0), nil)
	result, err := svc.Generate(context.Background(), GenerateRequest{
		RepoPath: dir,
		Count:    10,
		Format:   models.FormatMarkdown,
	}, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Output != "## v1.0\n- Added login" {
		t.Fatalf("output not verbatim: %q", result.Output)
	}
	if result.CommitCount != 2 {
		t.Fatalf("expected 2 commits, got %d", result.CommitCount)
	}
	if gen.calls != 1 {
		t.Fatalf("expected exactly one generation call, got %d", gen.calls)
	}
	if gen.lastUser == "" {
		t.Fatal("user prompt was empty")
	}
}

func TestChangelogService_RepositoryErrorBeforeAnyRequest(t *testing.T) {
	gen := &stubGenerator{text: "should never be used"}

	svc := NewChangelogService(NewGitService(), NewScoreService(0), nil)
	_, err := svc.Generate(context.Background(), GenerateRequest{
		RepoPath: t.TempDir(),
		Count:    5,
		Format:   models.FormatMarkdown,
	}, gen)

	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) {
		t.Fatalf("expected RepositoryError, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generator was called %d times despite repository failure", gen.calls)
	}
}

func TestChangelogService_GenerationFailureProducesNoOutput(t *testing.T) {
	dir := initTestRepo(t, "feat: something")
	genErr := errors.New("boom")
	gen := &stubGenerator{err: genErr}

	svc := NewChangelogService(NewGitService(), NewScoreService(0), nil)
	result, err := svc.Generate(context.Background(), GenerateRequest{
		RepoPath: dir,
		Count:    5,
		Format:   models.FormatPlain,
	}, gen)
	if !errors.Is(err, genErr) {
		t.Fatalf("expected generation error to surface, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no result on failure, got %+v", result)
	}
}

func TestChangelogService_RejectsUnknownFormat(t *testing.T) {
	svc := NewChangelogService(NewGitService(), NewScoreService(0), nil)
	_, err := svc.Generate(context.Background(), GenerateRequest{
		RepoPath: ".",
		Count:    5,
		Format:   models.OutputFormat("yaml"),
	}, &stubGenerator{})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
