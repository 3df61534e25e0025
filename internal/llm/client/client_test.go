package client

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"chronicle/internal/models"
)

func scored(subject string, category models.CommitCategory) models.ScoredCommit {
	return models.ScoredCommit{
		CommitRecord: models.CommitRecord{
			Hash:    "0123456789abcdef0123456789abcdef01234567",
			Author:  "dev",
			Date:    time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			Subject: subject,
		},
		Category: category,
	}
}

func TestSystemPrompt_Embedded(t *testing.T) {
	sys := SystemPrompt()
	if sys == "" {
		t.Fatal("system prompt is empty")
	}
	if !strings.Contains(sys, "changelog") {
		t.Fatalf("system prompt does not mention changelogs: %q", sys)
	}
}

func TestBuildPayload_SerializesCommitsInOrder(t *testing.T) {
	payload := BuildPayload([]models.ScoredCommit{
		scored("feat: add login", models.CategoryFeature),
		scored("fix: logout crash", models.CategoryFix),
	})

	if payload.SystemPrompt == "" {
		t.Fatal("payload carries no system prompt")
	}

	featIdx := strings.Index(payload.UserPrompt, "feat: add login")
	fixIdx := strings.Index(payload.UserPrompt, "fix: logout crash")
	if featIdx < 0 || fixIdx < 0 {
		t.Fatalf("user prompt missing subjects:\n%s", payload.UserPrompt)
	}
	if featIdx > fixIdx {
		t.Fatal("commit order not preserved in user prompt")
	}
	if !strings.Contains(payload.UserPrompt, "Commit: 01234567\n") {
		t.Fatalf("expected short hash line, got:\n%s", payload.UserPrompt)
	}
	if !strings.Contains(payload.UserPrompt, "Category: feat") {
		t.Fatal("category line missing")
	}
}

func TestBuildPayload_IndentsBodyLines(t *testing.T) {
	c := scored("feat: add export", models.CategoryFeature)
	c.Body = "line one\nline two"

	payload := BuildPayload([]models.ScoredCommit{c})

	if !strings.Contains(payload.UserPrompt, "Body: line one\n  line two") {
		t.Fatalf("body not indented:\n%s", payload.UserPrompt)
	}
}

func TestClassifyErr_Timeout(t *testing.T) {
	err := classifyErr("anthropic", context.DeadlineExceeded)
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError for timeout, got %v", err)
	}
}

func TestClassifyErr_AuthFromMessage(t *testing.T) {
	for _, msg := range []string{
		"request failed: 401 Unauthorized",
		"invalid api key provided",
		"authentication error",
	} {
		err := classifyErr("openai", errors.New(msg))
		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthError for %q, got %v", msg, err)
		}
	}
}

func TestClassifyErr_RateLimitFromMessage(t *testing.T) {
	err := classifyErr("gemini", errors.New("429: too many requests"))
	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
}

func TestClassifyErr_PreservesAlreadyClassified(t *testing.T) {
	orig := &AuthError{Provider: "proxy", Err: errors.New("nope")}
	if got := classifyErr("proxy", orig); got != orig {
		t.Fatalf("already classified error was rewrapped: %v", got)
	}
}

func TestClassifyErr_DefaultIsServiceError(t *testing.T) {
	err := classifyErr("proxy", errors.New("connection reset by peer"))
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
}
