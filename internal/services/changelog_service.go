package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"chronicle/internal/config"
	"chronicle/internal/llm/client"
	"chronicle/internal/models"
	"chronicle/internal/render"
)

// ErrNoCommits signals an empty history span. Callers treat it as a clean
// no-op rather than a failure.
var ErrNoCommits = errors.New("no commits found")

// GenerateRequest carries the validated inputs of one changelog run.
type GenerateRequest struct {
	RepoPath string
	Count    int
	Format   models.OutputFormat
	Provider string
	ModelKey string
	Save     bool
}

// GenerateResult is the rendered changelog plus bookkeeping about the run.
type GenerateResult struct {
	Output      string
	CommitCount int
	Record      *models.GenerationRecord
}

// ChangelogService drives the pipeline: fetch, score, prompt, generate,
// render, and optionally record the run. Each call is independent; the
// service keeps no state between runs.
type ChangelogService struct {
	git     *GitService
	scorer  *ScoreService
	history HistoryService
}

// NewChangelogService wires the pipeline. history may be nil when
// persistence is unavailable.
func NewChangelogService(git *GitService, scorer *ScoreService, history HistoryService) *ChangelogService {
	return &ChangelogService{git: git, scorer: scorer, history: history}
}

// Generate runs the pipeline once with the given generator. Errors surface
// immediately: a fetch failure happens before any network call, and no
// output or history row is produced on any failure.
func (s *ChangelogService) Generate(ctx context.Context, req GenerateRequest, gen client.Generator) (*GenerateResult, error) {
	if !req.Format.Valid() {
		return nil, fmt.Errorf("unsupported output format %q", req.Format)
	}
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}

	commits, err := s.git.RecentCommits(ctx, req.RepoPath, req.Count)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, ErrNoCommits
	}

	scored := s.scorer.Preprocess(commits)
	if len(scored) == 0 {
		return nil, ErrNoCommits
	}

	payload := client.BuildPayload(scored)

	text, err := gen.Generate(ctx, payload)
	if err != nil {
		return nil, err
	}

	output, err := render.Render(models.ChangelogResult{Text: text, Format: req.Format})
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Output: output, CommitCount: len(commits)}

	if req.Save && s.history != nil {
		record := &models.GenerationRecord{
			RepoPath:    req.RepoPath,
			CommitCount: len(commits),
			NewestHash:  commits[0].Hash,
			OldestHash:  commits[len(commits)-1].Hash,
			Provider:    gen.Provider(),
			ModelKey:    req.ModelKey,
			Format:      string(req.Format),
			Changelog:   output,
		}
		saved, err := s.history.Save(record)
		if err != nil {
			// The changelog is already generated; losing the history row
			// is not worth failing the run.
			log.Printf("warning: could not save generation history: %v", err)
		} else {
			result.Record = saved
		}
	}

	return result, nil
}

// NewGenerator builds the provider client selected by cfg. apiModel is the
// provider-side model name resolved from the catalog.
func NewGenerator(ctx context.Context, cfg config.Config, apiModel string) (client.Generator, error) {
	switch cfg.Provider {
	case "anthropic":
		return client.NewClaudeClient(ctx, cfg.APIKey, client.ClaudeModelOptions{
			Model:       apiModel,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		})
	case "openai":
		return client.NewOpenAIClient(ctx, cfg.APIKey, client.OpenAIModelOptions{
			Model:       apiModel,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		})
	case "gemini":
		return client.NewGeminiClient(ctx, cfg.APIKey, client.GeminiModelOptions{
			Model:   apiModel,
			Timeout: cfg.Timeout,
		})
	case "proxy":
		return client.NewProxyClient(cfg.APIKey, client.ProxyOptions{
			Endpoint:    cfg.Endpoint,
			Model:       apiModel,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		})
	default:
		return nil, &config.ConfigError{Reason: fmt.Sprintf("unsupported provider: %s", cfg.Provider)}
	}
}
