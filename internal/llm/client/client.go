package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chronicle/internal/models"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// Generator issues exactly one synchronous generation request for a fully
// assembled prompt payload and returns the generated text.
type Generator interface {
	Generate(ctx context.Context, payload models.PromptPayload) (string, error)
	Provider() string
}

// LLMClient adapts an eino chat model to the Generator contract.
type LLMClient struct {
	provider  string
	chatModel model.BaseChatModel
	timeout   time.Duration
}

// ClaudeModelOptions configure the anthropic provider.
type ClaudeModelOptions struct {
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// NewClaudeClient builds the anthropic-backed client.
func NewClaudeClient(ctx context.Context, apiKey string, opts ClaudeModelOptions) (*LLMClient, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	temperature := opts.Temperature
	cm, err := claude.NewChatModel(ctx, &claude.Config{
		APIKey:      apiKey,
		Model:       opts.Model,
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, classifyErr("anthropic", err)
	}
	return &LLMClient{provider: "anthropic", chatModel: cm, timeout: opts.Timeout}, nil
}

// OpenAIModelOptions configure the openai provider.
type OpenAIModelOptions struct {
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// NewOpenAIClient builds the openai-backed client.
func NewOpenAIClient(ctx context.Context, apiKey string, opts OpenAIModelOptions) (*LLMClient, error) {
	cfg := &openai.ChatModelConfig{
		APIKey: apiKey,
		Model:  opts.Model,
	}
	if opts.MaxTokens > 0 {
		cfg.MaxTokens = &opts.MaxTokens
	}
	if opts.Temperature > 0 {
		cfg.Temperature = &opts.Temperature
	}
	cm, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, classifyErr("openai", err)
	}
	return &LLMClient{provider: "openai", chatModel: cm, timeout: opts.Timeout}, nil
}

// GeminiModelOptions configure the gemini provider.
type GeminiModelOptions struct {
	Model   string
	Timeout time.Duration
}

// NewGeminiClient builds the gemini-backed client.
func NewGeminiClient(ctx context.Context, apiKey string, opts GeminiModelOptions) (*LLMClient, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, classifyErr("gemini", err)
	}
	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: gc,
		Model:  opts.Model,
	})
	if err != nil {
		return nil, classifyErr("gemini", err)
	}
	return &LLMClient{provider: "gemini", chatModel: cm, timeout: opts.Timeout}, nil
}

// Provider names the backing service.
func (c *LLMClient) Provider() string { return c.provider }

// Generate sends the system and user prompts as a single exchange and
// returns the assistant text. One request, no retries; failures map onto
// the AuthError / RateLimitError / ServiceError taxonomy.
func (c *LLMClient) Generate(ctx context.Context, payload models.PromptPayload) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	messages := []*schema.Message{
		schema.SystemMessage(payload.SystemPrompt),
		schema.UserMessage(payload.UserPrompt),
	}

	out, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", classifyErr(c.provider, err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", &ServiceError{Provider: c.provider, Err: fmt.Errorf("model returned no text content")}
	}
	return out.Content, nil
}
