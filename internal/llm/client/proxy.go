package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chronicle/internal/models"
)

const anthropicVersion = "2023-06-01"

// ProxyClient talks to an Anthropic-style messages endpoint over plain
// HTTP. It exists for gateway deployments that front the real providers
// with a single shared endpoint and credential.
type ProxyClient struct {
	endpoint    string
	apiKey      string
	model       string
	maxTokens   int
	temperature float32
	httpClient  *http.Client
}

// ProxyOptions configure the proxy provider.
type ProxyOptions struct {
	Endpoint    string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// NewProxyClient builds a proxy-backed Generator.
func NewProxyClient(apiKey string, opts ProxyOptions) (*ProxyClient, error) {
	if strings.TrimSpace(opts.Endpoint) == "" {
		return nil, &ServiceError{Provider: "proxy", Err: errors.New("endpoint is required")}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &ProxyClient{
		endpoint:    opts.Endpoint,
		apiKey:      apiKey,
		model:       opts.Model,
		maxTokens:   maxTokens,
		temperature: opts.Temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

// Provider names the backing service.
func (c *ProxyClient) Provider() string { return "proxy" }

type proxyRequest struct {
	Model       string         `json:"model"`
	System      string         `json:"system"`
	Messages    []proxyMessage `json:"messages"`
	MaxTokens   int            `json:"max_tokens"`
	Temperature float32        `json:"temperature"`
}

type proxyMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// proxyResponse accepts both response shapes seen in the wild: the
// Anthropic messages form (content[0].text) and the flattened {"text": ...}
// some gateways return.
type proxyResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Text string `json:"text"`
}

// Generate performs the single POST and extracts the generated text.
func (c *ProxyClient) Generate(ctx context.Context, payload models.PromptPayload) (string, error) {
	body, err := json.Marshal(proxyRequest{
		Model:       c.model,
		System:      payload.SystemPrompt,
		Messages:    []proxyMessage{{Role: "user", Content: payload.UserPrompt}},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", &ServiceError{Provider: "proxy", Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &ServiceError{Provider: "proxy", Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyErr("proxy", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		cause := fmt.Errorf("endpoint returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
		return "", classifyStatus("proxy", resp.StatusCode, cause)
	}

	var parsed proxyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ServiceError{Provider: "proxy", Err: fmt.Errorf("decode response: %w", err)}
	}

	switch {
	case len(parsed.Content) > 0 && parsed.Content[0].Text != "":
		return parsed.Content[0].Text, nil
	case parsed.Text != "":
		return parsed.Text, nil
	default:
		return "", &ServiceError{Provider: "proxy", Err: errors.New("response carries no text field")}
	}
}
