package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"chronicle/internal/utils"
)

// ConfigError reports missing or invalid configuration (credentials,
// endpoint, timeout). It is the only error kind this package returns.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Reason, e.Err)
	}
	return "config: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// SecretSource resolves an API key for a provider when the environment does
// not supply one. The OS keychain service implements it.
type SecretSource interface {
	APIKey(provider string) (string, error)
}

// Config holds everything a generation run needs. It is built once at
// startup and treated as immutable afterwards. The API key is never logged.
type Config struct {
	Provider    string
	Model       string
	Endpoint    string
	APIKey      string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float32
}

const (
	defaultProvider    = "anthropic"
	defaultTimeout     = 60 * time.Second
	defaultMaxTokens   = 4096
	defaultTemperature = 0.5
)

// envKeyNames maps a provider to the environment variables consulted for its
// credential, in order.
var envKeyNames = map[string][]string{
	"anthropic": {"ANTHROPIC_API_KEY"},
	"openai":    {"OPENAI_API_KEY"},
	"gemini":    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"proxy":     {"CHRONICLE_API_KEY"},
}

// Load assembles the runtime configuration. Resolution order for the
// credential: provider-specific environment variable, CHRONICLE_API_KEY,
// a key file named by CHRONICLE_API_KEY_FILE, then the secret source.
func Load(provider string, secrets SecretSource) (Config, error) {
	// A .env in the project root is a development convenience; absence is
	// not an error.
	_ = utils.LoadEnv()

	provider = strings.TrimSpace(strings.ToLower(provider))
	if provider == "" {
		provider = strings.TrimSpace(strings.ToLower(os.Getenv("CHRONICLE_PROVIDER")))
	}
	if provider == "" {
		provider = defaultProvider
	}
	if _, ok := envKeyNames[provider]; !ok {
		return Config{}, &ConfigError{Reason: fmt.Sprintf("unknown provider %q", provider)}
	}

	cfg := Config{
		Provider:    provider,
		Model:       strings.TrimSpace(os.Getenv("CHRONICLE_MODEL")),
		Endpoint:    strings.TrimSpace(os.Getenv("CHRONICLE_ENDPOINT")),
		Timeout:     defaultTimeout,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}

	if raw := os.Getenv("CHRONICLE_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, &ConfigError{Reason: "invalid CHRONICLE_TIMEOUT " + strconv.Quote(raw), Err: err}
		}
		cfg.Timeout = d
	}

	if provider == "proxy" && cfg.Endpoint == "" {
		return Config{}, &ConfigError{Reason: "provider proxy requires CHRONICLE_ENDPOINT"}
	}

	key, err := resolveAPIKey(provider, secrets)
	if err != nil {
		return Config{}, err
	}
	cfg.APIKey = key

	return cfg, nil
}

func resolveAPIKey(provider string, secrets SecretSource) (string, error) {
	names := append([]string{}, envKeyNames[provider]...)
	if provider != "proxy" {
		names = append(names, "CHRONICLE_API_KEY")
	}
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, nil
		}
	}

	if path := strings.TrimSpace(os.Getenv("CHRONICLE_API_KEY_FILE")); path != "" {
		lines, err := utils.ReadNonEmptyLines(path)
		if err != nil {
			return "", &ConfigError{Reason: "read key file " + path, Err: err}
		}
		if len(lines) > 0 {
			return lines[0], nil
		}
	}

	if secrets != nil {
		if v, err := secrets.APIKey(provider); err == nil && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}

	return "", &ConfigError{Reason: fmt.Sprintf(
		"no API key for provider %s: set %s, CHRONICLE_API_KEY_FILE, or store one with `chronicle keys set %s`",
		provider, envKeyNames[provider][0], provider)}
}
