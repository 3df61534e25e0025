package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// AuthError means the generation service rejected the credential.
type AuthError struct {
	Provider string
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authentication rejected: %v", e.Provider, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RateLimitError means the generation service throttled the request.
type RateLimitError struct {
	Provider string
	Err      error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limited: %v", e.Provider, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// ServiceError covers every other endpoint failure: non-success statuses,
// network errors, timeouts and malformed response bodies.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: generation service error: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// classifyStatus maps an HTTP status code onto the error taxonomy.
func classifyStatus(provider string, status int, cause error) error {
	switch {
	case status == 401 || status == 403:
		return &AuthError{Provider: provider, Err: cause}
	case status == 429:
		return &RateLimitError{Provider: provider, Err: cause}
	default:
		return &ServiceError{Provider: provider, Err: cause}
	}
}

// classifyErr sorts an opaque SDK error into the taxonomy. The provider SDKs
// wrap their HTTP status into the message, so this falls back to string
// inspection when no timeout or cancellation is detectable.
func classifyErr(provider string, err error) error {
	if err == nil {
		return nil
	}
	var authErr *AuthError
	var rateErr *RateLimitError
	var svcErr *ServiceError
	if errors.As(err, &authErr) || errors.As(err, &rateErr) || errors.As(err, &svcErr) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &ServiceError{Provider: provider, Err: fmt.Errorf("request timed out: %w", err)}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") ||
		strings.Contains(msg, "unauthorized") || strings.Contains(msg, "invalid api key") ||
		strings.Contains(msg, "authentication"):
		return &AuthError{Provider: provider, Err: err}
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") || strings.Contains(msg, "quota"):
		return &RateLimitError{Provider: provider, Err: err}
	default:
		return &ServiceError{Provider: provider, Err: err}
	}
}
