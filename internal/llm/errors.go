package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind categorizes provider failures so callers can branch on them
// without parsing message text.
type ErrorKind string

const (
	KindUnauthorized        ErrorKind = "unauthorized"
	KindRateLimited         ErrorKind = "rate_limited"
	KindInsufficientCredits ErrorKind = "insufficient_credits"
	KindUnavailable         ErrorKind = "provider_unavailable"
	KindUnknown             ErrorKind = "unknown_provider_error"
)

// ProviderError is the uniform failure type for every AI backend.
type ProviderError struct {
	Provider   Provider
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// ClassifyStatus maps an upstream HTTP status to a ProviderError with a
// user-facing, provider-specific message.
func ClassifyStatus(provider Provider, status int, upstreamMsg string) *ProviderError {
	name := provider.DisplayName()

	switch {
	case status == 401 || status == 403:
		return &ProviderError{
			Provider:   provider,
			Kind:       KindUnauthorized,
			StatusCode: status,
			Message:    fmt.Sprintf("Invalid API key for %s. Please update it in Settings.", name),
		}
	case status == 429:
		return &ProviderError{
			Provider:   provider,
			Kind:       KindRateLimited,
			StatusCode: status,
			Message:    fmt.Sprintf("%s rate limit exceeded. Please wait a moment and try again.", name),
		}
	case status == 402:
		return &ProviderError{
			Provider:   provider,
			Kind:       KindInsufficientCredits,
			StatusCode: status,
			Message:    fmt.Sprintf("%s account has insufficient credits. Please top up your account.", name),
		}
	case status >= 500:
		return &ProviderError{
			Provider:   provider,
			Kind:       KindUnavailable,
			StatusCode: status,
			Message:    fmt.Sprintf("%s is currently experiencing issues. Please try again later.", name),
		}
	default:
		if upstreamMsg == "" {
			upstreamMsg = "unknown error"
		}
		code := status
		if code == 0 {
			code = 500
		}
		return &ProviderError{
			Provider:   provider,
			Kind:       KindUnknown,
			StatusCode: code,
			Message:    fmt.Sprintf("%s error: %s", name, upstreamMsg),
		}
	}
}

// ClassifyTransportError maps network-level failures. Timeouts get a
// dedicated retry-suggesting status so the UI can say "try again".
func ClassifyTransportError(provider Provider, err error) *ProviderError {
	name := provider.DisplayName()

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &ProviderError{
			Provider:   provider,
			Kind:       KindUnavailable,
			StatusCode: 408,
			Message:    fmt.Sprintf("%s took too long to respond. Please try again.", name),
		}
	}

	return &ProviderError{
		Provider:   provider,
		Kind:       KindUnknown,
		StatusCode: 500,
		Message:    fmt.Sprintf("%s error: %v", name, err),
	}
}

// EmptyResponseError covers a 200 reply that carries no usable suggestion.
func EmptyResponseError(provider Provider) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Kind:       KindUnknown,
		StatusCode: 500,
		Message:    fmt.Sprintf("%s returned an empty response. Please try again.", provider.DisplayName()),
	}
}
