package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider identifies one of the supported AI backends.
type Provider string

const (
	ProviderOpenRouter Provider = "openrouter"
	ProviderGroq       Provider = "groq"
	ProviderAnthropic  Provider = "anthropic"
)

// Known reports whether p is one of the supported providers.
func (p Provider) Known() bool {
	switch p {
	case ProviderOpenRouter, ProviderGroq, ProviderAnthropic:
		return true
	}
	return false
}

// DisplayName is the user-facing provider name used in error messages.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderOpenRouter:
		return "OpenRouter"
	case ProviderGroq:
		return "Groq"
	case ProviderAnthropic:
		return "Anthropic"
	}
	return string(p)
}

// Client is the uniform interface over one chat-completion backend.
// Complete makes exactly one attempt: retry policy belongs to the caller.
type Client interface {
	Name() Provider
	Complete(ctx context.Context, apiKey, prompt string) (string, error)
}

// Suggestion is a successful completion tagged with the provider that
// produced it.
type Suggestion struct {
	Text     string
	Provider Provider
}

// Suggester dispatches a completion request to the client registered for
// the requested provider.
type Suggester struct {
	clients map[Provider]Client
}

// NewSuggester builds a Suggester over the given clients.
func NewSuggester(clients ...Client) *Suggester {
	m := make(map[Provider]Client, len(clients))
	for _, c := range clients {
		m[c.Name()] = c
	}
	return &Suggester{clients: m}
}

// Suggest runs one completion against the named provider. The API key must
// be non-empty; key lookup and the missing-key condition are the caller's
// concern.
func (s *Suggester) Suggest(ctx context.Context, provider Provider, apiKey, prompt string) (*Suggestion, error) {
	client, ok := s.clients[provider]
	if !ok {
		return nil, &ProviderError{
			Provider:   provider,
			Kind:       KindUnknown,
			StatusCode: 400,
			Message:    fmt.Sprintf("Unknown provider: %s", provider),
		}
	}

	if apiKey == "" {
		return nil, &ProviderError{
			Provider:   provider,
			Kind:       KindUnauthorized,
			StatusCode: 401,
			Message:    fmt.Sprintf("Missing API key for %s.", provider.DisplayName()),
		}
	}

	text, err := client.Complete(ctx, apiKey, prompt)
	if err != nil {
		return nil, err
	}

	text = TrimSuggestion(text)
	if text == "" {
		return nil, EmptyResponseError(provider)
	}

	return &Suggestion{Text: text, Provider: provider}, nil
}

// TrimSuggestion strips surrounding whitespace and quote characters from a
// raw model reply.
func TrimSuggestion(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
