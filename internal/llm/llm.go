package llm

import (
	"context"
	"errors"
)

// Client abstracts the external language-generation capability. Both calls
// are invoked at most once per request; callers degrade to deterministic
// paths on any error instead of retrying.
type Client interface {
	// Generate returns free text for a question-generation prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// Evaluate returns free text for an answer-evaluation prompt.
	Evaluate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// Placeholder is used when no provider is configured; every call fails,
// which forces the rule-based and mock paths.
type Placeholder struct{}

// Generate returns ErrNotConfigured.
func (Placeholder) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}

// Evaluate returns ErrNotConfigured.
func (Placeholder) Evaluate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
