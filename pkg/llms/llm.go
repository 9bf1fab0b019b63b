// Package llms provides oracle client adapters behind a minimal one-shot
// chat-completion contract. The evaluator depends only on the LLM
// interface; backend quirks (parameter names, model aliases) stay here.
package llms

import (
	"context"
)

// CompletionRequest is a single stateless chat-style completion call.
type CompletionRequest struct {
	Model           string
	SystemMessage   string
	UserMessage     string
	Temperature     float64
	MaxOutputTokens int
}

// LLM is the oracle contract consumed by the evaluator. Implementations
// must be safe for concurrent use.
type LLM interface {
	// Name identifies the backend for logging.
	Name() string

	// Complete performs one chat completion and returns the raw text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
