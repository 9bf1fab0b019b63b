package llms

import (
	"context"
	"sync/atomic"

	errs "github.com/predictive-selection/evoagent/pkg/errors"
)

// StubLLM is a deterministic oracle used in tests and as a dry-run
// backend when no API key is configured. It returns a fixed canned
// response, or a fixed error when FailWith is set.
type StubLLM struct {
	// Response is returned verbatim from every Complete call.
	Response string

	// FailWith, when non-nil, makes every Complete call fail.
	FailWith error

	calls atomic.Int64
}

// NewStubLLM creates a stub that always answers with response.
func NewStubLLM(response string) *StubLLM {
	return &StubLLM{Response: response}
}

func (s *StubLLM) Name() string { return "stub" }

// Complete implements the LLM interface.
func (s *StubLLM) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	s.calls.Add(1)
	if err := errs.CheckContext(ctx, "stub completion"); err != nil {
		return "", err
	}
	if s.FailWith != nil {
		return "", s.FailWith
	}
	return s.Response, nil
}

// Calls reports how many completions have been requested.
func (s *StubLLM) Calls() int64 {
	return s.calls.Load()
}
