package llms

import (
	errs "github.com/predictive-selection/evoagent/pkg/errors"
)

// Supported oracle providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderStub      = "stub"
)

// New constructs an oracle adapter for the named provider. The stub
// provider ignores apiKey and baseURL and answers every prompt with a
// fixed well-formed response.
func New(provider, apiKey, baseURL string) (LLM, error) {
	switch provider {
	case ProviderOpenAI, "":
		return NewOpenAILLM(apiKey, baseURL)
	case ProviderAnthropic:
		return NewAnthropicLLM(apiKey, baseURL)
	case ProviderStub:
		return NewStubLLM("Confidence: 50%\nAnswer: unknown"), nil
	default:
		return nil, errs.WithFields(
			errs.New(errs.InvalidInput, "unsupported oracle provider"),
			errs.Fields{"provider": provider})
	}
}
