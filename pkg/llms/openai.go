package llms

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	errs "github.com/predictive-selection/evoagent/pkg/errors"
	"github.com/predictive-selection/evoagent/pkg/logging"
)

// OpenAILLM implements the LLM interface against any OpenAI-compatible
// endpoint: OpenAI itself, Gemini's compatibility layer, OpenRouter, or
// local servers (ollama, vllm) via a custom base URL.
type OpenAILLM struct {
	client *openai.Client
	name   string
}

// NewOpenAILLM creates an adapter for an OpenAI-compatible API.
// baseURL may be empty for the default OpenAI endpoint.
func NewOpenAILLM(apiKey, baseURL string) (*OpenAILLM, error) {
	if apiKey == "" {
		return nil, errs.New(errs.InvalidInput, "API key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	name := "openai"
	if baseURL != "" {
		cfg.BaseURL = baseURL
		name = "openai-compatible"
	}

	return &OpenAILLM{
		client: openai.NewClientWithConfig(cfg),
		name:   name,
	}, nil
}

func (o *OpenAILLM) Name() string { return o.name }

// Complete implements the LLM interface.
func (o *OpenAILLM) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	logger := logging.GetLogger()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemMessage},
			{Role: openai.ChatMessageRoleUser, Content: req.UserMessage},
		},
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxOutputTokens,
	})
	if err != nil {
		return "", errs.WithFields(
			errs.Wrap(err, errs.OracleTransient, "chat completion failed"),
			errs.Fields{"model": req.Model, "backend": o.name})
	}

	if len(resp.Choices) == 0 {
		return "", errs.New(errs.OracleTransient, "received empty choice list from API")
	}

	content := resp.Choices[0].Message.Content
	logger.Debug(ctx, "oracle response: model=%s, tokens=%d", req.Model, resp.Usage.TotalTokens)

	return content, nil
}
