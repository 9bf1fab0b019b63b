package llms

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	errs "github.com/predictive-selection/evoagent/pkg/errors"
	"github.com/predictive-selection/evoagent/pkg/logging"
)

// AnthropicLLM implements the LLM interface for Anthropic's models.
type AnthropicLLM struct {
	client *anthropic.Client
}

// NewAnthropicLLM creates a new AnthropicLLM instance.
// baseURL may be empty for the default endpoint.
func NewAnthropicLLM(apiKey, baseURL string) (*AnthropicLLM, error) {
	if apiKey == "" {
		return nil, errs.New(errs.InvalidInput, "API key is required")
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}

	client := anthropic.NewClient(clientOpts...)
	return &AnthropicLLM{client: &client}, nil
}

func (a *AnthropicLLM) Name() string { return "anthropic" }

// Complete implements the LLM interface.
func (a *AnthropicLLM) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	logger := logging.GetLogger()

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model: anthropic.Model(req.Model),
		System: []anthropic.TextBlockParam{
			{Text: req.SystemMessage},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(req.UserMessage),
			),
		},
		MaxTokens:   int64(req.MaxOutputTokens),
		Temperature: anthropic.Float(req.Temperature),
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			logger.Error(ctx, "Anthropic API error: status code %d", apiErr.StatusCode)
		}
		return "", errs.WithFields(
			errs.Wrap(err, errs.OracleTransient, "chat completion failed"),
			errs.Fields{"model": req.Model, "backend": a.Name()})
	}

	if message == nil || len(message.Content) == 0 {
		return "", errs.New(errs.OracleTransient, "received empty content from Anthropic API")
	}

	var responseText string
	if block := message.Content[0]; block.Type == "text" {
		responseText = block.Text
	}

	logger.Debug(ctx, "oracle response: model=%s, tokens=%d",
		req.Model, message.Usage.InputTokens+message.Usage.OutputTokens)

	return responseText, nil
}
