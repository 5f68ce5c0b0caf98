package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/amishk599/tailor/internal/model"
)

// AnthropicProvider calls the Anthropic Messages API through the official SDK.
type AnthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicProvider creates a provider targeting the Anthropic API.
// baseURL is the API root (the SDK appends v1/messages) and version is sent as
// the anthropic-version header when set. The SDK never retries.
func NewAnthropicProvider(baseURL, apiKey, model, version string, maxTokens int, httpClient *http.Client) *AnthropicProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(strings.TrimSuffix(baseURL, "/") + "/"),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if version != "" {
		opts = append(opts, option.WithHeader("anthropic-version", version))
	}
	return &AnthropicProvider{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Complete sends prompt as a single user message and returns content[0].text.
func (p *AnthropicProvider) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(p.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &model.ProviderError{Provider: "Anthropic", StatusCode: apiErr.StatusCode, Body: apiErr.RawJSON()}
		}
		if ctx.Err() != nil {
			return "", err
		}
		return "", fmt.Errorf("anthropic request: %w: %w", model.ErrTimeout, err)
	}

	if len(msg.Content) == 0 {
		return "", fmt.Errorf("anthropic response missing content")
	}
	return msg.Content[0].AsText().Text, nil
}
