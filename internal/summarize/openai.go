// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/pdiddy/paper-digest/pkg/types"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIBackend generates summaries through the OpenAI chat completions API.
type OpenAIBackend struct {
	client openai.Client
	model  string
}

// NewOpenAIBackend builds an OpenAI backend from the AI configuration.
func NewOpenAIBackend(cfg types.AIConfig) *OpenAIBackend {
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIBackend{
		client: openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  model,
	}
}

// Name returns the backend identifier.
func (b *OpenAIBackend) Name() string { return "openai" }

// Complete sends one prompt and returns the completion text.
func (b *OpenAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	response, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: b.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String("You are a research analyst writing concise paper digests for practitioners."),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(1000),
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	text := strings.TrimSpace(response.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty completion from openai")
	}
	return text, nil
}
