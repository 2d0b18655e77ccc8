// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/pdiddy/paper-digest/pkg/types"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiBackend generates summaries through the Google Gemini API.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend builds a Gemini backend from the AI configuration.
func NewGeminiBackend(ctx context.Context, cfg types.AIConfig) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiBackend{client: client, model: model}, nil
}

// Name returns the backend identifier.
func (b *GeminiBackend) Name() string { return "gemini" }

// Complete sends one prompt and returns the completion text.
func (b *GeminiBackend) Complete(ctx context.Context, prompt string) (string, error) {
	model := b.client.GenerativeModel(b.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("empty completion from gemini")
	}
	return out, nil
}

// Close releases the underlying API client.
func (b *GeminiBackend) Close() error {
	return b.client.Close()
}
