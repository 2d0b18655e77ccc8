// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize turns selected papers into short digest summaries via
// a generative AI API. Backends implement a common interface per the
// Strategy pattern so deployments can switch providers by configuration.
package summarize

import (
	"context"
	"fmt"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// AIBackend generates one completion for one prompt.
type AIBackend interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewBackend builds the backend selected by cfg.Backend.
func NewBackend(ctx context.Context, cfg types.AIConfig) (AIBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("AI API key is not configured")
	}
	switch cfg.Backend {
	case "", "openai":
		return NewOpenAIBackend(cfg), nil
	case "gemini":
		return NewGeminiBackend(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown AI backend %q", cfg.Backend)
	}
}
