// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// retryBaseDelay seeds the exponential backoff between attempts. Declared
// as a var so tests can shrink it.
var retryBaseDelay = 2 * time.Second

const defaultMaxRetries = 3

// BatchSummary holds counts from one summarization pass.
type BatchSummary struct {
	Summarized int
	Failed     int
}

// Batch summarizes every paper in order, pausing between API calls. A
// paper whose attempts are exhausted keeps a truncated abstract as a
// stand-in summary and is marked not generated; the pass only fails when
// no paper at all could be summarized, or the context is cancelled.
func Batch(ctx context.Context, backend AIBackend, papers []types.Paper, cfg types.AIConfig, log zerolog.Logger) ([]types.Paper, BatchSummary, error) {
	if len(papers) == 0 {
		return nil, BatchSummary{}, nil
	}

	callDelay := cfg.CallDelay
	if callDelay <= 0 {
		callDelay = time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	out := make([]types.Paper, len(papers))
	var summary BatchSummary
	for i, p := range papers {
		if i > 0 {
			select {
			case <-ctx.Done():
				return out[:i], summary, ctx.Err()
			case <-time.After(callDelay):
			}
		}

		text, err := summarizeOne(ctx, backend, p, maxRetries, log)
		if err != nil {
			if ctx.Err() != nil {
				return out[:i], summary, ctx.Err()
			}
			log.Warn().Err(err).Str("paper", p.ID).Msg("summarization failed, keeping abstract")
			out[i] = p.WithSummary(fallbackSummary(p), false)
			summary.Failed++
			continue
		}

		out[i] = p.WithSummary(text, true)
		summary.Summarized++
	}

	if summary.Summarized == 0 {
		return out, summary, fmt.Errorf("all %d summarization attempts failed", len(papers))
	}
	return out, summary, nil
}

// summarizeOne calls the backend with exponential backoff between attempts.
func summarizeOne(ctx context.Context, backend AIBackend, p types.Paper, maxRetries int, log zerolog.Logger) (string, error) {
	prompt := BuildPrompt(p)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if attempt > 1 {
			backoff := retryBaseDelay * time.Duration(1<<(attempt-2))
			log.Debug().Str("paper", p.ID).Int("attempt", attempt).
				Dur("backoff", backoff).Msg("retrying summarization")
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := backend.Complete(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("%s: %w", backend.Name(), lastErr)
}

const fallbackLimit = 400

// fallbackSummary stands in for a failed generation so the digest still
// carries something readable.
func fallbackSummary(p types.Paper) string {
	abstract := p.Abstract
	if len(abstract) > fallbackLimit {
		abstract = abstract[:fallbackLimit] + "..."
	}
	return abstract
}
