// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-digest/pkg/types"
)

func init() {
	retryBaseDelay = time.Millisecond
}

// fakeBackend fails a configurable number of times per paper title before
// succeeding.
type fakeBackend struct {
	failuresLeft map[string]int
	calls        int
	alwaysFail   bool
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	if f.alwaysFail {
		return "", fmt.Errorf("api down")
	}
	for title, left := range f.failuresLeft {
		if strings.Contains(prompt, title) && left > 0 {
			f.failuresLeft[title] = left - 1
			return "", fmt.Errorf("transient error")
		}
	}
	return "Background: something.\nRating: ★★★", nil
}

func aiConfig() types.AIConfig {
	return types.AIConfig{
		Backend:    "openai",
		MaxRetries: 3,
		CallDelay:  time.Millisecond,
	}
}

func TestBuildPromptSections(t *testing.T) {
	p := types.Paper{
		ID:         "2508.00001",
		Title:      "Load Forecasting with Transformers",
		Authors:    []string{"Ada Lovelace"},
		Categories: []string{"cs.LG"},
		Published:  time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Abstract:   "We forecast load.",
	}
	prompt := BuildPrompt(p)

	for _, want := range []string{
		"Background:", "Method:", "Results:", "Impact:", "Rating:",
		"Load Forecasting with Transformers", "Ada Lovelace", "cs.LG",
		"2026-08-20", "We forecast load.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBatchSummarizesAll(t *testing.T) {
	backend := &fakeBackend{}
	papers := []types.Paper{
		{ID: "a", Title: "Paper A", Abstract: "Abstract A"},
		{ID: "b", Title: "Paper B", Abstract: "Abstract B"},
	}
	out, summary, err := Batch(context.Background(), backend, papers, aiConfig(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Summarized != 2 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want 2 summarized", summary)
	}
	for _, p := range out {
		if !p.SummaryGenerated || p.Summary == "" {
			t.Errorf("paper %s not summarized: %+v", p.ID, p)
		}
	}
}

func TestBatchRetriesTransientFailures(t *testing.T) {
	backend := &fakeBackend{failuresLeft: map[string]int{"Paper A": 2}}
	papers := []types.Paper{{ID: "a", Title: "Paper A", Abstract: "Abstract A"}}

	out, summary, err := Batch(context.Background(), backend, papers, aiConfig(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Summarized != 1 {
		t.Errorf("summary = %+v, want the retried paper summarized", summary)
	}
	if backend.calls != 3 {
		t.Errorf("backend called %d times, want 3 (two failures, one success)", backend.calls)
	}
	if !out[0].SummaryGenerated {
		t.Error("retried paper not marked generated")
	}
}

func TestBatchIsolatesExhaustedPaper(t *testing.T) {
	backend := &fakeBackend{failuresLeft: map[string]int{"Paper A": 99}}
	papers := []types.Paper{
		{ID: "a", Title: "Paper A", Abstract: strings.Repeat("long abstract ", 50)},
		{ID: "b", Title: "Paper B", Abstract: "Abstract B"},
	}
	out, summary, err := Batch(context.Background(), backend, papers, aiConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("one failed paper must not fail the batch: %v", err)
	}
	if summary.Summarized != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want one of each", summary)
	}

	failed := out[0]
	if failed.SummaryGenerated {
		t.Error("exhausted paper marked generated")
	}
	if failed.Summary == "" || !strings.HasSuffix(failed.Summary, "...") {
		t.Errorf("fallback summary = %q, want truncated abstract", failed.Summary)
	}
	if len(failed.Summary) > fallbackLimit+3 {
		t.Errorf("fallback summary length %d exceeds limit", len(failed.Summary))
	}
}

func TestBatchAllFail(t *testing.T) {
	backend := &fakeBackend{alwaysFail: true}
	papers := []types.Paper{
		{ID: "a", Title: "Paper A"},
		{ID: "b", Title: "Paper B"},
	}
	_, summary, err := Batch(context.Background(), backend, papers, aiConfig(), zerolog.Nop())
	if err == nil {
		t.Fatal("expected an error when nothing could be summarized")
	}
	if summary.Summarized != 0 || summary.Failed != 2 {
		t.Errorf("summary = %+v, want 2 failed", summary)
	}
}

func TestBatchEmptyInput(t *testing.T) {
	out, summary, err := Batch(context.Background(), &fakeBackend{}, nil, aiConfig(), zerolog.Nop())
	if err != nil || len(out) != 0 || summary.Summarized != 0 {
		t.Errorf("empty batch: out=%v summary=%+v err=%v", out, summary, err)
	}
}

func TestNewOpenAIBackendModel(t *testing.T) {
	b := NewOpenAIBackend(types.AIConfig{APIKey: "k"})
	if b.model != defaultOpenAIModel {
		t.Errorf("model = %q, want %q", b.model, defaultOpenAIModel)
	}
	if b = NewOpenAIBackend(types.AIConfig{APIKey: "k", Model: "gpt-4o"}); b.model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", b.model)
	}
}

// The gemini client holds an open gRPC connection; callers that build a
// backend must be able to release it.
var _ io.Closer = (*GeminiBackend)(nil)

func TestNewBackendSelection(t *testing.T) {
	if _, err := NewBackend(context.Background(), types.AIConfig{Backend: "openai"}); err == nil {
		t.Error("expected an error without an API key")
	}
	if _, err := NewBackend(context.Background(), types.AIConfig{Backend: "carrier-pigeon", APIKey: "k"}); err == nil {
		t.Error("expected an error for an unknown backend")
	}
	b, err := NewBackend(context.Background(), types.AIConfig{APIKey: "k"})
	if err != nil {
		t.Fatal(err)
	}
	if b.Name() != "openai" {
		t.Errorf("default backend = %q, want openai", b.Name())
	}
}
