// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one full digest pass: fetch, novelty filter,
// score, select, summarize, persist, notify. Stages run sequentially; a
// stage that can degrade does, a stage whose failure would corrupt the
// digest aborts the run with a typed error.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-digest/internal/fetch"
	"github.com/pdiddy/paper-digest/internal/history"
	"github.com/pdiddy/paper-digest/internal/notify"
	"github.com/pdiddy/paper-digest/internal/score"
	"github.com/pdiddy/paper-digest/internal/selection"
	"github.com/pdiddy/paper-digest/internal/summarize"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// HistoryStore is the slice of the history layer the pipeline needs.
type HistoryStore interface {
	FilterNovel(ctx context.Context, pool []types.Paper) ([]types.Paper, int, error)
	SavePapers(ctx context.Context, papers []types.Paper) error
	RecordRun(ctx context.Context, run history.RunRecord) error
}

// Deps are the pipeline's collaborators, injected so runs are testable
// end to end with fakes.
type Deps struct {
	Source    fetch.Source
	Engine    *score.Engine
	Store     HistoryStore
	Backend   summarize.AIBackend
	Notifiers []notify.Notifier

	// Now stands in for time.Now when set.
	Now func() time.Time
}

// Summary is the outcome of one digest run.
type Summary struct {
	RunID          string           `json:"run_id" yaml:"run_id"`
	Discovered     int              `json:"discovered" yaml:"discovered"`
	AlreadySeen    int              `json:"already_seen" yaml:"already_seen"`
	Selected       int              `json:"selected" yaml:"selected"`
	Summarized     int              `json:"summarized" yaml:"summarized"`
	FailedKeywords []string         `json:"failed_keywords,omitempty" yaml:"failed_keywords,omitempty"`
	Selection      selection.Report `json:"selection" yaml:"selection"`
	Duration       time.Duration    `json:"duration" yaml:"duration"`
}

// Run executes one digest pass. An empty pass, where nothing new and
// relevant was found, is a success and still notifies subscribers.
func Run(ctx context.Context, deps Deps, cfg types.PipelineConfig, log zerolog.Logger) (Summary, error) {
	nowFn := deps.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	started := nowFn()

	summary := Summary{RunID: uuid.NewString()}
	log = log.With().Str("run_id", summary.RunID).Logger()
	log.Info().Strs("keywords", cfg.Fetch.SearchKeywords).Msg("digest run started")

	// Fetch.
	fetched, err := fetch.FetchAll(ctx, deps.Source, cfg.Fetch, log)
	summary.FailedKeywords = fetched.FailedKeywords
	if err != nil {
		return summary, &RetrievalError{Err: err}
	}
	summary.Discovered = len(fetched.Papers)
	log.Info().Int("papers", summary.Discovered).Msg("candidates fetched")

	// Novelty filter, failing open on history trouble.
	pool, dropped, err := deps.Store.FilterNovel(ctx, fetched.Papers)
	if err != nil {
		log.Warn().Err(err).Msg("history unavailable, skipping novelty filter")
	}
	summary.AlreadySeen = dropped

	// Score and select.
	now := nowFn()
	scored := deps.Engine.ScoreAll(pool, now)
	selected, report := selection.NewPipeline(cfg.Selection).Select(scored, now)
	summary.Selection = report
	summary.Selected = len(selected)
	log.Info().Int("selected", summary.Selected).Int("already_seen", dropped).
		Int("duplicates", report.Duplicates).Msg("selection done")

	// Summarize. With papers selected, a complete blank is fatal; skipped
	// entirely on an empty selection.
	var summarizeErr error
	if len(selected) > 0 {
		var batch summarize.BatchSummary
		selected, batch, err = summarize.Batch(ctx, deps.Backend, selected, cfg.Summarize, log)
		summary.Summarized = batch.Summarized
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			summarizeErr = &SummarizationError{Err: err}
		}
	}

	// Persist before notifying: an unrecorded digest would repeat itself.
	if err := deps.Store.SavePapers(ctx, selected); err != nil {
		return summary, &PersistenceError{Err: err}
	}
	summary.Duration = nowFn().Sub(started)
	run := history.RunRecord{
		ID:             summary.RunID,
		StartedAt:      started,
		FinishedAt:     nowFn(),
		Discovered:     summary.Discovered,
		Selected:       summary.Selected,
		Summarized:     summary.Summarized,
		FailedKeywords: summary.FailedKeywords,
	}
	if err := deps.Store.RecordRun(ctx, run); err != nil {
		return summary, &PersistenceError{Err: err}
	}

	if summarizeErr != nil {
		return summary, summarizeErr
	}

	// Notify every channel; failures are pooled so one broken channel
	// does not silence the others.
	digest := notify.Digest{
		Date:           started,
		Papers:         selected,
		Discovered:     summary.Discovered,
		Selected:       summary.Selected,
		Summarized:     summary.Summarized,
		FailedKeywords: summary.FailedKeywords,
	}
	var notifyErrs []error
	for _, n := range deps.Notifiers {
		if err := n.Send(ctx, digest); err != nil {
			log.Error().Err(err).Str("channel", n.Name()).Msg("digest delivery failed")
			notifyErrs = append(notifyErrs, fmt.Errorf("%s: %w", n.Name(), err))
		} else {
			log.Info().Str("channel", n.Name()).Msg("digest delivered")
		}
	}
	if len(notifyErrs) > 0 {
		return summary, &NotificationError{Err: errors.Join(notifyErrs...)}
	}

	log.Info().Dur("duration", summary.Duration).Int("summarized", summary.Summarized).
		Msg("digest run finished")
	return summary, nil
}
