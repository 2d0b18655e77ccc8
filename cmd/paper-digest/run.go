// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/fetch"
	"github.com/pdiddy/paper-digest/internal/history"
	"github.com/pdiddy/paper-digest/internal/notify"
	"github.com/pdiddy/paper-digest/internal/pipeline"
	"github.com/pdiddy/paper-digest/internal/score"
	"github.com/pdiddy/paper-digest/internal/summarize"
	"github.com/pdiddy/paper-digest/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full digest pipeline once",
	Long: `Run fetches new candidate papers for every configured search keyword,
drops the ones already processed, scores and selects the best matches,
summarizes them, records the outcome, and delivers the digest. Intended
to be invoked from cron or a systemd timer.`,
	RunE: runDigest,
}

func init() {
	runCmd.Flags().Bool("dry-run", false, "skip persistence and notification")
	rootCmd.AddCommand(runCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()
	if err := validateConfig(cfg); err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close()

	backend, err := summarize.NewBackend(cmd.Context(), cfg.Summarize)
	if err != nil {
		return err
	}
	if closer, ok := backend.(io.Closer); ok {
		defer closer.Close()
	}

	var notifiers []notify.Notifier
	if !dryRun {
		notifiers = append(notifiers, notify.NewEmailNotifier(cfg.Email))
		if cfg.Telegram.BotToken != "" {
			tn, err := notify.NewTelegramNotifier(cfg.Telegram)
			if err != nil {
				return err
			}
			notifiers = append(notifiers, tn)
		}
	}

	deps := pipeline.Deps{
		Source:    &fetch.ArxivSource{Client: &http.Client{Timeout: cfg.Fetch.Timeout}},
		Engine:    score.NewEngine(cfg.Selection.UserKeywords, score.DefaultVocabulary()),
		Store:     store,
		Backend:   backend,
		Notifiers: notifiers,
	}
	if dryRun {
		deps.Store = dryRunStore{inner: store}
	}

	summary, err := pipeline.Run(cmd.Context(), deps, cfg, logger)
	printRunSummary(summary)
	return err
}

// dryRunStore reads from the real history but swallows writes.
type dryRunStore struct {
	inner *history.Store
}

func (d dryRunStore) FilterNovel(ctx context.Context, pool []types.Paper) ([]types.Paper, int, error) {
	return d.inner.FilterNovel(ctx, pool)
}

func (d dryRunStore) SavePapers(context.Context, []types.Paper) error    { return nil }
func (d dryRunStore) RecordRun(context.Context, history.RunRecord) error { return nil }

func printRunSummary(s pipeline.Summary) {
	bold := color.New(color.Bold)
	bold.Fprintf(os.Stdout, "\nrun %s\n", s.RunID)
	fmt.Fprintf(os.Stdout, "  discovered:   %d\n", s.Discovered)
	fmt.Fprintf(os.Stdout, "  already seen: %d\n", s.AlreadySeen)
	fmt.Fprintf(os.Stdout, "  duplicates:   %d\n", s.Selection.Duplicates)
	fmt.Fprintf(os.Stdout, "  selected:     %d\n", s.Selected)
	fmt.Fprintf(os.Stdout, "  summarized:   %d\n", s.Summarized)
	if len(s.FailedKeywords) > 0 {
		color.New(color.FgYellow).Fprintf(os.Stdout, "  failed keywords: %v\n", s.FailedKeywords)
	}
	fmt.Fprintf(os.Stdout, "  duration:     %s\n", s.Duration.Round(time.Millisecond))
}
