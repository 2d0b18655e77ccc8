// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/fetch"
	"github.com/pdiddy/paper-digest/internal/score"
	"github.com/pdiddy/paper-digest/internal/selection"
	"github.com/pdiddy/paper-digest/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Preview discovery and selection without summarizing",
	Long: `Search runs the discovery half of the pipeline: it fetches candidates
for the configured (or flag-provided) keywords, scores them, and shows
what a digest run would select. Nothing is summarized, persisted, or
delivered; use it to tune keywords and selection settings.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("keywords", "", "override search keywords (comma-separated)")
	searchCmd.Flags().Int("max-results", 0, "override the selection size")
	searchCmd.Flags().Int("days-back", 0, "override the trailing window in days")
	searchCmd.Flags().Bool("json", false, "output the selection as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()

	if kw, _ := cmd.Flags().GetString("keywords"); kw != "" {
		var keywords []string
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		cfg.Fetch.SearchKeywords = keywords
		cfg.Selection.UserKeywords = keywords
	}
	if n, _ := cmd.Flags().GetInt("max-results"); n > 0 {
		cfg.Selection.MaxResults = n
	}
	if d, _ := cmd.Flags().GetInt("days-back"); d > 0 {
		cfg.Selection.DaysBack = d
	}
	if len(cfg.Fetch.SearchKeywords) == 0 {
		return fmt.Errorf("no search keywords configured; set fetch.search_keywords or pass --keywords")
	}

	src := &fetch.ArxivSource{Client: &http.Client{Timeout: cfg.Fetch.Timeout}}
	fetched, err := fetch.FetchAll(cmd.Context(), src, cfg.Fetch, logger)
	if err != nil {
		return err
	}

	now := time.Now()
	engine := score.NewEngine(cfg.Selection.UserKeywords, score.DefaultVocabulary())
	scored := engine.ScoreAll(fetched.Papers, now)
	selected, report := selection.NewPipeline(cfg.Selection).Select(scored, now)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		out := struct {
			Papers []types.Paper    `json:"papers"`
			Report selection.Report `json:"report"`
		}{selected, report}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printSelection(selected, report)
	return nil
}

func printSelection(papers []types.Paper, report selection.Report) {
	fmt.Printf("%-14s %-7s %-5s %-5s %-5s  %s\n", "ID", "SCORE", "REL", "IMP", "REC", "TITLE")
	for _, p := range papers {
		title := p.Title
		if len(title) > 70 {
			title = title[:67] + "..."
		}
		fmt.Printf("%-14s %-7.1f %-5.0f %-5.0f %-5.0f  %s\n",
			p.ID, p.CombinedScore, p.RelevanceScore, p.ImportanceScore, p.RecencyScore, title)
	}
	fmt.Printf("\n%d candidates, %d duplicates, %d outside window, %d selected\n",
		report.Input, report.Duplicates, report.OutsideWindow, report.Selected)
	if report.FloorRelaxed {
		fmt.Println("relevance floor was relaxed to fill the selection")
	}
}
