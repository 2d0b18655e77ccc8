// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect papers processed by earlier runs",
	Long: `History lists papers recorded by earlier digest runs, newest first.
With --export it writes the listing as YAML instead, for feeding other
tools or auditing what subscribers were sent.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("days", 30, "trailing window in days (0 for everything)")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.Flags().String("export", "", "write YAML to this file instead of listing")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()
	days, _ := cmd.Flags().GetInt("days")

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close()

	if exportPath, _ := cmd.Flags().GetString("export"); exportPath != "" {
		f, err := os.Create(exportPath)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		if err := store.ExportYAML(cmd.Context(), f, days); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "exported to", exportPath)
		return nil
	}

	papers, err := store.RecentPapers(cmd.Context(), days)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	for _, p := range papers {
		marker := " "
		if p.SummaryGenerated {
			marker = "*"
		}
		date := ""
		if !p.Published.IsZero() {
			date = p.Published.Format("2006-01-02")
		}
		fmt.Printf("%s %-14s %-10s %.1f  %s\n", marker, p.ID, date, p.CombinedScore, p.Title)
	}
	fmt.Printf("\n%d papers (* = summarized)\n", len(papers))
	return nil
}
