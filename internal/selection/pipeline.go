// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selection narrows the scored candidate pool down to the papers a
// single digest should carry. The pipeline runs a fixed sequence of
// shrinking stages; every sort is stable so ties keep retrieval order.
package selection

import (
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Combined score weights. Relevance dominates: the digest serves the
// configured interests first, intrinsic significance and freshness second.
const (
	RelevanceWeight  = 0.6
	ImportanceWeight = 0.3
	RecencyWeight    = 0.1
)

// Combined blends a scored paper's three component scores.
func Combined(p types.Paper) float64 {
	return RelevanceWeight*p.RelevanceScore +
		ImportanceWeight*p.ImportanceScore +
		RecencyWeight*p.RecencyScore
}

// Report records how many papers each stage kept and dropped, for run
// logging and the digest footer.
type Report struct {
	Input          int  `json:"input" yaml:"input"`
	Duplicates     int  `json:"duplicates" yaml:"duplicates"`
	Undated        int  `json:"undated" yaml:"undated"`
	OutsideWindow  int  `json:"outside_window" yaml:"outside_window"`
	AfterWindow    int  `json:"after_window" yaml:"after_window"`
	AfterRelevance int  `json:"after_relevance" yaml:"after_relevance"`
	FloorRelaxed   bool `json:"floor_relaxed" yaml:"floor_relaxed"`
	AfterCombined  int  `json:"after_combined" yaml:"after_combined"`
	Selected       int  `json:"selected" yaml:"selected"`

	// KeywordSlots counts the finalists drawn from each keyword bucket;
	// Backfilled counts finalists taken outside the bucket quotas.
	KeywordSlots map[string]int `json:"keyword_slots,omitempty" yaml:"keyword_slots,omitempty"`
	Backfilled   int            `json:"backfilled" yaml:"backfilled"`
}

// Pipeline selects digest papers from a scored pool according to a fixed
// selection configuration.
type Pipeline struct {
	cfg types.SelectionConfig
}

// NewPipeline builds a pipeline for the given configuration. A
// non-positive MaxResults falls back to 10, a non-positive DaysBack to 7,
// and a zero MinRelevance to the standard floor of 30. A negative
// MinRelevance disables the floor entirely.
func NewPipeline(cfg types.SelectionConfig) *Pipeline {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if cfg.DaysBack <= 0 {
		cfg.DaysBack = 7
	}
	switch {
	case cfg.MinRelevance == 0:
		cfg.MinRelevance = 30
	case cfg.MinRelevance < 0:
		cfg.MinRelevance = 0
	}
	return &Pipeline{cfg: cfg}
}

// Select runs the full stage sequence over a scored pool and returns the
// chosen papers, with combined scores set, alongside the stage report.
// The input slice is not modified.
func (pl *Pipeline) Select(pool []types.Paper, now time.Time) ([]types.Paper, Report) {
	report := Report{Input: len(pool)}

	papers := dedupe(pool, &report)
	papers = pl.dateWindow(papers, now, &report)
	papers = pl.relevanceCut(papers, &report)
	papers = pl.combinedCut(papers, &report)
	papers = pl.balance(papers, &report)

	report.Selected = len(papers)
	return papers, report
}
