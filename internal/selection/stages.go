// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selection

import (
	"sort"
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// dedupe drops repeat identifiers, keeping the first occurrence. The same
// paper routinely surfaces under several search keywords.
func dedupe(pool []types.Paper, report *Report) []types.Paper {
	seen := make(map[string]bool, len(pool))
	out := make([]types.Paper, 0, len(pool))
	for _, p := range pool {
		if seen[p.ID] {
			report.Duplicates++
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// window returns the half-open acceptance interval [start, end). An
// explicit range beats the trailing DaysBack window; the end date is
// inclusive through its last moment.
func (pl *Pipeline) window(now time.Time) (time.Time, time.Time) {
	if !pl.cfg.StartDate.IsZero() {
		end := now
		if !pl.cfg.EndDate.IsZero() {
			end = pl.cfg.EndDate.AddDate(0, 0, 1)
		}
		return pl.cfg.StartDate, end
	}
	return now.AddDate(0, 0, -pl.cfg.DaysBack), now.Add(time.Second)
}

// dateWindow keeps papers published inside the configured window. Papers
// without a publication date cannot be placed and are dropped.
func (pl *Pipeline) dateWindow(pool []types.Paper, now time.Time, report *Report) []types.Paper {
	start, end := pl.window(now)
	out := make([]types.Paper, 0, len(pool))
	for _, p := range pool {
		if p.Published.IsZero() {
			report.Undated++
			continue
		}
		if p.Published.Before(start) || !p.Published.Before(end) {
			report.OutsideWindow++
			continue
		}
		out = append(out, p)
	}
	report.AfterWindow = len(out)
	return out
}

// relevanceCut keeps the top papers by relevance, three times the final
// target so later stages still have room to rebalance, and applies the
// relevance floor. When the floor leaves fewer papers than the digest
// needs it is relaxed and the cut proceeds on rank alone.
func (pl *Pipeline) relevanceCut(pool []types.Paper, report *Report) []types.Paper {
	target := 3 * pl.cfg.MaxResults
	if ceil := min(100, len(pool)); ceil > target {
		target = ceil
	}

	ranked := make([]types.Paper, len(pool))
	copy(ranked, pool)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})
	if len(ranked) > target {
		ranked = ranked[:target]
	}

	kept := make([]types.Paper, 0, len(ranked))
	for _, p := range ranked {
		if p.RelevanceScore >= pl.cfg.MinRelevance {
			kept = append(kept, p)
		}
	}
	if len(kept) < pl.cfg.MaxResults {
		report.FloorRelaxed = true
		kept = ranked
	}

	report.AfterRelevance = len(kept)
	return kept
}

// combinedCut computes combined scores and keeps the top papers, twice the
// final target, by that blend.
func (pl *Pipeline) combinedCut(pool []types.Paper, report *Report) []types.Paper {
	target := 2 * pl.cfg.MaxResults
	if ceil := min(50, len(pool)); ceil > target {
		target = ceil
	}

	scored := make([]types.Paper, len(pool))
	for i, p := range pool {
		scored[i] = p.WithCombinedScore(Combined(p))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CombinedScore > scored[j].CombinedScore
	})
	if len(scored) > target {
		scored = scored[:target]
	}

	report.AfterCombined = len(scored)
	return scored
}
