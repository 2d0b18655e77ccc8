// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selection

import (
	"strings"

	"github.com/pdiddy/paper-digest/internal/score"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// balance makes the final pick. With no user keywords it is a plain top-N
// by combined score. Otherwise the pool is bucketed per keyword, each
// bucket contributes an equal share of the digest, and any slots a thin
// bucket cannot fill are backfilled from the whole remainder. This stops a
// single hot topic from crowding out the others.
//
// The incoming pool is already sorted by combined score, so bucket order
// and backfill order inherit that ranking.
func (pl *Pipeline) balance(pool []types.Paper, report *Report) []types.Paper {
	n := pl.cfg.MaxResults
	if len(pool) <= n {
		return pool
	}

	keywords := cleanKeywords(pl.cfg.UserKeywords)
	if len(keywords) == 0 {
		return pool[:n]
	}

	buckets := make(map[string][]int, len(keywords))
	for i, p := range pool {
		if kw := bestKeyword(p, keywords); kw != "" {
			buckets[kw] = append(buckets[kw], i)
		}
	}

	report.KeywordSlots = make(map[string]int, len(keywords))
	share := max(1, n/len(keywords))
	taken := make(map[int]bool, n)
	picked := 0
	for _, kw := range keywords {
		for _, idx := range buckets[kw] {
			if report.KeywordSlots[kw] >= share || picked >= n {
				break
			}
			taken[idx] = true
			report.KeywordSlots[kw]++
			picked++
		}
	}

	// Backfill from the full pool in combined-score order.
	for idx := range pool {
		if picked >= n {
			break
		}
		if taken[idx] {
			continue
		}
		taken[idx] = true
		report.Backfilled++
		picked++
	}

	out := make([]types.Paper, 0, n)
	for idx, p := range pool {
		if taken[idx] {
			out = append(out, p)
		}
	}
	return out
}

// bestKeyword assigns a paper to the keyword matching its title and
// abstract best. Exact ties fall to the earlier configured keyword; a
// paper matching nothing stays unbucketed and competes only in backfill.
func bestKeyword(p types.Paper, keywords []string) string {
	body := p.Title + " " + p.Abstract
	bestKw, bestScore := "", 0.0
	for _, kw := range keywords {
		if s := score.MatchScore(kw, body); s > bestScore {
			bestKw, bestScore = kw, s
		}
	}
	return bestKw
}

func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
