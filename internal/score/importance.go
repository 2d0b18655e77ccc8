// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"strings"
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Per-signal caps. Each signal is bounded before summation so no single
// signal can dominate; the total is clamped to [0,100].
const (
	authorCap   = 20
	titleCap    = 20
	abstractCap = 25
	categoryCap = 15
	ageCap      = 15
	domainCap   = 15
)

// importance estimates intrinsic research significance without citation
// data: a capped sum of independent heuristic signals.
func (e *Engine) importance(p types.Paper, now time.Time) float64 {
	sum := authorSignal(len(p.Authors)) +
		e.titleSignal(p.Title) +
		e.abstractSignal(p.Abstract) +
		e.categorySignal(p.Categories) +
		ageSignal(p.AgeDays(now)) +
		e.domainSignal(strings.ToLower(p.Title + " " + p.Abstract))
	return clamp(sum, 0, 100)
}

// authorSignal rewards moderate co-authorship: 3-8 authors reads as a
// substantive collaboration, mega-author lists and single names less so.
func authorSignal(n int) float64 {
	switch {
	case n == 0:
		return 0
	case n >= 3 && n <= 8:
		return authorCap
	case n >= 9 && n <= 15:
		return 12
	default:
		return 5
	}
}

// titleSignal scans the title against the tiered technical vocabulary.
// Points are normalized by title length so long titles do not accumulate
// hits for free.
func (e *Engine) titleSignal(title string) float64 {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return 0
	}
	words := len(strings.Fields(title))

	var raw float64
	for _, term := range e.vocab.TitleTopTerms {
		if strings.Contains(title, term) {
			raw += 10
		}
	}
	for _, term := range e.vocab.TitleMidTerms {
		if strings.Contains(title, term) {
			raw += 4
		}
	}

	norm := raw * 10 / max(5, float64(words))
	return clamp(norm, 0, titleCap)
}

// abstractSignal rewards abstracts in the 200-2000 character sweet band,
// quantitative result statements, and explicit contribution verbs.
func (e *Engine) abstractSignal(abstract string) float64 {
	abstract = strings.TrimSpace(abstract)
	if abstract == "" {
		return 0
	}

	var pts float64
	if n := len(abstract); n >= 200 && n <= 2000 {
		pts += 10
	}
	if quantPattern.MatchString(abstract) {
		pts += 8
	}
	lower := strings.ToLower(abstract)
	for _, verb := range e.vocab.MethodVerbs {
		if strings.Contains(lower, verb) {
			pts += 7
			break
		}
	}
	return clamp(pts, 0, abstractCap)
}

// categorySignal takes the single best-scoring matching taxonomy tag.
func (e *Engine) categorySignal(categories []string) float64 {
	var best float64
	for _, c := range categories {
		if w, ok := e.vocab.CategoryWeights[c]; ok && w > best {
			best = w
		}
	}
	return clamp(best, 0, categoryCap)
}

// ageSignal prefers papers old enough to have been vetted (six months to
// two years) over just-posted preprints and stale work. Unknown dates get
// the neutral middle.
func ageSignal(days int) float64 {
	switch {
	case days < 0:
		return 5
	case days <= 90:
		return 5
	case days <= 182:
		return 10
	case days <= 730:
		return ageCap
	case days <= 1095:
		return 8
	default:
		return 3
	}
}

// domainSignal awards the single highest matching domain tier, not a sum.
func (e *Engine) domainSignal(text string) float64 {
	for _, tier := range e.vocab.DomainTiers {
		for _, term := range tier.Terms {
			if strings.Contains(text, term) {
				return clamp(tier.Points, 0, domainCap)
			}
		}
	}
	return 0
}
