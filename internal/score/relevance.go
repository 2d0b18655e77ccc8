// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// NeutralRelevance is assigned to every paper when no user keywords are
// configured, so downstream ranking degrades to importance and recency.
const NeutralRelevance = 50.0

// Component caps and weights for the relevance blend.
const (
	titleWeight    = 3.0
	abstractWeight = 2.0
	searchWeight   = 1.5

	titleRelCap    = 35
	abstractRelCap = 25
	searchRelCap   = 15
	relatedCap     = 10
	catStemCap     = 10
	coocCap        = 15

	coocConstant = 3.0
)

// Length dilution bases: texts at or below the base length score
// undiluted; longer texts are scaled down proportionally.
const (
	titleNormWords    = 15.0
	abstractNormWords = 250.0
)

// MatchScore measures how well a single keyword matches a text, in [0,1].
// An exact substring hit scores 1.0. A multi-word keyword that matches only
// partially scores the fraction of its constituent words present. Matching
// is case-insensitive.
func MatchScore(keyword, text string) float64 {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" || text == "" {
		return 0
	}
	text = strings.ToLower(text)

	if strings.Contains(text, keyword) {
		return 1.0
	}

	words := strings.Fields(keyword)
	if len(words) < 2 {
		return 0
	}
	present := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			present++
		}
	}
	return float64(present) / float64(len(words))
}

// relevance estimates fit to the configured user keywords as a capped sum
// of match components. With no keywords configured every paper scores the
// neutral midpoint.
func (e *Engine) relevance(p types.Paper) float64 {
	if len(e.keywords) == 0 {
		return NeutralRelevance
	}

	title := strings.ToLower(p.Title)
	abstract := strings.ToLower(p.Abstract)
	body := title + " " + abstract

	sum := e.textComponent(title, titleWeight, titleNormWords, titleRelCap) +
		e.textComponent(abstract, abstractWeight, abstractNormWords, abstractRelCap) +
		searchAlignment(p.SearchKeyword, body) +
		e.relatedTermBonus(body) +
		e.categoryStemBonus(p.Categories) +
		e.coOccurrenceBonus(body)

	return clamp(sum, 0, 100)
}

// textComponent averages keyword match scores over the text, scales by the
// component weight, and dilutes for texts beyond the base length.
func (e *Engine) textComponent(text string, weight, normWords, limit float64) float64 {
	if text == "" {
		return 0
	}
	var total float64
	for _, kw := range e.keywords {
		total += MatchScore(kw, text)
	}
	mean := total / float64(len(e.keywords))

	dilution := 1.0
	if words := float64(len(strings.Fields(text))); words > normWords {
		dilution = normWords / words
	}
	return clamp(mean*10*weight*dilution, 0, limit)
}

// searchAlignment applies the match function to the keyword that produced
// this candidate; a paper that still matches its own search keyword in
// title or abstract is a better retrieval hit.
func searchAlignment(searchKeyword, body string) float64 {
	return clamp(MatchScore(searchKeyword, body)*10*searchWeight, 0, searchRelCap)
}

// relatedTermBonus consults the thesaurus: the more related terms for the
// configured keywords appear in the paper, the higher the bonus.
func (e *Engine) relatedTermBonus(body string) float64 {
	total, matched := 0, 0
	for _, kw := range e.keywords {
		for _, term := range e.vocab.RelatedTerms[kw] {
			total++
			if strings.Contains(body, term) {
				matched++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return clamp(float64(matched)/float64(total)*relatedCap, 0, relatedCap)
}

// categoryStemBonus awards points when a paper's taxonomy tags are
// topically associated with a configured keyword.
func (e *Engine) categoryStemBonus(categories []string) float64 {
	var pts float64
	for _, c := range categories {
		stems := e.vocab.CategoryStems[c]
		if len(stems) == 0 {
			continue
		}
	stem:
		for _, stem := range stems {
			for _, kw := range e.keywords {
				if strings.Contains(kw, stem) || strings.Contains(stem, kw) {
					pts += 5
					break stem
				}
			}
		}
	}
	return clamp(pts, 0, catStemCap)
}

// coOccurrenceBonus grows combinatorially with the number of distinct
// configured keywords present in the paper: k present yields
// k·(k−1)·coocConstant, capped. Papers at the intersection of several
// topics of interest outrank single-topic hits.
func (e *Engine) coOccurrenceBonus(body string) float64 {
	k := 0
	for _, kw := range e.keywords {
		if MatchScore(kw, body) >= 1.0 {
			k++
		}
	}
	if k < 2 {
		return 0
	}
	return clamp(float64(k*(k-1))*coocConstant, 0, coocCap)
}
