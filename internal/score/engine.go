// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score derives the bounded importance, relevance and recency scores
// for candidate papers. Scoring is a pure function of a paper, the injected
// vocabulary and the clock: it performs no I/O and never fails, degrading
// malformed inputs to zero or neutral contributions instead.
package score

import (
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// quantPattern spots quantitative result statements in abstracts:
// percentages and the usual evaluation metric names.
var quantPattern = regexp.MustCompile(`(?i)\d+(\.\d+)?\s*%|accuracy|precision|recall|f1[- ]?score|rmse|mae|auc|error rate`)

// Engine scores papers against a fixed keyword set and vocabulary. All
// lookup data is lowercased once at construction; the engine is safe for
// reuse across a whole run.
type Engine struct {
	keywords []string
	vocab    Vocabulary
}

// NewEngine builds an engine for the given user keywords and vocabulary.
// Keywords keep their configured order; empty entries are dropped.
func NewEngine(keywords []string, vocab Vocabulary) *Engine {
	e := &Engine{vocab: lowerVocabulary(vocab)}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			e.keywords = append(e.keywords, kw)
		}
	}
	return e
}

// Keywords returns the engine's configured user keywords, lowercased, in
// configured order.
func (e *Engine) Keywords() []string {
	return e.keywords
}

// Score returns a copy of p with importance, relevance and recency set.
func (e *Engine) Score(p types.Paper, now time.Time) types.Paper {
	return p.WithScores(
		e.importance(p, now),
		e.relevance(p),
		Recency(p, now),
	)
}

// ScoreAll scores every paper in the pool, preserving order.
func (e *Engine) ScoreAll(papers []types.Paper, now time.Time) []types.Paper {
	scored := make([]types.Paper, len(papers))
	for i, p := range papers {
		scored[i] = e.Score(p, now)
	}
	return scored
}

func lowerVocabulary(v Vocabulary) Vocabulary {
	out := Vocabulary{
		TitleTopTerms:   lowerAll(v.TitleTopTerms),
		TitleMidTerms:   lowerAll(v.TitleMidTerms),
		MethodVerbs:     lowerAll(v.MethodVerbs),
		CategoryWeights: v.CategoryWeights,
	}
	for _, t := range v.DomainTiers {
		out.DomainTiers = append(out.DomainTiers, Tier{Points: t.Points, Terms: lowerAll(t.Terms)})
	}
	if v.RelatedTerms != nil {
		out.RelatedTerms = make(map[string][]string, len(v.RelatedTerms))
		for k, terms := range v.RelatedTerms {
			out.RelatedTerms[strings.ToLower(k)] = lowerAll(terms)
		}
	}
	if v.CategoryStems != nil {
		out.CategoryStems = make(map[string][]string, len(v.CategoryStems))
		for k, stems := range v.CategoryStems {
			out.CategoryStems[k] = lowerAll(stems)
		}
	}
	return out
}

func lowerAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(t)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
