// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-digest pipeline.
package types

import "time"

// Paper is the canonical record for one discovered paper. The retriever
// creates it, the scoring engine derives the score fields, the selection
// pipeline filters without mutating, and the summarizer attaches the digest
// text. Transformations return a new value; stages never share mutable state.
type Paper struct {
	// ID is the stable source identifier (arXiv ID with the version
	// suffix stripped, e.g. "2301.07041"). Two records with equal ID are
	// the same paper.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the publication date at day granularity. Zero when the
	// source date could not be parsed.
	Published time.Time `json:"published" yaml:"published"`

	// Categories holds the source taxonomy tags (e.g. "cs.LG").
	Categories []string `json:"categories" yaml:"categories"`

	// PDFURL locates the paper PDF. The retriever synthesizes it from ID
	// when the source omits one; it is passed through verbatim downstream.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// SearchKeyword is the search keyword that produced this candidate.
	// Provenance only; it plays no part in identity.
	SearchKeyword string `json:"search_keyword" yaml:"search_keyword"`

	// ImportanceScore, RelevanceScore and RecencyScore are in [0,100] and
	// valid only once Scored is true.
	ImportanceScore float64 `json:"importance_score" yaml:"importance_score"`
	RelevanceScore  float64 `json:"relevance_score" yaml:"relevance_score"`
	RecencyScore    float64 `json:"recency_score" yaml:"recency_score"`

	// CombinedScore is the ranking blend of the three scores. Zero until
	// the selection pipeline computes it.
	CombinedScore float64 `json:"combined_score" yaml:"combined_score"`

	// Scored reports whether the scoring engine has run on this record.
	Scored bool `json:"scored" yaml:"scored"`

	// Summary is the generated digest text. SummaryGenerated is false for
	// papers that were selected but whose summarization failed; those keep
	// a placeholder Summary and are still persisted and reported.
	Summary          string `json:"summary,omitempty" yaml:"summary,omitempty"`
	SummaryGenerated bool   `json:"summary_generated" yaml:"summary_generated"`
}

// WithScores returns a copy with the three derived scores set and the
// Scored flag raised.
func (p Paper) WithScores(importance, relevance, recency float64) Paper {
	p.ImportanceScore = importance
	p.RelevanceScore = relevance
	p.RecencyScore = recency
	p.Scored = true
	return p
}

// WithCombinedScore returns a copy with the ranking blend set.
func (p Paper) WithCombinedScore(combined float64) Paper {
	p.CombinedScore = combined
	return p
}

// WithSummary returns a copy carrying the digest text and its outcome flag.
func (p Paper) WithSummary(summary string, generated bool) Paper {
	p.Summary = summary
	p.SummaryGenerated = generated
	return p
}

// AgeDays returns the paper age in whole days at now, or -1 when the
// publication date is unknown.
func (p Paper) AgeDays(now time.Time) int {
	if p.Published.IsZero() {
		return -1
	}
	return int(now.Sub(p.Published).Hours() / 24)
}
