// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"testing"
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

func TestAuthorSignalBands(t *testing.T) {
	tests := []struct {
		authors int
		want    float64
	}{
		{0, 0},
		{1, 5},
		{2, 5},
		{3, 20},
		{8, 20},
		{9, 12},
		{15, 12},
		{16, 5},
		{200, 5},
	}
	for _, tt := range tests {
		if got := authorSignal(tt.authors); got != tt.want {
			t.Errorf("authorSignal(%d) = %v, want %v", tt.authors, got, tt.want)
		}
	}
}

func TestAgeSignalBands(t *testing.T) {
	tests := []struct {
		days int
		want float64
	}{
		{-1, 5},
		{0, 5},
		{90, 5},
		{91, 10},
		{182, 10},
		{183, 15},
		{730, 15},
		{731, 8},
		{1095, 8},
		{1096, 3},
	}
	for _, tt := range tests {
		if got := ageSignal(tt.days); got != tt.want {
			t.Errorf("ageSignal(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestTitleSignal(t *testing.T) {
	e := NewEngine(nil, DefaultVocabulary())

	// Short dense title: one top term (10) in a 6-word title, short-title
	// floor of 5 words does not apply: 10*10/6.
	got := e.titleSignal("Deep Learning for Power Grid Control")
	if got < 10 || got > titleCap {
		t.Errorf("dense title signal = %v, want within (10, %d]", got, titleCap)
	}

	// A long rambling title with one hit is diluted below the dense one.
	long := "A Comprehensive and Extremely Detailed Survey of Many Loosely " +
		"Related Ideas Around Deep Learning and Other Topics of General Interest"
	if diluted := e.titleSignal(long); diluted >= got {
		t.Errorf("long title signal = %v, want below %v", diluted, got)
	}

	if got := e.titleSignal(""); got != 0 {
		t.Errorf("empty title signal = %v, want 0", got)
	}
	if got := e.titleSignal("On Widgets"); got != 0 {
		t.Errorf("no-hit title signal = %v, want 0", got)
	}
}

func TestAbstractSignal(t *testing.T) {
	e := NewEngine(nil, DefaultVocabulary())

	if got := e.abstractSignal(""); got != 0 {
		t.Errorf("empty abstract signal = %v, want 0", got)
	}

	// Sweet-band length + quantitative claim + method verb maxes the cap.
	full := "We propose a forecasting model that reaches 95.2% accuracy on " +
		"held-out data. " + pad(300)
	if got := e.abstractSignal(full); got != abstractCap {
		t.Errorf("full abstract signal = %v, want %d", got, abstractCap)
	}

	// Tiny abstract with no claims scores nothing.
	if got := e.abstractSignal("Short note."); got != 0 {
		t.Errorf("tiny abstract signal = %v, want 0", got)
	}
}

func TestCategorySignalBestOnly(t *testing.T) {
	e := NewEngine(nil, DefaultVocabulary())

	got := e.categorySignal([]string{"cs.DC", "cs.LG", "math.OC"})
	if got != 15 {
		t.Errorf("categorySignal = %v, want best match 15", got)
	}
	if got := e.categorySignal([]string{"hep-th"}); got != 0 {
		t.Errorf("unknown category signal = %v, want 0", got)
	}
	if got := e.categorySignal(nil); got != 0 {
		t.Errorf("nil categories signal = %v, want 0", got)
	}
}

func TestDomainSignalHighestTierWins(t *testing.T) {
	e := NewEngine(nil, DefaultVocabulary())

	// Text hits both tier 15 and tier 6 phrases; only the top tier counts.
	got := e.domainSignal("digital twin energy models for the smart grid")
	if got != 15 {
		t.Errorf("domainSignal = %v, want 15", got)
	}
	if got := e.domainSignal("category theory for its own sake"); got != 0 {
		t.Errorf("no-match domainSignal = %v, want 0", got)
	}
}

func TestImportanceBounded(t *testing.T) {
	e := NewEngine([]string{"machine learning"}, DefaultVocabulary())
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	papers := []types.Paper{
		{},
		{Title: "Deep Learning Neural Network Transformer Generative Reinforcement Learning"},
		{
			Title:      "Machine Learning for Smart Grid AI Load Forecasting",
			Abstract:   "We propose a model with 99% accuracy. " + pad(400),
			Authors:    []string{"a", "b", "c", "d"},
			Categories: []string{"cs.LG", "eess.SY"},
			Published:  now.AddDate(-1, 0, 0),
		},
	}
	for i, p := range papers {
		got := e.importance(p, now)
		if got < 0 || got > 100 {
			t.Errorf("importance(paper %d) = %v, out of [0,100]", i, got)
		}
	}

	// The fully loaded paper should land well above the empty one.
	if lo, hi := e.importance(papers[0], now), e.importance(papers[2], now); hi <= lo {
		t.Errorf("loaded paper importance %v not above empty paper %v", hi, lo)
	}
}

// pad returns n filler characters for building abstracts of a given length.
func pad(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
		if i%8 == 7 {
			b[i] = ' '
		}
	}
	return string(b)
}
