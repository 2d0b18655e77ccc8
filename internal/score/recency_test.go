// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"math"
	"testing"
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

func paperAgedDays(now time.Time, days int) types.Paper {
	return types.Paper{ID: "p", Published: now.AddDate(0, 0, -days)}
}

func TestRecencySteps(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		days int
		want float64
	}{
		{"same day", 0, 100},
		{"exactly 30 days", 30, 100},
		{"31 days", 31, 90},
		{"90 days", 90, 90},
		{"91 days", 91, 80},
		{"180 days", 180, 80},
		{"181 days", 181, 70},
		{"365 days", 365, 70},
		{"366 days", 366, 50},
		{"730 days", 730, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recency(paperAgedDays(now, tt.days), now)
			if got != tt.want {
				t.Errorf("Recency(%d days) = %v, want %v", tt.days, got, tt.want)
			}
		})
	}
}

func TestRecencyLinearDecay(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	got := Recency(paperAgedDays(now, 731), now)
	want := 50 - 1.0/30
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Recency(731 days) = %v, want %v", got, want)
	}

	// 30 days past the knee loses exactly one point.
	got = Recency(paperAgedDays(now, 760), now)
	if math.Abs(got-49) > 1e-9 {
		t.Errorf("Recency(760 days) = %v, want 49", got)
	}

	// Far past papers floor at zero.
	if got := Recency(paperAgedDays(now, 10000), now); got != 0 {
		t.Errorf("Recency(10000 days) = %v, want 0", got)
	}
}

func TestRecencyUnknownDate(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	if got := Recency(types.Paper{ID: "p"}, now); got != 50 {
		t.Errorf("Recency(zero date) = %v, want 50", got)
	}
}
