// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"testing"
	"time"
)

func validConfig() PipelineConfig {
	return PipelineConfig{
		Fetch: FetchConfig{
			SearchKeywords: []string{"solar power"},
		},
		Selection: SelectionConfig{
			MaxResults: 10,
			DaysBack:   7,
		},
		Summarize: AIConfig{Backend: "openai", APIKey: "sk-123"},
		Email: EmailConfig{
			SMTPServer: "smtp.example.com",
			SMTPPort:   587,
			Sender:     "digest@example.com",
			Recipients: []string{"reader@example.com"},
		},
	}
}

func TestValidateOK(t *testing.T) {
	if problems := validConfig().Validate(); len(problems) != 0 {
		t.Errorf("Validate() = %v, want no problems", problems)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Fetch.SearchKeywords = nil
	cfg.Selection.MaxResults = 0
	cfg.Summarize.APIKey = ""
	cfg.Email.Recipients = []string{"not-an-address"}

	problems := cfg.Validate()
	if len(problems) != 4 {
		t.Fatalf("Validate() found %d problems, want 4: %v", len(problems), problems)
	}
	joined := strings.Join(problems, "; ")
	for _, want := range []string{"search_keywords", "max_results", "api_key", "not-an-address"} {
		if !strings.Contains(joined, want) {
			t.Errorf("problems missing %q: %v", want, problems)
		}
	}
}

func TestValidateDateRange(t *testing.T) {
	cfg := validConfig()
	cfg.Selection.DaysBack = 0
	cfg.Selection.StartDate = time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	cfg.Selection.EndDate = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	problems := cfg.Validate()
	if len(problems) != 1 || !strings.Contains(problems[0], "end_date") {
		t.Errorf("Validate() = %v, want the inverted range flagged", problems)
	}
}

func TestAgeDaysUnknownDate(t *testing.T) {
	if got := (Paper{}).AgeDays(time.Now()); got != -1 {
		t.Errorf("AgeDays(zero date) = %d, want -1", got)
	}
}
