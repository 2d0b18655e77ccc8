// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the candidate retriever.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// SearchKeywords drive retrieval breadth: one source query per keyword.
	SearchKeywords []string `json:"search_keywords" yaml:"search_keywords"`

	// PerKeyword is the number of results requested per keyword query
	// (default 20). The retriever over-fetches to survive later filtering.
	PerKeyword int `json:"per_keyword" yaml:"per_keyword"`

	// PerKeywordDelay is the pause between consecutive keyword queries
	// (default 1s), a courtesy rate limit toward the source.
	PerKeywordDelay time.Duration `json:"per_keyword_delay" yaml:"per_keyword_delay"`
}

// SelectionConfig holds settings for the selection pipeline.
type SelectionConfig struct {
	// UserKeywords are the topical keywords that drive relevance scoring
	// and keyword-balanced selection. Empty means neutral relevance and a
	// plain top-N selection.
	UserKeywords []string `json:"user_keywords" yaml:"user_keywords"`

	// MaxResults is the target size of the final selection (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// DaysBack is the trailing search window in days. Ignored when
	// StartDate/EndDate are set.
	DaysBack int `json:"days_back" yaml:"days_back"`

	// StartDate and EndDate define an explicit window. EndDate is
	// inclusive through its last moment.
	StartDate time.Time `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate   time.Time `json:"end_date,omitempty" yaml:"end_date,omitempty"`

	// MinRelevance is the relevance floor for the relevance cut
	// (default 30). Relaxed when too few papers clear it.
	MinRelevance float64 `json:"min_relevance" yaml:"min_relevance"`
}

// AIConfig holds shared settings for stages that call a generative AI API.
type AIConfig struct {
	// Backend selects the summarizer implementation: "openai" or "gemini".
	Backend string `json:"backend" yaml:"backend"`

	// Model is the AI model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of attempts for a failed API call (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// CallDelay is the pause between consecutive summarization calls
	// (default 1s).
	CallDelay time.Duration `json:"call_delay" yaml:"call_delay"`
}

// EmailConfig holds settings for the email notifier.
type EmailConfig struct {
	SMTPServer string   `json:"smtp_server" yaml:"smtp_server"`
	SMTPPort   int      `json:"smtp_port" yaml:"smtp_port"`
	Sender     string   `json:"sender" yaml:"sender"`
	Password   string   `json:"password,omitempty" yaml:"password,omitempty"`
	Recipients []string `json:"recipients" yaml:"recipients"`
}

// TelegramConfig holds settings for the optional Telegram notifier.
type TelegramConfig struct {
	BotToken string `json:"bot_token,omitempty" yaml:"bot_token,omitempty"`
	ChatID   int64  `json:"chat_id,omitempty" yaml:"chat_id,omitempty"`
}

// HistoryConfig holds settings for the history store.
type HistoryConfig struct {
	// DBPath is the SQLite database file (default "data/papers.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// PipelineConfig groups all stage configurations for one digest run.
type PipelineConfig struct {
	Fetch     FetchConfig     `json:"fetch" yaml:"fetch"`
	Selection SelectionConfig `json:"selection" yaml:"selection"`
	Summarize AIConfig        `json:"summarize" yaml:"summarize"`
	Email     EmailConfig     `json:"email" yaml:"email"`
	Telegram  TelegramConfig  `json:"telegram" yaml:"telegram"`
	History   HistoryConfig   `json:"history" yaml:"history"`
}

// Validate checks the configuration needed for a full digest run and
// returns every problem found, not just the first.
func (c PipelineConfig) Validate() []string {
	var errs []string

	if len(c.Fetch.SearchKeywords) == 0 {
		errs = append(errs, "fetch.search_keywords must not be empty")
	}
	if c.Selection.MaxResults <= 0 {
		errs = append(errs, "selection.max_results must be positive")
	}
	if c.Selection.DaysBack <= 0 && c.Selection.StartDate.IsZero() {
		errs = append(errs, "selection.days_back must be positive unless an explicit date range is set")
	}
	if !c.Selection.StartDate.IsZero() && !c.Selection.EndDate.IsZero() &&
		c.Selection.EndDate.Before(c.Selection.StartDate) {
		errs = append(errs, "selection.end_date precedes selection.start_date")
	}
	if c.Summarize.APIKey == "" {
		errs = append(errs, fmt.Sprintf("summarize.api_key is required for backend %q", c.Summarize.Backend))
	}
	if c.Email.Sender == "" {
		errs = append(errs, "email.sender is required")
	} else if !strings.Contains(c.Email.Sender, "@") {
		errs = append(errs, fmt.Sprintf("email.sender %q is not an address", c.Email.Sender))
	}
	if len(c.Email.Recipients) == 0 {
		errs = append(errs, "email.recipients must not be empty")
	}
	for _, r := range c.Email.Recipients {
		if !strings.Contains(r, "@") {
			errs = append(errs, fmt.Sprintf("email recipient %q is not an address", r))
		}
	}

	return errs
}
