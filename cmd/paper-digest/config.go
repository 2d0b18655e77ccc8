// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/paper-digest/internal/secrets"
	"github.com/pdiddy/paper-digest/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "paper-digest/0.1"
)

func init() {
	viper.SetDefault("fetch.per_keyword", 20)
	viper.SetDefault("fetch.per_keyword_delay", time.Second)
	viper.SetDefault("fetch.timeout", defaultTimeout)
	viper.SetDefault("fetch.user_agent", defaultUserAgent)
	viper.SetDefault("selection.max_results", 10)
	viper.SetDefault("selection.days_back", 7)
	viper.SetDefault("selection.min_relevance", 30)
	viper.SetDefault("summarize.backend", "openai")
	viper.SetDefault("summarize.max_retries", 3)
	viper.SetDefault("summarize.call_delay", time.Second)
	viper.SetDefault("email.smtp_port", 587)
	viper.SetDefault("history.db_path", "data/papers.db")
}

// loadPipelineConfig assembles the full run configuration from the config
// file, environment, and secret key files, in that precedence order.
func loadPipelineConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("fetch.timeout"),
				UserAgent: viper.GetString("fetch.user_agent"),
			},
			SearchKeywords:  viper.GetStringSlice("fetch.search_keywords"),
			PerKeyword:      viper.GetInt("fetch.per_keyword"),
			PerKeywordDelay: viper.GetDuration("fetch.per_keyword_delay"),
		},
		Selection: types.SelectionConfig{
			UserKeywords: viper.GetStringSlice("selection.user_keywords"),
			MaxResults:   viper.GetInt("selection.max_results"),
			DaysBack:     viper.GetInt("selection.days_back"),
			MinRelevance: viper.GetFloat64("selection.min_relevance"),
		},
		Summarize: types.AIConfig{
			Backend:    viper.GetString("summarize.backend"),
			Model:      viper.GetString("summarize.model"),
			APIKey:     viper.GetString("summarize.api_key"),
			MaxRetries: viper.GetInt("summarize.max_retries"),
			CallDelay:  viper.GetDuration("summarize.call_delay"),
		},
		Email: types.EmailConfig{
			SMTPServer: viper.GetString("email.smtp_server"),
			SMTPPort:   viper.GetInt("email.smtp_port"),
			Sender:     viper.GetString("email.sender"),
			Password:   viper.GetString("email.password"),
			Recipients: viper.GetStringSlice("email.recipients"),
		},
		Telegram: types.TelegramConfig{
			BotToken: viper.GetString("telegram.bot_token"),
			ChatID:   viper.GetInt64("telegram.chat_id"),
		},
		History: types.HistoryConfig{
			DBPath: viper.GetString("history.db_path"),
		},
	}

	if s := viper.GetString("selection.start_date"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			cfg.Selection.StartDate = t
		}
	}
	if s := viper.GetString("selection.end_date"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			cfg.Selection.EndDate = t
		}
	}

	secrets.Fill(&cfg, loadedSecrets)
	return cfg
}

// validateConfig turns Validate's problem list into one CLI error.
func validateConfig(cfg types.PipelineConfig) error {
	problems := cfg.Validate()
	if len(problems) == 0 {
		return nil
	}
	for _, p := range problems {
		logger.Error().Msg(p)
	}
	return fmt.Errorf("configuration has %d problem(s)", len(problems))
}
