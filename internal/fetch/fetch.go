// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves candidate papers from academic sources, one
// query per configured search keyword.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Source retrieves candidates from a single academic API.
type Source interface {
	Name() string
	Search(ctx context.Context, keyword string, cfg types.FetchConfig) ([]types.Paper, error)
}

// Result holds the combined candidate pool from one retrieval pass.
type Result struct {
	Papers         []types.Paper
	FailedKeywords []string
}

// FetchAll queries the source once per configured search keyword,
// sequentially, pausing between queries as a courtesy rate limit. A
// failed keyword is logged and skipped; the pass only fails when every
// keyword does, or the context is cancelled.
func FetchAll(ctx context.Context, src Source, cfg types.FetchConfig, log zerolog.Logger) (Result, error) {
	if len(cfg.SearchKeywords) == 0 {
		return Result{}, fmt.Errorf("no search keywords configured")
	}

	delay := cfg.PerKeywordDelay
	if delay <= 0 {
		delay = time.Second
	}

	var res Result
	for i, keyword := range cfg.SearchKeywords {
		if i > 0 {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-time.After(delay):
			}
		}

		papers, err := src.Search(ctx, keyword, cfg)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			log.Warn().Err(err).Str("source", src.Name()).Str("keyword", keyword).
				Msg("keyword query failed")
			res.FailedKeywords = append(res.FailedKeywords, keyword)
			continue
		}

		log.Debug().Str("source", src.Name()).Str("keyword", keyword).
			Int("papers", len(papers)).Msg("keyword query done")
		res.Papers = append(res.Papers, papers...)
	}

	if len(res.FailedKeywords) == len(cfg.SearchKeywords) {
		return res, fmt.Errorf("all %d keyword queries failed", len(cfg.SearchKeywords))
	}
	return res, nil
}
