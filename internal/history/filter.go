// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// FilterNovel drops papers already present in the history, preserving
// order, and reports how many were dropped. The filter fails open: when
// the history cannot be read, every candidate passes through and the read
// error is returned for logging, so a broken history file never empties a
// digest.
func (s *Store) FilterNovel(ctx context.Context, pool []types.Paper) ([]types.Paper, int, error) {
	known, err := s.KnownIDs(ctx)
	if err != nil {
		return pool, 0, err
	}

	novel := make([]types.Paper, 0, len(pool))
	dropped := 0
	for _, p := range pool {
		if known[p.ID] {
			dropped++
			continue
		}
		novel = append(novel, p)
	}
	return novel, dropped, nil
}
