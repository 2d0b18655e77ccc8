// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes papers processed in the trailing window to w as a YAML
// document. A non-positive days exports the whole history.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, days int) error {
	papers, err := s.RecentPapers(ctx, days)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(papers)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
