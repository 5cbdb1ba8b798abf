// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ExportEntry is one run with its per-file outcomes, as written by ExportYAML.
type ExportEntry struct {
	Run   Run    `yaml:"run"`
	Files []File `yaml:"files"`
}

// ExportYAML writes the full run history, newest run first, to path.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	runs, err := s.Runs(ctx, RunFilter{})
	if err != nil {
		return err
	}

	entries := make([]ExportEntry, 0, len(runs))
	for _, r := range runs {
		files, err := s.Files(ctx, r.ID, "")
		if err != nil {
			return err
		}
		entries = append(entries, ExportEntry{Run: r, Files: files})
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
