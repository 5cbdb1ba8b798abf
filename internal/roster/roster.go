// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roster loads the authoritative student list from a plain-text file.
// Each non-blank line is one student in "Last, First" form; malformed lines
// are skipped with a warning rather than aborting the load.
package roster

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pdiddy/hwextract/internal/match"
	"github.com/pdiddy/hwextract/pkg/types"
)

// Load reads the roster file at path. A line is split on its first comma;
// lines without a comma or with an empty half are skipped with a warning.
// Duplicate identities (same normalized last and first name) collapse to the
// first occurrence. Read errors are fatal and returned as a wrapped error.
func Load(path string, logger *slog.Logger) ([]types.Student, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	defer f.Close()

	var (
		students []types.Student
		seen     = make(map[string]bool)
		lineNo   int
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		last, first, ok := strings.Cut(line, ",")
		if !ok {
			logger.Warn("skipping roster line without comma",
				slog.Int("line", lineNo), slog.String("text", line))
			continue
		}
		s := types.Student{
			LastName:  strings.TrimSpace(last),
			FirstName: strings.TrimSpace(first),
		}
		if s.LastName == "" || s.FirstName == "" {
			logger.Warn("skipping roster line with empty name",
				slog.Int("line", lineNo), slog.String("text", line))
			continue
		}

		key := match.Normalize(s.LastName) + "\x00" + match.Normalize(s.FirstName)
		if seen[key] {
			logger.Warn("skipping duplicate roster identity",
				slog.Int("line", lineNo), slog.String("student", s.Display()))
			continue
		}
		seen[key] = true

		if match.Lost(s.LastName) || match.Lost(s.FirstName) {
			logger.Debug("roster name loses characters under normalization",
				slog.String("student", s.Display()))
		}

		students = append(students, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}

	return students, nil
}
