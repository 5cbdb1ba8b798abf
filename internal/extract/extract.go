// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract runs the extraction pipeline: list the archive, decide a
// match for every entry, and copy matched entries into the per-student
// output tree. It continues after individual failures and reports a summary.
package extract

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/hwextract/internal/archive"
	"github.com/pdiddy/hwextract/internal/match"
	"github.com/pdiddy/hwextract/pkg/types"
)

// FileResult records the outcome for one archive entry.
type FileResult struct {
	// Entry is the raw archive entry name.
	Entry string `json:"entry" yaml:"entry"`

	// Outcome is "extracted", "ambiguous", "unmatched", "filtered", or "failed".
	Outcome string `json:"outcome" yaml:"outcome"`

	// Student is the matched identity in "Last, First" form, when one matched.
	Student string `json:"student,omitempty" yaml:"student,omitempty"`

	// Dest is the output path for extracted entries.
	Dest string `json:"dest,omitempty" yaml:"dest,omitempty"`

	// Error holds the copy error message for failed entries.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchResult holds the outcome of one extraction run.
type BatchResult struct {
	Extracted  int
	Ambiguous  int
	Unmatched  int
	Filtered   int
	Failed     int
	Files      []FileResult
	StartedAt  time.Time
	FinishedAt time.Time
}

// Total returns the number of archive entries processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Ambiguous + r.Unmatched + r.Filtered + r.Failed
}

// HasFailures reports whether any per-file copy failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Run performs a single extraction pass. Opening the archive and creating
// the output root are fatal; everything after that is per-entry and never
// aborts the run. Per-item status goes to w, warnings and debug detail to
// logger. On completion a YAML report is written into the output root.
func Run(cfg types.ExtractionConfig, students []types.Student, w io.Writer, logger *slog.Logger) (BatchResult, error) {
	result := BatchResult{StartedAt: time.Now().UTC()}

	r, err := archive.Open(cfg.ZipPath)
	if err != nil {
		return result, err
	}
	defer r.Close()

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return result, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	for _, entry := range r.List() {
		result.Files = append(result.Files, processEntry(r, cfg, students, entry, &result, w, logger))
	}

	result.FinishedAt = time.Now().UTC()

	fmt.Fprintf(w, "\nExtraction summary: %d extracted, %d ambiguous, %d unmatched, %d filtered, %d failed (total: %d)\n",
		result.Extracted, result.Ambiguous, result.Unmatched, result.Filtered, result.Failed, result.Total())

	if err := WriteReport(filepath.Join(cfg.OutputDir, reportFile), cfg, result); err != nil {
		fmt.Fprintf(w, "warning: report write failed: %v\n", err)
	}

	return result, nil
}

func processEntry(r *archive.Reader, cfg types.ExtractionConfig, students []types.Student, entry types.Entry, result *BatchResult, w io.Writer, logger *slog.Logger) FileResult {
	fr := FileResult{Entry: entry.Name}

	if cfg.Ext != "" && !strings.EqualFold(filepath.Ext(entry.Name), cfg.Ext) {
		result.Filtered++
		fr.Outcome = "filtered"
		logger.Debug("entry filtered by extension", slog.String("entry", entry.Name))
		return fr
	}

	d := match.Decide(entry, students)
	switch d.Outcome {
	case types.OutcomeUnmatched:
		result.Unmatched++
		fr.Outcome = d.Outcome.String()
		logger.Debug("entry matches no roster student", slog.String("entry", entry.Name))
		return fr

	case types.OutcomeAmbiguous:
		result.Ambiguous++
		fr.Outcome = d.Outcome.String()
		names := make([]string, len(d.Candidates))
		for i, c := range d.Candidates {
			names[i] = c.Display()
		}
		logger.Warn("ambiguous entry skipped",
			slog.String("entry", entry.Name),
			slog.String("candidates", strings.Join(names, "; ")))
		fmt.Fprintf(w, "ambiguous: %s (candidates: %s)\n", entry.Name, strings.Join(names, "; "))
		return fr
	}

	fr.Student = d.Student.Display()

	studentDir := filepath.Join(cfg.OutputDir, d.Student.DirName())
	dest := filepath.Join(studentDir, filepath.Base(entry.Name))
	if err := os.MkdirAll(studentDir, 0o755); err != nil {
		fr.Error = fmt.Sprintf("creating %s: %v", studentDir, err)
	} else if err := r.CopyEntry(entry.Name, dest); err != nil {
		fr.Error = err.Error()
	} else {
		result.Extracted++
		fr.Outcome = "extracted"
		fr.Dest = dest
		fmt.Fprintf(w, "extracted: %s -> %s\n", entry.Name, dest)
		return fr
	}

	result.Failed++
	fr.Outcome = "failed"
	fmt.Fprintf(w, "failed:    %s (%s)\n", entry.Name, fr.Error)
	logger.Warn("copy failed", slog.String("entry", entry.Name), slog.String("error", fr.Error))
	return fr
}
