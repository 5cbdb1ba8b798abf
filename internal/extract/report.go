// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hwextract/pkg/types"
)

const reportFile = "extraction-report.yaml"

// Report is the on-disk record of one extraction run, written into the
// output root so the grader can review what was (and was not) extracted
// without rerunning the tool.
type Report struct {
	Archive   string        `yaml:"archive"`
	OutputDir string        `yaml:"output_dir"`
	Ext       string        `yaml:"ext,omitempty"`
	Summary   ReportSummary `yaml:"summary"`
	Files     []FileResult  `yaml:"files"`
}

// ReportSummary stores the run counts and timestamps.
type ReportSummary struct {
	Extracted  int       `yaml:"extracted"`
	Ambiguous  int       `yaml:"ambiguous"`
	Unmatched  int       `yaml:"unmatched"`
	Filtered   int       `yaml:"filtered,omitempty"`
	Failed     int       `yaml:"failed"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
}

// WriteReport saves the run outcome to a YAML file, replacing any report
// from a previous run over the same output root.
func WriteReport(path string, cfg types.ExtractionConfig, result BatchResult) error {
	rep := Report{
		Archive:   cfg.ZipPath,
		OutputDir: cfg.OutputDir,
		Ext:       cfg.Ext,
		Summary: ReportSummary{
			Extracted:  result.Extracted,
			Ambiguous:  result.Ambiguous,
			Unmatched:  result.Unmatched,
			Filtered:   result.Filtered,
			Failed:     result.Failed,
			StartedAt:  result.StartedAt,
			FinishedAt: result.FinishedAt,
		},
		Files: result.Files,
	}

	data, err := yaml.Marshal(&rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a previously written report from disk.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}
	var rep Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &rep, nil
}
