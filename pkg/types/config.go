// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RosterConfig holds settings for loading the student roster.
type RosterConfig struct {
	// Path is the roster file location, one "Last, First" line per student.
	Path string `json:"path" yaml:"path"`
}

// ExtractionConfig holds settings for one extraction run.
type ExtractionConfig struct {
	// ZipPath is the submission archive to read.
	ZipPath string `json:"zip_path" yaml:"zip_path"`

	// OutputDir is the root of the per-student output tree.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Ext, when non-empty, restricts extraction to entries with this
	// extension (e.g. ".pdf"). Empty means all entries are considered.
	Ext string `json:"ext,omitempty" yaml:"ext,omitempty"`
}

// HistoryConfig holds settings for the run history store.
type HistoryConfig struct {
	// StateDir is the directory holding the history database.
	StateDir string `json:"state_dir" yaml:"state_dir"`

	// Disabled turns off history recording for a run.
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// ToolConfig groups all stage configurations.
type ToolConfig struct {
	Roster     RosterConfig     `json:"roster" yaml:"roster"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	History    HistoryConfig    `json:"history" yaml:"history"`
}
