// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared records and configuration structs used
// across the extraction pipeline stages.
package types

// Student is one roster identity, split from a "Last, First" roster line.
// Both fields are trimmed and non-empty; lines that cannot produce such a
// pair never become a Student.
type Student struct {
	// LastName is the family name as written in the roster.
	LastName string `json:"last_name" yaml:"last_name"`

	// FirstName is the given name as written in the roster.
	FirstName string `json:"first_name" yaml:"first_name"`
}

// DirName returns the per-student output directory name, "Last_First".
func (s Student) DirName() string {
	return s.LastName + "_" + s.FirstName
}

// Display returns the roster-file form, "Last, First".
func (s Student) Display() string {
	return s.LastName + ", " + s.FirstName
}

// Entry is one file record inside the zip listing, prior to extraction.
// Directories are excluded at listing time.
type Entry struct {
	// Name is the raw entry name as stored in the archive, including any
	// internal path components.
	Name string `json:"name" yaml:"name"`
}

// Outcome classifies the match decision for one archive entry.
type Outcome int

const (
	// OutcomeUnmatched means no roster identity matched the entry.
	OutcomeUnmatched Outcome = iota

	// OutcomeMatched means exactly one roster identity matched.
	OutcomeMatched

	// OutcomeAmbiguous means more than one identity matched; the entry is
	// skipped rather than guessed.
	OutcomeAmbiguous
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeAmbiguous:
		return "ambiguous"
	default:
		return "unmatched"
	}
}

// Decision is the matcher's verdict for one archive entry.
type Decision struct {
	Entry   Entry
	Outcome Outcome

	// Student is set when Outcome is OutcomeMatched.
	Student Student

	// Candidates lists all matching identities when Outcome is
	// OutcomeAmbiguous, in roster order.
	Candidates []Student
}
