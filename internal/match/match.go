// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match decides whether an archive entry name belongs to a roster
// student. Normalization and matching are pure string functions with no I/O,
// so the policy can be tested directly against literal name pairs.
package match

import (
	"strings"

	"github.com/pdiddy/hwextract/pkg/types"
)

// umlautReplacer folds the German characters the roster and archive use
// inconsistently. Folding happens before the character filter so that
// "Müller" and "mueller" normalize to the same string.
var umlautReplacer = strings.NewReplacer(
	"ä", "ae", "Ä", "ae",
	"ö", "oe", "Ö", "oe",
	"ü", "ue", "Ü", "ue",
	"ß", "ss",
)

// Normalize lower-cases s, folds umlauts, and strips every rune outside
// [a-z0-9]. The result is idempotent: Normalize(Normalize(s)) == Normalize(s).
// Non-ASCII letters other than the folded umlauts are dropped by the filter,
// which can cause false negatives for accented names; Lost reports when that
// happens so callers can surface it instead of guessing.
func Normalize(s string) string {
	s = strings.ToLower(umlautReplacer.Replace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lost reports whether normalizing s drops a character the filter cannot
// represent: any non-ASCII rune other than the folded umlauts. ASCII
// separators like spaces, hyphens, and apostrophes do not count as lost.
func Lost(s string) bool {
	for _, r := range umlautReplacer.Replace(s) {
		if r >= 0x80 {
			return true
		}
	}
	return false
}

// Matches reports whether the normalized entry name contains both the
// student's normalized last and first name as substrings, in either order.
func Matches(entryName string, s types.Student) bool {
	n := Normalize(entryName)
	last := Normalize(s.LastName)
	first := Normalize(s.FirstName)
	if last == "" || first == "" {
		return false
	}
	return strings.Contains(n, last) && strings.Contains(n, first)
}

// Decide evaluates one archive entry against the full roster. Exactly one
// matching student yields OutcomeMatched; more than one yields
// OutcomeAmbiguous with all candidates in roster order; zero yields
// OutcomeUnmatched.
func Decide(entry types.Entry, students []types.Student) types.Decision {
	var candidates []types.Student
	for _, s := range students {
		if Matches(entry.Name, s) {
			candidates = append(candidates, s)
		}
	}

	switch len(candidates) {
	case 0:
		return types.Decision{Entry: entry, Outcome: types.OutcomeUnmatched}
	case 1:
		return types.Decision{Entry: entry, Outcome: types.OutcomeMatched, Student: candidates[0]}
	default:
		return types.Decision{Entry: entry, Outcome: types.OutcomeAmbiguous, Candidates: candidates}
	}
}
