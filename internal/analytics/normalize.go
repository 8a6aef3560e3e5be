package analytics

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds a string for matching: trimmed, lower-cased, Unicode
// decomposed with combining diacritical marks removed. "Matière" and
// "matiere" normalize to the same value. Every matching operation in this
// package goes through this single routine.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	// The chain carries internal buffers, so build it per call to keep
	// Normalize safe for concurrent use.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	return strings.ToLower(folded)
}
