// Package sanitize normalizes free-form question text before it enters the
// answer pipeline.
package sanitize

import "strings"

// DefaultMaxLen bounds sanitized question length in runes.
const DefaultMaxLen = 600

// Text trims the input, collapses internal whitespace runs to single spaces
// and truncates to maxLen runes. Missing input becomes the empty string;
// sanitizing already-sanitized text is a no-op.
func Text(raw string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	s := strings.Join(strings.Fields(raw), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		s = strings.TrimRight(string(runes[:maxLen]), " ")
	}

	return s
}
