package answer

import (
	"regexp"
	"strings"
)

// Fixed user-facing phrases. Every exit path of the pipeline resolves to a
// non-empty answer, so provider failures end in one of these instead of an
// error.
const (
	// EmptyPrompt is returned when the question itself is empty.
	EmptyPrompt = "Bir soru sorabilir misin?"
	// Apology is returned when the whole model chain fails.
	Apology = "Üzgünüm, şu anda cevap veremiyorum. Biraz sonra tekrar sorar mısın?"
	// NoClearAnswer replaces degenerate model output.
	NoClearAnswer = "Bu konuda net bir cevap bulamadım. Sorunu başka şekilde sorabilir misin?"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	urlPattern          = regexp.MustCompile(`(https?://\S+|www\.\S+)`)
	// bareFactPattern matches output that is only digits, dates and
	// punctuation — a common degenerate completion when grounding is thin.
	bareFactPattern = regexp.MustCompile(`^[\d\s.,:;/\-%()]+$`)
)

// Clean applies the answer guardrails: markdown links reduce to their
// label, raw URLs disappear entirely, whitespace collapses.
func Clean(text string) string {
	text = markdownLinkPattern.ReplaceAllString(text, "$1")
	text = urlPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// IsDegenerate reports whether cleaned output carries no substantive
// content: empty, or a bare date/number.
func IsDegenerate(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return true
	}
	return bareFactPattern.MatchString(t)
}
