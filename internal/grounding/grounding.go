// Package grounding turns search results into the compact context block
// handed to the generation model.
package grounding

import (
	"fmt"
	"strings"

	"github.com/leko-robotics/leko-server/internal/search"
)

// MaxResults bounds how many results feed the context block.
const MaxResults = 5

// Build formats the top results as labeled blocks for model grounding.
// Links are included so the model can weigh the source, but the answer
// guardrails strip them before anything reaches the user. Empty input
// yields the empty string, which the generator treats as "no grounding
// available".
func Build(results []search.Result, maxResults int) string {
	if len(results) == 0 {
		return ""
	}
	if maxResults <= 0 || maxResults > MaxResults {
		maxResults = MaxResults
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n---\n")
		}
		fmt.Fprintf(&b, "Başlık: %s\n", strings.TrimSpace(r.Title))
		if snippet := strings.TrimSpace(r.Snippet); snippet != "" {
			fmt.Fprintf(&b, "Özet: %s\n", snippet)
		}
		if r.Link != "" {
			fmt.Fprintf(&b, "Kaynak: %s\n", r.Link)
		}
	}
	return b.String()
}
