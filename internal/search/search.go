// Package search fetches web results used to ground answers in current
// information.
package search

import (
	"context"
	"time"
)

// Result is a single web search hit. Date is the publication date extracted
// from the title or snippet; zero when none could be parsed.
type Result struct {
	Title   string
	Snippet string
	Link    string
	Date    time.Time
}

// Provider performs a bounded web search. Implementations never return an
// error for operational failures: a provider that is down, misconfigured or
// rate-limited yields an empty slice so the pipeline degrades to an
// ungrounded answer.
type Provider interface {
	Search(ctx context.Context, query string, limit int) []Result
	Name() string
}
