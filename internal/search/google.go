package search

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/leko-robotics/leko-server/pkg/googlesearch"
)

// circuitBreaker tracks consecutive failures to skip a flaky upstream.
type circuitBreaker struct {
	mu        sync.Mutex
	failures  int
	lastFail  time.Time
	openUntil time.Time
	threshold int
	window    time.Duration
	cooldown  time.Duration
}

func newCircuitBreaker(threshold int, window, cooldown time.Duration) *circuitBreaker {
	return &circuitBreaker{
		threshold: threshold,
		window:    window,
		cooldown:  cooldown,
	}
}

func (cb *circuitBreaker) isOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return time.Now().Before(cb.openUntil)
}

func (cb *circuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	now := time.Now()
	if now.Sub(cb.lastFail) > cb.window {
		cb.failures = 0
	}
	cb.failures++
	cb.lastFail = now
	if cb.failures >= cb.threshold {
		cb.openUntil = now.Add(cb.cooldown)
		zap.L().Warn("search: circuit breaker opened",
			zap.Int("failures", cb.failures),
			zap.Duration("cooldown", cb.cooldown),
		)
	}
}

func (cb *circuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
}

// GoogleProvider adapts the Custom Search client to the Provider contract.
// Every failure mode — missing credentials, timeouts, non-2xx, open
// circuit — collapses to an empty result set.
type GoogleProvider struct {
	client  googlesearch.Client
	locale  string
	timeout time.Duration
	breaker *circuitBreaker
}

// NewGoogleProvider wraps a Custom Search client. client may be nil when
// search credentials are absent; the provider then always returns nothing.
// The breaker opens after 3 failures within 30s and stays open for 60s.
func NewGoogleProvider(client googlesearch.Client, locale string, timeout time.Duration) *GoogleProvider {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &GoogleProvider{
		client:  client,
		locale:  locale,
		timeout: timeout,
		breaker: newCircuitBreaker(3, 30*time.Second, 60*time.Second),
	}
}

func (g *GoogleProvider) Name() string { return "google" }

// Search queries Custom Search and re-ranks results by extracted recency.
// The limit is clamped to the API's 1..10 bound.
func (g *GoogleProvider) Search(ctx context.Context, query string, limit int) []Result {
	if g.client == nil || query == "" {
		return nil
	}
	if g.breaker.isOpen() {
		zap.L().Debug("search: skipping, circuit open")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Search(ctx, query,
		googlesearch.WithNum(limit),
		googlesearch.WithLocale(g.locale),
	)
	if err != nil {
		g.breaker.recordFailure()
		zap.L().Warn("search: query failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil
	}
	g.breaker.recordSuccess()

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, Result{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
			Date:    ExtractDate(item.Title + " " + item.Snippet),
		})
	}

	return RankByRecency(results)
}
