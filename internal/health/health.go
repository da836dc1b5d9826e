// Package health runs named dependency checks concurrently for the deep
// health endpoint.
package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Check probes a single dependency.
type Check func(ctx context.Context) error

// Checker holds a registry of named checks.
type Checker struct {
	mu     sync.Mutex
	checks map[string]Check
}

func NewChecker() *Checker {
	return &Checker{checks: make(map[string]Check)}
}

// Register adds a named check. Registering the same name twice replaces
// the earlier check.
func (c *Checker) Register(name string, check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Report is the outcome of one Run.
type Report struct {
	Healthy bool              `json:"healthy"`
	Checks  map[string]string `json:"checks"` // "ok" or the error text
}

// Run executes all checks concurrently with a shared 5s budget.
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.Lock()
	checks := make(map[string]Check, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var mu sync.Mutex
	report := Report{Healthy: true, Checks: make(map[string]string, len(checks))}

	g, ctx := errgroup.WithContext(ctx)
	for name, check := range checks {
		g.Go(func() error {
			err := check(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Healthy = false
				report.Checks[name] = err.Error()
			} else {
				report.Checks[name] = "ok"
			}
			return nil
		})
	}
	g.Wait()

	return report
}
