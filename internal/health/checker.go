// Package health provides periodic health checks for the daemon:
// database connectivity, host-world availability, and tick liveness.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gearline/gearline/internal/domain"
	"github.com/gearline/gearline/internal/infra/sqlite"
	"github.com/gearline/gearline/internal/sim"
)

// Check defines a single health check.
type Check struct {
	Name    string
	CheckFn func(ctx context.Context) error
}

// Status represents the result of a health check.
type Status struct {
	Name      string    `json:"name"`
	Healthy   bool      `json:"healthy"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker runs periodic health checks.
type Checker struct {
	mu       sync.RWMutex
	checks   []Check
	statuses []Status
	interval time.Duration
}

// NewChecker creates a checker with the standard checks. db may be nil
// when persistence is disabled.
func NewChecker(db *sqlite.DB, host domain.Host, s *sim.Simulator) *Checker {
	var lastTick uint64

	checks := []Check{
		{
			Name: "host_world",
			CheckFn: func(ctx context.Context) error {
				if _, ok := host.PlayerPosition(); !ok {
					return domain.ErrPlayerUnavailable
				}
				return nil
			},
		},
		{
			Name: "tick_liveness",
			CheckFn: func(ctx context.Context) error {
				tick := s.Snapshot().Tick
				if tick == lastTick && tick > 0 {
					return fmt.Errorf("tick stuck at %d", tick)
				}
				lastTick = tick
				return nil
			},
		},
	}
	if db != nil {
		checks = append(checks, Check{
			Name: "sqlite",
			CheckFn: func(ctx context.Context) error {
				return db.Ping()
			},
		})
	}

	return &Checker{
		interval: 30 * time.Second,
		checks:   checks,
	}
}

// Run starts the health check loop. Call in a goroutine.
func (c *Checker) Run(ctx context.Context) {
	c.runAll(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.runAll(ctx)
		}
	}
}

func (c *Checker) runAll(ctx context.Context) {
	statuses := make([]Status, len(c.checks))
	for i, check := range c.checks {
		s := Status{Name: check.Name, CheckedAt: time.Now()}
		if err := check.CheckFn(ctx); err != nil {
			s.Error = err.Error()
		} else {
			s.Healthy = true
		}
		statuses[i] = s
	}

	c.mu.Lock()
	c.statuses = statuses
	c.mu.Unlock()
}

// Statuses returns the latest health check results.
func (c *Checker) Statuses() []Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Status, len(c.statuses))
	copy(out, c.statuses)
	return out
}

// Healthy reports whether every check passed on the last run.
func (c *Checker) Healthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.statuses {
		if !s.Healthy {
			return false
		}
	}
	return true
}
