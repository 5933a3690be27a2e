package export

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultPollInterval is how often the gate re-checks its collaborators.
const DefaultPollInterval = 100 * time.Millisecond

// Readiness is anything that becomes usable asynchronously.
type Readiness interface {
	Ready() bool
}

// Gate flips to ready once every collaborator reports ready, and never flips
// back. There is no timeout: if a collaborator never loads the gate stays
// closed and exports keep failing with ErrNotReady.
type Gate struct {
	checks   []Readiness
	interval time.Duration

	ready    atomic.Bool
	done     chan struct{}
	openOnce sync.Once
}

// NewGate creates a closed gate over checks.
func NewGate(checks ...Readiness) *Gate {
	return &Gate{
		checks:   checks,
		interval: DefaultPollInterval,
		done:     make(chan struct{}),
	}
}

// WithInterval overrides the poll interval.
func (g *Gate) WithInterval(d time.Duration) *Gate {
	g.interval = d
	return g
}

// Run polls until every collaborator is ready or ctx is done.
func (g *Gate) Run(ctx context.Context) error {
	if g.poll() {
		return nil
	}

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if g.poll() {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (g *Gate) poll() bool {
	for _, c := range g.checks {
		if !c.Ready() {
			return false
		}
	}
	g.openOnce.Do(func() {
		g.ready.Store(true)
		close(g.done)
	})
	return true
}

// Ready reports whether the gate has opened.
func (g *Gate) Ready() bool {
	return g.ready.Load()
}

// Wait blocks until the gate opens or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
