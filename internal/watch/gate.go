package watch

import (
	"context"
	"sync"
)

// Gate is the run/pause signal shared between the watch loop and the
// control panel. The loop blocks on Wait at the top of every iteration;
// the panel flips the gate from its own goroutine.
type Gate struct {
	mu   sync.Mutex
	open chan struct{}
}

// NewGate creates a gate in the running (open) state.
func NewGate() *Gate {
	g := &Gate{open: make(chan struct{})}
	close(g.open)
	return g
}

// Pause closes the gate; Wait blocks until Resume.
func (g *Gate) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case <-g.open:
		g.open = make(chan struct{})
	default:
	}
}

// Resume reopens the gate, releasing any waiter.
func (g *Gate) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case <-g.open:
	default:
		close(g.open)
	}
}

// Running reports whether the gate is currently open.
func (g *Gate) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case <-g.open:
		return true
	default:
		return false
	}
}

// Wait blocks until the gate is open or the context is cancelled.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	open := g.open
	g.mu.Unlock()

	select {
	case <-open:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
