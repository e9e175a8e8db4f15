package cart

import (
	"context"
	"sync"
)

// cartWideKey guards operations that touch the whole cart.
const cartWideKey = "\x00cart"

// inflight tracks which lines have an operation outstanding. Each busy key
// holds a channel closed on release.
type inflight struct {
	mu   sync.Mutex
	busy map[string]chan struct{}
}

func newInflight() *inflight {
	return &inflight{busy: make(map[string]chan struct{})}
}

// acquire marks key busy. It reports false when key is already busy.
func (g *inflight) acquire(key string) (func(), bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, taken := g.busy[key]; taken {
		return nil, false
	}
	return g.takeLocked(key), true
}

// wait blocks until key is free and takes it, or returns ctx.Err().
func (g *inflight) wait(ctx context.Context, key string) (func(), error) {
	for {
		g.mu.Lock()
		released, taken := g.busy[key]
		if !taken {
			release := g.takeLocked(key)
			g.mu.Unlock()
			return release, nil
		}
		g.mu.Unlock()

		select {
		case <-released:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (g *inflight) takeLocked(key string) func() {
	released := make(chan struct{})
	g.busy[key] = released

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, key)
			g.mu.Unlock()
			close(released)
		})
	}
}

func (g *inflight) isBusy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, taken := g.busy[key]
	return taken
}
