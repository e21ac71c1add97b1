package queue

import (
	"context"
	"sync"
	"time"
)

// Poller is the registry of live status-check timers, keyed by item id.
// Registration is idempotent and cancellation is exact: at most one timer
// exists per id, and a cancelled timer never ticks again.
type Poller struct {
	mu     sync.Mutex
	timers map[string]context.CancelFunc
}

// NewPoller creates an empty registry.
func NewPoller() *Poller {
	return &Poller{timers: make(map[string]context.CancelFunc)}
}

// Register starts a recurring tick for id. Returns false without starting
// anything when a timer for id is already live, so re-registration on
// resume cannot double up. The loop stops when ctx is done or the id is
// cancelled.
func (p *Poller) Register(ctx context.Context, id string, interval time.Duration, tick func(ctx context.Context)) bool {
	p.mu.Lock()
	if _, live := p.timers[id]; live {
		p.mu.Unlock()
		return false
	}
	ctx, cancel := context.WithCancel(ctx)
	p.timers[id] = cancel
	p.mu.Unlock()

	go func() {
		defer p.Cancel(id)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// Both channels can be ready at once after a slow
				// tick; a cancelled timer must not fire again.
				if ctx.Err() != nil {
					return
				}
				tick(ctx)
			}
		}
	}()
	return true
}

// Cancel stops the timer for id. No-op when none is live.
func (p *Poller) Cancel(id string) {
	p.mu.Lock()
	cancel, ok := p.timers[id]
	if ok {
		delete(p.timers, id)
	}
	p.mu.Unlock()
	if ok {
		cancel()
	}
}

// Active reports whether a timer is live for id.
func (p *Poller) Active(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.timers[id]
	return ok
}

// CancelAll stops every live timer. Used on shutdown.
func (p *Poller) CancelAll() {
	p.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(p.timers))
	for id, cancel := range p.timers {
		cancels = append(cancels, cancel)
		delete(p.timers, id)
	}
	p.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}
