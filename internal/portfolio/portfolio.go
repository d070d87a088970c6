// Package portfolio aggregates the latest snapshots of many calculator
// sessions. It is the parent context calculators report their changes to.
package portfolio

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rovshanmuradov/token-calc/internal/calculator"
	"github.com/rovshanmuradov/token-calc/internal/events"
	"go.uber.org/zap"
)

// Portfolio provides thread-safe storage of calculator snapshots.
type Portfolio struct {
	entries map[string]calculator.Snapshot
	order   []string
	mu      sync.RWMutex
	logger  *zap.Logger

	// Statistics (accessed atomically)
	reads  uint64
	writes uint64
}

// New creates an empty portfolio.
func New(logger *zap.Logger) *Portfolio {
	return &Portfolio{
		entries: make(map[string]calculator.Snapshot),
		logger:  logger.Named("portfolio"),
	}
}

// Upsert stores snap unless a newer revision of the same session is already
// present. It reports whether the snapshot was stored.
func (p *Portfolio) Upsert(snap calculator.Snapshot) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	current, exists := p.entries[snap.SessionID]
	if exists && current.Revision > snap.Revision {
		return false
	}
	if !exists {
		p.order = append(p.order, snap.SessionID)
	}

	p.entries[snap.SessionID] = snap
	atomic.AddUint64(&p.writes, 1)
	return true
}

// Get returns the latest snapshot of one session.
func (p *Portfolio) Get(sessionID string) (calculator.Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	atomic.AddUint64(&p.reads, 1)
	snap, ok := p.entries[sessionID]
	return snap, ok
}

// Snapshots returns a copy of all snapshots in the order sessions joined.
func (p *Portfolio) Snapshots() []calculator.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	atomic.AddUint64(&p.reads, 1)
	out := make([]calculator.Snapshot, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.entries[id])
	}
	return out
}

// Remove forgets a session.
func (p *Portfolio) Remove(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.entries[sessionID]; !ok {
		return
	}
	delete(p.entries, sessionID)
	for i, id := range p.order {
		if id == sessionID {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	atomic.AddUint64(&p.writes, 1)
}

// Len returns the number of sessions tracked.
func (p *Portfolio) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order)
}

// Stats returns portfolio access statistics.
func (p *Portfolio) Stats() (sessions, reads, writes uint64) {
	p.mu.RLock()
	sessions = uint64(len(p.order))
	p.mu.RUnlock()

	reads = atomic.LoadUint64(&p.reads)
	writes = atomic.LoadUint64(&p.writes)
	return sessions, reads, writes
}

// Summary aggregates the stored snapshots.
func (p *Portfolio) Summary() Summary {
	return Summarize(p.Snapshots())
}

// Handle implements events.Handler for calculator lifecycle events.
func (p *Portfolio) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.CalculatorOpenedEvent:
		p.Upsert(e.Snapshot)
	case events.CalculatorChangedEvent:
		if !p.Upsert(e.Snapshot) {
			p.logger.Debug("Ignoring stale snapshot",
				zap.String("session_id", e.Snapshot.SessionID),
				zap.Uint64("revision", e.Snapshot.Revision))
		}
	case events.CalculatorClosedEvent:
		p.Remove(e.SessionID)
	}
	return nil
}

// Attach subscribes the portfolio to calculator events on bus and returns a
// function that detaches it.
func (p *Portfolio) Attach(bus *events.Bus) (detach func()) {
	subs := []events.Subscription{
		bus.Subscribe(events.CalculatorOpened, p),
		bus.Subscribe(events.CalculatorChanged, p),
		bus.Subscribe(events.CalculatorClosed, p),
	}
	return func() {
		for _, s := range subs {
			s.Unsubscribe()
		}
	}
}
