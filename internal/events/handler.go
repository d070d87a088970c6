// internal/events/handler.go
package events

import (
	"context"

	"github.com/rovshanmuradov/token-calc/internal/calculator"
	"go.uber.org/zap"
)

// Handler processes events of a specific type.
type Handler interface {
	// Handle processes an event. Should not block.
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc is an adapter to allow the use of ordinary functions as event handlers.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls f(ctx, event).
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Subscription represents a subscription to events.
type Subscription interface {
	// Unsubscribe removes the subscription.
	Unsubscribe()
}

type subscription struct {
	id       string
	eventBus *Bus
	typ      EventType
}

func (s *subscription) Unsubscribe() {
	s.eventBus.unsubscribe(s.id, s.typ)
}

// SnapshotPublisher returns a calculator listener that forwards every
// snapshot to the bus as a CalculatorChanged event.
func SnapshotPublisher(bus *Bus) calculator.Listener {
	return func(snap calculator.Snapshot) {
		if err := bus.Publish(NewCalculatorChanged(snap)); err != nil {
			bus.logger.Debug("Snapshot not published",
				zap.String("session_id", snap.SessionID),
				zap.Uint64("revision", snap.Revision),
				zap.Error(err))
		}
	}
}
