// internal/events/types.go
package events

import (
	"time"

	"github.com/rovshanmuradov/token-calc/internal/calculator"
)

// EventType represents the type of event.
type EventType string

const (
	// Calculator lifecycle events
	CalculatorOpened  EventType = "calculator.opened"
	CalculatorChanged EventType = "calculator.changed"
	CalculatorClosed  EventType = "calculator.closed"

	// Export events
	ExportCompleted EventType = "export.completed"
)

// Event is the base interface for all events.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	EventType EventType
	EventTime time.Time
}

// Type returns the event type.
func (e BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e BaseEvent) Timestamp() time.Time {
	return e.EventTime
}

// CalculatorOpenedEvent is emitted when a calculator session is created.
type CalculatorOpenedEvent struct {
	BaseEvent
	Snapshot calculator.Snapshot
}

// CalculatorChangedEvent carries the snapshot taken after an edit.
type CalculatorChangedEvent struct {
	BaseEvent
	Snapshot calculator.Snapshot
}

// CalculatorClosedEvent is emitted when a calculator session is discarded.
type CalculatorClosedEvent struct {
	BaseEvent
	SessionID string
}

// ExportCompletedEvent is emitted after a portfolio export file is written.
type ExportCompletedEvent struct {
	BaseEvent
	Path  string
	Count int
}

// NewCalculatorOpened builds an opened event for snap.
func NewCalculatorOpened(snap calculator.Snapshot) CalculatorOpenedEvent {
	return CalculatorOpenedEvent{
		BaseEvent: BaseEvent{EventType: CalculatorOpened, EventTime: time.Now()},
		Snapshot:  snap,
	}
}

// NewCalculatorChanged builds a changed event for snap.
func NewCalculatorChanged(snap calculator.Snapshot) CalculatorChangedEvent {
	return CalculatorChangedEvent{
		BaseEvent: BaseEvent{EventType: CalculatorChanged, EventTime: snap.At},
		Snapshot:  snap,
	}
}

// NewCalculatorClosed builds a closed event.
func NewCalculatorClosed(sessionID string) CalculatorClosedEvent {
	return CalculatorClosedEvent{
		BaseEvent: BaseEvent{EventType: CalculatorClosed, EventTime: time.Now()},
		SessionID: sessionID,
	}
}

// NewExportCompleted builds an export event.
func NewExportCompleted(path string, count int) ExportCompletedEvent {
	return ExportCompletedEvent{
		BaseEvent: BaseEvent{EventType: ExportCompleted, EventTime: time.Now()},
		Path:      path,
		Count:     count,
	}
}
