package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/token-calc/internal/calculator"
	"github.com/rovshanmuradov/token-calc/internal/events"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To Route
	// SessionID selects the calculator to open; empty creates a new one.
	SessionID string
}

// SnapshotMsg carries a calculator snapshot published on the event bus.
type SnapshotMsg struct {
	Snapshot calculator.Snapshot
}

// CalculatorClosedMsg reports that a calculator was removed.
type CalculatorClosedMsg struct {
	SessionID string
}

// ExportedMsg reports a finished export.
type ExportedMsg struct {
	Path  string
	Count int
}

// ErrorMsg represents error conditions
type ErrorMsg struct {
	Error error
	Title string
}

// SuccessMsg represents success conditions
type SuccessMsg struct {
	Message string
	Title   string
}

// Bus carries messages from background goroutines into the tea program.
var Bus = make(chan tea.Msg, 1024)

// MsgForEvent converts a domain event into the tea message screens consume.
func MsgForEvent(event events.Event) (tea.Msg, bool) {
	switch e := event.(type) {
	case events.CalculatorOpenedEvent:
		return SnapshotMsg{Snapshot: e.Snapshot}, true
	case events.CalculatorChangedEvent:
		return SnapshotMsg{Snapshot: e.Snapshot}, true
	case events.CalculatorClosedEvent:
		return CalculatorClosedMsg{SessionID: e.SessionID}, true
	case events.ExportCompletedEvent:
		return ExportedMsg{Path: e.Path, Count: e.Count}, true
	default:
		return nil, false
	}
}

// PublishError publishes an error message to the UI bus
func PublishError(err error, title string) {
	select {
	case Bus <- ErrorMsg{Error: err, Title: title}:
	default:
	}
}

// PublishSuccess publishes a success message to the UI bus
func PublishSuccess(message, title string) {
	select {
	case Bus <- SuccessMsg{Message: message, Title: title}:
	default:
	}
}

// BusMsg wraps a message received from Bus. The program listens again
// after handling one, so exactly one listener is pending at a time.
type BusMsg struct {
	Msg tea.Msg
}

// ListenBus returns a tea.Cmd that waits for the next message on Bus
func ListenBus() tea.Cmd {
	return func() tea.Msg {
		return BusMsg{Msg: <-Bus}
	}
}

// Route represents different screens in the application
type Route int

const (
	RoutePortfolio Route = iota
	RouteCalculator
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RoutePortfolio:
		return "portfolio"
	case RouteCalculator:
		return "calculator"
	default:
		return "unknown"
	}
}

// Navigate returns a command that requests navigation to route.
func Navigate(route Route, sessionID string) tea.Cmd {
	return func() tea.Msg {
		return RouterMsg{To: route, SessionID: sessionID}
	}
}
