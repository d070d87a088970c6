package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application
type KeyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding

	// Portfolio
	NewCalculator    key.Binding
	DeleteCalculator key.Binding
	ExportCSV        key.Binding
	ExportJSON       key.Binding
	OnlyTargeted     key.Binding

	// Calculator
	ClearField key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),

		NewCalculator: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new calculator"),
		),
		DeleteCalculator: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "export json"),
		),
		OnlyTargeted: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "targeted only"),
		),

		ClearField: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear field"),
		),
	}
}

// ShortHelp returns key help text for the current context
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// ContextualHelp returns help text based on the current route
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RoutePortfolio:
		return []key.Binding{k.Up, k.Down, k.Enter, k.NewCalculator, k.DeleteCalculator,
			k.ExportCSV, k.ExportJSON, k.OnlyTargeted, k.Quit}
	case RouteCalculator:
		return []key.Binding{k.Tab, k.ShiftTab, k.ClearField, k.Back, k.Quit}
	default:
		return k.ShortHelp()
	}
}
