package ui

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// SafeModel wraps a tea.Model and turns panics in Init, Update and View
// into log entries so a bad keystroke cannot leave the terminal in raw mode.
type SafeModel struct {
	model  tea.Model
	logger *zap.Logger
	panics *atomic.Int64
}

// NewSafeModel creates a new panic-recovering wrapper
func NewSafeModel(model tea.Model, logger *zap.Logger) SafeModel {
	return SafeModel{
		model:  model,
		logger: logger.Named("ui_recovery"),
		panics: new(atomic.Int64),
	}
}

// Panics returns the number of recovered panics.
func (sm SafeModel) Panics() int64 {
	return sm.panics.Load()
}

// Init wraps the Init method with panic recovery
func (sm SafeModel) Init() (cmd tea.Cmd) {
	defer sm.recoverFromPanic("Init", &cmd)
	return sm.model.Init()
}

// Update wraps the Update method with panic recovery
func (sm SafeModel) Update(msg tea.Msg) (m tea.Model, cmd tea.Cmd) {
	m = sm
	defer sm.recoverFromPanic("Update", &cmd)
	next, cmd := sm.model.Update(msg)
	sm.model = next
	return sm, cmd
}

// View wraps the View method with panic recovery
func (sm SafeModel) View() (view string) {
	defer func() {
		if r := recover(); r != nil {
			sm.panics.Add(1)
			sm.logger.Error("View panic recovered",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())))
			view = "UI Error: View crashed. Press Ctrl+C to exit."
		}
	}()
	return sm.model.View()
}

func (sm SafeModel) recoverFromPanic(method string, cmd *tea.Cmd) {
	if r := recover(); r != nil {
		sm.panics.Add(1)
		sm.logger.Error("UI method panic recovered",
			zap.String("method", method),
			zap.Any("panic", r),
			zap.String("stack", string(debug.Stack())))
		PublishError(fmt.Errorf("%s: %v", method, r), "Unexpected error")
		*cmd = nil
	}
}
