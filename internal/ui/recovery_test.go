package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type panicModel struct {
	panicOnUpdate bool
	panicOnView   bool
	updates       int
}

func (m panicModel) Init() tea.Cmd { return nil }

func (m panicModel) Update(tea.Msg) (tea.Model, tea.Cmd) {
	if m.panicOnUpdate {
		panic("update failed")
	}
	m.updates++
	return m, nil
}

func (m panicModel) View() string {
	if m.panicOnView {
		panic("view failed")
	}
	return "ok"
}

func TestSafeModelPassesThrough(t *testing.T) {
	safe := NewSafeModel(panicModel{}, zap.NewNop())

	next, cmd := safe.Update(nil)
	assert.Nil(t, cmd)
	assert.Equal(t, "ok", next.View())
	assert.Equal(t, 1, next.(SafeModel).model.(panicModel).updates)
	assert.Zero(t, safe.Panics())
}

func TestSafeModelRecoversUpdatePanic(t *testing.T) {
	safe := NewSafeModel(panicModel{panicOnUpdate: true}, zap.NewNop())

	var next tea.Model
	assert.NotPanics(t, func() { next, _ = safe.Update(nil) })
	assert.NotNil(t, next)
	assert.Equal(t, int64(1), safe.Panics())
}

func TestSafeModelRecoversViewPanic(t *testing.T) {
	safe := NewSafeModel(panicModel{panicOnView: true}, zap.NewNop())

	assert.Contains(t, safe.View(), "View crashed")
	assert.Equal(t, int64(1), safe.Panics())
}

func drainBus() {
	for {
		select {
		case <-Bus:
		default:
			return
		}
	}
}

func TestSafeModelReportsPanicOnBus(t *testing.T) {
	drainBus()
	safe := NewSafeModel(panicModel{panicOnUpdate: true}, zap.NewNop())

	safe.Update(nil)

	require.Len(t, Bus, 1)
	msg, ok := (<-Bus).(ErrorMsg)
	require.True(t, ok)
	assert.Equal(t, "Unexpected error", msg.Title)
	assert.Contains(t, msg.Error.Error(), "update failed")
}
