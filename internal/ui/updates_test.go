package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-calc/internal/calculator"
	"github.com/rovshanmuradov/token-calc/internal/events"
)

func TestUpdateSenderNonBlocking(t *testing.T) {
	msgChan := make(chan tea.Msg, 10)
	sender := NewUpdateSender(msgChan, zap.NewNop())
	defer sender.Close()

	for i := 0; i < 10; i++ {
		sender.SendUpdate(SuccessMsg{Message: "fill"})
	}

	start := time.Now()
	for i := 0; i < 100; i++ {
		sender.SendUpdate(SuccessMsg{Message: "dropped"})
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond, "SendUpdate must not block")

	sent, dropped := sender.GetStats()
	assert.Equal(t, uint64(10), sent)
	assert.Equal(t, uint64(100), dropped)
}

func TestUpdateSenderConcurrent(t *testing.T) {
	msgChan := make(chan tea.Msg, 100)
	sender := NewUpdateSender(msgChan, zap.NewNop())
	defer sender.Close()

	const goroutines, perGoroutine = 10, 100

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				sender.SendUpdate(SuccessMsg{Message: "test"})
			}
		}()
	}
	wg.Wait()

	sent, dropped := sender.GetStats()
	assert.Equal(t, uint64(goroutines*perGoroutine), sent+dropped)
}

func TestUpdateSenderForwardsBusEvents(t *testing.T) {
	bus := events.NewBus(zap.NewNop(), 16)
	msgChan := make(chan tea.Msg, 16)
	sender := NewUpdateSender(msgChan, zap.NewNop())
	defer sender.Close()

	detach := sender.Forward(bus)
	defer detach()

	session := calculator.NewSession(calculator.DefaultInput(), zap.NewNop())
	session.Subscribe(events.SnapshotPublisher(bus))
	session.SetCurrentPrice(2)

	require.NoError(t, bus.Publish(events.NewExportCompleted("out.csv", 1)))
	require.NoError(t, bus.Shutdown(context.Background()))

	require.Len(t, msgChan, 2)
	first := (<-msgChan).(SnapshotMsg)
	assert.Equal(t, session.ID(), first.Snapshot.SessionID)
	assert.Equal(t, 2.0, first.Snapshot.Input.CurrentPrice)
	assert.Equal(t, ExportedMsg{Path: "out.csv", Count: 1}, <-msgChan)
}

func TestMsgForEvent(t *testing.T) {
	msg, ok := MsgForEvent(events.NewCalculatorClosed("abc"))
	require.True(t, ok)
	assert.Equal(t, CalculatorClosedMsg{SessionID: "abc"}, msg)
}
