package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rovshanmuradov/token-calc/internal/calculator"
)

func shutdown(t *testing.T, bus *Bus) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, bus.Shutdown(ctx))
}

func TestBusDeliversInOrder(t *testing.T) {
	bus := NewBus(zap.NewNop(), 64)

	var mu sync.Mutex
	var revisions []uint64
	bus.SubscribeFunc(CalculatorChanged, func(_ context.Context, e Event) error {
		mu.Lock()
		defer mu.Unlock()
		revisions = append(revisions, e.(CalculatorChangedEvent).Snapshot.Revision)
		return nil
	})

	for i := uint64(1); i <= 20; i++ {
		require.NoError(t, bus.Publish(NewCalculatorChanged(calculator.Snapshot{Revision: i})))
	}
	shutdown(t, bus)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, revisions, 20)
	for i, rev := range revisions {
		assert.Equal(t, uint64(i+1), rev)
	}
}

func TestBusPublishSyncJoinsErrors(t *testing.T) {
	bus := NewBus(zap.NewNop(), 1)
	defer shutdown(t, bus)

	boom := errors.New("boom")
	bus.SubscribeFunc(CalculatorClosed, func(context.Context, Event) error { return boom })
	bus.SubscribeFunc(CalculatorClosed, func(context.Context, Event) error { return nil })

	err := bus.PublishSync(context.Background(), NewCalculatorClosed("abc"))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(1), bus.Stats().Failed)

	assert.NoError(t, bus.PublishSync(context.Background(), NewExportCompleted("x.csv", 1)))
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(zap.NewNop(), 4)
	defer shutdown(t, bus)

	calls := 0
	sub := bus.SubscribeFunc(CalculatorOpened, func(context.Context, Event) error {
		calls++
		return nil
	})
	assert.Equal(t, 1, bus.Stats().HandlersPerType[CalculatorOpened])

	sub.Unsubscribe()
	require.NoError(t, bus.PublishSync(context.Background(), NewCalculatorOpened(calculator.Snapshot{})))

	assert.Zero(t, calls)
	assert.NotContains(t, bus.Stats().HandlersPerType, CalculatorOpened)
}

func TestBusPublishAfterShutdown(t *testing.T) {
	bus := NewBus(zap.NewNop(), 4)
	shutdown(t, bus)

	err := bus.Publish(NewCalculatorClosed("abc"))
	assert.ErrorIs(t, err, ErrBusClosed)
}

func TestBusDeliversEveryAcceptedEventDuringShutdown(t *testing.T) {
	bus := NewBus(zap.NewNop(), 1024)

	var delivered atomic.Int64
	bus.SubscribeFunc(CalculatorClosed, func(context.Context, Event) error {
		delivered.Add(1)
		return nil
	})

	var accepted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				err := bus.Publish(NewCalculatorClosed("abc"))
				if err == nil {
					accepted.Add(1)
					continue
				}
				if errors.Is(err, ErrBusClosed) {
					return
				}
			}
		}()
	}

	time.Sleep(time.Millisecond)
	shutdown(t, bus)
	wg.Wait()

	assert.Equal(t, accepted.Load(), delivered.Load())
	assert.Equal(t, uint64(accepted.Load()), bus.Stats().Published)
	assert.ErrorIs(t, bus.Publish(NewCalculatorClosed("late")), ErrBusClosed)
}

func TestBusDropsWhenFull(t *testing.T) {
	bus := NewBus(zap.NewNop(), 1)

	release := make(chan struct{})
	bus.SubscribeFunc(CalculatorClosed, func(context.Context, Event) error {
		<-release
		return nil
	})

	var dropped bool
	for i := 0; i < 10; i++ {
		if errors.Is(bus.Publish(NewCalculatorClosed("abc")), ErrBusFull) {
			dropped = true
		}
	}
	close(release)
	shutdown(t, bus)

	assert.True(t, dropped)
	assert.NotZero(t, bus.Stats().Dropped)
}

func TestSnapshotPublisher(t *testing.T) {
	bus := NewBus(zap.NewNop(), 16)

	got := make(chan calculator.Snapshot, 4)
	bus.SubscribeFunc(CalculatorChanged, func(_ context.Context, e Event) error {
		got <- e.(CalculatorChangedEvent).Snapshot
		return nil
	})

	session := calculator.NewSession(calculator.DefaultInput(), zap.NewNop())
	session.Subscribe(SnapshotPublisher(bus))
	session.SetCurrentPrice(2)
	session.SetTargetCurrency(calculator.Some(4))
	shutdown(t, bus)

	require.Len(t, got, 2)
	<-got
	last := <-got
	assert.Equal(t, session.ID(), last.SessionID)
	assert.Equal(t, calculator.Some(2), last.TargetTokens)
}

func TestSnapshotPublisherLogsRejectedSnapshots(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bus := NewBus(zap.New(core), 4)
	shutdown(t, bus)

	session := calculator.NewSession(calculator.DefaultInput(), zap.NewNop())
	session.Subscribe(SnapshotPublisher(bus))
	session.SetCurrentPrice(3)

	rejected := logs.FilterMessage("Snapshot not published").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, session.ID(), rejected[0].ContextMap()["session_id"])
	assert.Equal(t, ErrBusClosed.Error(), rejected[0].ContextMap()["error"])
}
