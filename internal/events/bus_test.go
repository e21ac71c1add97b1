package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.Subscribe(EventStageChanged, 10)

	e := &StageChanged{
		BaseEvent: NewBaseEvent(EventStageChanged, EntityItem, "item-1"),
		ItemID:    "item-1",
		From:      "checking",
		To:        "fetching_metadata",
	}
	require.NoError(t, bus.Publish(context.Background(), e))

	select {
	case received := <-ch:
		assert.Equal(t, EventStageChanged, received.EventType())
		assert.Equal(t, "item-1", received.EntityID())
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.SubscribeAll(10)

	e1 := &ProgressUpdated{BaseEvent: NewBaseEvent(EventProgressUpdated, EntityItem, "a"), Progress: 20}
	e2 := &ScanPageFetched{BaseEvent: NewBaseEvent(EventScanPageFetched, EntityScan, "scan"), Page: 1}

	require.NoError(t, bus.Publish(context.Background(), e1))
	require.NoError(t, bus.Publish(context.Background(), e2))

	received := make([]Event, 0, 2)
	timeout := time.After(time.Second)
	for i := 0; i < 2; i++ {
		select {
		case e := <-ch:
			received = append(received, e)
		case <-timeout:
			t.Fatalf("timeout waiting for event %d", i+1)
		}
	}

	assert.Len(t, received, 2)
}

func TestBus_NonBlockingDelivery(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	// Buffer of one: the second publish must drop, not block.
	_ = bus.Subscribe(EventProgressUpdated, 1)

	for i := 0; i < 3; i++ {
		e := &ProgressUpdated{BaseEvent: NewBaseEvent(EventProgressUpdated, EntityItem, "a")}
		require.NoError(t, bus.Publish(context.Background(), e))
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.Subscribe(EventImportFailed, 10)
	bus.Unsubscribe(ch)

	e := &ImportFailed{BaseEvent: NewBaseEvent(EventImportFailed, EntityItem, "a")}
	require.NoError(t, bus.Publish(context.Background(), e))

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed")
	default:
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := NewBus(nil)
	require.NoError(t, bus.Close())

	e := &ImportCompleted{BaseEvent: NewBaseEvent(EventImportCompleted, EntityItem, "a")}
	assert.NoError(t, bus.Publish(context.Background(), e))

	// Closing twice is a no-op.
	assert.NoError(t, bus.Close())
}
