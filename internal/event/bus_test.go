package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_publishReachesSubscriber(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Subscribe(TransactionsChanged, func() { calls++ })

	bus.Publish(TransactionsChanged)
	bus.Publish(TransactionsChanged)
	assert.Equal(t, 2, calls, "no coalescing between publishes")
}

func TestBus_signalsAreIndependent(t *testing.T) {
	bus := NewBus()

	var txCalls, profileCalls int
	bus.Subscribe(TransactionsChanged, func() { txCalls++ })
	bus.Subscribe(ProfileChanged, func() { profileCalls++ })

	bus.Publish(ProfileChanged)
	assert.Equal(t, 0, txCalls)
	assert.Equal(t, 1, profileCalls)
}

func TestBus_unsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsubscribe := bus.Subscribe(TransactionsChanged, func() { calls++ })

	bus.Publish(TransactionsChanged)
	unsubscribe()
	bus.Publish(TransactionsChanged)
	assert.Equal(t, 1, calls)

	// Unsubscribing twice is harmless.
	unsubscribe()
}

func TestBus_multipleSubscribersInOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe(TransactionsChanged, func() { order = append(order, "first") })
	bus.Subscribe(TransactionsChanged, func() { order = append(order, "second") })

	bus.Publish(TransactionsChanged)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestBus_publishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() { bus.Publish(TransactionsChanged) })
}
