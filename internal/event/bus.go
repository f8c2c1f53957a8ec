package event

import (
	"sort"
	"sync"
)

type Signal string

const (
	// TransactionsChanged fires after any committed write that affects the
	// transaction log or stock levels.
	TransactionsChanged Signal = "transactions-changed"
	// ProfileChanged fires after a committed user-profile write.
	ProfileChanged Signal = "profile-changed"
)

// Bus is a process-wide notification channel. Delivery is synchronous and
// in subscription order; handlers run on the publisher's goroutine. There
// is no coalescing: every Publish reaches every current subscriber.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Signal]map[int]func()
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Signal]map[int]func())}
}

// Subscribe registers fn for a signal and returns the matching unsubscribe.
// Callers own the subscription lifecycle: subscribe on activation,
// unsubscribe on deactivation.
func (b *Bus) Subscribe(sig Signal, fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.subs[sig] == nil {
		b.subs[sig] = make(map[int]func())
	}
	b.subs[sig][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[sig], id)
	}
}

func (b *Bus) Publish(sig Signal) {
	b.mu.Lock()
	handlers := make([]func(), 0, len(b.subs[sig]))
	ids := make([]int, 0, len(b.subs[sig]))
	for id := range b.subs[sig] {
		ids = append(ids, id)
	}
	// Map iteration order is random; deliver in subscription order.
	sort.Ints(ids)
	for _, id := range ids {
		handlers = append(handlers, b.subs[sig][id])
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}
