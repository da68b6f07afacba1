// Package bus is a small in-process change feed. Usecases publish the name
// of a collection they just wrote; the SSE handler fans the names out to
// connected admin clients so back-office views refetch without polling.
package bus

import (
	"sync"
)

// subscriber channels are buffered; a slow consumer drops events instead of
// blocking writers.
const subscriberBuffer = 16

type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan string
	closed bool
}

func New() *Bus {
	return &Bus{subs: map[int]chan string{}}
}

// Notify implements the usecase ChangeNotifier port.
func (b *Bus) Notify(collection string) {
	if b == nil || collection == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- collection:
		default:
			// drop for this subscriber rather than stall the writer
		}
	}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the consumer goes away; it closes the channel.
func (b *Bus) Subscribe() (<-chan string, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan string, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close drops all subscribers; used on shutdown.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
