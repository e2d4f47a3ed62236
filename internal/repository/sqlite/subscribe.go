package sqlite

import (
	"sync"
)

// hub fans full result-set snapshots out to subscribers. Delivery is
// most-recent-snapshot-wins: a slow subscriber has its stale snapshot
// replaced rather than blocking the writer.
type hub[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan []*T
}

func newHub[T any]() *hub[T] {
	return &hub[T]{subs: make(map[int]chan []*T)}
}

// subscribe registers a new subscriber and returns its channel together
// with a cancel function. The channel is closed on cancel.
func (h *hub[T]) subscribe() (<-chan []*T, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	ch := make(chan []*T, 1)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if existing, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(existing)
		}
	}

	return ch, cancel
}

// publish delivers a snapshot to every subscriber without blocking. A
// subscriber that has not consumed the previous snapshot loses it.
func (h *hub[T]) publish(snapshot []*T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- snapshot:
		default:
			// Drop the stale snapshot, then deliver the current one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}
