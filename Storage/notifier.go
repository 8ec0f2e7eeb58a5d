package Storage

import "sync"

// notifier tracks snapshot subscribers for the SQLite-backed stores. SQLite has
// no change streams, so the adapters publish after their own successful writes.
type notifier[T any] struct {
	mu   sync.Mutex
	next int
	subs map[int]func([]T)
}

func (n *notifier[T]) subscribe(fn func([]T)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func([]T))
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier[T]) publish(snapshot []T) {
	n.mu.Lock()
	fns := make([]func([]T), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn(snapshot)
	}
}
