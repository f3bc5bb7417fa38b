// Package controller holds the per-feature state holders. Each controller
// owns one state record guarded by a mutex; intent methods invoke a
// repository, reduce the terminal result into the record, and signal
// subscribers to re-read it.
package controller

import "sync"

// notifier fans out change signals to subscribers. Signals are
// level-triggered; a subscriber re-reads the controller state on each tick
// and a stalled subscriber coalesces pending ticks instead of blocking.
type notifier struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[int]chan struct{})}
}

// Subscribe returns a change signal channel and a cancel function.
func (n *notifier) Subscribe() (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan struct{}, 1)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (n *notifier) notify() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
