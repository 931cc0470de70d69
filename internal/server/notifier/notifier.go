// Package notifier broadcasts dataset versions to server-sent event
// listeners.
package notifier

import "sync"

// Notifier publishes a monotonically increasing version to every
// subscribed listener. A slow listener only ever holds the latest version:
// stale pending values are replaced, never queued.
type Notifier struct {
	mu        sync.Mutex
	version   uint64
	listeners map[chan uint64]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan uint64]struct{}),
	}
}

// Subscribe returns a channel that receives versions as they are published.
// The caller must call Unsubscribe when done to prevent goroutine leaks.
func (n *Notifier) Subscribe() chan uint64 {
	ch := make(chan uint64, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.listeners[ch]; !ok {
		return
	}
	delete(n.listeners, ch)
	close(ch)
}

// Publish bumps the version and sends it to all listeners without blocking.
func (n *Notifier) Publish() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.version++
	v := n.version
	for ch := range n.listeners {
		select {
		case ch <- v:
			continue
		default:
		}
		// Full: replace the stale version.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
	return v
}

// Version returns the last published version.
func (n *Notifier) Version() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.version
}

// Len returns the number of listeners.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}
