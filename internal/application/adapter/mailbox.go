package adapter

import "sync"

// Mailbox is a single-slot, latest-wins channel. Put never blocks: when the
// slot is taken, the older value is dropped in favour of the new one.
type Mailbox[T any] struct {
	mu     sync.Mutex
	ch     chan T
	closed bool
}

// NewMailbox creates an empty Mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{ch: make(chan T, 1)}
}

// Put stores v, replacing any value the consumer has not received yet.
// It reports whether a stale value was dropped. Put after Close is a no-op.
func (m *Mailbox[T]) Put(v T) (replaced bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false
	}

	select {
	case m.ch <- v:
		return false
	default:
	}

	select {
	case <-m.ch:
		replaced = true
	default:
	}
	m.ch <- v
	return replaced
}

// C returns the receive side of the mailbox. It is closed by Close.
func (m *Mailbox[T]) C() <-chan T {
	return m.ch
}

// Close closes the channel. Calling it more than once is safe.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.ch)
	}
}
