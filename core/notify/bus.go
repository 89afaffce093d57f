package notify

import (
	"context"
	"sync"
)

// DefaultBusBufferSize is the default buffer for the in-memory bus.
const DefaultBusBufferSize = 32

// Bus is a channel-backed Notifier suitable for a single-instance
// application. The presentation layer drains Notifications; when the buffer
// is full the oldest pending notification is dropped rather than blocking
// the emitting store action.
type Bus struct {
	ch     chan Notification
	mu     sync.RWMutex
	closed bool
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithBufferSize sets the channel buffer. Values below one are ignored.
func WithBufferSize(size int) BusOption {
	return func(b *Bus) {
		if size > 0 {
			b.ch = make(chan Notification, size)
		}
	}
}

// NewBus creates an in-memory notification bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{ch: make(chan Notification, DefaultBusBufferSize)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Notify implements Notifier. Never blocks: on a full buffer the oldest
// pending notification is evicted to make room.
func (b *Bus) Notify(_ context.Context, n Notification) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for {
		select {
		case b.ch <- n:
			return
		default:
			select {
			case <-b.ch:
			default:
			}
		}
	}
}

// Notifications returns the read side of the bus.
func (b *Bus) Notifications() <-chan Notification {
	return b.ch
}

// Close shuts the bus down. Subsequent Notify calls are discarded.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.ch)
	}
}
