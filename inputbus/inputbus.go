// Package inputbus carries input events from every producer (the local
// terminal and any live scanner session) to the single session controller.
package inputbus

import (
	"sync"
	"time"
)

// Event is one input event in transit. The variant set is closed: the
// marker method restricts implementations to this package, and consumers
// are expected to switch over all of them.
type Event interface {
	inputEvent()
}

// Scan is a completed credential string decoded by a scanner session.
type Scan struct {
	Code string
}

func (Scan) inputEvent() {}

// KeyCode identifies the kind of a terminal key event.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyBackspace
)

// Key is one raw key event from the local terminal.
type Key struct {
	Code KeyCode
	Rune rune // valid when Code == KeyRune
}

func (Key) inputEvent() {}

// Resize reports a terminal size change. The controller ignores it.
type Resize struct {
	Cols int
	Rows int
}

func (Resize) inputEvent() {}

// Bus is an unbounded multi-producer single-consumer event queue.
// Send never blocks and never drops; events sent while the consumer is
// not waiting stay queued until the next Receive. Order is FIFO per
// producer with no guarantee across producers.
type Bus struct {
	mu    sync.Mutex
	queue []Event
	wake  chan struct{}
}

func New() *Bus {
	return &Bus{wake: make(chan struct{}, 1)}
}

func (b *Bus) Send(ev Event) {
	b.mu.Lock()
	b.queue = append(b.queue, ev)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Bus) pop() (Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return nil, false
	}
	ev := b.queue[0]
	b.queue = b.queue[1:]
	return ev, true
}

// Receive dequeues the next event, waiting up to timeout. The second
// return value is false exactly when the wait timed out; a timed-out wait
// never also yields an event.
func (b *Bus) Receive(timeout time.Duration) (Event, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if ev, ok := b.pop(); ok {
			return ev, true
		}
		select {
		case <-b.wake:
		case <-timer.C:
			return nil, false
		}
	}
}

// ReceiveBlocking dequeues the next event with no deadline.
func (b *Bus) ReceiveBlocking() Event {
	for {
		if ev, ok := b.pop(); ok {
			return ev
		}
		<-b.wake
	}
}
