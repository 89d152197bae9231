package events

import (
	"sync"
	"sync/atomic"

	"github.com/iov-one/custody"
)

type envelope struct {
	ctx   custody.Context
	event custody.Event
}

// Async delivers events to the wrapped sink on its own goroutine. Publish
// never blocks: if the buffer is full, the event is dropped.
type Async struct {
	next    custody.EventSink
	queue   chan envelope
	done    chan struct{}
	dropped uint64

	mu     sync.RWMutex
	closed bool
}

var _ custody.EventSink = (*Async)(nil)

// NewAsync starts delivering events to next. Up to size events are buffered.
// Close must be called to release the goroutine.
func NewAsync(next custody.EventSink, size int) *Async {
	a := &Async{
		next:  next,
		queue: make(chan envelope, size),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) run() {
	defer close(a.done)
	for env := range a.queue {
		a.next.Publish(env.ctx, env.event)
	}
}

// Publish implements custody.EventSink. Events published after Close are
// dropped.
func (a *Async) Publish(ctx custody.Context, e custody.Event) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		atomic.AddUint64(&a.dropped, 1)
		return
	}
	select {
	case a.queue <- envelope{ctx: ctx, event: e}:
	default:
		atomic.AddUint64(&a.dropped, 1)
		custody.GetLogger(ctx).Error("event dropped", "kind", e.Kind())
	}
}

// Dropped returns the number of events that were not delivered.
func (a *Async) Dropped() uint64 {
	return atomic.LoadUint64(&a.dropped)
}

// Close stops accepting events and waits until all buffered events are
// delivered. It is safe to call Close many times.
func (a *Async) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()
	<-a.done
}
