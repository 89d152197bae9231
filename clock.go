package custody

import (
	"sync"
	"time"
)

// Clock supplies the time of an operation.
type Clock interface {
	Now() time.Time
}

// ClockFunc is an adapter to allow the use of ordinary functions as Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (fn ClockFunc) Now() time.Time {
	return fn()
}

// SystemClock returns the wall clock time with second precision, in UTC.
var SystemClock = ClockFunc(func() time.Time {
	return time.Now().UTC().Truncate(time.Second)
})

// MonotonicClock never returns a time before one it already returned, even
// if the wrapped clock goes backwards.
type MonotonicClock struct {
	mu   sync.Mutex
	src  Clock
	last time.Time
}

// NewMonotonicClock returns a clock that never goes backwards.
func NewMonotonicClock(src Clock) *MonotonicClock {
	return &MonotonicClock{src: src}
}

// Now implements Clock.
func (c *MonotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.src.Now()
	if now.Before(c.last) {
		return c.last
	}
	c.last = now
	return now
}
