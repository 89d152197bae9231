package custodytest

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/custody"
)

// Clock is a manually driven custody.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

var _ custody.Clock = (*Clock)(nil)

// NewClock returns a clock stopped at given time.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now implements custody.Clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to given time, possibly backwards.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Context returns a background context with the block time set.
func Context(now time.Time) custody.Context {
	return custody.WithBlockTime(context.Background(), now)
}
