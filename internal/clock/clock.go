package clock

import (
	"context"
	"sync"
	"time"
)

// Move clock. Accumulates the time that passes between `Clock.Resume()`
// and `Clock.Pause()` calls, like one side of a chess clock.
//
// Once the accumulated time reaches the budget while the clock is
// running, `expire` is called exactly once.
//
// `Clock.Close()` stops the clock for good; it never expires afterwards.
type Clock struct {
	mu       sync.Mutex
	budget   time.Duration
	used     time.Duration
	started  time.Time
	running  bool
	expired  bool
	closed   bool
	timer    *time.Timer
	expireFn func()
}

// Creates Clock with given budget and expiry callback.
//
// Created Clock is in PAUSED state.
func New(budget time.Duration, expire func()) *Clock {
	return &Clock{
		budget:   budget,
		expireFn: expire,
	}
}

func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running || c.closed || c.expired {
		return
	}

	c.running = true
	c.started = time.Now()
	c.timer = time.AfterFunc(c.budget-c.used, c.expire)
}

func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}

	c.running = false
	c.used += time.Since(c.started)
	c.timer.Stop()
}

func (c *Clock) expire() {
	c.mu.Lock()
	if !c.running || c.closed || c.expired {
		c.mu.Unlock()
		return
	}
	c.expired = true
	c.running = false
	c.used = c.budget
	c.mu.Unlock()

	c.expireFn()
}

// Returns the budget left, never negative.
func (c *Clock) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	used := c.used
	if c.running {
		used += time.Since(c.started)
	}
	return max(0, c.budget-used)
}

func (c *Clock) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired
}

func (c *Clock) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
}

// Creates context and clock bound together.
//
// When the clock runs out, context is cancelled with `cause` cause.
//
// When the parent context is cancelled, clock is closed.
func NewContext(parent context.Context, budget time.Duration, cause error) (context.Context, *Clock) {
	ctx, cancel := context.WithCancelCause(parent)
	c := New(budget, func() {
		cancel(cause)
	})

	context.AfterFunc(ctx, c.Close)

	return ctx, c
}
