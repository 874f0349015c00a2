// Package timer provides the countdown clock of a test.
package timer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultDuration is the time a student has to finish the test.
const DefaultDuration = 20 * time.Minute

// State is the state of a Countdown.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateExpired:
		return "expired"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var ErrAlreadyStarted = errors.New("timer already started")

// Countdown counts down in whole seconds and calls onExpire once when the
// remaining time reaches zero.
//
// It is driven by Tick, so the caller decides where the seconds come from: a
// time.Ticker (see Run), a bubbletea tick message or a test.
type Countdown struct {
	mu        sync.Mutex
	state     State
	remaining time.Duration
	onExpire  func()
}

// New creates an idle Countdown. Durations are truncated to whole seconds.
func New(duration time.Duration, onExpire func()) *Countdown {
	if duration < 0 {
		duration = 0
	}

	return &Countdown{
		remaining: duration.Truncate(time.Second),
		onExpire:  onExpire,
	}
}

// Start moves the countdown from idle to running.
//
// A zero-length countdown expires immediately.
func (c *Countdown) Start() error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.state = StateRunning
	expired := c.expireIfDone()
	c.mu.Unlock()

	if expired {
		c.fire()
	}

	return nil
}

// Tick takes one second off a running countdown and returns the new state.
// It does nothing when the countdown is idle or expired.
func (c *Countdown) Tick() State {
	c.mu.Lock()
	if c.state != StateRunning {
		state := c.state
		c.mu.Unlock()
		return state
	}

	c.remaining -= time.Second
	expired := c.expireIfDone()
	state := c.state
	c.mu.Unlock()

	if expired {
		c.fire()
	}

	return state
}

// expireIfDone must be called with mu held.
func (c *Countdown) expireIfDone() bool {
	if c.remaining > 0 {
		return false
	}

	c.remaining = 0
	c.state = StateExpired
	return true
}

func (c *Countdown) fire() {
	if c.onExpire != nil {
		c.onExpire()
	}
}

// Run ticks the countdown on every value received from ticks until it
// expires or ctx is done. Cancelling ctx is how a submitted test stops its
// clock.
func (c *Countdown) Run(ctx context.Context, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			if c.Tick() == StateExpired {
				return nil
			}
		}
	}
}

// RunEverySecond is Run on a one-second time.Ticker.
func (c *Countdown) RunEverySecond(ctx context.Context) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	return c.Run(ctx, ticker.C)
}

func (c *Countdown) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.remaining
}

// Format renders a remaining duration as M:SS.
func Format(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}

	seconds := int(remaining / time.Second)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
