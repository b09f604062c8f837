package bubbleset

import (
	"sync"
	"time"
)

// Clock schedules the throttled recomputations. Tests substitute a
// manual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled call that can be cancelled.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// throttle runs fn at most once per interval. The first trigger after a
// quiet period schedules fn right away; triggers arriving while a call
// is scheduled are folded into it. fn never runs on the triggering
// goroutine.
type throttle struct {
	clock    Clock
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	last    time.Time
	pending Timer
	stopped bool
}

func newThrottle(c Clock, interval time.Duration, fn func()) *throttle {
	return &throttle{clock: c, interval: interval, fn: fn}
}

func (t *throttle) Trigger() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.pending != nil {
		return
	}
	delay := t.last.Add(t.interval).Sub(t.clock.Now())
	if delay < 0 || t.last.IsZero() {
		delay = 0
	}
	t.pending = t.clock.AfterFunc(delay, t.run)
}

func (t *throttle) run() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.pending = nil
	t.last = t.clock.Now()
	t.mu.Unlock()
	t.fn()
}

// Stop cancels the scheduled call, if any, and makes later triggers
// no-ops.
func (t *throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}
