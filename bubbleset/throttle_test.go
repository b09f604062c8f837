package bubbleset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottleLeadingAndTrailing(t *testing.T) {
	clk := newFakeClock()
	calls := 0
	th := newThrottle(clk, 100*time.Millisecond, func() { calls++ })

	th.Trigger()
	assert.Equal(t, 0, calls, "never runs on the triggering goroutine")
	clk.Advance(0)
	assert.Equal(t, 1, calls, "first trigger runs right away")

	th.Trigger()
	th.Trigger()
	th.Trigger()
	clk.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, calls)
	clk.Advance(50 * time.Millisecond)
	assert.Equal(t, 2, calls, "burst folds into one trailing call")

	clk.Advance(time.Second)
	assert.Equal(t, 2, calls)
}

func TestThrottleUnderContinuousTriggers(t *testing.T) {
	clk := newFakeClock()
	calls := 0
	th := newThrottle(clk, 100*time.Millisecond, func() { calls++ })
	for i := 0; i < 50; i++ {
		th.Trigger()
		clk.Advance(10 * time.Millisecond)
	}
	// 500ms of triggers every 10ms: one call per interval
	assert.InDelta(t, 5, calls, 1)
}

func TestThrottleStop(t *testing.T) {
	clk := newFakeClock()
	calls := 0
	th := newThrottle(clk, 100*time.Millisecond, func() { calls++ })
	th.Trigger()
	th.Stop()
	clk.Advance(time.Second)
	assert.Equal(t, 0, calls)
	th.Trigger()
	assert.Equal(t, 0, clk.pending())
}
