// Package ramp steps a level linearly toward a target, leaving timing and
// cancellation to the caller.
package ramp

import (
	"time"

	"challenger-go/x/mathx"
)

// Step sets the new level in [0..top].
type Step func(level uint32)

// Tick waits for d and reports whether to continue (false => cancelled).
type Tick func(d time.Duration) bool

// Linear ramps from cur to to over total, in steps equal intervals. It runs
// on the caller's goroutine. steps==0 or total<=0 snaps to to. Both ends are
// clamped to top; repeated levels are not re-set.
func Linear(cur, to, top uint32, total time.Duration, steps uint16, tick Tick, set Step) {
	to = mathx.Clamp(to, 0, top)
	if steps == 0 || total <= 0 {
		set(to)
		return
	}
	stepDur := total / time.Duration(steps)
	if stepDur <= 0 {
		stepDur = time.Millisecond
	}
	from := int64(mathx.Clamp(cur, 0, top))
	delta := int64(to) - from
	last := from
	for i := int64(1); i < int64(steps); i++ {
		if !tick(stepDur) {
			return
		}
		if v := from + delta*i/int64(steps); v != last {
			last = v
			set(uint32(v))
		}
	}
	if tick(stepDur) {
		set(to)
	}
}
