package scene

import (
	"math/bits"
	"time"
)

// Scroll is the background's sub-tile offset. It accumulates exact
// pixel-nanoseconds so a run of deltas adding up to one period lands back
// on zero with no float drift.
type Scroll struct {
	acc int64 // pixel·ns, in [0, period·1s)
}

// Phase returns the whole-pixel offset in [0, period).
func (s Scroll) Phase() int {
	return int(s.acc / int64(time.Second))
}

// Advance moves the phase by speed·dt pixels, wrapping at period. Zero or
// negative dt leaves it unchanged.
func (s Scroll) Advance(speed, period int, dt time.Duration) Scroll {
	if dt <= 0 || speed <= 0 || period <= 0 {
		return s
	}
	span := uint64(period) * uint64(time.Second)
	// period seconds of travel is speed·period pixels, a whole number of wraps
	d := uint64(dt) % span
	hi, lo := bits.Mul64(uint64(speed), d)
	step := bits.Rem64(hi, lo, span)
	s.acc = int64((uint64(s.acc)%span + step) % span)
	return s
}
