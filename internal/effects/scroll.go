package effects

import (
	"sync/atomic"
	"time"
)

// Parallax returns the hero's vertical offset and opacity for a scroll
// position. ok is false once the page has scrolled a full viewport, in which
// case the hero keeps its last values.
func Parallax(scroll, viewport float64) (offset, opacity float64, ok bool) {
	if viewport <= 0 || scroll >= viewport {
		return 0, 0, false
	}
	return scroll * 0.5, 1 - (scroll/viewport)*0.5, true
}

// Scheduler runs a callback on the next frame.
type Scheduler interface {
	NextFrame(fn func())
}

// TickerScheduler aligns callbacks to a fixed frame interval.
type TickerScheduler struct {
	Interval time.Duration
}

// FrameInterval is the default frame length, roughly 60 frames per second.
const FrameInterval = time.Second / 60

// NextFrame runs fn after one frame interval.
func (s TickerScheduler) NextFrame(fn func()) {
	d := s.Interval
	if d <= 0 {
		d = FrameInterval
	}
	time.AfterFunc(d, fn)
}

// Throttle coalesces bursts of requests so fn runs at most once per frame.
type Throttle struct {
	sched   Scheduler
	fn      func()
	pending atomic.Bool
}

// NewThrottle wraps fn.
func NewThrottle(sched Scheduler, fn func()) *Throttle {
	return &Throttle{sched: sched, fn: fn}
}

// Request schedules fn for the next frame unless a run is already pending.
func (t *Throttle) Request() {
	if !t.pending.CompareAndSwap(false, true) {
		return
	}
	t.sched.NextFrame(func() {
		t.fn()
		t.pending.Store(false)
	})
}
