package profiler

import "time"

// FrameClock measures the time between consecutive frames.
type FrameClock struct {
	now    func() time.Time
	last   time.Time
	ticked bool
	frames uint64
}

// NewFrameClock creates a FrameClock. A nil now uses time.Now.
func NewFrameClock(now func() time.Time) *FrameClock {
	if now == nil {
		now = time.Now
	}
	return &FrameClock{now: now}
}

// Tick marks the start of a frame and returns the seconds elapsed since the
// previous Tick. The first Tick returns 0. A clock that steps backwards also
// yields 0, so the result is never negative.
func (c *FrameClock) Tick() float32 {
	t := c.now()
	c.frames++
	if !c.ticked {
		c.ticked = true
		c.last = t
		return 0
	}
	dt := t.Sub(c.last)
	c.last = t
	if dt <= 0 {
		return 0
	}
	return float32(dt.Seconds())
}

// Frames returns how many times Tick has been called.
func (c *FrameClock) Frames() uint64 {
	return c.frames
}
