package hackslash

// Clock converts variable frame deltas into a whole number of fixed steps.
type Clock struct {
	Step     float64 // fixed tick duration, seconds
	MaxFrame float64 // frame deltas are capped here so a stall cannot queue hundreds of ticks

	accumulator float64
}

// NewClock creates a clock with an empty accumulator.
func NewClock(step, maxFrame float64) *Clock {
	return &Clock{Step: step, MaxFrame: maxFrame}
}

// Advance feeds one frame delta and runs tick once per whole step held in the
// accumulator. Returns the number of ticks run.
func (c *Clock) Advance(dt float64, tick func()) int {
	if dt < 0 {
		dt = 0
	}
	if c.MaxFrame > 0 && dt > c.MaxFrame {
		dt = c.MaxFrame
	}
	c.accumulator += dt

	n := 0
	for c.accumulator >= c.Step {
		tick()
		c.accumulator -= c.Step
		n++
	}
	return n
}

// Alpha returns the unconsumed fraction of a step, in [0, 1).
func (c *Clock) Alpha() float64 {
	return c.accumulator / c.Step
}

// Reset drops any accumulated time.
func (c *Clock) Reset() {
	c.accumulator = 0
}
