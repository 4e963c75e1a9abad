package core

// FrameClock is the simulation time accumulator. Time advances by a fixed
// Step per tick and is derived from the tick count, so k ticks always land on
// exactly k*Step regardless of frame pacing.
type FrameClock struct {
	Step  float32
	ticks uint64
}

func NewFrameClock(step float32) *FrameClock {
	return &FrameClock{Step: step}
}

// Advance moves the clock forward by one tick and returns the new time.
func (c *FrameClock) Advance() float32 {
	c.ticks++
	return c.Time()
}

func (c *FrameClock) Time() float32 {
	return float32(float64(c.ticks) * float64(c.Step))
}

func (c *FrameClock) Ticks() uint64 {
	return c.ticks
}
