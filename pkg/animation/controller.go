package animation

import (
	"fmt"
	"time"
)

// AnimationStatus represents the current state of an animation.
//
//	          Repeat()
//	Dismissed ────────► Repeating
//	    ▲                   │
//	    └───── Reset() ─────┘
//
// A repeating controller wraps back to LowerBound at the end of every cycle
// until Stop, Reset or Dispose is called.
type AnimationStatus int

const (
	// AnimationDismissed means the animation is stopped at the lower bound.
	AnimationDismissed AnimationStatus = iota
	// AnimationRepeating means the animation cycles from lower to upper bound
	// indefinitely.
	AnimationRepeating
)

// String returns a human-readable representation of the animation status.
func (s AnimationStatus) String() string {
	switch s {
	case AnimationDismissed:
		return "dismissed"
	case AnimationRepeating:
		return "repeating"
	default:
		return fmt.Sprintf("AnimationStatus(%d)", int(s))
	}
}

// AnimationController produces a Value that runs from LowerBound (default
// 0.0) to UpperBound (default 1.0) once per Duration, over and over. The
// Curve function transforms linear progress into eased motion.
//
// Always call Dispose when done to stop the ticker.
type AnimationController struct {
	// Value is the current animation value.
	Value float64

	// Duration is the length of one cycle.
	Duration time.Duration

	// Curve transforms linear progress (optional).
	Curve func(float64) float64

	LowerBound float64
	UpperBound float64

	status AnimationStatus
	ticker *Ticker
	cycle  int64
}

// NewAnimationController creates an animation controller with the given duration.
func NewAnimationController(duration time.Duration) *AnimationController {
	return &AnimationController{
		Duration:   duration,
		UpperBound: 1,
		Curve:      LinearCurve,
		status:     AnimationDismissed,
	}
}

// Repeat animates from the lower bound to the upper bound, restarting at the
// lower bound every Duration. Calling Repeat on a repeating controller
// restarts the cycle from the lower bound at the current time.
//
// The cycle position is derived from total elapsed time rather than counted
// per frame, so late or dropped frames never shift the phase.
func (c *AnimationController) Repeat() {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	c.Value = c.LowerBound
	c.cycle = 0
	c.status = AnimationRepeating
	c.ticker = NewTicker(c.tick)
	c.ticker.Start()
}

func (c *AnimationController) tick(elapsed time.Duration) {
	if c.Duration <= 0 {
		c.Value = c.LowerBound
		return
	}
	elapsed = max(elapsed, 0)
	c.cycle = int64(elapsed / c.Duration)
	within := elapsed % c.Duration
	c.Value = c.interpolate(float64(within) / float64(c.Duration))
}

func (c *AnimationController) interpolate(progress float64) float64 {
	eased := progress
	if c.Curve != nil {
		eased = c.Curve(progress)
	}
	return c.LowerBound + (c.UpperBound-c.LowerBound)*eased
}

// Reset immediately stops the animation and sets the value to the lower bound.
func (c *AnimationController) Reset() {
	c.Stop()
	c.Value = c.LowerBound
	c.cycle = 0
	c.status = AnimationDismissed
}

// Stop stops the animation at the current value.
func (c *AnimationController) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// Status returns the current animation status.
func (c *AnimationController) Status() AnimationStatus {
	return c.status
}

// IsAnimating returns true if the controller's ticker is running.
func (c *AnimationController) IsAnimating() bool {
	return c.ticker != nil && c.ticker.IsActive()
}

// Cycle returns how many full cycles have completed since Repeat was last
// called.
func (c *AnimationController) Cycle() int64 {
	return c.cycle
}

// Dispose stops the controller. It must not be used afterwards.
func (c *AnimationController) Dispose() {
	c.Reset()
}
