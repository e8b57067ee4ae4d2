package clock

import (
	"time"

	"github.com/go-drift/clockface/pkg/animation"
)

// TimeSource reads the current time of day.
type TimeSource interface {
	Now() (TimeOfDay, error)
}

// SourceFunc adapts a function to TimeSource.
type SourceFunc func() (TimeOfDay, error)

// Now calls f.
func (f SourceFunc) Now() (TimeOfDay, error) {
	return f()
}

// SystemSource reads the host wall clock.
type SystemSource struct {
	// Clock supplies the instant. Nil uses the animation package clock, so
	// tests that install a fake animation clock also control the time read.
	Clock animation.Clock
}

// Now returns the current local time of day.
func (s SystemSource) Now() (TimeOfDay, error) {
	var now time.Time
	if s.Clock != nil {
		now = s.Clock.Now()
	} else {
		now = animation.Now()
	}
	if now.IsZero() {
		return TimeOfDay{}, ErrInvalidTime
	}
	t := FromTime(now)
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}
