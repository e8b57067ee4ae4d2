// Package clock derives everything the clock screen displays from a time of
// day: the digital readout and the hand angles.
//
// Angles are in degrees, measured clockwise from 12 o'clock.
package clock

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTime is returned for a TimeOfDay with a field out of range.
var ErrInvalidTime = errors.New("invalid time of day")

// TimeOfDay is a wall-clock reading with second resolution.
type TimeOfDay struct {
	Hour   int // 0-23
	Minute int // 0-59
	Second int // 0-59
}

// FromTime extracts the time of day of t in t's own location.
func FromTime(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay{Hour: h, Minute: m, Second: s}
}

// Validate reports whether every field is in range.
func (t TimeOfDay) Validate() error {
	switch {
	case t.Hour < 0 || t.Hour > 23:
		return fmt.Errorf("%w: hour %d", ErrInvalidTime, t.Hour)
	case t.Minute < 0 || t.Minute > 59:
		return fmt.Errorf("%w: minute %d", ErrInvalidTime, t.Minute)
	case t.Second < 0 || t.Second > 59:
		return fmt.Errorf("%w: second %d", ErrInvalidTime, t.Second)
	}
	return nil
}

// Digital formats the time as zero-padded HH:mm:ss on a 24-hour clock.
func (t TimeOfDay) Digital() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// String implements fmt.Stringer.
func (t TimeOfDay) String() string {
	return t.Digital()
}

// ParseTimeOfDay parses "HH:mm:ss" or "HH:mm" (seconds default to zero).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: cannot parse %q (want HH:mm:ss)", ErrInvalidTime, s)
}
