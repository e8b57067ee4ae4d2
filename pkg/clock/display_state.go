package clock

import "github.com/go-drift/clockface/pkg/theme"

// DisplayState is everything needed to draw one frame of the clock.
// It is derived per frame and has no identity or history.
type DisplayState struct {
	Time    TimeOfDay
	Digital string

	HourAngle   float64
	MinuteAngle float64
	// SecondAngle is the continuously animated second hand angle in [0, 360).
	SecondAngle float64

	Palette theme.ClockPalette
}

// DeriveDisplayState computes the display state for a time of day, a sweep
// phase and a palette. phase is the sweep animation's progress through its
// current cycle (0 at cycle start, approaching 1 at cycle end).
//
// The function is pure: equal inputs always give equal results.
func DeriveDisplayState(t TimeOfDay, phase float64, palette theme.ClockPalette) DisplayState {
	return DisplayState{
		Time:        t,
		Digital:     t.Digital(),
		HourAngle:   HourAngle(t.Hour, t.Minute),
		MinuteAngle: MinuteAngle(t.Minute),
		SecondAngle: SweepAngle(phase),
		Palette:     palette,
	}
}

// SteppedPhase returns the phase that places the second hand on the tick of
// the given second, for displays that step instead of sweeping.
func SteppedPhase(second int) float64 {
	return SecondAngle(second) / fullTurn
}
