package clock

import (
	"math"

	"github.com/go-drift/clockface/pkg/animation"
)

const (
	degreesPerHour       = 30.0 // 360 / 12
	degreesPerHourMinute = 0.5  // 30 / 60
	degreesPerMinute     = 6.0  // 360 / 60
	degreesPerSecond     = 6.0
	fullTurn             = 360.0
)

// sweepDegrees maps one sweep cycle onto a full turn of the second hand.
var sweepDegrees = animation.TweenFloat64(0, fullTurn)

// HourAngle returns the hour hand angle: (hour mod 12)*30 + minute*0.5.
// For valid input the result lies in [0, 360).
func HourAngle(hour, minute int) float64 {
	return float64(hour%12)*degreesPerHour + float64(minute)*degreesPerHourMinute
}

// MinuteAngle returns the minute hand angle: minute*6, in [0, 354].
// Seconds do not move the minute hand.
func MinuteAngle(minute int) float64 {
	return float64(minute) * degreesPerMinute
}

// SecondAngle returns the stepped second hand angle: second*6.
func SecondAngle(second int) float64 {
	return float64(second) * degreesPerSecond
}

// SweepAngle maps a sweep phase to the continuous second hand angle. The
// phase wraps, so any real input yields a value in [0, 360).
func SweepAngle(phase float64) float64 {
	angle := sweepDegrees.Evaluate(phase - math.Floor(phase))
	if angle >= fullTurn {
		return 0
	}
	return angle
}
