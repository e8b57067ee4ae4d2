package animation

// Easing curves transform linear animation progress into natural-feeling
// motion. Each curve maps t in [0, 1] to a transformed value. Set an
// [AnimationController]'s Curve field to apply easing.

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}
