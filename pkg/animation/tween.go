package animation

// Tween maps animation progress in [0, 1] onto a range of T.
type Tween[T any] struct {
	Begin T
	End   T
	// Lerp interpolates between a and b at progress t.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the value at progress t. A Tween without Lerp always
// yields End.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// LerpFloat64 linearly interpolates between a and b.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// TweenFloat64 returns a linear float64 tween from begin to end.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}
