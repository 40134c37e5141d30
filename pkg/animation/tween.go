package animation

// Offset is a 2-D displacement, used for element start positions.
type Offset struct {
	X float64
	Y float64
}

// Scale returns the offset multiplied by factor.
func (o Offset) Scale(factor float64) Offset {
	return Offset{X: o.X * factor, Y: o.Y * factor}
}

// IsZero reports whether the offset is the zero displacement.
func (o Offset) IsZero() bool {
	return o.X == 0 && o.Y == 0
}

// Tween interpolates between Begin and End values based on run progress.
//
// Tween maps the 0-1 range of a [Controller] to any value range or type.
// Use [TweenFloat64] or [TweenOffset] for common types, or create custom
// tweens with a Lerp function.
type Tween[T any] struct {
	// Begin is the starting value (when t = 0).
	Begin T
	// End is the ending value (when t = 1).
	End T
	// Lerp linearly interpolates between Begin and End. Receives the begin
	// value, end value, and progress t in [0, 1].
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t (0.0 to 1.0).
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// Transform returns the interpolated value using the controller's current value.
func (tw *Tween[T]) Transform(controller *Controller) T {
	return tw.Evaluate(controller.Value())
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpOffset linearly interpolates between two Offset values.
func LerpOffset(a, b Offset, t float64) Offset {
	return Offset{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
	}
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{
		Begin: begin,
		End:   end,
		Lerp:  LerpFloat64,
	}
}

// TweenOffset creates a tween for Offset values.
func TweenOffset(begin, end Offset) *Tween[Offset] {
	return &Tween[Offset]{
		Begin: begin,
		End:   end,
		Lerp:  LerpOffset,
	}
}
