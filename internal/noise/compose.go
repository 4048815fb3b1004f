package noise

import "overworld/internal/mathx"

// Blend interpolates from A to B by Control, with Control taken from
// [-1, 1] to [0, 1].
type Blend struct {
	A, B    Field
	Control Field
}

func (b Blend) Sample(x, y float64) float64 {
	t := Normalize(b.Control.Sample(x, y))
	return mathx.Lerp(b.A.Sample(x, y), b.B.Sample(x, y), t)
}

// Warp samples Base at coordinates displaced by X and Y scaled by
// Amplitude. When Y is nil the X displacement is applied to both axes.
type Warp struct {
	Base      Field
	X, Y      Field
	Amplitude float64
}

// Offset returns the displacement applied at (x, y).
func (w Warp) Offset(x, y float64) (dx, dy float64) {
	if w.X == nil || w.Amplitude == 0 {
		return 0, 0
	}
	dx = w.X.Sample(x, y) * w.Amplitude
	dy = dx
	if w.Y != nil {
		dy = w.Y.Sample(x, y) * w.Amplitude
	}
	return dx, dy
}

func (w Warp) Sample(x, y float64) float64 {
	dx, dy := w.Offset(x, y)
	return w.Base.Sample(x+dx, y+dy)
}

// Scaled samples Field at Scale times the input coordinates.
type Scaled struct {
	Field Field
	Scale float64
}

func (s Scaled) Sample(x, y float64) float64 {
	return s.Field.Sample(x*s.Scale, y*s.Scale)
}
