package pigface

import "math"

// ClampRadial returns the displacement from center toward target, scaled
// down to length maxMove when it is longer. A displacement that already fits
// is returned unchanged, and target == center yields zero.
func ClampRadial(center, target Vec2, maxMove float64) Vec2 {
	d := target.Sub(center)
	dist := math.Sqrt(d.X*d.X + d.Y*d.Y)
	if dist > maxMove {
		return d.Scale(maxMove / dist)
	}
	return d
}

// ClampDirection clamps each direction component to [-1, 1] and scales it by
// maxMove. Both eyes receive the same result, so the bound is per axis rather
// than radial.
func ClampDirection(dir DirectionVector, maxMove float64) Vec2 {
	return Vec2{clampUnit(dir.X) * maxMove, clampUnit(dir.Y) * maxMove}
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// DirectionFromLandmark turns a normalized landmark (0..1 image space, 0.5 at
// the center) into a gaze direction. gain scales the offset from the image
// center; mirror flips X for selfie-style cameras.
func DirectionFromLandmark(p Vec2, gain float64, mirror bool) DirectionVector {
	dx := (p.X - 0.5) * gain
	if mirror {
		dx = -dx
	}
	dy := (p.Y - 0.5) * gain
	return DirectionVector{clampUnit(dx), clampUnit(dy)}
}
