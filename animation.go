package pigface

import (
	"time"

	"github.com/tanema/gween/ease"
)

// EaseOutElastic is the default return curve. It overshoots the rest
// position and settles:
//
//	ease(0) = 0, ease(1) = 1, otherwise 2^(-10x) * sin((10x - 0.75) * 2π/3) + 1
//
// gween's OutElastic with begin 0, change 1 and duration 1 is exactly this
// curve.
func EaseOutElastic(x float64) float64 {
	return easeWith(ease.OutElastic, x)
}

// easeWith evaluates a gween tween function on the unit interval.
func easeWith(fn ease.TweenFunc, x float64) float64 {
	switch x {
	case 0:
		return 0
	case 1:
		return 1
	}
	return float64(fn(float32(x), 0, 1, 1))
}

// ReturnSession animates both pupils from the offsets captured at Start back
// to rest. Progress follows the easing curve, so offsets may pass through
// zero and come back before settling; only the endpoints are exact.
//
// There is no global animation manager: the owner samples the session each
// frame and drops it once Sample reports fraction 1.
type ReturnSession struct {
	Active   bool
	Start    time.Duration
	From     [EyeCount]Vec2
	Duration time.Duration
	Easing   ease.TweenFunc
}

// StartReturn begins a session at now from the given offsets.
func StartReturn(now time.Duration, from [EyeCount]Vec2, duration time.Duration, fn ease.TweenFunc) ReturnSession {
	if fn == nil {
		fn = ease.OutElastic
	}
	return ReturnSession{
		Active:   true,
		Start:    now,
		From:     from,
		Duration: duration,
		Easing:   fn,
	}
}

// Fraction returns min(1, elapsed/duration). Time before Start counts as 0.
func (r ReturnSession) Fraction(now time.Duration) float64 {
	if r.Duration <= 0 {
		return 1
	}
	f := float64(now-r.Start) / float64(r.Duration)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Sample returns the per-eye offsets at now and the elapsed fraction.
func (r ReturnSession) Sample(now time.Duration) (offsets [EyeCount]Vec2, fraction float64) {
	fraction = r.Fraction(now)
	progress := easeWith(r.Easing, fraction)
	for i, from := range r.From {
		// Target is the rest center, i.e. a zero offset.
		offsets[i] = Vec2{
			X: from.X + (0-from.X)*progress,
			Y: from.Y + (0-from.Y)*progress,
		}
	}
	return offsets, fraction
}
