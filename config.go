package pigface

import (
	"errors"
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
)

// ErrInvalidConfig wraps every Config validation failure.
var ErrInvalidConfig = errors.New("pigface: invalid config")

// Config holds the engine tuning. All values are in the character's local
// units (the original SVG space) unless noted.
type Config struct {
	LeftRest  Vec2
	RightRest Vec2
	// MaxMove is the largest pupil displacement from its rest center.
	MaxMove float64

	// SmoothingFactor is the per-frame lerp factor for face input, in (0, 1].
	SmoothingFactor float64
	// DirectionGain scales a landmark's distance from the image center into
	// a direction; MirrorX flips it horizontally.
	DirectionGain float64
	MirrorX       bool

	ReturnDuration time.Duration
	Easing         ease.TweenFunc

	BlinkThreshold float64
	BlinkHold      time.Duration
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		LeftRest:        Vec2{284, 414},
		RightRest:       Vec2{432, 405},
		MaxMove:         15,
		SmoothingFactor: 0.1,
		DirectionGain:   4,
		MirrorX:         true,
		ReturnDuration:  time.Second,
		Easing:          ease.OutElastic,
		BlinkThreshold:  0.5,
		BlinkHold:       time.Second,
	}
}

// Eyes returns the per-eye geometry.
func (c Config) Eyes() [EyeCount]EyeConfig {
	return [EyeCount]EyeConfig{
		{ID: EyeLeft, Rest: c.LeftRest, MaxMove: c.MaxMove},
		{ID: EyeRight, Rest: c.RightRest, MaxMove: c.MaxMove},
	}
}

// Rest returns the rest center of eye.
func (c Config) Rest(eye EyeID) Vec2 {
	if eye == EyeRight {
		return c.RightRest
	}
	return c.LeftRest
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.MaxMove <= 0:
		return fmt.Errorf("%w: max move %v must be positive", ErrInvalidConfig, c.MaxMove)
	case c.SmoothingFactor <= 0 || c.SmoothingFactor > 1:
		return fmt.Errorf("%w: smoothing factor %v outside (0, 1]", ErrInvalidConfig, c.SmoothingFactor)
	case c.DirectionGain <= 0:
		return fmt.Errorf("%w: direction gain %v must be positive", ErrInvalidConfig, c.DirectionGain)
	case c.ReturnDuration <= 0:
		return fmt.Errorf("%w: return duration %v must be positive", ErrInvalidConfig, c.ReturnDuration)
	case c.Easing == nil:
		return fmt.Errorf("%w: easing is nil", ErrInvalidConfig)
	case c.BlinkThreshold < 0 || c.BlinkThreshold > 1:
		return fmt.Errorf("%w: blink threshold %v outside [0, 1]", ErrInvalidConfig, c.BlinkThreshold)
	case c.BlinkHold < 0:
		return fmt.Errorf("%w: blink hold %v is negative", ErrInvalidConfig, c.BlinkHold)
	}
	return nil
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"outQuad":      ease.OutQuad,
	"outCubic":     ease.OutCubic,
	"outSine":      ease.OutSine,
	"outBack":      ease.OutBack,
	"outBounce":    ease.OutBounce,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
}

// EasingByName looks up a return curve by its camel-case gween name,
// e.g. "outElastic" or "outBounce".
func EasingByName(name string) (ease.TweenFunc, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown easing %q", ErrInvalidConfig, name)
	}
	return fn, nil
}
