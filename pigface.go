package pigface

import (
	"math"
	"time"
)

// Vec2 is a 2D vector used for rest centers, raw input positions and pupil
// offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// DirectionVector is a normalized gaze direction. Each component lies in
// [-1, 1]; it carries no absolute target position.
type DirectionVector struct {
	X, Y float64
}

// EyeID identifies one of the two eyes.
type EyeID uint8

const (
	EyeLeft  EyeID = iota // viewer's left eye
	EyeRight              // viewer's right eye

	EyeCount = 2
)

// String returns "left" or "right".
func (e EyeID) String() string {
	switch e {
	case EyeLeft:
		return "left"
	case EyeRight:
		return "right"
	default:
		return "unknown"
	}
}

// EyeConfig is the immutable per-eye geometry: its rest center and the
// maximum pupil displacement shared by both eyes.
type EyeConfig struct {
	ID      EyeID
	Rest    Vec2
	MaxMove float64
}

// Driver names whatever currently writes the pupil offsets.
type Driver uint8

const (
	DriverIdle       Driver = iota // nothing is moving the eyes
	DriverPointer                  // mouse hover / drag, radial mode
	DriverTouch                    // touch contact, radial mode
	DriverContinuous               // face tracker, direction mode
	DriverReturn                   // return-to-center animation
)

func (d Driver) String() string {
	switch d {
	case DriverIdle:
		return "idle"
	case DriverPointer:
		return "pointer"
	case DriverTouch:
		return "touch"
	case DriverContinuous:
		return "continuous"
	case DriverReturn:
		return "return"
	default:
		return "unknown"
	}
}

// FaceFrame is one processed frame from a continuous input source. Landmark
// is normalized to [0, 1] in image space with (0.5, 0.5) at the image center.
type FaceFrame struct {
	Timestamp  time.Duration
	Detected   bool
	Landmark   Vec2
	HasBlink   bool
	BlinkLeft  float64
	BlinkRight float64
}

// Renderer draws the pupils. SetEyeOffset receives the displacement from the
// eye's rest center; the renderer adds the rest center itself.
type Renderer interface {
	SetEyeOffset(eye EyeID, x, y float64)
}

// AudioSink plays the pig sound.
type AudioSink interface {
	Play() error
}

// FaceSource exposes the most recent frame produced by a face tracker.
// The bool is false until the first frame arrives.
type FaceSource interface {
	Latest() (FaceFrame, bool)
}

// EffectStore is the optional bridge that receives every effect the engine
// executes, e.g. to forward it into an ECS world.
type EffectStore interface {
	EmitEffect(effect Effect)
}
