package pigface

import "time"

// EventType identifies a kind of engine input.
type EventType uint8

const (
	EventPointerMove       EventType = iota // mouse moved; Point is local
	EventPointerRelease                     // mouse left the stage or button released
	EventTouchStart                         // first contact; Point is local
	EventTouchMove                          // contact moved; Point is local
	EventTouchEnd                           // contact lifted
	EventContinuousStart                    // face source switched on
	EventContinuousStop                     // face source switched off
	EventFaceFrame                          // a new face frame; Frame is set
	EventAnimationTick                      // a requested animation frame fired
	EventActivate                           // snout clicked / tapped
)

// Event is one input to Reduce.
type Event struct {
	Type  EventType
	Point Vec2
	Frame FaceFrame
}

// EffectType identifies a side effect produced by Reduce.
type EffectType uint8

const (
	EffectCancelTick  EffectType = iota // cancel the outstanding animation frame
	EffectRequestTick                   // request the next animation frame
	EffectMoveEye                       // write Offset for Eye
	EffectPlaySound                     // play the pig sound for Cause
)

// SoundCause says why a sound effect was produced.
type SoundCause uint8

const (
	SoundActivate SoundCause = iota // snout interaction
	SoundBlink                      // sustained blink gesture
)

// Effect is one side effect the engine executes after a transition.
type Effect struct {
	Type   EffectType
	Eye    EyeID
	Offset Vec2
	Cause  SoundCause
}

// State is everything the arbitrator needs between events.
type State struct {
	Offsets    [EyeCount]Vec2
	Driver     Driver
	Return     ReturnSession
	Continuous bool
	Gaze       DirectionSmoother
	Blink      BlinkDetector
}

// NewState returns the idle state for cfg.
func NewState(cfg Config) State {
	return State{
		Gaze:  NewDirectionSmoother(cfg.SmoothingFactor),
		Blink: NewBlinkDetector(cfg.BlinkThreshold, cfg.BlinkHold),
	}
}

// Reduce is the input arbitrator: a pure transition from st under ev at time
// now. The returned effects are ordered; any EffectCancelTick precedes the
// offset writes it protects.
func Reduce(cfg Config, st State, ev Event, now time.Duration) (State, []Effect) {
	var fx []Effect

	switch ev.Type {
	case EventPointerMove, EventTouchStart, EventTouchMove:
		st, fx = cancelReturn(st, fx)
		st.Driver = DriverPointer
		if ev.Type != EventPointerMove {
			st.Driver = DriverTouch
		}
		for _, eye := range cfg.Eyes() {
			st.Offsets[eye.ID] = ClampRadial(eye.Rest, ev.Point, eye.MaxMove)
		}
		fx = appendMoves(fx, st.Offsets)

	case EventPointerRelease, EventTouchEnd:
		st, fx = startReturn(cfg, st, fx, now)

	case EventContinuousStart:
		st.Continuous = true
		st.Gaze = NewDirectionSmoother(cfg.SmoothingFactor)
		st.Blink = NewBlinkDetector(cfg.BlinkThreshold, cfg.BlinkHold)

	case EventContinuousStop:
		if !st.Continuous {
			break
		}
		st.Continuous = false
		st.Blink.Reset()
		st, fx = startReturn(cfg, st, fx, now)

	case EventFaceFrame:
		if !st.Continuous || !ev.Frame.Detected {
			break
		}
		st, fx = cancelReturn(st, fx)
		st.Driver = DriverContinuous
		target := DirectionFromLandmark(ev.Frame.Landmark, cfg.DirectionGain, cfg.MirrorX)
		dir := st.Gaze.Update(target)
		offset := ClampDirection(dir, cfg.MaxMove)
		st.Offsets = [EyeCount]Vec2{offset, offset}
		fx = appendMoves(fx, st.Offsets)

		if ev.Frame.HasBlink && st.Blink.Update(ev.Frame.BlinkLeft, ev.Frame.BlinkRight, now) {
			fx = append(fx, Effect{Type: EffectPlaySound, Cause: SoundBlink})
		}

	case EventAnimationTick:
		if !st.Return.Active {
			break
		}
		offsets, fraction := st.Return.Sample(now)
		st.Offsets = offsets
		fx = appendMoves(fx, offsets)
		if fraction < 1 {
			fx = append(fx, Effect{Type: EffectRequestTick})
		} else {
			st.Return = ReturnSession{}
			st.Driver = DriverIdle
		}

	case EventActivate:
		fx = append(fx, Effect{Type: EffectPlaySound, Cause: SoundActivate})
	}

	return st, fx
}

func cancelReturn(st State, fx []Effect) (State, []Effect) {
	if st.Return.Active {
		st.Return = ReturnSession{}
		fx = append(fx, Effect{Type: EffectCancelTick})
	}
	return st, fx
}

func startReturn(cfg Config, st State, fx []Effect, now time.Duration) (State, []Effect) {
	st, fx = cancelReturn(st, fx)
	st.Return = StartReturn(now, st.Offsets, cfg.ReturnDuration, cfg.Easing)
	st.Driver = DriverReturn
	return st, append(fx, Effect{Type: EffectRequestTick})
}

func appendMoves(fx []Effect, offsets [EyeCount]Vec2) []Effect {
	for i, o := range offsets {
		fx = append(fx, Effect{Type: EffectMoveEye, Eye: EyeID(i), Offset: o})
	}
	return fx
}
