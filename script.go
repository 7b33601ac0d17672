package pigface

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrEmptyScript is returned for a script without steps.
var ErrEmptyScript = errors.New("pigface: script has no steps")

const defaultFrameStep = time.Second / 60

// ScriptStep is a single action in a replay script. Coordinates are screen
// coordinates for pointer actions and normalized image coordinates for face
// actions.
type ScriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Left   float64 `json:"left,omitempty"`
	Right  float64 `json:"right,omitempty"`
	Lost   bool    `json:"lost,omitempty"`
	Frames int     `json:"frames,omitempty"`
	MS     float64 `json:"ms,omitempty"`
}

// Script is the top-level JSON structure of a replay script.
type Script struct {
	// FrameMS is the simulated frame length; 0 means 60 fps.
	FrameMS float64      `json:"frameMs,omitempty"`
	Steps   []ScriptStep `json:"steps"`
}

// LoadScript parses a JSON replay script.
func LoadScript(data []byte) (*Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i, st := range s.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &s, nil
}

func knownAction(a string) bool {
	switch a {
	case "move", "release", "touchstart", "touchmove", "touchend",
		"startface", "stopface", "face", "activate", "wait":
		return true
	}
	return false
}

// TraceFrame is the engine state after one simulated frame.
type TraceFrame struct {
	Time    time.Duration
	Driver  Driver
	Offsets [EyeCount]Vec2
}

// Player replays scripts against its own engine on a manual clock, one
// simulated frame per step. It is the engine's deterministic test harness.
type Player struct {
	engine *Engine
	clock  *ManualClock
	frames *FrameQueue
	face   scriptedFace
}

// scriptedFace is the FaceSource fed by "face" steps.
type scriptedFace struct {
	frame FaceFrame
	ok    bool
}

func (f *scriptedFace) Latest() (FaceFrame, bool) {
	return f.frame, f.ok
}

// NewPlayer creates a player whose engine renders to r.
func NewPlayer(cfg Config, r Renderer, opts ...Option) (*Player, error) {
	p := &Player{clock: &ManualClock{}, frames: &FrameQueue{}}
	e, err := NewEngine(cfg, r, p.clock, p.frames, opts...)
	if err != nil {
		return nil, err
	}
	p.engine = e
	return p, nil
}

// Engine returns the engine driven by the player.
func (p *Player) Engine() *Engine {
	return p.engine
}

// Clock returns the player's manual clock.
func (p *Player) Clock() *ManualClock {
	return p.clock
}

// Frames returns the player's frame queue.
func (p *Player) Frames() *FrameQueue {
	return p.frames
}

// Run executes every step of s and returns one TraceFrame per simulated
// frame.
func (p *Player) Run(s *Script) []TraceFrame {
	step := defaultFrameStep
	if s.FrameMS > 0 {
		step = time.Duration(s.FrameMS * float64(time.Millisecond))
	}

	var trace []TraceFrame
	for _, st := range s.Steps {
		frames := p.exec(st, step)
		for i := 0; i < frames; i++ {
			trace = append(trace, p.Frame(step))
		}
	}
	return trace
}

// Frame advances the clock by step, runs one frame and records the result.
func (p *Player) Frame(step time.Duration) TraceFrame {
	p.clock.Advance(step)
	p.frames.RunFrame(p.clock.Now())
	return TraceFrame{
		Time:    p.clock.Now(),
		Driver:  p.engine.Driver(),
		Offsets: p.engine.Offsets(),
	}
}

// exec performs one step and returns how many frames to simulate after it.
func (p *Player) exec(st ScriptStep, step time.Duration) int {
	e := p.engine
	switch st.Action {
	case "move":
		e.PointerMove(st.X, st.Y)
	case "release":
		e.PointerRelease()
	case "touchstart":
		e.TouchStart(st.X, st.Y)
	case "touchmove":
		e.TouchMove(st.X, st.Y)
	case "touchend":
		e.TouchEnd()
	case "startface":
		p.face = scriptedFace{}
		e.StartContinuous(&p.face)
	case "stopface":
		e.StopContinuous()
	case "face":
		p.face.ok = true
		p.face.frame = FaceFrame{
			// The frame becomes visible on the next simulated frame.
			Timestamp:  p.clock.Now() + step,
			Detected:   !st.Lost,
			Landmark:   Vec2{st.X, st.Y},
			HasBlink:   true,
			BlinkLeft:  st.Left,
			BlinkRight: st.Right,
		}
	case "activate":
		e.Activate()
	case "wait":
		if st.MS > 0 {
			n := int(time.Duration(st.MS*float64(time.Millisecond)) / step)
			if n < 1 {
				n = 1
			}
			return n
		}
		if st.Frames > 0 {
			return st.Frames
		}
	}
	return 1
}
