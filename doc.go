// Package pigface is the gaze engine behind an animated pig whose eyes follow
// the mouse, a finger, or the viewer's face, and whose snout oinks.
//
// The engine is host-agnostic. A host (an Ebitengine window, a terminal, a
// replay script) feeds it screen-space pointer events and face frames, drives
// its [Scheduler] once per frame, and draws whatever the [Renderer] is told.
//
// # Quick start
//
//	frames := &pigface.FrameQueue{}
//	clock := pigface.NewSystemClock()
//	engine, err := pigface.NewEngine(pigface.DefaultConfig(), renderer, clock, frames,
//		pigface.WithMapper(mapper), pigface.WithAudio(sink))
//	if err != nil {
//		return err
//	}
//
//	// every tick, on the same goroutine:
//	engine.PointerMove(mx, my)
//	frames.RunFrame(clock.Now())
//
// # Gaze modes
//
// Pointer and touch input is radial: each eye points at the same local point
// and its displacement is clamped to [Config.MaxMove]. Face input is a
// direction: both eyes move in parallel by the smoothed direction times
// MaxMove, clamped per axis.
//
// # Arbitration
//
// [Reduce] is a pure transition function from (state, event) to (state,
// effects). [Engine] owns the state and executes the effects. Live input
// always cancels a running return animation before it writes offsets, and
// ending an interaction starts the elastic return (via [gween] easing).
//
// # Blink gesture
//
// While face input runs, holding a blink for longer than [Config.BlinkHold]
// plays the sound once per blink.
//
// [gween]: https://github.com/tanema/gween
package pigface
