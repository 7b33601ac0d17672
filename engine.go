package pigface

import (
	"time"

	"github.com/rs/zerolog"
)

// Engine owns the gaze state and is the single dispatch point for every
// input kind. All methods must be called from one goroutine, the same one
// that drives the Scheduler.
type Engine struct {
	cfg    Config
	state  State
	log    zerolog.Logger
	clock  Clock
	sched  Scheduler
	mapper Mapper

	renderer Renderer
	audio    AudioSink
	store    EffectStore

	tick FrameHandle

	source    FaceSource
	poll      FrameHandle
	haveFrame bool
	lastFrame time.Duration
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l.With().Str("component", "engine").Logger() }
}

// WithMapper sets the screen-to-local mapper. The default is IdentityMapper.
func WithMapper(m Mapper) Option {
	return func(e *Engine) { e.mapper = m }
}

// WithAudio sets the sound sink. Without one, sound effects are dropped.
func WithAudio(a AudioSink) Option {
	return func(e *Engine) { e.audio = a }
}

// NewEngine creates an idle engine. The renderer receives the initial zero
// offsets immediately.
func NewEngine(cfg Config, renderer Renderer, clock Clock, sched Scheduler, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:      cfg,
		state:    NewState(cfg),
		log:      zerolog.Nop(),
		clock:    clock,
		sched:    sched,
		mapper:   IdentityMapper{},
		renderer: renderer,
	}
	for _, opt := range opts {
		opt(e)
	}
	for i := range e.state.Offsets {
		e.renderer.SetEyeOffset(EyeID(i), 0, 0)
	}
	return e, nil
}

// SetEffectStore sets the optional effect bridge.
func (e *Engine) SetEffectStore(store EffectStore) {
	e.store = store
}

// SetMapper replaces the screen-to-local mapper, e.g. after a resize.
func (e *Engine) SetMapper(m Mapper) {
	e.mapper = m
}

// Config returns the active tuning.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetConfig swaps the tuning. A running return animation keeps the duration
// and easing it started with; smoothing and blink tuning apply immediately.
func (e *Engine) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg
	e.state.Gaze.Factor = cfg.SmoothingFactor
	e.state.Blink.Threshold = cfg.BlinkThreshold
	e.state.Blink.Hold = cfg.BlinkHold
	e.log.Info().Float64("maxMove", cfg.MaxMove).Float64("smoothing", cfg.SmoothingFactor).Msg("config applied")
	return nil
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// Offsets returns the authoritative pupil offsets.
func (e *Engine) Offsets() [EyeCount]Vec2 {
	return e.state.Offsets
}

// Driver reports what currently moves the eyes.
func (e *Engine) Driver() Driver {
	return e.state.Driver
}

// --- Pointer and touch entry points ---

// PointerMove handles a mouse position in screen coordinates.
func (e *Engine) PointerMove(x, y float64) {
	e.dispatchScreen(EventPointerMove, x, y)
}

// PointerRelease handles the mouse leaving the stage or a button release.
func (e *Engine) PointerRelease() {
	e.Dispatch(Event{Type: EventPointerRelease})
}

// TouchStart handles the first contact of a touch.
func (e *Engine) TouchStart(x, y float64) {
	e.dispatchScreen(EventTouchStart, x, y)
}

// TouchMove handles a moving touch contact.
func (e *Engine) TouchMove(x, y float64) {
	e.dispatchScreen(EventTouchMove, x, y)
}

// TouchEnd handles the touch being lifted.
func (e *Engine) TouchEnd() {
	e.Dispatch(Event{Type: EventTouchEnd})
}

// Activate handles a click or tap on the snout.
func (e *Engine) Activate() {
	e.Dispatch(Event{Type: EventActivate})
}

func (e *Engine) dispatchScreen(t EventType, x, y float64) {
	p, err := e.mapper.ScreenToLocal(x, y)
	if err != nil {
		e.log.Debug().Err(err).Float64("x", x).Float64("y", y).Msg("pointer update ignored")
		return
	}
	e.Dispatch(Event{Type: t, Point: p})
}

// --- Continuous input ---

// StartContinuous begins polling src once per frame. A running source is
// replaced without a return animation in between.
func (e *Engine) StartContinuous(src FaceSource) {
	if e.poll != 0 {
		e.sched.CancelFrame(e.poll)
		e.poll = 0
	}
	e.source = src
	e.haveFrame = false
	e.Dispatch(Event{Type: EventContinuousStart})
	e.poll = e.sched.RequestFrame(e.pollSource)
	e.log.Info().Msg("continuous input started")
}

// StopContinuous stops polling and animates the eyes back to rest.
func (e *Engine) StopContinuous() {
	if e.source == nil {
		return
	}
	if e.poll != 0 {
		e.sched.CancelFrame(e.poll)
		e.poll = 0
	}
	e.source = nil
	e.Dispatch(Event{Type: EventContinuousStop})
	e.log.Info().Msg("continuous input stopped")
}

// Continuous reports whether a face source is being polled.
func (e *Engine) Continuous() bool {
	return e.source != nil
}

func (e *Engine) pollSource(time.Duration) {
	e.poll = e.sched.RequestFrame(e.pollSource)

	frame, ok := e.source.Latest()
	if !ok {
		return
	}
	// Only process frames whose source timestamp advanced.
	if e.haveFrame && frame.Timestamp <= e.lastFrame {
		return
	}
	e.haveFrame = true
	e.lastFrame = frame.Timestamp
	e.Dispatch(Event{Type: EventFaceFrame, Frame: frame})
}

func (e *Engine) onTick(time.Duration) {
	e.tick = 0
	e.Dispatch(Event{Type: EventAnimationTick})
}

// Dispatch runs ev through Reduce at the clock's current time and executes
// the resulting effects in order.
func (e *Engine) Dispatch(ev Event) {
	var fx []Effect
	e.state, fx = Reduce(e.cfg, e.state, ev, e.clock.Now())
	for _, f := range fx {
		e.apply(f)
	}
}

func (e *Engine) apply(f Effect) {
	switch f.Type {
	case EffectCancelTick:
		if e.tick != 0 {
			e.sched.CancelFrame(e.tick)
			e.tick = 0
		}
	case EffectRequestTick:
		if e.tick != 0 {
			e.sched.CancelFrame(e.tick)
		}
		e.tick = e.sched.RequestFrame(e.onTick)
	case EffectMoveEye:
		e.renderer.SetEyeOffset(f.Eye, f.Offset.X, f.Offset.Y)
	case EffectPlaySound:
		e.playSound(f.Cause)
	}
	if e.store != nil {
		e.store.EmitEffect(f)
	}
}

func (e *Engine) playSound(cause SoundCause) {
	if cause == SoundBlink {
		e.log.Info().Msg("blink held, oink")
	}
	if e.audio == nil {
		return
	}
	if err := e.audio.Play(); err != nil {
		e.log.Warn().Err(err).Msg("audio play failed")
	}
}
