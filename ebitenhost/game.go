// Package ebitenhost runs the pig in an Ebitengine window.
package ebitenhost

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/pigface"
	"github.com/phanxgames/pigface/ecs"
)

// Options configures a Game.
type Options struct {
	Title         string
	Width, Height int
	Tilt          float64 // degrees, clockwise
	Audio         pigface.AudioSink
	Face          pigface.FaceSource // toggled with C; nil disables face mode
	Reloads       <-chan pigface.Config
	Logger        zerolog.Logger
}

// Game implements ebiten.Game.
type Game struct {
	log    zerolog.Logger
	opts   Options
	clock  *pigface.SystemClock
	frames *pigface.FrameQueue
	engine *pigface.Engine

	layout  pigface.Layout
	view    *pigface.View
	mapper  *pigface.ViewMapper
	pupils  pupils
	input   tracker
	touches []ebiten.TouchID

	world   donburi.World
	tally   *ecs.Tracker
	overlay bool

	width, height int
}

// pupils is the engine's Renderer: it keeps the latest offsets for Draw.
type pupils struct {
	offsets [pigface.EyeCount]pigface.Vec2
}

func (p *pupils) SetEyeOffset(eye pigface.EyeID, x, y float64) {
	p.offsets[eye] = pigface.Vec2{X: x, Y: y}
}

// New creates the game and its engine.
func New(cfg pigface.Config, opts Options) (*Game, error) {
	g := &Game{
		log:    opts.Logger.With().Str("component", "window").Logger(),
		opts:   opts,
		clock:  pigface.NewSystemClock(),
		frames: &pigface.FrameQueue{},
		width:  opts.Width,
		height: opts.Height,
		world:  donburi.NewWorld(),
	}
	g.view = pigface.NewView(pigface.Rect{Width: float64(opts.Width), Height: float64(opts.Height)})
	g.mapper = pigface.NewViewMapper(g.view)
	g.setLayout(cfg)

	engineOpts := []pigface.Option{
		pigface.WithLogger(opts.Logger),
		pigface.WithMapper(g.mapper),
	}
	if opts.Audio != nil {
		engineOpts = append(engineOpts, pigface.WithAudio(opts.Audio))
	}
	e, err := pigface.NewEngine(cfg, &g.pupils, g.clock, g.frames, engineOpts...)
	if err != nil {
		return nil, err
	}
	g.engine = e
	g.tally = ecs.NewTracker(g.world)
	e.SetEffectStore(ecs.NewDonburiStore(g.world))
	return g, nil
}

// Engine returns the game's engine.
func (g *Game) Engine() *pigface.Engine {
	return g.engine
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

// setLayout rebuilds the geometry around cfg's rest centers and refits the
// view.
func (g *Game) setLayout(cfg pigface.Config) {
	g.layout = pigface.DefaultLayout(cfg)
	c := g.layout.Head
	body := pigface.NewTransform()
	body.X, body.Y = c.CenterX, c.CenterY
	body.PivotX, body.PivotY = c.CenterX, c.CenterY
	body.Rotation = g.opts.Tilt * math.Pi / 180
	g.mapper.Body = body
	g.view.Fit(g.layout.Bounds)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.applyReloads()

	s := readSnapshot(g.width, g.height, &g.touches)
	g.input.step(s, g.engine, g.onSnout)
	if s.activate {
		g.engine.Activate()
	}
	if s.toggleFace {
		g.toggleFace()
	}
	if s.overlay {
		g.overlay = !g.overlay
	}

	g.frames.RunFrame(g.clock.Now())
	g.tally.Process()
	return nil
}

func (g *Game) onSnout(x, y float64) bool {
	return pigface.HitTest(g.mapper, g.layout.Snout, x, y)
}

func (g *Game) toggleFace() {
	if g.engine.Continuous() {
		g.engine.StopContinuous()
		return
	}
	if g.opts.Face == nil {
		g.log.Warn().Msg("no face source configured")
		return
	}
	g.engine.StartContinuous(g.opts.Face)
}

func (g *Game) applyReloads() {
	if g.opts.Reloads == nil {
		return
	}
	for {
		select {
		case cfg := <-g.opts.Reloads:
			if err := g.engine.SetConfig(cfg); err != nil {
				g.log.Warn().Err(err).Msg("config reload rejected")
				continue
			}
			g.setLayout(cfg)
		default:
			return
		}
	}
}

// Layout implements ebiten.Game. The pig is refit to any window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.view.SetViewport(pigface.Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)})
		g.view.Fit(g.layout.Bounds)
	}
	return outsideWidth, outsideHeight
}
