// Package termhost runs the pig in a terminal with tcell. Each cell is
// treated as one unit wide and two units tall so the pig keeps its shape.
package termhost

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/phanxgames/pigface"
)

const frameInterval = 16 * time.Millisecond

var partStyles = map[pigface.Part]tcell.Style{
	pigface.PartEar:      tcell.StyleDefault.Background(tcell.NewRGBColor(255, 160, 180)),
	pigface.PartHead:     tcell.StyleDefault.Background(tcell.NewRGBColor(255, 182, 193)),
	pigface.PartSnout:    tcell.StyleDefault.Background(tcell.NewRGBColor(255, 140, 165)),
	pigface.PartNostril:  tcell.StyleDefault.Background(tcell.NewRGBColor(150, 60, 80)),
	pigface.PartEyeWhite: tcell.StyleDefault.Background(tcell.ColorWhite),
	pigface.PartPupil:    tcell.StyleDefault.Background(tcell.ColorBlack),
}

// Options configures a Host.
type Options struct {
	Audio   pigface.AudioSink
	Face    pigface.FaceSource
	Reloads <-chan pigface.Config
	Logger  zerolog.Logger
}

// Host owns the screen and the engine. Input events are read on a helper
// goroutine but handled on the Run loop, the same goroutine that drives
// the frame queue.
type Host struct {
	screen tcell.Screen
	opts   Options
	log    zerolog.Logger

	clock  pigface.Clock
	frames *pigface.FrameQueue
	engine *pigface.Engine

	layout pigface.Layout
	view   *pigface.View
	mapper *pigface.ViewMapper
	pupils pupils
}

type pupils struct {
	offsets [pigface.EyeCount]pigface.Vec2
}

func (p *pupils) SetEyeOffset(eye pigface.EyeID, x, y float64) {
	p.offsets[eye] = pigface.Vec2{X: x, Y: y}
}

// New creates a host on an initialized screen.
func New(screen tcell.Screen, cfg pigface.Config, opts Options) (*Host, error) {
	return newHost(screen, cfg, opts, pigface.NewSystemClock())
}

func newHost(screen tcell.Screen, cfg pigface.Config, opts Options, clock pigface.Clock) (*Host, error) {
	h := &Host{
		screen: screen,
		opts:   opts,
		log:    opts.Logger.With().Str("component", "term").Logger(),
		clock:  clock,
		frames: &pigface.FrameQueue{},
		layout: pigface.DefaultLayout(cfg),
	}
	h.view = pigface.NewView(pigface.Rect{})
	h.mapper = pigface.NewViewMapper(h.view)
	h.resize()

	engineOpts := []pigface.Option{pigface.WithLogger(opts.Logger), pigface.WithMapper(h.mapper)}
	if opts.Audio != nil {
		engineOpts = append(engineOpts, pigface.WithAudio(opts.Audio))
	}
	e, err := pigface.NewEngine(cfg, &h.pupils, clock, h.frames, engineOpts...)
	if err != nil {
		return nil, err
	}
	h.engine = e
	return h, nil
}

// Engine returns the host's engine.
func (h *Host) Engine() *pigface.Engine {
	return h.engine
}

// Run handles input and redraws until ctx is cancelled or the user quits.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.EnableFocus()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	h.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !h.handleEvent(ev) {
				return nil
			}
		case cfg := <-h.opts.Reloads:
			h.reload(cfg)
		case <-ticker.C:
			h.frames.RunFrame(h.clock.Now())
			h.draw()
		}
	}
}

func (h *Host) reload(cfg pigface.Config) {
	if err := h.engine.SetConfig(cfg); err != nil {
		h.log.Warn().Err(err).Msg("config reload rejected")
		return
	}
	h.layout = pigface.DefaultLayout(cfg)
	h.resize()
}

// cellToScreen returns the screen point at the center of a cell.
func cellToScreen(col, row int) (float64, float64) {
	return float64(col) + 0.5, float64(row)*2 + 1
}

func (h *Host) resize() {
	cols, rows := h.screen.Size()
	h.view.SetViewport(pigface.Rect{Width: float64(cols), Height: float64(rows * 2)})
	h.view.Fit(h.layout.Bounds)
}

// handleEvent applies one terminal event. It returns false to quit.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		x, y := cellToScreen(ev.Position())
		h.engine.PointerMove(x, y)
		if ev.Buttons()&tcell.Button1 != 0 && pigface.HitTest(h.mapper, h.layout.Snout, x, y) {
			h.engine.Activate()
		}
	case *tcell.EventFocus:
		if !ev.Focused {
			h.engine.PointerRelease()
		}
	case *tcell.EventResize:
		h.resize()
		h.screen.Sync()
	}
	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	switch ev.Rune() {
	case 'q':
		return false
	case 'o', ' ':
		h.engine.Activate()
	case 'r':
		h.engine.PointerRelease()
	case 'c':
		h.toggleFace()
	}
	return true
}

func (h *Host) toggleFace() {
	if h.engine.Continuous() {
		h.engine.StopContinuous()
		return
	}
	if h.opts.Face == nil {
		h.log.Warn().Msg("no face source configured")
		return
	}
	h.engine.StartContinuous(h.opts.Face)
}

// draw rasterizes the pig by hit-testing the center of every cell.
func (h *Host) draw() {
	h.screen.Clear()
	cols, rows := h.screen.Size()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			p, err := h.mapper.ScreenToLocal(cellToScreen(col, row))
			if err != nil {
				continue
			}
			if style, ok := partStyles[h.layout.PartAt(p, h.pupils.offsets)]; ok {
				h.screen.SetContent(col, row, ' ', nil, style)
			}
		}
	}
	h.screen.Show()
}
