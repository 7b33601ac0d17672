package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/pigface"
)

// snapshot is one frame of raw input, read from ebiten in Update.
type snapshot struct {
	cursorX, cursorY int
	inside           bool // cursor over a focused window
	clicked          bool // left button went down this frame

	touches  []touch // all active touches
	released []ebiten.TouchID

	toggleFace bool
	activate   bool
	overlay    bool
}

type touch struct {
	id   ebiten.TouchID
	x, y int
	just bool // started this frame
}

// readSnapshot polls ebiten. w and h are the layout size in pixels.
func readSnapshot(w, h int, buf *[]ebiten.TouchID) snapshot {
	var s snapshot
	s.cursorX, s.cursorY = ebiten.CursorPosition()
	s.inside = ebiten.IsFocused() &&
		s.cursorX >= 0 && s.cursorY >= 0 && s.cursorX < w && s.cursorY < h
	s.clicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	*buf = ebiten.AppendTouchIDs((*buf)[:0])
	for _, id := range *buf {
		x, y := ebiten.TouchPosition(id)
		s.touches = append(s.touches, touch{id: id, x: x, y: y, just: inpututil.TouchPressDuration(id) <= 1})
	}
	s.released = inpututil.AppendJustReleasedTouchIDs(nil)

	s.toggleFace = inpututil.IsKeyJustPressed(ebiten.KeyC)
	s.activate = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	s.overlay = inpututil.IsKeyJustPressed(ebiten.KeyD)
	return s
}

// tracker turns snapshots into engine calls. Only the primary touch (the
// first one to land while no other is down) drives the eyes; the mouse
// drives them while no touch is down.
type tracker struct {
	mouseInside bool
	lastX       int
	lastY       int

	primary    ebiten.TouchID
	hasPrimary bool
}

// target is what the tracker drives; *pigface.Engine satisfies it.
type target interface {
	PointerMove(x, y float64)
	PointerRelease()
	TouchStart(x, y float64)
	TouchMove(x, y float64)
	TouchEnd()
	Activate()
}

// snoutTest reports whether a screen point hits the snout.
type snoutTest func(x, y float64) bool

func (t *tracker) step(s snapshot, e target, onSnout snoutTest) {
	t.stepTouch(s, e, onSnout)
	if t.hasPrimary {
		return
	}
	t.stepMouse(s, e, onSnout)
}

func (t *tracker) stepTouch(s snapshot, e target, onSnout snoutTest) {
	if t.hasPrimary {
		for _, id := range s.released {
			if id == t.primary {
				t.hasPrimary = false
				e.TouchEnd()
				break
			}
		}
	}
	for _, tc := range s.touches {
		x, y := float64(tc.x), float64(tc.y)
		switch {
		case t.hasPrimary && tc.id == t.primary:
			e.TouchMove(x, y)
		case !t.hasPrimary && tc.just:
			t.primary, t.hasPrimary = tc.id, true
			e.TouchStart(x, y)
			if onSnout(x, y) {
				e.Activate()
			}
		case tc.just && onSnout(x, y):
			// Secondary taps still oink.
			e.Activate()
		}
	}
}

func (t *tracker) stepMouse(s snapshot, e target, onSnout snoutTest) {
	if !s.inside {
		if t.mouseInside {
			t.mouseInside = false
			e.PointerRelease()
		}
		return
	}
	x, y := float64(s.cursorX), float64(s.cursorY)
	if !t.mouseInside || s.cursorX != t.lastX || s.cursorY != t.lastY {
		t.mouseInside = true
		t.lastX, t.lastY = s.cursorX, s.cursorY
		e.PointerMove(x, y)
	}
	if s.clicked && onSnout(x, y) {
		e.Activate()
	}
}

var _ target = (*pigface.Engine)(nil)
