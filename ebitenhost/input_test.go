package ebitenhost

import (
	"fmt"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	calls []string
}

func (r *recorder) PointerMove(x, y float64) { r.add("move %v,%v", x, y) }
func (r *recorder) PointerRelease()          { r.add("release") }
func (r *recorder) TouchStart(x, y float64)  { r.add("touchstart %v,%v", x, y) }
func (r *recorder) TouchMove(x, y float64)   { r.add("touchmove %v,%v", x, y) }
func (r *recorder) TouchEnd()                { r.add("touchend") }
func (r *recorder) Activate()                { r.add("activate") }

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func never(float64, float64) bool { return false }

func snoutAt(sx, sy float64) snoutTest {
	return func(x, y float64) bool { return x == sx && y == sy }
}

func TestTrackerMouse(t *testing.T) {
	var tr tracker
	r := &recorder{}

	tr.step(snapshot{cursorX: 10, cursorY: 20, inside: true}, r, never)
	tr.step(snapshot{cursorX: 10, cursorY: 20, inside: true}, r, never) // unchanged
	tr.step(snapshot{cursorX: 11, cursorY: 20, inside: true}, r, never)
	tr.step(snapshot{cursorX: -5, cursorY: 20}, r, never) // left the window
	tr.step(snapshot{cursorX: -6, cursorY: 20}, r, never)

	assert.Equal(t, []string{"move 10,20", "move 11,20", "release"}, r.calls)
}

func TestTrackerMouseReentersAtSamePoint(t *testing.T) {
	var tr tracker
	r := &recorder{}

	tr.step(snapshot{cursorX: 10, cursorY: 20, inside: true}, r, never)
	tr.step(snapshot{cursorX: 10, cursorY: 20}, r, never)
	tr.step(snapshot{cursorX: 10, cursorY: 20, inside: true}, r, never)

	assert.Equal(t, []string{"move 10,20", "release", "move 10,20"}, r.calls)
}

func TestTrackerClickOnSnout(t *testing.T) {
	var tr tracker
	r := &recorder{}

	tr.step(snapshot{cursorX: 5, cursorY: 5, inside: true, clicked: true}, r, snoutAt(5, 5))
	tr.step(snapshot{cursorX: 6, cursorY: 6, inside: true, clicked: true}, r, snoutAt(5, 5))

	assert.Equal(t, []string{"move 5,5", "activate", "move 6,6"}, r.calls)
}

func TestTrackerPrimaryTouch(t *testing.T) {
	var tr tracker
	r := &recorder{}
	const a, b = ebiten.TouchID(1), ebiten.TouchID(2)

	tr.step(snapshot{touches: []touch{{id: a, x: 1, y: 1, just: true}}}, r, never)
	tr.step(snapshot{touches: []touch{{id: a, x: 2, y: 2}, {id: b, x: 9, y: 9, just: true}}}, r, never)
	tr.step(snapshot{touches: []touch{{id: b, x: 8, y: 8}}, released: []ebiten.TouchID{a}}, r, never)
	// b never becomes primary because it landed while a was down.
	tr.step(snapshot{released: []ebiten.TouchID{b}}, r, never)

	assert.Equal(t, []string{"touchstart 1,1", "touchmove 2,2", "touchend"}, r.calls)
}

func TestTrackerTouchSuppressesMouse(t *testing.T) {
	var tr tracker
	r := &recorder{}
	const a = ebiten.TouchID(7)

	tr.step(snapshot{cursorX: 3, cursorY: 3, inside: true, touches: []touch{{id: a, x: 1, y: 1, just: true}}}, r, never)
	tr.step(snapshot{cursorX: 4, cursorY: 4, inside: true, released: []ebiten.TouchID{a}}, r, never)

	assert.Equal(t, []string{"touchstart 1,1", "touchend", "move 4,4"}, r.calls)
}

func TestTrackerTapOnSnout(t *testing.T) {
	var tr tracker
	r := &recorder{}
	const a, b = ebiten.TouchID(1), ebiten.TouchID(2)

	tr.step(snapshot{touches: []touch{{id: a, x: 5, y: 5, just: true}}}, r, snoutAt(5, 5))
	tr.step(snapshot{touches: []touch{{id: a, x: 5, y: 5}, {id: b, x: 5, y: 5, just: true}}}, r, snoutAt(5, 5))

	assert.Equal(t, []string{"touchstart 5,5", "activate", "touchmove 5,5", "activate"}, r.calls)
}
