package pigface

import (
	"math"
	"testing"
)

func TestViewFit(t *testing.T) {
	v := NewView(Rect{Width: 800, Height: 400})
	v.Fit(Rect{X: 100, Y: 100, Width: 600, Height: 600})

	assertNear(t, "zoom", v.Zoom, 400.0/600.0)
	assertNear(t, "x", v.X, 400)
	assertNear(t, "y", v.Y, 400)

	// The bounds center lands on the viewport center.
	sx, sy := v.WorldToScreen(400, 400)
	assertNear(t, "sx", sx, 400)
	assertNear(t, "sy", sy, 200)
}

func TestViewRoundTrip(t *testing.T) {
	v := NewView(Rect{X: 10, Y: 20, Width: 640, Height: 480})
	v.X, v.Y = 300, 250
	v.Zoom = 1.7
	v.Rotation = 0.4
	v.MarkDirty()

	for _, p := range []Vec2{{0, 0}, {300, 250}, {-40, 900}} {
		sx, sy := v.WorldToScreen(p.X, p.Y)
		wx, wy, ok := v.ScreenToWorld(sx, sy)
		if !ok {
			t.Fatal("ScreenToWorld not ok")
		}
		assertVec(t, "round trip", Vec2{wx, wy}, p)
	}
}

func TestViewZeroZoom(t *testing.T) {
	v := NewView(Rect{Width: 100, Height: 100})
	v.Zoom = 0
	v.MarkDirty()
	if _, _, ok := v.ScreenToWorld(10, 10); ok {
		t.Error("zero zoom should not invert")
	}

	// An empty viewport fits with zoom 0.
	v = NewView(Rect{})
	v.Fit(Rect{Width: 600, Height: 600})
	if _, _, ok := v.ScreenToWorld(0, 0); ok {
		t.Error("empty viewport should not invert")
	}
}

func TestViewSetViewportRecomputes(t *testing.T) {
	v := NewView(Rect{Width: 100, Height: 100})
	v.X, v.Y = 50, 50
	v.MarkDirty()
	sx, _ := v.WorldToScreen(50, 50)
	assertNear(t, "before", sx, 50)

	v.SetViewport(Rect{Width: 300, Height: 100})
	sx, _ = v.WorldToScreen(50, 50)
	assertNear(t, "after", sx, 150)
}

func TestViewRotationClockwise(t *testing.T) {
	v := NewView(Rect{Width: 200, Height: 200})
	v.X, v.Y = 0, 0
	v.Rotation = math.Pi / 2
	v.MarkDirty()

	// Rotating the view clockwise turns world +X toward screen -Y.
	sx, sy := v.WorldToScreen(10, 0)
	assertNear(t, "sx", sx, 100)
	assertNear(t, "sy", sy, 90)
}
