package pigface

import "math"

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// View maps between screen space and world space: which world point sits at
// the center of the viewport, at what zoom and rotation.
type View struct {
	// X and Y are the world-space position the view centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the view rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle the view renders into.
	Viewport Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	invertible    bool
	dirty         bool
}

// NewView creates a View with zoom 1 over the given viewport.
func NewView(viewport Rect) *View {
	return &View{
		Zoom:     1.0,
		Viewport: viewport,
		dirty:    true,
	}
}

// Fit centers the world rectangle bounds in the viewport and picks the
// largest zoom that shows all of it.
func (v *View) Fit(bounds Rect) {
	v.X = bounds.X + bounds.Width/2
	v.Y = bounds.Y + bounds.Height/2
	v.Zoom = 0
	if bounds.Width > 0 && bounds.Height > 0 {
		v.Zoom = math.Min(v.Viewport.Width/bounds.Width, v.Viewport.Height/bounds.Height)
	}
	v.dirty = true
}

// SetViewport replaces the viewport, e.g. after a window resize.
func (v *View) SetViewport(r Rect) {
	v.Viewport = r
	v.dirty = true
}

// MarkDirty forces a recomputation of the view matrix. Call it after
// modifying X, Y, Zoom or Rotation directly.
func (v *View) MarkDirty() {
	v.dirty = true
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (v *View) computeViewMatrix() [6]float64 {
	if !v.dirty {
		return v.viewMatrix
	}
	v.dirty = false

	cx := v.Viewport.X + v.Viewport.Width/2
	cy := v.Viewport.Y + v.Viewport.Height/2

	cos := math.Cos(-v.Rotation)
	sin := math.Sin(-v.Rotation)
	z := v.Zoom

	// Combined: Translate(cx,cy) * Scale(z) * Rotate(-rot) * Translate(-X,-Y)
	a := z * cos
	b := -z * sin
	cc := z * sin
	d := z * cos
	tx := cx + z*(-cos*v.X+sin*v.Y)
	ty := cy + z*(-sin*v.X-cos*v.Y)

	v.viewMatrix = [6]float64{a, cc, b, d, tx, ty}
	v.invViewMatrix, v.invertible = invertAffine(v.viewMatrix)
	return v.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *View) WorldToScreen(wx, wy float64) (sx, sy float64) {
	m := v.computeViewMatrix()
	return transformPoint(m, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates. ok is false
// when the view cannot be inverted (zero zoom).
func (v *View) ScreenToWorld(sx, sy float64) (wx, wy float64, ok bool) {
	v.computeViewMatrix()
	if !v.invertible {
		return 0, 0, false
	}
	wx, wy = transformPoint(v.invViewMatrix, sx, sy)
	return wx, wy, true
}
