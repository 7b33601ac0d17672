package pigface

import (
	"errors"
	"math"
)

// ErrNoTransform is returned by a Mapper that has no usable transform for
// the current frame (missing view, zero zoom, zero scale).
var ErrNoTransform = errors.New("pigface: no valid screen transform")

// Mapper converts raw screen positions into the character's local space.
type Mapper interface {
	ScreenToLocal(x, y float64) (Vec2, error)
}

// IdentityMapper treats input as already being in local space.
type IdentityMapper struct{}

// ScreenToLocal returns (x, y) unchanged.
func (IdentityMapper) ScreenToLocal(x, y float64) (Vec2, error) {
	return Vec2{x, y}, nil
}

// ViewMapper maps through a View (screen to world) and the character's Body
// transform (world to local).
type ViewMapper struct {
	View *View
	Body Transform
}

// NewViewMapper returns a mapper with an identity body transform.
func NewViewMapper(view *View) *ViewMapper {
	return &ViewMapper{View: view, Body: NewTransform()}
}

// ScreenToLocal converts a screen point to local coordinates.
func (m *ViewMapper) ScreenToLocal(x, y float64) (Vec2, error) {
	if m == nil || m.View == nil {
		return Vec2{}, ErrNoTransform
	}
	wx, wy, ok := m.View.ScreenToWorld(x, y)
	if !ok {
		return Vec2{}, ErrNoTransform
	}
	lx, ly, ok := m.Body.WorldToLocal(wx, wy)
	if !ok {
		return Vec2{}, ErrNoTransform
	}
	return Vec2{lx, ly}, nil
}

// LocalToScreen converts a local point to screen coordinates. Renderers use
// it to place shapes.
func (m *ViewMapper) LocalToScreen(p Vec2) Vec2 {
	wx, wy := m.Body.LocalToWorld(p.X, p.Y)
	sx, sy := m.View.WorldToScreen(wx, wy)
	return Vec2{sx, sy}
}

// ScreenScale is the screen length of one local unit along X, used to size
// circles. Rotation does not change it.
func (m *ViewMapper) ScreenScale() float64 {
	return math.Abs(m.View.Zoom * m.Body.ScaleX)
}
