package pigface

// HitShape is a hit-testable region in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitEllipse is an axis-aligned elliptical hit area in local coordinates.
type HitEllipse struct {
	CenterX, CenterY, RadiusX, RadiusY float64
}

// Contains reports whether (x, y) lies inside or on the ellipse.
func (e HitEllipse) Contains(x, y float64) bool {
	if e.RadiusX <= 0 || e.RadiusY <= 0 {
		return false
	}
	dx := (x - e.CenterX) / e.RadiusX
	dy := (y - e.CenterY) / e.RadiusY
	return dx*dx+dy*dy <= 1
}

// HitTest maps a screen point through m and tests it against shape. Points
// that cannot be mapped never hit.
func HitTest(m Mapper, shape HitShape, x, y float64) bool {
	p, err := m.ScreenToLocal(x, y)
	if err != nil {
		return false
	}
	return shape.Contains(p.X, p.Y)
}
