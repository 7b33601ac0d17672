package pigface

// Part names a region of the drawn pig.
type Part uint8

const (
	PartNone Part = iota
	PartEar
	PartHead
	PartSnout
	PartNostril
	PartEyeWhite
	PartPupil
)

// Layout is the pig's geometry in local units. Hosts draw it and hit-test
// the snout against it; the engine only needs the eye rest centers.
type Layout struct {
	Bounds Rect

	Head     HitCircle
	LeftEar  [3]Vec2
	RightEar [3]Vec2
	Snout    HitEllipse
	Nostrils [2]HitCircle

	Eyes        [EyeCount]Vec2
	EyeRadius   float64
	PupilRadius float64
}

// DefaultLayout returns the reference pig around the rest centers in cfg.
func DefaultLayout(cfg Config) Layout {
	cx := (cfg.LeftRest.X + cfg.RightRest.X) / 2
	cy := (cfg.LeftRest.Y + cfg.RightRest.Y) / 2
	return Layout{
		Bounds: Rect{X: cx - 300, Y: cy - 310, Width: 600, Height: 600},
		Head:   HitCircle{CenterX: cx, CenterY: cy + 20, Radius: 250},
		LeftEar: [3]Vec2{
			{cx - 230, cy - 290}, {cx - 200, cy - 130}, {cx - 80, cy - 210},
		},
		RightEar: [3]Vec2{
			{cx + 230, cy - 290}, {cx + 200, cy - 130}, {cx + 80, cy - 210},
		},
		Snout: HitEllipse{CenterX: cx, CenterY: cy + 120, RadiusX: 85, RadiusY: 60},
		Nostrils: [2]HitCircle{
			{CenterX: cx - 30, CenterY: cy + 120, Radius: 14},
			{CenterX: cx + 30, CenterY: cy + 120, Radius: 14},
		},
		Eyes:        [EyeCount]Vec2{cfg.LeftRest, cfg.RightRest},
		EyeRadius:   cfg.MaxMove + 20,
		PupilRadius: 16,
	}
}

// PartAt returns the topmost part at local point p with the pupils displaced
// by offsets.
func (l Layout) PartAt(p Vec2, offsets [EyeCount]Vec2) Part {
	for i, eye := range l.Eyes {
		pupil := eye.Add(offsets[i])
		if (HitCircle{pupil.X, pupil.Y, l.PupilRadius}).Contains(p.X, p.Y) {
			return PartPupil
		}
		if (HitCircle{eye.X, eye.Y, l.EyeRadius}).Contains(p.X, p.Y) {
			return PartEyeWhite
		}
	}
	for _, n := range l.Nostrils {
		if n.Contains(p.X, p.Y) {
			return PartNostril
		}
	}
	if l.Snout.Contains(p.X, p.Y) {
		return PartSnout
	}
	if l.Head.Contains(p.X, p.Y) {
		return PartHead
	}
	if inTriangle(p, l.LeftEar) || inTriangle(p, l.RightEar) {
		return PartEar
	}
	return PartNone
}

// inTriangle uses the cross-product sign test.
func inTriangle(p Vec2, t [3]Vec2) bool {
	var positive, negative bool
	for i := range t {
		a := t[i]
		b := t[(i+1)%3]
		cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}
