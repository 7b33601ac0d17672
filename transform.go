package pigface

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Transform places the character in world space. The zero value is not the
// identity; use NewTransform.
type Transform struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64 // radians, clockwise
	SkewX, SkewY   float64 // radians
	PivotX, PivotY float64 // local point that X, Y refers to
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Matrix computes the affine matrix [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Skew -> Rotate -> Translate(X, Y)
func (t Transform) Matrix() [6]float64 {
	sx := t.ScaleX
	sy := t.ScaleY

	sin, cos := math.Sincos(t.Rotation)

	var tanSkewX, tanSkewY float64
	if t.SkewX != 0 {
		tanSkewX = math.Tan(t.SkewX)
	}
	if t.SkewY != 0 {
		tanSkewY = math.Tan(t.SkewY)
	}

	// After Scale * Translate(-pivot):
	//   a=sx, b=0, c=0, d=sy, tx=-px*sx, ty=-py*sy
	//
	// After Skew:
	a := sx
	b := tanSkewY * sx
	c := tanSkewX * sy
	d := sy

	px := t.PivotX
	py := t.PivotY
	preTx := -px*sx - tanSkewX*py*sy
	preTy := -tanSkewY*px*sx - py*sy

	// After Rotate:
	ra := cos*a - sin*b
	rb := sin*a + cos*b
	rc := cos*c - sin*d
	rd := sin*c + cos*d
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	return [6]float64{ra, rb, rc, rd, rtx + t.X, rty + t.Y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix. ok is false when
// the matrix is singular (determinant ≈ 0); the returned matrix is then the
// identity and must not be used for mapping.
func invertAffine(m [6]float64) (inv [6]float64, ok bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform, false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// WorldToLocal converts a world-space point into the character's local
// space. ok is false if the transform is degenerate (zero scale).
func (t Transform) WorldToLocal(wx, wy float64) (lx, ly float64, ok bool) {
	inv, ok := invertAffine(t.Matrix())
	if !ok {
		return 0, 0, false
	}
	lx, ly = transformPoint(inv, wx, wy)
	return lx, ly, true
}

// LocalToWorld converts a local point to world space.
func (t Transform) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(t.Matrix(), lx, ly)
}
