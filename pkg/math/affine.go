package math

import "math"

// Affine is a 2D affine transform in row-major order with an implicit
// bottom row of [0 0 1]:
//
//	[a[0] a[1] a[2]]
//	[a[3] a[4] a[5]]
//
// It maps (x, y) to (a[0]*x + a[1]*y + a[2], a[3]*x + a[4]*y + a[5]).
// The layout matches golang.org/x/image/math/f64.Aff3.
type Affine [6]float64

// IdentityAffine returns the identity transform.
func IdentityAffine() Affine {
	return Affine{1, 0, 0, 0, 1, 0}
}

// TranslateAffine returns a translation by (x, y).
func TranslateAffine(x, y float64) Affine {
	return Affine{1, 0, x, 0, 1, y}
}

// ScaleAffine returns a scale by (x, y). Negative factors mirror the axis.
func ScaleAffine(x, y float64) Affine {
	return Affine{x, 0, 0, 0, y, 0}
}

// RotateAffine returns a rotation by angle radians. In a y-down raster
// space a positive angle turns clockwise.
func RotateAffine(angle float64) Affine {
	s, c := math.Sincos(angle)
	// Snap trig noise so quarter turns stay exact.
	s, c = snap(s), snap(c)
	return Affine{c, -s, 0, s, c, 0}
}

// Mul returns m * other: the result applies other first, then m.
func (m Affine) Mul(other Affine) Affine {
	return Affine{
		m[0]*other[0] + m[1]*other[3],
		m[0]*other[1] + m[1]*other[4],
		m[0]*other[2] + m[1]*other[5] + m[2],
		m[3]*other[0] + m[4]*other[3],
		m[3]*other[1] + m[4]*other[4],
		m[3]*other[2] + m[4]*other[5] + m[5],
	}
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Det returns the determinant of the linear part.
func (m Affine) Det() float64 {
	return m[0]*m[4] - m[1]*m[3]
}

// Invert returns the inverse transform.
// ok is false if the transform is singular.
func (m Affine) Invert() (inv Affine, ok bool) {
	det := m.Det()
	if det == 0 {
		return IdentityAffine(), false
	}
	id := 1 / det
	a := m[4] * id
	b := -m[1] * id
	d := -m[3] * id
	e := m[0] * id
	return Affine{
		a, b, -(a*m[2] + b*m[5]),
		d, e, -(d*m[2] + e*m[5]),
	}, true
}

// Bounds returns the axis-aligned bounding box of the rectangle
// [x0,x1]x[y0,y1] after transformation.
func (m Affine) Bounds(x0, y0, x1, y1 float64) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		x, y := m.Apply(p[0], p[1])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return minX, minY, maxX, maxY
}

func snap(v float64) float64 {
	const eps = 1e-12
	switch {
	case math.Abs(v) < eps:
		return 0
	case math.Abs(v-1) < eps:
		return 1
	case math.Abs(v+1) < eps:
		return -1
	}
	return v
}
