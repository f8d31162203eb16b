package rowan

import "math"

// CapTransform marks the component giving an entity a position in 2D space.
var CapTransform = NewCapability("transform")

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Transform places an entity in 2D space: translation, scale, rotation
// (radians), a pivot subtracted before scaling, and a local alpha picked up
// by the entity's renderable. Fields are plain; mutate them directly.
// World placement composes through the ancestor chain, parent before child.
type Transform struct {
	Base

	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	PivotX, PivotY float64
	Alpha          float64
}

// NewTransform creates a transform at the origin with unit scale.
func NewTransform() *Transform {
	return &Transform{ScaleX: 1, ScaleY: 1, Alpha: 1}
}

// NewTransformAt creates a transform at (x, y) with unit scale.
func NewTransformAt(x, y float64) *Transform {
	t := NewTransform()
	t.X = x
	t.Y = y
	return t
}

// Capabilities returns the transform tag set.
func (t *Transform) Capabilities() []Capability {
	return []Capability{CapTransform}
}

// Translate moves the transform by (dx, dy).
func (t *Transform) Translate(dx, dy float64) {
	t.X += dx
	t.Y += dy
}

// LocalMatrix computes the local affine matrix [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Rotate -> Translate(X, Y)
func (t *Transform) LocalMatrix() [6]float64 {
	sx := t.ScaleX
	sy := t.ScaleY
	sin, cos := math.Sincos(t.Rotation)

	// After Scale * Translate(-pivot):
	//   a=sx, b=0, c=0, d=sy, tx=-px*sx, ty=-py*sy
	preTx := -t.PivotX * sx
	preTy := -t.PivotY * sy

	// After Rotate, then Translate(X, Y):
	return [6]float64{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*preTx - sin*preTy + t.X,
		sin*preTx + cos*preTy + t.Y,
	}
}

// WorldMatrix composes the local matrix through every ancestor that has a
// Transform, nearest ancestor last. Ancestors without a Transform
// contribute identity.
func (t *Transform) WorldMatrix() [6]float64 {
	m := t.LocalMatrix()
	e := t.Entity()
	if e == nil {
		return m
	}
	for p := e.Parent(); p != nil; p = p.Parent() {
		if pt, ok := Get[*Transform](p, CapTransform); ok {
			m = multiplyAffine(pt.LocalMatrix(), m)
		}
	}
	return m
}

// WorldToLocal converts a world-space point into this transform's local
// coordinate space.
func (t *Transform) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv := invertAffine(t.WorldMatrix())
	return transformPoint(inv, wx, wy)
}

// LocalToWorld converts a local-space point to world-space.
func (t *Transform) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(t.WorldMatrix(), lx, ly)
}

// --- Affine helpers ---

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

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
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
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
