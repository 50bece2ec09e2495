// Package imaging implements the pixel-level draw core used by the
// compositor: affine transforms, source sampling, and the blended
// rectangle draw that every layer goes through.
package imaging

import "math"

// Affine is a 2D affine transformation:
//
//	| A  B  C |
//	| D  E  F |
//	| 0  0  1 |
//
// covering translation, rotation, scaling, and shearing.
type Affine struct {
	A, B, C float64 // x' = A*x + B*y + C
	D, E, F float64 // y' = D*x + E*y + F
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translate returns a transform shifting points by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{A: 1, C: tx, E: 1, F: ty}
}

// Scale returns a transform scaling by (sx, sy) around the origin.
func Scale(sx, sy float64) Affine {
	return Affine{A: sx, E: sy}
}

// Rotate returns a transform rotating by angle radians around the origin.
func Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{A: cos, B: -sin, D: sin, E: cos}
}

// RotateAt returns a transform rotating by angle radians around (cx, cy).
func RotateAt(angle, cx, cy float64) Affine {
	return Translate(cx, cy).Mul(Rotate(angle)).Mul(Translate(-cx, -cy))
}

// Mul returns a*m: m is applied first, then a.
func (a Affine) Mul(m Affine) Affine {
	return Affine{
		A: a.A*m.A + a.B*m.D,
		B: a.A*m.B + a.B*m.E,
		C: a.A*m.C + a.B*m.F + a.C,
		D: a.D*m.A + a.E*m.D,
		E: a.D*m.B + a.E*m.E,
		F: a.D*m.C + a.E*m.F + a.F,
	}
}

// Apply transforms the point (x, y).
func (a Affine) Apply(x, y float64) (float64, float64) {
	return a.A*x + a.B*y + a.C, a.D*x + a.E*y + a.F
}

// Invert returns the inverse transform.
// ok is false when the matrix is singular.
func (a Affine) Invert() (inv Affine, ok bool) {
	det := a.A*a.E - a.B*a.D
	if math.Abs(det) < 1e-12 {
		return Affine{}, false
	}
	id := 1 / det
	return Affine{
		A: a.E * id,
		B: -a.B * id,
		C: (a.B*a.F - a.C*a.E) * id,
		D: -a.D * id,
		E: a.A * id,
		F: (a.C*a.D - a.A*a.F) * id,
	}, true
}

// IsIdentity reports whether the transform is exactly the identity.
func (a Affine) IsIdentity() bool {
	return a == Identity()
}
