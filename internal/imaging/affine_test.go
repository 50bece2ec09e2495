package imaging

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestAffine_Identity(t *testing.T) {
	id := Identity()
	x, y := id.Apply(3.5, -2)
	if !closeTo(x, 3.5) || !closeTo(y, -2) {
		t.Errorf("identity moved point: (%g, %g)", x, y)
	}
	if !id.IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
}

func TestAffine_TranslateScale(t *testing.T) {
	m := Translate(10, 20).Mul(Scale(2, 3))
	// Scale first, then translate.
	x, y := m.Apply(1, 1)
	if !closeTo(x, 12) || !closeTo(y, 23) {
		t.Errorf("Apply(1, 1) = (%g, %g), want (12, 23)", x, y)
	}
}

func TestAffine_RotateQuarterTurn(t *testing.T) {
	m := Rotate(math.Pi / 2)
	x, y := m.Apply(1, 0)
	if !closeTo(x, 0) || !closeTo(y, 1) {
		t.Errorf("quarter turn of (1, 0) = (%g, %g), want (0, 1)", x, y)
	}
}

func TestAffine_RotateAtFixesCenter(t *testing.T) {
	m := RotateAt(1.234, 50, 60)
	x, y := m.Apply(50, 60)
	if !closeTo(x, 50) || !closeTo(y, 60) {
		t.Errorf("rotation center moved to (%g, %g)", x, y)
	}

	// A point at distance r stays at distance r.
	x, y = m.Apply(55, 60)
	dist := math.Hypot(x-50, y-60)
	if !closeTo(dist, 5) {
		t.Errorf("distance after rotation = %g, want 5", dist)
	}
}

func TestAffine_InvertRoundTrip(t *testing.T) {
	m := Translate(7, -3).Mul(Rotate(0.7)).Mul(Scale(2, 0.5))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("invertible transform reported singular")
	}

	x, y := m.Apply(3, 4)
	rx, ry := inv.Apply(x, y)
	if !closeTo(rx, 3) || !closeTo(ry, 4) {
		t.Errorf("round trip of (3, 4) = (%g, %g)", rx, ry)
	}
}

func TestAffine_SingularInvert(t *testing.T) {
	if _, ok := Scale(0, 1).Invert(); ok {
		t.Error("zero-scale transform should be singular")
	}
}
