package vframe

import (
	"math"
	"sort"
)

// CurvePoint is a single control point of a color curve. X is the input
// intensity and Y the mapped output intensity, both in [0, 1].
type CurvePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Curves holds the control points of the four grading channels. Point
// order within a channel is not significant; points are sorted by X
// before use. This is the shape that round-trips through project files.
type Curves struct {
	Master []CurvePoint `json:"master"`
	Red    []CurvePoint `json:"red"`
	Green  []CurvePoint `json:"green"`
	Blue   []CurvePoint `json:"blue"`
}

// LUT is a 256-entry lookup table mapping an input byte to an output
// byte. A LUT is immutable once built; grading changes build a new one.
type LUT [256]uint8

// identityTolerance is how far a two-point curve may deviate from the
// exact (0,0)-(1,1) diagonal and still count as identity.
const identityTolerance = 0.001

// IsIdentityCurve reports whether points describe the identity mapping:
// exactly two points that, sorted by X, sit within tolerance of (0,0)
// and (1,1). Used as a fast path to skip grading.
func IsIdentityCurve(points []CurvePoint) bool {
	if len(points) != 2 {
		return false
	}
	p0, p1 := points[0], points[1]
	if p1.X < p0.X {
		p0, p1 = p1, p0
	}
	return math.Abs(p0.X) <= identityTolerance &&
		math.Abs(p0.Y) <= identityTolerance &&
		math.Abs(p1.X-1) <= identityTolerance &&
		math.Abs(p1.Y-1) <= identityTolerance
}

// IsIdentity reports whether all four channels are identity curves.
func (c Curves) IsIdentity() bool {
	return IsIdentityCurve(c.Master) &&
		IsIdentityCurve(c.Red) &&
		IsIdentityCurve(c.Green) &&
		IsIdentityCurve(c.Blue)
}

// BuildLUT evaluates the curve described by points into a lookup table.
//
// Zero points yield the identity ramp, one point a constant table, two
// points a clamped linear segment. Three or more points are interpolated
// with the Fritsch-Carlson monotone cubic method, which never overshoots
// between monotone control points, so a monotone input always yields a
// monotone table. Degenerate input (duplicate X, zero-length segments)
// is treated as locally flat and still yields a fully defined table.
func BuildLUT(points []CurvePoint) LUT {
	var lut LUT

	switch len(points) {
	case 0:
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	case 1:
		v := clamp255(points[0].Y)
		for i := range lut {
			lut[i] = v
		}
		return lut
	}

	sorted := make([]CurvePoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	if len(sorted) == 2 {
		return buildLinearLUT(sorted[0], sorted[1])
	}
	return buildMonotoneLUT(sorted)
}

func buildLinearLUT(p0, p1 CurvePoint) LUT {
	var lut LUT
	dx := p1.X - p0.X
	for i := range lut {
		t := float64(i) / 255
		var y float64
		switch {
		case t <= p0.X:
			y = p0.Y
		case t >= p1.X:
			y = p1.Y
		case dx < 1e-12:
			y = p0.Y
		default:
			y = p0.Y + (p1.Y-p0.Y)*(t-p0.X)/dx
		}
		lut[i] = clamp255(y)
	}
	return lut
}

// buildMonotoneLUT fits a monotone cubic Hermite spline through the
// sorted points (Fritsch & Carlson 1980) and samples it at 256 inputs.
func buildMonotoneLUT(pts []CurvePoint) LUT {
	n := len(pts)

	// Secant slope of each segment; degenerate segments are flat.
	delta := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		dx := pts[i+1].X - pts[i].X
		if math.Abs(dx) < 1e-12 {
			delta[i] = 0
		} else {
			delta[i] = (pts[i+1].Y - pts[i].Y) / dx
		}
	}

	// Tangent seeding: endpoints take the adjacent secant; interior
	// points average their neighbors only when the secants share sign.
	// A sign change marks a local extremum where the tangent must be
	// zero to avoid overshoot.
	m := make([]float64, n)
	m[0] = delta[0]
	m[n-1] = delta[n-2]
	for i := 1; i < n-1; i++ {
		if delta[i-1]*delta[i] > 0 {
			m[i] = (delta[i-1] + delta[i]) / 2
		} else {
			m[i] = 0
		}
	}

	// Fritsch-Carlson limiter: keep (alpha, beta) inside the circle of
	// radius 3, the algebraic condition for the cubic to stay monotone
	// on the segment.
	for i := 0; i < n-1; i++ {
		if math.Abs(delta[i]) < 1e-12 {
			m[i] = 0
			m[i+1] = 0
			continue
		}
		alpha := m[i] / delta[i]
		beta := m[i+1] / delta[i]
		mag := math.Hypot(alpha, beta)
		if mag > 3 {
			scale := 3 / mag
			m[i] = scale * alpha * delta[i]
			m[i+1] = scale * beta * delta[i]
		}
	}

	var lut LUT
	seg := 0
	for i := range lut {
		t := float64(i) / 255

		// Inputs outside the control range clamp to the boundary value.
		if t <= pts[0].X {
			lut[i] = clamp255(pts[0].Y)
			continue
		}
		if t >= pts[n-1].X {
			lut[i] = clamp255(pts[n-1].Y)
			continue
		}

		// t is non-decreasing across iterations, so the segment search
		// resumes where the previous sample left off.
		for seg < n-2 && pts[seg+1].X < t {
			seg++
		}

		h := pts[seg+1].X - pts[seg].X
		if math.Abs(h) < 1e-12 {
			lut[i] = clamp255(pts[seg].Y)
			continue
		}

		s := (t - pts[seg].X) / h
		s2 := s * s
		s3 := s2 * s

		h00 := 2*s3 - 3*s2 + 1
		h10 := s3 - 2*s2 + s
		h01 := -2*s3 + 3*s2
		h11 := s3 - s2

		y := h00*pts[seg].Y + h10*h*m[seg] + h01*pts[seg+1].Y + h11*h*m[seg+1]
		lut[i] = clamp255(y)
	}
	return lut
}

// LUTSet is the built form of a Curves settings object: one table per
// channel, ready to apply per pixel. Build a new set on every settings
// change and swap the reference; never mutate a set readers may hold.
type LUTSet struct {
	Master LUT
	Red    LUT
	Green  LUT
	Blue   LUT
}

// BuildLUTSet builds all four channel tables from the settings.
// Returns nil when the settings are all identity, which callers use to
// disable the grading stage entirely.
func BuildLUTSet(c Curves) *LUTSet {
	if c.IsIdentity() {
		return nil
	}
	return &LUTSet{
		Master: BuildLUT(c.Master),
		Red:    BuildLUT(c.Red),
		Green:  BuildLUT(c.Green),
		Blue:   BuildLUT(c.Blue),
	}
}

// ApplyTo maps a single pixel through the set. The channel table is
// applied after the master table, matching a per-channel adjustment
// stacked on a global one.
func (s *LUTSet) ApplyTo(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
	return s.Red[s.Master[r]], s.Green[s.Master[g]], s.Blue[s.Master[b]], a
}

// Apply grades every pixel of the surface in place.
func (s *LUTSet) Apply(dst *Surface) {
	if s == nil || dst == nil {
		return
	}
	data := dst.Data()
	for i := 0; i < len(data); i += 4 {
		data[i+0] = s.Red[s.Master[data[i+0]]]
		data[i+1] = s.Green[s.Master[data[i+1]]]
		data[i+2] = s.Blue[s.Master[data[i+2]]]
	}
}
