package imaging

import "math"

// Source is a readable pixel source with a fixed intrinsic size.
// The capability set is resolved once at construction; the draw core
// never probes a source beyond this interface.
type Source interface {
	// Width returns the intrinsic width in pixels. A source that is not
	// yet decoded reports 0 and is skipped by the compositor.
	Width() int

	// Height returns the intrinsic height in pixels.
	Height() int

	// RGBAAt returns the non-premultiplied 8-bit components of the pixel
	// at (x, y). Out-of-bounds coordinates return zeros.
	RGBAAt(x, y int) (r, g, b, a uint8)
}

// Interpolation selects how a Source is sampled when scaled.
type Interpolation uint8

const (
	// Nearest selects the closest pixel. Fast but blocky when scaling.
	Nearest Interpolation = iota

	// Bilinear interpolates between the 4 neighboring pixels.
	// The compositor default.
	Bilinear

	// Bicubic interpolates a 4x4 neighborhood with Catmull-Rom weights.
	// Highest quality, slowest.
	Bicubic
)

// String returns the interpolation mode name.
func (m Interpolation) String() string {
	switch m {
	case Nearest:
		return "Nearest"
	case Bilinear:
		return "Bilinear"
	case Bicubic:
		return "Bicubic"
	default:
		return "Unknown"
	}
}

// Sample reads src at normalized coordinates (u, v) in [0, 1] using the
// given interpolation mode. Out-of-range coordinates clamp to the edge.
func Sample(src Source, u, v float64, mode Interpolation) (r, g, b, a uint8) {
	switch mode {
	case Bilinear:
		return sampleBilinear(src, u, v)
	case Bicubic:
		return sampleBicubic(src, u, v)
	default:
		return sampleNearest(src, u, v)
	}
}

func sampleNearest(src Source, u, v float64) (r, g, b, a uint8) {
	w, h := src.Width(), src.Height()
	x := clampInt(int(math.Floor(u*float64(w))), 0, w-1)
	y := clampInt(int(math.Floor(v*float64(h))), 0, h-1)
	return src.RGBAAt(x, y)
}

func sampleBilinear(src Source, u, v float64) (r, g, b, a uint8) {
	w, h := src.Width(), src.Height()

	// Continuous pixel coordinates, sampling from pixel centers.
	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := clampInt(x0+1, 0, w-1)
	y1 := clampInt(y0+1, 0, h-1)
	x0 = clampInt(x0, 0, w-1)
	y0 = clampInt(y0, 0, h-1)

	r00, g00, b00, a00 := src.RGBAAt(x0, y0)
	r10, g10, b10, a10 := src.RGBAAt(x1, y0)
	r01, g01, b01, a01 := src.RGBAAt(x0, y1)
	r11, g11, b11, a11 := src.RGBAAt(x1, y1)

	r = uint8(lerp2D(float64(r00), float64(r10), float64(r01), float64(r11), tx, ty))
	g = uint8(lerp2D(float64(g00), float64(g10), float64(g01), float64(g11), tx, ty))
	b = uint8(lerp2D(float64(b00), float64(b10), float64(b01), float64(b11), tx, ty))
	a = uint8(lerp2D(float64(a00), float64(a10), float64(a01), float64(a11), tx, ty))
	return r, g, b, a
}

func sampleBicubic(src Source, u, v float64) (r, g, b, a uint8) {
	w, h := src.Width(), src.Height()

	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5

	x := int(math.Floor(fx))
	y := int(math.Floor(fy))
	tx := fx - float64(x)
	ty := fy - float64(y)

	var rs, gs, bs, as [4][4]float64
	for dy := -1; dy <= 2; dy++ {
		for dx := -1; dx <= 2; dx++ {
			px := clampInt(x+dx, 0, w-1)
			py := clampInt(y+dy, 0, h-1)
			pr, pg, pb, pa := src.RGBAAt(px, py)
			rs[dy+1][dx+1] = float64(pr)
			gs[dy+1][dx+1] = float64(pg)
			bs[dy+1][dx+1] = float64(pb)
			as[dy+1][dx+1] = float64(pa)
		}
	}

	r = uint8(clampFloat(bicubic(rs, tx, ty), 0, 255))
	g = uint8(clampFloat(bicubic(gs, tx, ty), 0, 255))
	b = uint8(clampFloat(bicubic(bs, tx, ty), 0, 255))
	a = uint8(clampFloat(bicubic(as, tx, ty), 0, 255))
	return r, g, b, a
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	return lerp(lerp(v00, v10, tx), lerp(v01, v11, tx), ty)
}

// cubicWeight is the Catmull-Rom spline weight (Mitchell-Netravali B=0, C=0.5).
func cubicWeight(t float64) float64 {
	at := math.Abs(t)
	if at < 1 {
		return 1.5*at*at*at - 2.5*at*at + 1
	}
	if at < 2 {
		return -0.5*at*at*at + 2.5*at*at - 4*at + 2
	}
	return 0
}

func bicubic(vals [4][4]float64, tx, ty float64) float64 {
	wx := [4]float64{cubicWeight(tx + 1), cubicWeight(tx), cubicWeight(tx - 1), cubicWeight(tx - 2)}
	wy := [4]float64{cubicWeight(ty + 1), cubicWeight(ty), cubicWeight(ty - 1), cubicWeight(ty - 2)}

	var sum float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum += vals[i][j] * wx[j] * wy[i]
		}
	}
	return sum
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
