package imaging

import "math"

// Target is the writable destination for a draw. It wraps the surface's
// raw RGBA pixel data; the root package constructs one per composite.
type Target struct {
	Pix    []uint8
	Width  int
	Height int
}

// RectF is an axis-aligned rectangle in surface coordinates.
type RectF struct {
	X, Y, W, H float64
}

// ColorFunc is a per-pixel color stage applied to sampled source pixels
// before blending (color-matrix filters, grading LUTs).
type ColorFunc func(r, g, b, a uint8) (uint8, uint8, uint8, uint8)

// DrawParams is the explicit per-call style for a single draw.
// Nothing here outlives the call: draw state can never leak between
// layers or into whatever paints the surface next.
type DrawParams struct {
	// Rect is the destination rectangle the source is scaled into.
	Rect RectF

	// Transform is an optional surface-space transform applied to Rect
	// (rotation about the rect center for rotated layers). Nil means
	// axis-aligned.
	Transform *Affine

	// Interp selects the sampling mode. Zero value is Nearest; the
	// compositor passes Bilinear by default.
	Interp Interpolation

	// Opacity scales the source alpha, in [0, 1].
	Opacity float64

	// Color is an optional per-pixel color stage. Nil means pass-through.
	Color ColorFunc
}

// Draw samples src into dst over the (possibly transformed) destination
// rectangle, applying the color stage and opacity, blending source-over.
//
// For each destination pixel inside the transformed rectangle's bounding
// box, the inverse transform maps the pixel center back into rectangle
// space; pixels outside the rectangle are untouched. Sampling uses
// normalized source coordinates so the source is scaled to fill Rect.
func Draw(dst Target, src Source, p DrawParams) {
	srcW, srcH := src.Width(), src.Height()
	if srcW <= 0 || srcH <= 0 || p.Rect.W <= 0 || p.Rect.H <= 0 {
		return
	}

	opacity := clampFloat(p.Opacity, 0, 1)
	if opacity == 0 {
		return
	}

	m := Identity()
	if p.Transform != nil {
		m = *p.Transform
	}
	inv, ok := m.Invert()
	if !ok {
		// Singular transform, nothing sensible to draw.
		return
	}

	minX, minY, maxX, maxY := deviceBounds(m, p.Rect, dst.Width, dst.Height)
	if minX >= maxX || minY >= maxY {
		return
	}

	for y := minY; y < maxY; y++ {
		row := y * dst.Width * 4
		for x := minX; x < maxX; x++ {
			// Map the device pixel center back into rect-local space.
			sx, sy := inv.Apply(float64(x)+0.5, float64(y)+0.5)
			lx := sx - p.Rect.X
			ly := sy - p.Rect.Y
			if lx < 0 || lx > p.Rect.W || ly < 0 || ly > p.Rect.H {
				continue
			}

			sr, sg, sb, sa := Sample(src, lx/p.Rect.W, ly/p.Rect.H, p.Interp)
			if p.Color != nil {
				sr, sg, sb, sa = p.Color(sr, sg, sb, sa)
			}
			if opacity < 1 {
				sa = uint8(float64(sa) * opacity)
			}
			if sa == 0 {
				continue
			}

			i := row + x*4
			dst.Pix[i+0], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = blendOver(
				sr, sg, sb, sa,
				dst.Pix[i+0], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3],
			)
		}
	}
}

// deviceBounds returns the clamped integer bounding box of rect under m.
func deviceBounds(m Affine, rect RectF, w, h int) (minX, minY, maxX, maxY int) {
	fMinX, fMinY := math.Inf(1), math.Inf(1)
	fMaxX, fMaxY := math.Inf(-1), math.Inf(-1)

	corners := [4][2]float64{
		{rect.X, rect.Y},
		{rect.X + rect.W, rect.Y},
		{rect.X, rect.Y + rect.H},
		{rect.X + rect.W, rect.Y + rect.H},
	}
	for _, c := range corners {
		x, y := m.Apply(c[0], c[1])
		fMinX = math.Min(fMinX, x)
		fMinY = math.Min(fMinY, y)
		fMaxX = math.Max(fMaxX, x)
		fMaxY = math.Max(fMaxY, y)
	}

	minX = clampInt(int(math.Floor(fMinX)), 0, w)
	minY = clampInt(int(math.Floor(fMinY)), 0, h)
	maxX = clampInt(int(math.Ceil(fMaxX)), 0, w)
	maxY = clampInt(int(math.Ceil(fMaxY)), 0, h)
	return minX, minY, maxX, maxY
}

// FillRect fills an axis-aligned rectangle with a solid color, blending
// source-over. Used for the subtitle background bar.
func FillRect(dst Target, rect RectF, r, g, b, a uint8) {
	if a == 0 {
		return
	}
	minX := clampInt(int(math.Floor(rect.X)), 0, dst.Width)
	minY := clampInt(int(math.Floor(rect.Y)), 0, dst.Height)
	maxX := clampInt(int(math.Ceil(rect.X+rect.W)), 0, dst.Width)
	maxY := clampInt(int(math.Ceil(rect.Y+rect.H)), 0, dst.Height)

	for y := minY; y < maxY; y++ {
		row := y * dst.Width * 4
		for x := minX; x < maxX; x++ {
			i := row + x*4
			dst.Pix[i+0], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = blendOver(
				r, g, b, a,
				dst.Pix[i+0], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3],
			)
		}
	}
}

// blendOver is the Porter-Duff source-over blend on non-premultiplied bytes.
func blendOver(sr, sg, sb, sa, dr, dg, db, da uint8) (r, g, b, a uint8) {
	if sa == 255 {
		return sr, sg, sb, 255
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	sAlpha := float64(sa) / 255
	dAlpha := float64(da) / 255
	outA := sAlpha + dAlpha*(1-sAlpha)
	if outA == 0 {
		return 0, 0, 0, 0
	}

	r = uint8((float64(sr)*sAlpha + float64(dr)*dAlpha*(1-sAlpha)) / outA)
	g = uint8((float64(sg)*sAlpha + float64(dg)*dAlpha*(1-sAlpha)) / outA)
	b = uint8((float64(sb)*sAlpha + float64(db)*dAlpha*(1-sAlpha)) / outA)
	a = uint8(outA*255 + 0.5)
	return r, g, b, a
}
