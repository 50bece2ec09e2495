package vframe

import "image/color"

// RGBA is a color with float64 components in [0, 1].
// Unlike image/color.RGBA the components are not premultiplied.
type RGBA struct {
	R, G, B, A float64
}

// Common colors used by the compositor.
var (
	Black = RGBA{0, 0, 0, 1}
	White = RGBA{1, 1, 1, 1}
)

// NewRGBA creates a color from components in [0, 1].
func NewRGBA(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// FromColor converts a standard library color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return RGBA{}
	}
	// c.RGBA returns premultiplied 16-bit components.
	af := float64(a) / 0xffff
	return RGBA{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
		A: af,
	}
}

// Color converts to a standard library color.NRGBA.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: clamp255(c.R),
		G: clamp255(c.G),
		B: clamp255(c.B),
		A: clamp255(c.A),
	}
}

// bytes returns the color as 8-bit components.
func (c RGBA) bytes() (r, g, b, a uint8) {
	return clamp255(c.R), clamp255(c.G), clamp255(c.B), clamp255(c.A)
}

// clamp255 converts a [0, 1] float to a byte, clamping out-of-range input.
func clamp255(v float64) uint8 {
	s := int(v*255 + 0.5)
	if s < 0 {
		return 0
	}
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// clamp01 clamps v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
