package vframe

import "github.com/cliplab/vframe/internal/imaging"

// Interpolation selects the sampling quality used when layer frames are
// scaled into their destination rectangles.
type Interpolation = imaging.Interpolation

// Re-exported interpolation modes.
const (
	Nearest  = imaging.Nearest
	Bilinear = imaging.Bilinear
	Bicubic  = imaging.Bicubic
)

// Option configures a Compositor at construction.
type Option func(*Compositor)

// WithInterpolation sets the sampling mode for layer draws.
// The default is Bilinear.
func WithInterpolation(m Interpolation) Option {
	return func(c *Compositor) {
		c.interp = m
	}
}

// WithGrading sets the initial color grading tables. Equivalent to
// calling SetGrading after construction.
func WithGrading(set *LUTSet) Option {
	return func(c *Compositor) {
		c.grading = set
	}
}

// WithSubtitleFont sets the font used for subtitle burn-in. Without a
// font, subtitle rendering paints the background bar but no glyphs.
func WithSubtitleFont(f *SubtitleFont) Option {
	return func(c *Compositor) {
		c.font = f
	}
}
