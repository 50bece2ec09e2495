package vframe

import (
	"image"

	"github.com/cliplab/vframe/internal/imaging"
)

// Frame is the drawable source handle a layer references: an intrinsic
// pixel size plus per-pixel access. The capability set is fixed at
// construction, never re-probed per draw. A frame reporting zero width
// or height is treated as not yet decoded and skipped by the compositor.
//
// Surface implements Frame, so a composited surface can feed another
// composite (nested picture-in-picture).
type Frame = imaging.Source

// ImageFrame adapts a standard library image.Image into a Frame.
// Pixels are converted to straight-alpha RGBA once at construction;
// sampling during composite is a plain slice read.
type ImageFrame struct {
	width  int
	height int
	pix    []uint8
}

// NewImageFrame resolves img into a frame. A nil image yields a frame
// with zero intrinsic size, which the compositor skips.
func NewImageFrame(img image.Image) *ImageFrame {
	if img == nil {
		return &ImageFrame{}
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	f := &ImageFrame{
		width:  w,
		height: h,
		pix:    make([]uint8, w*h*4),
	}

	// Fast path for the common decode format.
	if src, ok := img.(*image.NRGBA); ok && src.Stride == w*4 {
		copy(f.pix, src.Pix)
		return f
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nrgba.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	copy(f.pix, nrgba.Pix)
	return f
}

// Width returns the intrinsic width in pixels.
func (f *ImageFrame) Width() int { return f.width }

// Height returns the intrinsic height in pixels.
func (f *ImageFrame) Height() int { return f.height }

// RGBAAt returns the straight-alpha components of the pixel at (x, y).
func (f *ImageFrame) RGBAAt(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0, 0, 0, 0
	}
	i := (y*f.width + x) * 4
	return f.pix[i+0], f.pix[i+1], f.pix[i+2], f.pix[i+3]
}

// SolidFrame is a fixed-size single-color frame. Used by tests and as a
// placeholder source while media is loading.
type SolidFrame struct {
	W, H  int
	Color RGBA
}

// Width returns the intrinsic width in pixels.
func (f SolidFrame) Width() int { return f.W }

// Height returns the intrinsic height in pixels.
func (f SolidFrame) Height() int { return f.H }

// RGBAAt returns the frame color for any in-bounds pixel.
func (f SolidFrame) RGBAAt(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return 0, 0, 0, 0
	}
	return f.Color.bytes()
}
