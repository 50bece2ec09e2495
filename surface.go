package vframe

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Surface is the destination raster for compositing.
// Pixels are stored as non-premultiplied RGBA, 4 bytes per pixel.
//
// A Surface is always fully opaque after Clear: the compositor paints it
// black before every composite, so layers with partial opacity or partial
// coverage reveal black rather than transparency.
type Surface struct {
	width  int
	height int
	data   []uint8
}

// NewSurface creates a surface with the given dimensions.
// Returns ErrInvalidDimensions if width or height is not positive;
// callers must treat this as fatal (there is no deferred allocation).
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Surface{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Data returns the raw pixel data (RGBA, row-major).
func (s *Surface) Data() []uint8 { return s.data }

// Fill sets every pixel to the given color.
func (s *Surface) Fill(c RGBA) {
	r, g, b, a := c.bytes()
	for i := 0; i < len(s.data); i += 4 {
		s.data[i+0] = r
		s.data[i+1] = g
		s.data[i+2] = b
		s.data[i+3] = a
	}
}

// Clear paints the entire surface opaque black, the baseline every
// composite starts from.
func (s *Surface) Clear() {
	s.Fill(Black)
}

// SetPixel sets a single pixel. Out-of-bounds coordinates are ignored.
func (s *Surface) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := (y*s.width + x) * 4
	s.data[i+0], s.data[i+1], s.data[i+2], s.data[i+3] = c.bytes()
}

// PixelAt returns the color of a single pixel.
// Out-of-bounds coordinates return the zero color.
func (s *Surface) PixelAt(x, y int) RGBA {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return RGBA{}
	}
	i := (y*s.width + x) * 4
	return RGBA{
		R: float64(s.data[i+0]) / 255,
		G: float64(s.data[i+1]) / 255,
		B: float64(s.data[i+2]) / 255,
		A: float64(s.data[i+3]) / 255,
	}
}

// RGBAAt returns the raw 8-bit components of a single pixel.
// Out-of-bounds coordinates return zeros. Surface implements Frame, so a
// composited surface can itself be used as a layer source.
func (s *Surface) RGBAAt(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, 0, 0, 0
	}
	i := (y*s.width + x) * 4
	return s.data[i+0], s.data[i+1], s.data[i+2], s.data[i+3]
}

// ToImage copies the surface into a new image.NRGBA.
func (s *Surface) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, s.data)
	return img
}

// EncodePNG writes the surface as PNG to w. Useful for thumbnails and
// golden-image debugging; video encoding is handled elsewhere.
func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.ToImage())
}

// SavePNG saves the surface to a PNG file.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return s.EncodePNG(f)
}

// Set stores a single pixel, converting through the NRGBA color model.
// Together with At and Bounds this makes Surface a draw.Image, which is
// how the text drawer rasterizes glyphs onto it.
func (s *Surface) Set(x, y int, c color.Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	i := (y*s.width + x) * 4
	s.data[i+0] = n.R
	s.data[i+1] = n.G
	s.data[i+2] = n.B
	s.data[i+3] = n.A
}

// At implements the image.Image interface.
func (s *Surface) At(x, y int) color.Color {
	return s.PixelAt(x, y).Color()
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() color.Model {
	return color.NRGBAModel
}
