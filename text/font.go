package text

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Font is a parsed font ready for shaping and drawing. The same data is
// parsed once for each concern: a typesetting font for HarfBuzz shaping
// and an sfnt font for x/image rasterization.
//
// Font is safe for concurrent use; per-size faces are created per call
// since they are not.
type Font struct {
	sf *sfnt.Font
	hb *gtfont.Font

	mu  sync.Mutex
	buf sfnt.Buffer
}

// Parse parses TTF or OTF font data.
func Parse(data []byte) (*Font, error) {
	sf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	hbFace, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font for shaping: %w", err)
	}
	return &Font{sf: sf, hb: hbFace.Font}, nil
}

// Load reads and parses a font file.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path) //nolint:gosec // font path is caller-provided
	if err != nil {
		return nil, fmt.Errorf("text: load font: %w", err)
	}
	return Parse(data)
}

// NewFace creates a rasterization face at the given pixel size.
// The caller owns the face and should close it after drawing.
func (f *Font) NewFace(sizePx float64) (font.Face, error) {
	face, err := opentype.NewFace(f.sf, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: create face: %w", err)
	}
	return face, nil
}

// Metrics holds the vertical metrics of the font at one pixel size.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the em
	// box, in pixels.
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the
	// em box, in pixels (positive).
	Descent float64
}

// Metrics returns the font's vertical metrics at the given pixel size.
func (f *Font) Metrics(sizePx float64) Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()

	ppem := fixed.Int26_6(sizePx * 64)
	m, err := f.sf.Metrics(&f.buf, ppem, font.HintingNone)
	if err != nil {
		// Em-box fallback keeps layout defined for broken metric tables.
		return Metrics{Ascent: sizePx * 0.8, Descent: sizePx * 0.2}
	}
	return Metrics{
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
	}
}

// fixedToFloat converts a 26.6 fixed-point value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// floatToFixed converts a float64 to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
