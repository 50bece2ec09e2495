package text

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Draw renders s onto dst with (x, y) as the baseline origin of the
// first glyph. Text is reordered into visual order first, so
// right-to-left lines display correctly.
func (f *Font) Draw(dst draw.Image, s string, sizePx, x, y float64, col color.Color) error {
	if s == "" {
		return nil
	}

	face, err := f.NewFace(sizePx)
	if err != nil {
		return err
	}
	defer func() {
		_ = face.Close()
	}()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: floatToFixed(x),
			Y: floatToFixed(y),
		},
	}
	d.DrawString(visualOrder(s))
	return nil
}
