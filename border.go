package vframe

import (
	"fmt"
	"math"

	"github.com/cliplab/vframe/cache"
	"github.com/cliplab/vframe/internal/filter"
)

// Fixed drop shadow style for picture-in-picture borders.
const (
	shadowOffsetX = 0
	shadowOffsetY = 2
	shadowAlpha   = 0.5
)

// borderSprite is a pre-rendered border ring plus drop shadow for one
// transform rectangle size. The sprite is drawn through the same affine
// path as the frame itself, so it rotates and scales with the layer.
type borderSprite struct {
	pix    []uint8
	width  int
	height int

	// pad is the margin around the content rect inside the sprite:
	// border width plus the shadow's blur extent and offset.
	pad int
}

func (s *borderSprite) Width() int  { return s.width }
func (s *borderSprite) Height() int { return s.height }

func (s *borderSprite) RGBAAt(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, 0, 0, 0
	}
	i := (y*s.width + x) * 4
	return s.pix[i+0], s.pix[i+1], s.pix[i+2], s.pix[i+3]
}

// borderSprites memoizes rendered sprites. A picture-in-picture layer
// keeps the same rect size and border style for many frames, so the
// blur pass runs once, not per frame.
var borderSprites = cache.NewSharded[string, *borderSprite](32, cache.StringHasher)

// renderBorder returns the sprite for a content rect of w x h pixels
// with the given border style.
func renderBorder(w, h int, b Border) *borderSprite {
	br, bg, bb, ba := b.Color.bytes()
	key := fmt.Sprintf("%dx%d/%g/%g/%02x%02x%02x%02x",
		w, h, b.WidthPx, b.ShadowBlurPx, br, bg, bb, ba)

	return borderSprites.GetOrCreate(key, func() *borderSprite {
		return buildBorderSprite(w, h, b)
	})
}

func buildBorderSprite(w, h int, b Border) *borderSprite {
	bw := int(math.Round(b.WidthPx))
	if bw < 0 {
		bw = 0
	}

	margin := 0
	if b.ShadowBlurPx > 0 {
		margin = filter.KernelExtent(b.ShadowBlurPx) + shadowOffsetY
	}
	pad := bw + margin

	s := &borderSprite{
		width:  w + 2*pad,
		height: h + 2*pad,
		pad:    pad,
	}
	s.pix = make([]uint8, s.width*s.height*4)

	// Outer rect: content expanded by the border width on all sides.
	outerX := pad - bw
	outerY := pad - bw
	outerW := w + 2*bw
	outerH := h + 2*bw

	if b.ShadowBlurPx > 0 {
		s.drawShadow(outerX, outerY, outerW, outerH, b.ShadowBlurPx)
	}
	if bw > 0 {
		br, bg, bb, ba := b.Color.bytes()
		s.drawRing(outerX, outerY, outerW, outerH, bw, br, bg, bb, ba)
	}
	return s
}

// drawShadow rasterizes the blurred silhouette of the outer rect,
// offset by the fixed shadow offset, as half-transparent black.
func (s *borderSprite) drawShadow(x, y, w, h int, blur float64) {
	alpha := make([]float32, s.width*s.height)
	for yy := y + shadowOffsetY; yy < y+h+shadowOffsetY; yy++ {
		if yy < 0 || yy >= s.height {
			continue
		}
		row := yy * s.width
		for xx := x + shadowOffsetX; xx < x+w+shadowOffsetX; xx++ {
			if xx < 0 || xx >= s.width {
				continue
			}
			alpha[row+xx] = 1
		}
	}

	filter.BlurAlpha(alpha, s.width, s.height, blur)

	for i, a := range alpha {
		if a <= 0 {
			continue
		}
		if a > 1 {
			a = 1
		}
		p := i * 4
		// Straight alpha, color is pure black.
		s.pix[p+3] = uint8(a*shadowAlpha*255 + 0.5)
	}
}

// drawRing paints the border ring (outer rect minus content hole) over
// whatever is already in the sprite, blending source-over.
func (s *borderSprite) drawRing(x, y, w, h, bw int, r, g, b, a uint8) {
	innerX0, innerY0 := x+bw, y+bw
	innerX1, innerY1 := x+w-bw, y+h-bw

	for yy := y; yy < y+h; yy++ {
		if yy < 0 || yy >= s.height {
			continue
		}
		inYBand := yy >= innerY0 && yy < innerY1
		row := yy * s.width
		for xx := x; xx < x+w; xx++ {
			if xx < 0 || xx >= s.width {
				continue
			}
			if inYBand && xx >= innerX0 && xx < innerX1 {
				xx = innerX1 - 1 // skip the hole
				continue
			}
			blendPixel(s.pix, (row+xx)*4, r, g, b, a)
		}
	}
}

// blendPixel blends one straight-alpha source pixel over the buffer.
func blendPixel(pix []uint8, i int, sr, sg, sb, sa uint8) {
	if sa == 255 || pix[i+3] == 0 {
		pix[i+0], pix[i+1], pix[i+2], pix[i+3] = sr, sg, sb, sa
		return
	}
	if sa == 0 {
		return
	}
	sA := float64(sa) / 255
	dA := float64(pix[i+3]) / 255
	outA := sA + dA*(1-sA)
	pix[i+0] = uint8((float64(sr)*sA + float64(pix[i+0])*dA*(1-sA)) / outA)
	pix[i+1] = uint8((float64(sg)*sA + float64(pix[i+1])*dA*(1-sA)) / outA)
	pix[i+2] = uint8((float64(sb)*sA + float64(pix[i+2])*dA*(1-sA)) / outA)
	pix[i+3] = uint8(outA*255 + 0.5)
}
