package vframe

import (
	"log/slog"
	"math"

	"github.com/cliplab/vframe/internal/imaging"
)

// Compositor draws ordered layer lists onto a destination surface, one
// composite per displayed frame. It is synchronous and single-threaded:
// Composite and RenderSubtitle run on the presentation thread inside the
// per-frame budget and never block on I/O.
//
// Draw style is passed explicitly per draw call; no alpha or filter
// state survives a composite, so whatever paints the surface next sees
// it untouched.
type Compositor struct {
	surface *Surface
	interp  Interpolation
	grading *LUTSet
	font    *SubtitleFont
}

// NewCompositor creates a compositor bound to the destination surface.
// A nil surface is fatal: construction fails with ErrNilSurface and no
// partially initialized compositor is produced.
func NewCompositor(surface *Surface, opts ...Option) (*Compositor, error) {
	if surface == nil {
		return nil, ErrNilSurface
	}
	c := &Compositor{
		surface: surface,
		interp:  Bilinear,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Surface returns the destination surface.
func (c *Compositor) Surface() *Surface { return c.surface }

// SetGrading replaces the color grading tables applied after each
// composite. Pass nil to disable grading. The previous set is never
// mutated, so readers holding it are unaffected.
func (c *Compositor) SetGrading(set *LUTSet) {
	c.grading = set
}

// Clear paints the entire surface opaque black, the baseline every
// composite starts from.
func (c *Compositor) Clear() {
	c.surface.Clear()
}

// Composite clears the surface and draws the layers bottom to top,
// then applies the active grading tables. Slice index is z-order.
func (c *Compositor) Composite(layers []Layer) {
	c.Clear()
	for i := range layers {
		c.drawLayer(&layers[i])
	}
	c.grading.Apply(c.surface)
	c.logComposite(len(layers))
}

func (c *Compositor) drawLayer(layer *Layer) {
	frame := layer.Frame
	if frame == nil || frame.Width() <= 0 || frame.Height() <= 0 {
		// Media not yet decoded; expected transient state, not an error.
		Logger().Debug("skipping layer with no intrinsic size")
		return
	}

	opacity := clamp01(layer.Opacity)
	if opacity == 0 {
		return
	}

	pf := compileFilter(layer.Filter)
	var colorFn imaging.ColorFunc
	if !pf.matrix.IsIdentity() {
		colorFn = pf.matrix.Apply
	}
	if pf.blur > 0 {
		frame = blurFrame(frame, pf.blur)
	}

	target := imaging.Target{
		Pix:    c.surface.data,
		Width:  c.surface.width,
		Height: c.surface.height,
	}

	t := layer.Transform
	if t == nil {
		rect, ok := c.aspectFit(frame)
		if !ok {
			return
		}
		imaging.Draw(target, frame, imaging.DrawParams{
			Rect:    rect,
			Interp:  c.interp,
			Opacity: opacity,
			Color:   colorFn,
		})
		return
	}

	rect := imaging.RectF{X: t.X, Y: t.Y, W: t.Width, H: t.Height}

	// Rotation is about the transform rectangle's own center.
	var tf *imaging.Affine
	if t.RotationDeg != 0 {
		a := imaging.RotateAt(t.RotationDeg*math.Pi/180,
			t.X+t.Width/2, t.Y+t.Height/2)
		tf = &a
	}

	// The border sprite carries both the drop shadow and the stroked
	// ring; drawing it as a separate source means no shadow state can
	// bleed onto the frame draw that follows.
	if b := t.Border; b != nil && b.WidthPx > 0 {
		sprite := renderBorder(
			int(math.Round(t.Width)), int(math.Round(t.Height)), *b)
		pad := float64(sprite.pad)
		imaging.Draw(target, sprite, imaging.DrawParams{
			Rect: imaging.RectF{
				X: t.X - pad,
				Y: t.Y - pad,
				W: t.Width + 2*pad,
				H: t.Height + 2*pad,
			},
			Transform: tf,
			Interp:    c.interp,
			Opacity:   opacity,
			Color:     colorFn,
		})
	}

	imaging.Draw(target, frame, imaging.DrawParams{
		Rect:      rect,
		Transform: tf,
		Interp:    c.interp,
		Opacity:   opacity,
		Color:     colorFn,
	})
}

// aspectFit computes the centered letterbox rectangle that fits the
// frame inside the full surface while preserving its aspect ratio.
func (c *Compositor) aspectFit(frame Frame) (imaging.RectF, bool) {
	srcW := float64(frame.Width())
	srcH := float64(frame.Height())
	dstW := float64(c.surface.width)
	dstH := float64(c.surface.height)
	if srcW <= 0 || srcH <= 0 {
		return imaging.RectF{}, false
	}

	srcRatio := srcW / srcH
	dstRatio := dstW / dstH

	var fitW, fitH float64
	if srcRatio > dstRatio {
		fitW = dstW
		fitH = dstW / srcRatio
	} else {
		fitH = dstH
		fitW = dstH * srcRatio
	}

	return imaging.RectF{
		X: (dstW - fitW) / 2,
		Y: (dstH - fitH) / 2,
		W: fitW,
		H: fitH,
	}, true
}

// logComposite is a debug hook for frame pacing investigations.
func (c *Compositor) logComposite(layers int) {
	Logger().Debug("composite",
		slog.Int("layers", layers),
		slog.Int("width", c.surface.width),
		slog.Int("height", c.surface.height))
}
