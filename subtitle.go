package vframe

import (
	"image/color"
	"log/slog"
	"math"

	"github.com/cliplab/vframe/internal/imaging"
	"github.com/cliplab/vframe/text"
)

// SubtitleOverlay is what gets burned into one frame: a primary line
// and an optional translated line beneath it.
type SubtitleOverlay struct {
	Text           string
	TranslatedText string
}

// Cue is one timed subtitle entry as stored in project files.
type Cue struct {
	StartMs        int64  `json:"start_ms"`
	EndMs          int64  `json:"end_ms"`
	Text           string `json:"text"`
	TranslatedText string `json:"translated_text,omitempty"`
}

// CueAt returns the overlay active at timeMs, or false when no cue
// covers that instant. Cues are expected sorted by start time; the
// first match wins.
func CueAt(cues []Cue, timeMs int64) (SubtitleOverlay, bool) {
	for i := range cues {
		c := &cues[i]
		if timeMs < c.StartMs {
			break
		}
		if timeMs < c.EndMs {
			return SubtitleOverlay{
				Text:           c.Text,
				TranslatedText: c.TranslatedText,
			}, true
		}
	}
	return SubtitleOverlay{}, false
}

// SubtitleFont is the font used for burn-in, wrapped so the compositor
// API does not expose the text package directly.
type SubtitleFont struct {
	font *text.Font
}

// NewSubtitleFont wraps a parsed font.
func NewSubtitleFont(f *text.Font) *SubtitleFont {
	return &SubtitleFont{font: f}
}

// LoadSubtitleFont reads and parses a font file.
func LoadSubtitleFont(path string) (*SubtitleFont, error) {
	f, err := text.Load(path)
	if err != nil {
		return nil, err
	}
	return &SubtitleFont{font: f}, nil
}

// Subtitle layout constants, all relative to the surface height.
const (
	subtitleFontScale      = 0.045
	subtitleSecondaryScale = 0.85
	subtitleLineHeightMul  = 1.4
	subtitlePaddingScale   = 0.015
	subtitleBottomScale    = 0.06
)

// Subtitle paint styles.
var (
	subtitleBarColor    = RGBA{0, 0, 0, 0.6}
	subtitleShadowColor = color.NRGBA{A: 204} // rgba(0,0,0,0.8)
	subtitleTextColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// RenderSubtitle burns the overlay into the bottom of the surface: a
// full-width translucent bar, then each line centered and drawn twice,
// a one-pixel black shadow under solid white.
//
// Without a configured font the bar is still painted but no glyphs are
// drawn, so layout stays observable while fonts load.
func (c *Compositor) RenderSubtitle(overlay SubtitleOverlay) {
	if overlay.Text == "" && overlay.TranslatedText == "" {
		return
	}

	h := float64(c.surface.height)
	w := float64(c.surface.width)

	baseFontSize := math.Round(h * subtitleFontScale)
	secondaryFontSize := baseFontSize * subtitleSecondaryScale
	lineHeight := subtitleLineHeightMul * baseFontSize
	padding := math.Round(h * subtitlePaddingScale)
	bottomMargin := math.Round(h * subtitleBottomScale)

	type line struct {
		text string
		size float64
	}
	lines := []line{{overlay.Text, baseFontSize}}
	if overlay.TranslatedText != "" {
		lines = append(lines, line{overlay.TranslatedText, secondaryFontSize})
	}

	barH := float64(len(lines))*lineHeight + 2*padding
	barY := h - bottomMargin - barH

	target := imaging.Target{
		Pix:    c.surface.data,
		Width:  c.surface.width,
		Height: c.surface.height,
	}
	br, bg, bb, ba := subtitleBarColor.bytes()
	imaging.FillRect(target, imaging.RectF{X: 0, Y: barY, W: w, H: barH}, br, bg, bb, ba)

	if c.font == nil || c.font.font == nil {
		return
	}
	f := c.font.font

	for i, ln := range lines {
		if ln.text == "" {
			continue
		}

		width := f.Advance(ln.text, ln.size)
		x := (w - width) / 2

		// Middle baseline: the line's vertical center sits midway
		// between ascent and descent.
		m := f.Metrics(ln.size)
		centerY := barY + padding + lineHeight*float64(i) + lineHeight/2
		baseline := centerY + (m.Ascent-m.Descent)/2

		if err := f.Draw(c.surface, ln.text, ln.size, x+1, baseline+1, subtitleShadowColor); err != nil {
			Logger().Warn("subtitle shadow draw failed", slog.Any("error", err))
			continue
		}
		if err := f.Draw(c.surface, ln.text, ln.size, x, baseline, subtitleTextColor); err != nil {
			Logger().Warn("subtitle draw failed", slog.Any("error", err))
		}
	}
}
