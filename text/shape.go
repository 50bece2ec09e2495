package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"
)

// shaperPool pools HarfbuzzShaper instances. A shaper holds mutable
// buffers and is not safe for concurrent use, but reuse across calls
// avoids reallocating them.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// Advance returns the shaped advance width of s at the given pixel
// size. Shaping goes through HarfBuzz, so kerning pairs and ligatures
// are reflected in the measurement.
func (f *Font) Advance(s string, sizePx float64) float64 {
	if s == "" {
		return 0
	}

	runes := []rune(s)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: baseDirection(s),
		Face:      gtfont.NewFace(f.hb),
		Size:      floatToFixed(sizePx),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	shaper := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := shaper.Shape(input)
	shaperPool.Put(shaper)

	var width float64
	for _, g := range output.Glyphs {
		width += fixedToFloat(g.Advance)
	}
	if width < 0 {
		width = -width
	}
	return width
}

// baseDirection resolves the paragraph base direction of s with the
// Unicode bidi algorithm.
func baseDirection(s string) di.Direction {
	var p bidi.Paragraph
	p.SetString(s)
	if _, err := p.Order(); err != nil {
		return di.DirectionLTR
	}
	if p.IsLeftToRight() {
		return di.DirectionLTR
	}
	return di.DirectionRTL
}

// detectScript returns the script of the first non-space rune, the
// same heuristic single-run shapers use. Mixed-script text should be
// split into runs by the caller.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// visualOrder returns s reordered for display: bidi runs concatenated
// in visual order, with right-to-left runs reversed rune-wise. For pure
// LTR text this is the identity.
func visualOrder(s string) string {
	var p bidi.Paragraph
	p.SetString(s)
	ordering, err := p.Order()
	if err != nil {
		return s
	}

	n := ordering.NumRuns()
	if n == 0 {
		return s
	}
	if n <= 1 && p.IsLeftToRight() {
		return s
	}

	out := make([]rune, 0, len(s))
	for i := 0; i < n; i++ {
		run := ordering.Run(i)
		runes := []rune(run.String())
		if run.Direction() == bidi.RightToLeft {
			for l, r := 0, len(runes)-1; l < r; l, r = l+1, r-1 {
				runes[l], runes[r] = runes[r], runes[l]
			}
		}
		out = append(out, runes...)
	}
	return string(out)
}
