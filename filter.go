package vframe

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/cliplab/vframe/cache"
	"github.com/cliplab/vframe/internal/filter"
)

// parsedFilter is a filter string compiled into a single color matrix
// plus an optional gaussian blur radius in pixels.
type parsedFilter struct {
	matrix   filter.Matrix
	blur     float64
	identity bool
}

// filterCache memoizes compiled filter strings. The same few strings
// repeat every frame, so compiling is off the steady-state path.
var filterCache = cache.NewSharded[string, parsedFilter](128, cache.StringHasher)

// compileFilter parses a CSS-style filter string into a color matrix,
// consulting the cache first.
//
// Supported functions: brightness, contrast, saturate, grayscale, sepia,
// invert, opacity (number or percentage argument), hue-rotate (deg, rad,
// grad or turn argument) and blur (px argument). Unknown functions are
// logged and skipped; the rest of the chain still applies.
func compileFilter(s string) parsedFilter {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return parsedFilter{matrix: filter.Identity(), identity: true}
	}
	return filterCache.GetOrCreate(s, func() parsedFilter {
		return parseFilterString(s)
	})
}

func parseFilterString(s string) parsedFilter {
	m := filter.Identity()
	blur := 0.0

	rest := s
	for {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			break
		}

		open := strings.IndexByte(rest, '(')
		if open < 0 {
			Logger().Warn("malformed filter string", slog.String("filter", s))
			break
		}
		closing := strings.IndexByte(rest[open:], ')')
		if closing < 0 {
			Logger().Warn("malformed filter string", slog.String("filter", s))
			break
		}
		closing += open

		name := strings.ToLower(strings.TrimSpace(rest[:open]))
		arg := strings.TrimSpace(rest[open+1 : closing])
		rest = rest[closing+1:]

		if name == "blur" {
			if r, ok := parseLength(arg); ok {
				// Stacked gaussians compose in quadrature.
				blur = math.Sqrt(blur*blur + r*r)
			} else {
				Logger().Warn("bad blur argument",
					slog.String("arg", arg),
					slog.String("filter", s))
			}
			continue
		}

		fm, ok := filterFunc(name, arg)
		if !ok {
			Logger().Warn("unsupported filter function",
				slog.String("function", name),
				slog.String("filter", s))
			continue
		}
		m = m.Mul(fm)
	}

	return parsedFilter{
		matrix:   m,
		blur:     blur,
		identity: m.IsIdentity() && blur == 0,
	}
}

// filterFunc builds the matrix for a single filter function.
func filterFunc(name, arg string) (filter.Matrix, bool) {
	switch name {
	case "brightness":
		if v, ok := parseAmount(arg); ok {
			return filter.Brightness(v), true
		}
	case "contrast":
		if v, ok := parseAmount(arg); ok {
			return filter.Contrast(v), true
		}
	case "saturate":
		if v, ok := parseAmount(arg); ok {
			return filter.Saturate(v), true
		}
	case "grayscale":
		if v, ok := parseAmount(arg); ok {
			return filter.Grayscale(v), true
		}
	case "sepia":
		if v, ok := parseAmount(arg); ok {
			return filter.Sepia(v), true
		}
	case "invert":
		if v, ok := parseAmount(arg); ok {
			return filter.Invert(v), true
		}
	case "opacity":
		if v, ok := parseAmount(arg); ok {
			return filter.Opacity(v), true
		}
	case "hue-rotate":
		if deg, ok := parseAngle(arg); ok {
			return filter.HueRotate(deg), true
		}
	}
	return filter.Matrix{}, false
}

// parseAmount parses a plain number or a percentage.
func parseAmount(arg string) (float32, bool) {
	scale := float64(1)
	if strings.HasSuffix(arg, "%") {
		arg = strings.TrimSuffix(arg, "%")
		scale = 0.01
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return float32(v * scale), true
}

// blurredFrame is a frame pre-rendered into a flat buffer with a
// gaussian blur applied. Sampling it costs the same as an ImageFrame.
type blurredFrame struct {
	pix  []uint8
	w, h int
}

func (f *blurredFrame) Width() int  { return f.w }
func (f *blurredFrame) Height() int { return f.h }

func (f *blurredFrame) RGBAAt(x, y int) (r, g, b, a uint8) {
	i := (y*f.w + x) * 4
	return f.pix[i], f.pix[i+1], f.pix[i+2], f.pix[i+3]
}

// blurFrame renders src into a buffer and blurs it in place. The blur
// stays inside the frame bounds, matching how a blurred video element
// clips to its box.
func blurFrame(src Frame, radius float64) Frame {
	w, h := src.Width(), src.Height()
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := src.RGBAAt(x, y)
			i := (y*w + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, a
		}
	}
	filter.Blur(pix, w, h, radius)
	return &blurredFrame{pix: pix, w: w, h: h}
}

// parseLength parses a pixel length. A bare number is taken as pixels.
func parseLength(arg string) (float64, bool) {
	arg = strings.TrimSpace(strings.TrimSuffix(arg, "px"))
	v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// parseAngle parses a CSS angle into degrees. A bare number is taken as
// degrees, matching browser behavior for hue-rotate.
func parseAngle(arg string) (float32, bool) {
	scale := float64(1)
	switch {
	case strings.HasSuffix(arg, "deg"):
		arg = strings.TrimSuffix(arg, "deg")
	case strings.HasSuffix(arg, "grad"):
		arg = strings.TrimSuffix(arg, "grad")
		scale = 360.0 / 400.0
	case strings.HasSuffix(arg, "rad"):
		arg = strings.TrimSuffix(arg, "rad")
		scale = 180.0 / 3.141592653589793
	case strings.HasSuffix(arg, "turn"):
		arg = strings.TrimSuffix(arg, "turn")
		scale = 360
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return 0, false
	}
	return float32(v * scale), true
}
