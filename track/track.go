// Package track converts motion-tracking results into keyframe tracks
// that drive layer transforms over time.
//
// The tracking worker itself is an external collaborator; this package
// only consumes its terminal result.
package track

import (
	"github.com/cliplab/vframe"
)

// Point is one tracked sample. X and Y are normalized to the source
// video frame ([0, 1]); Scale is relative to the tracked region's
// initial size; Rotation is in degrees.
type Point struct {
	TimeMs   int64   `json:"time_ms"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
}

// ROI is the region of interest the tracker was initialized with, in
// normalized source coordinates.
type ROI struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Result is the tracking worker's terminal output.
type Result struct {
	Mode         string  `json:"mode"`
	Points       []Point `json:"points"`
	ROI          ROI     `json:"roi"`
	SourceWidth  int     `json:"source_video_width"`
	SourceHeight int     `json:"source_video_height"`
}

// Keyframe is one sample of an animated value.
type Keyframe struct {
	TimeMs int64   `json:"time_ms"`
	Value  float64 `json:"value"`
}

// Tracks are the per-property keyframe sequences derived from a
// tracking result. Position values are in destination pixels; scale
// values are multipliers; rotation is in degrees.
type Tracks struct {
	PositionX []Keyframe
	PositionY []Keyframe
	ScaleX    []Keyframe
	ScaleY    []Keyframe
	Rotation  []Keyframe
}

// Convert turns a tracking result into keyframe tracks. Normalized
// point coordinates are scaled into source-video pixels; each tracked
// property becomes its own ordered keyframe sequence.
func Convert(r Result) Tracks {
	t := Tracks{
		PositionX: make([]Keyframe, 0, len(r.Points)),
		PositionY: make([]Keyframe, 0, len(r.Points)),
		ScaleX:    make([]Keyframe, 0, len(r.Points)),
		ScaleY:    make([]Keyframe, 0, len(r.Points)),
		Rotation:  make([]Keyframe, 0, len(r.Points)),
	}
	w := float64(r.SourceWidth)
	h := float64(r.SourceHeight)

	for _, p := range r.Points {
		t.PositionX = append(t.PositionX, Keyframe{TimeMs: p.TimeMs, Value: p.X * w})
		t.PositionY = append(t.PositionY, Keyframe{TimeMs: p.TimeMs, Value: p.Y * h})
		t.ScaleX = append(t.ScaleX, Keyframe{TimeMs: p.TimeMs, Value: p.Scale})
		t.ScaleY = append(t.ScaleY, Keyframe{TimeMs: p.TimeMs, Value: p.Scale})
		t.Rotation = append(t.Rotation, Keyframe{TimeMs: p.TimeMs, Value: p.Rotation})
	}
	return t
}

// TransformAt evaluates the tracks at timeMs and applies them to a base
// transform: tracked position becomes the rect center, scale multiplies
// the base size, rotation replaces the base rotation. Border styling is
// carried through unchanged.
func (t Tracks) TransformAt(timeMs int64, base vframe.Transform) vframe.Transform {
	cx := valueAt(t.PositionX, timeMs, base.X+base.Width/2)
	cy := valueAt(t.PositionY, timeMs, base.Y+base.Height/2)
	sx := valueAt(t.ScaleX, timeMs, 1)
	sy := valueAt(t.ScaleY, timeMs, 1)
	rot := valueAt(t.Rotation, timeMs, base.RotationDeg)

	w := base.Width * sx
	h := base.Height * sy

	return vframe.Transform{
		X:           cx - w/2,
		Y:           cy - h/2,
		Width:       w,
		Height:      h,
		RotationDeg: rot,
		Border:      base.Border,
	}
}

// valueAt linearly interpolates an ordered keyframe sequence at timeMs.
// Before the first keyframe the first value holds; after the last, the
// last. An empty sequence yields the fallback.
func valueAt(frames []Keyframe, timeMs int64, fallback float64) float64 {
	if len(frames) == 0 {
		return fallback
	}
	if timeMs <= frames[0].TimeMs {
		return frames[0].Value
	}
	last := frames[len(frames)-1]
	if timeMs >= last.TimeMs {
		return last.Value
	}

	for i := 1; i < len(frames); i++ {
		if timeMs > frames[i].TimeMs {
			continue
		}
		a, b := frames[i-1], frames[i]
		span := b.TimeMs - a.TimeMs
		if span <= 0 {
			return b.Value
		}
		f := float64(timeMs-a.TimeMs) / float64(span)
		return a.Value + (b.Value-a.Value)*f
	}
	return last.Value
}
