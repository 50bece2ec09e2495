package track

import (
	"math"
	"testing"

	"github.com/cliplab/vframe"
)

func sampleResult() Result {
	return Result{
		Mode:         "point",
		SourceWidth:  1920,
		SourceHeight: 1080,
		ROI:          ROI{X: 0.4, Y: 0.4, Width: 0.2, Height: 0.2},
		Points: []Point{
			{TimeMs: 0, X: 0.25, Y: 0.5, Scale: 1, Rotation: 0},
			{TimeMs: 1000, X: 0.75, Y: 0.5, Scale: 2, Rotation: 90},
		},
	}
}

func TestConvert(t *testing.T) {
	tracks := Convert(sampleResult())

	if len(tracks.PositionX) != 2 || len(tracks.Rotation) != 2 {
		t.Fatalf("keyframe counts = %d/%d, want 2/2",
			len(tracks.PositionX), len(tracks.Rotation))
	}

	if got := tracks.PositionX[0].Value; got != 480 {
		t.Errorf("PositionX[0] = %g, want 480 (0.25 * 1920)", got)
	}
	if got := tracks.PositionY[0].Value; got != 540 {
		t.Errorf("PositionY[0] = %g, want 540 (0.5 * 1080)", got)
	}
	if got := tracks.ScaleX[1].Value; got != 2 {
		t.Errorf("ScaleX[1] = %g, want 2", got)
	}
	if got := tracks.Rotation[1].Value; got != 90 {
		t.Errorf("Rotation[1] = %g, want 90", got)
	}
}

func TestValueAt_Interpolation(t *testing.T) {
	frames := []Keyframe{
		{TimeMs: 0, Value: 0},
		{TimeMs: 1000, Value: 100},
	}

	tests := []struct {
		timeMs int64
		want   float64
	}{
		{-100, 0},  // before first keyframe holds
		{0, 0},     // exact first
		{250, 25},  // linear midpoints
		{500, 50},
		{1000, 100}, // exact last
		{2000, 100}, // after last holds
	}

	for _, tt := range tests {
		if got := valueAt(frames, tt.timeMs, -1); got != tt.want {
			t.Errorf("valueAt(%d) = %g, want %g", tt.timeMs, got, tt.want)
		}
	}
}

func TestValueAt_EmptyUsesFallback(t *testing.T) {
	if got := valueAt(nil, 500, 42); got != 42 {
		t.Errorf("valueAt(nil) = %g, want fallback 42", got)
	}
}

func TestValueAt_DuplicateTimes(t *testing.T) {
	frames := []Keyframe{
		{TimeMs: 0, Value: 0},
		{TimeMs: 500, Value: 10},
		{TimeMs: 500, Value: 20},
		{TimeMs: 1000, Value: 20},
	}
	// A zero-length span must not divide by zero.
	got := valueAt(frames, 500, -1)
	if got != 10 && got != 20 {
		t.Errorf("valueAt(500) = %g, want one of the coincident values", got)
	}
}

func TestTransformAt(t *testing.T) {
	tracks := Convert(sampleResult())
	base := vframe.Transform{X: 0, Y: 0, Width: 200, Height: 100}

	// Midway: center (960, 540), scale 1.5, rotation 45.
	tr := tracks.TransformAt(500, base)

	if math.Abs(tr.Width-300) > 1e-9 || math.Abs(tr.Height-150) > 1e-9 {
		t.Errorf("size = %gx%g, want 300x150", tr.Width, tr.Height)
	}
	if math.Abs(tr.X-(960-150)) > 1e-9 {
		t.Errorf("X = %g, want %g (tracked center minus half width)", tr.X, 960-150.0)
	}
	if math.Abs(tr.Y-(540-75)) > 1e-9 {
		t.Errorf("Y = %g, want %g", tr.Y, 540-75.0)
	}
	if math.Abs(tr.RotationDeg-45) > 1e-9 {
		t.Errorf("RotationDeg = %g, want 45", tr.RotationDeg)
	}
}

func TestTransformAt_NoTracksKeepsBase(t *testing.T) {
	base := vframe.Transform{X: 10, Y: 20, Width: 50, Height: 40, RotationDeg: 7}
	tr := Tracks{}.TransformAt(123, base)

	if tr != base {
		t.Errorf("empty tracks transform = %+v, want base unchanged", tr)
	}
}

func TestTransformAt_CarriesBorder(t *testing.T) {
	border := &vframe.Border{WidthPx: 2, Color: vframe.White}
	base := vframe.Transform{Width: 100, Height: 100, Border: border}

	tr := Convert(sampleResult()).TransformAt(0, base)
	if tr.Border != border {
		t.Error("border styling should carry through unchanged")
	}
}
