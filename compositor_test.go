package vframe

import (
	"errors"
	"testing"
)

func newTestSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := NewSurface(w, h)
	if err != nil {
		t.Fatalf("NewSurface(%d, %d): %v", w, h, err)
	}
	return s
}

func newTestCompositor(t *testing.T, w, h int, opts ...Option) *Compositor {
	t.Helper()
	c, err := NewCompositor(newTestSurface(t, w, h), opts...)
	if err != nil {
		t.Fatalf("NewCompositor: %v", err)
	}
	return c
}

func TestNewCompositor_NilSurface(t *testing.T) {
	c, err := NewCompositor(nil)
	if !errors.Is(err, ErrNilSurface) {
		t.Fatalf("err = %v, want ErrNilSurface", err)
	}
	if c != nil {
		t.Fatal("failed construction must not return a compositor")
	}
}

func TestNewSurface_InvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 10}, {0, 0}} {
		if _, err := NewSurface(dims[0], dims[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewSurface(%d, %d) err = %v, want ErrInvalidDimensions",
				dims[0], dims[1], err)
		}
	}
}

func TestComposite_EmptyLayersClearsBlack(t *testing.T) {
	c := newTestCompositor(t, 16, 16)
	c.Surface().Fill(White)

	c.Composite(nil)

	r, g, b, a := c.Surface().RGBAAt(8, 8)
	if r != 0 || g != 0 || b != 0 || a != 255 {
		t.Errorf("cleared pixel = (%d, %d, %d, %d), want opaque black", r, g, b, a)
	}
}

func TestComposite_AspectFitLetterbox(t *testing.T) {
	// 4:3 source into a 16:9 destination pillarboxes: fit height, center x.
	c := newTestCompositor(t, 1920, 1080)
	c.Composite([]Layer{{
		Frame:   SolidFrame{W: 640, H: 480, Color: White},
		Opacity: 1,
	}})

	s := c.Surface()

	// Inside the fitted rect (240, 0, 1440, 1080).
	for _, p := range [][2]int{{241, 1}, {960, 540}, {1678, 1078}} {
		if r, _, _, _ := s.RGBAAt(p[0], p[1]); r != 255 {
			t.Errorf("pixel (%d, %d) r = %d, want 255 (inside fit rect)", p[0], p[1], r)
		}
	}
	// Pillarbox bars stay black.
	for _, p := range [][2]int{{239, 540}, {0, 540}, {1681, 540}, {1919, 540}} {
		if r, _, _, _ := s.RGBAAt(p[0], p[1]); r != 0 {
			t.Errorf("pixel (%d, %d) r = %d, want 0 (pillarbox)", p[0], p[1], r)
		}
	}
}

func TestComposite_SkipsZeroSizeFrame(t *testing.T) {
	c := newTestCompositor(t, 8, 8)
	c.Composite([]Layer{
		{Frame: SolidFrame{W: 0, H: 0, Color: White}, Opacity: 1},
		{Frame: nil, Opacity: 1},
	})

	if r, _, _, _ := c.Surface().RGBAAt(4, 4); r != 0 {
		t.Errorf("zero-size layer drew pixels: r = %d", r)
	}
}

func TestComposite_ZOrder(t *testing.T) {
	c := newTestCompositor(t, 8, 8)
	red := RGBA{R: 1, A: 1}
	blue := RGBA{B: 1, A: 1}

	c.Composite([]Layer{
		{Frame: SolidFrame{W: 8, H: 8, Color: red}, Opacity: 1},
		{Frame: SolidFrame{W: 8, H: 8, Color: blue}, Opacity: 1},
	})

	r, _, b, _ := c.Surface().RGBAAt(4, 4)
	if r != 0 || b != 255 {
		t.Errorf("pixel = (r=%d, b=%d), want the later layer fully on top", r, b)
	}
}

func TestComposite_HalfOpacityOverBlack(t *testing.T) {
	c := newTestCompositor(t, 8, 8)
	c.Composite([]Layer{{
		Frame:   SolidFrame{W: 8, H: 8, Color: White},
		Opacity: 0.5,
	}})

	r, g, b, a := c.Surface().RGBAAt(4, 4)
	for name, v := range map[string]uint8{"r": r, "g": g, "b": b} {
		if v < 125 || v > 129 {
			t.Errorf("%s = %d, want ~127 (half intensity over black)", name, v)
		}
	}
	if a != 255 {
		t.Errorf("a = %d, destination must stay opaque", a)
	}
}

func TestComposite_OpacityZeroDrawsNothing(t *testing.T) {
	c := newTestCompositor(t, 8, 8)
	c.Composite([]Layer{{
		Frame:   SolidFrame{W: 8, H: 8, Color: White},
		Opacity: 0,
	}})
	if r, _, _, _ := c.Surface().RGBAAt(4, 4); r != 0 {
		t.Errorf("r = %d, opacity 0 must not draw", r)
	}
}

func TestComposite_TransformRect(t *testing.T) {
	c := newTestCompositor(t, 16, 16)
	c.Composite([]Layer{{
		Frame:   SolidFrame{W: 4, H: 4, Color: White},
		Opacity: 1,
		Transform: &Transform{
			X: 4, Y: 4, Width: 8, Height: 8,
		},
	}})

	s := c.Surface()
	if r, _, _, _ := s.RGBAAt(8, 8); r != 255 {
		t.Errorf("inside transform rect: r = %d, want 255", r)
	}
	if r, _, _, _ := s.RGBAAt(2, 2); r != 0 {
		t.Errorf("outside transform rect: r = %d, want 0", r)
	}
	if r, _, _, _ := s.RGBAAt(13, 13); r != 0 {
		t.Errorf("outside transform rect: r = %d, want 0", r)
	}
}

func TestComposite_RotationAboutCenter(t *testing.T) {
	// A wide thin bar rotated 90 degrees becomes a tall thin bar through
	// the same center.
	c := newTestCompositor(t, 41, 41)
	c.Composite([]Layer{{
		Frame:   SolidFrame{W: 30, H: 4, Color: White},
		Opacity: 1,
		Transform: &Transform{
			X: 5, Y: 18, Width: 30, Height: 4, RotationDeg: 90,
		},
	}})

	s := c.Surface()
	if r, _, _, _ := s.RGBAAt(20, 20); r != 255 {
		t.Errorf("center r = %d, want 255 (rotation preserves center)", r)
	}
	if r, _, _, _ := s.RGBAAt(20, 7); r != 255 {
		t.Errorf("above center r = %d, want 255 (bar now vertical)", r)
	}
	if r, _, _, _ := s.RGBAAt(7, 20); r != 0 {
		t.Errorf("left of center r = %d, want 0 (bar no longer horizontal)", r)
	}
}

func TestComposite_BorderRing(t *testing.T) {
	c := newTestCompositor(t, 40, 40)
	c.Composite([]Layer{{
		Frame:   SolidFrame{W: 10, H: 10, Color: RGBA{B: 1, A: 1}},
		Opacity: 1,
		Transform: &Transform{
			X: 10, Y: 10, Width: 20, Height: 20,
			Border: &Border{WidthPx: 3, Color: RGBA{R: 1, A: 1}},
		},
	}})

	s := c.Surface()
	// Content pixel.
	if _, _, b, _ := s.RGBAAt(20, 20); b != 255 {
		t.Errorf("content b = %d, want 255", b)
	}
	// Ring pixel just outside the content rect.
	if r, _, b, _ := s.RGBAAt(8, 20); r != 255 || b != 0 {
		t.Errorf("ring pixel = (r=%d, b=%d), want border red", r, b)
	}
	// Well outside the ring.
	if r, _, _, _ := s.RGBAAt(2, 2); r != 0 {
		t.Errorf("outside ring r = %d, want 0", r)
	}
}

func TestComposite_BorderShadowFallsBelow(t *testing.T) {
	c := newTestCompositor(t, 60, 60)
	c.Surface().Fill(White)
	// Composite clears to black first, so draw on a white base layer to
	// make the shadow visible.
	c.Composite([]Layer{
		{Frame: SolidFrame{W: 60, H: 60, Color: White}, Opacity: 1},
		{
			Frame:   SolidFrame{W: 10, H: 10, Color: RGBA{B: 1, A: 1}},
			Opacity: 1,
			Transform: &Transform{
				X: 20, Y: 20, Width: 20, Height: 20,
				Border: &Border{WidthPx: 2, Color: RGBA{R: 1, A: 1}, ShadowBlurPx: 3},
			},
		},
	})

	s := c.Surface()
	// A few pixels below the bordered rect the shadow darkens the white base.
	if r, _, _, _ := s.RGBAAt(30, 44); r >= 250 {
		t.Errorf("below rect r = %d, want darkened by shadow", r)
	}
	// Far away stays pure white.
	if r, _, _, _ := s.RGBAAt(5, 5); r != 255 {
		t.Errorf("far pixel r = %d, want 255", r)
	}
}

func TestComposite_FilterGrayscale(t *testing.T) {
	c := newTestCompositor(t, 8, 8)
	c.Composite([]Layer{{
		Frame:   SolidFrame{W: 8, H: 8, Color: RGBA{R: 1, A: 1}},
		Opacity: 1,
		Filter:  "grayscale(1)",
	}})

	r, g, b, _ := c.Surface().RGBAAt(4, 4)
	if r != g || g != b {
		t.Errorf("grayscale pixel = (%d, %d, %d), want equal channels", r, g, b)
	}
	// Rec. 709 red luminance is ~0.2126.
	if r < 50 || r > 60 {
		t.Errorf("gray level = %d, want ~54", r)
	}
}

func TestComposite_UnknownFilterIgnored(t *testing.T) {
	c := newTestCompositor(t, 8, 8)
	c.Composite([]Layer{{
		Frame:   SolidFrame{W: 8, H: 8, Color: White},
		Opacity: 1,
		Filter:  "sparkle(2) brightness(0.5)",
	}})

	r, _, _, _ := c.Surface().RGBAAt(4, 4)
	if r < 125 || r > 129 {
		t.Errorf("r = %d, want ~127 (brightness applied, unknown ignored)", r)
	}
}

func TestComposite_GradingPostProcess(t *testing.T) {
	c := newTestCompositor(t, 8, 8)
	c.SetGrading(BuildLUTSet(Curves{
		Master: []CurvePoint{{X: 0, Y: 1}, {X: 1, Y: 0}}, // invert
		Red:    identityPoints(),
		Green:  identityPoints(),
		Blue:   identityPoints(),
	}))

	c.Composite([]Layer{{
		Frame:   SolidFrame{W: 8, H: 8, Color: White},
		Opacity: 1,
	}})

	if r, _, _, _ := c.Surface().RGBAAt(4, 4); r != 0 {
		t.Errorf("graded white r = %d, want 0 (inverted)", r)
	}
	// Cleared background inverts to white.
	c.SetGrading(nil)
	c.Composite(nil)
	if r, _, _, _ := c.Surface().RGBAAt(4, 4); r != 0 {
		t.Errorf("after disabling grading, background r = %d, want 0", r)
	}
}

func TestComposite_OpacityClamped(t *testing.T) {
	c := newTestCompositor(t, 8, 8)
	c.Composite([]Layer{{
		Frame:   SolidFrame{W: 8, H: 8, Color: White},
		Opacity: 3.5,
	}})
	if r, _, _, _ := c.Surface().RGBAAt(4, 4); r != 255 {
		t.Errorf("r = %d, want 255 (opacity clamped to 1)", r)
	}
}
