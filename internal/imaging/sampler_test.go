package imaging

import "testing"

// gridSource is a tiny in-memory source for sampling tests.
type gridSource struct {
	w, h int
	pix  []uint8 // RGBA
}

func (s *gridSource) Width() int  { return s.w }
func (s *gridSource) Height() int { return s.h }

func (s *gridSource) RGBAAt(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return 0, 0, 0, 0
	}
	i := (y*s.w + x) * 4
	return s.pix[i+0], s.pix[i+1], s.pix[i+2], s.pix[i+3]
}

// checker2x2 is black/white diagonal: (0,0) and (1,1) white.
func checker2x2() *gridSource {
	s := &gridSource{w: 2, h: 2, pix: make([]uint8, 16)}
	set := func(x, y int, v uint8) {
		i := (y*2 + x) * 4
		s.pix[i+0], s.pix[i+1], s.pix[i+2], s.pix[i+3] = v, v, v, 255
	}
	set(0, 0, 255)
	set(1, 1, 255)
	set(1, 0, 0)
	set(0, 1, 0)
	return s
}

func TestInterpolation_String(t *testing.T) {
	tests := []struct {
		mode Interpolation
		want string
	}{
		{Nearest, "Nearest"},
		{Bilinear, "Bilinear"},
		{Bicubic, "Bicubic"},
		{Interpolation(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSample_NearestCorners(t *testing.T) {
	src := checker2x2()

	r, _, _, _ := Sample(src, 0.1, 0.1, Nearest)
	if r != 255 {
		t.Errorf("top-left sample r = %d, want 255", r)
	}
	r, _, _, _ = Sample(src, 0.9, 0.1, Nearest)
	if r != 0 {
		t.Errorf("top-right sample r = %d, want 0", r)
	}
	r, _, _, _ = Sample(src, 0.9, 0.9, Nearest)
	if r != 255 {
		t.Errorf("bottom-right sample r = %d, want 255", r)
	}
}

func TestSample_BilinearCenterAverages(t *testing.T) {
	src := checker2x2()

	// The exact center blends all four pixels equally: two white, two
	// black, so ~127.
	r, _, _, a := Sample(src, 0.5, 0.5, Bilinear)
	if r < 126 || r > 128 {
		t.Errorf("center blend r = %d, want ~127", r)
	}
	if a != 255 {
		t.Errorf("center blend a = %d, want 255", a)
	}
}

func TestSample_BilinearAtPixelCenterIsExact(t *testing.T) {
	src := checker2x2()

	// u=0.25 maps to the center of pixel 0; no neighbor bleed.
	r, _, _, _ := Sample(src, 0.25, 0.25, Bilinear)
	if r != 255 {
		t.Errorf("pixel-center sample r = %d, want exact 255", r)
	}
}

func TestSample_EdgeClamp(t *testing.T) {
	src := checker2x2()
	for _, mode := range []Interpolation{Nearest, Bilinear, Bicubic} {
		r, _, _, a := Sample(src, 0, 0, mode)
		if a != 255 {
			t.Errorf("%v: out-of-center edge sample a = %d, want 255", mode, a)
		}
		_ = r
	}
}

func TestSample_BicubicFlatFieldStaysFlat(t *testing.T) {
	// Constant sources must not ring under Catmull-Rom weights.
	s := &gridSource{w: 4, h: 4, pix: make([]uint8, 64)}
	for i := 0; i < 64; i += 4 {
		s.pix[i+0] = 100
		s.pix[i+3] = 255
	}
	for _, uv := range [][2]float64{{0.3, 0.3}, {0.5, 0.5}, {0.71, 0.13}} {
		r, _, _, _ := Sample(s, uv[0], uv[1], Bicubic)
		if r < 99 || r > 101 {
			t.Errorf("flat field sample at %v r = %d, want 100", uv, r)
		}
	}
}
