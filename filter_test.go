package vframe

import "testing"

func TestCompileFilter_Identity(t *testing.T) {
	for _, s := range []string{"", "none", "  none  "} {
		pf := compileFilter(s)
		if !pf.identity {
			t.Errorf("compileFilter(%q).identity = false, want true", s)
		}
	}
}

func TestCompileFilter_Brightness(t *testing.T) {
	pf := compileFilter("brightness(0.5)")
	if pf.identity {
		t.Fatal("brightness(0.5) should not be identity")
	}
	r, _, _, a := pf.matrix.Apply(200, 200, 200, 255)
	if r != 100 {
		t.Errorf("r = %d, want 100", r)
	}
	if a != 255 {
		t.Errorf("a = %d, brightness must not touch alpha", a)
	}
}

func TestCompileFilter_Percentage(t *testing.T) {
	half := compileFilter("brightness(50%)")
	decimal := compileFilter("brightness(0.5)")
	if half.matrix != decimal.matrix {
		t.Error("50% and 0.5 should compile to the same matrix")
	}
}

func TestCompileFilter_Chain(t *testing.T) {
	pf := compileFilter("brightness(0.5) invert(1)")
	r, _, _, _ := pf.matrix.Apply(200, 0, 0, 255)
	// brightness first (200 -> 100), then invert (100 -> 155).
	if r != 155 {
		t.Errorf("r = %d, want 155 (brightness then invert)", r)
	}
}

func TestCompileFilter_HueRotateUnits(t *testing.T) {
	deg := compileFilter("hue-rotate(90deg)")
	turn := compileFilter("hue-rotate(0.25turn)")
	if deg.matrix != turn.matrix {
		t.Error("90deg and 0.25turn should compile to the same matrix")
	}
	bare := compileFilter("hue-rotate(90)")
	if deg.matrix != bare.matrix {
		t.Error("bare number should be treated as degrees")
	}
}

func TestCompileFilter_UnknownFunctionSkipped(t *testing.T) {
	pf := compileFilter("wobble(3) brightness(2)")
	r, _, _, _ := pf.matrix.Apply(100, 100, 100, 255)
	if r != 200 {
		t.Errorf("r = %d, want 200 (known function still applied)", r)
	}
}

func TestCompileFilter_Malformed(t *testing.T) {
	// Must not panic, and should apply nothing.
	pf := compileFilter("brightness(")
	if !pf.identity {
		t.Error("malformed string should compile to identity")
	}
	pf = compileFilter("brightness")
	if !pf.identity {
		t.Error("string without parens should compile to identity")
	}
}

func TestCompileFilter_Blur(t *testing.T) {
	pf := compileFilter("blur(4px)")
	if pf.identity {
		t.Fatal("blur(4px) should not be identity")
	}
	if pf.blur != 4 {
		t.Errorf("blur = %g, want 4", pf.blur)
	}
	if !pf.matrix.IsIdentity() {
		t.Error("blur alone should leave the color matrix identity")
	}

	bare := compileFilter("blur(4)")
	if bare.blur != 4 {
		t.Errorf("bare blur = %g, want 4 (number taken as pixels)", bare.blur)
	}
}

func TestCompileFilter_StackedBlursCompose(t *testing.T) {
	pf := compileFilter("blur(3px) blur(4px)")
	// Gaussians compose in quadrature: sqrt(9 + 16) = 5.
	if pf.blur < 4.999 || pf.blur > 5.001 {
		t.Errorf("blur = %g, want 5", pf.blur)
	}
}

func TestBlurFrame(t *testing.T) {
	frame := blurFrame(SolidFrame{W: 8, H: 8, Color: White}, 1.5)

	if frame.Width() != 8 || frame.Height() != 8 {
		t.Fatalf("blurred size = %dx%d, want 8x8", frame.Width(), frame.Height())
	}
	// A flat field survives blurring unchanged.
	r, _, _, a := frame.RGBAAt(4, 4)
	if r < 254 || a < 254 {
		t.Errorf("center = (%d, a=%d), want ~255", r, a)
	}
}

func TestCompileFilter_Cached(t *testing.T) {
	a := compileFilter("sepia(1)")
	b := compileFilter("sepia(1)")
	if a.matrix != b.matrix {
		t.Error("repeated compiles should return equal results")
	}
}
