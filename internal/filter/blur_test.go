package filter

import "testing"

func TestBlur_ZeroRadiusNoop(t *testing.T) {
	pix := []uint8{255, 0, 0, 255, 0, 255, 0, 255}
	want := append([]uint8(nil), pix...)
	Blur(pix, 2, 1, 0)
	for i := range pix {
		if pix[i] != want[i] {
			t.Fatalf("pix[%d] = %d, want %d", i, pix[i], want[i])
		}
	}
}

func TestBlur_FlatFieldUnchanged(t *testing.T) {
	const w, h = 8, 8
	pix := make([]uint8, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = 90
		pix[i+3] = 255
	}

	Blur(pix, w, h, 2)

	for i := 0; i < len(pix); i += 4 {
		if pix[i+0] < 89 || pix[i+0] > 91 {
			t.Fatalf("flat field changed: pix[%d] = %d", i, pix[i+0])
		}
		if pix[i+3] != 255 {
			t.Fatalf("flat alpha changed: pix[%d+3] = %d", i, pix[i+3])
		}
	}
}

func TestBlur_SpreadsImpulse(t *testing.T) {
	const w, h = 9, 9
	pix := make([]uint8, w*h*4)
	center := (4*w + 4) * 4
	pix[center+0] = 255
	pix[center+3] = 255

	Blur(pix, w, h, 1)

	if pix[center+0] == 255 {
		t.Error("center should lose energy to neighbors")
	}
	neighbor := (4*w + 5) * 4
	if pix[neighbor+0] == 0 {
		t.Error("neighbor should gain energy")
	}
	if pix[center+0] <= pix[neighbor+0] {
		t.Error("center should remain the brightest pixel")
	}
}

func TestBlurAlpha_PreservesMass(t *testing.T) {
	const w, h = 16, 16
	alpha := make([]float32, w*h)
	for y := 6; y < 10; y++ {
		for x := 6; x < 10; x++ {
			alpha[y*w+x] = 1
		}
	}

	var before float64
	for _, v := range alpha {
		before += float64(v)
	}

	BlurAlpha(alpha, w, h, 1.5)

	var after float64
	for _, v := range alpha {
		after += float64(v)
	}

	// Clamp-extended edges can only add mass at borders; for a centered
	// patch far from the edge, the total is preserved.
	if diff := after - before; diff < -0.1 || diff > 0.1 {
		t.Errorf("coverage mass changed by %g", diff)
	}

	if alpha[8*w+8] <= alpha[0] {
		t.Error("patch center should remain above far-away background")
	}
}
