package filter

// Blur applies a separable Gaussian blur in place to a straight-alpha RGBA
// buffer of the given dimensions. Two 1D passes give O(w*h*r) cost instead
// of O(w*h*r*r). Edges are clamp-extended.
func Blur(pix []uint8, width, height int, radius float64) {
	if radius <= 0 || width <= 0 || height <= 0 {
		return
	}

	kernel := CachedGaussianKernel(radius)
	kernelSize := len(kernel)
	halfKernel := kernelSize / 2

	temp := make([]float32, width*height*4)

	// Horizontal pass: pix -> temp.
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k := 0; k < kernelSize; k++ {
				kx := x + k - halfKernel
				if kx < 0 {
					kx = 0
				} else if kx >= width {
					kx = width - 1
				}
				i := (row + kx) * 4
				w := kernel[k]
				r += float32(pix[i+0]) * w
				g += float32(pix[i+1]) * w
				b += float32(pix[i+2]) * w
				a += float32(pix[i+3]) * w
			}
			i := (row + x) * 4
			temp[i+0] = r
			temp[i+1] = g
			temp[i+2] = b
			temp[i+3] = a
		}
	}

	// Vertical pass: temp -> pix.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k := 0; k < kernelSize; k++ {
				ky := y + k - halfKernel
				if ky < 0 {
					ky = 0
				} else if ky >= height {
					ky = height - 1
				}
				i := (ky*width + x) * 4
				w := kernel[k]
				r += temp[i+0] * w
				g += temp[i+1] * w
				b += temp[i+2] * w
				a += temp[i+3] * w
			}
			i := (y*width + x) * 4
			pix[i+0] = clampUint8(r)
			pix[i+1] = clampUint8(g)
			pix[i+2] = clampUint8(b)
			pix[i+3] = clampUint8(a)
		}
	}
}

// BlurAlpha applies a separable Gaussian blur in place to a single-channel
// coverage buffer in [0, 1]. Used to soften shadow silhouettes.
func BlurAlpha(alpha []float32, width, height int, radius float64) {
	if radius <= 0 || width <= 0 || height <= 0 {
		return
	}

	kernel := CachedGaussianKernel(radius)
	kernelSize := len(kernel)
	halfKernel := kernelSize / 2

	temp := make([]float32, width*height)

	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			var sum float32
			for k := 0; k < kernelSize; k++ {
				kx := x + k - halfKernel
				if kx < 0 {
					kx = 0
				} else if kx >= width {
					kx = width - 1
				}
				sum += alpha[row+kx] * kernel[k]
			}
			temp[row+x] = sum
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float32
			for k := 0; k < kernelSize; k++ {
				ky := y + k - halfKernel
				if ky < 0 {
					ky = 0
				} else if ky >= height {
					ky = height - 1
				}
				sum += temp[ky*width+x] * kernel[k]
			}
			alpha[y*width+x] = sum
		}
	}
}

// clampUint8 rounds a float32 to the nearest uint8, clamping to [0, 255].
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
