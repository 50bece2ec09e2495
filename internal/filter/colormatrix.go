package filter

import "math"

// Matrix is a 4x5 color transformation matrix in row-major order:
//
//	[R']   [m0  m1  m2  m3  m4 ]   [R]
//	[G'] = [m5  m6  m7  m8  m9 ] * [G]
//	[B']   [m10 m11 m12 m13 m14]   [B]
//	[A']   [m15 m16 m17 m18 m19]   [A]
//	                               [1]
//
// The fifth column is a bias in the 0-255 range. Coefficients follow the
// SVG feColorMatrix conventions, which is what the CSS filter shorthand
// functions lower to.
type Matrix [20]float32

// Rec. 709 luminance weights used by saturation-family matrices.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// Identity returns the pass-through matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Brightness scales RGB by amount. 0 is black, 1 unchanged, 2 twice as
// bright.
func Brightness(amount float32) Matrix {
	return Matrix{
		amount, 0, 0, 0, 0,
		0, amount, 0, 0, 0,
		0, 0, amount, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Contrast scales RGB away from mid-gray. 0 is flat gray, 1 unchanged.
func Contrast(amount float32) Matrix {
	offset := 255 * 0.5 * (1 - amount)
	return Matrix{
		amount, 0, 0, 0, offset,
		0, amount, 0, 0, offset,
		0, 0, amount, 0, offset,
		0, 0, 0, 1, 0,
	}
}

// Saturate blends between luminance (0) and identity (1). Values above 1
// oversaturate.
func Saturate(amount float32) Matrix {
	inv := 1 - amount
	return Matrix{
		lumR*inv + amount, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + amount, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + amount, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Grayscale desaturates by amount. 1 is fully grayscale.
func Grayscale(amount float32) Matrix {
	return Saturate(1 - amount)
}

// Sepia blends toward the sepia tone matrix by amount.
func Sepia(amount float32) Matrix {
	inv := 1 - amount
	return Matrix{
		0.393 + 0.607*inv, 0.769 - 0.769*inv, 0.189 - 0.189*inv, 0, 0,
		0.349 - 0.349*inv, 0.686 + 0.314*inv, 0.168 - 0.168*inv, 0, 0,
		0.272 - 0.272*inv, 0.534 - 0.534*inv, 0.131 + 0.869*inv, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Invert inverts RGB by amount. 1 is a full negative.
func Invert(amount float32) Matrix {
	return Matrix{
		1 - 2*amount, 0, 0, 0, amount * 255,
		0, 1 - 2*amount, 0, 0, amount * 255,
		0, 0, 1 - 2*amount, 0, amount * 255,
		0, 0, 0, 1, 0,
	}
}

// HueRotate rotates hue by the given angle in degrees, using the SVG
// feColorMatrix hueRotate approximation.
func HueRotate(degrees float32) Matrix {
	rad := float64(degrees) * math.Pi / 180
	sin, cos := math.Sincos(rad)
	c := float32(cos)
	s := float32(sin)

	return Matrix{
		lumR + c*(1-lumR) - s*lumR, lumG - c*lumG - s*lumG, lumB - c*lumB + s*(1-lumB), 0, 0,
		lumR - c*lumR + s*0.143, lumG + c*(1-lumG) + s*0.140, lumB - c*lumB - s*0.283, 0, 0,
		lumR - c*lumR - s*(1-lumR), lumG - c*lumG + s*lumG, lumB + c*(1-lumB) + s*lumB, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Opacity scales alpha by amount.
func Opacity(amount float32) Matrix {
	return Matrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, amount, 0,
	}
}

// Mul returns the matrix that applies m first, then other. Chained filter
// functions collapse into a single matrix this way, so a whole filter
// string costs one matrix per pixel.
func (m Matrix) Mul(other Matrix) Matrix {
	var r Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += other[row*5+k] * m[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = other[row*5+0]*m[4] + other[row*5+1]*m[9] +
			other[row*5+2]*m[14] + other[row*5+3]*m[19] + other[row*5+4]
	}
	return r
}

// IsIdentity reports whether applying m leaves every pixel unchanged.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Apply transforms one straight-alpha pixel through the matrix.
func (m Matrix) Apply(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
	fr := float32(r)
	fg := float32(g)
	fb := float32(b)
	fa := float32(a)

	nr := m[0]*fr + m[1]*fg + m[2]*fb + m[3]*fa + m[4]
	ng := m[5]*fr + m[6]*fg + m[7]*fb + m[8]*fa + m[9]
	nb := m[10]*fr + m[11]*fg + m[12]*fb + m[13]*fa + m[14]
	na := m[15]*fr + m[16]*fg + m[17]*fb + m[18]*fa + m[19]

	return clampUint8(nr), clampUint8(ng), clampUint8(nb), clampUint8(na)
}
