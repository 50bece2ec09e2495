package filter

import (
	"math"

	"github.com/cliplab/vframe/cache"
)

// GaussianKernel generates a normalized 1D Gaussian kernel for the given
// radius, using the radius as sigma. The kernel size is 2*ceil(radius*3)+1,
// covering three standard deviations.
//
// For radius <= 0 the identity kernel [1.0] is returned.
func GaussianKernel(radius float64) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	sigma := radius
	halfSize := int(math.Ceil(sigma * 3))
	size := halfSize*2 + 1

	kernel := make([]float32, size)
	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)

	for i := 0; i < size; i++ {
		x := float64(i - halfSize)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	if sum > 0 {
		invSum := float32(1.0 / sum)
		for i := range kernel {
			kernel[i] *= invSum
		}
	}

	return kernel
}

// kernelCache memoizes kernels by radius quantized to 0.01 pixels.
var kernelCache = cache.NewSharded[int, []float32](64, cache.IntHasher)

// CachedGaussianKernel returns a memoized Gaussian kernel for the radius.
// Shadow and blur passes hit the same few radii every frame.
func CachedGaussianKernel(radius float64) []float32 {
	key := int(radius * 100)
	return kernelCache.GetOrCreate(key, func() []float32 {
		return GaussianKernel(radius)
	})
}

// KernelExtent returns ceil(radius*3), the half-width of the Gaussian
// kernel for the radius. Callers use it to size expanded buffers.
func KernelExtent(radius float64) int {
	if radius <= 0 {
		return 0
	}
	return int(math.Ceil(radius * 3))
}
