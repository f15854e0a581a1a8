package feature

import "math"

// dctII returns the first n orthonormal DCT-II coefficients of x.
func dctII(x []float64, n int) []float64 {
	size := len(x)
	n = min(n, size)
	out := make([]float64, n)

	for k := range out {
		var sum float64
		for i, v := range x {
			sum += v * math.Cos(math.Pi*float64(k)*(2*float64(i)+1)/(2*float64(size)))
		}

		scale := math.Sqrt(2 / float64(size))
		if k == 0 {
			scale = math.Sqrt(1 / float64(size))
		}

		out[k] = sum * scale
	}

	return out
}
