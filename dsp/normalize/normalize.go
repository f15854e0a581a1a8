// Package normalize rescales signal amplitude: zero-mean unit-variance
// standardization and peak normalization.
//
// Degenerate inputs are handled without dividing by zero: a constant signal
// standardizes to all zeros and a silent signal passes peak normalization
// unchanged. Finite input never produces NaN or Inf, including subnormal and
// near-overflow magnitudes. Both functions return new slices.
package normalize

import (
	"math"

	"github.com/cwbudde/algo-audioprep/dsp/core"
	timestats "github.com/cwbudde/algo-audioprep/stats/time"
	"github.com/cwbudde/algo-vecmath"
)

const minNormal = 0x1p-1022

// Standardize returns (x - mean) / std. When std is zero it returns
// x - mean, which is all zeros.
func Standardize(in []float64) []float64 {
	out := make([]float64, len(in))
	if len(in) == 0 {
		return out
	}

	// Moments are taken on a power-of-two rescaled copy with peak in
	// [0.5, 1). The rescaling is exact and the result is scale invariant.
	peak := vecmath.MaxAbs(in)
	if peak == 0 {
		return out
	}

	_, exp := math.Frexp(peak)
	for i, v := range in {
		out[i] = math.Ldexp(v, -exp)
	}

	mean, std := timestats.MeanStd(out)
	for i := range out {
		out[i] -= mean
	}

	if std != 0 {
		scale(out, out, std)
	}

	return out
}

// Peak divides by the maximum absolute sample so the loudest sample has
// magnitude 1. Input whose peak is 0 or exactly 1 is returned as a copy.
func Peak(in []float64) []float64 {
	if len(in) == 0 {
		return []float64{}
	}

	peak := vecmath.MaxAbs(in)
	if peak == 0 || peak == 1 {
		return core.CloneSamples(in)
	}

	out := make([]float64, len(in))
	scale(out, in, peak)

	return out
}

// scale writes in/d to dst for d > 0. It multiplies by the reciprocal when
// that is a finite normal number and divides per sample otherwise.
func scale(dst, in []float64, d float64) {
	if inv := 1 / d; core.IsFinite(inv) && inv >= minNormal {
		vecmath.ScaleBlock(dst, in, inv)
		return
	}

	for i, v := range in {
		dst[i] = v / d
	}
}
