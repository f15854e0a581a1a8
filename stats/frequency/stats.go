// Package frequency computes spectral shape descriptors from a one-sided
// magnitude spectrum (bins 0..N/2, linear scale).
//
// The frequency of bin i is i * sampleRate / (2 * (len(magnitude) - 1)).
package frequency

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// DefaultRolloffPercent is the energy fraction used by Describe.
const DefaultRolloffPercent = 0.85

// Shape holds spectral shape descriptors of one magnitude spectrum.
type Shape struct {
	Centroid float64 // Hz
	Spread   float64 // Hz, standard deviation around the centroid
	Flatness float64 // 0..1, geometric over arithmetic mean
	Rolloff  float64 // Hz below which DefaultRolloffPercent of energy lies
}

// Describe computes all shape descriptors. Spectra with fewer than two bins
// or without energy give the zero Shape.
func Describe(magnitude []float64, sampleRate float64) Shape {
	if len(magnitude) < 2 {
		return Shape{}
	}

	sum := vecmath.Sum(magnitude)
	if sum == 0 {
		return Shape{}
	}

	c := centroid(magnitude, sampleRate, sum)

	return Shape{
		Centroid: c,
		Spread:   spread(magnitude, sampleRate, c, sum),
		Flatness: Flatness(magnitude),
		Rolloff:  Rolloff(magnitude, sampleRate, DefaultRolloffPercent),
	}
}

// Centroid returns the magnitude-weighted mean frequency in Hz.
func Centroid(magnitude []float64, sampleRate float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}

	return centroid(magnitude, sampleRate, vecmath.Sum(magnitude))
}

// Flatness returns exp(mean(log|X|)) / mean(|X|) over bins 1..N/2.
// Any zero bin makes the geometric mean, and so the result, zero.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	bins := magnitude[1:]
	meanLin := vecmath.Sum(bins) / float64(len(bins))
	if meanLin == 0 {
		return 0
	}

	sumLog := 0.0
	for _, v := range bins {
		if v <= 0 {
			return 0
		}
		sumLog += math.Log(v)
	}

	return math.Exp(sumLog/float64(len(bins))) / meanLin
}

// Rolloff returns the lowest bin frequency at which the cumulative squared
// magnitude reaches percent of the total.
func Rolloff(magnitude []float64, sampleRate, percent float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	total := vecmath.DotProduct(magnitude, magnitude)
	if total == 0 {
		return 0
	}

	threshold := percent * total
	cum := 0.0
	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return binFreq(i, sampleRate, n)
		}
	}

	return binFreq(n-1, sampleRate, n)
}

func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

func centroid(magnitude []float64, sampleRate, sum float64) float64 {
	if sum == 0 {
		return 0
	}

	n := len(magnitude)
	weighted := 0.0
	for i, v := range magnitude {
		weighted += binFreq(i, sampleRate, n) * v
	}

	return weighted / sum
}

func spread(magnitude []float64, sampleRate, c, sum float64) float64 {
	n := len(magnitude)
	acc := 0.0
	for i, v := range magnitude {
		d := binFreq(i, sampleRate, n) - c
		acc += d * d * v
	}

	return math.Sqrt(acc / sum)
}
