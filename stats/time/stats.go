package time

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Stats holds time-domain signal statistics.
type Stats struct {
	Length        int
	Mean          float64
	Variance      float64 // population variance
	StdDev        float64
	RMS           float64
	Max           float64
	Min           float64
	Peak          float64 // max(|max|, |min|)
	Energy        float64 // sum of squares
	ZeroCrossings int
}

// Calculate computes all statistics in a single pass.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	var (
		mean          float64
		m2            float64
		sumSq         float64
		maxVal        = signal[0]
		minVal        = signal[0]
		zeroCrossings int
	)

	for i, x := range signal {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x

		if x > maxVal {
			maxVal = x
		}

		if x < minVal {
			minVal = x
		}

		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	variance := m2 / nf

	return Stats{
		Length:        n,
		Mean:          mean,
		Variance:      variance,
		StdDev:        math.Sqrt(variance),
		RMS:           math.Sqrt(sumSq / nf),
		Max:           maxVal,
		Min:           minVal,
		Peak:          math.Max(math.Abs(maxVal), math.Abs(minVal)),
		Energy:        sumSq,
		ZeroCrossings: zeroCrossings,
	}
}

// MeanStd returns the mean and population standard deviation.
func MeanStd(signal []float64) (mean, std float64) {
	s := Calculate(signal)
	return s.Mean, s.StdDev
}

// Energy returns the sum of squared samples.
func Energy(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return vecmath.DotProduct(signal, signal)
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Sqrt(Energy(signal) / float64(len(signal)))
}

// Peak returns the maximum absolute sample value.
func Peak(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return vecmath.MaxAbs(signal)
}
