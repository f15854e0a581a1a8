package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// AmplitudeToDB converts an amplitude to dB relative to ref, flooring both at
// amin so silent input maps to a finite value.
func AmplitudeToDB(amplitude, ref, amin float64) float64 {
	if amin <= 0 {
		amin = 1e-5
	}

	return 20*math.Log10(math.Max(amin, math.Abs(amplitude))) -
		20*math.Log10(math.Max(amin, math.Abs(ref)))
}

// PowerToDB converts a power value to dB relative to ref, flooring both at
// amin (10*log10 convention).
func PowerToDB(power, ref, amin float64) float64 {
	if amin <= 0 {
		amin = 1e-10
	}

	return 10*math.Log10(math.Max(amin, power)) - 10*math.Log10(math.Max(amin, math.Abs(ref)))
}
