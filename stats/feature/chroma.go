package feature

import "math"

const pitchClasses = 12

// pitchClass maps a frequency to 0..11 with C = 0, using A4 = 440 Hz.
// Non-positive frequencies return -1.
func pitchClass(hz float64) int {
	if hz <= 0 {
		return -1
	}

	midi := int(math.Round(69 + 12*math.Log2(hz/440)))

	return ((midi % pitchClasses) + pitchClasses) % pitchClasses
}

// chromaFrame folds one power spectrum into 12 pitch classes and scales the
// frame so its strongest class is 1. Silent frames stay zero.
func chromaFrame(power []float64, rate float64, fftLength int) []float64 {
	out := make([]float64, pitchClasses)

	for k := 1; k < len(power); k++ {
		pc := pitchClass(float64(k) * rate / float64(fftLength))
		if pc >= 0 {
			out[pc] += power[k]
		}
	}

	peak := 0.0
	for _, v := range out {
		peak = math.Max(peak, v)
	}

	if peak > 0 {
		for i := range out {
			out[i] /= peak
		}
	}

	return out
}
