package time

import "math"

// FrameEnergy returns the sum of squares of each frame. Frames start at
// 0, hop, 2*hop, ... while the start lies inside the signal; frames that
// run past the end are truncated. A non-positive frame or hop yields nil.
func FrameEnergy(signal []float64, frameLength, hop int) []float64 {
	if len(signal) == 0 || frameLength <= 0 || hop <= 0 {
		return nil
	}

	out := make([]float64, 0, (len(signal)+hop-1)/hop)
	for start := 0; start < len(signal); start += hop {
		end := min(start+frameLength, len(signal))
		out = append(out, Energy(signal[start:end]))
	}

	return out
}

// CenteredFrameRMS returns the RMS of each frame after zero padding the
// signal by frameLength/2 on both sides. Frame f is centered on sample
// f*hop and always averages over the full frameLength, padding included.
func CenteredFrameRMS(signal []float64, frameLength, hop int) []float64 {
	if len(signal) == 0 || frameLength <= 0 || hop <= 0 {
		return nil
	}

	half := frameLength / 2
	frames := 1 + (len(signal)+2*half-frameLength)/hop
	if frames <= 0 {
		return nil
	}

	out := make([]float64, frames)
	for f := range out {
		start := f*hop - half
		lo := max(start, 0)
		hi := min(start+frameLength, len(signal))

		var e float64
		if hi > lo {
			e = Energy(signal[lo:hi])
		}

		out[f] = math.Sqrt(e / float64(frameLength))
	}

	return out
}
