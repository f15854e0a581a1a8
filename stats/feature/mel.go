package feature

import "math"

// Slaney mel scale: linear below 1 kHz, logarithmic above.
const (
	melLinearStep = 200.0 / 3
	melLogMinHz   = 1000.0
	melLogMin     = melLogMinHz / melLinearStep
)

var melLogStep = math.Log(6.4) / 27

// HzToMel converts a frequency to the Slaney mel scale.
func HzToMel(hz float64) float64 {
	if hz < melLogMinHz {
		return hz / melLinearStep
	}

	return melLogMin + math.Log(hz/melLogMinHz)/melLogStep
}

// MelToHz converts a Slaney mel value back to Hz.
func MelToHz(mel float64) float64 {
	if mel < melLogMin {
		return mel * melLinearStep
	}

	return melLogMinHz * math.Exp(melLogStep*(mel-melLogMin))
}

// MelFilterBank returns nMels triangular filters over the fftLength/2+1
// one-sided bins, spanning 0 Hz to rate/2. Each filter is area normalized
// (Slaney). The result is indexed [mel][bin].
func MelFilterBank(rate float64, fftLength, nMels int) [][]float64 {
	if rate <= 0 || fftLength < 2 || nMels <= 0 {
		return nil
	}

	bins := fftLength/2 + 1

	fftFreqs := make([]float64, bins)
	for k := range fftFreqs {
		fftFreqs[k] = float64(k) * rate / float64(fftLength)
	}

	lo, hi := HzToMel(0), HzToMel(rate/2)
	edges := make([]float64, nMels+2)
	for i := range edges {
		edges[i] = MelToHz(lo + (hi-lo)*float64(i)/float64(nMels+1))
	}

	bank := make([][]float64, nMels)
	for m := range bank {
		left, center, right := edges[m], edges[m+1], edges[m+2]
		norm := 2 / (right - left)

		row := make([]float64, bins)
		for k, f := range fftFreqs {
			lower := (f - left) / (center - left)
			upper := (right - f) / (right - center)
			row[k] = math.Max(0, math.Min(lower, upper)) * norm
		}

		bank[m] = row
	}

	return bank
}
