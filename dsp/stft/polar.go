package stft

import (
	"fmt"

	"github.com/cwbudde/algo-audioprep/dsp/spectrum"
)

// Magnitude returns |X| for every frame and bin.
func (s Spectrogram) Magnitude() [][]float64 {
	out := make([][]float64, len(s.Frames))
	for f, row := range s.Frames {
		out[f] = spectrum.Magnitude(row)
	}

	return out
}

// Phase returns arg(X) in radians for every frame and bin.
func (s Spectrogram) Phase() [][]float64 {
	out := make([][]float64, len(s.Frames))
	for f, row := range s.Frames {
		out[f] = spectrum.Phase(row)
	}

	return out
}

// Power returns |X|^2 for every frame and bin.
func (s Spectrogram) Power() [][]float64 {
	out := make([][]float64, len(s.Frames))
	for f, row := range s.Frames {
		out[f] = spectrum.Power(row)
	}

	return out
}

// FromPolar recombines magnitude and phase matrices into a Spectrogram with
// the given framing.
func FromPolar(mag, phase [][]float64, windowLength, hopLength int) (Spectrogram, error) {
	if len(mag) != len(phase) {
		return Spectrogram{}, fmt.Errorf("stft: magnitude has %d frames, phase has %d", len(mag), len(phase))
	}

	out := Spectrogram{
		Frames:       make([][]complex128, len(mag)),
		WindowLength: windowLength,
		HopLength:    hopLength,
	}

	for f := range mag {
		row, err := spectrum.FromPolar(mag[f], phase[f])
		if err != nil {
			return Spectrogram{}, fmt.Errorf("stft: frame %d: %w", f, err)
		}

		out.Frames[f] = row
	}

	return out, nil
}
