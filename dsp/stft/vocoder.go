package stft

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-audioprep/dsp/spectrum"
)

// PhaseVocoder time-scales a spectrogram by rate without changing pitch.
// rate > 1 shortens (fewer frames), rate < 1 lengthens.
//
// Output frame t samples the input at fractional position t*rate. Magnitudes
// are interpolated linearly between the two neighbouring frames and phase is
// accumulated from the measured per-bin phase advance.
func PhaseVocoder(s Spectrogram, rate float64) (Spectrogram, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return Spectrogram{}, fmt.Errorf("stft: phase vocoder rate must be > 0: %f", rate)
	}

	out := Spectrogram{WindowLength: s.WindowLength, HopLength: s.HopLength}

	frames := len(s.Frames)
	if frames == 0 {
		return out, nil
	}

	bins := s.NumBins()
	steps := int(math.Ceil(float64(frames) / rate))

	advance := make([]float64, bins)
	for k := range advance {
		advance[k] = 2 * math.Pi * float64(k) * float64(s.HopLength) / float64(s.WindowLength)
	}

	acc := spectrum.Phase(s.Frames[0])
	zero := make([]complex128, bins)

	frameAt := func(i int) []complex128 {
		if i < frames {
			return s.Frames[i]
		}
		return zero
	}

	out.Frames = make([][]complex128, 0, steps)

	for t := range steps {
		pos := float64(t) * rate
		if pos >= float64(frames) {
			break
		}

		i := int(pos)
		alpha := pos - float64(i)
		c0, c1 := frameAt(i), frameAt(i+1)

		row := make([]complex128, bins)
		for k := range bins {
			mag := (1-alpha)*cmplx.Abs(c0[k]) + alpha*cmplx.Abs(c1[k])
			row[k] = cmplx.Rect(mag, acc[k])

			dphase := cmplx.Phase(c1[k]) - cmplx.Phase(c0[k]) - advance[k]
			acc[k] += advance[k] + spectrum.WrapPhase(dphase)
		}

		out.Frames = append(out.Frames, row)
	}

	return out, nil
}
