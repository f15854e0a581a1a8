package augment

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-audioprep/dsp/core"
	"github.com/cwbudde/algo-audioprep/dsp/resample"
	"github.com/cwbudde/algo-audioprep/dsp/stft"
	"github.com/cwbudde/algo-vecmath"
)

const (
	stretchWindowLength = 2048
	stretchHopLength    = 512

	// pitchMaxDenominator bounds the polyphase ratio used when resampling
	// the stretched signal back to the original rate.
	pitchMaxDenominator = 512
)

// AddNoise returns x plus zero-mean Gaussian noise with standard deviation
// factor.
func AddNoise(x []float64, factor float64, rng *rand.Rand) []float64 {
	out := core.CloneSamples(x)
	for i := range out {
		out[i] += factor * rng.NormFloat64()
	}

	return out
}

// Shift rotates x right by a uniformly drawn offset in [0, maxFraction*len).
// Samples pushed past the end wrap to the start.
func Shift(x []float64, maxFraction float64, rng *rand.Rand) []float64 {
	limit := int(maxFraction * float64(len(x)))
	if limit <= 0 {
		return core.CloneSamples(x)
	}

	return Roll(x, rng.Intn(limit))
}

// Roll rotates x right by k samples.
func Roll(x []float64, k int) []float64 {
	n := len(x)
	out := make([]float64, n)

	if n == 0 {
		return out
	}

	k = ((k % n) + n) % n
	copy(out[k:], x[:n-k])
	copy(out[:k], x[n-k:])

	return out
}

// Gain scales x by g.
func Gain(x []float64, g float64) []float64 {
	out := make([]float64, len(x))
	vecmath.ScaleBlock(out, x, g)

	return out
}

// Stretch changes the duration of x by 1/rate without changing its pitch.
// rate > 1 speeds up. The result has round(len(x)/rate) samples.
func Stretch(x []float64, rate float64) ([]float64, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("augment: stretch rate must be > 0: %f", rate)
	}

	if rate == 1 || len(x) == 0 {
		return core.CloneSamples(x), nil
	}

	tr, err := stft.New(stft.WithWindowLength(stretchWindowLength), stft.WithHopLength(stretchHopLength))
	if err != nil {
		return nil, fmt.Errorf("augment: %w", err)
	}

	spec, err := tr.Forward(x)
	if err != nil {
		return nil, fmt.Errorf("augment: %w", err)
	}

	stretched, err := stft.PhaseVocoder(spec, rate)
	if err != nil {
		return nil, fmt.Errorf("augment: %w", err)
	}

	out, err := tr.Inverse(stretched, int(math.Round(float64(len(x))/rate)))
	if err != nil {
		return nil, fmt.Errorf("augment: %w", err)
	}

	return out, nil
}

// PitchShift moves x by the given number of semitones while keeping its
// length. The signal is time stretched by 2^(-semitones/12) and resampled
// back to sampleRate.
func PitchShift(x []float64, sampleRate int, semitones float64) ([]float64, error) {
	if err := core.ValidateRate(sampleRate); err != nil {
		return nil, fmt.Errorf("augment: %w", err)
	}

	if semitones == 0 || len(x) == 0 {
		return core.CloneSamples(x), nil
	}

	rate := math.Pow(2, -semitones/12)

	stretched, err := Stretch(x, rate)
	if err != nil {
		return nil, err
	}

	r, err := resample.NewForRates(float64(sampleRate)/rate, float64(sampleRate),
		resample.WithMaxDenominator(pitchMaxDenominator))
	if err != nil {
		return nil, fmt.Errorf("augment: %w", err)
	}

	return fitLength(r.Convert(stretched), len(x)), nil
}

// fitLength cuts or zero pads x to n samples.
func fitLength(x []float64, n int) []float64 {
	if len(x) == n {
		return x
	}

	out := make([]float64, n)
	copy(out, x)

	return out
}
