// Package crop forces signals to a fixed duration by truncating long input
// and looping short input.
package crop

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audioprep/dsp/core"
)

// TargetSamples returns round(seconds * rate), the exact length ToDuration
// produces.
func TargetSamples(rate int, seconds float64) (int, error) {
	if err := core.ValidateRate(rate); err != nil {
		return 0, fmt.Errorf("crop: %w", err)
	}

	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("crop: %w: %v s", core.ErrInvalidDuration, seconds)
	}

	n := int(math.Round(seconds * float64(rate)))
	if n <= 0 {
		return 0, fmt.Errorf("crop: %w: %v s at %d Hz is shorter than one sample",
			core.ErrInvalidDuration, seconds, rate)
	}

	return n, nil
}

// ToDuration returns exactly round(seconds * rate) samples. Input longer
// than the target keeps its leading samples. Shorter (or equal) input is
// repeated ceil(target/len) times and cut to the target.
func ToDuration(in []float64, rate int, seconds float64) ([]float64, error) {
	target, err := TargetSamples(rate, seconds)
	if err != nil {
		return nil, err
	}

	return ToLength(in, target)
}

// ToLength is ToDuration with the target given in samples.
func ToLength(in []float64, target int) ([]float64, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("crop: %w", core.ErrEmptySignal)
	}

	if target <= 0 {
		return nil, fmt.Errorf("crop: %w: %d samples", core.ErrInvalidDuration, target)
	}

	if len(in) > target {
		return core.CloneSamples(in[:target]), nil
	}

	repeats := (target + len(in) - 1) / len(in)

	return Loop(in, repeats)[:target], nil
}

// Loop concatenates repeats copies of in.
func Loop(in []float64, repeats int) []float64 {
	if repeats <= 0 || len(in) == 0 {
		return []float64{}
	}

	out := make([]float64, 0, len(in)*repeats)
	for range repeats {
		out = append(out, in...)
	}

	return out
}
