package resample

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audioprep/dsp/core"
)

// Convert resamples a complete signal from fromRate to toRate in one call.
//
// Equal rates return a copy of the input. Otherwise the rate ratio is
// reduced (or approximated, see WithMaxDenominator) to up/down and the
// signal runs through the polyphase filter with its group delay removed, so
// output sample j lines up with input time j*down/up.
//
// The output length is always ceil(len(input) * up / down).
func Convert(input []float64, fromRate, toRate int, opts ...Option) ([]float64, error) {
	if fromRate <= 0 || toRate <= 0 {
		return nil, fmt.Errorf("%w: %d Hz -> %d Hz", ErrInvalidRate, fromRate, toRate)
	}

	if fromRate == toRate {
		return core.CloneSamples(input), nil
	}

	r, err := NewForRates(float64(fromRate), float64(toRate), opts...)
	if err != nil {
		return nil, err
	}

	return r.Convert(input), nil
}

// OutputLen returns the number of samples Convert produces for n input
// samples.
func OutputLen(n, fromRate, toRate int, opts ...Option) int {
	if n <= 0 || fromRate <= 0 || toRate <= 0 {
		return 0
	}

	if fromRate == toRate {
		return n
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	up, down := approximateRatio(float64(toRate)/float64(fromRate), cfg.maxDen)

	return ceilDiv(n*up, down)
}

// GroupDelay returns the prototype filter delay in output samples.
func (r *Resampler) GroupDelay() float64 {
	return float64(len(r.taps)-1) / 2 / float64(r.down)
}

// Convert resamples a complete signal with the group delay removed and
// returns exactly ceil(len(input)*up/down) samples. Streaming state is reset
// before and after the call.
func (r *Resampler) Convert(input []float64) []float64 {
	want := ceilDiv(len(input)*r.up, r.down)
	if want == 0 {
		return []float64{}
	}

	skip := int(math.Round(r.GroupDelay()))
	tail := ceilDiv(skip*r.down, r.up)

	padded := make([]float64, len(input)+tail)
	copy(padded, input)

	r.Reset()
	out := r.Process(padded)
	r.Reset()

	res := make([]float64, want)
	if skip < len(out) {
		copy(res, out[skip:])
	}

	return res
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}

	return (a + b - 1) / b
}
