package resample

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-audioprep/dsp/core"
)

var (
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidRate indicates an invalid input/output sample rate. It matches
	// core.ErrInvalidRate under errors.Is.
	ErrInvalidRate = fmt.Errorf("resample: %w", core.ErrInvalidRate)
	// ErrUnknownQuality is returned by ParseQuality for an unrecognized name.
	ErrUnknownQuality = errors.New("resample: unknown quality")
)

// Quality selects the anti-aliasing filter.
type Quality int

const (
	// QualityFast uses short filters with about 55 dB of stopband rejection.
	QualityFast Quality = iota
	// QualityBalanced is the default, about 75 dB.
	QualityBalanced
	// QualityBest uses long filters with about 90 dB.
	QualityBest
)

// String returns the name accepted by ParseQuality.
func (q Quality) String() string {
	switch q {
	case QualityFast:
		return "fast"
	case QualityBest:
		return "best"
	default:
		return "balanced"
	}
}

// ParseQuality maps "fast", "balanced" or "best" (any case) to a Quality.
// The empty string selects QualityBalanced.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fast":
		return QualityFast, nil
	case "", "balanced":
		return QualityBalanced, nil
	case "best":
		return QualityBest, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid values: fast, balanced, best)", ErrUnknownQuality, s)
	}
}

// filterProfile holds the prototype filter parameters of a quality mode.
type filterProfile struct {
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
}

func profileFor(q Quality) filterProfile {
	switch q {
	case QualityFast:
		return filterProfile{tapsPerPhase: 16, cutoffScale: 0.88, kaiserBeta: 5.0}
	case QualityBest:
		return filterProfile{tapsPerPhase: 64, cutoffScale: 0.96, kaiserBeta: 9.0}
	default:
		return filterProfile{tapsPerPhase: 32, cutoffScale: 0.92, kaiserBeta: 7.5}
	}
}

const defaultMaxDenominator = 4096

type config struct {
	quality Quality
	maxDen  int
}

// Option configures the resampler.
type Option func(*config)

// WithQuality selects the anti-aliasing filter.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithMaxDenominator caps the denominator of the rational approximation of
// the rate ratio. Non-positive values are ignored.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

func defaultConfig() config {
	return config{
		quality: QualityBalanced,
		maxDen:  defaultMaxDenominator,
	}
}

func buildConfig(opts []Option) config {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Resampler performs rational sample-rate conversion with a polyphase FIR.
// It keeps streaming state between Process calls and is not safe for
// concurrent use.
type Resampler struct {
	up   int
	down int

	taps       []float64
	phases     [][]float64
	maxPhaseLn int

	// Streaming position: next input index to interpolate at, its sub-sample
	// phase, and the number of samples consumed so far.
	phase   int
	next    int
	totalIn int
	history []float64
}

// NewRational creates a resampler for ratio up/down. The ratio is reduced
// first.
func NewRational(up, down int, opts ...Option) (*Resampler, error) {
	if up <= 0 || down <= 0 {
		return nil, fmt.Errorf("%w: %d/%d", ErrInvalidRatio, up, down)
	}

	g := gcd(up, down)
	up /= g
	down /= g

	cfg := buildConfig(opts)

	taps, phases, maxPhaseLn, err := designPolyphaseFIR(up, down, profileFor(cfg.quality))
	if err != nil {
		return nil, err
	}

	return &Resampler{
		up:         up,
		down:       down,
		taps:       taps,
		phases:     phases,
		maxPhaseLn: maxPhaseLn,
		history:    make([]float64, 0, max(0, maxPhaseLn-1)),
	}, nil
}

// NewForRates creates a resampler by approximating outRate/inRate as a ratio
// whose denominator does not exceed the WithMaxDenominator bound.
func NewForRates(inRate, outRate float64, opts ...Option) (*Resampler, error) {
	if !(inRate > 0) || !(outRate > 0) || math.IsInf(inRate, 0) || math.IsInf(outRate, 0) {
		return nil, fmt.Errorf("%w: %g Hz -> %g Hz", ErrInvalidRate, inRate, outRate)
	}

	up, down := approximateRatio(outRate/inRate, buildConfig(opts).maxDen)

	return NewRational(up, down, opts...)
}

// Reset clears the streaming state.
func (r *Resampler) Reset() {
	r.phase = 0
	r.next = 0
	r.totalIn = 0
	r.history = r.history[:0]
}

// Process converts one input block. Consecutive blocks produce the same
// output as a single call on their concatenation.
func (r *Resampler) Process(input []float64) []float64 {
	if len(input) == 0 {
		return nil
	}

	out := make([]float64, 0, r.PredictOutputLen(len(input)))

	work := make([]float64, len(r.history)+len(input))
	copy(work, r.history)
	copy(work[len(r.history):], input)

	first := r.totalIn - len(r.history)
	last := r.totalIn + len(input) - 1

	for r.next <= last {
		var y float64

		for k, c := range r.phases[r.phase] {
			idx := r.next - k
			if idx < first || idx > last {
				continue
			}

			y += c * work[idx-first]
		}

		out = append(out, y)

		r.phase += r.down
		r.next += r.phase / r.up
		r.phase %= r.up
	}

	r.totalIn += len(input)

	keep := min(max(0, r.maxPhaseLn-1), len(work))
	r.history = append(r.history[:0], work[len(work)-keep:]...)

	return out
}

// PredictOutputLen returns the number of samples the next Process call
// produces for inputLen samples.
func (r *Resampler) PredictOutputLen(inputLen int) int {
	if inputLen <= 0 {
		return 0
	}

	last := r.totalIn + inputLen - 1
	i, phase := r.next, r.phase

	count := 0
	for i <= last {
		count++
		phase += r.down
		i += phase / r.up
		phase %= r.up
	}

	return count
}

// Ratio returns the reduced up/down conversion factors.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}
