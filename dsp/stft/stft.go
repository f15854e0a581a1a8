package stft

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-audioprep/dsp/window"
	algofft "github.com/cwbudde/algo-fft"
)

const (
	defaultWindowLength = 1024
	defaultHopLength    = 512
	normFloor           = 1e-12
)

var errMismatchedSpectrogram = errors.New("stft: spectrogram framing does not match transformer")

// Option configures a Transformer.
type Option func(*config)

type config struct {
	windowLength int
	hopLength    int
	windowType   window.Type
}

func defaultConfig() config {
	return config{
		windowLength: defaultWindowLength,
		hopLength:    defaultHopLength,
		windowType:   window.TypeHann,
	}
}

// WithWindowLength sets the frame and FFT length in samples.
func WithWindowLength(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.windowLength = n
		}
	}
}

// WithHopLength sets the frame advance in samples.
func WithHopLength(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.hopLength = n
		}
	}
}

// WithWindow selects the analysis/synthesis window. The periodic form is
// always used.
func WithWindow(t window.Type) Option {
	return func(cfg *config) {
		cfg.windowType = t
	}
}

// Spectrogram is a matrix of one-sided complex bins indexed [frame][bin].
type Spectrogram struct {
	Frames       [][]complex128
	WindowLength int
	HopLength    int
}

// NumFrames returns the frame count.
func (s Spectrogram) NumFrames() int { return len(s.Frames) }

// NumBins returns the number of one-sided bins per frame.
func (s Spectrogram) NumBins() int { return s.WindowLength/2 + 1 }

// Transformer runs forward and inverse STFTs with fixed framing.
// It is not safe for concurrent use.
type Transformer struct {
	windowLength int
	hopLength    int
	windowType   window.Type
	coeffs       []float64

	plan    *algofft.Plan[complex128]
	scratch []complex128
	frame   []complex128
}

// New creates a Transformer. The hop must not exceed the window length.
func New(opts ...Option) (*Transformer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.windowLength < 2 {
		return nil, fmt.Errorf("stft: window length must be >= 2: %d", cfg.windowLength)
	}

	if cfg.hopLength <= 0 || cfg.hopLength > cfg.windowLength {
		return nil, fmt.Errorf("stft: hop length must be in [1, %d]: %d", cfg.windowLength, cfg.hopLength)
	}

	plan, err := algofft.NewPlan64(cfg.windowLength)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan: %w", err)
	}

	return &Transformer{
		windowLength: cfg.windowLength,
		hopLength:    cfg.hopLength,
		windowType:   cfg.windowType,
		coeffs:       window.Generate(cfg.windowType, cfg.windowLength, window.WithPeriodic()),
		plan:         plan,
		scratch:      make([]complex128, cfg.windowLength),
		frame:        make([]complex128, cfg.windowLength),
	}, nil
}

// WindowLength returns the frame length in samples.
func (t *Transformer) WindowLength() int { return t.windowLength }

// HopLength returns the frame advance in samples.
func (t *Transformer) HopLength() int { return t.hopLength }

// Bins returns the number of one-sided bins per frame.
func (t *Transformer) Bins() int { return t.windowLength/2 + 1 }

// FrameCount returns the number of centered frames for n input samples.
func (t *Transformer) FrameCount(n int) int {
	if n <= 0 {
		return 0
	}

	return 1 + (n+2*(t.windowLength/2)-t.windowLength)/t.hopLength
}

// Forward computes the centered STFT of x.
func (t *Transformer) Forward(x []float64) (Spectrogram, error) {
	out := Spectrogram{WindowLength: t.windowLength, HopLength: t.hopLength}

	frames := t.FrameCount(len(x))
	if frames == 0 {
		return out, nil
	}

	half := t.windowLength / 2
	bins := t.Bins()
	out.Frames = make([][]complex128, frames)

	for f := range frames {
		start := f*t.hopLength - half

		for i := range t.windowLength {
			v := 0.0
			if idx := start + i; idx >= 0 && idx < len(x) {
				v = x[idx]
			}

			t.scratch[i] = complex(v*t.coeffs[i], 0)
		}

		if err := t.plan.Forward(t.frame, t.scratch); err != nil {
			return Spectrogram{}, fmt.Errorf("stft: forward FFT failed: %w", err)
		}

		row := make([]complex128, bins)
		copy(row, t.frame[:bins])
		out.Frames[f] = row
	}

	return out, nil
}

// Inverse reconstructs a signal by weighted overlap-add. A negative length
// returns the natural hop*(frames-1) samples; otherwise the result is cut or
// zero padded to exactly length samples.
func (t *Transformer) Inverse(s Spectrogram, length int) ([]float64, error) {
	if s.WindowLength != t.windowLength || s.HopLength != t.hopLength {
		return nil, fmt.Errorf("%w: window %d/%d hop %d/%d", errMismatchedSpectrogram,
			s.WindowLength, t.windowLength, s.HopLength, t.hopLength)
	}

	frames := len(s.Frames)
	half := t.windowLength / 2

	natural := 0
	if frames > 0 {
		natural = t.windowLength + t.hopLength*(frames-1) - 2*half
	}

	if length < 0 {
		length = natural
	}

	out := make([]float64, length)
	if frames == 0 || length == 0 {
		return out, nil
	}

	full := t.windowLength + t.hopLength*(frames-1)
	wet := make([]float64, full)
	norm := window.OverlapSquareSum(t.coeffs, t.hopLength, frames)
	bins := t.Bins()

	for f, row := range s.Frames {
		if len(row) != bins {
			return nil, fmt.Errorf("%w: frame %d has %d bins, want %d", errMismatchedSpectrogram, f, len(row), bins)
		}

		t.mirror(row)

		if err := t.plan.Inverse(t.frame, t.scratch); err != nil {
			return nil, fmt.Errorf("stft: inverse FFT failed: %w", err)
		}

		pos := f * t.hopLength
		for i, w := range t.coeffs {
			wet[pos+i] += real(t.frame[i]) * w
		}
	}

	for i := range out {
		idx := half + i
		if idx >= full {
			break
		}

		if norm[idx] > normFloor {
			out[i] = wet[idx] / norm[idx]
		} else {
			out[i] = wet[idx]
		}
	}

	return out, nil
}

// mirror expands one-sided bins into the full Hermitian spectrum in scratch.
func (t *Transformer) mirror(row []complex128) {
	n := t.windowLength
	copy(t.scratch, row)

	t.scratch[0] = complex(real(row[0]), 0)
	if n%2 == 0 {
		t.scratch[n/2] = complex(real(row[n/2]), 0)
	}

	for k := 1; k < len(row); k++ {
		if n-k < len(row) {
			continue
		}

		v := row[k]
		t.scratch[n-k] = complex(real(v), -imag(v))
	}
}
