package silence

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audioprep/dsp/core"
	timestats "github.com/cwbudde/algo-audioprep/stats/time"
)

const (
	// DefaultEnergyThreshold is the frame energy (sum of squares) a frame
	// must exceed to be kept.
	DefaultEnergyThreshold = 0.01
	// DefaultFrameSeconds is the analysis frame duration.
	DefaultFrameSeconds = 0.02
	// DefaultHopSeconds is the frame advance.
	DefaultHopSeconds = 0.01
)

// Option configures a Remover.
type Option func(*removerConfig)

type removerConfig struct {
	threshold    float64
	frameSeconds float64
	hopSeconds   float64
}

func defaultRemoverConfig() removerConfig {
	return removerConfig{
		threshold:    DefaultEnergyThreshold,
		frameSeconds: DefaultFrameSeconds,
		hopSeconds:   DefaultHopSeconds,
	}
}

// WithEnergyThreshold sets the keep threshold.
func WithEnergyThreshold(v float64) Option {
	return func(cfg *removerConfig) {
		cfg.threshold = v
	}
}

// WithFrameSeconds sets the analysis frame duration.
func WithFrameSeconds(v float64) Option {
	return func(cfg *removerConfig) {
		cfg.frameSeconds = v
	}
}

// WithHopSeconds sets the frame advance.
func WithHopSeconds(v float64) Option {
	return func(cfg *removerConfig) {
		cfg.hopSeconds = v
	}
}

// Remover deletes low-energy frames. It holds no mutable state and is safe
// for concurrent use.
type Remover struct {
	cfg removerConfig
}

// NewRemover creates a Remover.
func NewRemover(opts ...Option) (*Remover, error) {
	cfg := defaultRemoverConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.threshold < 0 || math.IsNaN(cfg.threshold) || math.IsInf(cfg.threshold, 0) {
		return nil, fmt.Errorf("silence: energy threshold must be finite and >= 0: %f", cfg.threshold)
	}

	if !(cfg.frameSeconds > 0) || math.IsInf(cfg.frameSeconds, 0) {
		return nil, fmt.Errorf("silence: frame duration must be > 0: %f", cfg.frameSeconds)
	}

	if !(cfg.hopSeconds > 0) || math.IsInf(cfg.hopSeconds, 0) {
		return nil, fmt.Errorf("silence: hop duration must be > 0: %f", cfg.hopSeconds)
	}

	return &Remover{cfg: cfg}, nil
}

// RemoveByEnergy runs a Remover with default framing and the given threshold.
func RemoveByEnergy(in []float64, rate int, threshold float64) ([]float64, error) {
	r, err := NewRemover(WithEnergyThreshold(threshold))
	if err != nil {
		return nil, err
	}

	return r.Process(in, rate)
}

// Threshold returns the keep threshold.
func (r *Remover) Threshold() float64 { return r.cfg.threshold }

// Framing returns the frame and hop lengths in samples for rate:
// int(rate*frameSeconds) and int(rate*hopSeconds), each at least 1.
func (r *Remover) Framing(rate int) (frame, hop int) {
	frame = max(1, int(float64(rate)*r.cfg.frameSeconds))
	hop = max(1, int(float64(rate)*r.cfg.hopSeconds))

	return frame, hop
}

// EnergyProfile returns the energy of each frame starting every hop samples.
func (r *Remover) EnergyProfile(in []float64, rate int) ([]float64, error) {
	if err := core.ValidateRate(rate); err != nil {
		return nil, fmt.Errorf("silence: %w", err)
	}

	frame, hop := r.Framing(rate)

	return timestats.FrameEnergy(in, frame, hop), nil
}

// Mask returns one keep flag per input sample. Each frame decision covers
// hop samples starting at the frame start; the expansion is cut or padded
// with false to the input length.
func (r *Remover) Mask(in []float64, rate int) ([]bool, error) {
	energy, err := r.EnergyProfile(in, rate)
	if err != nil {
		return nil, err
	}

	_, hop := r.Framing(rate)
	mask := make([]bool, len(in))

	for f, e := range energy {
		if e <= r.cfg.threshold {
			continue
		}

		start := f * hop
		end := min(start+hop, len(mask))
		for i := start; i < end; i++ {
			mask[i] = true
		}
	}

	return mask, nil
}

// Process returns the samples whose mask flag is set, in original order.
func (r *Remover) Process(in []float64, rate int) ([]float64, error) {
	mask, err := r.Mask(in, rate)
	if err != nil {
		return nil, err
	}

	return Apply(in, mask), nil
}

// Apply keeps in[i] where mask[i] is true. Samples beyond the mask are
// dropped.
func Apply(in []float64, mask []bool) []float64 {
	out := make([]float64, 0, len(in))
	for i, keep := range mask {
		if keep && i < len(in) {
			out = append(out, in[i])
		}
	}

	return out
}
