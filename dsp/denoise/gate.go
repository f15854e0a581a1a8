package denoise

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audioprep/dsp/stft"
	"github.com/cwbudde/algo-audioprep/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// DefaultReduceFactor scales the noise profile before subtraction.
	DefaultReduceFactor = 0.02
	// DefaultWindowLength is the STFT frame length in samples.
	DefaultWindowLength = 1024
	// DefaultHopLength is the STFT frame advance in samples.
	DefaultHopLength = 512
	// DefaultNoiseFrames is the number of leading frames averaged into the
	// noise profile.
	DefaultNoiseFrames = 5
)

// Option configures a Gate.
type Option func(*config)

type config struct {
	reduceFactor float64
	windowLength int
	hopLength    int
	noiseFrames  int
	windowType   window.Type
}

func defaultConfig() config {
	return config{
		reduceFactor: DefaultReduceFactor,
		windowLength: DefaultWindowLength,
		hopLength:    DefaultHopLength,
		noiseFrames:  DefaultNoiseFrames,
		windowType:   window.TypeHann,
	}
}

// WithReduceFactor sets the profile multiplier. Zero disables reduction.
func WithReduceFactor(f float64) Option {
	return func(cfg *config) {
		cfg.reduceFactor = f
	}
}

// WithWindowLength sets the STFT frame length.
func WithWindowLength(n int) Option {
	return func(cfg *config) {
		cfg.windowLength = n
	}
}

// WithHopLength sets the STFT frame advance.
func WithHopLength(n int) Option {
	return func(cfg *config) {
		cfg.hopLength = n
	}
}

// WithNoiseFrames sets how many leading frames form the noise profile.
func WithNoiseFrames(n int) Option {
	return func(cfg *config) {
		cfg.noiseFrames = n
	}
}

// WithWindow selects the STFT window.
func WithWindow(t window.Type) Option {
	return func(cfg *config) {
		cfg.windowType = t
	}
}

// Gate is a spectral noise gate. It is not safe for concurrent use.
type Gate struct {
	cfg config
	tr  *stft.Transformer
}

// NewGate creates a Gate with the given options.
func NewGate(opts ...Option) (*Gate, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	tr, err := stft.New(
		stft.WithWindowLength(cfg.windowLength),
		stft.WithHopLength(cfg.hopLength),
		stft.WithWindow(cfg.windowType),
	)
	if err != nil {
		return nil, fmt.Errorf("denoise: %w", err)
	}

	return &Gate{cfg: cfg, tr: tr}, nil
}

// SpectralGate runs a default Gate with the given reduce factor.
func SpectralGate(in []float64, reduceFactor float64) ([]float64, error) {
	g, err := NewGate(WithReduceFactor(reduceFactor))
	if err != nil {
		return nil, err
	}

	return g.Process(in)
}

// ReduceFactor returns the configured profile multiplier.
func (g *Gate) ReduceFactor() float64 { return g.cfg.reduceFactor }

// NoiseFrames returns the number of frames averaged into the profile.
func (g *Gate) NoiseFrames() int { return g.cfg.noiseFrames }

// OutputLen returns the length Process produces for n input samples, the
// natural overlap-add length of the centered frames. With an even window
// this is n rounded down to a multiple of the hop length.
func (g *Gate) OutputLen(n int) int {
	frames := g.tr.FrameCount(n)
	if frames == 0 {
		return 0
	}

	win := g.cfg.windowLength

	return win + g.cfg.hopLength*(frames-1) - 2*(win/2)
}

// Process returns the gated signal. Its length is OutputLen(len(in)), so
// callers must not assume the input length is preserved.
func (g *Gate) Process(in []float64) ([]float64, error) {
	if len(in) == 0 {
		return []float64{}, nil
	}

	spec, err := g.tr.Forward(in)
	if err != nil {
		return nil, fmt.Errorf("denoise: %w", err)
	}

	mag := spec.Magnitude()
	phase := spec.Phase()
	profile := NoiseProfile(mag, g.cfg.noiseFrames)

	if g.cfg.reduceFactor != 0 {
		sub := make([]float64, len(profile))
		vecmath.ScaleBlock(sub, profile, g.cfg.reduceFactor)

		for _, row := range mag {
			for k := range row {
				row[k] = math.Max(row[k]-sub[k], 0)
			}
		}
	}

	gated, err := stft.FromPolar(mag, phase, spec.WindowLength, spec.HopLength)
	if err != nil {
		return nil, fmt.Errorf("denoise: %w", err)
	}

	out, err := g.tr.Inverse(gated, -1)
	if err != nil {
		return nil, fmt.Errorf("denoise: %w", err)
	}

	return out, nil
}

// NoiseProfile returns the per-bin mean magnitude of the first n frames.
// Fewer available frames are averaged as they are.
func NoiseProfile(mag [][]float64, n int) []float64 {
	if len(mag) == 0 || n <= 0 {
		return nil
	}

	n = min(n, len(mag))
	profile := make([]float64, len(mag[0]))

	for _, row := range mag[:n] {
		vecmath.AddBlockInPlace(profile, row)
	}

	vecmath.ScaleBlockInPlace(profile, 1/float64(n))

	return profile
}

func (c config) validate() error {
	if c.reduceFactor < 0 || math.IsNaN(c.reduceFactor) || math.IsInf(c.reduceFactor, 0) {
		return fmt.Errorf("denoise: reduce factor must be finite and >= 0: %f", c.reduceFactor)
	}

	if c.windowLength < 2 {
		return fmt.Errorf("denoise: window length must be >= 2: %d", c.windowLength)
	}

	if c.hopLength <= 0 || c.hopLength > c.windowLength {
		return fmt.Errorf("denoise: hop length must be in [1, %d]: %d", c.windowLength, c.hopLength)
	}

	if c.noiseFrames <= 0 {
		return fmt.Errorf("denoise: noise frames must be > 0: %d", c.noiseFrames)
	}

	return nil
}
