package augment

import (
	"errors"
	"fmt"
	"math/rand"
)

// Params holds the built-in transform parameters.
type Params struct {
	NoiseFactor float64
	MaxShift    float64
	Semitones   float64
	SpeedRate   float64
	StretchRate float64
	Gain        float64
}

// DefaultParams returns the stock parameters.
func DefaultParams() Params {
	return Params{
		NoiseFactor: 0.005,
		MaxShift:    0.2,
		Semitones:   2,
		SpeedRate:   1.5,
		StretchRate: 0.5,
		Gain:        1.5,
	}
}

// DefaultTransforms lists the built-in transforms in registration order.
func DefaultTransforms() []string {
	return []string{NameWhiteNoise, NameTimeShift, NamePitchShift, NameSpeed, NameTimeStretch, NameVolume}
}

// Option configures an Augmenter.
type Option func(*config)

type config struct {
	params     Params
	transforms []string
	registry   *Registry
}

func defaultConfig() config {
	return config{
		params:     DefaultParams(),
		transforms: DefaultTransforms(),
	}
}

// WithParams replaces the built-in transform parameters.
func WithParams(p Params) Option {
	return func(cfg *config) {
		cfg.params = p
	}
}

// WithTransforms restricts the candidate set to the named transforms.
func WithTransforms(names ...string) Option {
	return func(cfg *config) {
		if len(names) > 0 {
			cfg.transforms = append([]string(nil), names...)
		}
	}
}

// WithRegistry resolves transform names against r instead of the built-in
// registry.
func WithRegistry(r *Registry) Option {
	return func(cfg *config) {
		cfg.registry = r
	}
}

// Augmenter applies a random selection of transforms. It is not safe for
// concurrent use because it shares one random source.
type Augmenter struct {
	rng        *rand.Rand
	names      []string
	transforms []Transform
}

// New creates an Augmenter drawing all randomness from rng.
func New(rng *rand.Rand, opts ...Option) (*Augmenter, error) {
	if rng == nil {
		return nil, errors.New("augment: nil random source")
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validateParams(cfg.params); err != nil {
		return nil, err
	}

	reg := cfg.registry
	if reg == nil {
		reg = DefaultRegistry(cfg.params)
	}

	a := &Augmenter{rng: rng}

	seen := make(map[string]bool, len(cfg.transforms))
	for _, name := range cfg.transforms {
		if seen[name] {
			continue
		}

		t := reg.Lookup(name)
		if t == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
		}

		seen[name] = true
		a.names = append(a.names, name)
		a.transforms = append(a.transforms, t)
	}

	return a, nil
}

// Transforms returns the candidate transform names.
func (a *Augmenter) Transforms() []string {
	return append([]string(nil), a.names...)
}

// Apply draws between one and all candidate transforms, without repetition
// and in random order, and chains them over x. It returns the variant and
// the names applied, in application order.
func (a *Augmenter) Apply(x []float64, sampleRate int) ([]float64, []string, error) {
	if len(a.transforms) == 0 {
		return append([]float64(nil), x...), nil, nil
	}

	count := a.rng.Intn(len(a.transforms)) + 1
	order := a.rng.Perm(len(a.transforms))[:count]

	out := x
	applied := make([]string, 0, count)

	for _, idx := range order {
		next, err := a.transforms[idx](out, sampleRate, a.rng)
		if err != nil {
			return nil, applied, fmt.Errorf("augment: %s: %w", a.names[idx], err)
		}

		out = next
		applied = append(applied, a.names[idx])
	}

	return out, applied, nil
}

func validateParams(p Params) error {
	if p.NoiseFactor < 0 {
		return fmt.Errorf("augment: noise factor must be >= 0: %f", p.NoiseFactor)
	}

	if p.MaxShift < 0 || p.MaxShift > 1 {
		return fmt.Errorf("augment: max shift must be in [0,1]: %f", p.MaxShift)
	}

	if p.SpeedRate <= 0 || p.StretchRate <= 0 {
		return fmt.Errorf("augment: stretch rates must be > 0: %f, %f", p.SpeedRate, p.StretchRate)
	}

	return nil
}
