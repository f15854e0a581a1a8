package augment

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// Transform produces one variant of x. Implementations must not modify x.
type Transform func(x []float64, sampleRate int, rng *rand.Rand) ([]float64, error)

// Built-in transform names.
const (
	NameWhiteNoise  = "white_noise"
	NameTimeShift   = "time_shift"
	NamePitchShift  = "pitch_shift"
	NameSpeed       = "speed"
	NameTimeStretch = "time_stretch"
	NameVolume      = "volume"
)

var (
	// ErrUnknownTransform is returned for a name missing from the registry.
	ErrUnknownTransform = errors.New("augment: unknown transform")

	errDuplicateTransform = errors.New("augment: duplicate transform")
)

// Registry maps transform names to implementations.
type Registry struct {
	transforms map[string]Transform
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{transforms: make(map[string]Transform)}
}

// Register adds a transform under name.
func (r *Registry) Register(name string, t Transform) error {
	if name == "" {
		return errors.New("augment: empty transform name")
	}

	if t == nil {
		return errors.New("augment: nil transform")
	}

	if _, exists := r.transforms[name]; exists {
		return fmt.Errorf("%w: %s", errDuplicateTransform, name)
	}

	r.transforms[name] = t

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, t Transform) {
	if err := r.Register(name, t); err != nil {
		panic(err.Error())
	}
}

// Lookup returns the transform registered under name, or nil.
func (r *Registry) Lookup(name string) Transform {
	return r.transforms[name]
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.transforms))
	for name := range r.transforms {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// DefaultRegistry returns a registry holding the built-in transforms with
// the given parameters.
func DefaultRegistry(params Params) *Registry {
	r := NewRegistry()

	r.MustRegister(NameWhiteNoise, func(x []float64, _ int, rng *rand.Rand) ([]float64, error) {
		return AddNoise(x, params.NoiseFactor, rng), nil
	})
	r.MustRegister(NameTimeShift, func(x []float64, _ int, rng *rand.Rand) ([]float64, error) {
		return Shift(x, params.MaxShift, rng), nil
	})
	r.MustRegister(NamePitchShift, func(x []float64, sampleRate int, _ *rand.Rand) ([]float64, error) {
		return PitchShift(x, sampleRate, params.Semitones)
	})
	r.MustRegister(NameSpeed, func(x []float64, _ int, _ *rand.Rand) ([]float64, error) {
		return Stretch(x, params.SpeedRate)
	})
	r.MustRegister(NameTimeStretch, func(x []float64, _ int, _ *rand.Rand) ([]float64, error) {
		return Stretch(x, params.StretchRate)
	})
	r.MustRegister(NameVolume, func(x []float64, _ int, _ *rand.Rand) ([]float64, error) {
		return Gain(x, params.Gain), nil
	})

	return r
}
