package core

import (
	"fmt"
	"time"
)

// Signal is a mono sequence of samples at a fixed rate in Hz.
type Signal struct {
	Samples    []float64
	SampleRate int
}

// NewSignal returns a Signal after checking the rate.
func NewSignal(samples []float64, rate int) (Signal, error) {
	s := Signal{Samples: samples, SampleRate: rate}
	if err := s.Validate(); err != nil {
		return Signal{}, err
	}

	return s, nil
}

// Validate reports ErrInvalidRate for a non-positive rate.
func (s Signal) Validate() error {
	return ValidateRate(s.SampleRate)
}

// Len returns the number of samples.
func (s Signal) Len() int {
	return len(s.Samples)
}

// Duration returns len/rate. A signal with an invalid rate has zero duration.
func (s Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}

// Seconds returns the duration in seconds as a float.
func (s Signal) Seconds() float64 {
	if s.SampleRate <= 0 {
		return 0
	}

	return float64(len(s.Samples)) / float64(s.SampleRate)
}

// Clone returns a deep copy.
func (s Signal) Clone() Signal {
	return Signal{Samples: CloneSamples(s.Samples), SampleRate: s.SampleRate}
}

// ValidateRate returns a wrapped ErrInvalidRate when rate <= 0.
func ValidateRate(rate int) error {
	if rate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRate, rate)
	}

	return nil
}

// CloneSamples copies samples into a new slice. A nil input gives an empty,
// non-nil slice.
func CloneSamples(samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)

	return out
}
