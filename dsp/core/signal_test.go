package core

import (
	"errors"
	"testing"
	"time"
)

func TestNewSignalRejectsInvalidRate(t *testing.T) {
	for _, rate := range []int{0, -8000} {
		_, err := NewSignal([]float64{1}, rate)
		if !errors.Is(err, ErrInvalidRate) {
			t.Fatalf("NewSignal(rate=%d) error = %v, want ErrInvalidRate", rate, err)
		}
	}
}

func TestSignalDuration(t *testing.T) {
	s, err := NewSignal(make([]float64, 24000), 16000)
	if err != nil {
		t.Fatalf("NewSignal() error = %v", err)
	}

	if got := s.Duration(); got != 1500*time.Millisecond {
		t.Fatalf("Duration() = %v, want 1.5s", got)
	}
	if got := s.Seconds(); got != 1.5 {
		t.Fatalf("Seconds() = %v, want 1.5", got)
	}
	if got := (Signal{Samples: []float64{1}}).Seconds(); got != 0 {
		t.Fatalf("Seconds() with zero rate = %v, want 0", got)
	}
}

func TestSignalCloneIsIndependent(t *testing.T) {
	s := Signal{Samples: []float64{1, 2, 3}, SampleRate: 8000}
	c := s.Clone()
	c.Samples[0] = 42

	if s.Samples[0] != 1 {
		t.Fatalf("Clone() aliased input: %v", s.Samples)
	}
	if c.SampleRate != s.SampleRate {
		t.Fatalf("Clone() rate = %d, want %d", c.SampleRate, s.SampleRate)
	}
}

func TestCloneSamplesNil(t *testing.T) {
	out := CloneSamples(nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("CloneSamples(nil) = %#v, want empty non-nil", out)
	}
}
