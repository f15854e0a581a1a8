package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAmplitudeToDB(t *testing.T) {
	tests := []struct {
		name      string
		amplitude float64
		ref       float64
		want      float64
	}{
		{name: "unity", amplitude: 1, ref: 1, want: 0},
		{name: "half", amplitude: 0.5, ref: 1, want: -6.020599913279624},
		{name: "silent floors at amin", amplitude: 0, ref: 1, want: -100},
		{name: "both silent", amplitude: 0, ref: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmplitudeToDB(tt.amplitude, tt.ref, 1e-5)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("AmplitudeToDB() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPowerToDB(t *testing.T) {
	if got := PowerToDB(100, 1, 1e-10); math.Abs(got-20) > 1e-12 {
		t.Fatalf("PowerToDB(100) = %v, want 20", got)
	}
	if got := PowerToDB(0, 1, 1e-10); math.Abs(got+100) > 1e-9 {
		t.Fatalf("PowerToDB(0) = %v, want -100", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1) {
		t.Fatal("expected 1 to be finite")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) {
		t.Fatal("expected NaN and Inf to be non-finite")
	}
}
