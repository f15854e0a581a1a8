package frequency

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func singleBin(n, bin int, amplitude float64) []float64 {
	out := make([]float64, n)
	out[bin] = amplitude
	return out
}

func flat(n int, amplitude float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude
	}
	return out
}

func TestDescribeSingleBin(t *testing.T) {
	// 9 bins at 16 kHz: bin spacing 1 kHz.
	s := Describe(singleBin(9, 3, 2), 16000)

	if !almostEqual(s.Centroid, 3000, 1e-9) {
		t.Fatalf("Centroid = %v, want 3000", s.Centroid)
	}
	if s.Spread != 0 {
		t.Fatalf("Spread = %v, want 0", s.Spread)
	}
	if s.Flatness != 0 {
		t.Fatalf("Flatness = %v, want 0", s.Flatness)
	}
	if !almostEqual(s.Rolloff, 3000, 1e-9) {
		t.Fatalf("Rolloff = %v, want 3000", s.Rolloff)
	}
}

func TestDescribeDegenerate(t *testing.T) {
	if s := Describe(nil, 16000); s != (Shape{}) {
		t.Fatalf("Describe(nil) = %+v, want zero", s)
	}
	if s := Describe([]float64{5}, 16000); s != (Shape{}) {
		t.Fatalf("Describe(single) = %+v, want zero", s)
	}
	if s := Describe(make([]float64, 8), 16000); s != (Shape{}) {
		t.Fatalf("Describe(zeros) = %+v, want zero", s)
	}
}

func TestFlatnessOfFlatSpectrumIsOne(t *testing.T) {
	if got := Flatness(flat(33, 0.3)); !almostEqual(got, 1, 1e-12) {
		t.Fatalf("Flatness = %v, want 1", got)
	}
}

func TestCentroidOfFlatSpectrumIsMidband(t *testing.T) {
	if got := Centroid(flat(9, 1), 16000); !almostEqual(got, 4000, 1e-9) {
		t.Fatalf("Centroid = %v, want 4000", got)
	}
}

func TestSpreadTwoBinsSymmetric(t *testing.T) {
	m := make([]float64, 9)
	m[2], m[6] = 1, 1

	s := Describe(m, 16000)
	if !almostEqual(s.Centroid, 4000, 1e-9) {
		t.Fatalf("Centroid = %v, want 4000", s.Centroid)
	}
	if !almostEqual(s.Spread, 2000, 1e-9) {
		t.Fatalf("Spread = %v, want 2000", s.Spread)
	}
}

func TestRolloffKnownDistribution(t *testing.T) {
	// Energies 1,1,1,1,... cumulative reaches 85% of 10 at the 9th bin.
	got := Rolloff(flat(10, 1), 18000, 0.85)
	if !almostEqual(got, 8000, 1e-9) {
		t.Fatalf("Rolloff = %v, want 8000", got)
	}
}
