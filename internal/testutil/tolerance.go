package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and every pair of samples is within eps of each other. eps 0 demands exact
// equality.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
		return
	}

	for i, g := range got {
		if d := math.Abs(g - want[i]); !(d <= eps) && g != want[i] {
			t.Fatalf("sample %d = %v, want %v (|diff| %g > %g)", i, g, want[i], d, eps)
			return
		}
	}
}

// RequireFinite fails t at the first NaN or infinite sample.
func RequireFinite(t testing.TB, samples []float64) {
	t.Helper()

	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d is %v, want a finite value", i, v)
			return
		}
	}
}
