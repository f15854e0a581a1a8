package crop

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audioprep/dsp/core"
	"github.com/cwbudde/algo-audioprep/internal/testutil"
)

func TestToDurationExactLength(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		rate    int
		seconds float64
		want    int
	}{
		{name: "shorter loops", n: 16000, rate: 16000, seconds: 2, want: 32000},
		{name: "longer crops", n: 50000, rate: 16000, seconds: 2, want: 32000},
		{name: "equal", n: 32000, rate: 16000, seconds: 2, want: 32000},
		{name: "fractional seconds", n: 100, rate: 8000, seconds: 0.0125, want: 100},
		{name: "uneven repeat", n: 7, rate: 10, seconds: 2, want: 20},
		{name: "single sample", n: 1, rate: 8000, seconds: 0.5, want: 4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := testutil.DeterministicNoise(1, 1, tt.n)

			out, err := ToDuration(in, tt.rate, tt.seconds)
			if err != nil {
				t.Fatalf("ToDuration() error = %v", err)
			}
			if len(out) != tt.want {
				t.Fatalf("len(out) = %d, want %d", len(out), tt.want)
			}
		})
	}
}

func TestToDurationLoopLaw(t *testing.T) {
	in := []float64{1, 2, 3}

	out, err := ToLength(in, 8)
	if err != nil {
		t.Fatalf("ToLength() error = %v", err)
	}

	want := []float64{1, 2, 3, 1, 2, 3, 1, 2}
	testutil.RequireSliceNearlyEqual(t, out, want, 0)

	for i := range out {
		if out[i] != in[i%len(in)] {
			t.Fatalf("out[%d] = %v, want in[%d] = %v", i, out[i], i%len(in), in[i%len(in)])
		}
	}
}

func TestToDurationCropKeepsPrefix(t *testing.T) {
	in := testutil.DeterministicSine(440, 8000, 1, 9000)

	out, err := ToDuration(in, 8000, 1)
	if err != nil {
		t.Fatalf("ToDuration() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, out, in[:8000], 0)

	out[0] = 42
	if in[0] == 42 {
		t.Fatal("ToDuration() aliased its input")
	}
}

func TestToDurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      []float64
		rate    int
		seconds float64
		want    error
	}{
		{name: "empty", in: nil, rate: 16000, seconds: 1, want: core.ErrEmptySignal},
		{name: "zero duration", in: []float64{1}, rate: 16000, seconds: 0, want: core.ErrInvalidDuration},
		{name: "negative duration", in: []float64{1}, rate: 16000, seconds: -1, want: core.ErrInvalidDuration},
		{name: "nan duration", in: []float64{1}, rate: 16000, seconds: math.NaN(), want: core.ErrInvalidDuration},
		{name: "sub-sample duration", in: []float64{1}, rate: 10, seconds: 0.01, want: core.ErrInvalidDuration},
		{name: "zero rate", in: []float64{1}, rate: 0, seconds: 1, want: core.ErrInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToDuration(tt.in, tt.rate, tt.seconds)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ToDuration() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoop(t *testing.T) {
	out := Loop([]float64{1, 2}, 3)
	testutil.RequireSliceNearlyEqual(t, out, []float64{1, 2, 1, 2, 1, 2}, 0)

	if got := Loop([]float64{1}, 0); len(got) != 0 {
		t.Fatalf("Loop(repeats=0) = %v, want empty", got)
	}
}
