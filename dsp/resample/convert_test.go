package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audioprep/dsp/core"
)

func TestConvertIdentity(t *testing.T) {
	in := sine(440, 16000, 1234)

	out, err := Convert(in, 16000, 16000)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}

	out[0] = 99
	if in[0] == 99 {
		t.Fatal("Convert() aliased its input")
	}
}

func TestConvertInvalidRate(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
	}{
		{name: "zero from", from: 0, to: 16000},
		{name: "negative to", from: 16000, to: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert([]float64{1, 2}, tt.from, tt.to)
			if !errors.Is(err, ErrInvalidRate) {
				t.Fatalf("Convert() error = %v, want ErrInvalidRate", err)
			}
			if !errors.Is(err, core.ErrInvalidRate) {
				t.Fatalf("Convert() error = %v, want core.ErrInvalidRate", err)
			}
		})
	}
}

func TestConvertLengthRule(t *testing.T) {
	tests := []struct {
		from, to, n, want int
	}{
		{from: 44100, to: 16000, n: 44100, want: 16000},
		{from: 44100, to: 16000, n: 1000, want: 363}, // ceil(1000*160/441)
		{from: 8000, to: 16000, n: 7, want: 14},
		{from: 48000, to: 16000, n: 10, want: 4}, // ceil(10/3)
		{from: 22050, to: 16000, n: 1, want: 1},
		{from: 16000, to: 22050, n: 0, want: 0},
	}

	for _, tt := range tests {
		out, err := Convert(make([]float64, tt.n), tt.from, tt.to)
		if err != nil {
			t.Fatalf("Convert(%d->%d) error = %v", tt.from, tt.to, err)
		}
		if len(out) != tt.want {
			t.Fatalf("Convert(%d->%d, n=%d) len = %d, want %d", tt.from, tt.to, tt.n, len(out), tt.want)
		}
		if got := OutputLen(tt.n, tt.from, tt.to); got != tt.want {
			t.Fatalf("OutputLen(%d->%d, n=%d) = %d, want %d", tt.from, tt.to, tt.n, got, tt.want)
		}
	}
}

func TestConvertPreservesToneAndTiming(t *testing.T) {
	tests := []struct {
		from, to int
	}{
		{from: 8000, to: 16000},
		{from: 48000, to: 16000},
		{from: 44100, to: 16000},
	}

	const freq = 200.0

	for _, tt := range tests {
		in := sine(freq, float64(tt.from), tt.from/2)

		out, err := Convert(in, tt.from, tt.to)
		if err != nil {
			t.Fatalf("Convert(%d->%d) error = %v", tt.from, tt.to, err)
		}

		want := sine(freq, float64(tt.to), len(out))
		for i := 128; i < len(out)-128; i++ {
			if d := math.Abs(out[i] - want[i]); d > 0.05 {
				t.Fatalf("%d->%d: out[%d]=%.4f want %.4f (diff %.4f)", tt.from, tt.to, i, out[i], want[i], d)
			}
		}
	}
}

func TestConvertAttenuatesAboveNewNyquist(t *testing.T) {
	in := sine(12000, 48000, 48000)

	out, err := Convert(in, 48000, 16000)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if atten := -levelDB(rms(out[256:len(out)-256]), rms(in)); atten < 30 {
		t.Fatalf("attenuation %.2f dB < 30 dB", atten)
	}
}
