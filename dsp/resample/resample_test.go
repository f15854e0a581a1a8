package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audioprep/internal/testutil"
)

func sine(freq, sampleRate float64, n int) []float64 {
	return testutil.DeterministicSine(freq, sampleRate, 1, n)
}

func rms(x []float64) float64 { return testutil.RMS(x) }

// levelDB returns 20*log10(out/in), or -300 when either level is zero.
func levelDB(out, in float64) float64 {
	if in == 0 || out == 0 {
		return -300
	}
	return 20 * math.Log10(out/in)
}

func TestNewRationalValidation(t *testing.T) {
	for _, tc := range [][2]int{{0, 1}, {1, 0}, {-2, 3}} {
		if _, err := NewRational(tc[0], tc[1]); !errors.Is(err, ErrInvalidRatio) {
			t.Fatalf("NewRational(%d, %d) error = %v, want ErrInvalidRatio", tc[0], tc[1], err)
		}
	}
}

func TestNewForRatesReducesRatio(t *testing.T) {
	tests := []struct {
		in, out  float64
		up, down int
	}{
		{in: 44100, out: 16000, up: 160, down: 441},
		{in: 48000, out: 16000, up: 1, down: 3},
		{in: 8000, out: 16000, up: 2, down: 1},
		{in: 22050, out: 16000, up: 320, down: 441},
	}

	for _, tc := range tests {
		r, err := NewForRates(tc.in, tc.out)
		if err != nil {
			t.Fatalf("NewForRates(%v, %v) error = %v", tc.in, tc.out, err)
		}

		up, down := r.Ratio()
		if up != tc.up || down != tc.down {
			t.Fatalf("NewForRates(%v, %v) ratio = %d/%d, want %d/%d", tc.in, tc.out, up, down, tc.up, tc.down)
		}
	}
}

func TestNewForRatesRejectsBadRates(t *testing.T) {
	for _, rates := range [][2]float64{{0, 16000}, {16000, -1}, {math.NaN(), 16000}, {math.Inf(1), 16000}} {
		if _, err := NewForRates(rates[0], rates[1]); !errors.Is(err, ErrInvalidRate) {
			t.Fatalf("NewForRates(%v, %v) error = %v, want ErrInvalidRate", rates[0], rates[1], err)
		}
	}
}

func TestApproximateRatioRespectsMaxDenominator(t *testing.T) {
	num, den := approximateRatio(16000.0/44100.0, 64)
	if den > 64 {
		t.Fatalf("den = %d, want <= 64", den)
	}

	if got := float64(num) / float64(den); math.Abs(got-16000.0/44100.0) > 1e-3 {
		t.Fatalf("ratio = %d/%d = %v, want about %v", num, den, got, 16000.0/44100.0)
	}

	if num, den := approximateRatio(math.NaN(), 0); num != 1 || den != 1 {
		t.Fatalf("approximateRatio(NaN) = %d/%d, want 1/1", num, den)
	}
}

func TestParseQuality(t *testing.T) {
	tests := []struct {
		in   string
		want Quality
	}{
		{in: "fast", want: QualityFast},
		{in: "", want: QualityBalanced},
		{in: "Balanced", want: QualityBalanced},
		{in: " best ", want: QualityBest},
	}

	for _, tc := range tests {
		got, err := ParseQuality(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseQuality(%q) = %v, %v, want %v", tc.in, got, err, tc.want)
		}

		if back, _ := ParseQuality(got.String()); back != got {
			t.Fatalf("ParseQuality(%q.String()) = %v", got, back)
		}
	}

	if _, err := ParseQuality("ultra"); !errors.Is(err, ErrUnknownQuality) {
		t.Fatalf("ParseQuality(ultra) error = %v, want ErrUnknownQuality", err)
	}
}

func TestPredictOutputLenMatchesProcess(t *testing.T) {
	r, err := NewRational(160, 441)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	in := sine(1000, 44100, 1001)
	want := r.PredictOutputLen(len(in))

	if got := len(r.Process(in)); got != want {
		t.Fatalf("len(out) = %d, want %d", got, want)
	}
}

func TestProcessIsChunkInvariant(t *testing.T) {
	whole, err := NewForRates(22050, 16000)
	if err != nil {
		t.Fatalf("NewForRates() error = %v", err)
	}

	chunked, err := NewForRates(22050, 16000)
	if err != nil {
		t.Fatalf("NewForRates() error = %v", err)
	}

	in := sine(700, 22050, 8192)
	want := whole.Process(in)

	var got []float64
	for i := 0; i < len(in); i += 313 {
		got = append(got, chunked.Process(in[i:min(len(in), i+313)])...)
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestQualityPassbandAndStopband(t *testing.T) {
	// 24 kHz -> 12 kHz: 1 kHz must pass, 8.5 kHz lies above the new Nyquist.
	tests := []struct {
		quality       Quality
		maxPassbandDB float64
		minStopbandDB float64
	}{
		{quality: QualityFast, maxPassbandDB: 0.7, minStopbandDB: 20},
		{quality: QualityBalanced, maxPassbandDB: 0.35, minStopbandDB: 35},
		{quality: QualityBest, maxPassbandDB: 0.2, minStopbandDB: 50},
	}

	for _, tc := range tests {
		t.Run(tc.quality.String(), func(t *testing.T) {
			for _, f := range []float64{1000, 8500} {
				r, err := NewRational(1, 2, WithQuality(tc.quality))
				if err != nil {
					t.Fatalf("NewRational() error = %v", err)
				}

				in := sine(f, 24000, 32768)
				out := r.Process(in)
				db := levelDB(rms(out[2048:]), rms(in[4096:]))

				if f < 6000 && math.Abs(db) > tc.maxPassbandDB {
					t.Fatalf("passband change %.2f dB > %.2f dB", math.Abs(db), tc.maxPassbandDB)
				}

				if f > 6000 && -db < tc.minStopbandDB {
					t.Fatalf("stopband attenuation %.2f dB < %.2f dB", -db, tc.minStopbandDB)
				}
			}
		})
	}
}
