package resample

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-audioprep/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// designPolyphaseFIR builds a Kaiser-windowed sinc lowpass with unity gain
// per output phase and splits it into up polyphase branches. It returns the
// prototype, the branches and the longest branch length.
func designPolyphaseFIR(up, down int, p filterProfile) ([]float64, [][]float64, int, error) {
	if up <= 0 || down <= 0 {
		return nil, nil, 0, ErrInvalidRatio
	}

	n := p.tapsPerPhase * up

	fc := 0.5 / float64(max(up, down)) * p.cutoffScale
	if fc <= 0 || fc >= 0.5 {
		return nil, nil, 0, fmt.Errorf("resample: invalid cutoff %.6f", fc)
	}

	taps := window.Generate(window.TypeKaiser, n, window.WithAlpha(p.kaiserBeta))

	center := 0.5 * float64(n-1)
	for i := range taps {
		taps[i] *= 2 * fc * sinc(2*fc*(float64(i)-center))
	}

	sum := vecmath.Sum(taps)
	if sum == 0 {
		return nil, nil, 0, errors.New("resample: designed zero-sum filter")
	}

	vecmath.ScaleBlockInPlace(taps, float64(up)/sum)

	phases := make([][]float64, up)
	longest := 0

	for ph := range up {
		branch := make([]float64, 0, (n-ph+up-1)/up)
		for i := ph; i < n; i += up {
			branch = append(branch, taps[i])
		}

		longest = max(longest, len(branch))
		phases[ph] = branch
	}

	return taps, phases, longest, nil
}

// approximateRatio returns the best continued-fraction convergent of v whose
// denominator does not exceed maxDen, in lowest terms. Invalid v yields 1/1.
func approximateRatio(v float64, maxDen int) (num, den int) {
	if maxDen <= 0 {
		maxDen = defaultMaxDenominator
	}

	if !(v > 0) || math.IsInf(v, 0) {
		return 1, 1
	}

	// Convergents h/k of the continued fraction expansion.
	hPrev, kPrev := 1.0, 0.0
	h, k := math.Floor(v), 1.0

	for x := v; ; {
		frac := x - math.Floor(x)
		if frac == 0 {
			break
		}

		x = 1 / frac
		a := math.Floor(x)

		kNext := a*k + kPrev
		if kNext > float64(maxDen) {
			break
		}

		h, hPrev = a*h+hPrev, h
		k, kPrev = kNext, k
	}

	num, den = int(math.Round(h)), int(math.Round(k))
	if den <= 0 {
		return 1, 1
	}

	g := gcd(num, den)

	return num / g, den / g
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}

	if b < 0 {
		b = -b
	}

	for b != 0 {
		a, b = b, a%b
	}

	if a == 0 {
		return 1
	}

	return a
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}
