package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

func split(in []complex128, re, im []float64) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	split(in, re, im)
	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	split(in, re, im)
	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// Phase returns arg(X[k]) for each complex spectrum bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// FromPolar builds complex bins from magnitude and phase slices of equal
// length.
func FromPolar(mag, phase []float64) ([]complex128, error) {
	if len(mag) != len(phase) {
		return nil, fmt.Errorf("spectrum: magnitude and phase length mismatch: %d != %d", len(mag), len(phase))
	}

	out := make([]complex128, len(mag))
	for i := range mag {
		out[i] = cmplx.Rect(mag[i], phase[i])
	}
	return out, nil
}

// WrapPhase maps an angle to its principal value in [-pi, pi].
func WrapPhase(phi float64) float64 {
	return phi - 2*math.Pi*math.Round(phi/(2*math.Pi))
}
