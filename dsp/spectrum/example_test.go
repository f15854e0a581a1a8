package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-audioprep/dsp/spectrum"
)

func ExampleMagnitude() {
	mag := spectrum.Magnitude([]complex128{3 + 4i, 1})
	fmt.Printf("%.1f %.1f\n", mag[0], mag[1])
	// Output:
	// 5.0 1.0
}

func ExampleFromPolar() {
	bins, _ := spectrum.FromPolar([]float64{2}, []float64{0})
	fmt.Println(bins[0])
	// Output:
	// (2+0i)
}
