package frequency_test

import (
	"fmt"

	"github.com/cwbudde/algo-audioprep/stats/frequency"
)

func ExampleDescribe() {
	mag := []float64{0, 0, 1, 0, 0}
	s := frequency.Describe(mag, 8000)
	fmt.Printf("centroid=%.0f rolloff=%.0f\n", s.Centroid, s.Rolloff)
	// Output:
	// centroid=2000 rolloff=2000
}
