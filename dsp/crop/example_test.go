package crop_test

import (
	"fmt"

	"github.com/cwbudde/algo-audioprep/dsp/crop"
)

func ExampleToDuration() {
	out, _ := crop.ToDuration([]float64{1, 2, 3}, 4, 2)
	fmt.Println(out)

	out, _ = crop.ToDuration([]float64{1, 2, 3, 4, 5, 6}, 4, 1)
	fmt.Println(out)
	// Output:
	// [1 2 3 1 2 3 1 2]
	// [1 2 3 4]
}
