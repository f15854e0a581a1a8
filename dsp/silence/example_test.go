package silence_test

import (
	"fmt"

	"github.com/cwbudde/algo-audioprep/dsp/silence"
)

func ExampleRemoveByEnergy() {
	in := make([]float64, 200)
	for i := 100; i < 200; i++ {
		in[i] = 0.5
	}

	// 1 kHz: 20-sample frames every 10 samples.
	out, _ := silence.RemoveByEnergy(in, 1000, 0.01)
	fmt.Println(len(out))
	// Output:
	// 110
}
