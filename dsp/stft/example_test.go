package stft_test

import (
	"fmt"

	"github.com/cwbudde/algo-audioprep/dsp/stft"
)

func ExampleTransformer_Forward() {
	tr, _ := stft.New(stft.WithWindowLength(1024), stft.WithHopLength(512))

	s, _ := tr.Forward(make([]float64, 16000))
	fmt.Println(s.NumFrames(), s.NumBins())

	y, _ := tr.Inverse(s, -1)
	fmt.Println(len(y))
	// Output:
	// 32 513
	// 15872
}
