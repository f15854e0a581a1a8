package audiofile

import "fmt"

// pcmScale returns the divisor that maps signed integer PCM of the given
// depth into [-1, 1).
func pcmScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
		return float64(int64(1) << (bitDepth - 1)), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// downmix averages interleaved frames into one channel. A trailing partial
// frame is dropped.
func downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}

	frames := len(interleaved) / channels
	out := make([]float64, frames)
	inv := 1 / float64(channels)

	for f := range out {
		var sum float64
		for _, v := range interleaved[f*channels : (f+1)*channels] {
			sum += v
		}

		out[f] = sum * inv
	}

	return out
}

// intsToMono scales interleaved integer PCM and downmixes it.
func intsToMono(data []int, channels, bitDepth int, unsigned8 bool) ([]float64, error) {
	scale, err := pcmScale(bitDepth)
	if err != nil {
		return nil, err
	}

	offset := 0.0
	if bitDepth == 8 && unsigned8 {
		offset = scale
	}

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = (float64(v) - offset) / scale
	}

	return downmix(out, channels), nil
}
