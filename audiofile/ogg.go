package audiofile

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/cwbudde/algo-audioprep/dsp/core"
)

func decodeOgg(r io.ReadSeeker) (core.Signal, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return core.Signal{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	interleaved := make([]float64, len(data))
	for i, v := range data {
		interleaved[i] = float64(v)
	}

	return core.NewSignal(downmix(interleaved, format.Channels), format.SampleRate)
}
