package audiofile

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/cwbudde/algo-audioprep/dsp/core"
)

const aiffChunkSamples = 4096

func decodeAIFF(r io.ReadSeeker) (core.Signal, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return core.Signal{}, fmt.Errorf("%w: not an AIFF file", ErrInvalidFile)
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return core.Signal{}, fmt.Errorf("%w: AIFF without channel layout", ErrInvalidFile)
	}

	buf := &goaudio.IntBuffer{Format: format, Data: make([]int, aiffChunkSamples*format.NumChannels)}

	var data []int

	for {
		n, err := dec.PCMBuffer(buf)
		data = append(data, buf.Data[:n]...)

		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return core.Signal{}, fmt.Errorf("audiofile: read AIFF PCM: %w", err)
		}

		if n == 0 {
			break
		}
	}

	samples, err := intsToMono(data, format.NumChannels, int(dec.BitDepth), false)
	if err != nil {
		return core.Signal{}, err
	}

	return core.NewSignal(samples, format.SampleRate)
}
