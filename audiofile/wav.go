package audiofile

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-audioprep/dsp/core"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

func decodeWAV(r io.ReadSeeker) (core.Signal, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return core.Signal{}, fmt.Errorf("%w: not a WAV file", ErrInvalidFile)
	}

	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return core.Signal{}, fmt.Errorf("%w: WAV encoding %d is not integer PCM", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return core.Signal{}, fmt.Errorf("audiofile: read WAV PCM: %w", err)
	}

	samples, err := intsToMono(buf.Data, int(dec.NumChans), int(dec.BitDepth), true)
	if err != nil {
		return core.Signal{}, err
	}

	return core.NewSignal(samples, int(dec.SampleRate))
}
