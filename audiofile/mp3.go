package audiofile

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/cwbudde/algo-audioprep/dsp/core"
)

// go-mp3 always emits interleaved stereo, 16-bit little endian.
const (
	mp3Channels    = 2
	mp3SampleBytes = 2
)

func decodeMP3(r io.ReadSeeker) (core.Signal, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return core.Signal{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return core.Signal{}, fmt.Errorf("audiofile: read MP3 frames: %w", err)
	}

	interleaved := make([]float64, len(raw)/mp3SampleBytes)
	for i := range interleaved {
		v := int16(binary.LittleEndian.Uint16(raw[mp3SampleBytes*i:]))
		interleaved[i] = float64(v) / 32768
	}

	return core.NewSignal(downmix(interleaved, mp3Channels), dec.SampleRate())
}
