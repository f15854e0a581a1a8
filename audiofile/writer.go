package audiofile

import (
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-audioprep/dsp/core"
)

// DefaultBitDepth is the PCM depth SaveWAV callers use unless told
// otherwise.
const DefaultBitDepth = 16

// WriteWAV encodes sig as mono integer PCM. Samples outside [-1, 1] are
// clipped. The writer is not closed.
func WriteWAV(w io.WriteSeeker, sig core.Signal, bitDepth int) error {
	if err := core.ValidateRate(sig.SampleRate); err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}

	scale, err := pcmScale(bitDepth)
	if err != nil {
		return err
	}

	peak := scale - 1
	offset := 0.0
	if bitDepth == 8 {
		offset = scale
	}

	data := make([]int, len(sig.Samples))
	for i, v := range sig.Samples {
		data[i] = int(math.Round(core.Clamp(v, -1, 1)*peak + offset))
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sig.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	enc := wav.NewEncoder(w, sig.SampleRate, bitDepth, 1, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audiofile: write WAV: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("audiofile: finish WAV: %w", err)
	}

	return nil
}

// SaveWAV writes sig to a new file at path.
func SaveWAV(path string, sig core.Signal, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("audiofile: %w", cerr)
		}
	}()

	return WriteWAV(f, sig, bitDepth)
}
