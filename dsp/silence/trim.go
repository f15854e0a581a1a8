package silence

import (
	"fmt"

	"github.com/cwbudde/algo-audioprep/dsp/core"
	timestats "github.com/cwbudde/algo-audioprep/stats/time"
)

const (
	// DefaultTopDB is the level below the loudest frame treated as silence.
	DefaultTopDB = 15
	// DefaultTrimFrameLength is the RMS frame length in samples.
	DefaultTrimFrameLength = 2048
	// DefaultTrimHopLength is the RMS frame advance in samples.
	DefaultTrimHopLength = 512

	trimAmin = 1e-5
)

// TrimOption configures a Trimmer.
type TrimOption func(*trimConfig)

type trimConfig struct {
	topDB       float64
	frameLength int
	hopLength   int
}

// WithTopDB sets the silence level in dB below the loudest frame.
func WithTopDB(db float64) TrimOption {
	return func(cfg *trimConfig) {
		if db > 0 {
			cfg.topDB = db
		}
	}
}

// WithTrimFrameLength sets the RMS frame length.
func WithTrimFrameLength(n int) TrimOption {
	return func(cfg *trimConfig) {
		if n > 0 {
			cfg.frameLength = n
		}
	}
}

// WithTrimHopLength sets the RMS frame advance.
func WithTrimHopLength(n int) TrimOption {
	return func(cfg *trimConfig) {
		if n > 0 {
			cfg.hopLength = n
		}
	}
}

// Trimmer strips leading and trailing silence.
type Trimmer struct {
	cfg trimConfig
}

// NewTrimmer creates a Trimmer. Non-positive option values keep defaults.
func NewTrimmer(opts ...TrimOption) *Trimmer {
	cfg := trimConfig{
		topDB:       DefaultTopDB,
		frameLength: DefaultTrimFrameLength,
		hopLength:   DefaultTrimHopLength,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Trimmer{cfg: cfg}
}

// Trim runs a default Trimmer.
func Trim(in []float64, rate int) ([]float64, error) {
	return NewTrimmer().Process(in, rate)
}

// Bounds returns the kept span [start, end) of in. Frames are centered RMS
// windows; a frame is non-silent when its level relative to the loudest
// frame exceeds -topDB. start is the first non-silent frame times hop and
// end is (last non-silent frame + 1) times hop, capped at len(in).
// All-zero input has no non-silent frame and returns (0, 0).
func (t *Trimmer) Bounds(in []float64) (start, end int) {
	rms := timestats.CenteredFrameRMS(in, t.cfg.frameLength, t.cfg.hopLength)
	if len(rms) == 0 {
		return 0, 0
	}

	ref := timestats.Peak(rms)
	if ref == 0 {
		return 0, 0
	}

	first, last := -1, -1
	for f, v := range rms {
		if core.AmplitudeToDB(v, ref, trimAmin) > -t.cfg.topDB {
			if first < 0 {
				first = f
			}
			last = f
		}
	}

	if first < 0 {
		return 0, 0
	}

	return first * t.cfg.hopLength, min(len(in), (last+1)*t.cfg.hopLength)
}

// Process returns in[start:end] as a new slice. The result may be empty.
func (t *Trimmer) Process(in []float64, rate int) ([]float64, error) {
	if err := core.ValidateRate(rate); err != nil {
		return nil, fmt.Errorf("silence: %w", err)
	}

	start, end := t.Bounds(in)

	return core.CloneSamples(in[start:end]), nil
}
