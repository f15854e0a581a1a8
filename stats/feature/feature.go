package feature

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audioprep/dsp/core"
	"github.com/cwbudde/algo-audioprep/dsp/stft"
	"github.com/cwbudde/algo-audioprep/stats/frequency"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// DefaultFFTLength is the STFT frame length used for every spectral feature.
	DefaultFFTLength = 2048
	// DefaultHopLength is the STFT frame advance.
	DefaultHopLength = 512
	// DefaultMels is the number of mel bands in the mel spectrogram.
	DefaultMels = 128
	// DefaultMFCC is the number of cepstral coefficients kept per frame.
	DefaultMFCC = 13
	// DefaultTopDB is the dynamic range, in dB below the peak, kept when
	// converting power to decibels.
	DefaultTopDB = 80

	powerAmin = 1e-10
)

// Summary holds the mean of each feature matrix.
type Summary struct {
	Magnitude float64 `json:"stft_magnitude" yaml:"stft_magnitude"`
	Phase     float64 `json:"stft_phase" yaml:"stft_phase"`
	MFCC      float64 `json:"mfcc" yaml:"mfcc"`
	Chroma    float64 `json:"chroma" yaml:"chroma"`
	Mel       float64 `json:"mel" yaml:"mel"`
	Centroid  float64 `json:"spectral_centroid" yaml:"spectral_centroid"`
	Rolloff   float64 `json:"spectral_rolloff" yaml:"spectral_rolloff"`
	Flatness  float64 `json:"spectral_flatness" yaml:"spectral_flatness"`
}

// Option configures an Extractor.
type Option func(*config)

type config struct {
	fftLength int
	hopLength int
	mels      int
	mfcc      int
	topDB     float64
}

func defaultConfig() config {
	return config{
		fftLength: DefaultFFTLength,
		hopLength: DefaultHopLength,
		mels:      DefaultMels,
		mfcc:      DefaultMFCC,
		topDB:     DefaultTopDB,
	}
}

// WithFFTLength sets the STFT frame length.
func WithFFTLength(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.fftLength = n
		}
	}
}

// WithHopLength sets the STFT frame advance.
func WithHopLength(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.hopLength = n
		}
	}
}

// WithMels sets the number of mel bands.
func WithMels(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.mels = n
		}
	}
}

// WithMFCC sets the number of cepstral coefficients kept.
func WithMFCC(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.mfcc = n
		}
	}
}

// WithTopDB sets the dynamic range floor applied before the cepstrum.
func WithTopDB(db float64) Option {
	return func(cfg *config) {
		if db > 0 {
			cfg.topDB = db
		}
	}
}

// Extractor computes feature matrices. It is not safe for concurrent use.
type Extractor struct {
	cfg config
	tr  *stft.Transformer
}

// New creates an Extractor.
func New(opts ...Option) (*Extractor, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	tr, err := stft.New(stft.WithWindowLength(cfg.fftLength), stft.WithHopLength(cfg.hopLength))
	if err != nil {
		return nil, fmt.Errorf("feature: %w", err)
	}

	return &Extractor{cfg: cfg, tr: tr}, nil
}

// Extract computes every feature and reduces each to its mean.
func (e *Extractor) Extract(samples []float64, rate int) (Summary, error) {
	spec, err := e.spectrogram(samples, rate)
	if err != nil {
		return Summary{}, err
	}

	mag := spec.Magnitude()
	power := spec.Power()
	mel := e.melFromPower(power, rate)

	var shape frequency.Shape
	for _, row := range mag {
		s := frequency.Describe(row, float64(rate))
		shape.Centroid += s.Centroid
		shape.Rolloff += s.Rolloff
		shape.Flatness += s.Flatness
	}

	frames := float64(len(mag))

	return Summary{
		Magnitude: matrixMean(mag),
		Phase:     matrixMean(spec.Phase()),
		MFCC:      matrixMean(e.mfccFromMel(mel)),
		Chroma:    matrixMean(e.chromaFromPower(power, rate)),
		Mel:       matrixMean(mel),
		Centroid:  shape.Centroid / frames,
		Rolloff:   shape.Rolloff / frames,
		Flatness:  shape.Flatness / frames,
	}, nil
}

// MelSpectrogram returns mel band power per frame, indexed [frame][mel].
func (e *Extractor) MelSpectrogram(samples []float64, rate int) ([][]float64, error) {
	spec, err := e.spectrogram(samples, rate)
	if err != nil {
		return nil, err
	}

	return e.melFromPower(spec.Power(), rate), nil
}

// MFCC returns cepstral coefficients per frame, indexed [frame][coef].
func (e *Extractor) MFCC(samples []float64, rate int) ([][]float64, error) {
	mel, err := e.MelSpectrogram(samples, rate)
	if err != nil {
		return nil, err
	}

	return e.mfccFromMel(mel), nil
}

// Chroma returns pitch class energy per frame, indexed [frame][class] with
// C at index 0. Each frame is scaled so its strongest class is 1.
func (e *Extractor) Chroma(samples []float64, rate int) ([][]float64, error) {
	spec, err := e.spectrogram(samples, rate)
	if err != nil {
		return nil, err
	}

	return e.chromaFromPower(spec.Power(), rate), nil
}

func (e *Extractor) spectrogram(samples []float64, rate int) (stft.Spectrogram, error) {
	if err := core.ValidateRate(rate); err != nil {
		return stft.Spectrogram{}, fmt.Errorf("feature: %w", err)
	}

	if len(samples) == 0 {
		return stft.Spectrogram{}, fmt.Errorf("feature: %w", core.ErrEmptySignal)
	}

	spec, err := e.tr.Forward(samples)
	if err != nil {
		return stft.Spectrogram{}, fmt.Errorf("feature: %w", err)
	}

	return spec, nil
}

func (e *Extractor) melFromPower(power [][]float64, rate int) [][]float64 {
	bank := MelFilterBank(float64(rate), e.cfg.fftLength, e.cfg.mels)

	out := make([][]float64, len(power))
	for f, row := range power {
		bands := make([]float64, len(bank))
		for m, filter := range bank {
			bands[m] = vecmath.DotProduct(filter, row)
		}

		out[f] = bands
	}

	return out
}

func (e *Extractor) mfccFromMel(mel [][]float64) [][]float64 {
	db := make([][]float64, len(mel))
	peak := math.Inf(-1)

	for f, row := range mel {
		db[f] = make([]float64, len(row))
		for m, v := range row {
			db[f][m] = core.PowerToDB(v, 1, powerAmin)
			peak = math.Max(peak, db[f][m])
		}
	}

	floor := peak - e.cfg.topDB
	out := make([][]float64, len(db))

	for f, row := range db {
		for m := range row {
			row[m] = math.Max(row[m], floor)
		}

		out[f] = dctII(row, e.cfg.mfcc)
	}

	return out
}

func (e *Extractor) chromaFromPower(power [][]float64, rate int) [][]float64 {
	out := make([][]float64, len(power))
	for f, row := range power {
		out[f] = chromaFrame(row, float64(rate), e.cfg.fftLength)
	}

	return out
}

func matrixMean(m [][]float64) float64 {
	var sum float64
	n := 0

	for _, row := range m {
		sum += vecmath.Sum(row)
		n += len(row)
	}

	if n == 0 {
		return 0
	}

	return sum / float64(n)
}
