package pipeline

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-audioprep/dsp/augment"
	"github.com/cwbudde/algo-audioprep/dsp/core"
	"github.com/cwbudde/algo-audioprep/dsp/crop"
	"github.com/cwbudde/algo-audioprep/dsp/denoise"
	"github.com/cwbudde/algo-audioprep/dsp/resample"
	"github.com/cwbudde/algo-audioprep/dsp/silence"
)

const (
	// DefaultNoiseReduceFactor scales the noise profile subtracted by the
	// spectral gate.
	DefaultNoiseReduceFactor = denoise.DefaultReduceFactor
	// DefaultEnergyThreshold is the frame energy a frame must exceed to
	// survive silence removal.
	DefaultEnergyThreshold = silence.DefaultEnergyThreshold
	// DefaultTargetSampleRate is the rate, in Hz, every signal is resampled to.
	DefaultTargetSampleRate = 16000
	// DefaultTargetDurationSeconds is the length every signal is cropped or
	// looped to.
	DefaultTargetDurationSeconds = 2.0
	// DefaultWorkers bounds the number of files RunBatch processes at once.
	DefaultWorkers = 4
)

// Config holds every pipeline parameter. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	TargetSampleRate      int     `yaml:"target_sample_rate"`
	TargetDurationSeconds float64 `yaml:"target_duration_seconds"`
	NoiseReduceFactor     float64 `yaml:"noise_reduce_factor"`
	EnergyThreshold       float64 `yaml:"energy_threshold"`

	STFT     STFTConfig     `yaml:"stft"`
	Silence  SilenceConfig  `yaml:"silence"`
	Trim     TrimConfig     `yaml:"trim"`
	Resample ResampleConfig `yaml:"resample"`

	Workers int           `yaml:"workers"`
	Steps   Steps         `yaml:"steps"`
	Augment AugmentConfig `yaml:"augment"`
}

// STFTConfig frames the spectral gate.
type STFTConfig struct {
	WindowLength int `yaml:"window_length"`
	HopLength    int `yaml:"hop_length"`
	NoiseFrames  int `yaml:"noise_frames"`
}

// SilenceConfig frames energy based silence removal.
type SilenceConfig struct {
	FrameSeconds float64 `yaml:"frame_seconds"`
	HopSeconds   float64 `yaml:"hop_seconds"`
}

// TrimConfig configures edge trimming.
type TrimConfig struct {
	TopDB       float64 `yaml:"top_db"`
	FrameLength int     `yaml:"frame_length"`
	HopLength   int     `yaml:"hop_length"`
}

// ResampleConfig selects the anti-aliasing filter quality: "fast",
// "balanced" or "best".
type ResampleConfig struct {
	Quality string `yaml:"quality"`
}

// Steps switches the optional stages that follow preprocessing.
type Steps struct {
	Clean    bool `yaml:"clean"`
	Trim     bool `yaml:"trim"`
	Features bool `yaml:"features"`
	Augment  bool `yaml:"augment"`
}

// AugmentConfig seeds augmentation and restricts its transform set. An
// empty Transforms list enables every built-in transform.
type AugmentConfig struct {
	Seed       int64    `yaml:"seed"`
	Transforms []string `yaml:"transforms"`
}

// DefaultConfig returns the stock parameters with every optional step off.
func DefaultConfig() Config {
	return Config{
		TargetSampleRate:      DefaultTargetSampleRate,
		TargetDurationSeconds: DefaultTargetDurationSeconds,
		NoiseReduceFactor:     DefaultNoiseReduceFactor,
		EnergyThreshold:       DefaultEnergyThreshold,
		STFT: STFTConfig{
			WindowLength: denoise.DefaultWindowLength,
			HopLength:    denoise.DefaultHopLength,
			NoiseFrames:  denoise.DefaultNoiseFrames,
		},
		Silence: SilenceConfig{
			FrameSeconds: silence.DefaultFrameSeconds,
			HopSeconds:   silence.DefaultHopSeconds,
		},
		Trim: TrimConfig{
			TopDB:       silence.DefaultTopDB,
			FrameLength: silence.DefaultTrimFrameLength,
			HopLength:   silence.DefaultTrimHopLength,
		},
		Resample: ResampleConfig{Quality: "balanced"},
		Workers:  DefaultWorkers,
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("pipeline: open config %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadConfigFromReader(f)
	if err != nil {
		return Config{}, fmt.Errorf("pipeline: config %q: %w", path, err)
	}

	return cfg, nil
}

// LoadConfigFromReader decodes YAML from r over DefaultConfig. Unknown keys
// are rejected. Keys absent from the document keep their defaults.
func LoadConfigFromReader(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("pipeline: decode yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	if err := core.ValidateRate(c.TargetSampleRate); err != nil {
		errs = append(errs, fmt.Errorf("target_sample_rate: %w", err))
	} else if _, err := crop.TargetSamples(c.TargetSampleRate, c.TargetDurationSeconds); err != nil {
		errs = append(errs, fmt.Errorf("target_duration_seconds: %w", err))
	}

	if !(c.NoiseReduceFactor >= 0) || math.IsInf(c.NoiseReduceFactor, 0) {
		errs = append(errs, fmt.Errorf("noise_reduce_factor must be >= 0, got %v", c.NoiseReduceFactor))
	}

	if !(c.EnergyThreshold >= 0) {
		errs = append(errs, fmt.Errorf("energy_threshold must be >= 0, got %v", c.EnergyThreshold))
	}

	if c.STFT.WindowLength < 2 {
		errs = append(errs, fmt.Errorf("stft.window_length must be >= 2, got %d", c.STFT.WindowLength))
	}

	if c.STFT.HopLength < 1 || c.STFT.HopLength > c.STFT.WindowLength {
		errs = append(errs, fmt.Errorf("stft.hop_length must be in [1, %d], got %d", c.STFT.WindowLength, c.STFT.HopLength))
	}

	if c.STFT.NoiseFrames < 1 {
		errs = append(errs, fmt.Errorf("stft.noise_frames must be >= 1, got %d", c.STFT.NoiseFrames))
	}

	if !(c.Silence.FrameSeconds > 0) || !(c.Silence.HopSeconds > 0) {
		errs = append(errs, fmt.Errorf("silence.frame_seconds and silence.hop_seconds must be > 0, got %v and %v",
			c.Silence.FrameSeconds, c.Silence.HopSeconds))
	}

	if !(c.Trim.TopDB > 0) || c.Trim.FrameLength < 1 || c.Trim.HopLength < 1 {
		errs = append(errs, fmt.Errorf("trim.top_db, trim.frame_length and trim.hop_length must be > 0, got %v, %d, %d",
			c.Trim.TopDB, c.Trim.FrameLength, c.Trim.HopLength))
	}

	if _, err := resample.ParseQuality(c.Resample.Quality); err != nil {
		errs = append(errs, fmt.Errorf("resample.quality: %w", err))
	}

	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", c.Workers))
	}

	known := augment.DefaultRegistry(augment.DefaultParams())
	for _, name := range c.Augment.Transforms {
		if known.Lookup(name) == nil {
			errs = append(errs, fmt.Errorf("augment.transforms: unknown transform %q; valid values: %s",
				name, strings.Join(known.Names(), ", ")))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("pipeline: invalid config: %w", errors.Join(errs...))
	}

	return nil
}
