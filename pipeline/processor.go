package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-audioprep/audiofile"
	"github.com/cwbudde/algo-audioprep/dsp/augment"
	"github.com/cwbudde/algo-audioprep/dsp/core"
	"github.com/cwbudde/algo-audioprep/dsp/crop"
	"github.com/cwbudde/algo-audioprep/dsp/denoise"
	"github.com/cwbudde/algo-audioprep/dsp/normalize"
	"github.com/cwbudde/algo-audioprep/dsp/resample"
	"github.com/cwbudde/algo-audioprep/dsp/silence"
	"github.com/cwbudde/algo-audioprep/internal/observe"
	"github.com/cwbudde/algo-audioprep/stats/feature"
)

// Option configures a Processor.
type Option func(*Processor)

// WithLoader replaces the file loader.
func WithLoader(l audiofile.Loader) Option {
	return func(p *Processor) {
		if l != nil {
			p.loader = l
		}
	}
}

// WithLogger replaces the logger used by Run and RunBatch.
func WithLogger(l *logrus.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMetrics replaces the metric instruments.
func WithMetrics(m *observe.Metrics) Option {
	return func(p *Processor) {
		if m != nil {
			p.metrics = m
		}
	}
}

// Processor runs the pipeline stages with a fixed configuration. It is safe
// for concurrent use; stateful components are created per call.
type Processor struct {
	cfg     Config
	loader  audiofile.Loader
	log     *logrus.Logger
	metrics *observe.Metrics

	resampleOpts []resample.Option
	gateOpts     []denoise.Option
	remover      *silence.Remover
	trimmer      *silence.Trimmer
}

// New validates cfg and builds a Processor.
func New(cfg Config, opts ...Option) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	quality, err := resample.ParseQuality(cfg.Resample.Quality)
	if err != nil {
		return nil, err
	}

	remover, err := silence.NewRemover(
		silence.WithEnergyThreshold(cfg.EnergyThreshold),
		silence.WithFrameSeconds(cfg.Silence.FrameSeconds),
		silence.WithHopSeconds(cfg.Silence.HopSeconds),
	)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	p := &Processor{
		cfg:          cfg,
		loader:       audiofile.NewRegistry(),
		log:          logrus.StandardLogger(),
		resampleOpts: []resample.Option{resample.WithQuality(quality)},
		gateOpts: []denoise.Option{
			denoise.WithReduceFactor(cfg.NoiseReduceFactor),
			denoise.WithWindowLength(cfg.STFT.WindowLength),
			denoise.WithHopLength(cfg.STFT.HopLength),
			denoise.WithNoiseFrames(cfg.STFT.NoiseFrames),
		},
		remover: remover,
		trimmer: silence.NewTrimmer(
			silence.WithTopDB(cfg.Trim.TopDB),
			silence.WithTrimFrameLength(cfg.Trim.FrameLength),
			silence.WithTrimHopLength(cfg.Trim.HopLength),
		),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	if p.metrics == nil {
		p.metrics = observe.DefaultMetrics()
	}

	// Fail on a bad STFT configuration now rather than on the first file.
	if _, err := denoise.NewGate(p.gateOpts...); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	return p, nil
}

// Config returns the configuration the Processor was built with.
func (p *Processor) Config() Config { return p.cfg }

// Process loads path and returns it resampled to the target rate, fitted to
// the target duration, standardized and peak normalized, together with the
// rate the file was stored at.
func (p *Processor) Process(path string) (core.Signal, int, error) {
	return p.process(context.Background(), path)
}

func (p *Processor) process(ctx context.Context, path string) (core.Signal, int, error) {
	start := time.Now()

	sig, err := p.loader.Load(path)
	if err != nil {
		return core.Signal{}, 0, stageErr(StageLoad, path, err)
	}

	p.metrics.RecordStage(ctx, StageLoad, start)

	out, err := p.prepare(ctx, sig.Samples, sig.SampleRate)
	if err != nil {
		return core.Signal{}, sig.SampleRate, withPath(err, path)
	}

	return core.Signal{Samples: out, SampleRate: p.cfg.TargetSampleRate}, sig.SampleRate, nil
}

// prepare runs resample, crop, standardize and normalize.
func (p *Processor) prepare(ctx context.Context, samples []float64, rate int) ([]float64, error) {
	start := time.Now()

	x, err := resample.Convert(samples, rate, p.cfg.TargetSampleRate, p.resampleOpts...)
	if err != nil {
		return nil, stageErr(StageResample, "", err)
	}

	p.metrics.RecordStage(ctx, StageResample, start)
	start = time.Now()

	x, err = crop.ToDuration(x, p.cfg.TargetSampleRate, p.cfg.TargetDurationSeconds)
	if err != nil {
		return nil, stageErr(StageCrop, "", err)
	}

	p.metrics.RecordStage(ctx, StageCrop, start)
	start = time.Now()

	x = normalize.Standardize(x)
	p.metrics.RecordStage(ctx, StageStandardize, start)
	start = time.Now()

	x = normalize.Peak(x)
	p.metrics.RecordStage(ctx, StageNormalize, start)

	return x, nil
}

// Clean gates stationary noise and then removes low-energy frames. The
// result is usually shorter than samples.
func (p *Processor) Clean(samples []float64, rate int) ([]float64, error) {
	return p.clean(context.Background(), samples, rate)
}

func (p *Processor) clean(ctx context.Context, samples []float64, rate int) ([]float64, error) {
	if err := core.ValidateRate(rate); err != nil {
		return nil, stageErr(StageDenoise, "", err)
	}

	start := time.Now()

	gate, err := denoise.NewGate(p.gateOpts...)
	if err != nil {
		return nil, stageErr(StageDenoise, "", err)
	}

	gated, err := gate.Process(samples)
	if err != nil {
		return nil, stageErr(StageDenoise, "", err)
	}

	p.metrics.RecordStage(ctx, StageDenoise, start)
	start = time.Now()

	out, err := p.remover.Process(gated, rate)
	if err != nil {
		return nil, stageErr(StageSilence, "", err)
	}

	p.metrics.RecordStage(ctx, StageSilence, start)

	return out, nil
}

// Trim strips leading and trailing spans quieter than the configured top dB
// below the peak.
func (p *Processor) Trim(samples []float64, rate int) ([]float64, error) {
	out, err := p.trimmer.Process(samples, rate)
	if err != nil {
		return nil, stageErr(StageTrim, "", err)
	}

	return out, nil
}

// Augment applies a random subset of the configured transforms using rng.
// It returns the variant and the applied transform names.
func (p *Processor) Augment(samples []float64, rate int, rng *rand.Rand) ([]float64, []string, error) {
	a, err := augment.New(rng, augment.WithTransforms(p.cfg.Augment.Transforms...))
	if err != nil {
		return nil, nil, stageErr(StageAugment, "", err)
	}

	out, names, err := a.Apply(samples, rate)
	if err != nil {
		return nil, names, stageErr(StageAugment, "", err)
	}

	return out, names, nil
}

// Features extracts the summary feature means.
func (p *Processor) Features(samples []float64, rate int) (feature.Summary, error) {
	e, err := feature.New()
	if err != nil {
		return feature.Summary{}, stageErr(StageFeatures, "", err)
	}

	s, err := e.Extract(samples, rate)
	if err != nil {
		return feature.Summary{}, stageErr(StageFeatures, "", err)
	}

	return s, nil
}

// Result is the outcome of one file.
type Result struct {
	Path         string
	OriginalRate int
	Signal       core.Signal
	Augmented    []string
	Features     *feature.Summary
	Elapsed      time.Duration
	Err          error
}

// Run takes one file through preprocessing and every enabled step. rng feeds
// augmentation and may be nil when the augment step is off.
func (p *Processor) Run(ctx context.Context, path string, rng *rand.Rand) Result {
	start := time.Now()
	res := Result{Path: path}

	fail := func(err error) Result {
		res.Err = withPath(err, path)
		res.Elapsed = time.Since(start)
		p.metrics.RecordFile(ctx, observe.StatusError)

		return res
	}

	sig, rate, err := p.process(ctx, path)
	res.OriginalRate = rate

	if err != nil {
		return fail(err)
	}

	x := sig.Samples
	steps := p.cfg.Steps

	if steps.Clean {
		if x, err = p.clean(ctx, x, sig.SampleRate); err != nil {
			return fail(err)
		}
	}

	if steps.Trim {
		t := time.Now()
		if x, err = p.Trim(x, sig.SampleRate); err != nil {
			return fail(err)
		}

		p.metrics.RecordStage(ctx, StageTrim, t)
	}

	if steps.Augment {
		if rng == nil {
			rng = rand.New(rand.NewSource(p.cfg.Augment.Seed))
		}

		t := time.Now()
		if x, res.Augmented, err = p.Augment(x, sig.SampleRate, rng); err != nil {
			return fail(err)
		}

		p.metrics.RecordStage(ctx, StageAugment, t)
	}

	if steps.Features {
		t := time.Now()

		s, err := p.Features(x, sig.SampleRate)
		if err != nil {
			return fail(err)
		}

		res.Features = &s
		p.metrics.RecordStage(ctx, StageFeatures, t)
	}

	res.Signal = core.Signal{Samples: x, SampleRate: sig.SampleRate}
	res.Elapsed = time.Since(start)

	p.metrics.RecordFile(ctx, observe.StatusOK)
	p.metrics.RecordOutput(ctx, len(x))

	return res
}

// withPath fills in the file path on a StageError that lacks one.
func withPath(err error, path string) error {
	if se, ok := err.(*StageError); ok && se.Path == "" {
		return &StageError{Stage: se.Stage, Path: path, Err: se.Err}
	}

	return err
}
