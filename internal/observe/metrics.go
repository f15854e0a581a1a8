// Package observe holds the OpenTelemetry instruments recorded by the
// preprocessing pipeline.
//
// Instruments are created from a metric.MeterProvider. DefaultMetrics binds
// to the global provider, which is a no-op until the embedding program
// installs one; tests use NewMetrics with an SDK provider and a manual
// reader.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/cwbudde/algo-audioprep"

// File outcome values for the status attribute.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds the pipeline instruments. All fields are safe for
// concurrent use.
type Metrics struct {
	// Files counts finished files. Attribute: status.
	Files metric.Int64Counter

	// ActiveFiles tracks files currently inside a batch worker.
	ActiveFiles metric.Int64UpDownCounter

	// StageDuration tracks per-stage processing time in seconds.
	// Attribute: stage.
	StageDuration metric.Float64Histogram

	// OutputSamples tracks the length of each produced signal.
	OutputSamples metric.Int64Histogram
}

// stageBuckets are histogram bounds in seconds. Stages on short clips run
// in milliseconds; long files with pitch shifting can take seconds.
var stageBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	met := &Metrics{}

	var err error

	if met.Files, err = m.Int64Counter("audioprep.files",
		metric.WithDescription("Files finished by the pipeline, by status."),
	); err != nil {
		return nil, err
	}

	if met.ActiveFiles, err = m.Int64UpDownCounter("audioprep.files.active",
		metric.WithDescription("Files currently being processed."),
	); err != nil {
		return nil, err
	}

	if met.StageDuration, err = m.Float64Histogram("audioprep.stage.duration",
		metric.WithDescription("Processing time per pipeline stage."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(stageBuckets...),
	); err != nil {
		return nil, err
	}

	if met.OutputSamples, err = m.Int64Histogram("audioprep.output.samples",
		metric.WithDescription("Length of each produced signal in samples."),
		metric.WithUnit("{sample}"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns a shared instance bound to otel.GetMeterProvider.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error

		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})

	return defaultMetrics
}

// RecordFile counts one finished file.
func (m *Metrics) RecordFile(ctx context.Context, status string) {
	m.Files.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// RecordStage records how long stage ran since start.
func (m *Metrics) RecordStage(ctx context.Context, stage string, start time.Time) {
	m.StageDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordOutput records the length of a produced signal.
func (m *Metrics) RecordOutput(ctx context.Context, samples int) {
	m.OutputSamples.Record(ctx, int64(samples))
}

// TrackActive increments the active file gauge and returns a function that
// decrements it.
func (m *Metrics) TrackActive(ctx context.Context) func() {
	m.ActiveFiles.Add(ctx, 1)

	return func() { m.ActiveFiles.Add(ctx, -1) }
}
