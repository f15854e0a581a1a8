package pipeline

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/cwbudde/algo-audioprep/audiofile"
	"github.com/cwbudde/algo-audioprep/dsp/core"
	"github.com/cwbudde/algo-audioprep/internal/observe"
)

// mapLoader serves signals from memory. Paths not in the map fail with a
// LoadError.
type mapLoader map[string]core.Signal

func (m mapLoader) Load(path string) (core.Signal, error) {
	sig, ok := m[path]
	if !ok {
		return core.Signal{}, &audiofile.LoadError{Path: path, Err: fmt.Errorf("no such fixture")}
	}

	return core.Signal{Samples: core.CloneSamples(sig.Samples), SampleRate: sig.SampleRate}, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

func testMetrics(t *testing.T) (*observe.Metrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	return m, reader
}

func fileCounts(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	counts := map[string]int64{}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "audioprep.files" {
				continue
			}

			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("audioprep.files is %T, want Sum[int64]", m.Data)
			}

			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value("status")
				counts[v.AsString()] = dp.Value
			}
		}
	}

	return counts
}
