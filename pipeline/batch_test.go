package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-audioprep/dsp/core"
	"github.com/cwbudde/algo-audioprep/internal/testutil"
)

func batchFixtures() mapLoader {
	return mapLoader{
		"a.wav": {Samples: testutil.DeterministicSine(300, 16000, 0.5, 8000), SampleRate: 16000},
		"b.wav": {Samples: testutil.DeterministicSine(600, 8000, 0.5, 8000), SampleRate: 8000},
		"c.wav": {Samples: testutil.GaussianNoise(4, 0.2, 20000), SampleRate: 22050},
	}
}

func TestRunBatchSkipsFailures(t *testing.T) {
	m, reader := testMetrics(t)

	p, err := New(DefaultConfig(), WithLoader(batchFixtures()), WithLogger(quietLogger()), WithMetrics(m))
	require.NoError(t, err)

	paths := []string{"a.wav", "broken.wav", "b.wav", "c.wav"}

	results, err := p.RunBatch(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, len(paths))

	for i, res := range results {
		assert.Equal(t, paths[i], res.Path)
	}

	var se *StageError
	require.True(t, errors.As(results[1].Err, &se))
	assert.Equal(t, StageLoad, se.Stage)

	for _, i := range []int{0, 2, 3} {
		require.NoError(t, results[i].Err, paths[i])
		assert.Len(t, results[i].Signal.Samples, 32000, paths[i])
	}

	assert.Equal(t, 8000, results[2].OriginalRate)
	assert.Equal(t, 22050, results[3].OriginalRate)
	assert.Equal(t, map[string]int64{"ok": 3, "error": 1}, fileCounts(t, reader))
}

func TestRunBatchCancelled(t *testing.T) {
	p, err := New(DefaultConfig(), WithLoader(batchFixtures()), WithLogger(quietLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := p.RunBatch(ctx, []string{"a.wav", "b.wav"})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)

	for _, res := range results {
		assert.ErrorIs(t, res.Err, context.Canceled)
		assert.Empty(t, res.Signal.Samples)
	}
}

func TestRunBatchAugmentationIgnoresScheduling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetDurationSeconds = 0.5
	cfg.Steps.Augment = true
	cfg.Augment.Seed = 11
	cfg.Augment.Transforms = []string{"white_noise", "time_shift", "volume"}

	run := func(workers int) []Result {
		c := cfg
		c.Workers = workers

		p, err := New(c, WithLoader(batchFixtures()), WithLogger(quietLogger()))
		require.NoError(t, err)

		results, err := p.RunBatch(context.Background(), []string{"a.wav", "b.wav", "c.wav"})
		require.NoError(t, err)

		return results
	}

	serial, parallel := run(1), run(3)

	for i := range serial {
		require.NoError(t, serial[i].Err)
		assert.Equal(t, serial[i].Augmented, parallel[i].Augmented)
		assert.Equal(t, serial[i].Signal.Samples, parallel[i].Signal.Samples)
	}
}

func TestStageErrorMessage(t *testing.T) {
	err := &StageError{Stage: StageCrop, Path: "x.wav", Err: core.ErrEmptySignal}
	assert.Equal(t, "pipeline: crop x.wav: core: signal has no samples", err.Error())
	assert.ErrorIs(t, err, core.ErrEmptySignal)
}
