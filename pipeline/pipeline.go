package pipeline

import "github.com/cwbudde/algo-audioprep/dsp/core"

// ProcessAudio loads path and returns it at targetRate, exactly
// round(targetSeconds*targetRate) samples long, standardized and peak
// normalized. The second result is the rate stored in the file, not
// targetRate.
func ProcessAudio(path string, targetRate int, targetSeconds float64) (core.Signal, int, error) {
	cfg := DefaultConfig()
	cfg.TargetSampleRate = targetRate
	cfg.TargetDurationSeconds = targetSeconds

	p, err := New(cfg)
	if err != nil {
		return core.Signal{}, 0, err
	}

	return p.Process(path)
}

// CleanAudio runs the spectral gate and then energy based silence removal
// with default framing.
func CleanAudio(samples []float64, rate int, noiseReduceFactor, energyThreshold float64) ([]float64, error) {
	cfg := DefaultConfig()
	cfg.NoiseReduceFactor = noiseReduceFactor
	cfg.EnergyThreshold = energyThreshold

	p, err := New(cfg)
	if err != nil {
		return nil, err
	}

	return p.Clean(samples, rate)
}

// TrimAudio strips leading and trailing spans more than topDB below the
// loudest frame.
func TrimAudio(samples []float64, rate int, topDB float64) ([]float64, error) {
	cfg := DefaultConfig()
	cfg.Trim.TopDB = topDB

	p, err := New(cfg)
	if err != nil {
		return nil, err
	}

	return p.Trim(samples, rate)
}
