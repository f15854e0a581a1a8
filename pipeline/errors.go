package pipeline

import "fmt"

// Stage names reported in StageError and in the stage duration metric.
const (
	StageLoad        = "load"
	StageResample    = "resample"
	StageCrop        = "crop"
	StageStandardize = "standardize"
	StageNormalize   = "normalize"
	StageDenoise     = "denoise"
	StageSilence     = "silence"
	StageTrim        = "trim"
	StageAugment     = "augment"
	StageFeatures    = "features"
)

// StageError names the stage and file that failed.
type StageError struct {
	Stage string
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("pipeline: %s: %v", e.Stage, e.Err)
	}

	return fmt.Sprintf("pipeline: %s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage, path string, err error) error {
	if err == nil {
		return nil
	}

	return &StageError{Stage: stage, Path: path, Err: err}
}
