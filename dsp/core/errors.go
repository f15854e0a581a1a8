package core

import "errors"

// Error kinds reported by processing stages. Stages wrap these with context,
// so callers should match them with errors.Is.
var (
	ErrInvalidRate     = errors.New("core: sample rate must be > 0")
	ErrInvalidDuration = errors.New("core: duration must be > 0")
	ErrEmptySignal     = errors.New("core: signal has no samples")
)
