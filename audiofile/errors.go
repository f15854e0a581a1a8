package audiofile

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for files whose extension has no
	// registered decoder.
	ErrUnsupportedFormat = errors.New("audiofile: unsupported format")
	// ErrInvalidFile is returned when the content does not match the
	// container the extension promises.
	ErrInvalidFile = errors.New("audiofile: invalid file")
	// ErrUnsupportedBitDepth is returned for PCM bit depths other than 8,
	// 16, 24 or 32.
	ErrUnsupportedBitDepth = errors.New("audiofile: unsupported bit depth")
)

// LoadError reports a file that could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("audiofile: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
