package audiofile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cwbudde/algo-audioprep/dsp/core"
)

// Loader reads an audio file into a mono signal at its native rate.
type Loader interface {
	Load(path string) (core.Signal, error)
}

// Decoder turns one encoded stream into a mono signal.
type Decoder interface {
	Decode(r io.ReadSeeker) (core.Signal, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.ReadSeeker) (core.Signal, error)

// Decode calls f(r).
func (f DecoderFunc) Decode(r io.ReadSeeker) (core.Signal, error) { return f(r) }

// Registry dispatches by file extension. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

// NewRegistry returns a registry with the built-in decoders.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()

	r.Register(".wav", DecoderFunc(decodeWAV))
	r.Register(".wave", DecoderFunc(decodeWAV))
	r.Register(".aif", DecoderFunc(decodeAIFF))
	r.Register(".aiff", DecoderFunc(decodeAIFF))
	r.Register(".mp3", DecoderFunc(decodeMP3))
	r.Register(".ogg", DecoderFunc(decodeOgg))
	r.Register(".oga", DecoderFunc(decodeOgg))

	return r
}

// NewEmptyRegistry returns a registry without decoders.
func NewEmptyRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Register binds ext (with or without the leading dot, any case) to d,
// replacing any previous binding.
func (r *Registry) Register(ext string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.decoders[normalizeExt(ext)] = d
}

// Lookup returns the decoder bound to ext.
func (r *Registry) Lookup(ext string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.decoders[normalizeExt(ext)]

	return d, ok
}

// Load opens path and decodes it with the decoder for its extension.
// Every failure is reported as a *LoadError.
func (r *Registry) Load(path string) (core.Signal, error) {
	d, ok := r.Lookup(filepath.Ext(path))
	if !ok {
		return core.Signal{}, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))}
	}

	f, err := os.Open(path)
	if err != nil {
		return core.Signal{}, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	sig, err := d.Decode(f)
	if err != nil {
		return core.Signal{}, &LoadError{Path: path, Err: err}
	}

	if err := sig.Validate(); err != nil {
		return core.Signal{}, &LoadError{Path: path, Err: err}
	}

	return sig, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}
