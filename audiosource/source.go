// Package audiosource decodes audio files into interleaved float32 PCM and
// feeds them to a visualizer one video frame at a time.
package audiosource

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrUnsupportedFormat is returned when no decoder is registered for a
	// file extension.
	ErrUnsupportedFormat = errors.New("audiosource: unsupported format")

	// ErrInvalidFile is returned when a decoder rejects its input.
	ErrInvalidFile = errors.New("audiosource: invalid file")
)

// Source yields interleaved float32 samples in [-1, 1].
type Source interface {
	SampleRate() int
	Channels() int
	// ReadSamples fills dst with whole frames and returns the number of
	// float values written. It returns io.EOF once the stream is drained.
	ReadSamples(dst []float32) (int, error)
	Close() error
}

// Decoder turns an encoded stream into a Source.
type Decoder interface {
	Decode(r io.ReadSeeker) (Source, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.ReadSeeker) (Source, error)

// Decode calls f(r).
func (f DecoderFunc) Decode(r io.ReadSeeker) (Source, error) { return f(r) }

// Registry maps lower-case file extensions (without the dot) to decoders.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Register binds ext to d, replacing any previous decoder.
func (r *Registry) Register(ext string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[normalizeExt(ext)] = d
}

// Get returns the decoder for ext.
func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decoders[normalizeExt(ext)]
	return d, ok
}

// Extensions lists the registered extensions.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.decoders))
	for ext := range r.decoders {
		out = append(out, ext)
	}
	return out
}

// Open decodes the file at path with the decoder registered for its
// extension. Closing the returned Source closes the file.
func (r *Registry) Open(path string) (Source, error) {
	ext := filepath.Ext(path)
	d, ok := r.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiosource: open %s: %w", path, err)
	}

	src, err := d.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audiosource: decode %s: %w", path, err)
	}
	return &fileSource{Source: src, f: f}, nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// DefaultRegistry holds the built-in decoders.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register("wav", DecoderFunc(DecodeWAV))
	DefaultRegistry.Register("aiff", DecoderFunc(DecodeAIFF))
	DefaultRegistry.Register("aif", DecoderFunc(DecodeAIFF))
	DefaultRegistry.Register("mp3", DecoderFunc(DecodeMP3))
	DefaultRegistry.Register("ogg", DecoderFunc(DecodeOgg))
}

// Open decodes path using DefaultRegistry.
func Open(path string) (Source, error) {
	return DefaultRegistry.Open(path)
}

type fileSource struct {
	Source
	f *os.File
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}
