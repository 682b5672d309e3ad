package audiosource

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the subset of oggvorbis.Reader used here.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type oggSource struct {
	dec oggReader
}

// DecodeOgg decodes Ogg Vorbis data.
func DecodeOgg(r io.ReadSeeker) (Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if dec.Channels() == 0 {
		return nil, fmt.Errorf("%w: zero channels", ErrInvalidFile)
	}
	return &oggSource{dec: dec}, nil
}

func (s *oggSource) SampleRate() int { return s.dec.SampleRate() }

func (s *oggSource) Channels() int { return s.dec.Channels() }

func (s *oggSource) Close() error { return nil }

// ReadSamples relies on oggvorbis returning a count of values that is always
// a multiple of the channel count.
func (s *oggSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	want := len(dst) - len(dst)%s.dec.Channels()
	if want == 0 {
		return 0, ErrShortBuffer
	}
	n, err := s.dec.Read(dst[:want])
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}
