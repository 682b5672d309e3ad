package audiosource

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// mp3Reader is the subset of gomp3.Decoder used here.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// go-mp3 always produces 16-bit little-endian stereo.
const mp3Channels = 2

type mp3Source struct {
	dec mp3Reader
	buf []byte
	// pending holds a trailing partial sample from the previous Read.
	pending []byte
}

// DecodeMP3 decodes MPEG-1/2 layer III data.
func DecodeMP3(r io.ReadSeeker) (Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	return newMP3Source(dec), nil
}

func newMP3Source(dec mp3Reader) *mp3Source {
	return &mp3Source{dec: dec, buf: make([]byte, 8192)}
}

func (s *mp3Source) SampleRate() int { return s.dec.SampleRate() }

func (s *mp3Source) Channels() int { return mp3Channels }

func (s *mp3Source) Close() error { return nil }

func (s *mp3Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	want := len(dst) - len(dst)%mp3Channels
	if want == 0 {
		return 0, ErrShortBuffer
	}

	need := want*2 - len(s.pending)
	if cap(s.buf) < want*2 {
		s.buf = make([]byte, want*2)
	}
	s.buf = s.buf[:len(s.pending)+need]
	copy(s.buf, s.pending)

	n, err := io.ReadFull(s.dec, s.buf[len(s.pending):])
	n += len(s.pending)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}

	frameBytes := 2 * mp3Channels
	whole := n - n%frameBytes
	s.pending = append(s.pending[:0], s.buf[whole:n]...)
	if whole == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	samples := whole / 2
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = float32(v) / 32768
	}
	return samples, err
}
