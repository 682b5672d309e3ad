package audiosource

import (
	"errors"
	"io"

	goaudio "github.com/go-audio/audio"
)

// ErrShortBuffer is returned when dst cannot hold one whole frame.
var ErrShortBuffer = errors.New("audiosource: buffer shorter than one frame")

// pcmReader is the subset of the go-audio wav and aiff decoders used here.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// intSource converts integer PCM from a go-audio decoder to float32.
type intSource struct {
	dec        pcmReader
	sampleRate int
	channels   int
	scale      float32
	// bias is subtracted before scaling; 8-bit WAV is unsigned.
	bias   int
	intBuf *goaudio.IntBuffer
}

func newIntSource(dec pcmReader, sampleRate, channels, bitDepth int, unsigned8 bool) *intSource {
	s := &intSource{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		scale:      1 / float32(int64(1)<<(bitDepth-1)),
	}
	if bitDepth == 8 && unsigned8 {
		s.bias = 128
	}
	return s
}

func (s *intSource) SampleRate() int { return s.sampleRate }

func (s *intSource) Channels() int { return s.channels }

func (s *intSource) Close() error { return nil }

func (s *intSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, ErrShortBuffer
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < want {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, want),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:want]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	n -= n % s.channels
	for i := 0; i < n; i++ {
		dst[i] = float32(s.intBuf.Data[i]-s.bias) * s.scale
	}
	if n < want && err == nil {
		return n, io.EOF
	}
	return n, err
}

func supportedBitDepth(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	}
	return false
}
