//go:build !ios && !android && (amd64 || arm64)

package audiosource

import (
	"errors"
	"fmt"
	"io"

	"github.com/obinnaokechukwu/pmgo"
)

// PCMSink receives interleaved float samples. *pmgo.Engine implements it.
type PCMSink interface {
	PCMAddFloat32(samples []float32, ch pmgo.Channels) error
	MaxSamples() (int, error)
}

// ErrInvalidFPS is returned by NewFeeder for a zero frame rate.
var ErrInvalidFPS = errors.New("audiosource: fps must be positive")

// FeederOption configures a Feeder.
type FeederOption func(*Feeder)

// WithLoop makes the Feeder call reopen and continue when the source ends.
func WithLoop(reopen func() (Source, error)) FeederOption {
	return func(f *Feeder) { f.reopen = reopen }
}

// Feeder slices a Source into per-video-frame blocks of samples.
type Feeder struct {
	src      Source
	fps      int
	channels int
	reopen   func() (Source, error)
	buf      []float32
}

// NewFeeder wraps src. Sources with more than two channels are mixed down
// to mono.
func NewFeeder(src Source, fps int, opts ...FeederOption) (*Feeder, error) {
	if fps <= 0 {
		return nil, ErrInvalidFPS
	}
	f := &Feeder{fps: fps}
	for _, opt := range opts {
		opt(f)
	}
	f.setSource(src)
	return f, nil
}

func (f *Feeder) setSource(src Source) {
	if mixedChannels(src) != src.Channels() {
		src = NewMonoMixer(src)
	}
	f.src = src
	f.channels = src.Channels()
	size := f.FrameSamples()
	if cap(f.buf) < size {
		f.buf = make([]float32, size)
	}
	f.buf = f.buf[:size]
}

// Channels is the channel count of the samples returned by Next.
func (f *Feeder) Channels() pmgo.Channels { return pmgo.Channels(f.channels) }

// SampleRate of the current source.
func (f *Feeder) SampleRate() int { return f.src.SampleRate() }

// FrameSamples is the number of interleaved values per video frame.
func (f *Feeder) FrameSamples() int {
	frames := f.src.SampleRate() / f.fps
	if frames < 1 {
		frames = 1
	}
	return frames * f.channels
}

// Next returns the samples for one video frame. The slice is reused by the
// following call. The final block may be short; after it Next returns
// io.EOF unless looping.
func (f *Feeder) Next() ([]float32, error) {
	filled := 0
	reopened := false
	for filled < len(f.buf) {
		n, err := f.src.ReadSamples(f.buf[filled:])
		filled += n
		if n > 0 {
			reopened = false
		}
		if err == nil {
			if n == 0 {
				// Guard against a source that neither progresses nor ends.
				break
			}
			continue
		}
		if !errors.Is(err, io.EOF) {
			return nil, err
		}
		if f.reopen == nil || reopened {
			break
		}
		if err := f.rewind(); err != nil {
			return nil, err
		}
		reopened = true
	}
	if filled == 0 {
		return nil, io.EOF
	}
	return f.buf[:filled], nil
}

func (f *Feeder) rewind() error {
	src, err := f.reopen()
	if err != nil {
		return fmt.Errorf("audiosource: reopen: %w", err)
	}
	if src.SampleRate() != f.src.SampleRate() || mixedChannels(src) != f.channels {
		src.Close()
		return fmt.Errorf("audiosource: reopened source format changed (%d Hz, %d ch)", src.SampleRate(), src.Channels())
	}
	f.src.Close()
	f.setSource(src)
	return nil
}

func mixedChannels(src Source) int {
	if src.Channels() > 2 {
		return 1
	}
	return src.Channels()
}

// FeedFrame reads one frame with Next and pushes it to sink in chunks no
// larger than sink.MaxSamples, each a whole number of frames.
func (f *Feeder) FeedFrame(sink PCMSink) (int, error) {
	samples, err := f.Next()
	if err != nil {
		return 0, err
	}
	if err := Push(sink, samples, f.Channels()); err != nil {
		return 0, err
	}
	return len(samples), nil
}

// Push sends samples to sink in chunks no larger than sink.MaxSamples.
func Push(sink PCMSink, samples []float32, ch pmgo.Channels) error {
	limit, err := sink.MaxSamples()
	if err != nil {
		return err
	}
	step := limit - limit%int(ch)
	if step <= 0 {
		return fmt.Errorf("audiosource: sink accepts %d samples, fewer than one frame", limit)
	}
	for len(samples) > 0 {
		n := min(step, len(samples))
		if err := sink.PCMAddFloat32(samples[:n], ch); err != nil {
			return err
		}
		samples = samples[n:]
	}
	return nil
}

// Close closes the current source.
func (f *Feeder) Close() error {
	return f.src.Close()
}
