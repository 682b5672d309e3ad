package capture

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudioBackend opens streams on the default PortAudio host API.
type PortAudioBackend struct {
	initialized bool
}

// NewPortAudioBackend creates an uninitialized backend.
func NewPortAudioBackend() *PortAudioBackend {
	return &PortAudioBackend{}
}

// Initialize is safe to call more than once.
func (p *PortAudioBackend) Initialize() error {
	if p.initialized {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	p.initialized = true
	return nil
}

func (p *PortAudioBackend) Terminate() error {
	if !p.initialized {
		return nil
	}
	p.initialized = false
	return portaudio.Terminate()
}

func (p *PortAudioBackend) OpenInput(sampleRate float64, channels, framesPerBuffer int, buf []float32) (Stream, error) {
	if !p.initialized {
		return nil, errors.New("PortAudio not initialized")
	}
	stream, err := portaudio.OpenDefaultStream(channels, 0, sampleRate, framesPerBuffer, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to open input stream: %w", err)
	}
	return stream, nil
}

func isOverflow(err error) bool {
	return errors.Is(err, portaudio.InputOverflowed)
}
