//go:build !ios && !android && (amd64 || arm64)

package pmgo

import (
	"fmt"

	"github.com/obinnaokechukwu/pmgo/projectm"
)

// Channels is the channel layout of interleaved PCM data.
type Channels = projectm.Channels

// Supported channel layouts.
const (
	Mono   = projectm.Mono
	Stereo = projectm.Stereo
)

// MaxSamples returns the most samples one PCM call accepts.
func (e *Engine) MaxSamples() (int, error) {
	n, err := e.api.maxSamples()
	return int(n), err
}

// checkPCM validates a buffer of n interleaved samples against the engine's
// limit and returns the per-channel count the C API expects.
func (e *Engine) checkPCM(n int, ch Channels) (uint32, error) {
	if ch != Mono && ch != Stereo {
		return 0, fmt.Errorf("%d channels: %w", ch, ErrInvalidChannels)
	}
	limit, err := e.api.maxSamples()
	if err != nil {
		return 0, err
	}
	if n > int(limit) {
		return 0, fmt.Errorf("%d > %d: %w", n, limit, ErrTooManySamples)
	}
	if n%int(ch) != 0 {
		return 0, fmt.Errorf("%d samples for %d channels: %w", n, ch, ErrPartialFrame)
	}
	return uint32(n / int(ch)), nil
}

// PCMAddFloat32 feeds interleaved float samples in [-1, 1].
// len(samples) must not exceed MaxSamples.
func (e *Engine) PCMAddFloat32(samples []float32, ch Channels) error {
	count, err := e.checkPCM(len(samples), ch)
	if err != nil {
		return err
	}
	return e.call(func(h projectm.Handle) error {
		return e.api.pcmAddFloat(h, samples, count, ch)
	})
}

// PCMAddInt16 feeds interleaved signed 16-bit samples.
// len(samples) must not exceed MaxSamples.
func (e *Engine) PCMAddInt16(samples []int16, ch Channels) error {
	count, err := e.checkPCM(len(samples), ch)
	if err != nil {
		return err
	}
	return e.call(func(h projectm.Handle) error {
		return e.api.pcmAddInt16(h, samples, count, ch)
	})
}

// PCMAddUint8 feeds interleaved unsigned 8-bit samples centred on 128.
// len(samples) must not exceed MaxSamples.
func (e *Engine) PCMAddUint8(samples []uint8, ch Channels) error {
	count, err := e.checkPCM(len(samples), ch)
	if err != nil {
		return err
	}
	return e.call(func(h projectm.Handle) error {
		return e.api.pcmAddUint8(h, samples, count, ch)
	})
}
