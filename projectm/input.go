//go:build !ios && !android && (amd64 || arm64)

package projectm

import (
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/pmgo/internal/bindings"
)

// Channels is the projectm_channels enum.
type Channels int32

// Channel layouts accepted by the PCM functions.
const (
	Mono   Channels = 1
	Stereo Channels = 2
)

// TouchType is the projectm_touch_type enum.
type TouchType int32

// Touch waveform styles.
const (
	TouchRandom TouchType = iota
	TouchCircle
	TouchRadialBlob
	TouchBlob2
	TouchBlob3
	TouchDerivativeLine
	TouchBlob5
	TouchLine
	TouchDoubleLine
)

var (
	projectmPCMGetMaxSamples func() uint32
	projectmPCMAddFloat      func(h unsafe.Pointer, samples *float32, count uint32, channels int32)
	projectmPCMAddInt16      func(h unsafe.Pointer, samples *int16, count uint32, channels int32)
	projectmPCMAddUint8      func(h unsafe.Pointer, samples *uint8, count uint32, channels int32)

	projectmTouch           func(h unsafe.Pointer, x, y float32, pressure int32, touchType int32)
	projectmTouchDrag       func(h unsafe.Pointer, x, y float32, pressure int32)
	projectmTouchDestroy    func(h unsafe.Pointer, x, y float32)
	projectmTouchDestroyAll func(h unsafe.Pointer)
)

func registerInput(lib uintptr) {
	purego.RegisterLibFunc(&projectmPCMGetMaxSamples, lib, "projectm_pcm_get_max_samples")
	purego.RegisterLibFunc(&projectmPCMAddFloat, lib, "projectm_pcm_add_float")
	purego.RegisterLibFunc(&projectmPCMAddInt16, lib, "projectm_pcm_add_int16")
	purego.RegisterLibFunc(&projectmPCMAddUint8, lib, "projectm_pcm_add_uint8")

	purego.RegisterLibFunc(&projectmTouch, lib, "projectm_touch")
	purego.RegisterLibFunc(&projectmTouchDrag, lib, "projectm_touch_drag")
	purego.RegisterLibFunc(&projectmTouchDestroy, lib, "projectm_touch_destroy")
	purego.RegisterLibFunc(&projectmTouchDestroyAll, lib, "projectm_touch_destroy_all")
}

// PCMMaxSamples returns the most samples per channel one PCM call accepts.
func PCMMaxSamples() (uint32, error) {
	if projectmPCMGetMaxSamples == nil {
		return 0, bindings.ErrNotLoaded
	}
	return projectmPCMGetMaxSamples(), nil
}

// PCMAddFloat adds interleaved float samples. count is per channel.
func PCMAddFloat(h Handle, samples []float32, count uint32, channels Channels) error {
	if projectmPCMAddFloat == nil {
		return bindings.ErrNotLoaded
	}
	if len(samples) == 0 {
		return nil
	}
	projectmPCMAddFloat(h, &samples[0], count, int32(channels))
	return nil
}

// PCMAddInt16 adds interleaved signed 16-bit samples. count is per channel.
func PCMAddInt16(h Handle, samples []int16, count uint32, channels Channels) error {
	if projectmPCMAddInt16 == nil {
		return bindings.ErrNotLoaded
	}
	if len(samples) == 0 {
		return nil
	}
	projectmPCMAddInt16(h, &samples[0], count, int32(channels))
	return nil
}

// PCMAddUint8 adds interleaved unsigned 8-bit samples. count is per channel.
func PCMAddUint8(h Handle, samples []uint8, count uint32, channels Channels) error {
	if projectmPCMAddUint8 == nil {
		return bindings.ErrNotLoaded
	}
	if len(samples) == 0 {
		return nil
	}
	projectmPCMAddUint8(h, &samples[0], count, int32(channels))
	return nil
}

// Touch starts a touch waveform at normalised coordinates.
func Touch(h Handle, x, y float32, pressure int32, touchType TouchType) error {
	if projectmTouch == nil {
		return bindings.ErrNotLoaded
	}
	projectmTouch(h, x, y, pressure, int32(touchType))
	return nil
}

// TouchDrag moves the touch waveform nearest to (x, y).
func TouchDrag(h Handle, x, y float32, pressure int32) error {
	if projectmTouchDrag == nil {
		return bindings.ErrNotLoaded
	}
	projectmTouchDrag(h, x, y, pressure)
	return nil
}

// TouchDestroy removes the touch waveform nearest to (x, y).
func TouchDestroy(h Handle, x, y float32) error {
	if projectmTouchDestroy == nil {
		return bindings.ErrNotLoaded
	}
	projectmTouchDestroy(h, x, y)
	return nil
}

// TouchDestroyAll removes every touch waveform.
func TouchDestroyAll(h Handle) error {
	if projectmTouchDestroyAll == nil {
		return bindings.ErrNotLoaded
	}
	projectmTouchDestroyAll(h)
	return nil
}
