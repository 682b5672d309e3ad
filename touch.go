//go:build !ios && !android && (amd64 || arm64)

package pmgo

import "github.com/obinnaokechukwu/pmgo/projectm"

// TouchType selects the waveform drawn at a touch point.
type TouchType = projectm.TouchType

// Touch waveform styles.
const (
	TouchRandom         = projectm.TouchRandom
	TouchCircle         = projectm.TouchCircle
	TouchRadialBlob     = projectm.TouchRadialBlob
	TouchBlob2          = projectm.TouchBlob2
	TouchBlob3          = projectm.TouchBlob3
	TouchDerivativeLine = projectm.TouchDerivativeLine
	TouchBlob5          = projectm.TouchBlob5
	TouchLine           = projectm.TouchLine
	TouchDoubleLine     = projectm.TouchDoubleLine
)

// Touch starts a waveform at (x, y), both normalised to [0, 1].
func (e *Engine) Touch(x, y float32, pressure int, typ TouchType) error {
	return e.call(func(h projectm.Handle) error {
		return e.api.touch(h, x, y, int32(pressure), typ)
	})
}

// TouchDrag moves the waveform closest to (x, y).
func (e *Engine) TouchDrag(x, y float32, pressure int) error {
	return e.call(func(h projectm.Handle) error {
		return e.api.touchDrag(h, x, y, int32(pressure))
	})
}

// TouchDestroy removes the waveform closest to (x, y).
func (e *Engine) TouchDestroy(x, y float32) error {
	return e.call(func(h projectm.Handle) error {
		return e.api.touchDestroy(h, x, y)
	})
}

// TouchDestroyAll removes every touch waveform.
func (e *Engine) TouchDestroyAll() error {
	return e.call(e.api.touchDestroyAll)
}
