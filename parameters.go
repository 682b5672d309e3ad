//go:build !ios && !android && (amd64 || arm64)

package pmgo

import (
	"fmt"
	"math"

	"github.com/obinnaokechukwu/pmgo/projectm"
)

// Size is a width and height pair, used for the mesh and the window.
type Size struct {
	Width  uint
	Height uint
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// getter reads one value under the engine lock.
func getter[T any](e *Engine, get func(projectm.Handle) (T, error)) (T, error) {
	var v T
	err := e.call(func(h projectm.Handle) error {
		var err error
		v, err = get(h)
		return err
	})
	return v, err
}

// setter writes one value under the engine lock.
func setter[T any](e *Engine, set func(projectm.Handle, T) error, v T) error {
	return e.call(func(h projectm.Handle) error {
		return set(h, v)
	})
}

// BeatSensitivity returns the beat detection sensitivity.
func (e *Engine) BeatSensitivity() (float32, error) {
	return getter(e, e.api.beatSensitivity)
}

// SetBeatSensitivity sets the beat detection sensitivity, 0 to 2.
func (e *Engine) SetBeatSensitivity(v float32) error {
	return setter(e, e.api.setBeatSensitivity, v)
}

// HardCutDuration returns the minimum time between hard cuts, in seconds.
func (e *Engine) HardCutDuration() (float64, error) {
	return getter(e, e.api.hardCutDuration)
}

// SetHardCutDuration sets the minimum time between hard cuts, in seconds.
func (e *Engine) SetHardCutDuration(seconds float64) error {
	return setter(e, e.api.setHardCutDuration, seconds)
}

// HardCutEnabled reports whether loud beats may trigger a hard cut.
func (e *Engine) HardCutEnabled() (bool, error) {
	return getter(e, e.api.hardCutEnabled)
}

// SetHardCutEnabled enables or disables hard cuts.
func (e *Engine) SetHardCutEnabled(enabled bool) error {
	return setter(e, e.api.setHardCutEnabled, enabled)
}

// HardCutSensitivity returns the loudness a beat needs to cause a hard cut.
func (e *Engine) HardCutSensitivity() (float32, error) {
	return getter(e, e.api.hardCutSensitivity)
}

// SetHardCutSensitivity sets the loudness a beat needs to cause a hard cut.
func (e *Engine) SetHardCutSensitivity(v float32) error {
	return setter(e, e.api.setHardCutSensitivity, v)
}

// SoftCutDuration returns the blend time of soft transitions, in seconds.
func (e *Engine) SoftCutDuration() (float64, error) {
	return getter(e, e.api.softCutDuration)
}

// SetSoftCutDuration sets the blend time of soft transitions, in seconds.
func (e *Engine) SetSoftCutDuration(seconds float64) error {
	return setter(e, e.api.setSoftCutDuration, seconds)
}

// PresetDuration returns how long each preset is shown, in seconds.
func (e *Engine) PresetDuration() (float64, error) {
	return getter(e, e.api.presetDuration)
}

// SetPresetDuration sets how long each preset is shown, in seconds.
func (e *Engine) SetPresetDuration(seconds float64) error {
	return setter(e, e.api.setPresetDuration, seconds)
}

// MeshSize returns the per-pixel mesh resolution. Both components come
// from one native call.
func (e *Engine) MeshSize() (Size, error) {
	return getter(e, func(h projectm.Handle) (Size, error) {
		w, ht, err := e.api.meshSize(h)
		return Size{Width: uint(w), Height: uint(ht)}, err
	})
}

// SetMeshSize sets the per-pixel mesh resolution.
func (e *Engine) SetMeshSize(width, height uint) error {
	return e.call(func(h projectm.Handle) error {
		return e.api.setMeshSize(h, uintptr(width), uintptr(height))
	})
}

// FPS returns the frame rate presets are told they run at.
func (e *Engine) FPS() (uint32, error) {
	v, err := getter(e, e.api.fps)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("fps %d: %w", v, ErrOutOfRange)
	}
	return uint32(v), nil
}

// SetFPS sets the frame rate presets are told they run at. The native
// parameter is a signed 32-bit int, so values above math.MaxInt32 fail with
// ErrOutOfRange.
func (e *Engine) SetFPS(fps uint32) error {
	if fps > math.MaxInt32 {
		return fmt.Errorf("fps %d: %w", fps, ErrOutOfRange)
	}
	return setter(e, e.api.setFPS, int32(fps))
}

// AspectCorrection reports whether presets may correct for the aspect ratio.
func (e *Engine) AspectCorrection() (bool, error) {
	return getter(e, e.api.aspectCorrection)
}

// SetAspectCorrection enables or disables aspect ratio correction.
func (e *Engine) SetAspectCorrection(enabled bool) error {
	return setter(e, e.api.setAspectCorrection, enabled)
}

// EasterEgg returns the value that randomises preset display times.
func (e *Engine) EasterEgg() (float32, error) {
	return getter(e, e.api.easterEgg)
}

// SetEasterEgg sets the value that randomises preset display times.
func (e *Engine) SetEasterEgg(v float32) error {
	return setter(e, e.api.setEasterEgg, v)
}

// PresetLocked reports whether automatic preset switching is suspended.
func (e *Engine) PresetLocked() (bool, error) {
	return getter(e, e.api.presetLocked)
}

// SetPresetLocked suspends or resumes automatic preset switching.
func (e *Engine) SetPresetLocked(locked bool) error {
	return setter(e, e.api.setPresetLocked, locked)
}

// WindowSize returns the viewport size from one native call.
func (e *Engine) WindowSize() (Size, error) {
	return getter(e, func(h projectm.Handle) (Size, error) {
		w, ht, err := e.api.windowSize(h)
		return Size{Width: uint(w), Height: uint(ht)}, err
	})
}

// SetWindowSize sets the viewport size in pixels.
func (e *Engine) SetWindowSize(width, height uint) error {
	return e.call(func(h projectm.Handle) error {
		return e.api.setWindowSize(h, uintptr(width), uintptr(height))
	})
}

// SetTextureSearchPaths replaces the directories searched for textures.
func (e *Engine) SetTextureSearchPaths(paths []string) error {
	for _, p := range paths {
		if err := checkCString("SetTextureSearchPaths", p); err != nil {
			return err
		}
	}
	return e.call(func(h projectm.Handle) error {
		return e.api.setTextureSearchPaths(h, paths)
	})
}
