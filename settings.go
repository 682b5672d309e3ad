//go:build !ios && !android && (amd64 || arm64)

package pmgo

import (
	"errors"
	"fmt"
	"math"

	"github.com/obinnaokechukwu/pmgo/projectm"
)

// Settings is a snapshot of every engine parameter.
type Settings struct {
	MeshSize           Size
	WindowSize         Size
	FPS                uint32
	PresetDuration     float64 // seconds
	SoftCutDuration    float64 // seconds
	HardCutDuration    float64 // seconds
	HardCutEnabled     bool
	HardCutSensitivity float32
	BeatSensitivity    float32
	AspectCorrection   bool
	EasterEgg          float32
	PresetLocked       bool

	// TextureSearchPaths is write only: Settings leaves it nil and
	// ApplySettings skips it when nil.
	TextureSearchPaths []string
}

// DefaultSettings returns the values libprojectM 4 starts with.
func DefaultSettings() Settings {
	return Settings{
		MeshSize:           Size{Width: 48, Height: 32},
		WindowSize:         Size{Width: 640, Height: 480},
		FPS:                60,
		PresetDuration:     30,
		SoftCutDuration:    3,
		HardCutDuration:    20,
		HardCutEnabled:     false,
		HardCutSensitivity: 2,
		BeatSensitivity:    1,
		AspectCorrection:   true,
		EasterEgg:          1,
	}
}

// Settings reads every parameter under a single lock acquisition.
func (e *Engine) Settings() (Settings, error) {
	var s Settings
	err := e.call(func(h projectm.Handle) error {
		var errs []error
		record := func(err error) {
			if err != nil {
				errs = append(errs, err)
			}
		}

		w, ht, err := e.api.meshSize(h)
		record(err)
		s.MeshSize = Size{Width: uint(w), Height: uint(ht)}
		w, ht, err = e.api.windowSize(h)
		record(err)
		s.WindowSize = Size{Width: uint(w), Height: uint(ht)}

		fps, err := e.api.fps(h)
		record(err)
		if fps < 0 {
			record(fmt.Errorf("fps %d: %w", fps, ErrOutOfRange))
		} else {
			s.FPS = uint32(fps)
		}

		s.PresetDuration, err = e.api.presetDuration(h)
		record(err)
		s.SoftCutDuration, err = e.api.softCutDuration(h)
		record(err)
		s.HardCutDuration, err = e.api.hardCutDuration(h)
		record(err)
		s.HardCutEnabled, err = e.api.hardCutEnabled(h)
		record(err)
		s.HardCutSensitivity, err = e.api.hardCutSensitivity(h)
		record(err)
		s.BeatSensitivity, err = e.api.beatSensitivity(h)
		record(err)
		s.AspectCorrection, err = e.api.aspectCorrection(h)
		record(err)
		s.EasterEgg, err = e.api.easterEgg(h)
		record(err)
		s.PresetLocked, err = e.api.presetLocked(h)
		record(err)

		return errors.Join(errs...)
	})
	return s, err
}

// ApplySettings writes every parameter in s under a single lock acquisition.
// Nothing is written if s fails validation.
func (e *Engine) ApplySettings(s Settings) error {
	if s.FPS > math.MaxInt32 {
		return fmt.Errorf("fps %d: %w", s.FPS, ErrOutOfRange)
	}
	for _, p := range s.TextureSearchPaths {
		if err := checkCString("ApplySettings", p); err != nil {
			return err
		}
	}

	return e.call(func(h projectm.Handle) error {
		return errors.Join(
			e.api.setMeshSize(h, uintptr(s.MeshSize.Width), uintptr(s.MeshSize.Height)),
			e.api.setWindowSize(h, uintptr(s.WindowSize.Width), uintptr(s.WindowSize.Height)),
			e.api.setFPS(h, int32(s.FPS)),
			e.api.setPresetDuration(h, s.PresetDuration),
			e.api.setSoftCutDuration(h, s.SoftCutDuration),
			e.api.setHardCutDuration(h, s.HardCutDuration),
			e.api.setHardCutEnabled(h, s.HardCutEnabled),
			e.api.setHardCutSensitivity(h, s.HardCutSensitivity),
			e.api.setBeatSensitivity(h, s.BeatSensitivity),
			e.api.setAspectCorrection(h, s.AspectCorrection),
			e.api.setEasterEgg(h, s.EasterEgg),
			e.api.setPresetLocked(h, s.PresetLocked),
			e.applyTexturePaths(h, s.TextureSearchPaths),
		)
	})
}

func (e *Engine) applyTexturePaths(h projectm.Handle, paths []string) error {
	if paths == nil {
		return nil
	}
	return e.api.setTextureSearchPaths(h, paths)
}
