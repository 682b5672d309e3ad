//go:build !ios && !android && (amd64 || arm64)

package projectm

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/pmgo/internal/bindings"
)

var (
	projectmSetTextureSearchPaths func(h unsafe.Pointer, paths unsafe.Pointer, count uintptr)

	projectmGetBeatSensitivity    func(h unsafe.Pointer) float32
	projectmSetBeatSensitivity    func(h unsafe.Pointer, sensitivity float32)
	projectmGetHardCutDuration    func(h unsafe.Pointer) float64
	projectmSetHardCutDuration    func(h unsafe.Pointer, seconds float64)
	projectmGetHardCutEnabled     func(h unsafe.Pointer) bool
	projectmSetHardCutEnabled     func(h unsafe.Pointer, enabled bool)
	projectmGetHardCutSensitivity func(h unsafe.Pointer) float32
	projectmSetHardCutSensitivity func(h unsafe.Pointer, sensitivity float32)
	projectmGetSoftCutDuration    func(h unsafe.Pointer) float64
	projectmSetSoftCutDuration    func(h unsafe.Pointer, seconds float64)
	projectmGetPresetDuration     func(h unsafe.Pointer) float64
	projectmSetPresetDuration     func(h unsafe.Pointer, seconds float64)
	projectmGetMeshSize           func(h unsafe.Pointer, width, height *uintptr)
	projectmSetMeshSize           func(h unsafe.Pointer, width, height uintptr)
	projectmGetFPS                func(h unsafe.Pointer) int32
	projectmSetFPS                func(h unsafe.Pointer, fps int32)
	projectmGetAspectCorrection   func(h unsafe.Pointer) bool
	projectmSetAspectCorrection   func(h unsafe.Pointer, enabled bool)
	projectmGetEasterEgg          func(h unsafe.Pointer) float32
	projectmSetEasterEgg          func(h unsafe.Pointer, value float32)
	projectmGetPresetLocked       func(h unsafe.Pointer) bool
	projectmSetPresetLocked       func(h unsafe.Pointer, locked bool)
	projectmGetWindowSize         func(h unsafe.Pointer, width, height *uintptr)
	projectmSetWindowSize         func(h unsafe.Pointer, width, height uintptr)
)

func registerParameters(lib uintptr) {
	purego.RegisterLibFunc(&projectmSetTextureSearchPaths, lib, "projectm_set_texture_search_paths")

	purego.RegisterLibFunc(&projectmGetBeatSensitivity, lib, "projectm_get_beat_sensitivity")
	purego.RegisterLibFunc(&projectmSetBeatSensitivity, lib, "projectm_set_beat_sensitivity")
	purego.RegisterLibFunc(&projectmGetHardCutDuration, lib, "projectm_get_hard_cut_duration")
	purego.RegisterLibFunc(&projectmSetHardCutDuration, lib, "projectm_set_hard_cut_duration")
	purego.RegisterLibFunc(&projectmGetHardCutEnabled, lib, "projectm_get_hard_cut_enabled")
	purego.RegisterLibFunc(&projectmSetHardCutEnabled, lib, "projectm_set_hard_cut_enabled")
	purego.RegisterLibFunc(&projectmGetHardCutSensitivity, lib, "projectm_get_hard_cut_sensitivity")
	purego.RegisterLibFunc(&projectmSetHardCutSensitivity, lib, "projectm_set_hard_cut_sensitivity")
	purego.RegisterLibFunc(&projectmGetSoftCutDuration, lib, "projectm_get_soft_cut_duration")
	purego.RegisterLibFunc(&projectmSetSoftCutDuration, lib, "projectm_set_soft_cut_duration")
	purego.RegisterLibFunc(&projectmGetPresetDuration, lib, "projectm_get_preset_duration")
	purego.RegisterLibFunc(&projectmSetPresetDuration, lib, "projectm_set_preset_duration")
	purego.RegisterLibFunc(&projectmGetMeshSize, lib, "projectm_get_mesh_size")
	purego.RegisterLibFunc(&projectmSetMeshSize, lib, "projectm_set_mesh_size")
	purego.RegisterLibFunc(&projectmGetFPS, lib, "projectm_get_fps")
	purego.RegisterLibFunc(&projectmSetFPS, lib, "projectm_set_fps")
	purego.RegisterLibFunc(&projectmGetAspectCorrection, lib, "projectm_get_aspect_correction")
	purego.RegisterLibFunc(&projectmSetAspectCorrection, lib, "projectm_set_aspect_correction")
	purego.RegisterLibFunc(&projectmGetEasterEgg, lib, "projectm_get_easter_egg")
	purego.RegisterLibFunc(&projectmSetEasterEgg, lib, "projectm_set_easter_egg")
	purego.RegisterLibFunc(&projectmGetPresetLocked, lib, "projectm_get_preset_locked")
	purego.RegisterLibFunc(&projectmSetPresetLocked, lib, "projectm_set_preset_locked")
	purego.RegisterLibFunc(&projectmGetWindowSize, lib, "projectm_get_window_size")
	purego.RegisterLibFunc(&projectmSetWindowSize, lib, "projectm_set_window_size")
}

// SetTextureSearchPaths replaces the directories searched for preset textures.
// The strings and the pointer array handed to projectM live until the call
// returns; projectM copies them.
func SetTextureSearchPaths(h Handle, paths []string) error {
	if projectmSetTextureSearchPaths == nil {
		return bindings.ErrNotLoaded
	}

	bufs := make([][]byte, len(paths))
	ptrs := make([]*byte, len(paths)+1) // trailing nil sentinel
	for i, p := range paths {
		bufs[i] = append([]byte(p), 0)
		ptrs[i] = &bufs[i][0]
	}

	projectmSetTextureSearchPaths(h, unsafe.Pointer(&ptrs[0]), uintptr(len(paths)))
	runtime.KeepAlive(bufs)
	runtime.KeepAlive(ptrs)
	return nil
}

// GetBeatSensitivity returns the beat sensitivity.
func GetBeatSensitivity(h Handle) (float32, error) {
	if projectmGetBeatSensitivity == nil {
		return 0, bindings.ErrNotLoaded
	}
	return projectmGetBeatSensitivity(h), nil
}

// SetBeatSensitivity sets the beat sensitivity, 0 to 2.
func SetBeatSensitivity(h Handle, sensitivity float32) error {
	if projectmSetBeatSensitivity == nil {
		return bindings.ErrNotLoaded
	}
	projectmSetBeatSensitivity(h, sensitivity)
	return nil
}

// GetHardCutDuration returns the minimum seconds between hard cuts.
func GetHardCutDuration(h Handle) (float64, error) {
	if projectmGetHardCutDuration == nil {
		return 0, bindings.ErrNotLoaded
	}
	return projectmGetHardCutDuration(h), nil
}

// SetHardCutDuration sets the minimum seconds between hard cuts.
func SetHardCutDuration(h Handle, seconds float64) error {
	if projectmSetHardCutDuration == nil {
		return bindings.ErrNotLoaded
	}
	projectmSetHardCutDuration(h, seconds)
	return nil
}

// GetHardCutEnabled reports whether beat-triggered hard cuts are enabled.
func GetHardCutEnabled(h Handle) (bool, error) {
	if projectmGetHardCutEnabled == nil {
		return false, bindings.ErrNotLoaded
	}
	return projectmGetHardCutEnabled(h), nil
}

// SetHardCutEnabled enables or disables hard cuts.
func SetHardCutEnabled(h Handle, enabled bool) error {
	if projectmSetHardCutEnabled == nil {
		return bindings.ErrNotLoaded
	}
	projectmSetHardCutEnabled(h, enabled)
	return nil
}

// GetHardCutSensitivity returns the loudness threshold for a hard cut.
func GetHardCutSensitivity(h Handle) (float32, error) {
	if projectmGetHardCutSensitivity == nil {
		return 0, bindings.ErrNotLoaded
	}
	return projectmGetHardCutSensitivity(h), nil
}

// SetHardCutSensitivity sets the loudness threshold for a hard cut.
func SetHardCutSensitivity(h Handle, sensitivity float32) error {
	if projectmSetHardCutSensitivity == nil {
		return bindings.ErrNotLoaded
	}
	projectmSetHardCutSensitivity(h, sensitivity)
	return nil
}

// GetSoftCutDuration returns the blend time of soft transitions in seconds.
func GetSoftCutDuration(h Handle) (float64, error) {
	if projectmGetSoftCutDuration == nil {
		return 0, bindings.ErrNotLoaded
	}
	return projectmGetSoftCutDuration(h), nil
}

// SetSoftCutDuration sets the blend time of soft transitions in seconds.
func SetSoftCutDuration(h Handle, seconds float64) error {
	if projectmSetSoftCutDuration == nil {
		return bindings.ErrNotLoaded
	}
	projectmSetSoftCutDuration(h, seconds)
	return nil
}

// GetPresetDuration returns how long a preset is displayed before switching.
func GetPresetDuration(h Handle) (float64, error) {
	if projectmGetPresetDuration == nil {
		return 0, bindings.ErrNotLoaded
	}
	return projectmGetPresetDuration(h), nil
}

// SetPresetDuration sets how long a preset is displayed before switching.
func SetPresetDuration(h Handle, seconds float64) error {
	if projectmSetPresetDuration == nil {
		return bindings.ErrNotLoaded
	}
	projectmSetPresetDuration(h, seconds)
	return nil
}

// GetMeshSize returns the per-pixel mesh resolution from a single call.
func GetMeshSize(h Handle) (width, height uintptr, err error) {
	if projectmGetMeshSize == nil {
		return 0, 0, bindings.ErrNotLoaded
	}
	projectmGetMeshSize(h, &width, &height)
	return width, height, nil
}

// SetMeshSize sets the per-pixel mesh resolution.
func SetMeshSize(h Handle, width, height uintptr) error {
	if projectmSetMeshSize == nil {
		return bindings.ErrNotLoaded
	}
	projectmSetMeshSize(h, width, height)
	return nil
}

// GetFPS returns the frame rate presets are told they run at.
func GetFPS(h Handle) (int32, error) {
	if projectmGetFPS == nil {
		return 0, bindings.ErrNotLoaded
	}
	return projectmGetFPS(h), nil
}

// SetFPS sets the frame rate presets are told they run at.
func SetFPS(h Handle, fps int32) error {
	if projectmSetFPS == nil {
		return bindings.ErrNotLoaded
	}
	projectmSetFPS(h, fps)
	return nil
}

// GetAspectCorrection reports whether aspect ratio correction is enabled.
func GetAspectCorrection(h Handle) (bool, error) {
	if projectmGetAspectCorrection == nil {
		return false, bindings.ErrNotLoaded
	}
	return projectmGetAspectCorrection(h), nil
}

// SetAspectCorrection enables or disables aspect ratio correction.
func SetAspectCorrection(h Handle, enabled bool) error {
	if projectmSetAspectCorrection == nil {
		return bindings.ErrNotLoaded
	}
	projectmSetAspectCorrection(h, enabled)
	return nil
}

// GetEasterEgg returns the preset duration randomisation value.
func GetEasterEgg(h Handle) (float32, error) {
	if projectmGetEasterEgg == nil {
		return 0, bindings.ErrNotLoaded
	}
	return projectmGetEasterEgg(h), nil
}

// SetEasterEgg sets the preset duration randomisation value.
func SetEasterEgg(h Handle, value float32) error {
	if projectmSetEasterEgg == nil {
		return bindings.ErrNotLoaded
	}
	projectmSetEasterEgg(h, value)
	return nil
}

// GetPresetLocked reports whether automatic preset switching is suspended.
func GetPresetLocked(h Handle) (bool, error) {
	if projectmGetPresetLocked == nil {
		return false, bindings.ErrNotLoaded
	}
	return projectmGetPresetLocked(h), nil
}

// SetPresetLocked suspends or resumes automatic preset switching.
func SetPresetLocked(h Handle, locked bool) error {
	if projectmSetPresetLocked == nil {
		return bindings.ErrNotLoaded
	}
	projectmSetPresetLocked(h, locked)
	return nil
}

// GetWindowSize returns the viewport size from a single call.
func GetWindowSize(h Handle) (width, height uintptr, err error) {
	if projectmGetWindowSize == nil {
		return 0, 0, bindings.ErrNotLoaded
	}
	projectmGetWindowSize(h, &width, &height)
	return width, height, nil
}

// SetWindowSize sets the viewport size in pixels.
func SetWindowSize(h Handle, width, height uintptr) error {
	if projectmSetWindowSize == nil {
		return bindings.ErrNotLoaded
	}
	projectmSetWindowSize(h, width, height)
	return nil
}
