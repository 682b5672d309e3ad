//go:build !ios && !android && (amd64 || arm64)

// Package projectm provides bindings to libprojectM's C API.
// It covers instance lifecycle, preset loading, parameters, rendering, touch
// input, PCM ingestion, event callbacks and version queries.
//
// Every function takes the opaque instance Handle first, mirroring the C
// API. No locking happens here; package pmgo layers ownership and
// serialisation on top.
package projectm

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/pmgo/internal/bindings"
)

// Handle is an opaque projectm_handle.
type Handle = unsafe.Pointer

// Function bindings - registered when init() is called
var (
	projectmCreate            func() unsafe.Pointer
	projectmDestroy           func(h unsafe.Pointer)
	projectmLoadPresetFile    func(h unsafe.Pointer, filename string, smooth bool)
	projectmLoadPresetData    func(h unsafe.Pointer, data string, smooth bool)
	projectmResetTextures     func(h unsafe.Pointer)
	projectmVersionComponents func(major, minor, patch *int32)
	projectmVersionString     func() unsafe.Pointer
	projectmVCSVersionString  func() unsafe.Pointer
	projectmFreeString        func(str unsafe.Pointer)

	projectmSetPresetSwitchRequested func(h unsafe.Pointer, cb, userData uintptr)
	projectmSetPresetSwitchFailed    func(h unsafe.Pointer, cb, userData uintptr)

	projectmRenderFrame func(h unsafe.Pointer)

	projectmWriteDebugImage func(h unsafe.Pointer, outputFile *byte)

	bindingsRegistered bool
)

func init() {
	registerBindings()
}

func registerBindings() {
	if bindingsRegistered {
		return
	}

	if err := bindings.Load(); err != nil {
		return // Will fail later when functions are called
	}

	lib := bindings.LibProjectM()
	if lib == 0 {
		return
	}

	purego.RegisterLibFunc(&projectmCreate, lib, "projectm_create")
	purego.RegisterLibFunc(&projectmDestroy, lib, "projectm_destroy")
	purego.RegisterLibFunc(&projectmLoadPresetFile, lib, "projectm_load_preset_file")
	purego.RegisterLibFunc(&projectmLoadPresetData, lib, "projectm_load_preset_data")
	purego.RegisterLibFunc(&projectmResetTextures, lib, "projectm_reset_textures")
	purego.RegisterLibFunc(&projectmVersionComponents, lib, "projectm_get_version_components")
	purego.RegisterLibFunc(&projectmVersionString, lib, "projectm_get_version_string")
	purego.RegisterLibFunc(&projectmVCSVersionString, lib, "projectm_get_vcs_version_string")
	purego.RegisterLibFunc(&projectmFreeString, lib, "projectm_free_string")

	purego.RegisterLibFunc(&projectmSetPresetSwitchRequested, lib, "projectm_set_preset_switch_requested_event_callback")
	purego.RegisterLibFunc(&projectmSetPresetSwitchFailed, lib, "projectm_set_preset_switch_failed_event_callback")

	purego.RegisterLibFunc(&projectmRenderFrame, lib, "projectm_opengl_render_frame")
	purego.RegisterLibFunc(&projectmWriteDebugImage, lib, "projectm_write_debug_image_on_next_frame")

	registerParameters(lib)
	registerInput(lib)

	bindingsRegistered = true
}

// Available reports whether the core symbols were bound.
func Available() bool {
	return bindingsRegistered
}

// Create creates a projectM instance. It returns nil on failure, which
// projectM reports when no OpenGL context is current on the calling thread.
func Create() Handle {
	if projectmCreate == nil {
		return nil
	}
	return projectmCreate()
}

// Destroy destroys a projectM instance. Safe to call with a nil handle.
func Destroy(h Handle) {
	if h == nil || projectmDestroy == nil {
		return
	}
	projectmDestroy(h)
}

// LoadPresetFile loads a preset from a file path or URL.
// Load failures are reported through the preset-switch-failed callback.
func LoadPresetFile(h Handle, filename string, smoothTransition bool) error {
	if projectmLoadPresetFile == nil {
		return bindings.ErrNotLoaded
	}
	projectmLoadPresetFile(h, filename, smoothTransition)
	return nil
}

// LoadPresetData loads a preset from its textual contents.
func LoadPresetData(h Handle, data string, smoothTransition bool) error {
	if projectmLoadPresetData == nil {
		return bindings.ErrNotLoaded
	}
	projectmLoadPresetData(h, data, smoothTransition)
	return nil
}

// ResetTextures reloads all textures on the next frame.
func ResetTextures(h Handle) error {
	if projectmResetTextures == nil {
		return bindings.ErrNotLoaded
	}
	projectmResetTextures(h)
	return nil
}

// RenderFrame renders one frame into the currently bound framebuffer.
func RenderFrame(h Handle) error {
	if projectmRenderFrame == nil {
		return bindings.ErrNotLoaded
	}
	projectmRenderFrame(h)
	return nil
}

// WriteDebugImageOnNextFrame asks the engine to dump the next frame's main
// texture. An empty path passes NULL so the engine picks its default name.
func WriteDebugImageOnNextFrame(h Handle, outputFile string) error {
	if projectmWriteDebugImage == nil {
		return bindings.ErrNotLoaded
	}
	if outputFile == "" {
		projectmWriteDebugImage(h, nil)
		return nil
	}
	buf := append([]byte(outputFile), 0)
	projectmWriteDebugImage(h, &buf[0])
	runtime.KeepAlive(buf)
	return nil
}

// VersionComponents returns the library's major, minor and patch numbers.
func VersionComponents() (major, minor, patch int32, err error) {
	if projectmVersionComponents == nil {
		return 0, 0, 0, bindings.ErrNotLoaded
	}
	projectmVersionComponents(&major, &minor, &patch)
	return major, minor, patch, nil
}

// VersionString returns the library version, e.g. "4.0.0".
func VersionString() (string, error) {
	if projectmVersionString == nil || projectmFreeString == nil {
		return "", bindings.ErrNotLoaded
	}
	return takeString(projectmVersionString()), nil
}

// VCSVersionString returns the source control revision the library was built from.
func VCSVersionString() (string, error) {
	if projectmVCSVersionString == nil || projectmFreeString == nil {
		return "", bindings.ErrNotLoaded
	}
	return takeString(projectmVCSVersionString()), nil
}

// SetPresetSwitchRequestedCallback installs a C function pointer receiving
// (bool is_hard_cut, void *user_data). A zero cb removes the callback.
func SetPresetSwitchRequestedCallback(h Handle, cb, userData uintptr) error {
	if projectmSetPresetSwitchRequested == nil {
		return bindings.ErrNotLoaded
	}
	projectmSetPresetSwitchRequested(h, cb, userData)
	return nil
}

// SetPresetSwitchFailedCallback installs a C function pointer receiving
// (const char *preset_filename, const char *message, void *user_data).
func SetPresetSwitchFailedCallback(h Handle, cb, userData uintptr) error {
	if projectmSetPresetSwitchFailed == nil {
		return bindings.ErrNotLoaded
	}
	projectmSetPresetSwitchFailed(h, cb, userData)
	return nil
}

// takeString copies a string allocated by projectM and releases it.
func takeString(ptr unsafe.Pointer) string {
	if ptr == nil {
		return ""
	}
	s := GoString(ptr)
	projectmFreeString(ptr)
	return s
}

// GoString copies a NUL-terminated C string. The bytes are kept as they are;
// no UTF-8 validation happens.
func GoString(ptr unsafe.Pointer) string {
	if ptr == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(ptr, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(ptr), n))
}
