//go:build !ios && !android && (amd64 || arm64)

// Package playlist provides bindings to libprojectM-playlist's C API.
//
// A playlist is created against a projectM instance and installs its own
// preset-switch callbacks on it, so it can advance when the engine asks for
// a new preset.
package playlist

import (
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/pmgo/internal/bindings"
	"github.com/obinnaokechukwu/pmgo/projectm"
)

// Handle is an opaque projectm_playlist_handle.
type Handle = unsafe.Pointer

// SortPredicate selects the sort key.
type SortPredicate int32

const (
	SortFullPath SortPredicate = iota
	SortFilenameOnly
)

// SortOrder selects the sort direction.
type SortOrder int32

const (
	SortAscending SortOrder = iota
	SortDescending
)

var (
	playlistCreate          func(instance unsafe.Pointer) unsafe.Pointer
	playlistDestroy         func(pl unsafe.Pointer)
	playlistConnect         func(pl unsafe.Pointer, instance unsafe.Pointer)
	playlistSize            func(pl unsafe.Pointer) uint32
	playlistClear           func(pl unsafe.Pointer)
	playlistItems           func(pl unsafe.Pointer, start, count uint32) unsafe.Pointer
	playlistItem            func(pl unsafe.Pointer, index uint32) unsafe.Pointer
	playlistFreeStringArray func(array unsafe.Pointer)
	playlistFreeString      func(str unsafe.Pointer)
	playlistAddPath         func(pl unsafe.Pointer, path string, recurse, allowDuplicates bool) uint32
	playlistAddPreset       func(pl unsafe.Pointer, filename string, allowDuplicates bool) bool
	playlistInsertPreset    func(pl unsafe.Pointer, filename string, index uint32, allowDuplicates bool) bool
	playlistRemovePreset    func(pl unsafe.Pointer, index uint32) bool
	playlistRemovePresets   func(pl unsafe.Pointer, index, count uint32) uint32
	playlistGetShuffle      func(pl unsafe.Pointer) bool
	playlistSetShuffle      func(pl unsafe.Pointer, shuffle bool)
	playlistSort            func(pl unsafe.Pointer, start, count uint32, predicate, order int32)
	playlistGetRetryCount   func(pl unsafe.Pointer) uint32
	playlistSetRetryCount   func(pl unsafe.Pointer, count uint32)
	playlistGetPosition     func(pl unsafe.Pointer) uint32
	playlistSetPosition     func(pl unsafe.Pointer, position uint32, hardCut bool) uint32
	playlistPlayNext        func(pl unsafe.Pointer, hardCut bool) uint32
	playlistPlayPrevious    func(pl unsafe.Pointer, hardCut bool) uint32
	playlistPlayLast        func(pl unsafe.Pointer, hardCut bool) uint32

	playlistSetPresetSwitched     func(pl unsafe.Pointer, cb, userData uintptr)
	playlistSetPresetSwitchFailed func(pl unsafe.Pointer, cb, userData uintptr)

	bindingsRegistered bool
)

func init() {
	registerBindings()
}

func registerBindings() {
	if bindingsRegistered {
		return
	}

	lib, err := bindings.LoadPlaylist()
	if err != nil {
		return // Will fail later when functions are called
	}

	purego.RegisterLibFunc(&playlistCreate, lib, "projectm_playlist_create")
	purego.RegisterLibFunc(&playlistDestroy, lib, "projectm_playlist_destroy")
	purego.RegisterLibFunc(&playlistConnect, lib, "projectm_playlist_connect")
	purego.RegisterLibFunc(&playlistSize, lib, "projectm_playlist_size")
	purego.RegisterLibFunc(&playlistClear, lib, "projectm_playlist_clear")
	purego.RegisterLibFunc(&playlistItems, lib, "projectm_playlist_items")
	purego.RegisterLibFunc(&playlistItem, lib, "projectm_playlist_item")
	purego.RegisterLibFunc(&playlistFreeStringArray, lib, "projectm_playlist_free_string_array")
	purego.RegisterLibFunc(&playlistFreeString, lib, "projectm_playlist_free_string")
	purego.RegisterLibFunc(&playlistAddPath, lib, "projectm_playlist_add_path")
	purego.RegisterLibFunc(&playlistAddPreset, lib, "projectm_playlist_add_preset")
	purego.RegisterLibFunc(&playlistInsertPreset, lib, "projectm_playlist_insert_preset")
	purego.RegisterLibFunc(&playlistRemovePreset, lib, "projectm_playlist_remove_preset")
	purego.RegisterLibFunc(&playlistRemovePresets, lib, "projectm_playlist_remove_presets")
	purego.RegisterLibFunc(&playlistGetShuffle, lib, "projectm_playlist_get_shuffle")
	purego.RegisterLibFunc(&playlistSetShuffle, lib, "projectm_playlist_set_shuffle")
	purego.RegisterLibFunc(&playlistSort, lib, "projectm_playlist_sort")
	purego.RegisterLibFunc(&playlistGetRetryCount, lib, "projectm_playlist_get_retry_count")
	purego.RegisterLibFunc(&playlistSetRetryCount, lib, "projectm_playlist_set_retry_count")
	purego.RegisterLibFunc(&playlistGetPosition, lib, "projectm_playlist_get_position")
	purego.RegisterLibFunc(&playlistSetPosition, lib, "projectm_playlist_set_position")
	purego.RegisterLibFunc(&playlistPlayNext, lib, "projectm_playlist_play_next")
	purego.RegisterLibFunc(&playlistPlayPrevious, lib, "projectm_playlist_play_previous")
	purego.RegisterLibFunc(&playlistPlayLast, lib, "projectm_playlist_play_last")

	purego.RegisterLibFunc(&playlistSetPresetSwitched, lib, "projectm_playlist_set_preset_switched_event_callback")
	purego.RegisterLibFunc(&playlistSetPresetSwitchFailed, lib, "projectm_playlist_set_preset_switch_failed_event_callback")

	bindingsRegistered = true
}

// Available reports whether the playlist symbols were bound.
func Available() bool {
	return bindingsRegistered
}

// Create creates a playlist connected to instance. nil on failure.
func Create(instance projectm.Handle) Handle {
	if playlistCreate == nil {
		return nil
	}
	return playlistCreate(instance)
}

// Destroy destroys a playlist. Safe to call with a nil handle.
func Destroy(pl Handle) {
	if pl == nil || playlistDestroy == nil {
		return
	}
	playlistDestroy(pl)
}

// Connect moves the playlist to another instance, or detaches it when
// instance is nil.
func Connect(pl Handle, instance projectm.Handle) error {
	if playlistConnect == nil {
		return bindings.ErrPlaylistNotLoaded
	}
	playlistConnect(pl, instance)
	return nil
}

// Size returns the number of entries.
func Size(pl Handle) (uint32, error) {
	if playlistSize == nil {
		return 0, bindings.ErrPlaylistNotLoaded
	}
	return playlistSize(pl), nil
}

// Clear removes every entry.
func Clear(pl Handle) error {
	if playlistClear == nil {
		return bindings.ErrPlaylistNotLoaded
	}
	playlistClear(pl)
	return nil
}

// Items returns up to count file names starting at start.
func Items(pl Handle, start, count uint32) ([]string, error) {
	if playlistItems == nil || playlistFreeStringArray == nil {
		return nil, bindings.ErrPlaylistNotLoaded
	}
	array := playlistItems(pl, start, count)
	if array == nil {
		return nil, nil
	}
	defer playlistFreeStringArray(array)

	var items []string
	for i := uintptr(0); ; i++ {
		p := *(*unsafe.Pointer)(unsafe.Add(array, i*unsafe.Sizeof(uintptr(0))))
		if p == nil {
			break
		}
		items = append(items, projectm.GoString(p))
	}
	return items, nil
}

// Item returns the file name at index, or ok=false when index is out of range.
func Item(pl Handle, index uint32) (name string, ok bool, err error) {
	if playlistItem == nil || playlistFreeString == nil {
		return "", false, bindings.ErrPlaylistNotLoaded
	}
	p := playlistItem(pl, index)
	if p == nil {
		return "", false, nil
	}
	name = projectm.GoString(p)
	playlistFreeString(p)
	return name, true, nil
}

// AddPath scans path for presets and appends them. It returns how many were added.
func AddPath(pl Handle, path string, recurse, allowDuplicates bool) (uint32, error) {
	if playlistAddPath == nil {
		return 0, bindings.ErrPlaylistNotLoaded
	}
	return playlistAddPath(pl, path, recurse, allowDuplicates), nil
}

// AddPreset appends one file. It reports whether the file was added.
func AddPreset(pl Handle, filename string, allowDuplicates bool) (bool, error) {
	if playlistAddPreset == nil {
		return false, bindings.ErrPlaylistNotLoaded
	}
	return playlistAddPreset(pl, filename, allowDuplicates), nil
}

// InsertPreset inserts one file before index.
func InsertPreset(pl Handle, filename string, index uint32, allowDuplicates bool) (bool, error) {
	if playlistInsertPreset == nil {
		return false, bindings.ErrPlaylistNotLoaded
	}
	return playlistInsertPreset(pl, filename, index, allowDuplicates), nil
}

// RemovePreset removes the entry at index.
func RemovePreset(pl Handle, index uint32) (bool, error) {
	if playlistRemovePreset == nil {
		return false, bindings.ErrPlaylistNotLoaded
	}
	return playlistRemovePreset(pl, index), nil
}

// RemovePresets removes up to count entries starting at index.
func RemovePresets(pl Handle, index, count uint32) (uint32, error) {
	if playlistRemovePresets == nil {
		return 0, bindings.ErrPlaylistNotLoaded
	}
	return playlistRemovePresets(pl, index, count), nil
}

// GetShuffle reports whether next/previous pick random entries.
func GetShuffle(pl Handle) (bool, error) {
	if playlistGetShuffle == nil {
		return false, bindings.ErrPlaylistNotLoaded
	}
	return playlistGetShuffle(pl), nil
}

// SetShuffle enables or disables shuffle mode.
func SetShuffle(pl Handle, shuffle bool) error {
	if playlistSetShuffle == nil {
		return bindings.ErrPlaylistNotLoaded
	}
	playlistSetShuffle(pl, shuffle)
	return nil
}

// Sort sorts count entries starting at start.
func Sort(pl Handle, start, count uint32, predicate SortPredicate, order SortOrder) error {
	if playlistSort == nil {
		return bindings.ErrPlaylistNotLoaded
	}
	playlistSort(pl, start, count, int32(predicate), int32(order))
	return nil
}

// GetRetryCount returns how many failed presets are skipped before giving up.
func GetRetryCount(pl Handle) (uint32, error) {
	if playlistGetRetryCount == nil {
		return 0, bindings.ErrPlaylistNotLoaded
	}
	return playlistGetRetryCount(pl), nil
}

// SetRetryCount sets how many failed presets are skipped before giving up.
func SetRetryCount(pl Handle, count uint32) error {
	if playlistSetRetryCount == nil {
		return bindings.ErrPlaylistNotLoaded
	}
	playlistSetRetryCount(pl, count)
	return nil
}

// GetPosition returns the current index.
func GetPosition(pl Handle) (uint32, error) {
	if playlistGetPosition == nil {
		return 0, bindings.ErrPlaylistNotLoaded
	}
	return playlistGetPosition(pl), nil
}

// SetPosition jumps to position and returns the resulting index.
func SetPosition(pl Handle, position uint32, hardCut bool) (uint32, error) {
	if playlistSetPosition == nil {
		return 0, bindings.ErrPlaylistNotLoaded
	}
	return playlistSetPosition(pl, position, hardCut), nil
}

// PlayNext advances and returns the new index.
func PlayNext(pl Handle, hardCut bool) (uint32, error) {
	if playlistPlayNext == nil {
		return 0, bindings.ErrPlaylistNotLoaded
	}
	return playlistPlayNext(pl, hardCut), nil
}

// PlayPrevious steps back and returns the new index.
func PlayPrevious(pl Handle, hardCut bool) (uint32, error) {
	if playlistPlayPrevious == nil {
		return 0, bindings.ErrPlaylistNotLoaded
	}
	return playlistPlayPrevious(pl, hardCut), nil
}

// PlayLast returns to the previously played preset from the history.
func PlayLast(pl Handle, hardCut bool) (uint32, error) {
	if playlistPlayLast == nil {
		return 0, bindings.ErrPlaylistNotLoaded
	}
	return playlistPlayLast(pl, hardCut), nil
}

// SetPresetSwitchedCallback installs a C function pointer receiving
// (bool is_hard_cut, unsigned int index, void *user_data).
func SetPresetSwitchedCallback(pl Handle, cb, userData uintptr) error {
	if playlistSetPresetSwitched == nil {
		return bindings.ErrPlaylistNotLoaded
	}
	playlistSetPresetSwitched(pl, cb, userData)
	return nil
}

// SetPresetSwitchFailedCallback installs a C function pointer receiving
// (const char *preset_filename, const char *message, void *user_data).
func SetPresetSwitchFailedCallback(pl Handle, cb, userData uintptr) error {
	if playlistSetPresetSwitchFailed == nil {
		return bindings.ErrPlaylistNotLoaded
	}
	playlistSetPresetSwitchFailed(pl, cb, userData)
	return nil
}
