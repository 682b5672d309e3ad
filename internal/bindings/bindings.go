//go:build !ios && !android && (amd64 || arm64)

// Package bindings loads the projectM shared libraries with purego and hands
// out the library handles the ABI packages register their symbols against.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/pmgo/internal/platform"
)

// ErrNotLoaded is returned when projectM functions are called before Load().
var ErrNotLoaded = errors.New("pmgo: projectM library not loaded; call pmgo.Init() first")

// ErrLibraryNotFound is returned when a required library cannot be found.
var ErrLibraryNotFound = errors.New("pmgo: projectM library not found")

// ErrPlaylistNotLoaded is returned when the optional playlist library is missing.
var ErrPlaylistNotLoaded = errors.New("pmgo: projectM playlist library not loaded")

// LibDirEnv names the environment variable searched before any system path.
const LibDirEnv = "PMGO_LIB_DIR"

// Library names without prefix, extension or version.
const (
	CoreLibrary     = "projectM-4"
	PlaylistLibrary = "projectM-4-playlist"
)

// ABIVersions lists the shared object versions tried, newest first.
var ABIVersions = []int{4}

var (
	libProjectM uintptr
	libPlaylist uintptr

	loaded   bool
	loadOnce sync.Once
	loadErr  error
)

// IsLoaded returns true if the core library has been successfully loaded.
func IsLoaded() bool {
	return loaded
}

// Load loads libprojectM and, when present, libprojectM-playlist.
// It is safe to call multiple times; the first result is cached.
func Load() error {
	loadOnce.Do(func() {
		loadErr = doLoad()
		if loadErr == nil {
			loaded = true
		}
	})
	return loadErr
}

func doLoad() error {
	if !platform.Is64Bit {
		return fmt.Errorf("pmgo: unsupported platform %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	var err error
	libProjectM, err = loadLibrary(CoreLibrary, ABIVersions)
	if err != nil {
		return fmt.Errorf("loading libprojectM: %w", err)
	}

	// The playlist library links against the core one, so it goes second.
	libPlaylist, _ = loadLibrary(PlaylistLibrary, ABIVersions)
	return nil
}

// loadLibrary attempts to load a library by trying versioned names.
func loadLibrary(name string, versions []int) (uintptr, error) {
	for _, searchPath := range LibrarySearchPaths() {
		for _, ver := range versions {
			if lib, err := tryOpen(filepath.Join(searchPath, platform.FormatLibraryName(name, ver))); err == nil {
				return lib, nil
			}
		}
		if lib, err := tryOpen(filepath.Join(searchPath, platform.FormatLibraryName(name, 0))); err == nil {
			return lib, nil
		}
	}

	// Let the dynamic loader resolve the bare name.
	for _, ver := range versions {
		if lib, err := tryOpen(platform.FormatLibraryName(name, ver)); err == nil {
			return lib, nil
		}
	}
	if lib, err := tryOpen(platform.FormatLibraryName(name, 0)); err == nil {
		return lib, nil
	}

	return 0, fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// tryOpen opens a library with RTLD_NOW | RTLD_GLOBAL.
// The playlist library resolves projectm_* symbols from the core library,
// which only works when the core was opened globally.
func tryOpen(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// FindLibrary searches for a library and returns its full path.
// This is useful for diagnostics.
func FindLibrary(name string, versions []int) (string, error) {
	for _, searchPath := range LibrarySearchPaths() {
		for _, ver := range versions {
			fullPath := filepath.Join(searchPath, platform.FormatLibraryName(name, ver))
			if _, err := os.Stat(fullPath); err == nil {
				return fullPath, nil
			}
		}
		fullPath := filepath.Join(searchPath, platform.FormatLibraryName(name, 0))
		if _, err := os.Stat(fullPath); err == nil {
			return fullPath, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// LibrarySearchPaths returns platform-specific library search paths.
// The PMGO_LIB_DIR list always comes first.
func LibrarySearchPaths() []string {
	var paths []string

	if dir := os.Getenv(LibDirEnv); dir != "" {
		paths = append(paths, filepath.SplitList(dir)...)
	}

	switch runtime.GOOS {
	case "linux":
		if ldPath := os.Getenv("LD_LIBRARY_PATH"); ldPath != "" {
			paths = append(paths, filepath.SplitList(ldPath)...)
		}
		paths = append(paths,
			"/usr/local/lib",
			"/usr/local/lib64",
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib/aarch64-linux-gnu",
			"/usr/lib64",
			"/usr/lib",
		)

	case "darwin":
		if dyldPath := os.Getenv("DYLD_LIBRARY_PATH"); dyldPath != "" {
			paths = append(paths, filepath.SplitList(dyldPath)...)
		}
		paths = append(paths,
			"/opt/homebrew/lib",
			"/usr/local/lib",
			"/opt/homebrew/opt/projectm/lib",
			"/usr/local/opt/projectm/lib",
		)

	case "windows":
		if winPath := os.Getenv("PATH"); winPath != "" {
			paths = append(paths, filepath.SplitList(winPath)...)
		}
		if exe, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Dir(exe))
		}
		paths = append(paths,
			"C:\\vcpkg\\installed\\x64-windows\\bin",
			"C:\\Program Files\\projectM\\bin",
		)

	case "freebsd":
		if ldPath := os.Getenv("LD_LIBRARY_PATH"); ldPath != "" {
			paths = append(paths, filepath.SplitList(ldPath)...)
		}
		paths = append(paths,
			"/usr/local/lib",
			"/usr/lib",
		)
	}

	return paths
}

// LibProjectM returns the core library handle.
func LibProjectM() uintptr {
	return libProjectM
}

// LibPlaylist returns the playlist library handle, or 0 if it is unavailable.
func LibPlaylist() uintptr {
	return libPlaylist
}

// HasPlaylist reports whether the playlist library was found.
func HasPlaylist() bool {
	return libPlaylist != 0
}

// LoadPlaylist returns the playlist library handle, loading the core first.
func LoadPlaylist() (uintptr, error) {
	if err := Load(); err != nil {
		return 0, err
	}
	if libPlaylist == 0 {
		return 0, ErrPlaylistNotLoaded
	}
	return libPlaylist, nil
}
