//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLibrarySearchPaths(t *testing.T) {
	paths := LibrarySearchPaths()
	if len(paths) == 0 {
		t.Error("LibrarySearchPaths should return at least one path")
	}
}

func TestLibrarySearchPathsHonoursEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(LibDirEnv, dir)

	paths := LibrarySearchPaths()
	if len(paths) == 0 || paths[0] != dir {
		t.Fatalf("first search path = %v, want %q", paths, dir)
	}
}

func TestFindLibraryMissing(t *testing.T) {
	t.Setenv(LibDirEnv, filepath.Join(t.TempDir(), "empty"))

	_, err := FindLibrary("pmgo-definitely-missing", []int{99})
	if !errors.Is(err, ErrLibraryNotFound) {
		t.Errorf("expected ErrLibraryNotFound, got %v", err)
	}
}

func TestFindProjectM(t *testing.T) {
	path, err := FindLibrary(CoreLibrary, ABIVersions)
	if err != nil {
		t.Logf("projectM not found (expected if not installed): %v", err)
		return
	}
	t.Logf("projectM found at %s", path)
}

func TestLoadProjectM(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping library load in short mode")
	}

	if err := Load(); err != nil {
		t.Skipf("projectM not available: %v", err)
	}
	if !IsLoaded() {
		t.Error("IsLoaded should be true after successful Load")
	}
	if LibProjectM() == 0 {
		t.Error("LibProjectM should be non-zero after Load")
	}

	if _, err := LoadPlaylist(); err != nil {
		if !errors.Is(err, ErrPlaylistNotLoaded) {
			t.Errorf("unexpected playlist error: %v", err)
		}
		t.Logf("playlist library not available: %v", err)
	}
}
