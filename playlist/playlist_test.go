//go:build !ios && !android && (amd64 || arm64)

package playlist

import (
	"errors"
	"testing"

	"github.com/obinnaokechukwu/pmgo/internal/bindings"
)

func TestUnboundReturnsErrPlaylistNotLoaded(t *testing.T) {
	if Available() {
		t.Skip("playlist library is loaded")
	}

	if _, err := Size(nil); !errors.Is(err, bindings.ErrPlaylistNotLoaded) {
		t.Errorf("Size: expected ErrPlaylistNotLoaded, got %v", err)
	}
	if _, err := PlayNext(nil, true); !errors.Is(err, bindings.ErrPlaylistNotLoaded) {
		t.Errorf("PlayNext: expected ErrPlaylistNotLoaded, got %v", err)
	}
	if _, err := Items(nil, 0, 1); !errors.Is(err, bindings.ErrPlaylistNotLoaded) {
		t.Errorf("Items: expected ErrPlaylistNotLoaded, got %v", err)
	}
	if Create(nil) != nil {
		t.Error("Create should return nil without the library")
	}
	Destroy(nil)
}

func TestSortConstants(t *testing.T) {
	// Values are fixed by the C enums.
	if SortFullPath != 0 || SortFilenameOnly != 1 {
		t.Errorf("predicate values %d %d", SortFullPath, SortFilenameOnly)
	}
	if SortAscending != 0 || SortDescending != 1 {
		t.Errorf("order values %d %d", SortAscending, SortDescending)
	}
}
