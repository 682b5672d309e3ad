//go:build !ios && !android && (amd64 || arm64)

package pmgo

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

func presetNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("/presets/%02d.milk", i)
	}
	return names
}

func newTestPlaylist(t *testing.T, opts ...PlaylistOption) (*Playlist, *Engine, *fakeEngine, *fakePlaylist) {
	t.Helper()
	e, fe, fp := newTestEngine(t)
	fp.dirs["/presets"] = presetNames(20)
	pl, err := NewPlaylist(e, opts...)
	if err != nil {
		t.Fatalf("NewPlaylist: %v", err)
	}
	return pl, e, fe, fp
}

func TestNewPlaylistNotLoaded(t *testing.T) {
	e, _, fp := newTestEngine(t)
	fp.unavailable = true

	if _, err := NewPlaylist(e); !errors.Is(err, ErrPlaylistNotLoaded) {
		t.Errorf("expected ErrPlaylistNotLoaded, got %v", err)
	}
}

func TestNewPlaylistClosedEngine(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.Close()

	if _, err := NewPlaylist(e); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestPlaylistAddPath(t *testing.T) {
	pl, _, _, fp := newTestPlaylist(t)

	if empty, _ := pl.IsEmpty(); !empty {
		t.Error("new playlist should be empty")
	}

	added, err := pl.AddPath("/presets", false)
	if err != nil {
		t.Fatal(err)
	}
	if added != 20 {
		t.Errorf("added = %d, want 20", added)
	}
	if n, _ := pl.Len(); n != 20 {
		t.Errorf("Len = %d, want 20", n)
	}

	// Scanning again adds nothing; duplicates are never allowed.
	added, _ = pl.AddPath("/presets", false)
	if added != 0 {
		t.Errorf("second scan added %d", added)
	}
	if slices.Contains(fp.addPathAllowDup, true) {
		t.Error("AddPath allowed duplicates")
	}

	var cerr *CStringError
	if _, err := pl.AddPath("/pre\x00sets", false); !errors.As(err, &cerr) {
		t.Errorf("expected *CStringError, got %v", err)
	}
}

func TestPlayRandomEmpty(t *testing.T) {
	pl, _, _, fp := newTestPlaylist(t)

	_, err := pl.PlayRandom()
	if !errors.Is(err, ErrEmptyPlaylist) {
		t.Errorf("expected ErrEmptyPlaylist, got %v", err)
	}
	if len(fp.setPositions) != 0 {
		t.Error("PlayRandom reached the native playlist")
	}
}

func TestNavigationEmpty(t *testing.T) {
	pl, _, _, _ := newTestPlaylist(t)

	for name, op := range map[string]func() (int, error){
		"PlayNext":     pl.PlayNext,
		"PlayPrevious": pl.PlayPrevious,
		"PlayLast":     pl.PlayLast,
	} {
		if _, err := op(); !errors.Is(err, ErrEmptyPlaylist) {
			t.Errorf("%s: expected ErrEmptyPlaylist, got %v", name, err)
		}
	}
}

func TestPlayRandomRange(t *testing.T) {
	pl, _, _, fp := newTestPlaylist(t, WithSeed(7))
	pl.AddPath("/presets", false)

	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		pos, err := pl.PlayRandom()
		if err != nil {
			t.Fatal(err)
		}
		if pos < 0 || pos >= 20 {
			t.Fatalf("position %d out of range", pos)
		}
		seen[pos] = true
	}
	if len(seen) != 20 {
		t.Errorf("only %d of 20 entries drawn", len(seen))
	}
	if got, _ := pl.Position(); got != int(fp.pos) {
		t.Errorf("Position = %d, native %d", got, fp.pos)
	}
}

func TestPlayRandomSeeded(t *testing.T) {
	draw := func(opts ...PlaylistOption) []int {
		pl, _, _, _ := newTestPlaylist(t, opts...)
		pl.AddPath("/presets", false)
		var out []int
		for i := 0; i < 10; i++ {
			pos, _ := pl.PlayRandom()
			out = append(out, pos)
		}
		return out
	}

	a := draw(WithSeed(42))
	b := draw(WithSeed(42))
	if !slices.Equal(a, b) {
		t.Errorf("same seed gave %v and %v", a, b)
	}

	c := draw(WithRand(rand.New(rand.NewPCG(1, 2))))
	d := draw(WithRand(rand.New(rand.NewPCG(1, 2))))
	if !slices.Equal(c, d) {
		t.Errorf("same source gave %v and %v", c, d)
	}
}

func TestPlaylistNavigation(t *testing.T) {
	pl, _, _, _ := newTestPlaylist(t)
	pl.AddPath("/presets", false)

	if pos, _ := pl.SetPosition(5, false); pos != 5 {
		t.Errorf("SetPosition = %d", pos)
	}
	if pos, _ := pl.PlayNext(); pos != 6 {
		t.Errorf("PlayNext = %d", pos)
	}
	if pos, _ := pl.PlayPrevious(); pos != 5 {
		t.Errorf("PlayPrevious = %d", pos)
	}
	if _, err := pl.SetPosition(20, true); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := pl.SetPosition(-1, true); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestPlaylistEditing(t *testing.T) {
	pl, _, _, _ := newTestPlaylist(t)

	pl.AddPreset("/b.milk")
	pl.AddPreset("/c.milk")
	if ok, _ := pl.AddPreset("/b.milk"); ok {
		t.Error("duplicate preset added")
	}
	pl.InsertPreset("/a.milk", 0)

	items, err := pl.Items(0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"/a.milk", "/b.milk", "/c.milk"}; !slices.Equal(items, want) {
		t.Errorf("Items = %v, want %v", items, want)
	}

	if name, _ := pl.Item(1); name != "/b.milk" {
		t.Errorf("Item(1) = %q", name)
	}
	if _, err := pl.Item(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}

	pl.Sort(0, 3, SortFullPath, SortDescending)
	if name, _ := pl.Item(0); name != "/c.milk" {
		t.Errorf("after descending sort Item(0) = %q", name)
	}

	if err := pl.RemovePreset(0); err != nil {
		t.Fatal(err)
	}
	if n, _ := pl.RemovePresets(0, 5); n != 2 {
		t.Errorf("RemovePresets removed %d", n)
	}
	if empty, _ := pl.IsEmpty(); !empty {
		t.Error("playlist should be empty")
	}

	pl.AddPreset("/x.milk")
	if err := pl.Clear(); err != nil {
		t.Fatal(err)
	}
	if n, _ := pl.Len(); n != 0 {
		t.Errorf("Len after Clear = %d", n)
	}
}

func TestPlaylistShuffleAndRetry(t *testing.T) {
	pl, _, _, _ := newTestPlaylist(t)

	pl.SetShuffle(true)
	if v, _ := pl.Shuffle(); !v {
		t.Error("shuffle not enabled")
	}
	pl.SetRetryCount(3)
	if n, _ := pl.RetryCount(); n != 3 {
		t.Errorf("RetryCount = %d", n)
	}
	if err := pl.SetRetryCount(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected range error, got %v", err)
	}
}

func TestEngineCloseClosesPlaylist(t *testing.T) {
	pl, e, fe, fp := newTestPlaylist(t)

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	i := slices.Index(*fe.calls, "playlist.destroy")
	j := slices.Index(*fe.calls, "engine.destroy")
	if i < 0 || j < 0 || i > j {
		t.Errorf("destroy order = %v", *fe.calls)
	}

	if _, err := pl.Len(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if _, err := pl.PlayRandom(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := pl.Close(); err != nil {
		t.Errorf("Close after engine close: %v", err)
	}
	if fp.destroyed != 1 {
		t.Errorf("playlist destroyed %d times", fp.destroyed)
	}
}

func TestPlaylistCloseLogsDetachError(t *testing.T) {
	var logs bytes.Buffer
	fe := newFakeEngine()
	fp := newFakePlaylist(fe)
	fp.detachErr = errors.New("detach refused")
	e, err := newEngine(fe, fp, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}
	defer e.Close()

	pl, err := NewPlaylist(e)
	if err != nil {
		t.Fatalf("NewPlaylist: %v", err)
	}
	if err := pl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if fp.destroyed != 1 {
		t.Errorf("playlist destroyed %d times, want 1", fp.destroyed)
	}
	out := logs.String()
	if !strings.Contains(out, "playlist detach failed") || !strings.Contains(out, "detach refused") {
		t.Errorf("detach error not logged:\n%s", out)
	}
}

func TestPlaylistCloseIdempotent(t *testing.T) {
	pl, e, _, fp := newTestPlaylist(t)

	pl.Close()
	pl.Close()
	if fp.destroyed != 1 {
		t.Errorf("playlist destroyed %d times", fp.destroyed)
	}
	if fp.connected {
		t.Error("playlist still connected after Close")
	}
	if _, err := pl.Len(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	// The engine stays usable.
	if err := e.RenderFrame(); err != nil {
		t.Error(err)
	}
}

func TestPlaylistSwitchedCallback(t *testing.T) {
	pl, _, _, _ := newTestPlaylist(t)
	pl.AddPath("/presets", false)

	type switched struct {
		hardCut bool
		index   uint32
	}
	var got []switched
	pl.SetPresetSwitchedCallback(func(hardCut bool, index uint32) {
		got = append(got, switched{hardCut, index})
		// Re-entering the playlist from its own callback must not deadlock.
		if n, err := pl.Len(); err != nil || n != 20 {
			t.Errorf("Len from callback = %d, %v", n, err)
		}
	})

	pl.SetPosition(3, false)
	pl.PlayNext()

	want := []switched{{false, 3}, {true, 4}}
	if !slices.Equal(got, want) {
		t.Errorf("switched = %v, want %v", got, want)
	}

	base := callbacks.Count()
	pl.SetPresetSwitchedCallback(nil)
	if callbacks.Count() != base-1 {
		t.Error("nil registration did not release the closure")
	}
}

func TestPlaylistFailedCallback(t *testing.T) {
	pl, _, _, fp := newTestPlaylist(t)

	var file string
	pl.SetPresetSwitchFailedCallback(func(f, _ string) { file = f })
	dispatchPresetSwitchFailed(fp.failedUD, "bad.milk", "no such file")
	if file != "bad.milk" {
		t.Errorf("file = %q", file)
	}
}
