//go:build !ios && !android && (amd64 || arm64)

package pmgo

import (
	"fmt"
	"math/rand/v2"

	"github.com/obinnaokechukwu/pmgo/playlist"
	"github.com/obinnaokechukwu/pmgo/projectm"
)

// SortPredicate selects the key Sort orders by.
type SortPredicate = playlist.SortPredicate

// SortOrder selects the direction Sort orders in.
type SortOrder = playlist.SortOrder

// Sort keys and directions.
const (
	SortFullPath     = playlist.SortFullPath
	SortFilenameOnly = playlist.SortFilenameOnly
	SortAscending    = playlist.SortAscending
	SortDescending   = playlist.SortDescending
)

// Playlist is a list of preset files driving an Engine.
//
// A playlist is bound to the engine it was created from and shares that
// engine's lock. While it exists it owns the engine's preset-switch
// callbacks and advances automatically when the engine requests a new
// preset. Closing the engine closes the playlist.
type Playlist struct {
	engine *Engine
	api    playlistAPI
	handle playlist.Handle
	closed bool // guarded by engine.mu

	rng *rand.Rand

	switchedID uintptr
	failedID   uintptr
}

// PlaylistOption configures NewPlaylist.
type PlaylistOption func(*Playlist)

// WithSeed seeds the generator PlayRandom draws from.
func WithSeed(seed uint64) PlaylistOption {
	return func(p *Playlist) { p.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithRand makes PlayRandom draw from r.
func WithRand(r *rand.Rand) PlaylistOption {
	return func(p *Playlist) { p.rng = r }
}

// NewPlaylist creates an empty playlist connected to e.
func NewPlaylist(e *Engine, opts ...PlaylistOption) (*Playlist, error) {
	if !e.pl.available() {
		return nil, ErrPlaylistNotLoaded
	}

	p := &Playlist{engine: e, api: e.pl}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	err := e.call(func(h projectm.Handle) error {
		p.handle = p.api.create(h)
		if p.handle == nil {
			return ErrCreateFailed
		}
		// The native playlist has just installed its own engine callbacks.
		e.releaseEngineCallbacks()
		e.playlists[p] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("playlist created")
	return p, nil
}

// call runs fn under the engine lock with the live playlist handle.
func (p *Playlist) call(fn func(pl playlist.Handle) error) error {
	return p.engine.call(func(projectm.Handle) error {
		if p.closed {
			return ErrClosed
		}
		return fn(p.handle)
	})
}

// Close destroys the native playlist and hands the engine's callback slots
// back. Close is idempotent.
func (p *Playlist) Close() error {
	e := p.engine
	e.mu.Lock()
	if p.closed {
		e.mu.Unlock()
		return nil
	}
	e.events.enter()
	p.destroyLocked()
	e.events.release()
	e.mu.Unlock()
	e.events.flush()
	e.logger.Debug("playlist closed")
	return nil
}

// destroyLocked releases the native playlist. Caller holds engine.mu.
func (p *Playlist) destroyLocked() {
	// Detach first so the engine no longer calls into the playlist.
	if err := p.api.connect(p.handle, nil); err != nil {
		p.engine.logger.Warn("playlist detach failed", "error", err)
	}
	p.api.destroy(p.handle)
	p.handle = nil
	p.closed = true

	callbacks.Unregister(p.switchedID)
	callbacks.Unregister(p.failedID)
	p.switchedID, p.failedID = 0, 0
	delete(p.engine.playlists, p)
}

// Len returns the number of entries.
func (p *Playlist) Len() (int, error) {
	var n uint32
	err := p.call(func(pl playlist.Handle) error {
		var err error
		n, err = p.api.size(pl)
		return err
	})
	return int(n), err
}

// IsEmpty reports whether the playlist has no entries.
func (p *Playlist) IsEmpty() (bool, error) {
	n, err := p.Len()
	return n == 0, err
}

// AddPath scans path for preset files, descending into subdirectories when
// recursive is set, and appends those not already present.
// It returns the number of files added.
func (p *Playlist) AddPath(path string, recursive bool) (int, error) {
	if err := checkCString("AddPath", path); err != nil {
		return 0, err
	}
	var added uint32
	err := p.call(func(pl playlist.Handle) error {
		var err error
		added, err = p.api.addPath(pl, path, recursive, false)
		return err
	})
	if err == nil {
		p.engine.logger.Debug("playlist path added", "path", path, "added", added)
	}
	return int(added), err
}

// AddPreset appends filename unless it is already present.
// It reports whether the file was added.
func (p *Playlist) AddPreset(filename string) (bool, error) {
	if err := checkCString("AddPreset", filename); err != nil {
		return false, err
	}
	var ok bool
	err := p.call(func(pl playlist.Handle) error {
		var err error
		ok, err = p.api.addPreset(pl, filename, false)
		return err
	})
	return ok, err
}

// InsertPreset inserts filename before index. An index at or beyond Len
// appends.
func (p *Playlist) InsertPreset(filename string, index int) (bool, error) {
	if err := checkCString("InsertPreset", filename); err != nil {
		return false, err
	}
	idx, err := toIndex(index)
	if err != nil {
		return false, err
	}
	var ok bool
	err = p.call(func(pl playlist.Handle) error {
		var err error
		ok, err = p.api.insertPreset(pl, filename, idx, false)
		return err
	})
	return ok, err
}

// RemovePreset removes the entry at index.
func (p *Playlist) RemovePreset(index int) error {
	return p.withIndex(index, func(pl playlist.Handle, idx uint32) error {
		_, err := p.api.removePreset(pl, idx)
		return err
	})
}

// RemovePresets removes up to count entries starting at index and returns
// how many were removed.
func (p *Playlist) RemovePresets(index, count int) (int, error) {
	n, err := toIndex(count)
	if err != nil {
		return 0, err
	}
	var removed uint32
	err = p.withIndex(index, func(pl playlist.Handle, idx uint32) error {
		var err error
		removed, err = p.api.removePresets(pl, idx, n)
		return err
	})
	return int(removed), err
}

// Clear removes every entry.
func (p *Playlist) Clear() error {
	return p.call(p.api.clear)
}

// Items returns up to count file names starting at start.
func (p *Playlist) Items(start, count int) ([]string, error) {
	s, err := toIndex(start)
	if err != nil {
		return nil, err
	}
	c, err := toIndex(count)
	if err != nil {
		return nil, err
	}
	var items []string
	err = p.call(func(pl playlist.Handle) error {
		var err error
		items, err = p.api.items(pl, s, c)
		return err
	})
	return items, err
}

// Item returns the file name at index.
func (p *Playlist) Item(index int) (string, error) {
	var name string
	err := p.withIndex(index, func(pl playlist.Handle, idx uint32) error {
		var ok bool
		var err error
		name, ok, err = p.api.item(pl, idx)
		if err == nil && !ok {
			err = ErrIndexOutOfRange
		}
		return err
	})
	return name, err
}

// Sort orders count entries starting at start.
func (p *Playlist) Sort(start, count int, predicate SortPredicate, order SortOrder) error {
	s, err := toIndex(start)
	if err != nil {
		return err
	}
	c, err := toIndex(count)
	if err != nil {
		return err
	}
	return p.call(func(pl playlist.Handle) error {
		return p.api.sort(pl, s, c, predicate, order)
	})
}

// Position returns the index of the current entry.
func (p *Playlist) Position() (int, error) {
	var pos uint32
	err := p.call(func(pl playlist.Handle) error {
		var err error
		pos, err = p.api.position(pl)
		return err
	})
	return int(pos), err
}

// SetPosition switches to the entry at index and returns the resulting
// position.
func (p *Playlist) SetPosition(index int, hardCut bool) (int, error) {
	var pos uint32
	err := p.withIndex(index, func(pl playlist.Handle, idx uint32) error {
		var err error
		pos, err = p.api.setPosition(pl, idx, hardCut)
		return err
	})
	return int(pos), err
}

// PlayNext switches to the next entry with a hard cut and returns the new
// position. In shuffle mode the native library picks the entry.
func (p *Playlist) PlayNext() (int, error) {
	return p.navigate(p.api.playNext)
}

// PlayPrevious switches to the previous entry with a hard cut.
func (p *Playlist) PlayPrevious() (int, error) {
	return p.navigate(p.api.playPrevious)
}

// PlayLast switches back to the previously shown entry from the history.
func (p *Playlist) PlayLast() (int, error) {
	return p.navigate(p.api.playLast)
}

// PlayRandom switches with a hard cut to an entry drawn uniformly from the
// playlist by the playlist's own generator.
func (p *Playlist) PlayRandom() (int, error) {
	var pos uint32
	err := p.call(func(pl playlist.Handle) error {
		n, err := p.api.size(pl)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrEmptyPlaylist
		}
		pos, err = p.api.setPosition(pl, p.rng.Uint32N(n), true)
		return err
	})
	return int(pos), err
}

func (p *Playlist) navigate(move func(playlist.Handle, bool) (uint32, error)) (int, error) {
	var pos uint32
	err := p.call(func(pl playlist.Handle) error {
		n, err := p.api.size(pl)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrEmptyPlaylist
		}
		pos, err = move(pl, true)
		return err
	})
	return int(pos), err
}

// SetShuffle enables or disables shuffle mode.
func (p *Playlist) SetShuffle(enabled bool) error {
	return p.call(func(pl playlist.Handle) error {
		return p.api.setShuffle(pl, enabled)
	})
}

// Shuffle reports whether shuffle mode is enabled.
func (p *Playlist) Shuffle() (bool, error) {
	var v bool
	err := p.call(func(pl playlist.Handle) error {
		var err error
		v, err = p.api.shuffle(pl)
		return err
	})
	return v, err
}

// SetRetryCount sets how many broken presets are skipped in a row before
// the playlist gives up on a switch.
func (p *Playlist) SetRetryCount(n int) error {
	c, err := toIndex(n)
	if err != nil {
		return err
	}
	return p.call(func(pl playlist.Handle) error {
		return p.api.setRetryCount(pl, c)
	})
}

// RetryCount returns the retry count.
func (p *Playlist) RetryCount() (int, error) {
	var n uint32
	err := p.call(func(pl playlist.Handle) error {
		var err error
		n, err = p.api.retryCount(pl)
		return err
	})
	return int(n), err
}

// withIndex checks index against the current size before running fn.
func (p *Playlist) withIndex(index int, fn func(pl playlist.Handle, idx uint32) error) error {
	idx, err := toIndex(index)
	if err != nil {
		return err
	}
	return p.call(func(pl playlist.Handle) error {
		n, err := p.api.size(pl)
		if err != nil {
			return err
		}
		if idx >= n {
			return fmt.Errorf("index %d, length %d: %w", index, n, ErrIndexOutOfRange)
		}
		return fn(pl, idx)
	})
}

func toIndex(i int) (uint32, error) {
	if i < 0 || uint64(i) > uint64(^uint32(0)) {
		return 0, fmt.Errorf("index %d: %w", i, ErrIndexOutOfRange)
	}
	return uint32(i), nil
}

// SetPresetSwitchedCallback registers fn to run after every switch the
// playlist performs. nil removes the callback.
func (p *Playlist) SetPresetSwitchedCallback(fn PresetSwitchedFunc) error {
	return p.call(func(pl playlist.Handle) error {
		var id, cb uintptr
		if fn != nil {
			cb, _ = p.api.trampolines()
			id = callbacks.Register(&callbackEntry{q: &p.engine.events, switched: fn})
		}
		if err := p.api.setPresetSwitchedCallback(pl, cb, id); err != nil {
			callbacks.Unregister(id)
			return err
		}
		callbacks.Unregister(p.switchedID)
		p.switchedID = id
		return nil
	})
}

// SetPresetSwitchFailedCallback registers fn for presets the playlist failed
// to load. nil removes the callback.
func (p *Playlist) SetPresetSwitchFailedCallback(fn PresetSwitchFailedFunc) error {
	return p.call(func(pl playlist.Handle) error {
		var id, cb uintptr
		if fn != nil {
			_, cb = p.api.trampolines()
			id = callbacks.Register(&callbackEntry{q: &p.engine.events, failed: fn})
		}
		if err := p.api.setPresetSwitchFailedCallback(pl, cb, id); err != nil {
			callbacks.Unregister(id)
			return err
		}
		callbacks.Unregister(p.failedID)
		p.failedID = id
		return nil
	})
}
