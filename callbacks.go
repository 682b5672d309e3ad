//go:build !ios && !android && (amd64 || arm64)

package pmgo

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/pmgo/internal/handles"
	"github.com/obinnaokechukwu/pmgo/projectm"
)

// PresetSwitchRequestedFunc is called when the engine wants a new preset,
// either because the display time ran out or a beat triggered a hard cut.
type PresetSwitchRequestedFunc func(isHardCut bool)

// PresetSwitchFailedFunc is called when a preset could not be loaded.
type PresetSwitchFailedFunc func(presetFilename, message string)

// PresetSwitchedFunc is called after a playlist switched to the preset at index.
type PresetSwitchedFunc func(isHardCut bool, index uint32)

// callbackEntry is what a native user-data id resolves to.
type callbackEntry struct {
	q         *eventQueue
	requested PresetSwitchRequestedFunc
	failed    PresetSwitchFailedFunc
	switched  PresetSwitchedFunc
}

// callbacks holds every live registration, keyed by the id handed to C.
var callbacks handles.Table[*callbackEntry]

// Trampolines are created once; purego can only mint a limited number of
// callbacks per process.
var (
	trampolineOnce           sync.Once
	requestedTrampoline      uintptr
	engineFailedTrampoline   uintptr
	switchedTrampoline       uintptr
	playlistFailedTrampoline uintptr
)

func initTrampolines() {
	trampolineOnce.Do(func() {
		// void (*)(bool is_hard_cut, void *user_data)
		requestedTrampoline = purego.NewCallback(func(_ purego.CDecl, isHardCut uintptr, userData uintptr) {
			dispatchPresetSwitchRequested(userData, cBool(isHardCut))
		})
		// void (*)(const char *preset_filename, const char *message, void *user_data)
		failed := func(_ purego.CDecl, filename, message unsafe.Pointer, userData uintptr) {
			dispatchPresetSwitchFailed(userData, projectm.GoString(filename), projectm.GoString(message))
		}
		engineFailedTrampoline = purego.NewCallback(failed)
		playlistFailedTrampoline = purego.NewCallback(failed)
		// void (*)(bool is_hard_cut, unsigned int index, void *user_data)
		switchedTrampoline = purego.NewCallback(func(_ purego.CDecl, isHardCut uintptr, index uintptr, userData uintptr) {
			dispatchPresetSwitched(userData, cBool(isHardCut), uint32(index))
		})
	})
}

// cBool reads a C bool passed in a full register; only the low byte is defined.
func cBool(v uintptr) bool {
	return v&0xff != 0
}

func dispatchPresetSwitchRequested(userData uintptr, isHardCut bool) {
	entry, ok := callbacks.Lookup(userData)
	if !ok || entry.requested == nil {
		return
	}
	fn := entry.requested
	entry.q.dispatch(func() { fn(isHardCut) })
}

func dispatchPresetSwitchFailed(userData uintptr, filename, message string) {
	entry, ok := callbacks.Lookup(userData)
	if !ok || entry.failed == nil {
		return
	}
	fn := entry.failed
	entry.q.dispatch(func() { fn(filename, message) })
}

func dispatchPresetSwitched(userData uintptr, isHardCut bool, index uint32) {
	entry, ok := callbacks.Lookup(userData)
	if !ok || entry.switched == nil {
		return
	}
	fn := entry.switched
	entry.q.dispatch(func() { fn(isHardCut, index) })
}

// eventQueue defers callbacks that fire while the engine lock is held, so a
// callback may call back into its Engine or Playlist. Queued events run on
// the goroutine that made the native call, right after it releases the lock.
type eventQueue struct {
	mu      sync.Mutex
	busy    bool
	pending []func()
	log     func(msg string, args ...any)
}

// enter marks the start of a native call made under the engine lock.
func (q *eventQueue) enter() {
	q.mu.Lock()
	q.busy = true
	q.mu.Unlock()
}

// release marks the end of the native call. It must run while the engine
// lock is still held, so that no other call can enter in between; the
// caller runs flush once the lock is released.
func (q *eventQueue) release() {
	q.mu.Lock()
	q.busy = false
	q.mu.Unlock()
}

func (q *eventQueue) dispatch(fn func()) {
	q.mu.Lock()
	if q.busy {
		q.pending = append(q.pending, fn)
		q.mu.Unlock()
		return
	}
	q.mu.Unlock()
	q.run(fn)
}

// flush runs queued events. If another call has entered meanwhile, its own
// flush picks them up.
func (q *eventQueue) flush() {
	for {
		q.mu.Lock()
		if q.busy || len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()

		for _, fn := range batch {
			q.run(fn)
		}
	}
}

// run invokes a user callback. A panic must not unwind into native frames.
func (q *eventQueue) run(fn func()) {
	defer func() {
		if r := recover(); r != nil && q.log != nil {
			q.log("callback panicked", "panic", r)
		}
	}()
	fn()
}

// SetPresetSwitchRequestedCallback registers fn for preset switch requests.
// A new registration replaces and releases the previous one; nil removes it.
//
// A Playlist takes over both engine callback slots while it exists, so this
// returns ErrPlaylistConnected until every playlist of e is closed.
func (e *Engine) SetPresetSwitchRequestedCallback(fn PresetSwitchRequestedFunc) error {
	return e.call(func(h projectm.Handle) error {
		if len(e.playlists) > 0 {
			return ErrPlaylistConnected
		}
		var id, cb uintptr
		if fn != nil {
			cb, _ = e.api.trampolines()
			id = callbacks.Register(&callbackEntry{q: &e.events, requested: fn})
		}
		if err := e.api.setPresetSwitchRequestedCallback(h, cb, id); err != nil {
			callbacks.Unregister(id)
			return err
		}
		callbacks.Unregister(e.requestedID)
		e.requestedID = id
		e.logger.Debug("preset switch requested callback set", "registered", fn != nil)
		return nil
	})
}

// SetPresetSwitchFailedCallback registers fn for preset load failures.
// Replacement and playlist ownership follow SetPresetSwitchRequestedCallback.
func (e *Engine) SetPresetSwitchFailedCallback(fn PresetSwitchFailedFunc) error {
	return e.call(func(h projectm.Handle) error {
		if len(e.playlists) > 0 {
			return ErrPlaylistConnected
		}
		var id, cb uintptr
		if fn != nil {
			_, cb = e.api.trampolines()
			id = callbacks.Register(&callbackEntry{q: &e.events, failed: fn})
		}
		if err := e.api.setPresetSwitchFailedCallback(h, cb, id); err != nil {
			callbacks.Unregister(id)
			return err
		}
		callbacks.Unregister(e.failedID)
		e.failedID = id
		e.logger.Debug("preset switch failed callback set", "registered", fn != nil)
		return nil
	})
}

// releaseEngineCallbacks drops the engine's registrations after a playlist
// overwrote the native slots. Caller holds e.mu.
func (e *Engine) releaseEngineCallbacks() {
	if e.requestedID == 0 && e.failedID == 0 {
		return
	}
	e.logger.Warn("playlist replaced engine preset switch callbacks")
	callbacks.Unregister(e.requestedID)
	callbacks.Unregister(e.failedID)
	e.requestedID, e.failedID = 0, 0
}
