//go:build !ios && !android && (amd64 || arm64)

package pmgo

import (
	"slices"
	"unsafe"

	"github.com/obinnaokechukwu/pmgo/playlist"
	"github.com/obinnaokechukwu/pmgo/projectm"
)

// Fake trampoline addresses; only their non-zero-ness matters.
const (
	fakeRequestedCB uintptr = 0x1000 + iota
	fakeFailedCB
	fakeSwitchedCB
	fakePlaylistFailedCB
)

type pcmCall struct {
	kind     string
	samples  int
	count    uint32
	channels Channels
}

// fakeEngine stands in for libprojectM. It is only touched under the
// engine lock, like the real library.
type fakeEngine struct {
	calls *[]string

	createNil bool
	instance  byte
	destroyed int

	beat, hardCutSens, egg    float32
	hardCutDur, softCutDur    float64
	presetDur                 float64
	hardCutOn, aspect, locked bool
	fpsVal                    int32
	meshW, meshH, winW, winH  uintptr
	texturePaths              []string

	presetFiles []string
	debugPaths  []string
	renders     int
	onRender    func()

	max uint32
	pcm []pcmCall

	touches []string

	requestedCB, requestedUD uintptr
	failedCB, failedUD       uintptr
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{calls: new([]string), max: 2048}
}

func (f *fakeEngine) record(s string) { *f.calls = append(*f.calls, s) }

func (f *fakeEngine) create() projectm.Handle {
	if f.createNil {
		return nil
	}
	f.record("engine.create")
	return unsafe.Pointer(&f.instance)
}

func (f *fakeEngine) destroy(projectm.Handle) {
	f.destroyed++
	f.record("engine.destroy")
}

func (f *fakeEngine) loadPresetFile(_ projectm.Handle, filename string, _ bool) error {
	f.presetFiles = append(f.presetFiles, filename)
	return nil
}

func (f *fakeEngine) loadPresetData(projectm.Handle, string, bool) error { return nil }

func (f *fakeEngine) resetTextures(projectm.Handle) error { return nil }

func (f *fakeEngine) renderFrame(projectm.Handle) error {
	f.renders++
	if f.onRender != nil {
		f.onRender()
	}
	return nil
}

func (f *fakeEngine) writeDebugImage(_ projectm.Handle, path string) error {
	f.debugPaths = append(f.debugPaths, path)
	return nil
}

func (f *fakeEngine) setTextureSearchPaths(_ projectm.Handle, paths []string) error {
	f.texturePaths = slices.Clone(paths)
	return nil
}

func (f *fakeEngine) beatSensitivity(projectm.Handle) (float32, error) { return f.beat, nil }
func (f *fakeEngine) setBeatSensitivity(_ projectm.Handle, v float32) error {
	f.beat = v
	return nil
}
func (f *fakeEngine) hardCutDuration(projectm.Handle) (float64, error) { return f.hardCutDur, nil }
func (f *fakeEngine) setHardCutDuration(_ projectm.Handle, v float64) error {
	f.hardCutDur = v
	return nil
}
func (f *fakeEngine) hardCutEnabled(projectm.Handle) (bool, error) { return f.hardCutOn, nil }
func (f *fakeEngine) setHardCutEnabled(_ projectm.Handle, v bool) error {
	f.hardCutOn = v
	return nil
}
func (f *fakeEngine) hardCutSensitivity(projectm.Handle) (float32, error) { return f.hardCutSens, nil }
func (f *fakeEngine) setHardCutSensitivity(_ projectm.Handle, v float32) error {
	f.hardCutSens = v
	return nil
}
func (f *fakeEngine) softCutDuration(projectm.Handle) (float64, error) { return f.softCutDur, nil }
func (f *fakeEngine) setSoftCutDuration(_ projectm.Handle, v float64) error {
	f.softCutDur = v
	return nil
}
func (f *fakeEngine) presetDuration(projectm.Handle) (float64, error) { return f.presetDur, nil }
func (f *fakeEngine) setPresetDuration(_ projectm.Handle, v float64) error {
	f.presetDur = v
	return nil
}
func (f *fakeEngine) meshSize(projectm.Handle) (uintptr, uintptr, error) {
	return f.meshW, f.meshH, nil
}
func (f *fakeEngine) setMeshSize(_ projectm.Handle, w, h uintptr) error {
	f.meshW, f.meshH = w, h
	return nil
}
func (f *fakeEngine) fps(projectm.Handle) (int32, error) { return f.fpsVal, nil }
func (f *fakeEngine) setFPS(_ projectm.Handle, v int32) error {
	f.fpsVal = v
	return nil
}
func (f *fakeEngine) aspectCorrection(projectm.Handle) (bool, error) { return f.aspect, nil }
func (f *fakeEngine) setAspectCorrection(_ projectm.Handle, v bool) error {
	f.aspect = v
	return nil
}
func (f *fakeEngine) easterEgg(projectm.Handle) (float32, error) { return f.egg, nil }
func (f *fakeEngine) setEasterEgg(_ projectm.Handle, v float32) error {
	f.egg = v
	return nil
}
func (f *fakeEngine) presetLocked(projectm.Handle) (bool, error) { return f.locked, nil }
func (f *fakeEngine) setPresetLocked(_ projectm.Handle, v bool) error {
	f.locked = v
	return nil
}
func (f *fakeEngine) windowSize(projectm.Handle) (uintptr, uintptr, error) {
	return f.winW, f.winH, nil
}
func (f *fakeEngine) setWindowSize(_ projectm.Handle, w, h uintptr) error {
	f.winW, f.winH = w, h
	return nil
}

func (f *fakeEngine) maxSamples() (uint32, error) { return f.max, nil }

func (f *fakeEngine) pcmAddFloat(_ projectm.Handle, s []float32, n uint32, ch projectm.Channels) error {
	f.pcm = append(f.pcm, pcmCall{"float", len(s), n, ch})
	return nil
}
func (f *fakeEngine) pcmAddInt16(_ projectm.Handle, s []int16, n uint32, ch projectm.Channels) error {
	f.pcm = append(f.pcm, pcmCall{"int16", len(s), n, ch})
	return nil
}
func (f *fakeEngine) pcmAddUint8(_ projectm.Handle, s []uint8, n uint32, ch projectm.Channels) error {
	f.pcm = append(f.pcm, pcmCall{"uint8", len(s), n, ch})
	return nil
}

func (f *fakeEngine) touch(projectm.Handle, float32, float32, int32, projectm.TouchType) error {
	f.touches = append(f.touches, "touch")
	return nil
}
func (f *fakeEngine) touchDrag(projectm.Handle, float32, float32, int32) error {
	f.touches = append(f.touches, "drag")
	return nil
}
func (f *fakeEngine) touchDestroy(projectm.Handle, float32, float32) error {
	f.touches = append(f.touches, "destroy")
	return nil
}
func (f *fakeEngine) touchDestroyAll(projectm.Handle) error {
	f.touches = append(f.touches, "destroy-all")
	return nil
}

func (f *fakeEngine) trampolines() (uintptr, uintptr) { return fakeRequestedCB, fakeFailedCB }

func (f *fakeEngine) setPresetSwitchRequestedCallback(_ projectm.Handle, cb, ud uintptr) error {
	f.requestedCB, f.requestedUD = cb, ud
	return nil
}

func (f *fakeEngine) setPresetSwitchFailedCallback(_ projectm.Handle, cb, ud uintptr) error {
	f.failedCB, f.failedUD = cb, ud
	return nil
}

// fireRequested simulates libprojectM invoking the installed trampoline.
func (f *fakeEngine) fireRequested(isHardCut bool) {
	if f.requestedCB != 0 {
		dispatchPresetSwitchRequested(f.requestedUD, isHardCut)
	}
}

func (f *fakeEngine) fireFailed(file, msg string) {
	if f.failedCB != 0 {
		dispatchPresetSwitchFailed(f.failedUD, file, msg)
	}
}

// fakePlaylist stands in for libprojectM-playlist.
type fakePlaylist struct {
	calls  *[]string
	engine *fakeEngine

	unavailable bool
	instance    byte
	destroyed   int
	connected   bool

	dirs     map[string][]string
	entries  []string
	pos      uint32
	shuffled bool
	retries  uint32

	detachErr error

	addPathAllowDup []bool
	setPositions    []uint32

	switchedCB, switchedUD uintptr
	failedCB, failedUD     uintptr
}

func newFakePlaylist(engine *fakeEngine) *fakePlaylist {
	return &fakePlaylist{calls: engine.calls, engine: engine, dirs: make(map[string][]string)}
}

func (f *fakePlaylist) record(s string) { *f.calls = append(*f.calls, s) }

func (f *fakePlaylist) available() bool { return !f.unavailable }

func (f *fakePlaylist) create(projectm.Handle) playlist.Handle {
	f.record("playlist.create")
	f.connected = true
	// The native playlist claims the engine's callback slots.
	f.engine.requestedCB, f.engine.requestedUD = 0xdead, 0
	f.engine.failedCB, f.engine.failedUD = 0xdead, 0
	return unsafe.Pointer(&f.instance)
}

func (f *fakePlaylist) destroy(playlist.Handle) {
	f.destroyed++
	f.record("playlist.destroy")
}

func (f *fakePlaylist) connect(_ playlist.Handle, instance projectm.Handle) error {
	f.connected = instance != nil
	if instance == nil {
		f.engine.requestedCB, f.engine.failedCB = 0, 0
		return f.detachErr
	}
	return nil
}

func (f *fakePlaylist) size(playlist.Handle) (uint32, error) { return uint32(len(f.entries)), nil }

func (f *fakePlaylist) clear(playlist.Handle) error {
	f.entries = nil
	f.pos = 0
	return nil
}

func (f *fakePlaylist) items(_ playlist.Handle, start, count uint32) ([]string, error) {
	if int(start) >= len(f.entries) {
		return nil, nil
	}
	end := min(int(start+count), len(f.entries))
	return slices.Clone(f.entries[start:end]), nil
}

func (f *fakePlaylist) item(_ playlist.Handle, index uint32) (string, bool, error) {
	if int(index) >= len(f.entries) {
		return "", false, nil
	}
	return f.entries[index], true, nil
}

func (f *fakePlaylist) addPath(_ playlist.Handle, path string, _, allowDup bool) (uint32, error) {
	f.addPathAllowDup = append(f.addPathAllowDup, allowDup)
	var added uint32
	for _, file := range f.dirs[path] {
		if ok, _ := f.addPreset(nil, file, allowDup); ok {
			added++
		}
	}
	return added, nil
}

func (f *fakePlaylist) addPreset(_ playlist.Handle, filename string, allowDup bool) (bool, error) {
	if !allowDup && slices.Contains(f.entries, filename) {
		return false, nil
	}
	f.entries = append(f.entries, filename)
	return true, nil
}

func (f *fakePlaylist) insertPreset(_ playlist.Handle, filename string, index uint32, allowDup bool) (bool, error) {
	if !allowDup && slices.Contains(f.entries, filename) {
		return false, nil
	}
	i := min(int(index), len(f.entries))
	f.entries = slices.Insert(f.entries, i, filename)
	return true, nil
}

func (f *fakePlaylist) removePreset(_ playlist.Handle, index uint32) (bool, error) {
	f.entries = slices.Delete(f.entries, int(index), int(index)+1)
	return true, nil
}

func (f *fakePlaylist) removePresets(_ playlist.Handle, index, count uint32) (uint32, error) {
	end := min(int(index+count), len(f.entries))
	f.entries = slices.Delete(f.entries, int(index), end)
	return uint32(end - int(index)), nil
}

func (f *fakePlaylist) shuffle(playlist.Handle) (bool, error) { return f.shuffled, nil }
func (f *fakePlaylist) setShuffle(_ playlist.Handle, v bool) error {
	f.shuffled = v
	return nil
}

func (f *fakePlaylist) sort(_ playlist.Handle, start, count uint32, _ playlist.SortPredicate, order playlist.SortOrder) error {
	end := min(int(start+count), len(f.entries))
	part := f.entries[start:end]
	slices.Sort(part)
	if order == playlist.SortDescending {
		slices.Reverse(part)
	}
	return nil
}

func (f *fakePlaylist) retryCount(playlist.Handle) (uint32, error) { return f.retries, nil }
func (f *fakePlaylist) setRetryCount(_ playlist.Handle, v uint32) error {
	f.retries = v
	return nil
}

func (f *fakePlaylist) position(playlist.Handle) (uint32, error) { return f.pos, nil }

func (f *fakePlaylist) setPosition(_ playlist.Handle, index uint32, hardCut bool) (uint32, error) {
	f.setPositions = append(f.setPositions, index)
	return f.switchTo(index, hardCut), nil
}

func (f *fakePlaylist) playNext(_ playlist.Handle, hardCut bool) (uint32, error) {
	return f.switchTo((f.pos+1)%uint32(len(f.entries)), hardCut), nil
}

func (f *fakePlaylist) playPrevious(_ playlist.Handle, hardCut bool) (uint32, error) {
	n := uint32(len(f.entries))
	return f.switchTo((f.pos+n-1)%n, hardCut), nil
}

func (f *fakePlaylist) playLast(_ playlist.Handle, hardCut bool) (uint32, error) {
	return f.switchTo(f.pos, hardCut), nil
}

// switchTo moves the cursor and, like the native library, reports the
// switch synchronously from inside the call.
func (f *fakePlaylist) switchTo(index uint32, hardCut bool) uint32 {
	f.pos = index
	if f.switchedCB != 0 {
		dispatchPresetSwitched(f.switchedUD, hardCut, index)
	}
	return index
}

func (f *fakePlaylist) trampolines() (uintptr, uintptr) {
	return fakeSwitchedCB, fakePlaylistFailedCB
}

func (f *fakePlaylist) setPresetSwitchedCallback(_ playlist.Handle, cb, ud uintptr) error {
	f.switchedCB, f.switchedUD = cb, ud
	return nil
}

func (f *fakePlaylist) setPresetSwitchFailedCallback(_ playlist.Handle, cb, ud uintptr) error {
	f.failedCB, f.failedUD = cb, ud
	return nil
}
