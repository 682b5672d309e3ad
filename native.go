//go:build !ios && !android && (amd64 || arm64)

package pmgo

import (
	"github.com/obinnaokechukwu/pmgo/playlist"
	"github.com/obinnaokechukwu/pmgo/projectm"
)

// engineAPI is the slice of libprojectM the Engine uses. The production
// implementation forwards to package projectm; tests substitute a fake.
type engineAPI interface {
	create() projectm.Handle
	destroy(h projectm.Handle)

	loadPresetFile(h projectm.Handle, filename string, smooth bool) error
	loadPresetData(h projectm.Handle, data string, smooth bool) error
	resetTextures(h projectm.Handle) error
	renderFrame(h projectm.Handle) error
	writeDebugImage(h projectm.Handle, path string) error

	setTextureSearchPaths(h projectm.Handle, paths []string) error
	beatSensitivity(h projectm.Handle) (float32, error)
	setBeatSensitivity(h projectm.Handle, v float32) error
	hardCutDuration(h projectm.Handle) (float64, error)
	setHardCutDuration(h projectm.Handle, v float64) error
	hardCutEnabled(h projectm.Handle) (bool, error)
	setHardCutEnabled(h projectm.Handle, v bool) error
	hardCutSensitivity(h projectm.Handle) (float32, error)
	setHardCutSensitivity(h projectm.Handle, v float32) error
	softCutDuration(h projectm.Handle) (float64, error)
	setSoftCutDuration(h projectm.Handle, v float64) error
	presetDuration(h projectm.Handle) (float64, error)
	setPresetDuration(h projectm.Handle, v float64) error
	meshSize(h projectm.Handle) (w, ht uintptr, err error)
	setMeshSize(h projectm.Handle, w, ht uintptr) error
	fps(h projectm.Handle) (int32, error)
	setFPS(h projectm.Handle, v int32) error
	aspectCorrection(h projectm.Handle) (bool, error)
	setAspectCorrection(h projectm.Handle, v bool) error
	easterEgg(h projectm.Handle) (float32, error)
	setEasterEgg(h projectm.Handle, v float32) error
	presetLocked(h projectm.Handle) (bool, error)
	setPresetLocked(h projectm.Handle, v bool) error
	windowSize(h projectm.Handle) (w, ht uintptr, err error)
	setWindowSize(h projectm.Handle, w, ht uintptr) error

	maxSamples() (uint32, error)
	pcmAddFloat(h projectm.Handle, samples []float32, count uint32, ch projectm.Channels) error
	pcmAddInt16(h projectm.Handle, samples []int16, count uint32, ch projectm.Channels) error
	pcmAddUint8(h projectm.Handle, samples []uint8, count uint32, ch projectm.Channels) error

	touch(h projectm.Handle, x, y float32, pressure int32, tt projectm.TouchType) error
	touchDrag(h projectm.Handle, x, y float32, pressure int32) error
	touchDestroy(h projectm.Handle, x, y float32) error
	touchDestroyAll(h projectm.Handle) error

	// trampolines returns the C function pointers for the two engine events.
	trampolines() (requested, failed uintptr)
	setPresetSwitchRequestedCallback(h projectm.Handle, cb, userData uintptr) error
	setPresetSwitchFailedCallback(h projectm.Handle, cb, userData uintptr) error
}

// playlistAPI is the slice of libprojectM-playlist the Playlist uses.
type playlistAPI interface {
	available() bool
	create(instance projectm.Handle) playlist.Handle
	destroy(pl playlist.Handle)
	connect(pl playlist.Handle, instance projectm.Handle) error

	size(pl playlist.Handle) (uint32, error)
	clear(pl playlist.Handle) error
	items(pl playlist.Handle, start, count uint32) ([]string, error)
	item(pl playlist.Handle, index uint32) (string, bool, error)
	addPath(pl playlist.Handle, path string, recurse, allowDuplicates bool) (uint32, error)
	addPreset(pl playlist.Handle, filename string, allowDuplicates bool) (bool, error)
	insertPreset(pl playlist.Handle, filename string, index uint32, allowDuplicates bool) (bool, error)
	removePreset(pl playlist.Handle, index uint32) (bool, error)
	removePresets(pl playlist.Handle, index, count uint32) (uint32, error)
	shuffle(pl playlist.Handle) (bool, error)
	setShuffle(pl playlist.Handle, v bool) error
	sort(pl playlist.Handle, start, count uint32, predicate playlist.SortPredicate, order playlist.SortOrder) error
	retryCount(pl playlist.Handle) (uint32, error)
	setRetryCount(pl playlist.Handle, v uint32) error
	position(pl playlist.Handle) (uint32, error)
	setPosition(pl playlist.Handle, index uint32, hardCut bool) (uint32, error)
	playNext(pl playlist.Handle, hardCut bool) (uint32, error)
	playPrevious(pl playlist.Handle, hardCut bool) (uint32, error)
	playLast(pl playlist.Handle, hardCut bool) (uint32, error)

	trampolines() (switched, failed uintptr)
	setPresetSwitchedCallback(pl playlist.Handle, cb, userData uintptr) error
	setPresetSwitchFailedCallback(pl playlist.Handle, cb, userData uintptr) error
}

// libEngine forwards to libprojectM.
type libEngine struct{}

func (libEngine) create() projectm.Handle { return projectm.Create() }

func (libEngine) destroy(h projectm.Handle) { projectm.Destroy(h) }

func (libEngine) loadPresetFile(h projectm.Handle, filename string, smooth bool) error {
	return projectm.LoadPresetFile(h, filename, smooth)
}

func (libEngine) loadPresetData(h projectm.Handle, data string, smooth bool) error {
	return projectm.LoadPresetData(h, data, smooth)
}

func (libEngine) resetTextures(h projectm.Handle) error { return projectm.ResetTextures(h) }

func (libEngine) renderFrame(h projectm.Handle) error { return projectm.RenderFrame(h) }

func (libEngine) writeDebugImage(h projectm.Handle, path string) error {
	return projectm.WriteDebugImageOnNextFrame(h, path)
}

func (libEngine) setTextureSearchPaths(h projectm.Handle, paths []string) error {
	return projectm.SetTextureSearchPaths(h, paths)
}

func (libEngine) beatSensitivity(h projectm.Handle) (float32, error) {
	return projectm.GetBeatSensitivity(h)
}
func (libEngine) setBeatSensitivity(h projectm.Handle, v float32) error {
	return projectm.SetBeatSensitivity(h, v)
}
func (libEngine) hardCutDuration(h projectm.Handle) (float64, error) {
	return projectm.GetHardCutDuration(h)
}
func (libEngine) setHardCutDuration(h projectm.Handle, v float64) error {
	return projectm.SetHardCutDuration(h, v)
}
func (libEngine) hardCutEnabled(h projectm.Handle) (bool, error) {
	return projectm.GetHardCutEnabled(h)
}
func (libEngine) setHardCutEnabled(h projectm.Handle, v bool) error {
	return projectm.SetHardCutEnabled(h, v)
}
func (libEngine) hardCutSensitivity(h projectm.Handle) (float32, error) {
	return projectm.GetHardCutSensitivity(h)
}
func (libEngine) setHardCutSensitivity(h projectm.Handle, v float32) error {
	return projectm.SetHardCutSensitivity(h, v)
}
func (libEngine) softCutDuration(h projectm.Handle) (float64, error) {
	return projectm.GetSoftCutDuration(h)
}
func (libEngine) setSoftCutDuration(h projectm.Handle, v float64) error {
	return projectm.SetSoftCutDuration(h, v)
}
func (libEngine) presetDuration(h projectm.Handle) (float64, error) {
	return projectm.GetPresetDuration(h)
}
func (libEngine) setPresetDuration(h projectm.Handle, v float64) error {
	return projectm.SetPresetDuration(h, v)
}
func (libEngine) meshSize(h projectm.Handle) (uintptr, uintptr, error) {
	return projectm.GetMeshSize(h)
}
func (libEngine) setMeshSize(h projectm.Handle, w, ht uintptr) error {
	return projectm.SetMeshSize(h, w, ht)
}
func (libEngine) fps(h projectm.Handle) (int32, error) { return projectm.GetFPS(h) }

func (libEngine) setFPS(h projectm.Handle, v int32) error { return projectm.SetFPS(h, v) }
func (libEngine) aspectCorrection(h projectm.Handle) (bool, error) {
	return projectm.GetAspectCorrection(h)
}
func (libEngine) setAspectCorrection(h projectm.Handle, v bool) error {
	return projectm.SetAspectCorrection(h, v)
}
func (libEngine) easterEgg(h projectm.Handle) (float32, error) { return projectm.GetEasterEgg(h) }
func (libEngine) setEasterEgg(h projectm.Handle, v float32) error {
	return projectm.SetEasterEgg(h, v)
}
func (libEngine) presetLocked(h projectm.Handle) (bool, error) { return projectm.GetPresetLocked(h) }
func (libEngine) setPresetLocked(h projectm.Handle, v bool) error {
	return projectm.SetPresetLocked(h, v)
}
func (libEngine) windowSize(h projectm.Handle) (uintptr, uintptr, error) {
	return projectm.GetWindowSize(h)
}
func (libEngine) setWindowSize(h projectm.Handle, w, ht uintptr) error {
	return projectm.SetWindowSize(h, w, ht)
}

func (libEngine) maxSamples() (uint32, error) { return projectm.PCMMaxSamples() }

func (libEngine) pcmAddFloat(h projectm.Handle, s []float32, n uint32, ch projectm.Channels) error {
	return projectm.PCMAddFloat(h, s, n, ch)
}
func (libEngine) pcmAddInt16(h projectm.Handle, s []int16, n uint32, ch projectm.Channels) error {
	return projectm.PCMAddInt16(h, s, n, ch)
}
func (libEngine) pcmAddUint8(h projectm.Handle, s []uint8, n uint32, ch projectm.Channels) error {
	return projectm.PCMAddUint8(h, s, n, ch)
}

func (libEngine) touch(h projectm.Handle, x, y float32, pressure int32, tt projectm.TouchType) error {
	return projectm.Touch(h, x, y, pressure, tt)
}
func (libEngine) touchDrag(h projectm.Handle, x, y float32, pressure int32) error {
	return projectm.TouchDrag(h, x, y, pressure)
}
func (libEngine) touchDestroy(h projectm.Handle, x, y float32) error {
	return projectm.TouchDestroy(h, x, y)
}
func (libEngine) touchDestroyAll(h projectm.Handle) error { return projectm.TouchDestroyAll(h) }

func (libEngine) trampolines() (uintptr, uintptr) {
	initTrampolines()
	return requestedTrampoline, engineFailedTrampoline
}
func (libEngine) setPresetSwitchRequestedCallback(h projectm.Handle, cb, ud uintptr) error {
	return projectm.SetPresetSwitchRequestedCallback(h, cb, ud)
}
func (libEngine) setPresetSwitchFailedCallback(h projectm.Handle, cb, ud uintptr) error {
	return projectm.SetPresetSwitchFailedCallback(h, cb, ud)
}

// libPlaylist forwards to libprojectM-playlist.
type libPlaylist struct{}

func (libPlaylist) available() bool { return playlist.Available() }

func (libPlaylist) create(instance projectm.Handle) playlist.Handle { return playlist.Create(instance) }

func (libPlaylist) destroy(pl playlist.Handle) { playlist.Destroy(pl) }
func (libPlaylist) connect(pl playlist.Handle, instance projectm.Handle) error {
	return playlist.Connect(pl, instance)
}

func (libPlaylist) size(pl playlist.Handle) (uint32, error) { return playlist.Size(pl) }

func (libPlaylist) clear(pl playlist.Handle) error { return playlist.Clear(pl) }
func (libPlaylist) items(pl playlist.Handle, start, count uint32) ([]string, error) {
	return playlist.Items(pl, start, count)
}
func (libPlaylist) item(pl playlist.Handle, index uint32) (string, bool, error) {
	return playlist.Item(pl, index)
}
func (libPlaylist) addPath(pl playlist.Handle, path string, recurse, allowDup bool) (uint32, error) {
	return playlist.AddPath(pl, path, recurse, allowDup)
}
func (libPlaylist) addPreset(pl playlist.Handle, filename string, allowDup bool) (bool, error) {
	return playlist.AddPreset(pl, filename, allowDup)
}
func (libPlaylist) insertPreset(pl playlist.Handle, filename string, index uint32, allowDup bool) (bool, error) {
	return playlist.InsertPreset(pl, filename, index, allowDup)
}
func (libPlaylist) removePreset(pl playlist.Handle, index uint32) (bool, error) {
	return playlist.RemovePreset(pl, index)
}
func (libPlaylist) removePresets(pl playlist.Handle, index, count uint32) (uint32, error) {
	return playlist.RemovePresets(pl, index, count)
}
func (libPlaylist) shuffle(pl playlist.Handle) (bool, error) { return playlist.GetShuffle(pl) }

func (libPlaylist) setShuffle(pl playlist.Handle, v bool) error { return playlist.SetShuffle(pl, v) }
func (libPlaylist) sort(pl playlist.Handle, start, count uint32, p playlist.SortPredicate, o playlist.SortOrder) error {
	return playlist.Sort(pl, start, count, p, o)
}
func (libPlaylist) retryCount(pl playlist.Handle) (uint32, error) { return playlist.GetRetryCount(pl) }
func (libPlaylist) setRetryCount(pl playlist.Handle, v uint32) error {
	return playlist.SetRetryCount(pl, v)
}
func (libPlaylist) position(pl playlist.Handle) (uint32, error) { return playlist.GetPosition(pl) }
func (libPlaylist) setPosition(pl playlist.Handle, index uint32, hardCut bool) (uint32, error) {
	return playlist.SetPosition(pl, index, hardCut)
}
func (libPlaylist) playNext(pl playlist.Handle, hardCut bool) (uint32, error) {
	return playlist.PlayNext(pl, hardCut)
}
func (libPlaylist) playPrevious(pl playlist.Handle, hardCut bool) (uint32, error) {
	return playlist.PlayPrevious(pl, hardCut)
}
func (libPlaylist) playLast(pl playlist.Handle, hardCut bool) (uint32, error) {
	return playlist.PlayLast(pl, hardCut)
}

func (libPlaylist) trampolines() (uintptr, uintptr) {
	initTrampolines()
	return switchedTrampoline, playlistFailedTrampoline
}
func (libPlaylist) setPresetSwitchedCallback(pl playlist.Handle, cb, ud uintptr) error {
	return playlist.SetPresetSwitchedCallback(pl, cb, ud)
}
func (libPlaylist) setPresetSwitchFailedCallback(pl playlist.Handle, cb, ud uintptr) error {
	return playlist.SetPresetSwitchFailedCallback(pl, cb, ud)
}
