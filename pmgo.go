//go:build !ios && !android && (amd64 || arm64)

// Package pmgo provides safe Go bindings to projectM, the music visualiser
// behind MilkDrop-style presets. It loads libprojectM at runtime without cgo
// using purego.
//
// For most use cases, use the high-level types: Engine and Playlist. The
// low-level packages projectm and playlist expose the C API one function at
// a time for callers who manage handles themselves.
//
// A minimal render loop, with an OpenGL context current on a locked thread:
//
//	engine, err := pmgo.NewEngine()
//	if err != nil {
//		return err
//	}
//	defer engine.Close()
//
//	pl, err := pmgo.NewPlaylist(engine)
//	if err != nil {
//		return err
//	}
//	pl.AddPath("/usr/share/projectM/presets", true)
//	pl.PlayRandom()
//
//	for {
//		engine.PCMAddFloat32(samples, pmgo.Stereo)
//		engine.RenderFrame()
//		swapBuffers()
//	}
package pmgo

import (
	"fmt"

	"github.com/obinnaokechukwu/pmgo/internal/bindings"
	"github.com/obinnaokechukwu/pmgo/projectm"
)

// Init loads the projectM libraries. It is called by NewEngine, but can be
// called explicitly to check for errors. It is safe to call multiple times.
func Init() error {
	return bindings.Load()
}

// IsLoaded returns true if libprojectM has been successfully loaded.
func IsLoaded() bool {
	return bindings.IsLoaded()
}

// HasPlaylist reports whether libprojectM-playlist is available.
func HasPlaylist() bool {
	return bindings.HasPlaylist()
}

// Version is a library version triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// VersionComponents returns the version of the loaded libprojectM.
func VersionComponents() (Version, error) {
	if err := Init(); err != nil {
		return Version{}, err
	}
	major, minor, patch, err := projectm.VersionComponents()
	if err != nil {
		return Version{}, err
	}
	return Version{Major: int(major), Minor: int(minor), Patch: int(patch)}, nil
}

// VersionString returns the library's version string, e.g. "4.0.0".
func VersionString() (string, error) {
	if err := Init(); err != nil {
		return "", err
	}
	return projectm.VersionString()
}

// VCSVersionString returns the source revision libprojectM was built from.
func VCSVersionString() (string, error) {
	if err := Init(); err != nil {
		return "", err
	}
	return projectm.VCSVersionString()
}

// MaxSamples returns the most samples one PCM call accepts.
func MaxSamples() (int, error) {
	if err := Init(); err != nil {
		return 0, err
	}
	n, err := projectm.PCMMaxSamples()
	return int(n), err
}
