//go:build !ios && !android && (amd64 || arm64)

package pmgo

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/pmgo/internal/bindings"
)

// Common errors
var (
	// ErrNotLoaded indicates libprojectM could not be loaded.
	ErrNotLoaded = bindings.ErrNotLoaded

	// ErrPlaylistNotLoaded indicates libprojectM-playlist could not be loaded.
	ErrPlaylistNotLoaded = bindings.ErrPlaylistNotLoaded

	// ErrClosed indicates the engine or playlist has been closed.
	ErrClosed = errors.New("pmgo: resource is closed")

	// ErrCreateFailed indicates the native library refused to create an
	// instance. projectM does this when no OpenGL context is current.
	ErrCreateFailed = errors.New("pmgo: native instance creation failed")

	// ErrTooManySamples indicates a PCM buffer longer than MaxSamples.
	ErrTooManySamples = errors.New("pmgo: number of samples is greater than max samples")

	// ErrInvalidChannels indicates a channel count other than Mono or Stereo.
	ErrInvalidChannels = errors.New("pmgo: invalid channel count")

	// ErrPartialFrame indicates a PCM buffer whose length is not a multiple
	// of the channel count.
	ErrPartialFrame = errors.New("pmgo: sample count is not a multiple of the channel count")

	// ErrOutOfRange indicates a parameter value the native type cannot hold.
	ErrOutOfRange = errors.New("pmgo: value out of range")

	// ErrIndexOutOfRange indicates a playlist index at or beyond Len.
	ErrIndexOutOfRange = errors.New("pmgo: playlist index out of range")

	// ErrEmptyPlaylist indicates a navigation request on an empty playlist.
	ErrEmptyPlaylist = errors.New("pmgo: playlist is empty")

	// ErrPlaylistConnected indicates an engine callback registration while a
	// playlist owns the engine's callback slots.
	ErrPlaylistConnected = errors.New("pmgo: engine callbacks are owned by a connected playlist")
)

// CStringError reports a string argument that cannot cross the C boundary
// because it contains a NUL byte.
type CStringError struct {
	Op    string // operation name, e.g. "LoadPresetFile"
	Arg   string // the offending argument
	Index int    // byte offset of the first NUL
}

func (e *CStringError) Error() string {
	return fmt.Sprintf("pmgo: %s: argument contains NUL byte at offset %d", e.Op, e.Index)
}

// checkCString returns a *CStringError if s holds a NUL byte.
func checkCString(op, s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return &CStringError{Op: op, Arg: s, Index: i}
		}
	}
	return nil
}
