//go:build !ios && !android && (amd64 || arm64)

package pmgo

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/obinnaokechukwu/pmgo/projectm"
)

// Engine owns one projectM instance.
//
// All methods are safe for concurrent use: every native call, getters
// included, runs under the engine's mutex. Rendering and preset loading use
// the OpenGL context that was current when the engine was created, so call
// them from the goroutine locked to that context's thread.
//
// After Close every method returns ErrClosed.
type Engine struct {
	mu     sync.Mutex
	api    engineAPI
	pl     playlistAPI
	handle projectm.Handle
	closed bool

	id     uuid.UUID
	logger *slog.Logger
	events eventQueue

	requestedID uintptr
	failedID    uintptr

	playlists map[*Playlist]struct{}
}

// EngineOption configures NewEngine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	logger   *slog.Logger
	settings *Settings
}

// WithLogger sets the logger the engine derives its own from.
// The default is the package logger, see SetLogger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(o *engineOptions) { o.logger = l }
}

// WithSettings applies s right after the instance is created.
func WithSettings(s Settings) EngineOption {
	return func(o *engineOptions) { o.settings = &s }
}

// NewEngine creates a projectM instance.
// An OpenGL 3.3 (or GLES 3) context must be current on the calling thread.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	return newEngine(libEngine{}, libPlaylist{}, opts...)
}

func newEngine(api engineAPI, pl playlistAPI, opts ...EngineOption) (*Engine, error) {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger()
	}

	h := api.create()
	if h == nil {
		return nil, ErrCreateFailed
	}

	e := &Engine{
		api:       api,
		pl:        pl,
		handle:    h,
		id:        uuid.New(),
		playlists: make(map[*Playlist]struct{}),
	}
	e.logger = o.logger.With("engine", e.id.String())
	e.events.log = e.logger.Error
	e.logger.Debug("engine created")

	if o.settings != nil {
		if err := e.ApplySettings(*o.settings); err != nil {
			e.Close()
			return nil, err
		}
	}
	return e, nil
}

// ID returns the engine's identifier, used in log records and events.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// call runs fn under the engine lock with the live handle.
// Callbacks fired by the native side during fn are delivered after the lock
// is released, normally before call returns. If another call has taken the
// lock in the meantime, that call delivers them instead.
func (e *Engine) call(fn func(h projectm.Handle) error) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.events.enter()
	err := fn(e.handle)
	e.events.release()
	e.mu.Unlock()
	e.events.flush()
	return err
}

// Close destroys the native instance. Playlists created from this engine
// are closed first. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.events.enter()

	for p := range e.playlists {
		p.destroyLocked()
	}
	e.api.destroy(e.handle)
	e.handle = nil
	e.closed = true

	callbacks.Unregister(e.requestedID)
	callbacks.Unregister(e.failedID)
	e.requestedID, e.failedID = 0, 0

	e.events.release()
	e.mu.Unlock()
	e.events.flush()
	e.logger.Debug("engine closed")
	return nil
}

// LoadPresetFile switches to the preset at filename (a path or URL).
// Load errors are reported asynchronously to the preset-switch-failed
// callback.
func (e *Engine) LoadPresetFile(filename string, smoothTransition bool) error {
	if err := checkCString("LoadPresetFile", filename); err != nil {
		return err
	}
	return e.call(func(h projectm.Handle) error {
		return e.api.loadPresetFile(h, filename, smoothTransition)
	})
}

// LoadPresetData switches to a preset given its contents.
func (e *Engine) LoadPresetData(data string, smoothTransition bool) error {
	if err := checkCString("LoadPresetData", data); err != nil {
		return err
	}
	return e.call(func(h projectm.Handle) error {
		return e.api.loadPresetData(h, data, smoothTransition)
	})
}

// ResetTextures reloads all textures on the next frame.
func (e *Engine) ResetTextures() error {
	return e.call(e.api.resetTextures)
}

// RenderFrame renders the next frame into the bound framebuffer.
func (e *Engine) RenderFrame() error {
	return e.call(e.api.renderFrame)
}

// WriteDebugImageOnNextFrame dumps the next frame's main texture to path.
// An empty path lets the engine choose its default file name.
func (e *Engine) WriteDebugImageOnNextFrame(path string) error {
	if err := checkCString("WriteDebugImageOnNextFrame", path); err != nil {
		return err
	}
	return e.call(func(h projectm.Handle) error {
		return e.api.writeDebugImage(h, path)
	})
}
