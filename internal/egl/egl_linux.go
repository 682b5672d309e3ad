//go:build linux && (amd64 || arm64)

package egl

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

const (
	eglNone               = 0x3038
	eglSurfaceType        = 0x3033
	eglPbufferBit         = 0x0001
	eglRenderableType     = 0x3040
	eglOpenGLBit          = 0x0008
	eglRedSize            = 0x3024
	eglGreenSize          = 0x3023
	eglBlueSize           = 0x3022
	eglAlphaSize          = 0x3021
	eglDepthSize          = 0x3025
	eglWidth              = 0x3057
	eglHeight             = 0x3056
	eglOpenGLAPI          = 0x30A2
	eglContextMajor       = 0x3098
	eglContextMinor       = 0x30FB
	eglContextProfileMask = 0x30FD
	eglCoreProfileBit     = 0x0001
)

var (
	loadOnce sync.Once
	loadErr  error

	eglGetDisplay           func(nativeDisplay uintptr) unsafe.Pointer
	eglInitialize           func(dpy unsafe.Pointer, major, minor *int32) uint32
	eglTerminate            func(dpy unsafe.Pointer) uint32
	eglBindAPI              func(api uint32) uint32
	eglChooseConfig         func(dpy unsafe.Pointer, attribs *int32, configs *unsafe.Pointer, size int32, num *int32) uint32
	eglCreatePbufferSurface func(dpy, config unsafe.Pointer, attribs *int32) unsafe.Pointer
	eglCreateContext        func(dpy, config, share unsafe.Pointer, attribs *int32) unsafe.Pointer
	eglMakeCurrent          func(dpy, draw, read, ctx unsafe.Pointer) uint32
	eglDestroySurface       func(dpy, surface unsafe.Pointer) uint32
	eglDestroyContext       func(dpy, ctx unsafe.Pointer) uint32
	eglGetError             func() int32
)

func load() error {
	loadOnce.Do(func() {
		var lib uintptr
		for _, name := range []string{"libEGL.so.1", "libEGL.so"} {
			lib, loadErr = purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
			if loadErr == nil {
				break
			}
		}
		if loadErr != nil {
			loadErr = fmt.Errorf("egl: loading libEGL: %w", loadErr)
			return
		}
		purego.RegisterLibFunc(&eglGetDisplay, lib, "eglGetDisplay")
		purego.RegisterLibFunc(&eglInitialize, lib, "eglInitialize")
		purego.RegisterLibFunc(&eglTerminate, lib, "eglTerminate")
		purego.RegisterLibFunc(&eglBindAPI, lib, "eglBindAPI")
		purego.RegisterLibFunc(&eglChooseConfig, lib, "eglChooseConfig")
		purego.RegisterLibFunc(&eglCreatePbufferSurface, lib, "eglCreatePbufferSurface")
		purego.RegisterLibFunc(&eglCreateContext, lib, "eglCreateContext")
		purego.RegisterLibFunc(&eglMakeCurrent, lib, "eglMakeCurrent")
		purego.RegisterLibFunc(&eglDestroySurface, lib, "eglDestroySurface")
		purego.RegisterLibFunc(&eglDestroyContext, lib, "eglDestroyContext")
		purego.RegisterLibFunc(&eglGetError, lib, "eglGetError")
	})
	return loadErr
}

func fail(op string) error {
	return &Error{Op: op, Code: eglGetError()}
}

// Context is a pbuffer-backed OpenGL 3.3 core context.
type Context struct {
	mu      sync.Mutex
	display unsafe.Pointer
	surface unsafe.Pointer
	context unsafe.Pointer
	closed  bool

	Width, Height int
}

// NewContext creates a width x height offscreen context and makes it
// current on the calling thread.
func NewContext(width, height int) (*Context, error) {
	if err := load(); err != nil {
		return nil, err
	}

	dpy := eglGetDisplay(0)
	if dpy == nil {
		return nil, fail("eglGetDisplay")
	}
	var major, minor int32
	if eglInitialize(dpy, &major, &minor) == 0 {
		return nil, fail("eglInitialize")
	}

	c := &Context{display: dpy, Width: width, Height: height}
	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Context) init() error {
	if eglBindAPI(eglOpenGLAPI) == 0 {
		return fail("eglBindAPI")
	}

	configAttribs := []int32{
		eglSurfaceType, eglPbufferBit,
		eglRenderableType, eglOpenGLBit,
		eglRedSize, 8,
		eglGreenSize, 8,
		eglBlueSize, 8,
		eglAlphaSize, 8,
		eglDepthSize, 24,
		eglNone,
	}
	var config unsafe.Pointer
	var n int32
	if eglChooseConfig(c.display, &configAttribs[0], &config, 1, &n) == 0 || n == 0 {
		return fail("eglChooseConfig")
	}

	surfaceAttribs := []int32{eglWidth, int32(c.Width), eglHeight, int32(c.Height), eglNone}
	c.surface = eglCreatePbufferSurface(c.display, config, &surfaceAttribs[0])
	if c.surface == nil {
		return fail("eglCreatePbufferSurface")
	}

	contextAttribs := []int32{
		eglContextMajor, 3,
		eglContextMinor, 3,
		eglContextProfileMask, eglCoreProfileBit,
		eglNone,
	}
	c.context = eglCreateContext(c.display, config, nil, &contextAttribs[0])
	if c.context == nil {
		return fail("eglCreateContext")
	}

	return c.MakeCurrent()
}

// MakeCurrent binds the context to the calling thread.
func (c *Context) MakeCurrent() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("egl: context is closed")
	}
	if eglMakeCurrent(c.display, c.surface, c.surface, c.context) == 0 {
		return fail("eglMakeCurrent")
	}
	return nil
}

// Close releases the context, its surface and the display. Idempotent.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	eglMakeCurrent(c.display, nil, nil, nil)
	if c.context != nil {
		eglDestroyContext(c.display, c.context)
	}
	if c.surface != nil {
		eglDestroySurface(c.display, c.surface)
	}
	eglTerminate(c.display)
	return nil
}
