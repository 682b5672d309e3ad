// Package egl creates an offscreen OpenGL context for projectM.
//
// projectM draws with OpenGL and refuses to create an instance without a
// current context. This package opens libEGL with purego and makes a pbuffer
// context current on the calling thread, which lets tools and tests run the
// engine without a window. Callers must lock the goroutine to its OS thread
// (runtime.LockOSThread) for the lifetime of the context.
package egl

import "errors"

// ErrUnsupported is returned on platforms without EGL.
var ErrUnsupported = errors.New("egl: headless contexts are not supported on this platform")

// Error is an EGL failure with the code reported by eglGetError.
type Error struct {
	Op   string
	Code int32
}

func (e *Error) Error() string {
	return "egl: " + e.Op + " failed: " + codeName(e.Code)
}

func codeName(code int32) string {
	switch code {
	case 0x3000:
		return "EGL_SUCCESS"
	case 0x3001:
		return "EGL_NOT_INITIALIZED"
	case 0x3002:
		return "EGL_BAD_ACCESS"
	case 0x3003:
		return "EGL_BAD_ALLOC"
	case 0x3004:
		return "EGL_BAD_ATTRIBUTE"
	case 0x3005:
		return "EGL_BAD_CONFIG"
	case 0x3006:
		return "EGL_BAD_CONTEXT"
	case 0x3008:
		return "EGL_BAD_DISPLAY"
	case 0x3009:
		return "EGL_BAD_MATCH"
	case 0x300C:
		return "EGL_BAD_PARAMETER"
	case 0x300D:
		return "EGL_BAD_SURFACE"
	default:
		return "unknown error"
	}
}
