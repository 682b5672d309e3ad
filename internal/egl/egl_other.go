//go:build !linux || !(amd64 || arm64)

package egl

// Context is unavailable on this platform.
type Context struct {
	Width, Height int
}

// NewContext always returns ErrUnsupported here.
func NewContext(width, height int) (*Context, error) {
	return nil, ErrUnsupported
}

// MakeCurrent always returns ErrUnsupported here.
func (c *Context) MakeCurrent() error {
	return ErrUnsupported
}

// Close does nothing.
func (c *Context) Close() error {
	return nil
}
