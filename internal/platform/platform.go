//go:build !ios && !android && (amd64 || arm64)

// Package platform describes how the projectM shared libraries are named and
// where they live on the current operating system.
package platform

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Is64Bit reports whether pointers are 64 bits wide.
// purego only supports 64-bit targets, and projectM's size_t parameters are
// bound as uintptr on that assumption.
const Is64Bit = unsafe.Sizeof(uintptr(0)) == 8

// LibraryExtension is the file extension for shared libraries on this platform.
var LibraryExtension string

// LibraryPrefix is the prefix for shared library names on this platform.
var LibraryPrefix string

func init() {
	switch runtime.GOOS {
	case "darwin":
		LibraryExtension = ".dylib"
		LibraryPrefix = "lib"
	case "windows":
		LibraryExtension = ".dll"
		LibraryPrefix = ""
	default:
		LibraryExtension = ".so"
		LibraryPrefix = "lib"
	}
}

// FormatLibraryName returns the platform-specific library filename.
// A zero version yields the unversioned name. Windows builds of projectM do
// not carry the ABI version in the file name, so it is ignored there.
//
// Examples:
//   - Linux:   FormatLibraryName("projectM-4", 4) -> "libprojectM-4.so.4"
//   - macOS:   FormatLibraryName("projectM-4", 4) -> "libprojectM-4.4.dylib"
//   - Windows: FormatLibraryName("projectM-4", 4) -> "projectM-4.dll"
func FormatLibraryName(name string, version int) string {
	switch runtime.GOOS {
	case "darwin":
		if version > 0 {
			return fmt.Sprintf("%s%s.%d%s", LibraryPrefix, name, version, LibraryExtension)
		}
		return LibraryPrefix + name + LibraryExtension
	case "windows":
		return LibraryPrefix + name + LibraryExtension
	default:
		if version > 0 {
			return fmt.Sprintf("%s%s%s.%d", LibraryPrefix, name, LibraryExtension, version)
		}
		return LibraryPrefix + name + LibraryExtension
	}
}

// GOOS returns the current operating system.
func GOOS() string {
	return runtime.GOOS
}

// GOARCH returns the current architecture.
func GOARCH() string {
	return runtime.GOARCH
}
