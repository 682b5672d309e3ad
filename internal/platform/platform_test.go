//go:build !ios && !android && (amd64 || arm64)

package platform

import (
	"runtime"
	"testing"
)

func TestIs64Bit(t *testing.T) {
	if !Is64Bit {
		t.Error("Platform should be 64-bit")
	}
}

func TestLibraryAffixes(t *testing.T) {
	switch runtime.GOOS {
	case "darwin":
		if LibraryExtension != ".dylib" || LibraryPrefix != "lib" {
			t.Errorf("got prefix %q extension %q", LibraryPrefix, LibraryExtension)
		}
	case "windows":
		if LibraryExtension != ".dll" || LibraryPrefix != "" {
			t.Errorf("got prefix %q extension %q", LibraryPrefix, LibraryExtension)
		}
	default:
		if LibraryExtension != ".so" || LibraryPrefix != "lib" {
			t.Errorf("got prefix %q extension %q", LibraryPrefix, LibraryExtension)
		}
	}
}

func TestFormatLibraryName(t *testing.T) {
	tests := []struct {
		name    string
		version int
		goos    string
		want    string
	}{
		{"projectM-4", 4, "linux", "libprojectM-4.so.4"},
		{"projectM-4", 0, "linux", "libprojectM-4.so"},
		{"projectM-4-playlist", 4, "linux", "libprojectM-4-playlist.so.4"},
		{"projectM-4", 4, "darwin", "libprojectM-4.4.dylib"},
		{"projectM-4", 0, "darwin", "libprojectM-4.dylib"},
		{"projectM-4", 4, "windows", "projectM-4.dll"},
		{"projectM-4-playlist", 0, "windows", "projectM-4-playlist.dll"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"_"+tt.goos, func(t *testing.T) {
			if runtime.GOOS != tt.goos {
				t.Skipf("test only applies to %s", tt.goos)
			}
			got := FormatLibraryName(tt.name, tt.version)
			if got != tt.want {
				t.Errorf("FormatLibraryName(%q, %d) = %q, want %q", tt.name, tt.version, got, tt.want)
			}
		})
	}
}
