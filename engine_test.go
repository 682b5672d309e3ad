//go:build !ios && !android && (amd64 || arm64)

package pmgo

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"slices"
	"sync"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T) (*Engine, *fakeEngine, *fakePlaylist) {
	t.Helper()
	fe := newFakeEngine()
	fp := newFakePlaylist(fe)
	e, err := newEngine(fe, fp, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e, fe, fp
}

func TestNewEngineCreateFailed(t *testing.T) {
	fe := newFakeEngine()
	fe.createNil = true

	_, err := newEngine(fe, newFakePlaylist(fe), WithLogger(quietLogger()))
	if !errors.Is(err, ErrCreateFailed) {
		t.Errorf("expected ErrCreateFailed, got %v", err)
	}
}

func TestNewEngineWithSettings(t *testing.T) {
	fe := newFakeEngine()
	s := DefaultSettings()
	s.MeshSize = Size{Width: 32, Height: 24}

	e, err := newEngine(fe, newFakePlaylist(fe), WithLogger(quietLogger()), WithSettings(s))
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}
	defer e.Close()

	if fe.meshW != 32 || fe.meshH != 24 {
		t.Errorf("mesh = %dx%d, want 32x24", fe.meshW, fe.meshH)
	}
}

func TestEngineCloseIdempotent(t *testing.T) {
	e, fe, _ := newTestEngine(t)

	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if fe.destroyed != 1 {
		t.Errorf("destroy called %d times, want 1", fe.destroyed)
	}
}

func TestEngineUseAfterClose(t *testing.T) {
	e, fe, _ := newTestEngine(t)
	e.Close()

	ops := map[string]func() error{
		"RenderFrame":        e.RenderFrame,
		"ResetTextures":      e.ResetTextures,
		"TouchDestroyAll":    e.TouchDestroyAll,
		"LoadPresetFile":     func() error { return e.LoadPresetFile("a.milk", true) },
		"SetBeatSensitivity": func() error { return e.SetBeatSensitivity(1) },
		"SetMeshSize":        func() error { return e.SetMeshSize(32, 24) },
		"PCMAddFloat32":      func() error { return e.PCMAddFloat32([]float32{0, 0}, Stereo) },
		"BeatSensitivity": func() error {
			_, err := e.BeatSensitivity()
			return err
		},
		"WindowSize": func() error {
			_, err := e.WindowSize()
			return err
		},
		"Settings": func() error {
			_, err := e.Settings()
			return err
		},
		"SetPresetSwitchRequestedCallback": func() error {
			return e.SetPresetSwitchRequestedCallback(func(bool) {})
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op(); !errors.Is(err, ErrClosed) {
				t.Errorf("expected ErrClosed, got %v", err)
			}
		})
	}

	if fe.renders != 0 || len(fe.pcm) != 0 {
		t.Error("native functions reached after Close")
	}
}

func TestParameterRoundTrip(t *testing.T) {
	e, _, _ := newTestEngine(t)

	t.Run("BeatSensitivity", func(t *testing.T) {
		if err := e.SetBeatSensitivity(1.5); err != nil {
			t.Fatal(err)
		}
		if v, _ := e.BeatSensitivity(); v != 1.5 {
			t.Errorf("got %v", v)
		}
	})
	t.Run("HardCutDuration", func(t *testing.T) {
		e.SetHardCutDuration(20.25)
		if v, _ := e.HardCutDuration(); v != 20.25 {
			t.Errorf("got %v", v)
		}
	})
	t.Run("HardCutEnabled", func(t *testing.T) {
		e.SetHardCutEnabled(true)
		if v, _ := e.HardCutEnabled(); !v {
			t.Error("got false")
		}
	})
	t.Run("HardCutSensitivity", func(t *testing.T) {
		e.SetHardCutSensitivity(0.75)
		if v, _ := e.HardCutSensitivity(); v != 0.75 {
			t.Errorf("got %v", v)
		}
	})
	t.Run("SoftCutDuration", func(t *testing.T) {
		e.SetSoftCutDuration(3.5)
		if v, _ := e.SoftCutDuration(); v != 3.5 {
			t.Errorf("got %v", v)
		}
	})
	t.Run("PresetDuration", func(t *testing.T) {
		e.SetPresetDuration(42)
		if v, _ := e.PresetDuration(); v != 42 {
			t.Errorf("got %v", v)
		}
	})
	t.Run("FPS", func(t *testing.T) {
		e.SetFPS(60)
		if v, _ := e.FPS(); v != 60 {
			t.Errorf("got %v", v)
		}
	})
	t.Run("AspectCorrection", func(t *testing.T) {
		e.SetAspectCorrection(true)
		if v, _ := e.AspectCorrection(); !v {
			t.Error("got false")
		}
	})
	t.Run("EasterEgg", func(t *testing.T) {
		e.SetEasterEgg(0.5)
		if v, _ := e.EasterEgg(); v != 0.5 {
			t.Errorf("got %v", v)
		}
	})
	t.Run("PresetLocked", func(t *testing.T) {
		e.SetPresetLocked(true)
		if v, _ := e.PresetLocked(); !v {
			t.Error("got false")
		}
	})
	t.Run("MeshSize", func(t *testing.T) {
		e.SetMeshSize(32, 24)
		if v, _ := e.MeshSize(); v != (Size{32, 24}) {
			t.Errorf("got %v", v)
		}
	})
	t.Run("WindowSize", func(t *testing.T) {
		e.SetWindowSize(640, 360)
		if v, _ := e.WindowSize(); v != (Size{640, 360}) {
			t.Errorf("got %v", v)
		}
	})
}

func TestSetFPSOutOfRange(t *testing.T) {
	e, fe, _ := newTestEngine(t)
	fe.fpsVal = 30

	err := e.SetFPS(math.MaxInt32 + 1)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if fe.fpsVal != 30 {
		t.Errorf("fps changed to %d", fe.fpsVal)
	}
	if err := e.SetFPS(math.MaxInt32); err != nil {
		t.Errorf("MaxInt32 rejected: %v", err)
	}
}

func TestFPSNegativeNative(t *testing.T) {
	e, fe, _ := newTestEngine(t)
	fe.fpsVal = -1

	if _, err := e.FPS(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestSetTextureSearchPaths(t *testing.T) {
	e, fe, _ := newTestEngine(t)

	paths := []string{"/usr/share/projectM/textures", "/tmp/tex"}
	if err := e.SetTextureSearchPaths(paths); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(fe.texturePaths, paths) {
		t.Errorf("paths = %v", fe.texturePaths)
	}

	err := e.SetTextureSearchPaths([]string{"/ok", "bad\x00path"})
	var cerr *CStringError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CStringError, got %v", err)
	}
	if cerr.Index != 3 || cerr.Op != "SetTextureSearchPaths" {
		t.Errorf("unexpected error fields: %+v", cerr)
	}
	if !slices.Equal(fe.texturePaths, paths) {
		t.Error("native paths changed after rejected call")
	}
}

func TestLoadPresetFileRejectsNUL(t *testing.T) {
	e, fe, _ := newTestEngine(t)

	var cerr *CStringError
	if err := e.LoadPresetFile("a\x00.milk", false); !errors.As(err, &cerr) {
		t.Errorf("expected *CStringError, got %v", err)
	}
	if err := e.LoadPresetFile("a.milk", false); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(fe.presetFiles, []string{"a.milk"}) {
		t.Errorf("preset files = %v", fe.presetFiles)
	}
}

func TestPCMAdd(t *testing.T) {
	e, fe, _ := newTestEngine(t)
	fe.max = 8

	tests := []struct {
		name    string
		add     func() error
		wantErr error
		want    *pcmCall
	}{
		{
			name: "stereo float",
			add:  func() error { return e.PCMAddFloat32(make([]float32, 8), Stereo) },
			want: &pcmCall{"float", 8, 4, Stereo},
		},
		{
			name: "mono int16",
			add:  func() error { return e.PCMAddInt16(make([]int16, 5), Mono) },
			want: &pcmCall{"int16", 5, 5, Mono},
		},
		{
			name: "stereo uint8",
			add:  func() error { return e.PCMAddUint8(make([]uint8, 2), Stereo) },
			want: &pcmCall{"uint8", 2, 1, Stereo},
		},
		{
			name:    "one over max",
			add:     func() error { return e.PCMAddFloat32(make([]float32, 9), Mono) },
			wantErr: ErrTooManySamples,
		},
		{
			name:    "far over max",
			add:     func() error { return e.PCMAddInt16(make([]int16, 1<<16), Stereo) },
			wantErr: ErrTooManySamples,
		},
		{
			name:    "bad channels",
			add:     func() error { return e.PCMAddFloat32(make([]float32, 6), Channels(3)) },
			wantErr: ErrInvalidChannels,
		},
		{
			name:    "partial frame",
			add:     func() error { return e.PCMAddUint8(make([]uint8, 3), Stereo) },
			wantErr: ErrPartialFrame,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(fe.pcm)
			err := tt.add()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				if len(fe.pcm) != before {
					t.Error("native PCM function reached for rejected input")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := fe.pcm[len(fe.pcm)-1]; got != *tt.want {
				t.Errorf("native call = %+v, want %+v", got, *tt.want)
			}
		})
	}
}

func TestWriteDebugImage(t *testing.T) {
	e, fe, _ := newTestEngine(t)

	e.WriteDebugImageOnNextFrame("")
	e.WriteDebugImageOnNextFrame("/tmp/frame.bmp")
	if !slices.Equal(fe.debugPaths, []string{"", "/tmp/frame.bmp"}) {
		t.Errorf("debug paths = %q", fe.debugPaths)
	}
}

func TestTouch(t *testing.T) {
	e, fe, _ := newTestEngine(t)

	e.Touch(0.5, 0.5, 1, TouchCircle)
	e.TouchDrag(0.6, 0.5, 1)
	e.TouchDestroy(0.6, 0.5)
	e.TouchDestroyAll()

	want := []string{"touch", "drag", "destroy", "destroy-all"}
	if !slices.Equal(fe.touches, want) {
		t.Errorf("touches = %v, want %v", fe.touches, want)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	e, fe, _ := newTestEngine(t)

	want := DefaultSettings()
	want.MeshSize = Size{Width: 32, Height: 24}
	want.WindowSize = Size{Width: 640, Height: 360}
	want.PresetLocked = true
	want.TextureSearchPaths = []string{"/tex"}

	if err := e.ApplySettings(want); err != nil {
		t.Fatal(err)
	}
	got, err := e.Settings()
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(fe.texturePaths, want.TextureSearchPaths) {
		t.Errorf("texture paths = %v", fe.texturePaths)
	}
	want.TextureSearchPaths = nil
	if got.MeshSize != want.MeshSize || got.WindowSize != want.WindowSize ||
		got.FPS != want.FPS || got.PresetDuration != want.PresetDuration ||
		got.SoftCutDuration != want.SoftCutDuration || got.HardCutDuration != want.HardCutDuration ||
		got.HardCutEnabled != want.HardCutEnabled || got.HardCutSensitivity != want.HardCutSensitivity ||
		got.BeatSensitivity != want.BeatSensitivity || got.AspectCorrection != want.AspectCorrection ||
		got.EasterEgg != want.EasterEgg || got.PresetLocked != want.PresetLocked {
		t.Errorf("Settings() = %+v, want %+v", got, want)
	}
}

func TestApplySettingsValidatesFirst(t *testing.T) {
	e, fe, _ := newTestEngine(t)

	s := DefaultSettings()
	s.FPS = math.MaxUint32
	if err := e.ApplySettings(s); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if fe.meshW != 0 {
		t.Error("settings partially applied")
	}
}

func TestEngineConcurrentUse(t *testing.T) {
	e, _, _ := newTestEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				e.SetBeatSensitivity(float32(i))
				e.BeatSensitivity()
				e.PCMAddFloat32([]float32{0.1, -0.1}, Stereo)
				e.RenderFrame()
			}
		}(i)
	}
	wg.Wait()
}
