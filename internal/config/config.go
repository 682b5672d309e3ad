//go:build !ios && !android && (amd64 || arm64)

// Package config loads pmgo command settings from defaults, an optional
// config file and PMGO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/obinnaokechukwu/pmgo"
)

// EnvPrefix is prepended to upper-cased keys, with dots as underscores:
// PMGO_AUDIO_FILE sets audio.file.
const EnvPrefix = "PMGO"

// Config is the resolved configuration of a pmgo run.
type Config struct {
	LogLevel string
	LogFile  string

	// LibDir overrides the native library search path.
	LibDir     string
	PresetDirs []string
	Textures   []string

	AudioFile     string
	AudioLoop     bool
	Capture       bool
	Playback      bool
	Volume        float64
	PlayLatency   time.Duration
	CaptureFrames int

	Width  uint
	Height uint

	FPS                uint32
	MeshWidth          uint
	MeshHeight         uint
	PresetDuration     float64
	SoftCutDuration    float64
	HardCutEnabled     bool
	HardCutDuration    float64
	HardCutSensitivity float32
	BeatSensitivity    float32
	AspectCorrection   bool
	EasterEgg          float32
	PresetLocked       bool

	Shuffle    bool
	RetryCount int
	Seed       uint64

	NATSURL      string
	NATSPrefix   string
	NATSAttempts int

	TUI bool
}

// SetDefaults installs every default on v.
func SetDefaults(v *viper.Viper) {
	d := pmgo.DefaultSettings()

	v.SetDefault("loglevel", "info")
	v.SetDefault("logfile", "")
	v.SetDefault("libdir", "")
	v.SetDefault("presets", []string{})
	v.SetDefault("textures", []string{})

	v.SetDefault("audio.file", "")
	v.SetDefault("audio.loop", true)
	v.SetDefault("audio.capture", false)
	v.SetDefault("audio.playback", true)
	v.SetDefault("audio.volume", 1.0)
	v.SetDefault("audio.latency", "200ms")
	v.SetDefault("audio.captureframes", 735)

	v.SetDefault("window.width", d.WindowSize.Width)
	v.SetDefault("window.height", d.WindowSize.Height)

	v.SetDefault("fps", d.FPS)
	v.SetDefault("mesh.width", d.MeshSize.Width)
	v.SetDefault("mesh.height", d.MeshSize.Height)
	v.SetDefault("preset.duration", d.PresetDuration)
	v.SetDefault("preset.locked", d.PresetLocked)
	v.SetDefault("softcut.duration", d.SoftCutDuration)
	v.SetDefault("hardcut.enabled", d.HardCutEnabled)
	v.SetDefault("hardcut.duration", d.HardCutDuration)
	v.SetDefault("hardcut.sensitivity", d.HardCutSensitivity)
	v.SetDefault("beat.sensitivity", d.BeatSensitivity)
	v.SetDefault("aspectcorrection", d.AspectCorrection)
	v.SetDefault("easteregg", d.EasterEgg)

	v.SetDefault("playlist.shuffle", false)
	v.SetDefault("playlist.retry", 0)
	v.SetDefault("playlist.seed", 0)

	v.SetDefault("nats.url", "")
	v.SetDefault("nats.prefix", "pmgo")
	v.SetDefault("nats.attempts", 5)

	v.SetDefault("tui", true)
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path into v when path is non-empty. A missing file is logged
// and ignored; a malformed one is an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || isNotExist(err) {
				slog.Info("no config file found", "configFilePath", path)
			} else {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		}
	}
	return Decode(v)
}

// Decode resolves v into a Config and validates it.
func Decode(v *viper.Viper) (*Config, error) {
	c := &Config{
		LogLevel:   strings.ToLower(v.GetString("loglevel")),
		LogFile:    v.GetString("logfile"),
		LibDir:     v.GetString("libdir"),
		PresetDirs: v.GetStringSlice("presets"),
		Textures:   v.GetStringSlice("textures"),

		AudioFile:     v.GetString("audio.file"),
		AudioLoop:     v.GetBool("audio.loop"),
		Capture:       v.GetBool("audio.capture"),
		Playback:      v.GetBool("audio.playback"),
		Volume:        v.GetFloat64("audio.volume"),
		PlayLatency:   v.GetDuration("audio.latency"),
		CaptureFrames: v.GetInt("audio.captureframes"),

		Width:  v.GetUint("window.width"),
		Height: v.GetUint("window.height"),

		FPS:                v.GetUint32("fps"),
		MeshWidth:          v.GetUint("mesh.width"),
		MeshHeight:         v.GetUint("mesh.height"),
		PresetDuration:     v.GetFloat64("preset.duration"),
		PresetLocked:       v.GetBool("preset.locked"),
		SoftCutDuration:    v.GetFloat64("softcut.duration"),
		HardCutEnabled:     v.GetBool("hardcut.enabled"),
		HardCutDuration:    v.GetFloat64("hardcut.duration"),
		HardCutSensitivity: float32(v.GetFloat64("hardcut.sensitivity")),
		BeatSensitivity:    float32(v.GetFloat64("beat.sensitivity")),
		AspectCorrection:   v.GetBool("aspectcorrection"),
		EasterEgg:          float32(v.GetFloat64("easteregg")),

		Shuffle:    v.GetBool("playlist.shuffle"),
		RetryCount: v.GetInt("playlist.retry"),
		Seed:       v.GetUint64("playlist.seed"),

		NATSURL:      v.GetString("nats.url"),
		NATSPrefix:   v.GetString("nats.prefix"),
		NATSAttempts: v.GetInt("nats.attempts"),

		TUI: v.GetBool("tui"),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the values the engine would reject or misbehave on.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := logLevels[c.LogLevel]; !ok {
		errs = append(errs, fmt.Errorf("loglevel %q: want one of none, error, warn, info, debug", c.LogLevel))
	}
	if c.Width == 0 || c.Height == 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be non-zero", c.Width, c.Height))
	}
	if c.FPS == 0 {
		errs = append(errs, errors.New("fps must be positive"))
	}
	if c.RetryCount < 0 {
		errs = append(errs, fmt.Errorf("playlist.retry %d must not be negative", c.RetryCount))
	}
	if c.Volume < 0 || c.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume %g outside [0, 1]", c.Volume))
	}
	if c.AudioFile != "" && c.Capture {
		errs = append(errs, errors.New("audio.file and audio.capture are mutually exclusive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Settings converts the engine parameters to pmgo.Settings.
func (c *Config) Settings() pmgo.Settings {
	var textures []string
	if len(c.Textures) > 0 {
		textures = c.Textures
	}
	return pmgo.Settings{
		MeshSize:           pmgo.Size{Width: c.MeshWidth, Height: c.MeshHeight},
		WindowSize:         pmgo.Size{Width: c.Width, Height: c.Height},
		FPS:                c.FPS,
		PresetDuration:     c.PresetDuration,
		SoftCutDuration:    c.SoftCutDuration,
		HardCutDuration:    c.HardCutDuration,
		HardCutEnabled:     c.HardCutEnabled,
		HardCutSensitivity: c.HardCutSensitivity,
		BeatSensitivity:    c.BeatSensitivity,
		AspectCorrection:   c.AspectCorrection,
		EasterEgg:          c.EasterEgg,
		PresetLocked:       c.PresetLocked,
		TextureSearchPaths: textures,
	}
}
