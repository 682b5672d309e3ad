//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/obinnaokechukwu/pmgo"
	"github.com/obinnaokechukwu/pmgo/audiosource"
	"github.com/obinnaokechukwu/pmgo/capture"
	"github.com/obinnaokechukwu/pmgo/control"
	"github.com/obinnaokechukwu/pmgo/internal/config"
	"github.com/obinnaokechukwu/pmgo/internal/egl"
	"github.com/obinnaokechukwu/pmgo/internal/tui"
	"github.com/obinnaokechukwu/pmgo/playback"
	"github.com/obinnaokechukwu/pmgo/remote"
)

// flagKeys maps run flags to the config keys they override.
var flagKeys = map[string]string{
	"presets":  "presets",
	"audio":    "audio.file",
	"capture":  "audio.capture",
	"nats":     "nats.url",
	"tui":      "tui",
	"width":    "window.width",
	"height":   "window.height",
	"fps":      "fps",
	"seed":     "playlist.seed",
	"shuffle":  "playlist.shuffle",
	"loglevel": "loglevel",
	"logfile":  "logfile",
}

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "config file")
	maxFrames := fs.Int("frames", 0, "stop after this many frames (0 runs until quit)")
	fs.String("presets", "", "comma-separated preset directories")
	fs.String("audio", "", "audio file to visualize (wav, aiff, mp3, ogg)")
	fs.Bool("capture", false, "visualize the default audio input")
	fs.String("nats", "", "NATS server URL for remote control")
	fs.Bool("tui", true, "show the terminal control panel")
	fs.Uint("width", 0, "render width")
	fs.Uint("height", 0, "render height")
	fs.Uint("fps", 0, "target frame rate")
	fs.Uint64("seed", 0, "random preset seed (0 picks one)")
	fs.Bool("shuffle", false, "shuffle the playlist")
	fs.String("loglevel", "", "none, error, warn, info or debug")
	fs.String("logfile", "", "write JSON logs to this file")
	fs.Parse(args)

	v := config.New()
	fs.Visit(func(f *flag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if f.Name == "presets" {
			v.Set(key, strings.Split(f.Value.String(), ","))
			return
		}
		v.Set(key, f.Value.String())
	})

	cfg, err := loadConfig(v, *configPath)
	if err != nil {
		return err
	}
	// The control panel owns the terminal.
	if cfg.TUI && cfg.LogFile == "" {
		cfg.LogFile = "pmgo.log"
	}
	logger, logFile, err := cfg.ConfigureLogger(os.Stdout)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{cfg: cfg, logger: logger, maxFrames: *maxFrames}
	defer a.close()
	if err := a.setup(ctx); err != nil {
		return err
	}
	return a.loop(ctx)
}

type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	maxFrames int

	glctx  *egl.Context
	engine *pmgo.Engine
	pl     *pmgo.Playlist
	deck   control.Deck

	feeder *audiosource.Feeder
	player *playback.Player
	device capture.Device
	input  <-chan []float32

	commands chan control.Command
	remote   <-chan control.Command
	bridge   *remote.Bridge

	program *tea.Program
	uiDone  chan struct{}

	status tui.Status
}

func (a *app) setup(ctx context.Context) error {
	if err := pmgo.Init(); err != nil {
		return err
	}

	var err error
	a.glctx, err = egl.NewContext(int(a.cfg.Width), int(a.cfg.Height))
	if err != nil {
		return fmt.Errorf("opengl context: %w", err)
	}

	a.engine, err = pmgo.NewEngine(pmgo.WithLogger(a.logger), pmgo.WithSettings(a.cfg.Settings()))
	if err != nil {
		return err
	}
	a.logger = a.engine.Logger()
	a.status.EngineID = a.engine.ID().String()
	if v, err := pmgo.VersionString(); err == nil {
		a.status.Version = v
	}

	if err := a.setupPlaylist(); err != nil {
		return err
	}
	if err := a.setupAudio(ctx); err != nil {
		return err
	}

	a.commands = make(chan control.Command, 16)
	if err := a.setupRemote(ctx); err != nil {
		return err
	}
	a.setupTUI()
	return nil
}

func (a *app) setupPlaylist() error {
	if !pmgo.HasPlaylist() {
		a.logger.Warn("playlist library not found, presets will not rotate")
		a.deck = control.Deck{Engine: a.engine}
		a.status.Position = -1
		if err := a.engine.SetPresetSwitchFailedCallback(a.onFailed); err != nil {
			return err
		}
		return a.engine.SetPresetSwitchRequestedCallback(func(hardCut bool) {
			a.logger.Debug("preset switch requested", "hard_cut", hardCut)
		})
	}

	var opts []pmgo.PlaylistOption
	if a.cfg.Seed != 0 {
		opts = append(opts, pmgo.WithSeed(a.cfg.Seed))
	}
	pl, err := pmgo.NewPlaylist(a.engine, opts...)
	if err != nil {
		return err
	}
	a.pl = pl
	a.deck = control.Deck{Engine: a.engine, Playlist: pl}

	if err := pl.SetPresetSwitchedCallback(a.onSwitched); err != nil {
		return err
	}
	if err := pl.SetPresetSwitchFailedCallback(a.onFailed); err != nil {
		return err
	}
	if err := errors.Join(pl.SetShuffle(a.cfg.Shuffle), pl.SetRetryCount(a.cfg.RetryCount)); err != nil {
		return err
	}

	for _, dir := range a.cfg.PresetDirs {
		added, err := pl.AddPath(dir, true)
		if err != nil {
			return fmt.Errorf("scan %s: %w", dir, err)
		}
		a.logger.Info("presets added", "dir", dir, "count", added)
	}

	n, err := pl.Len()
	if err != nil || n == 0 {
		a.status.Position = -1
		return err
	}
	a.status.Count = n
	if a.cfg.Shuffle {
		_, err = pl.PlayRandom()
	} else {
		_, err = pl.SetPosition(0, true)
	}
	return err
}

func (a *app) setupAudio(ctx context.Context) error {
	switch {
	case a.cfg.AudioFile != "":
		path := a.cfg.AudioFile
		src, err := audiosource.Open(path)
		if err != nil {
			return err
		}
		var opts []audiosource.FeederOption
		if a.cfg.AudioLoop {
			opts = append(opts, audiosource.WithLoop(func() (audiosource.Source, error) {
				return audiosource.Open(path)
			}))
		}
		a.feeder, err = audiosource.NewFeeder(src, int(a.cfg.FPS), opts...)
		if err != nil {
			src.Close()
			return err
		}
		a.status.Source = filepath.Base(path)
		a.logger.Info("audio file opened", "path", path,
			"sample_rate", a.feeder.SampleRate(), "channels", a.feeder.Channels())

		if a.cfg.Playback {
			a.player, err = playback.NewPlayer(a.feeder.SampleRate(), int(a.feeder.Channels()), a.cfg.PlayLatency)
			if err != nil {
				// Visuals still work without sound.
				a.logger.Warn("audio output unavailable", "error", err)
				a.player = nil
			} else {
				a.player.SetVolume(a.cfg.Volume)
			}
		}

	case a.cfg.Capture:
		dev := capture.NewPortAudioDevice(capture.Config{
			SampleRate:      capture.DefaultConfig.SampleRate,
			Channels:        capture.DefaultConfig.Channels,
			FramesPerBuffer: a.cfg.CaptureFrames,
		}, a.logger)
		input, err := dev.Start(ctx)
		if err != nil {
			return err
		}
		a.device = dev
		a.input = input
		a.status.Source = "capture"

	default:
		a.status.Source = "silence"
	}
	return nil
}

func (a *app) setupRemote(ctx context.Context) error {
	if a.cfg.NATSURL == "" {
		return nil
	}
	conn, err := remote.Connect(ctx, a.cfg.NATSURL, a.cfg.NATSAttempts, a.logger)
	if err != nil {
		return err
	}
	a.bridge = remote.NewBridge(conn, a.cfg.NATSPrefix, 16, a.logger)
	a.remote, err = a.bridge.Start(ctx)
	return err
}

func (a *app) setupTUI() {
	if !a.cfg.TUI {
		return
	}
	a.program = tea.NewProgram(tui.New(a.commands))
	a.uiDone = make(chan struct{})
	go func() {
		defer close(a.uiDone)
		if _, err := a.program.Run(); err != nil {
			a.logger.Error("control panel failed", "error", err)
		}
	}()
}

func (a *app) loop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.FPS))
	defer ticker.Stop()

	statusEvery := max(int(a.cfg.FPS)/4, 1)
	window := time.Now()
	for frame := 1; a.maxFrames == 0 || frame <= a.maxFrames; frame++ {
		select {
		case <-ctx.Done():
			return nil
		case <-a.uiDone:
			return nil
		case <-ticker.C:
		}

		a.drainCommands()
		if err := a.feedAudio(); err != nil {
			return err
		}
		if err := a.engine.RenderFrame(); err != nil {
			return err
		}

		if frame%statusEvery == 0 {
			now := time.Now()
			a.status.FPS = float64(statusEvery) / now.Sub(window).Seconds()
			window = now
			a.refreshStatus()
		}
	}
	return nil
}

func (a *app) drainCommands() {
	for {
		select {
		case cmd := <-a.commands:
			a.apply(cmd)
		case cmd, ok := <-a.remote:
			if !ok {
				a.remote = nil
				continue
			}
			a.apply(cmd)
		default:
			return
		}
	}
}

func (a *app) apply(cmd control.Command) {
	res, err := control.Apply(cmd, a.deck)
	if err != nil {
		a.logger.Warn("command failed", "command", cmd.String(), "error", err)
	} else {
		a.logger.Debug("command applied", "command", cmd.String(), "position", res.Position)
	}
	if res.Locked != nil {
		a.status.Locked = *res.Locked
	}
	if res.Shuffle != nil {
		a.status.Shuffle = *res.Shuffle
	}

	ev := remote.NewEvent(a.engine.ID(), remote.EventCommand)
	ev.Command = cmd.String()
	ev.Position = res.Position
	if err != nil {
		ev.Error = err.Error()
	}
	a.publish(ev)
}

func (a *app) feedAudio() error {
	if a.feeder != nil {
		samples, err := a.feeder.Next()
		switch {
		case errors.Is(err, io.EOF):
			a.logger.Info("audio finished")
			a.feeder.Close()
			a.feeder = nil
			a.status.Source = "silence"
		case err != nil:
			return err
		default:
			if err := audiosource.Push(a.engine, samples, a.feeder.Channels()); err != nil {
				return err
			}
			if a.player != nil {
				a.player.Write(samples)
			}
		}
	}

	for a.input != nil {
		select {
		case block, ok := <-a.input:
			if !ok {
				a.logger.Warn("audio input stopped")
				a.input = nil
				continue
			}
			if err := audiosource.Push(a.engine, block, pmgo.Channels(a.device.Channels())); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// onSwitched runs on the render goroutine after the native call returns, so
// it may call back into the playlist.
func (a *app) onSwitched(hardCut bool, index uint32) {
	name, err := a.pl.Item(int(index))
	if err != nil {
		a.logger.Warn("switched to unknown preset", "index", index, "error", err)
	}
	a.status.Position = int(index)
	a.status.Preset = name
	a.logger.Info("preset switched", "index", index, "preset", name, "hard_cut", hardCut)

	ev := remote.NewEvent(a.engine.ID(), remote.EventSwitched)
	ev.Position = int(index)
	ev.Preset = name
	ev.HardCut = hardCut
	a.publish(ev)
}

func (a *app) onFailed(file, message string) {
	a.status.LastFailure = fmt.Sprintf("%s: %s", filepath.Base(file), message)
	a.logger.Warn("preset failed", "preset", file, "message", message)

	ev := remote.NewEvent(a.engine.ID(), remote.EventFailed)
	ev.Preset = file
	ev.Error = message
	a.publish(ev)
}

func (a *app) publish(ev remote.Event) {
	if a.bridge == nil {
		return
	}
	if err := a.bridge.Publish(ev); err != nil {
		a.logger.Warn("event publish failed", "type", ev.Type, "error", err)
	}
}

func (a *app) refreshStatus() {
	if locked, err := a.engine.PresetLocked(); err == nil {
		a.status.Locked = locked
	}
	if a.pl != nil {
		if n, err := a.pl.Len(); err == nil {
			a.status.Count = n
		}
		if on, err := a.pl.Shuffle(); err == nil {
			a.status.Shuffle = on
		}
	}
	if a.program != nil {
		a.program.Send(tui.StatusMsg(a.status))
	}
}

func (a *app) close() {
	if a.program != nil {
		a.program.Send(tui.QuitMsg{})
		<-a.uiDone
	}
	if a.bridge != nil {
		a.bridge.Close()
	}
	if a.device != nil {
		if err := a.device.Stop(); err != nil {
			a.logger.Warn("capture stop", "error", err)
		}
	}
	if a.player != nil {
		a.player.Close()
	}
	if a.feeder != nil {
		a.feeder.Close()
	}
	if a.engine != nil {
		// Closing the engine destroys its playlist first.
		a.engine.Close()
	}
	if a.glctx != nil {
		a.glctx.Close()
	}
}
