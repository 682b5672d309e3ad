// Package capture reads live audio from the default input device.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrAlreadyStarted is returned by Start on a running device.
var ErrAlreadyStarted = errors.New("capture: device already started")

// Device delivers blocks of interleaved float32 samples.
type Device interface {
	Start(ctx context.Context) (<-chan []float32, error)
	Stop() error
	SampleRate() int
	Channels() int
}

// Stream is a blocking input stream bound to a fixed buffer.
type Stream interface {
	Start() error
	// Read blocks until the bound buffer is full.
	Read() error
	Stop() error
	Close() error
}

// Backend opens input streams.
type Backend interface {
	Initialize() error
	Terminate() error
	OpenInput(sampleRate float64, channels, framesPerBuffer int, buf []float32) (Stream, error)
}

// Config describes the requested input format.
type Config struct {
	SampleRate      int
	Channels        int
	FramesPerBuffer int
	// Queue is the number of blocks buffered for a slow reader. Further
	// blocks are dropped.
	Queue int
}

// DefaultConfig is 44.1 kHz stereo in 735-frame blocks, one per 60 Hz frame.
var DefaultConfig = Config{
	SampleRate:      44100,
	Channels:        2,
	FramesPerBuffer: 735,
	Queue:           8,
}

var _ Device = (*PortAudioDevice)(nil)

// PortAudioDevice implements Device over a Backend.
type PortAudioDevice struct {
	backend Backend
	cfg     Config
	logger  *slog.Logger

	mu      sync.Mutex
	stream  Stream
	cancel  context.CancelFunc
	done    chan struct{}
	dropped uint64
}

// NewPortAudioDevice returns a device using PortAudio.
func NewPortAudioDevice(cfg Config, logger *slog.Logger) *PortAudioDevice {
	return NewDevice(NewPortAudioBackend(), cfg, logger)
}

// NewDevice returns a device reading through backend.
func NewDevice(backend Backend, cfg Config, logger *slog.Logger) *PortAudioDevice {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig.SampleRate
	}
	if cfg.Channels <= 0 {
		cfg.Channels = DefaultConfig.Channels
	}
	if cfg.FramesPerBuffer <= 0 {
		cfg.FramesPerBuffer = DefaultConfig.FramesPerBuffer
	}
	if cfg.Queue <= 0 {
		cfg.Queue = DefaultConfig.Queue
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PortAudioDevice{
		backend: backend,
		cfg:     cfg,
		logger:  logger.With("component", "capture"),
	}
}

func (d *PortAudioDevice) SampleRate() int { return d.cfg.SampleRate }

func (d *PortAudioDevice) Channels() int { return d.cfg.Channels }

// Start opens and starts the input stream. The returned channel is closed
// when ctx is cancelled, Stop is called, or a read fails.
func (d *PortAudioDevice) Start(ctx context.Context) (<-chan []float32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stream != nil {
		return nil, ErrAlreadyStarted
	}

	if err := d.backend.Initialize(); err != nil {
		return nil, fmt.Errorf("capture: initialize: %w", err)
	}
	buf := make([]float32, d.cfg.FramesPerBuffer*d.cfg.Channels)
	stream, err := d.backend.OpenInput(float64(d.cfg.SampleRate), d.cfg.Channels, d.cfg.FramesPerBuffer, buf)
	if err != nil {
		d.backend.Terminate()
		return nil, fmt.Errorf("capture: open input: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		d.backend.Terminate()
		return nil, fmt.Errorf("capture: start: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	out := make(chan []float32, d.cfg.Queue)
	d.stream = stream
	d.cancel = cancel
	d.done = make(chan struct{})
	go d.loop(ctx, stream, buf, out, d.done)

	d.logger.Info("capture started",
		"sample_rate", d.cfg.SampleRate,
		"channels", d.cfg.Channels,
		"frames_per_buffer", d.cfg.FramesPerBuffer)
	return out, nil
}

func (d *PortAudioDevice) loop(ctx context.Context, stream Stream, buf []float32, out chan<- []float32, done chan<- struct{}) {
	defer close(done)
	defer close(out)

	for ctx.Err() == nil {
		if err := stream.Read(); err != nil {
			if isOverflow(err) {
				d.logger.Debug("input overflowed")
				continue
			}
			if ctx.Err() == nil {
				d.logger.Error("capture read failed", "error", err)
			}
			return
		}

		block := make([]float32, len(buf))
		copy(block, buf)
		select {
		case out <- block:
		case <-ctx.Done():
			return
		default:
			d.mu.Lock()
			d.dropped++
			d.mu.Unlock()
		}
	}
}

// Dropped reports how many blocks were discarded because the reader lagged.
func (d *PortAudioDevice) Dropped() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

// Stop halts the stream and waits for the reader goroutine to exit. It is a
// no-op on a stopped device.
func (d *PortAudioDevice) Stop() error {
	d.mu.Lock()
	stream, cancel, done := d.stream, d.cancel, d.done
	d.stream, d.cancel, d.done = nil, nil, nil
	d.mu.Unlock()
	if stream == nil {
		return nil
	}

	cancel()
	// Stopping the stream unblocks a pending Read.
	stopErr := stream.Stop()
	<-done
	err := errors.Join(stopErr, stream.Close(), d.backend.Terminate())
	d.logger.Info("capture stopped", "dropped", d.Dropped())
	return err
}
