// Package playback plays the decoded audio that drives the visualizer so it
// can be heard in sync with the rendered frames.
package playback

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	DefaultSampleRate = 44100
	DefaultChannels   = 2

	// DefaultLatency bounds the ring to this much audio.
	DefaultLatency = 200 * time.Millisecond
)

// ErrClosed is returned by methods called after Close.
var ErrClosed = errors.New("playback: player closed")

// oto allows a single context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
	otoRate int
	otoCh   int
)

func audioContext(sampleRate, channels int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
		}
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(op)
		if otoErr != nil {
			return
		}
		<-ready
		otoRate, otoCh = sampleRate, channels
	})
	if otoErr != nil {
		return nil, fmt.Errorf("playback: audio context: %w", otoErr)
	}
	if sampleRate != otoRate || channels != otoCh {
		return nil, fmt.Errorf("playback: audio context already open at %d Hz, %d ch", otoRate, otoCh)
	}
	return otoCtx, nil
}

// Player streams samples written by the render loop to the sound card.
type Player struct {
	mu     sync.Mutex
	ring   *Ring
	player *oto.Player
	closed bool
}

// NewPlayer opens the output device and starts playback of silence.
func NewPlayer(sampleRate, channels int, latency time.Duration) (*Player, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if channels <= 0 {
		channels = DefaultChannels
	}
	if latency <= 0 {
		latency = DefaultLatency
	}

	ctx, err := audioContext(sampleRate, channels)
	if err != nil {
		return nil, err
	}

	ring := NewRing(int(latency.Seconds()*float64(sampleRate)) * channels)
	p := &Player{
		ring:   ring,
		player: ctx.NewPlayer(ring),
	}
	p.player.Play()
	return p, nil
}

// Write queues interleaved samples for playback.
func (p *Player) Write(samples []float32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.ring.Write(samples)
	return nil
}

// SetVolume sets the output gain, 0 to 1.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.player.SetVolume(min(max(v, 0), 1))
}

// Stats reports ring underruns and overruns.
func (p *Player) Stats() (underruns, overruns uint64) {
	return p.ring.Stats()
}

// Close stops playback. It is safe to call more than once.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.ring.Close()
	return p.player.Close()
}
