//go:build !ios && !android && (amd64 || arm64)

// Package remote bridges control commands and engine events over NATS.
//
// Commands arrive on <prefix>.control as JSON ({"action":"next"}) or as the
// plain "action [value]" text form. Events are published as JSON on
// <prefix>.events.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/obinnaokechukwu/pmgo/control"
)

const DefaultPrefix = "pmgo"

// ErrStarted is returned by Start on a running bridge.
var ErrStarted = errors.New("remote: bridge already started")

// Conn is the subset of *nats.Conn the bridge needs.
type Conn interface {
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
	Publish(subject string, data []byte) error
	Close()
}

// ConnAdapter adapts *nats.Conn to Conn.
type ConnAdapter struct {
	conn *nats.Conn
}

func NewConnAdapter(conn *nats.Conn) *ConnAdapter {
	return &ConnAdapter{conn: conn}
}

func (a *ConnAdapter) Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error) {
	return a.conn.Subscribe(subject, cb)
}

func (a *ConnAdapter) Publish(subject string, data []byte) error {
	return a.conn.Publish(subject, data)
}

func (a *ConnAdapter) Close() {
	a.conn.Close()
}

// Connect dials url, retrying a few times before giving up.
func Connect(ctx context.Context, url string, attempts int, logger *slog.Logger) (*ConnAdapter, error) {
	if attempts < 1 {
		attempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	var nc *nats.Conn
	var err error
	for i := 0; i < attempts; i++ {
		nc, err = nats.Connect(url, nats.Name("pmgo"), nats.MaxReconnects(-1))
		if err == nil {
			break
		}
		logger.Warn("nats connect failed", "url", url, "attempt", i+1, "of", attempts, "error", err)
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("remote: connect to %s after %d attempts: %w", url, attempts, err)
	}

	logger.Info("connected to nats", "url", url)
	return NewConnAdapter(nc), nil
}

// EventType classifies an Event.
type EventType string

const (
	EventSwitched EventType = "switched"
	EventFailed   EventType = "failed"
	EventCommand  EventType = "command"
)

// Event is published on the events subject.
type Event struct {
	ID       string    `json:"id"`
	EngineID string    `json:"engine_id"`
	Type     EventType `json:"type"`
	Time     time.Time `json:"time"`
	Position int       `json:"position,omitempty"`
	Preset   string    `json:"preset,omitempty"`
	HardCut  bool      `json:"hard_cut,omitempty"`
	Command  string    `json:"command,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(engineID uuid.UUID, typ EventType) Event {
	return Event{
		ID:       uuid.NewString(),
		EngineID: engineID.String(),
		Type:     typ,
		Time:     time.Now().UTC(),
	}
}

// Bridge forwards remote commands to a channel and publishes events.
type Bridge struct {
	conn   Conn
	prefix string
	logger *slog.Logger

	mu       sync.Mutex
	commands chan control.Command
	sub      *nats.Subscription
	running  bool
	dropped  int
}

// NewBridge creates a bridge buffering up to capacity commands.
func NewBridge(conn Conn, prefix string, capacity int, logger *slog.Logger) *Bridge {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if capacity < 1 {
		capacity = 16
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		conn:     conn,
		prefix:   prefix,
		logger:   logger.With("component", "remote"),
		commands: make(chan control.Command, capacity),
	}
}

// ControlSubject is where commands are received.
func (b *Bridge) ControlSubject() string { return b.prefix + ".control" }

// EventSubject is where events are published.
func (b *Bridge) EventSubject() string { return b.prefix + ".events" }

// Start subscribes to the control subject. The returned channel is closed
// after ctx is cancelled.
func (b *Bridge) Start(ctx context.Context) (<-chan control.Command, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		return nil, ErrStarted
	}

	sub, err := b.conn.Subscribe(b.ControlSubject(), b.handle)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", b.ControlSubject(), err)
	}
	b.sub = sub
	b.running = true

	go func() {
		<-ctx.Done()
		b.stop()
	}()

	b.logger.Info("subscribed", "subject", b.ControlSubject())
	return b.commands, nil
}

func (b *Bridge) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.running {
		return
	}
	b.running = false
	if b.sub != nil {
		if err := b.sub.Unsubscribe(); err != nil {
			b.logger.Debug("unsubscribe", "error", err)
		}
	}
	close(b.commands)
}

func (b *Bridge) handle(msg *nats.Msg) {
	cmd, err := Decode(msg.Data)
	if err != nil {
		b.logger.Warn("dropping malformed command", "subject", msg.Subject, "error", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.running {
		return
	}
	select {
	case b.commands <- cmd:
		b.logger.Debug("command received", "command", cmd.String())
	default:
		b.dropped++
		b.logger.Warn("command queue full, dropping", "command", cmd.String())
	}
}

// Dropped counts commands discarded because the queue was full.
func (b *Bridge) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Decode parses a JSON or text command payload.
func Decode(data []byte) (control.Command, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return control.Command{}, errors.New("empty payload")
	}
	if !strings.HasPrefix(text, "{") {
		return control.Parse(text)
	}

	var cmd control.Command
	if err := json.Unmarshal([]byte(text), &cmd); err != nil {
		return control.Command{}, fmt.Errorf("decode command: %w", err)
	}
	if !cmd.Action.Valid() {
		return control.Command{}, fmt.Errorf("%w: %q", control.ErrUnknownAction, cmd.Action)
	}
	return cmd, nil
}

// Publish sends ev on the events subject.
func (b *Bridge) Publish(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("remote: encode event: %w", err)
	}
	if err := b.conn.Publish(b.EventSubject(), data); err != nil {
		return fmt.Errorf("remote: publish %s: %w", b.EventSubject(), err)
	}
	return nil
}

// Close closes the underlying connection.
func (b *Bridge) Close() {
	b.stop()
	b.conn.Close()
}
