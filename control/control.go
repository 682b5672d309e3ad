//go:build !ios && !android && (amd64 || arm64)

// Package control turns user and remote commands into engine and playlist
// calls. Commands are applied on the goroutine that owns the render loop.
package control

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/obinnaokechukwu/pmgo"
)

// Action names a command.
type Action string

const (
	ActionNext       Action = "next"
	ActionPrevious   Action = "prev"
	ActionLast       Action = "last"
	ActionRandom     Action = "random"
	ActionLock       Action = "lock"
	ActionUnlock     Action = "unlock"
	ActionToggleLock Action = "toggle-lock"
	ActionShuffle    Action = "shuffle"
	ActionDebugImage Action = "debug-image"
	ActionPosition   Action = "position"
)

// Actions lists every known action.
var Actions = []Action{
	ActionNext, ActionPrevious, ActionLast, ActionRandom,
	ActionLock, ActionUnlock, ActionToggleLock,
	ActionShuffle, ActionDebugImage, ActionPosition,
}

var (
	ErrUnknownAction = errors.New("control: unknown action")
	ErrInvalidValue  = errors.New("control: invalid value")
)

// Command is one request. Value carries the index for position, the output
// path for debug-image and an optional on/off for shuffle.
type Command struct {
	Action Action `json:"action"`
	Value  string `json:"value,omitempty"`
}

func (c Command) String() string {
	if c.Value == "" {
		return string(c.Action)
	}
	return string(c.Action) + " " + c.Value
}

// Parse reads the "action [value]" text form.
func Parse(s string) (Command, error) {
	fields := strings.SplitN(strings.TrimSpace(s), " ", 2)
	cmd := Command{Action: Action(strings.ToLower(fields[0]))}
	if len(fields) == 2 {
		cmd.Value = strings.TrimSpace(fields[1])
	}
	if !cmd.Action.Valid() {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownAction, fields[0])
	}
	return cmd, nil
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

// Target is what commands act on.
type Target interface {
	PlayNext() (int, error)
	PlayPrevious() (int, error)
	PlayLast() (int, error)
	PlayRandom() (int, error)
	SetPosition(index int, hardCut bool) (int, error)
	Shuffle() (bool, error)
	SetShuffle(enabled bool) error
	PresetLocked() (bool, error)
	SetPresetLocked(locked bool) error
	WriteDebugImageOnNextFrame(path string) error
}

// ErrNoPlaylist is returned by Deck navigation when no playlist is attached,
// which happens when the playlist library is not installed.
var ErrNoPlaylist = errors.New("control: no playlist")

// Deck joins an engine with its optional playlist to form a Target.
type Deck struct {
	Engine   *pmgo.Engine
	Playlist *pmgo.Playlist
}

var _ Target = Deck{}

func (d Deck) playlist() (*pmgo.Playlist, error) {
	if d.Playlist == nil {
		return nil, ErrNoPlaylist
	}
	return d.Playlist, nil
}

func (d Deck) navigate(move func(*pmgo.Playlist) (int, error)) (int, error) {
	pl, err := d.playlist()
	if err != nil {
		return 0, err
	}
	return move(pl)
}

func (d Deck) PlayNext() (int, error) { return d.navigate((*pmgo.Playlist).PlayNext) }

func (d Deck) PlayPrevious() (int, error) { return d.navigate((*pmgo.Playlist).PlayPrevious) }

func (d Deck) PlayLast() (int, error) { return d.navigate((*pmgo.Playlist).PlayLast) }

func (d Deck) PlayRandom() (int, error) { return d.navigate((*pmgo.Playlist).PlayRandom) }

func (d Deck) SetPosition(index int, hardCut bool) (int, error) {
	return d.navigate(func(pl *pmgo.Playlist) (int, error) {
		return pl.SetPosition(index, hardCut)
	})
}

func (d Deck) Shuffle() (bool, error) {
	pl, err := d.playlist()
	if err != nil {
		return false, err
	}
	return pl.Shuffle()
}

func (d Deck) SetShuffle(on bool) error {
	pl, err := d.playlist()
	if err != nil {
		return err
	}
	return pl.SetShuffle(on)
}

func (d Deck) PresetLocked() (bool, error) { return d.Engine.PresetLocked() }

func (d Deck) SetPresetLocked(locked bool) error {
	return d.Engine.SetPresetLocked(locked)
}

func (d Deck) WriteDebugImageOnNextFrame(path string) error {
	return d.Engine.WriteDebugImageOnNextFrame(path)
}

// Result describes the state after a command.
type Result struct {
	// Position is the playlist index after a navigation command, or -1.
	Position int
	// Locked and Shuffle are set by the commands that change them.
	Locked  *bool
	Shuffle *bool
}

// Apply runs cmd against t.
func Apply(cmd Command, t Target) (Result, error) {
	res := Result{Position: -1}
	var err error

	switch cmd.Action {
	case ActionNext:
		res.Position, err = t.PlayNext()
	case ActionPrevious:
		res.Position, err = t.PlayPrevious()
	case ActionLast:
		res.Position, err = t.PlayLast()
	case ActionRandom:
		res.Position, err = t.PlayRandom()
	case ActionPosition:
		idx, perr := strconv.Atoi(cmd.Value)
		if perr != nil || idx < 0 {
			return res, fmt.Errorf("%w: position %q", ErrInvalidValue, cmd.Value)
		}
		res.Position, err = t.SetPosition(idx, true)
	case ActionLock, ActionUnlock, ActionToggleLock:
		locked := cmd.Action == ActionLock
		if cmd.Action == ActionToggleLock {
			cur, gerr := t.PresetLocked()
			if gerr != nil {
				return res, gerr
			}
			locked = !cur
		}
		if err = t.SetPresetLocked(locked); err == nil {
			res.Locked = &locked
		}
	case ActionShuffle:
		on, perr := shuffleValue(cmd.Value, t)
		if perr != nil {
			return res, perr
		}
		if err = t.SetShuffle(on); err == nil {
			res.Shuffle = &on
		}
	case ActionDebugImage:
		err = t.WriteDebugImageOnNextFrame(cmd.Value)
	default:
		return res, fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}

	if err != nil {
		res.Position = -1
		return res, fmt.Errorf("control: %s: %w", cmd.Action, err)
	}
	return res, nil
}

// shuffleValue parses an explicit on/off or toggles the current state.
func shuffleValue(v string, t Target) (bool, error) {
	switch strings.ToLower(v) {
	case "":
		cur, err := t.Shuffle()
		return !cur, err
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: shuffle %q", ErrInvalidValue, v)
}
