//go:build !ios && !android && (amd64 || arm64)

package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/obinnaokechukwu/pmgo/control"
)

// KeyMap defines the key bindings.
type KeyMap struct {
	Next       key.Binding
	Previous   key.Binding
	Last       key.Binding
	Random     key.Binding
	ToggleLock key.Binding
	Shuffle    key.Binding
	DebugImage key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "prev"),
		),
		Last: key.NewBinding(
			key.WithKeys("b", "backspace"),
			key.WithHelp("b", "back"),
		),
		Random: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "random"),
		),
		ToggleLock: key.NewBinding(
			key.WithKeys("l", " "),
			key.WithHelp("l", "lock"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shuffle"),
		),
		DebugImage: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "snapshot"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// actions maps bindings to the command they emit.
func (k KeyMap) actions() []struct {
	binding key.Binding
	action  control.Action
} {
	return []struct {
		binding key.Binding
		action  control.Action
	}{
		{k.Next, control.ActionNext},
		{k.Previous, control.ActionPrevious},
		{k.Last, control.ActionLast},
		{k.Random, control.ActionRandom},
		{k.ToggleLock, control.ActionToggleLock},
		{k.Shuffle, control.ActionShuffle},
		{k.DebugImage, control.ActionDebugImage},
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Random, k.ToggleLock, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.Last, k.Random},
		{k.ToggleLock, k.Shuffle, k.DebugImage},
		{k.Help, k.Quit},
	}
}
