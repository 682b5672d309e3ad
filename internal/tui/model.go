//go:build !ios && !android && (amd64 || arm64)

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/obinnaokechukwu/pmgo/control"
)

// Status is the render loop's view of the visualizer.
type Status struct {
	EngineID    string
	Version     string
	Position    int
	Count       int
	Preset      string
	Locked      bool
	Shuffle     bool
	FPS         float64
	Source      string
	LastFailure string
}

// Message types for the TUI.
type (
	// StatusMsg replaces the displayed status.
	StatusMsg Status

	// QuitMsg ends the program from outside, e.g. when the render loop stops.
	QuitMsg struct{}
)

// Model is the bubbletea model of the control panel.
type Model struct {
	width    int
	keyMap   KeyMap
	help     help.Model
	styles   Styles
	status   Status
	commands chan<- control.Command
	last     string
	quitting bool
}

// New returns a model that sends the commands bound to keys on commands.
// Sends never block; a full channel drops the command.
func New(commands chan<- control.Command) Model {
	return Model{
		keyMap:   DefaultKeyMap(),
		help:     help.New(),
		styles:   DefaultStyles(),
		commands: commands,
		status:   Status{Position: -1},
	}
}

// Status returns the last status received.
func (m Model) Status() Status { return m.status }

// Quitting reports whether quit was requested.
func (m Model) Quitting() bool { return m.quitting }

func (m Model) Init() tea.Cmd { return nil }

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case StatusMsg:
		m.status = Status(msg)
		return m, nil

	case QuitMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	for _, a := range m.keyMap.actions() {
		if key.Matches(msg, a.binding) {
			m.send(control.Command{Action: a.action})
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) send(cmd control.Command) {
	select {
	case m.commands <- cmd:
		m.last = cmd.String()
	default:
		m.last = cmd.String() + " (dropped)"
	}
}

// View renders the panel.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.styles
	st := m.status

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, s.Label.Render(label), s.Value.Render(value))
	}

	preset := "none"
	if st.Preset != "" {
		preset = filepath.Base(st.Preset)
	}
	position := "-"
	if st.Position >= 0 && st.Count > 0 {
		position = fmt.Sprintf("%d / %d", st.Position+1, st.Count)
	}

	lines := []string{
		s.Title.Render("pmgo") + " " + s.FlagOff.Render(st.Version),
		row("engine", st.EngineID),
		row("preset", s.Preset.Render(preset)),
		row("position", position),
		row("fps", fmt.Sprintf("%.1f", st.FPS)),
		row("audio", st.Source),
		row("flags", s.flag("locked", st.Locked)+"  "+s.flag("shuffle", st.Shuffle)),
	}
	if st.LastFailure != "" {
		lines = append(lines, row("failed", s.Failure.Render(st.LastFailure)))
	}
	if m.last != "" {
		lines = append(lines, row("input", s.LastInput.Render(m.last)))
	}

	body := s.Panel.Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(m.keyMap))
}
