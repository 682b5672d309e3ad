//go:build !ios && !android && (amd64 || arm64)

// Package tui is the terminal status and control panel of the pmgo command.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#7571F9")
	ColorMuted     = lipgloss.Color("#606060")
	ColorText      = lipgloss.Color("#FAFAFA")
	ColorTextMuted = lipgloss.Color("#A0A0A0")
	ColorOn        = lipgloss.Color("#04B575")
	ColorWarn      = lipgloss.Color("#FFA500")
	ColorError     = lipgloss.Color("#FF5555")
)

// Styles contains all the styles used in the panel.
type Styles struct {
	Panel     lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Preset    lipgloss.Style
	FlagOn    lipgloss.Style
	FlagOff   lipgloss.Style
	Failure   lipgloss.Style
	LastInput lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Width(10),

		Value: lipgloss.NewStyle().
			Foreground(ColorText),

		Preset: lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true),

		FlagOn: lipgloss.NewStyle().
			Foreground(ColorOn).
			Bold(true),

		FlagOff: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Failure: lipgloss.NewStyle().
			Foreground(ColorError),

		LastInput: lipgloss.NewStyle().
			Foreground(ColorWarn),
	}
}

func (s Styles) flag(name string, on bool) string {
	if on {
		return s.FlagOn.Render(name)
	}
	return s.FlagOff.Render(name)
}
