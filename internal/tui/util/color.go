package util

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != ""
}

// Palette defines a small set of colors used across widgets.
type Palette struct {
	Primary   lipgloss.Color
	Success   lipgloss.Color
	Danger    lipgloss.Color
	Warning   lipgloss.Color
	Muted     lipgloss.Color
	MutedDark lipgloss.Color
}

// DefaultPalette returns the default palette.
func DefaultPalette() Palette {
	return Palette{
		Primary:   lipgloss.Color("#3D6DFF"),
		Success:   lipgloss.Color("#2AA876"),
		Danger:    lipgloss.Color("#D9534F"),
		Warning:   lipgloss.Color("#F0AD4E"),
		Muted:     lipgloss.Color("#6C757D"),
		MutedDark: lipgloss.Color("#5A5A5A"),
	}
}

// Styles are the shared text styles of the feed screens.
type Styles struct {
	Title     lipgloss.Style
	Selected  lipgloss.Style
	Faint     lipgloss.Style
	Highlight lipgloss.Style
	Error     lipgloss.Style
	Border    lipgloss.Style
	Indicator lipgloss.TerminalColor
}

// NewStyles builds Styles from the default palette, or plain styles when
// color is off.
func NewStyles(noColor bool) Styles {
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if NoColor(noColor) {
		return Styles{
			Title:     lipgloss.NewStyle().Bold(true),
			Selected:  lipgloss.NewStyle().Reverse(true),
			Faint:     lipgloss.NewStyle(),
			Highlight: lipgloss.NewStyle().Underline(true),
			Error:     lipgloss.NewStyle(),
			Border:    border,
		}
	}
	p := DefaultPalette()
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"}).Bold(true),
		Faint:     lipgloss.NewStyle().Faint(true),
		Highlight: lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "228", Dark: "94"}).Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}),
		Error:     lipgloss.NewStyle().Foreground(p.Danger),
		Border:    border.BorderForeground(p.Muted),
		Indicator: p.Primary,
	}
}
