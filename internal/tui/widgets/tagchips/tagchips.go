package tagchips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"infiniscroll/internal/tui/state"
	"infiniscroll/internal/tui/util"
)

// View renders status tags in a stable order using colored chips when
// possible and ASCII fallbacks when color is disabled or not desired.
func View(tags []state.Tag, noColor bool) string {
	if len(tags) == 0 {
		return ""
	}
	noColor = util.NoColor(noColor)

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, renderChip(t, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(t state.Tag, noColor bool) string {
	label := chipLabel(t)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(t).Render(label)
}

func chipLabel(t state.Tag) string {
	switch t.Kind {
	case state.PHASE:
		return strings.ToUpper(t.Label)
	case state.DRAGGING:
		return "Dragging"
	case state.FETCHING:
		return fmt.Sprintf("Fetching p%d", t.Value)
	case state.EXHAUSTED:
		return fmt.Sprintf("End %d", t.Value)
	case state.A11Y:
		return "A11y"
	case state.ERROR:
		return "Error"
	default:
		return "Tag"
	}
}

func chipStyle(t state.Tag) lipgloss.Style {
	p := util.DefaultPalette()
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	switch t.Kind {
	case state.PHASE:
		switch t.Label {
		case "idle":
			return base.Background(p.Muted)
		case "finishing":
			return base.Background(p.Success)
		default:
			return base.Background(p.Primary)
		}
	case state.DRAGGING:
		return base.Background(p.MutedDark)
	case state.FETCHING:
		return base.Background(p.Warning).Foreground(lipgloss.Color("#111111"))
	case state.EXHAUSTED:
		return base.Background(p.Success)
	case state.A11Y:
		return base.Background(p.Primary)
	case state.ERROR:
		return base.Background(p.Danger)
	default:
		return base
	}
}
