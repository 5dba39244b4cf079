package helpoverlay

import (
	"fmt"
	"strings"

	"infiniscroll/internal/tui/state"
)

type HelpOverlay struct{}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{} }

// View returns grouped keys help with the current axis indicated.
func (HelpOverlay) View(s state.FeedState) string {
	axis := "vertical"
	if s.Horizontal {
		axis = "horizontal"
	}
	sections := []struct {
		title string
		keys  []string
	}{
		{"Scroll", []string{"j/↓/→: forward", "k/↑/←: back", "PgUp/PgDn/space: page", "g/G: start/end", "wheel: scroll"}},
		{"Loading", []string{"b: begin loading", "B: begin and reveal", "r: reset feed"}},
		{"Surface", []string{"d: toggle direction", "a: accessibility scan", "y: copy geometry"}},
		{"Logs", []string{"l: show/hide", "/: search", "n/N: next/prev match", "f: freeze", "S: save", "w: wrap", "[/]: scroll"}},
		{"App", []string{"?: help", "q: quit"}},
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Axis: %s)\n", axis)
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s:\n", sec.title)
		for _, k := range sec.keys {
			fmt.Fprintf(&b, "  %s\n", k)
		}
	}
	return b.String()
}
