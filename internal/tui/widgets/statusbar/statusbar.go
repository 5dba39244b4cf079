package statusbar

import (
	"fmt"
	"strings"

	"infiniscroll/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting scroll and feed state.
func (StatusBar) View(s state.FeedState) string {
	axis := "V"
	if s.Horizontal {
		axis = "H"
	}
	pos := fmt.Sprintf("%s off:%g trail:%g", axis, s.Offset, s.Trailing)
	items := fmt.Sprintf("items:%d pages:%d", s.Items, s.Pages)
	size := fmt.Sprintf("%dx%d", s.Width, s.Height)

	parts := []string{pos, items, size}
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	return strings.Join(parts, "  ")
}
