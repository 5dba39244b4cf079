package feed

import (
	"fmt"

	"infiniscroll/internal/feedsrc"
	"infiniscroll/internal/tui/state"
	"infiniscroll/internal/tui/util"
	chips "infiniscroll/internal/tui/widgets/tagchips"
)

// Rows renders one line per item for the pane. Horizontal columns are
// narrow, so they drop the padded id.
func Rows(items []feedsrc.Item, horizontal bool) []string {
	out := make([]string, len(items))
	for i, it := range items {
		if horizontal {
			out[i] = fmt.Sprintf("#%d %s", it.ID, it.Title)
		} else {
			out[i] = fmt.Sprintf("%5d  %s", it.ID, it.Title)
		}
	}
	return out
}

// RenderTags is a thin adapter over the TagChips widget for the status area.
func RenderTags(s state.FeedState, noColor bool) string {
	return chips.View(util.ComputeTags(s), noColor)
}
