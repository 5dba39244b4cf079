package util

import (
	"infiniscroll/internal/tui/state"
)

// ComputeTags derives the status chips for a feed.
//
// The returned slice preserves a stable order:
//   Phase, Dragging, Fetching, Exhausted, A11y, Error
//
// Rules:
// - Phase is always present; an empty phase reads as idle.
// - Fetching carries the number of the page being requested.
// - Exhausted carries the final item count.
// - Error is present only while the last fetch failed.
func ComputeTags(s state.FeedState) []state.Tag {
	tags := make([]state.Tag, 0, 6)

	phase := s.Phase
	if phase == "" {
		phase = "idle"
	}
	tags = append(tags, state.Tag{Kind: state.PHASE, Label: phase})

	if s.Dragging {
		tags = append(tags, state.Tag{Kind: state.DRAGGING})
	}
	if s.Fetching {
		tags = append(tags, state.Tag{Kind: state.FETCHING, Value: s.Pages + 1})
	}
	if s.Exhausted {
		tags = append(tags, state.Tag{Kind: state.EXHAUSTED, Value: s.Items})
	}
	if s.Accessibility {
		tags = append(tags, state.Tag{Kind: state.A11Y})
	}
	if s.LastError != "" {
		tags = append(tags, state.Tag{Kind: state.ERROR})
	}
	return tags
}
