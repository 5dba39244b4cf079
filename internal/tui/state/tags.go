package state

// TagKind enumerates the status chips shown under the feed.
type TagKind int

const (
	// Stable ordering for display: Phase, Dragging, Fetching, Exhausted, A11y, Error
	PHASE TagKind = iota
	DRAGGING
	FETCHING
	EXHAUSTED
	A11Y
	ERROR
)

// Tag represents a single status chip. Label carries the phase name for
// PHASE chips; Value carries a count where one applies.
type Tag struct {
	Kind  TagKind
	Label string
	Value int
}
