package state

// FeedState holds cross-widget UI state used by the status bar, chips, help
// overlay and the feed model itself.
type FeedState struct {
	// Layout
	Width  int
	Height int

	// Scroll surface
	Horizontal    bool
	Accessibility bool
	Dragging      bool
	Offset        float64
	Trailing      float64 // trailing content inset in cells
	Phase         string  // scroll.Phase name

	// Feed progress
	Items     int
	Pages     int
	Fetching  bool
	Exhausted bool
	LastError string

	// Panels
	ShowHelp bool
	ShowLogs bool
	NoColor  bool

	// Notices and ephemeral messages
	Notice string
}
