package state

import "fmt"

// ToggleDirection flips the scroll axis and sets a brief notice.
func ToggleDirection(s FeedState) FeedState {
	s.Horizontal = !s.Horizontal
	if s.Horizontal {
		s.Notice = "horizontal"
	} else {
		s.Notice = "vertical"
	}
	return s
}

func ToggleAccessibility(s FeedState) FeedState {
	s.Accessibility = !s.Accessibility
	if s.Accessibility {
		s.Notice = "accessibility scan on"
	} else {
		s.Notice = "accessibility scan off"
	}
	return s
}

// ToggleHelp shows or hides the help overlay. Help and logs never share the
// screen.
func ToggleHelp(s FeedState) FeedState {
	s.ShowHelp = !s.ShowHelp
	if s.ShowHelp {
		s.ShowLogs = false
	}
	return s
}

func ToggleLogs(s FeedState) FeedState {
	s.ShowLogs = !s.ShowLogs
	if s.ShowLogs {
		s.ShowHelp = false
	}
	return s
}

// Resize updates the terminal size.
func Resize(s FeedState, width, height int) FeedState {
	s.Width = width
	s.Height = height
	return s
}

// FetchStarted marks a page request in flight.
func FetchStarted(s FeedState) FeedState {
	s.Fetching = true
	s.LastError = ""
	return s
}

// PageLoaded records a page of n items. done marks the source exhausted.
func PageLoaded(s FeedState, n int, done bool) FeedState {
	s.Fetching = false
	s.Items += n
	s.Pages++
	s.Exhausted = done
	if done {
		s.Notice = fmt.Sprintf("end of feed (%d items)", s.Items)
	} else {
		s.Notice = fmt.Sprintf("page %d: +%d", s.Pages, n)
	}
	return s
}

// PageFailed keeps the feed retryable.
func PageFailed(s FeedState, err error) FeedState {
	s.Fetching = false
	s.LastError = err.Error()
	s.Notice = "fetch failed: " + err.Error()
	return s
}

// ResetFeed clears progress but keeps layout and panel toggles.
func ResetFeed(s FeedState) FeedState {
	s.Items = 0
	s.Pages = 0
	s.Fetching = false
	s.Exhausted = false
	s.LastError = ""
	s.Offset = 0
	s.Trailing = 0
	s.Notice = "reset"
	return s
}
