package scroll

import "time"

// Host is the scroll surface the engine drives. All methods are called on the
// host's event loop; the engine never calls them from another goroutine.
type Host interface {
	ContentOffset() Point
	SetContentOffset(p Point, animated bool)
	ContentSize() Size
	Bounds() Size

	// ContentInset is the inset the engine writes to.
	ContentInset() Insets
	// AdjustedContentInset is ContentInset plus anything the host adds on top
	// (safe areas, sticky headers). Geometry is computed from it.
	AdjustedContentInset() Insets
	// SetContentInset changes the inset. The model value must be readable
	// through ContentInset right away; done (which may be nil) runs once the
	// change is on screen, with finished=false if another change replaced it.
	SetContentInset(in Insets, animated bool, done func(finished bool))

	// Dragging reports a user scroll gesture in progress.
	Dragging() bool
	// Velocity is the pan velocity along d. Negative values push the content
	// toward its end.
	Velocity(d Direction) float64
	// LayoutIfNeeded flushes deferred content-size updates.
	LayoutIfNeeded()

	AddIndicator(ind Indicator)
	RemoveIndicator(ind Indicator)

	// ObserveGestureEnd registers fn to run when a user scroll gesture ends.
	ObserveGestureEnd(fn func()) (cancel func())
	// After runs fn once on the event loop after d.
	After(d time.Duration, fn func()) (cancel func())
}

// Indicator is any view-like object that can spin and be hidden.
type Indicator interface {
	StartAnimating()
	StopAnimating()
	IsAnimating() bool
	SetHidden(hidden bool)
	Hidden() bool
	Size() Size
	Center() Point
	SetCenter(p Point)
}

// ItemScroller is implemented by list-like hosts that can scroll straight to
// their last element. ScrollToLastItem aligns the last item to the start of
// the viewport when reveal is set and to the end otherwise, and reports false
// when there is no item to scroll to.
type ItemScroller interface {
	ScrollToLastItem(reveal bool) bool
}

// AccessibilityScanner reports a system-driven scan (screen reader) that
// should be treated like a user gesture.
type AccessibilityScanner interface {
	AccessibilityScrolling() bool
}

// IndicatorMaker lets a host supply its own default indicator.
type IndicatorMaker interface {
	MakeIndicator(style string) Indicator
}
