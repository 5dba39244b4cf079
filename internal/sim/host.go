// Package sim provides a deterministic scroll.Host driven by a manual clock.
// It backs the engine tests and the replay command.
package sim

import (
	"math"
	"time"

	"infiniscroll/internal/scroll"
)

// AnimationDuration is how long an animated inset change takes to complete.
const AnimationDuration = 350 * time.Millisecond

// Observer receives the host notifications; *scroll.Engine satisfies it.
type Observer interface {
	ContentOffsetChanged(h scroll.Host)
	ContentSizeChanged(h scroll.Host)
}

type Host struct {
	Observer Observer
	Axis     scroll.Direction
	// ItemScrolling makes the host behave like a list that can scroll
	// straight to its last row.
	ItemScrolling bool
	// ItemLength is the row length used by ScrollToLastItem.
	ItemLength float64

	clock *Clock

	offset   scroll.Point
	content  scroll.Size
	bounds   scroll.Size
	inset    scroll.Insets
	safeArea scroll.Insets

	dragging bool
	velocity float64
	a11y     bool

	indicators []scroll.Indicator
	gestureObs map[int]func()
	gestureSeq int

	insetTimer  *timer
	insetDone   func(bool)
	layoutCalls int
	offsetLog   []OffsetChange
}

// OffsetChange records a programmatic offset change.
type OffsetChange struct {
	At       time.Duration
	To       scroll.Point
	Animated bool
}

// NewHost returns a host with the given viewport size.
func NewHost(width, height float64) *Host {
	return &Host{
		clock:      NewClock(),
		bounds:     scroll.Size{Width: width, Height: height},
		content:    scroll.Size{Width: width},
		gestureObs: map[int]func(){},
	}
}

func (h *Host) Clock() *Clock { return h.clock }

// Advance moves the clock forward and fires due timers.
func (h *Host) Advance(d time.Duration) { h.clock.Advance(d) }

func (h *Host) ContentOffset() scroll.Point { return h.offset }

func (h *Host) SetContentOffset(p scroll.Point, animated bool) {
	h.offsetLog = append(h.offsetLog, OffsetChange{At: h.clock.Now(), To: p, Animated: animated})
	h.setOffset(p)
}

func (h *Host) setOffset(p scroll.Point) {
	h.offset = p
	if h.Observer != nil {
		h.Observer.ContentOffsetChanged(h)
	}
}

// OffsetChanges lists every programmatic offset change so far.
func (h *Host) OffsetChanges() []OffsetChange { return h.offsetLog }

func (h *Host) ContentSize() scroll.Size { return h.content }

// SetContentLength sets the content length along Axis and notifies the
// observer.
func (h *Host) SetContentLength(n float64) {
	if h.Axis == scroll.Horizontal {
		h.content = scroll.Size{Width: n, Height: h.bounds.Height}
	} else {
		h.content = scroll.Size{Width: h.bounds.Width, Height: n}
	}
	if h.Observer != nil {
		h.Observer.ContentSizeChanged(h)
	}
}

// SetItems sets the content to n rows of ItemLength.
func (h *Host) SetItems(n int) {
	h.SetContentLength(float64(n) * h.ItemLength)
}

func (h *Host) Bounds() scroll.Size { return h.bounds }

func (h *Host) SetBounds(s scroll.Size) { h.bounds = s }

func (h *Host) ContentInset() scroll.Insets { return h.inset }

func (h *Host) AdjustedContentInset() scroll.Insets {
	return scroll.Insets{
		Top:    h.inset.Top + h.safeArea.Top,
		Left:   h.inset.Left + h.safeArea.Left,
		Bottom: h.inset.Bottom + h.safeArea.Bottom,
		Right:  h.inset.Right + h.safeArea.Right,
	}
}

// SetSafeArea sets the extra inset reported by AdjustedContentInset only.
func (h *Host) SetSafeArea(in scroll.Insets) { h.safeArea = in }

func (h *Host) SetContentInset(in scroll.Insets, animated bool, done func(bool)) {
	h.inset = in
	if h.insetTimer != nil {
		h.insetTimer.cancel()
		h.insetTimer = nil
		if prev := h.insetDone; prev != nil {
			h.insetDone = nil
			prev(false)
		}
	}
	if !animated {
		if done != nil {
			done(true)
		}
		return
	}
	h.insetDone = done
	h.insetTimer = h.clock.after(AnimationDuration, func() {
		h.insetTimer = nil
		fn := h.insetDone
		h.insetDone = nil
		if fn != nil {
			fn(true)
		}
	})
}

// Animating reports an inset animation in flight.
func (h *Host) Animating() bool { return h.insetTimer != nil }

func (h *Host) Dragging() bool { return h.dragging }

func (h *Host) Velocity(d scroll.Direction) float64 {
	if d != h.Axis {
		return 0
	}
	return h.velocity
}

// Drag moves the offset along Axis as a user gesture would. velocity follows
// pan conventions: negative pushes toward the end.
func (h *Host) Drag(to, velocity float64) {
	h.dragging = true
	h.velocity = velocity
	p := h.offset
	if h.Axis == scroll.Horizontal {
		p.X = to
	} else {
		p.Y = to
	}
	h.setOffset(p)
}

// Release ends the gesture started by Drag.
func (h *Host) Release() {
	h.dragging = false
	h.velocity = 0
	for i := 0; i <= h.gestureSeq; i++ {
		if fn, ok := h.gestureObs[i]; ok {
			fn()
		}
	}
}

// SetAccessibilityScrolling toggles the screen-reader scan flag.
func (h *Host) SetAccessibilityScrolling(on bool) { h.a11y = on }

func (h *Host) AccessibilityScrolling() bool { return h.a11y }

func (h *Host) LayoutIfNeeded() { h.layoutCalls++ }

// LayoutCalls counts LayoutIfNeeded calls.
func (h *Host) LayoutCalls() int { return h.layoutCalls }

func (h *Host) AddIndicator(ind scroll.Indicator) {
	h.indicators = append(h.indicators, ind)
}

func (h *Host) RemoveIndicator(ind scroll.Indicator) {
	for i, x := range h.indicators {
		if x == ind {
			h.indicators = append(h.indicators[:i], h.indicators[i+1:]...)
			return
		}
	}
}

func (h *Host) Indicators() []scroll.Indicator { return h.indicators }

func (h *Host) ObserveGestureEnd(fn func()) func() {
	h.gestureSeq++
	id := h.gestureSeq
	h.gestureObs[id] = fn
	return func() { delete(h.gestureObs, id) }
}

// GestureObservers counts registered gesture-end observers.
func (h *Host) GestureObservers() int { return len(h.gestureObs) }

func (h *Host) After(d time.Duration, fn func()) func() {
	t := h.clock.after(d, fn)
	return t.cancel
}

// ScrollToLastItem behaves like a table scrolling its last row to the top
// (reveal) or bottom of the visible area, clamped to the scrollable range.
func (h *Host) ScrollToLastItem(reveal bool) bool {
	if !h.ItemScrolling || h.ItemLength <= 0 {
		return false
	}
	n := math.Floor(h.mainLength(h.content) / h.ItemLength)
	if n < 1 {
		return false
	}
	adj := h.AdjustedContentInset()
	lead, trail := adj.Top, adj.Bottom
	if h.Axis == scroll.Horizontal {
		lead, trail = adj.Left, adj.Right
	}
	viewport := h.mainLength(h.bounds)
	start := (n - 1) * h.ItemLength
	target := start - lead
	if !reveal {
		target = start + h.ItemLength - viewport + trail
	}
	lo := -lead
	hi := math.Max(lo, h.mainLength(h.content)+trail-viewport)
	target = math.Min(math.Max(target, lo), hi)

	p := h.offset
	if h.Axis == scroll.Horizontal {
		p.X = target
	} else {
		p.Y = target
	}
	h.SetContentOffset(p, true)
	return true
}

func (h *Host) mainLength(s scroll.Size) float64 {
	if h.Axis == scroll.Horizontal {
		return s.Width
	}
	return s.Height
}

var (
	_ scroll.Host                 = (*Host)(nil)
	_ scroll.ItemScroller         = (*Host)(nil)
	_ scroll.AccessibilityScanner = (*Host)(nil)
)
