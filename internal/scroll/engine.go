// Package scroll implements infinite scrolling for any scroll surface that
// satisfies Host: it decides when to ask for more content, pads the trailing
// edge to make room for a loading indicator while the caller fetches, and puts
// the scroll position back when the caller is done.
package scroll

import "time"

// LoadDelay separates the end of the inset animation from the call to the
// load handler so that deceleration can settle first.
const LoadDelay = 100 * time.Millisecond

// Engine keeps one ScrollState per host. It is not safe for concurrent use;
// call it from the host's event loop only.
//
// A host's record outlives Detach so that settings survive a re-attach.
// Call Forget when the host itself is discarded.
type Engine struct {
	states map[Host]*ScrollState
	logf   func(format string, args ...any)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine diagnostics to fn.
func WithLogger(fn func(format string, args ...any)) Option {
	return func(e *Engine) { e.logf = fn }
}

// New returns an Engine with no hosts.
func New(opts ...Option) *Engine {
	e := &Engine{states: map[Host]*ScrollState{}}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) log(format string, args ...any) {
	if e.logf != nil {
		e.logf(format, args...)
	}
}

func (e *Engine) state(h Host) *ScrollState {
	st, ok := e.states[h]
	if !ok {
		st = newState()
		e.states[h] = st
	}
	return st
}

// State returns a copy of the state recorded for h.
func (e *Engine) State(h Host) (ScrollState, bool) {
	st, ok := e.states[h]
	if !ok {
		return ScrollState{}, false
	}
	return *st, true
}

// Attach enables infinite scroll on h. Calling it again only replaces the
// handler.
func (e *Engine) Attach(h Host, handler func(Host)) {
	st := e.state(h)
	st.OnLoadMore = handler
	if st.Initialized {
		return
	}
	st.gestureCancel = h.ObserveGestureEnd(func() { e.gestureEnded(h) })
	st.Initialized = true
	e.log("attach: %s", st.Direction)
}

// Detach disables infinite scroll on h and tears down a load in flight.
// It is safe to call on a host that was never attached.
func (e *Engine) Detach(h Host) {
	st, ok := e.states[h]
	if !ok || !st.Initialized {
		return
	}
	if st.gestureCancel != nil {
		st.gestureCancel()
		st.gestureCancel = nil
	}
	st.session++
	st.cancelPendingLoad()
	if st.Loading {
		in := st.Direction.growTrailing(h.ContentInset(), -(st.IndicatorInset + st.ExtraEndInset))
		st.IndicatorInset, st.ExtraEndInset = 0, 0
		h.SetContentInset(in, false, nil)
		st.Loading = false
		st.ScrollToStartWhenFinished = false
	}
	st.Phase = Idle
	if st.Indicator != nil {
		st.Indicator.StopAnimating()
		st.Indicator.SetHidden(true)
		if st.indicatorAdded {
			h.RemoveIndicator(st.Indicator)
		}
		st.Indicator = nil
		st.indicatorAdded = false
	}
	st.OnLoadMore = nil
	st.Initialized = false
	e.log("detach")
}

// Forget detaches h and drops its record, settings included.
func (e *Engine) Forget(h Host) {
	e.Detach(h)
	delete(e.states, h)
}

// SetDirection picks the axis watched and padded on h.
func (e *Engine) SetDirection(h Host, d Direction) {
	e.state(h).Direction = d
}

// SetIndicator replaces the indicator. The new one starts hidden.
func (e *Engine) SetIndicator(h Host, ind Indicator) {
	st := e.state(h)
	if ind != nil {
		ind.SetHidden(true)
	}
	if st.Indicator != nil && st.Indicator != ind && st.indicatorAdded {
		h.RemoveIndicator(st.Indicator)
		st.indicatorAdded = false
	}
	st.Indicator = ind
}

// SetIndicatorStyle names the style of the default indicator.
func (e *Engine) SetIndicatorStyle(h Host, style string) {
	e.state(h).IndicatorStyle = style
}

// SetIndicatorMargin sets the space kept on both sides of the indicator.
func (e *Engine) SetIndicatorMargin(h Host, margin float64) {
	e.state(h).IndicatorMargin = margin
}

// SetTriggerOffset stores the absolute value of offset.
func (e *Engine) SetTriggerOffset(h Host, offset float64) {
	if offset < 0 {
		offset = -offset
	}
	e.state(h).TriggerOffset = offset
}

// SetShouldTrigger installs a gate consulted before every begin. nil allows
// all.
func (e *Engine) SetShouldTrigger(h Host, fn func(Host) bool) {
	e.state(h).ShouldTrigger = fn
}

// IsLoading reports whether h is between Begin and the end of Finish.
func (e *Engine) IsLoading(h Host) bool {
	st, ok := e.states[h]
	return ok && st.Loading
}

// geometry snapshots h for the calculator.
func (e *Engine) geometry(h Host, st *ScrollState) Geometry {
	g := Geometry{
		Direction:     st.Direction,
		ContentSize:   h.ContentSize(),
		Bounds:        h.Bounds(),
		AdjustedInset: h.AdjustedContentInset(),
	}
	if st.Indicator != nil {
		g.IndicatorSize = st.Indicator.Size()
	}
	return g
}

func (e *Engine) indicator(h Host, st *ScrollState) Indicator {
	if st.Indicator == nil {
		var ind Indicator
		if mk, ok := h.(IndicatorMaker); ok {
			ind = mk.MakeIndicator(st.IndicatorStyle)
		}
		if ind == nil {
			ind = newBoxIndicator()
		}
		ind.SetHidden(true)
		st.Indicator = ind
	}
	if !st.indicatorAdded {
		h.AddIndicator(st.Indicator)
		st.indicatorAdded = true
	}
	return st.Indicator
}

func (e *Engine) positionIndicator(h Host, st *ScrollState) {
	if st.Indicator == nil {
		return
	}
	c := IndicatorCenter(e.geometry(h, st), st)
	if st.Indicator.Center() != c {
		st.Indicator.SetCenter(c)
	}
}
