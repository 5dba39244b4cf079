package scroll

// Begin starts loading without looking at the scroll position. The
// ShouldTrigger gate still applies. With force set the indicator is scrolled
// into view even when it is already visible.
func (e *Engine) Begin(h Host, force bool) {
	st, ok := e.states[h]
	if !ok || !st.Initialized {
		return
	}
	e.begin(h, st, force)
}

// Finish ends the current load and calls done once the trailing inset is
// back to what the host had before. It does nothing unless a load is in
// flight.
//
// Callers must call Finish exactly once per load handler invocation. Until
// they do the indicator stays on screen and no further load is triggered.
func (e *Engine) Finish(h Host, done func(Host)) {
	st, ok := e.states[h]
	if !ok || !st.Loading {
		return
	}
	// deferred content-size updates would make the offset drift after the
	// inset shrinks
	h.LayoutIfNeeded()
	e.finish(h, st, done)
}

func (e *Engine) begin(h Host, st *ScrollState, force bool) {
	if st.Loading {
		return
	}
	if st.ShouldTrigger != nil && !st.ShouldTrigger(h) {
		e.log("begin: vetoed")
		return
	}
	st.Phase = Starting

	ind := e.indicator(h, st)
	e.positionIndicator(h, st)
	ind.SetHidden(false)
	ind.StartAnimating()

	g := e.geometry(h, st)
	clamped := ClampedContentLength(g, st)
	footprint := IndicatorFootprint(g, st)
	extra := clamped - st.Direction.length(g.ContentSize)

	in := st.Direction.growTrailing(h.ContentInset(), footprint+extra)
	st.IndicatorInset = footprint
	st.ExtraEndInset = extra
	st.Loading = true
	st.ScrollToStartWhenFinished = !HasContent(g)
	st.session++
	session := st.session
	e.log("begin: inset +%.1f extra +%.1f force=%t", footprint, extra, force)

	h.SetContentInset(in, true, func(finished bool) {
		if st.session != session {
			return
		}
		st.Phase = Loading
		if finished {
			e.scrollToIndicatorIfNeeded(h, st, true, force)
		}
		st.pendingLoad = h.After(LoadDelay, func() {
			st.pendingLoad = nil
			if st.session != session || !st.Loading {
				return
			}
			if st.OnLoadMore != nil {
				e.log("load: calling handler")
				st.OnLoadMore(h)
			}
		})
	})
}

func (e *Engine) finish(h Host, st *ScrollState, done func(Host)) {
	st.cancelPendingLoad()
	st.Phase = Finishing
	st.session++
	session := st.session

	in := st.Direction.growTrailing(h.ContentInset(), -(st.IndicatorInset + st.ExtraEndInset))
	st.IndicatorInset = 0
	st.ExtraEndInset = 0
	e.log("finish: toStart=%t", st.ScrollToStartWhenFinished)

	h.SetContentInset(in, true, func(finished bool) {
		if st.session != session {
			return
		}
		if st.ScrollToStartWhenFinished {
			e.scrollToStart(h, st)
		} else if finished {
			e.scrollToIndicatorIfNeeded(h, st, false, false)
		}
		if st.Indicator != nil {
			st.Indicator.StopAnimating()
			st.Indicator.SetHidden(true)
		}
		st.Loading = false
		st.Phase = Idle
		st.ScrollToStartWhenFinished = false
		if done != nil {
			done(h)
		}
	})
}

// scrollToIndicatorIfNeeded scrolls so the indicator is fully visible
// (reveal) or just out of view when the offset sits inside its footprint.
func (e *Engine) scrollToIndicatorIfNeeded(h Host, st *ScrollState, reveal, force bool) {
	// never fight the user's finger
	if h.Dragging() {
		return
	}
	if !st.Loading {
		return
	}
	h.LayoutIfNeeded()

	g := e.geometry(h, st)
	lo, hi := RevealRange(g, st)
	offset := h.ContentOffset()
	cur := st.Direction.main(offset)
	if !(cur > lo && cur < hi) && !force {
		return
	}
	// item scrolling copes with self-sizing content better than raw offsets
	if is, ok := h.(ItemScroller); ok && is.ScrollToLastItem(reveal) {
		return
	}
	target := lo
	if reveal {
		target = hi
	}
	h.SetContentOffset(st.Direction.withMain(offset, target), true)
}

func (e *Engine) scrollToStart(h Host, st *ScrollState) {
	offset := h.ContentOffset()
	lead := st.Direction.leading(h.AdjustedContentInset())
	h.SetContentOffset(st.Direction.withMain(offset, -lead), true)
}
