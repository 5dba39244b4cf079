package scroll

// ContentOffsetChanged must be called by the host adapter after every change
// of the content offset, programmatic or not.
func (e *Engine) ContentOffsetChanged(h Host) {
	st, ok := e.states[h]
	if !ok || !st.Initialized {
		return
	}
	// programmatic scrolling never triggers a load
	if !h.Dragging() && !accessibilityScrolling(h) {
		return
	}
	if st.Loading {
		return
	}
	g := e.geometry(h, st)
	action := ActionOffset(g, st)
	offset := st.Direction.main(h.ContentOffset())
	if offset > action && h.Velocity(st.Direction) <= 0 {
		e.log("trigger: offset %.1f > %.1f", offset, action)
		e.begin(h, st, false)
	}
}

// ContentSizeChanged must be called by the host adapter after the content
// size changes. It keeps the indicator glued to the end of content.
func (e *Engine) ContentSizeChanged(h Host) {
	st, ok := e.states[h]
	if !ok || !st.Initialized {
		return
	}
	e.positionIndicator(h, st)
}

func (e *Engine) gestureEnded(h Host) {
	st, ok := e.states[h]
	if !ok || !st.Initialized {
		return
	}
	e.scrollToIndicatorIfNeeded(h, st, true, false)
}

func accessibilityScrolling(h Host) bool {
	a, ok := h.(AccessibilityScanner)
	return ok && a.AccessibilityScrolling()
}
