package scroll

import "math"

// emptyContentEpsilon covers hosts that report a length of 1 for empty
// content (grid and list containers do this on some platforms).
const emptyContentEpsilon = 1

// Geometry is a snapshot of everything the calculations below read from the
// host. The functions are pure so they can be tested without a host.
type Geometry struct {
	Direction     Direction
	ContentSize   Size
	Bounds        Size
	AdjustedInset Insets
	IndicatorSize Size
}

// OriginalTrailingInset is the trailing inset the host had before the engine
// started padding it.
func OriginalTrailingInset(g Geometry, st *ScrollState) float64 {
	return g.Direction.trailing(g.AdjustedInset) - st.ExtraEndInset - st.IndicatorInset
}

// ClampedContentLength never lets the content end fall inside the viewport,
// so the indicator is placed below the fold even for short content.
func ClampedContentLength(g Geometry, st *ScrollState) float64 {
	d := g.Direction
	minLength := d.length(g.Bounds) - d.leading(g.AdjustedInset) - OriginalTrailingInset(g, st)
	return math.Max(d.length(g.ContentSize), minLength)
}

// HasContent reports whether the content has any length on the axis.
func HasContent(g Geometry) bool {
	return g.Direction.length(g.ContentSize) > emptyContentEpsilon
}

// IndicatorFootprint is the length reserved for the indicator and its margins.
func IndicatorFootprint(g Geometry, st *ScrollState) float64 {
	return g.Direction.length(g.IndicatorSize) + 2*st.IndicatorMargin
}

// IndicatorCenter places the indicator in the middle of its footprint.
func IndicatorCenter(g Geometry, st *ScrollState) Point {
	d := g.Direction
	main := ClampedContentLength(g, st) + IndicatorFootprint(g, st)/2
	return d.point(main, d.crossLength(g.ContentSize)/2)
}

// ActionOffset is the offset past which scrolling toward the end begins
// loading.
func ActionOffset(g Geometry, st *ScrollState) float64 {
	d := g.Direction
	return ClampedContentLength(g, st) - d.length(g.Bounds) + OriginalTrailingInset(g, st) - st.TriggerOffset
}

// RevealRange returns the offset with the indicator just out of view (lo) and
// fully in view (hi).
func RevealRange(g Geometry, st *ScrollState) (lo, hi float64) {
	d := g.Direction
	lo = ClampedContentLength(g, st) - d.length(g.Bounds) + OriginalTrailingInset(g, st)
	return lo, lo + IndicatorFootprint(g, st)
}
