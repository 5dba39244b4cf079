package scroll

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func vertical(content, viewport float64, in Insets) Geometry {
	return Geometry{
		Direction:     Vertical,
		ContentSize:   Size{Width: 320, Height: content},
		Bounds:        Size{Width: 320, Height: viewport},
		AdjustedInset: in,
		IndicatorSize: Size{Width: 20, Height: 20},
	}
}

func TestClampedContentLengthLowerBound(t *testing.T) {
	cases := []struct {
		name    string
		content float64
		inset   Insets
		st      ScrollState
	}{
		{"empty", 0, Insets{}, ScrollState{}},
		{"empty with insets", 0, Insets{Top: 64, Bottom: 49}, ScrollState{}},
		{"short", 120, Insets{Top: 20}, ScrollState{}},
		{"long", 2000, Insets{Top: 20, Bottom: 10}, ScrollState{}},
		{"padded while loading", 50, Insets{Bottom: 10 + 40 + 250}, ScrollState{IndicatorInset: 40, ExtraEndInset: 250}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := vertical(tc.content, 300, tc.inset)
			got := ClampedContentLength(g, &tc.st)
			floor := 300 - tc.inset.Top - OriginalTrailingInset(g, &tc.st)
			require.GreaterOrEqual(t, got, floor)
			require.GreaterOrEqual(t, got, tc.content)
		})
	}
}

func TestOriginalTrailingInsetStripsEnginePadding(t *testing.T) {
	st := &ScrollState{IndicatorInset: 44, ExtraEndInset: 100}
	g := vertical(0, 300, Insets{Bottom: 15 + 44 + 100})
	require.Equal(t, 15.0, OriginalTrailingInset(g, st))
}

func TestHasContentEpsilon(t *testing.T) {
	require.False(t, HasContent(vertical(0, 300, Insets{})))
	require.False(t, HasContent(vertical(1, 300, Insets{})))
	require.True(t, HasContent(vertical(1.5, 300, Insets{})))

	g := Geometry{Direction: Horizontal, ContentSize: Size{Width: 0, Height: 500}}
	require.False(t, HasContent(g), "only the active axis counts")
}

func TestIndicatorFootprintAndCenter(t *testing.T) {
	st := &ScrollState{IndicatorMargin: DefaultIndicatorMargin}
	g := vertical(500, 300, Insets{})
	require.Equal(t, 42.0, IndicatorFootprint(g, st))
	require.Equal(t, Point{X: 160, Y: 521}, IndicatorCenter(g, st))

	// short content: the indicator sits below the viewport, not inside it
	g = vertical(100, 300, Insets{Top: 20})
	require.Equal(t, Point{X: 160, Y: 280 + 21}, IndicatorCenter(g, st))
}

func TestIndicatorCenterHorizontal(t *testing.T) {
	st := &ScrollState{IndicatorMargin: 5}
	g := Geometry{
		Direction:     Horizontal,
		ContentSize:   Size{Width: 800, Height: 60},
		Bounds:        Size{Width: 300, Height: 60},
		IndicatorSize: Size{Width: 10, Height: 10},
	}
	require.Equal(t, Point{X: 810, Y: 30}, IndicatorCenter(g, st))
}

func TestActionOffset(t *testing.T) {
	st := &ScrollState{TriggerOffset: 50}
	require.Equal(t, 150.0, ActionOffset(vertical(500, 300, Insets{}), st))
	require.Equal(t, 175.0, ActionOffset(vertical(500, 300, Insets{Bottom: 25}), st))
}

func TestRevealRange(t *testing.T) {
	st := &ScrollState{IndicatorMargin: 11, IndicatorInset: 42}
	g := vertical(500, 300, Insets{Bottom: 42})
	lo, hi := RevealRange(g, st)
	require.Equal(t, 200.0, lo)
	require.Equal(t, 242.0, hi)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("h")
	require.NoError(t, err)
	require.Equal(t, Horizontal, d)
	d, err = ParseDirection("")
	require.NoError(t, err)
	require.Equal(t, Vertical, d)
	_, err = ParseDirection("diagonal")
	require.Error(t, err)
}
