package scroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"infiniscroll/internal/scroll"
	"infiniscroll/internal/sim"
)

// settle covers the inset animation plus the handler delay.
const settle = sim.AnimationDuration + scroll.LoadDelay

type harness struct {
	e     *scroll.Engine
	h     *sim.Host
	calls int
}

func newHarness(t *testing.T, content float64) *harness {
	t.Helper()
	hs := &harness{e: scroll.New(), h: sim.NewHost(320, 300)}
	hs.h.Observer = hs.e
	hs.h.SetContentLength(content)
	hs.e.Attach(hs.h, func(scroll.Host) { hs.calls++ })
	return hs
}

func (hs *harness) state(t *testing.T) scroll.ScrollState {
	t.Helper()
	st, ok := hs.e.State(hs.h)
	require.True(t, ok)
	return st
}

type testIndicator struct {
	size      scroll.Size
	center    scroll.Point
	hidden    bool
	animating bool
}

func (i *testIndicator) StartAnimating() { i.animating = true }
func (i *testIndicator) StopAnimating() { i.animating = false }
func (i *testIndicator) IsAnimating() bool { return i.animating }
func (i *testIndicator) SetHidden(hidden bool) { i.hidden = hidden }
func (i *testIndicator) Hidden() bool { return i.hidden }
func (i *testIndicator) Size() scroll.Size { return i.size }
func (i *testIndicator) Center() scroll.Point { return i.center }
func (i *testIndicator) SetCenter(p scroll.Point) { i.center = p }

func TestTriggerOffsetStoredAsAbsoluteValue(t *testing.T) {
	hs := newHarness(t, 500)
	for _, in := range []float64{0, 5, -5, 12.5, -12.5, -300} {
		hs.e.SetTriggerOffset(hs.h, in)
		want := in
		if want < 0 {
			want = -want
		}
		require.Equal(t, want, hs.state(t).TriggerOffset, "input %v", in)
	}
}

func TestTriggerFiresPastActionOffset(t *testing.T) {
	hs := newHarness(t, 500)
	hs.e.SetTriggerOffset(hs.h, 50)

	// 500 - 300 + 0 - 50
	hs.h.Drag(150, -10)
	require.False(t, hs.e.IsLoading(hs.h), "offset must exceed the action offset")

	hs.h.Drag(151, -10)
	require.True(t, hs.e.IsLoading(hs.h))
	require.Equal(t, scroll.Starting, hs.state(t).Phase)
}

func TestTriggerRespectsOriginalTrailingInset(t *testing.T) {
	hs := newHarness(t, 500)
	hs.h.SetSafeArea(scroll.Insets{Bottom: 34})
	hs.e.SetTriggerOffset(hs.h, 50)

	hs.h.Drag(184, -1)
	require.False(t, hs.e.IsLoading(hs.h))
	hs.h.Drag(184.5, -1)
	require.True(t, hs.e.IsLoading(hs.h))
}

func TestTriggerIgnoresBounceBack(t *testing.T) {
	hs := newHarness(t, 500)
	hs.h.Drag(260, 25)
	require.False(t, hs.e.IsLoading(hs.h))
	hs.h.Drag(260, 0)
	require.True(t, hs.e.IsLoading(hs.h))
}

func TestProgrammaticScrollDoesNotTrigger(t *testing.T) {
	hs := newHarness(t, 500)
	hs.h.SetContentOffset(scroll.Point{Y: 400}, false)
	require.False(t, hs.e.IsLoading(hs.h))

	hs.h.SetAccessibilityScrolling(true)
	hs.h.SetContentOffset(scroll.Point{Y: 401}, false)
	require.True(t, hs.e.IsLoading(hs.h), "an accessibility scan counts as user scrolling")
}

func TestHandlerRunsAfterInsetAnimationAndDelay(t *testing.T) {
	hs := newHarness(t, 500)
	hs.e.Begin(hs.h, false)

	hs.h.Advance(sim.AnimationDuration - time.Millisecond)
	require.Equal(t, scroll.Starting, hs.state(t).Phase)
	hs.h.Advance(time.Millisecond)
	require.Equal(t, scroll.Loading, hs.state(t).Phase)
	require.Zero(t, hs.calls)

	hs.h.Advance(scroll.LoadDelay - time.Millisecond)
	require.Zero(t, hs.calls)
	hs.h.Advance(time.Millisecond)
	require.Equal(t, 1, hs.calls)
}

func TestBeginWhileLoadingDoesNotCallHandlerAgain(t *testing.T) {
	hs := newHarness(t, 500)
	hs.e.Begin(hs.h, false)
	hs.h.Advance(settle)
	require.Equal(t, 1, hs.calls)

	hs.e.Begin(hs.h, true)
	hs.h.Drag(400, -50)
	hs.h.Release()
	hs.h.Advance(5 * time.Second)
	require.Equal(t, 1, hs.calls)
}

func TestFinishResetsInsetsOnBothBranches(t *testing.T) {
	for _, content := range []float64{0, 500} {
		hs := newHarness(t, content)
		hs.e.Begin(hs.h, false)
		hs.h.Advance(settle)

		st := hs.state(t)
		require.Equal(t, content == 0, st.ScrollToStartWhenFinished)
		require.NotZero(t, st.IndicatorInset)

		done := 0
		hs.e.Finish(hs.h, func(scroll.Host) { done++ })
		require.Equal(t, scroll.Finishing, hs.state(t).Phase)
		hs.h.Advance(sim.AnimationDuration)

		st = hs.state(t)
		require.Equal(t, 1, done)
		require.False(t, st.Loading)
		require.Equal(t, scroll.Idle, st.Phase)
		require.Zero(t, st.IndicatorInset)
		require.Zero(t, st.ExtraEndInset)
		require.False(t, st.ScrollToStartWhenFinished)
		require.True(t, st.Indicator.Hidden())
		require.False(t, st.Indicator.IsAnimating())
	}
}

func TestBeginFinishRestoresInset(t *testing.T) {
	hs := newHarness(t, 500)
	before := scroll.Insets{Top: 8, Bottom: 20}
	hs.h.SetContentInset(before, false, nil)

	hs.e.Begin(hs.h, false)
	require.Equal(t, 20.0+44, hs.h.ContentInset().Bottom)
	hs.h.Advance(settle)
	hs.e.Finish(hs.h, nil)
	hs.h.Advance(sim.AnimationDuration)

	require.Equal(t, before, hs.h.ContentInset())
	require.Greater(t, hs.h.LayoutCalls(), 0)
}

func TestEmptyListScrollsToStartWhenFinished(t *testing.T) {
	hs := newHarness(t, 0)
	hs.h.SetContentInset(scroll.Insets{Top: 10}, false, nil)

	hs.e.Begin(hs.h, false)
	st := hs.state(t)
	require.True(t, st.ScrollToStartWhenFinished)
	require.Equal(t, 290.0, st.ExtraEndInset)
	require.Equal(t, 290.0+44, hs.h.ContentInset().Bottom)
	// indicator sits right under the viewport
	require.Equal(t, 290.0+22, st.Indicator.Center().Y)

	hs.h.Advance(settle)
	hs.h.SetContentLength(600)
	hs.h.SetContentOffset(scroll.Point{Y: 120}, false)
	hs.e.Finish(hs.h, nil)
	hs.h.Advance(sim.AnimationDuration)

	require.Equal(t, -10.0, hs.h.ContentOffset().Y)
	changes := hs.h.OffsetChanges()
	require.True(t, changes[len(changes)-1].Animated)
}

func TestShouldTriggerVeto(t *testing.T) {
	hs := newHarness(t, 500)
	asked := 0
	hs.e.SetShouldTrigger(hs.h, func(scroll.Host) bool { asked++; return false })

	hs.e.Begin(hs.h, false)
	hs.h.Drag(290, -5)
	hs.h.Advance(time.Second)

	require.Equal(t, 2, asked, "manual and automatic begin both consult the gate")
	require.False(t, hs.e.IsLoading(hs.h))
	require.Zero(t, hs.calls)
	require.Empty(t, hs.h.Indicators())
	require.Zero(t, hs.h.ContentInset().Bottom)
}

func TestDetachNeverAttached(t *testing.T) {
	e := scroll.New()
	h := sim.NewHost(320, 300)
	require.NotPanics(t, func() { e.Detach(h) })
	st, _ := e.State(h)
	require.False(t, st.Initialized)

	e.SetTriggerOffset(h, 10)
	require.NotPanics(t, func() { e.Detach(h) })
	st, ok := e.State(h)
	require.True(t, ok)
	require.False(t, st.Initialized)
}

func TestAttachTwiceSwapsHandlerOnly(t *testing.T) {
	hs := newHarness(t, 500)
	second := 0
	hs.e.Attach(hs.h, func(scroll.Host) { second++ })
	require.Equal(t, 1, hs.h.GestureObservers())

	hs.e.Begin(hs.h, false)
	hs.h.Advance(settle)
	require.Zero(t, hs.calls)
	require.Equal(t, 1, second)
}

func TestDetachIsIdempotentAndTearsDown(t *testing.T) {
	hs := newHarness(t, 500)
	hs.e.Begin(hs.h, false)
	hs.h.Advance(sim.AnimationDuration)
	require.Len(t, hs.h.Indicators(), 1)

	hs.e.Detach(hs.h)
	hs.e.Detach(hs.h)
	hs.h.Advance(time.Second)

	st := hs.state(t)
	require.False(t, st.Initialized)
	require.False(t, st.Loading)
	require.Nil(t, st.Indicator)
	require.Nil(t, st.OnLoadMore)
	require.Zero(t, hs.calls, "pending handler call is cancelled")
	require.Zero(t, hs.h.GestureObservers())
	require.Empty(t, hs.h.Indicators())
	require.Zero(t, hs.h.ContentInset().Bottom)

	hs.h.Drag(400, -5)
	require.False(t, hs.e.IsLoading(hs.h))
}

func TestForgetDropsRecord(t *testing.T) {
	hs := newHarness(t, 500)
	hs.e.SetTriggerOffset(hs.h, 40)
	hs.e.Begin(hs.h, false)

	hs.e.Forget(hs.h)
	hs.h.Advance(time.Second)
	_, ok := hs.e.State(hs.h)
	require.False(t, ok)
	require.False(t, hs.e.IsLoading(hs.h))
	require.Zero(t, hs.calls)
	require.Zero(t, hs.h.GestureObservers())
	require.Zero(t, hs.h.ContentInset().Bottom)

	// a later attach starts from defaults
	hs.e.Attach(hs.h, func(scroll.Host) {})
	require.Zero(t, hs.state(t).TriggerOffset)
	hs.e.Forget(hs.h)
	hs.e.Forget(hs.h)
}

func TestFinishBeforeHandlerCancelsIt(t *testing.T) {
	hs := newHarness(t, 500)
	hs.e.Begin(hs.h, false)
	hs.h.Advance(sim.AnimationDuration + 10*time.Millisecond)
	hs.e.Finish(hs.h, nil)
	hs.h.Advance(time.Second)
	require.Zero(t, hs.calls)
	require.False(t, hs.e.IsLoading(hs.h))
}

func TestFinishDuringStartAnimation(t *testing.T) {
	hs := newHarness(t, 500)
	hs.e.Begin(hs.h, false)
	hs.h.Advance(100 * time.Millisecond)
	hs.e.Finish(hs.h, nil)
	hs.h.Advance(time.Second)

	st := hs.state(t)
	require.Equal(t, scroll.Idle, st.Phase)
	require.Zero(t, hs.calls)
	require.Zero(t, hs.h.ContentInset().Bottom)
}

func TestFinishWhenIdleIsNoop(t *testing.T) {
	hs := newHarness(t, 500)
	done := false
	hs.e.Finish(hs.h, func(scroll.Host) { done = true })
	hs.h.Advance(time.Second)
	require.False(t, done)
	require.Zero(t, hs.h.LayoutCalls())
}

func TestGestureEndRevealsIndicator(t *testing.T) {
	hs := newHarness(t, 500)
	hs.h.Drag(210, -5)
	require.True(t, hs.e.IsLoading(hs.h))

	// dragging: the start animation must not move the content
	hs.h.Advance(sim.AnimationDuration)
	require.Equal(t, 210.0, hs.h.ContentOffset().Y)

	hs.h.Release()
	require.Equal(t, 244.0, hs.h.ContentOffset().Y)
}

func TestItemScrollerPreferredForReveal(t *testing.T) {
	hs := newHarness(t, 0)
	hs.h.ItemScrolling = true
	hs.h.ItemLength = 50
	hs.h.SetItems(10)

	hs.h.Drag(220, -5)
	hs.h.Release()
	hs.h.Advance(sim.AnimationDuration)

	// last row scrolled to the top, clamped to the padded end
	changes := hs.h.OffsetChanges()
	require.NotEmpty(t, changes)
	require.Equal(t, 244.0, hs.h.ContentOffset().Y)
}

func TestForcedBeginRevealsFromTop(t *testing.T) {
	hs := newHarness(t, 500)
	hs.e.Begin(hs.h, true)
	hs.h.Advance(sim.AnimationDuration)
	require.Equal(t, 244.0, hs.h.ContentOffset().Y)

	hs2 := newHarness(t, 500)
	hs2.e.Begin(hs2.h, false)
	hs2.h.Advance(sim.AnimationDuration)
	require.Zero(t, hs2.h.ContentOffset().Y, "unforced begin leaves an offset outside the footprint alone")
}

func TestFinishHidesFootprint(t *testing.T) {
	hs := newHarness(t, 500)
	hs.e.Begin(hs.h, false)
	hs.h.Advance(settle)
	hs.h.SetContentOffset(scroll.Point{Y: 230}, false)

	hs.e.Finish(hs.h, nil)
	hs.h.Advance(sim.AnimationDuration)
	require.Equal(t, 200.0, hs.h.ContentOffset().Y)
}

func TestContentSizeChangeMovesIndicator(t *testing.T) {
	hs := newHarness(t, 500)
	hs.e.Begin(hs.h, false)
	hs.h.Advance(settle)

	hs.h.SetContentLength(800)
	st := hs.state(t)
	require.Equal(t, scroll.Point{X: 160, Y: 822}, st.Indicator.Center())
}

func TestHorizontalDirection(t *testing.T) {
	e := scroll.New()
	h := sim.NewHost(300, 80)
	h.Axis = scroll.Horizontal
	h.Observer = e
	h.SetContentLength(500)
	e.SetDirection(h, scroll.Horizontal)
	e.Attach(h, func(scroll.Host) {})

	h.Drag(201, -3)
	require.True(t, e.IsLoading(h))
	require.Equal(t, 44.0, h.ContentInset().Right)
	require.Zero(t, h.ContentInset().Bottom)

	st, _ := e.State(h)
	require.Equal(t, scroll.Point{X: 522, Y: 40}, st.Indicator.Center())
}

func TestCustomIndicatorStartsHiddenAndSetsFootprint(t *testing.T) {
	hs := newHarness(t, 500)
	ind := &testIndicator{size: scroll.Size{Width: 10, Height: 10}}
	hs.e.SetIndicator(hs.h, ind)
	hs.e.SetIndicatorMargin(hs.h, 3)
	require.True(t, ind.Hidden())

	hs.e.Begin(hs.h, false)
	require.False(t, ind.Hidden())
	require.True(t, ind.IsAnimating())
	require.Equal(t, 16.0, hs.state(t).IndicatorInset)
	require.Equal(t, 500.0+8, ind.Center().Y)
}

func TestLoggerReceivesLifecycle(t *testing.T) {
	var lines []string
	e := scroll.New(scroll.WithLogger(func(format string, args ...any) {
		lines = append(lines, format)
	}))
	h := sim.NewHost(320, 300)
	h.Observer = e
	e.Attach(h, nil)
	e.Begin(h, false)
	h.Advance(settle)
	e.Finish(h, nil)
	require.NotEmpty(t, lines)
	require.Contains(t, lines[0], "attach")
}
