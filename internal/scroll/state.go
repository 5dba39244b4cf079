package scroll

// Phase is the position of a host in the load lifecycle.
type Phase int

const (
	Idle      Phase = iota // not loading
	Starting               // inset animating in
	Loading                // inset in place, handler due or waiting on Finish
	Finishing              // inset animating out
)

func (p Phase) String() string {
	switch p {
	case Starting:
		return "starting"
	case Loading:
		return "loading"
	case Finishing:
		return "finishing"
	default:
		return "idle"
	}
}

// DefaultIndicatorMargin matches (nominal row height - indicator size) / 2
// for a 44pt row and a 22pt indicator.
const DefaultIndicatorMargin = 11

// ScrollState is the per-host record. The engine owns it; State hands out
// copies.
type ScrollState struct {
	Initialized bool
	Loading     bool
	Phase       Phase
	Direction   Direction

	Indicator      Indicator
	IndicatorStyle string

	ScrollToStartWhenFinished bool

	ExtraEndInset   float64
	IndicatorInset  float64
	IndicatorMargin float64
	TriggerOffset   float64

	OnLoadMore    func(Host)
	ShouldTrigger func(Host) bool

	indicatorAdded bool
	gestureCancel  func()
	pendingLoad    func()
	// session changes on every begin/finish/detach so that stale animation
	// completions can tell they no longer apply.
	session uint64
}

func newState() *ScrollState {
	return &ScrollState{IndicatorMargin: DefaultIndicatorMargin}
}

func (st *ScrollState) cancelPendingLoad() {
	if st.pendingLoad != nil {
		st.pendingLoad()
		st.pendingLoad = nil
	}
}
