package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"infiniscroll/internal/scroll"
	"infiniscroll/internal/tui/util"
	"infiniscroll/internal/tui/widgets/indicator"
)

const (
	// GestureIdle is how long after the last scroll input a gesture ends.
	GestureIdle = 150 * time.Millisecond
	// DefaultColumnWidth is the item width in horizontal mode.
	DefaultColumnWidth = 24

	fps = 60
	// how far past the end a drag may pull before it stops
	overscroll = 1
)

var (
	frameInterval = time.Second / fps
	paneSpring    = harmonica.NewSpring(harmonica.FPS(fps), 12.0, 1.0)
	paneSeq       int
)

// Observer receives the host notifications; *scroll.Engine satisfies it.
type Observer interface {
	ContentOffsetChanged(h scroll.Host)
	ContentSizeChanged(h scroll.Host)
}

type (
	paneTimerMsg struct {
		pane, id int
	}
	paneFrameMsg struct {
		pane int
	}
	paneGestureMsg struct {
		pane, gen int
	}
)

// tween runs a critically damped spring from 0 to 1.
type tween struct {
	pos, vel float64
}

func (t *tween) step() bool {
	t.pos, t.vel = paneSpring.Update(t.pos, t.vel, 1)
	if math.Abs(1-t.pos) < 0.005 && math.Abs(t.vel) < 0.01 {
		t.pos, t.vel = 1, 0
		return true
	}
	return false
}

type insetAnim struct {
	tween
	from, to scroll.Insets
	done     func(bool)
}

type offsetAnim struct {
	tween
	from, to scroll.Point
}

// Pane is a terminal scroll surface measured in cells. Vertically every row
// is one item; horizontally every item is a fixed-width column. Offsets
// follow scroll-view conventions, so the start of content sits at
// -leading inset.
//
// The model inset and offset change immediately; what View draws follows
// them through a spring. All callbacks run inside Update; commands produced
// outside of a return value are queued and handed out by Cmds.
type Pane struct {
	Observer Observer
	// ColumnWidth is the item width in horizontal mode.
	ColumnWidth int

	id     int
	axis   scroll.Direction
	rows   []string
	width  int
	height int

	offset      scroll.Point
	shownOffset scroll.Point
	inset       scroll.Insets
	shownInset  scroll.Insets

	insetAnim    *insetAnim
	offsetAnim   *offsetAnim
	framePending bool

	dragging   bool
	velocity   float64
	a11y       bool
	gestureGen int
	gestureObs map[int]func()
	gestureSeq int

	timers   map[int]func()
	timerSeq int

	indicators     []scroll.Indicator
	indicatorColor lipgloss.TerminalColor

	pending []tea.Cmd
	tick    func(d time.Duration, msg tea.Msg) tea.Cmd
	vp      viewport.Model
}

func NewPane(axis scroll.Direction, width, height int) *Pane {
	paneSeq++
	return &Pane{
		ColumnWidth: DefaultColumnWidth,
		id:          paneSeq,
		axis:        axis,
		width:       width,
		height:      height,
		gestureObs:  map[int]func(){},
		timers:      map[int]func(){},
		tick:        teaTick,
		vp:          viewport.New(width, height),
	}
}

func teaTick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Enqueue queues cmd for the next Cmds call.
func (p *Pane) Enqueue(cmd tea.Cmd) {
	if cmd != nil {
		p.pending = append(p.pending, cmd)
	}
}

// Cmds drains the queued commands.
func (p *Pane) Cmds() tea.Cmd {
	if len(p.pending) == 0 {
		return nil
	}
	cmds := p.pending
	p.pending = nil
	return tea.Batch(cmds...)
}

// SetIndicatorColor colors indicators made after the call.
func (p *Pane) SetIndicatorColor(c lipgloss.TerminalColor) { p.indicatorColor = c }

func (p *Pane) Axis() scroll.Direction { return p.axis }

// SetAxis switches direction and returns to the start.
func (p *Pane) SetAxis(d scroll.Direction) {
	p.axis = d
	p.offsetAnim = nil
	p.offset = p.startOffset()
	p.shownOffset = p.offset
	p.notifySize()
}

func (p *Pane) SetSize(width, height int) {
	p.width, p.height = max(width, 1), max(height, 1)
	p.vp.Width, p.vp.Height = p.width, p.height
	p.notifySize()
}

// SetItems replaces the content.
func (p *Pane) SetItems(rows []string) {
	p.rows = rows
	p.notifySize()
}

func (p *Pane) Len() int { return len(p.rows) }

func (p *Pane) SetAccessibility(on bool) { p.a11y = on }

func (p *Pane) notifySize() {
	if p.Observer != nil {
		p.Observer.ContentSizeChanged(p)
	}
}

func (p *Pane) main(pt scroll.Point) float64 {
	if p.axis == scroll.Horizontal {
		return pt.X
	}
	return pt.Y
}

func (p *Pane) withMain(pt scroll.Point, v float64) scroll.Point {
	if p.axis == scroll.Horizontal {
		pt.X = v
	} else {
		pt.Y = v
	}
	return pt
}

func (p *Pane) lead() float64 {
	if p.axis == scroll.Horizontal {
		return p.inset.Left
	}
	return p.inset.Top
}

func (p *Pane) trail(in scroll.Insets) float64 {
	if p.axis == scroll.Horizontal {
		return in.Right
	}
	return in.Bottom
}

func (p *Pane) contentLength() float64 {
	if p.axis == scroll.Horizontal {
		return float64(len(p.rows) * p.columnWidth())
	}
	return float64(len(p.rows))
}

func (p *Pane) viewportLength() float64 {
	if p.axis == scroll.Horizontal {
		return float64(p.width)
	}
	return float64(p.height)
}

func (p *Pane) columnWidth() int {
	if p.ColumnWidth < 2 {
		return DefaultColumnWidth
	}
	return p.ColumnWidth
}

func (p *Pane) startOffset() scroll.Point {
	return p.withMain(scroll.Point{}, -p.lead())
}

// scrollRange is the resting range of the main offset.
func (p *Pane) scrollRange() (lo, hi float64) {
	lo = -p.lead()
	hi = math.Max(lo, p.contentLength()+p.trail(p.inset)-p.viewportLength())
	return lo, hi
}

// ===== scroll.Host =====

func (p *Pane) ContentOffset() scroll.Point { return p.offset }

func (p *Pane) SetContentOffset(pt scroll.Point, animated bool) {
	p.offset = pt
	if animated {
		p.offsetAnim = &offsetAnim{from: p.shownOffset, to: pt}
		p.scheduleFrame()
	} else {
		p.offsetAnim = nil
		p.shownOffset = pt
	}
	if p.Observer != nil {
		p.Observer.ContentOffsetChanged(p)
	}
}

func (p *Pane) ContentSize() scroll.Size {
	if p.axis == scroll.Horizontal {
		return scroll.Size{Width: p.contentLength(), Height: float64(p.height)}
	}
	return scroll.Size{Width: float64(p.width), Height: p.contentLength()}
}

func (p *Pane) Bounds() scroll.Size {
	return scroll.Size{Width: float64(p.width), Height: float64(p.height)}
}

func (p *Pane) ContentInset() scroll.Insets { return p.inset }

// AdjustedContentInset equals ContentInset: a terminal has no safe area.
func (p *Pane) AdjustedContentInset() scroll.Insets { return p.inset }

func (p *Pane) SetContentInset(in scroll.Insets, animated bool, done func(bool)) {
	p.inset = in
	if a := p.insetAnim; a != nil {
		p.insetAnim = nil
		if a.done != nil {
			a.done(false)
		}
	}
	if !animated {
		p.shownInset = in
		if done != nil {
			done(true)
		}
		p.settle()
		return
	}
	p.insetAnim = &insetAnim{from: p.shownInset, to: in, done: done}
	p.scheduleFrame()
}

func (p *Pane) Dragging() bool { return p.dragging }

func (p *Pane) Velocity(d scroll.Direction) float64 {
	if d != p.axis {
		return 0
	}
	return p.velocity
}

// LayoutIfNeeded has nothing to do: content size is always current.
func (p *Pane) LayoutIfNeeded() {}

func (p *Pane) AddIndicator(ind scroll.Indicator) {
	p.indicators = append(p.indicators, ind)
}

func (p *Pane) RemoveIndicator(ind scroll.Indicator) {
	for i, x := range p.indicators {
		if x == ind {
			p.indicators = append(p.indicators[:i], p.indicators[i+1:]...)
			return
		}
	}
}

func (p *Pane) ObserveGestureEnd(fn func()) func() {
	p.gestureSeq++
	id := p.gestureSeq
	p.gestureObs[id] = fn
	return func() { delete(p.gestureObs, id) }
}

func (p *Pane) After(d time.Duration, fn func()) func() {
	p.timerSeq++
	id := p.timerSeq
	p.timers[id] = fn
	p.Enqueue(p.tick(d, paneTimerMsg{pane: p.id, id: id}))
	return func() { delete(p.timers, id) }
}

// ScrollToLastItem puts the last item at the start of the viewport (reveal)
// or its end at the end of the visible area, clamped to the scroll range.
func (p *Pane) ScrollToLastItem(reveal bool) bool {
	if len(p.rows) == 0 {
		return false
	}
	item := 1.0
	if p.axis == scroll.Horizontal {
		item = float64(p.columnWidth())
	}
	start := float64(len(p.rows)-1) * item
	target := start - p.lead()
	if !reveal {
		target = start + item - p.viewportLength() + p.trail(p.inset)
	}
	lo, hi := p.scrollRange()
	target = math.Min(math.Max(target, lo), hi)
	p.SetContentOffset(p.withMain(p.offset, target), true)
	return true
}

func (p *Pane) AccessibilityScrolling() bool { return p.a11y }

func (p *Pane) MakeIndicator(style string) scroll.Indicator {
	return indicator.New(style, p.indicatorColor, p.Enqueue)
}

// ===== input =====

// ScrollBy moves the main offset by delta cells the way a drag would. With
// accessibility scanning on, the move is a programmatic step instead.
func (p *Pane) ScrollBy(delta float64) {
	if delta == 0 {
		return
	}
	lo, hi := p.scrollRange()
	cur := p.main(p.offset)
	next := math.Min(math.Max(cur+delta, lo), hi+overscroll)
	if p.a11y {
		p.SetContentOffset(p.withMain(p.offset, next), false)
		return
	}
	p.dragging = true
	// pan convention: negative pushes toward the end
	p.velocity = -delta
	p.gestureGen++
	p.Enqueue(p.tick(GestureIdle, paneGestureMsg{pane: p.id, gen: p.gestureGen}))
	p.SetContentOffset(p.withMain(p.offset, next), false)
}

// ScrollToStart drags back to the first item.
func (p *Pane) ScrollToStart() {
	lo, _ := p.scrollRange()
	p.ScrollBy(lo - p.main(p.offset))
}

// ScrollToEnd drags to the end, pulling into the overscroll.
func (p *Pane) ScrollToEnd() {
	_, hi := p.scrollRange()
	p.ScrollBy(hi + overscroll - p.main(p.offset))
}

// Page is the viewport length minus one cell.
func (p *Pane) Page() float64 { return math.Max(1, p.viewportLength()-1) }

// Update handles the pane's own messages and reports whether msg was one.
func (p *Pane) Update(msg tea.Msg) bool {
	switch m := msg.(type) {
	case paneTimerMsg:
		if m.pane != p.id {
			return false
		}
		fn, ok := p.timers[m.id]
		delete(p.timers, m.id)
		if ok {
			fn()
		}
		return true
	case paneFrameMsg:
		if m.pane != p.id {
			return false
		}
		p.framePending = false
		p.frame()
		return true
	case paneGestureMsg:
		if m.pane != p.id {
			return false
		}
		if m.gen == p.gestureGen && p.dragging {
			p.endGesture()
		}
		return true
	}
	for _, ind := range p.indicators {
		if u, ok := ind.(interface{ Update(tea.Msg) bool }); ok && u.Update(msg) {
			return true
		}
	}
	return false
}

func (p *Pane) endGesture() {
	p.dragging = false
	p.velocity = 0
	p.settle()
	ids := make([]int, 0, len(p.gestureObs))
	for id := range p.gestureObs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := p.gestureObs[id]; ok {
			fn()
		}
	}
}

// settle bounces an out-of-range offset back once nobody is dragging.
func (p *Pane) settle() {
	if p.dragging {
		return
	}
	lo, hi := p.scrollRange()
	cur := p.main(p.offset)
	if cur > hi || cur < lo {
		p.SetContentOffset(p.withMain(p.offset, math.Min(math.Max(cur, lo), hi)), true)
	}
}

func (p *Pane) scheduleFrame() {
	if p.framePending || (p.insetAnim == nil && p.offsetAnim == nil) {
		return
	}
	p.framePending = true
	p.Enqueue(p.tick(frameInterval, paneFrameMsg{pane: p.id}))
}

func (p *Pane) frame() {
	if a := p.offsetAnim; a != nil {
		settled := a.step()
		p.shownOffset = scroll.Point{
			X: lerp(a.from.X, a.to.X, a.pos),
			Y: lerp(a.from.Y, a.to.Y, a.pos),
		}
		if settled {
			p.offsetAnim = nil
		}
	}
	if a := p.insetAnim; a != nil {
		settled := a.step()
		p.shownInset = scroll.Insets{
			Top:    lerp(a.from.Top, a.to.Top, a.pos),
			Left:   lerp(a.from.Left, a.to.Left, a.pos),
			Bottom: lerp(a.from.Bottom, a.to.Bottom, a.pos),
			Right:  lerp(a.from.Right, a.to.Right, a.pos),
		}
		if settled {
			p.insetAnim = nil
			if a.done != nil {
				a.done(true)
			}
			p.settle()
		}
	}
	p.scheduleFrame()
}

// Animating reports a spring in flight.
func (p *Pane) Animating() bool { return p.insetAnim != nil || p.offsetAnim != nil }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// ===== rendering =====

type viewer interface{ View() string }

// visibleIndicator returns the first shown indicator and its cell position
// in content coordinates. Indicators outside the presented trailing inset
// stay hidden so they slide in with it.
func (p *Pane) visibleIndicator() (v viewer, main, cross int, ok bool) {
	for _, ind := range p.indicators {
		vw, isViewer := ind.(viewer)
		if !isViewer || ind.Hidden() {
			continue
		}
		c, sz := ind.Center(), ind.Size()
		edge := p.contentLength() + p.trail(p.shownInset)
		if p.axis == scroll.Horizontal {
			if c.X >= edge {
				continue
			}
			return vw, int(math.Round(c.X - sz.Width/2)), int(math.Floor(c.Y)), true
		}
		if c.Y >= edge {
			continue
		}
		return vw, int(math.Floor(c.Y)), int(math.Round(c.X - sz.Width/2)), true
	}
	return nil, 0, 0, false
}

func (p *Pane) View() string {
	if p.axis == scroll.Horizontal {
		return p.viewHorizontal()
	}
	return p.viewVertical()
}

func (p *Pane) viewVertical() string {
	top := int(math.Floor(p.shownOffset.Y))
	first := min(top, -int(math.Ceil(p.lead())))
	last := max(top+p.height, len(p.rows)+int(math.Ceil(p.trail(p.inset))))
	ind, indRow, indCol, hasInd := p.visibleIndicator()

	lines := make([]string, 0, last-first)
	for y := first; y < last; y++ {
		line := ""
		if y >= 0 && y < len(p.rows) {
			line = util.Clip(p.rows[y], p.width)
		}
		if hasInd && y == indRow && indCol >= 0 {
			line = util.Pad(util.Clip(line, indCol), indCol) + ind.View()
		}
		lines = append(lines, line)
	}
	p.vp.Width, p.vp.Height = p.width, p.height
	p.vp.SetContent(strings.Join(lines, "\n"))
	p.vp.SetYOffset(top - first)
	return p.vp.View()
}

func (p *Pane) viewHorizontal() string {
	left := int(math.Floor(p.shownOffset.X))
	cw := p.columnWidth()
	mid := p.height / 2
	ind, indCol, _, hasInd := p.visibleIndicator()

	var strip, rule strings.Builder
	for _, r := range p.rows {
		strip.WriteString(util.Pad(util.Clip(r, cw-1), cw-1) + "│")
		rule.WriteString(strings.Repeat(" ", cw-1) + "│")
	}
	window := func(full string) string {
		if left >= 0 {
			return util.CutCells(full, left, p.width)
		}
		lead := min(-left, p.width)
		return strings.Repeat(" ", lead) + util.CutCells(full, 0, p.width-lead)
	}

	lines := make([]string, p.height)
	for row := range lines {
		if row == mid {
			lines[row] = window(strip.String())
		} else {
			lines[row] = window(rule.String())
		}
	}
	if hasInd {
		col := indCol - left
		v := ind.View()
		w := lipgloss.Width(v)
		if col >= 0 && col+w <= p.width {
			l := lines[mid]
			lines[mid] = util.CutCells(l, 0, col) + v + util.CutCells(l, col+w, p.width-col-w)
		}
	}
	return strings.Join(lines, "\n")
}

// Snapshot describes the current geometry on one line.
func (p *Pane) Snapshot() string {
	return fmt.Sprintf("axis=%s offset=%g content=%gx%g bounds=%dx%d inset=%+v dragging=%t a11y=%t",
		p.axis, p.main(p.offset), p.ContentSize().Width, p.ContentSize().Height,
		p.width, p.height, p.inset, p.dragging, p.a11y)
}

var (
	_ scroll.Host                 = (*Pane)(nil)
	_ scroll.ItemScroller         = (*Pane)(nil)
	_ scroll.AccessibilityScanner = (*Pane)(nil)
	_ scroll.IndicatorMaker       = (*Pane)(nil)
)
