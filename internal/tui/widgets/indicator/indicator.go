// Package indicator adapts the bubbles spinner to scroll.Indicator.
package indicator

import (
	"sort"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"infiniscroll/internal/scroll"
)

// DefaultStyle is used for unknown or empty style names.
const DefaultStyle = "dot"

var spinners = map[string]spinner.Spinner{
	"dot":       spinner.Dot,
	"line":      spinner.Line,
	"minidot":   spinner.MiniDot,
	"jump":      spinner.Jump,
	"pulse":     spinner.Pulse,
	"points":    spinner.Points,
	"globe":     spinner.Globe,
	"moon":      spinner.Moon,
	"meter":     spinner.Meter,
	"hamburger": spinner.Hamburger,
}

// Styles lists the accepted style names in order.
func Styles() []string {
	out := make([]string, 0, len(spinners))
	for k := range spinners {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Spinner is a one-line loading indicator. Its tick commands go to enqueue
// since the engine drives it outside of Update's return value.
type Spinner struct {
	model     spinner.Model
	style     string
	width     int
	animating bool
	hidden    bool
	center    scroll.Point
	enqueue   func(tea.Cmd)
}

func New(style string, color lipgloss.TerminalColor, enqueue func(tea.Cmd)) *Spinner {
	sp, ok := spinners[style]
	if !ok {
		style = DefaultStyle
		sp = spinners[style]
	}
	w := 1
	for _, f := range sp.Frames {
		w = max(w, runewidth.StringWidth(f))
	}
	st := lipgloss.NewStyle()
	if color != nil {
		st = st.Foreground(color)
	}
	return &Spinner{
		model:   spinner.New(spinner.WithSpinner(sp), spinner.WithStyle(st)),
		style:   style,
		width:   w,
		hidden:  true,
		enqueue: enqueue,
	}
}

func (s *Spinner) Style() string { return s.style }

func (s *Spinner) StartAnimating() {
	if s.animating {
		return
	}
	s.animating = true
	if s.enqueue != nil {
		s.enqueue(s.model.Tick)
	}
}

func (s *Spinner) StopAnimating() { s.animating = false }
func (s *Spinner) IsAnimating() bool { return s.animating }
func (s *Spinner) SetHidden(h bool) { s.hidden = h }
func (s *Spinner) Hidden() bool { return s.hidden }
func (s *Spinner) Size() scroll.Size { return scroll.Size{Width: float64(s.width), Height: 1} }
func (s *Spinner) Center() scroll.Point { return s.center }
func (s *Spinner) SetCenter(p scroll.Point) { s.center = p }

// Update advances the frame on the spinner's own ticks. Ticks that arrive
// after StopAnimating are dropped, which ends the tick loop.
func (s *Spinner) Update(msg tea.Msg) bool {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || tick.ID != s.model.ID() {
		return false
	}
	if !s.animating {
		return true
	}
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	if cmd != nil && s.enqueue != nil {
		s.enqueue(cmd)
	}
	return true
}

// View is padded to the indicator width; hidden renders as blanks.
func (s *Spinner) View() string {
	if s.hidden {
		return runewidth.FillRight("", s.width)
	}
	v := s.model.View()
	if pad := s.width - lipgloss.Width(v); pad > 0 {
		v += runewidth.FillRight("", pad)
	}
	return v
}

var _ scroll.Indicator = (*Spinner)(nil)
