// Package replay runs scripted scroll sessions against the simulated host and
// renders a line-per-step trace that can be stored and compared.
package replay

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"infiniscroll/internal/scroll"
	"infiniscroll/internal/sim"
)

// Script describes the host and the steps to play.
//
//	width = 320
//	height = 300
//	content = 500
//	trigger_offset = 50
//
//	[[step]]
//	op = "drag"
//	to = 151
//	velocity = -10
type Script struct {
	Width           float64  `toml:"width"`
	Height          float64  `toml:"height"`
	Direction       string   `toml:"direction"`
	Content         float64  `toml:"content"`
	TriggerOffset   float64  `toml:"trigger_offset"`
	IndicatorMargin *float64 `toml:"indicator_margin"`
	ItemLength      float64  `toml:"item_length"`
	Steps           []Step   `toml:"step"`
}

// Step is one scripted action. Only the fields the op reads are used.
type Step struct {
	Op       string  `toml:"op"`
	To       float64 `toml:"to"`
	Velocity float64 `toml:"velocity"`
	MS       int     `toml:"ms"`
	Force    bool    `toml:"force"`
	Length   float64 `toml:"length"`
	Value    bool    `toml:"value"`
	Top      float64 `toml:"top"`
	Left     float64 `toml:"left"`
	Bottom   float64 `toml:"bottom"`
	Right    float64 `toml:"right"`
}

func Load(path string) (*Script, error) {
	var s Script
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, s.validate()
}

func Parse(data string) (*Script, error) {
	var s Script
	if _, err := toml.Decode(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, s.validate()
}

func (s *Script) validate() error {
	if s.Width <= 0 {
		s.Width = 320
	}
	if s.Height <= 0 {
		s.Height = 480
	}
	if _, err := scroll.ParseDirection(s.Direction); err != nil {
		return err
	}
	for i, st := range s.Steps {
		if _, ok := ops[st.Op]; !ok {
			return fmt.Errorf("step %d: unknown op %q", i+1, st.Op)
		}
	}
	return nil
}

type runner struct {
	e      *scroll.Engine
	h      *sim.Host
	dir    scroll.Direction
	veto   bool
	calls  int
	out    strings.Builder
	events []string
}

var ops = map[string]func(r *runner, st Step){
	"drag":    func(r *runner, st Step) { r.h.Drag(st.To, st.Velocity) },
	"release": func(r *runner, st Step) { r.h.Release() },
	"advance": func(r *runner, st Step) { r.h.Advance(time.Duration(st.MS) * time.Millisecond) },
	"begin":   func(r *runner, st Step) { r.e.Begin(r.h, st.Force) },
	"finish": func(r *runner, st Step) {
		r.e.Finish(r.h, func(scroll.Host) { r.events = append(r.events, "finished") })
	},
	"content": func(r *runner, st Step) { r.h.SetContentLength(st.Length) },
	"offset": func(r *runner, st Step) {
		p := r.h.ContentOffset()
		if r.dir == scroll.Horizontal {
			p.X = st.To
		} else {
			p.Y = st.To
		}
		r.h.SetContentOffset(p, false)
	},
	"inset": func(r *runner, st Step) {
		r.h.SetContentInset(scroll.Insets{Top: st.Top, Left: st.Left, Bottom: st.Bottom, Right: st.Right}, false, nil)
	},
	"veto":   func(r *runner, st Step) { r.veto = st.Value },
	"a11y":   func(r *runner, st Step) { r.h.SetAccessibilityScrolling(st.Value) },
	"attach": func(r *runner, st Step) { r.attach() },
	"detach": func(r *runner, st Step) { r.e.Detach(r.h) },
}

func (r *runner) attach() {
	r.e.Attach(r.h, func(scroll.Host) {
		r.calls++
		r.events = append(r.events, fmt.Sprintf("handler #%d", r.calls))
	})
}

// Run plays s and returns the trace.
func Run(s *Script) (string, error) {
	dir, err := scroll.ParseDirection(s.Direction)
	if err != nil {
		return "", err
	}
	r := &runner{e: scroll.New(), h: sim.NewHost(s.Width, s.Height), dir: dir}
	r.h.Axis = dir
	r.h.Observer = r.e
	if s.ItemLength > 0 {
		r.h.ItemScrolling = true
		r.h.ItemLength = s.ItemLength
	}
	r.h.SetContentLength(s.Content)
	r.e.SetDirection(r.h, dir)
	r.e.SetTriggerOffset(r.h, s.TriggerOffset)
	if s.IndicatorMargin != nil {
		r.e.SetIndicatorMargin(r.h, *s.IndicatorMargin)
	}
	r.e.SetShouldTrigger(r.h, func(scroll.Host) bool { return !r.veto })
	r.attach()

	r.line("start")
	for _, st := range s.Steps {
		fn, ok := ops[st.Op]
		if !ok {
			return r.out.String(), fmt.Errorf("unknown op %q", st.Op)
		}
		fn(r, st)
		r.line(describe(st))
	}
	return r.out.String(), nil
}

func describe(st Step) string {
	switch st.Op {
	case "drag":
		return fmt.Sprintf("drag %g v=%g", st.To, st.Velocity)
	case "advance":
		return fmt.Sprintf("advance %dms", st.MS)
	case "begin":
		if st.Force {
			return "begin force"
		}
		return "begin"
	case "content":
		return fmt.Sprintf("content %g", st.Length)
	case "offset":
		return fmt.Sprintf("offset %g", st.To)
	case "veto", "a11y":
		return fmt.Sprintf("%s %t", st.Op, st.Value)
	default:
		return st.Op
	}
}

func (r *runner) line(label string) {
	st, _ := r.e.State(r.h)
	p := r.h.ContentOffset()
	off := p.Y
	trail := r.h.ContentInset().Bottom
	if r.dir == scroll.Horizontal {
		off, trail = p.X, r.h.ContentInset().Right
	}
	fmt.Fprintf(&r.out, "%6dms %-16s off=%g trail=%g phase=%s ind=%g extra=%g\n",
		r.h.Clock().Now().Milliseconds(), label, off, trail, st.Phase, st.IndicatorInset, st.ExtraEndInset)
	for _, ev := range r.events {
		fmt.Fprintf(&r.out, "         + %s\n", ev)
	}
	r.events = r.events[:0]
}
