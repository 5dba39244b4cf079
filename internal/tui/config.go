package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"infiniscroll/internal/config"
	"infiniscroll/internal/tui/util"
	"infiniscroll/internal/tui/widgets/editor"
	"infiniscroll/internal/tui/widgets/indicator"
)

type field int

const (
	fDirection field = iota
	fTrigger
	fMargin
	fStyle
	fSource
	fPath
	fURL
	fPageSize
	fTotal
	fLatency
	fNoColor
	fVerbose
	fieldCount
)

var sources = []string{"synthetic", "file", "http"}

type settingsModel struct {
	cfg       config.Config
	cursor    field
	input     editor.Line
	suggest   []string
	done      bool
	cancelled bool
	msg       string
	st        util.Styles
}

// CollectSettings opens a simple TUI to edit the settings file values. ok is
// false when the user backed out.
func CollectSettings(c *config.Config) (out *config.Config, ok bool, err error) {
	p := tea.NewProgram(newSettingsModel(c), tea.WithAltScreen())
	fm, err := p.Run()
	if err != nil { return nil, false, err }
	m, _ := fm.(settingsModel)
	if m.cancelled || !m.done { return nil, false, nil }
	return &m.cfg, true, nil
}

func newSettingsModel(c *config.Config) settingsModel {
	return settingsModel{cfg: *c, st: util.NewStyles(c.UI.NoColor)}
}

func (m settingsModel) Init() tea.Cmd { return nil }

func (m *settingsModel) computeSuggestions() {
	// Provide simple directory-based suggestions for current input buffer
	in := m.input.Buf
	if strings.TrimSpace(in) == "" { m.suggest = nil; return }
	expanded := in
	if strings.HasPrefix(in, "~") { expanded = expandPath(in) }
	dir := expanded
	base := ""
	if fi, err := os.Stat(expanded); err == nil && fi.IsDir() {
		// ok
	} else {
		dir = filepath.Dir(expanded)
		base = filepath.Base(expanded)
	}
	entries, err := os.ReadDir(dir)
	if err != nil { m.suggest = nil; return }
	var out []string
	for _, e := range entries {
		name := e.Name()
		if base == "" || strings.Contains(strings.ToLower(name), strings.ToLower(base)) {
			cand := filepath.Join(dir, name)
			// Present with ~/ when within home
			if h, _ := os.UserHomeDir(); h != "" && strings.HasPrefix(cand, h) {
				cand = "~" + strings.TrimPrefix(cand, h)
			}
			out = append(out, cand)
		}
		if len(out) >= 8 { break }
	}
	m.suggest = out
}

func expandPath(p string) string {
	p = strings.TrimSpace(p)
	if strings.HasPrefix(p, "~/") {
		if h, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(h, p[2:])
		}
	}
	p = os.ExpandEnv(p)
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil { p = abs }
	}
	return p
}

func cycle(list []string, cur string, step int) string {
	i := 0
	for j, v := range list {
		if v == cur { i = j; break }
	}
	i = (i + step + len(list)) % len(list)
	return list[i]
}

// adjust nudges the field under the cursor by step (+1 or -1).
func (m *settingsModel) adjust(step int) {
	c := &m.cfg
	switch m.cursor {
	case fDirection:
		c.Scroll.Direction = cycle([]string{"vertical", "horizontal"}, c.Scroll.Direction, step)
	case fTrigger:
		c.Scroll.TriggerOffset = max(0, c.Scroll.TriggerOffset+float64(step))
	case fMargin:
		c.Scroll.IndicatorMargin = max(0, c.Scroll.IndicatorMargin+float64(step))
	case fStyle:
		c.Scroll.IndicatorStyle = cycle(indicator.Styles(), c.Scroll.IndicatorStyle, step)
	case fSource:
		c.Feed.Source = cycle(sources, c.Feed.Source, step)
	case fPageSize:
		c.Feed.PageSize = max(1, c.Feed.PageSize+5*step)
	case fTotal:
		c.Feed.Total = max(0, c.Feed.Total+50*step)
	case fLatency:
		c.Feed.Latency.Duration = max(0, c.Feed.Latency.Duration+time.Duration(step)*250*time.Millisecond)
	case fNoColor:
		c.UI.NoColor = !c.UI.NoColor
	case fVerbose:
		c.UI.Verbose = !c.UI.Verbose
	}
}

func (m *settingsModel) commitInput() {
	v := strings.TrimSpace(m.input.Buf)
	switch m.cursor {
	case fPath:
		if v == "" { m.cfg.Feed.Path = ""; return }
		p := expandPath(v)
		if _, err := os.Stat(p); err != nil {
			m.msg = fmt.Sprintf("! not found: %s", p)
			return
		}
		m.cfg.Feed.Path = p
	case fURL:
		m.cfg.Feed.URL = v
	}
}

func (m settingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.input.Active {
			if msg.Type == tea.KeyTab {
				if len(m.suggest) > 0 { m.input.Buf = m.suggest[0] }
				m.computeSuggestions()
				return m, nil
			}
			switch m.input.Handle(msg) {
			case editor.Commit:
				m.commitInput()
				m.suggest = nil
			case editor.Cancel:
				m.suggest = nil
			case editor.Changed:
				if m.cursor == fPath { m.computeSuggestions() }
			}
			return m, nil
		}
		m.msg = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 { m.cursor-- }
		case "down", "j":
			if m.cursor < fieldCount-1 { m.cursor++ }
		case "left", "h", "-":
			m.adjust(-1)
		case "right", "l", "+", " ":
			m.adjust(1)
		case "e":
			switch m.cursor {
			case fPath:
				m.input.Start(m.cfg.Feed.Path)
				m.computeSuggestions()
			case fURL:
				m.input.Start(m.cfg.Feed.URL)
			}
		case "enter":
			if err := m.cfg.Validate(); err != nil {
				m.msg = "! " + err.Error()
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m settingsModel) rows() []struct{ label, value string } {
	c := m.cfg
	onOff := func(b bool) string { if b { return "on" }; return "off" }
	return []struct{ label, value string }{
		{"Direction", c.Scroll.Direction},
		{"Trigger offset", fmt.Sprintf("%g", c.Scroll.TriggerOffset)},
		{"Indicator margin", fmt.Sprintf("%g", c.Scroll.IndicatorMargin)},
		{"Indicator style", c.Scroll.IndicatorStyle},
		{"Feed source", c.Feed.Source},
		{"File path", c.Feed.Path},
		{"HTTP url", c.Feed.URL},
		{"Page size", fmt.Sprintf("%d", c.Feed.PageSize)},
		{"Total (synthetic)", fmt.Sprintf("%d", c.Feed.Total)},
		{"Latency", c.Feed.Latency.String()},
		{"No color", onOff(c.UI.NoColor)},
		{"Verbose", onOff(c.UI.Verbose)},
	}
}

func (m settingsModel) View() string {
	var b strings.Builder
	b.WriteString(m.st.Title.Render("Settings") + "\n\n")
	if m.msg != "" { b.WriteString(m.st.Error.Render(m.msg) + "\n") }
	for i, r := range m.rows() {
		line := fmt.Sprintf("  %-18s %s", r.label+":", r.value)
		if field(i) == m.cursor { line = m.st.Selected.Render("> " + strings.TrimPrefix(line, "  ")) }
		b.WriteString(line + "\n")
	}
	if m.input.Active {
		b.WriteString("\n" + m.input.View("Edit: ") + "\n")
		for _, s := range m.suggest { b.WriteString(m.st.Faint.Render("  • ") + s + "\n") }
		b.WriteString("enter: set   tab: autocomplete   esc: cancel\n")
	} else {
		b.WriteString("\nKeys: j/k move  h/l adjust  space toggle  e edit path/url  enter save  q quit\n")
	}
	return b.String()
}
