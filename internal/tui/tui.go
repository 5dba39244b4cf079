package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"infiniscroll/internal/config"
	"infiniscroll/internal/feedsrc"
	"infiniscroll/internal/scroll"
	"infiniscroll/internal/tui/state"
	"infiniscroll/internal/tui/util"
	"infiniscroll/internal/tui/views/feed"
	"infiniscroll/internal/tui/widgets/helpoverlay"
	"infiniscroll/internal/tui/widgets/statusbar"
)

// Options configures the demo feed.
type Options struct {
	Config *config.Config
	Source feedsrc.Source
	// Tee receives every log line as well, e.g. for --log-file.
	Tee func(line string)
}

// Run shows the paged feed until the user quits.
func Run(opts Options) error {
	m := newModel(opts)
	defer m.cancel()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// ===== Model =====

// chrome is the header, status and chip lines around the pane.
const chrome = 3

type pageMsg struct {
	gen  int
	page feedsrc.Page
	err  error
}

type model struct {
	// data
	cfg   *config.Config
	src   feedsrc.Source
	items []feedsrc.Item

	// scrolling
	engine *scroll.Engine
	pane   *Pane
	ready  bool

	// fetch generation; bumped on reset so late pages are dropped
	gen    int
	ctx    context.Context
	cancel context.CancelFunc

	// ui state
	fs   state.FeedState
	st   util.Styles
	bar  statusbar.StatusBar
	help helpoverlay.HelpOverlay
	logs *logPanel

	logCh chan string
	tee   func(string)
	copy  func(string) error
}

func newModel(opts Options) *model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	dir, _ := scroll.ParseDirection(cfg.Scroll.Direction)
	m := &model{
		cfg:   cfg,
		src:   opts.Source,
		st:    util.NewStyles(cfg.UI.NoColor),
		bar:   statusbar.NewStatusBar(),
		help:  helpoverlay.NewHelpOverlay(),
		logs:  newLogPanel(),
		logCh: make(chan string, 256),
		tee:   opts.Tee,
		copy:  clipboard.WriteAll,
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.fs.Horizontal = dir == scroll.Horizontal
	m.fs.NoColor = util.NoColor(cfg.UI.NoColor)

	var eopts []scroll.Option
	if cfg.UI.Verbose {
		eopts = append(eopts, scroll.WithLogger(func(format string, args ...any) {
			m.logf("engine: "+format, args...)
		}))
	}
	m.engine = scroll.New(eopts...)
	m.pane = NewPane(dir, 80, 20)
	m.pane.Observer = m.engine
	m.pane.SetIndicatorColor(m.st.Indicator)
	m.attach()
	return m
}

func (m *model) logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if m.tee != nil {
		m.tee(line)
	}
	select {
	case m.logCh <- line:
	default:
	}
}

func (m *model) attach() {
	e, p := m.engine, m.pane
	e.SetDirection(p, p.Axis())
	e.SetTriggerOffset(p, m.cfg.Scroll.TriggerOffset)
	e.SetIndicatorMargin(p, m.cfg.Scroll.IndicatorMargin)
	e.SetIndicatorStyle(p, m.cfg.Scroll.IndicatorStyle)
	e.SetShouldTrigger(p, func(scroll.Host) bool {
		return !m.fs.Exhausted && !m.fs.Fetching
	})
	e.Attach(p, m.loadMore)
}

// loadMore is the engine's load handler.
func (m *model) loadMore(scroll.Host) {
	m.fs = state.FetchStarted(m.fs)
	offset := len(m.items)
	m.logf("fetch offset=%d limit=%d", offset, m.cfg.Feed.PageSize)
	m.pane.Enqueue(m.fetch(m.gen, offset))
}

func (m *model) fetch(gen, offset int) tea.Cmd {
	ctx, src, limit := m.ctx, m.src, m.cfg.Feed.PageSize
	return func() tea.Msg {
		p, err := src.Fetch(ctx, offset, limit)
		return pageMsg{gen: gen, page: p, err: err}
	}
}

func (m *model) onPage(msg pageMsg) {
	if msg.gen != m.gen {
		return
	}
	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return
		}
		m.fs = state.PageFailed(m.fs, msg.err)
		m.logf("fetch failed: %v", msg.err)
	} else {
		m.items = append(m.items, msg.page.Items...)
		m.fs = state.PageLoaded(m.fs, len(msg.page.Items), msg.page.Done)
		m.pane.SetItems(feed.Rows(m.items, m.fs.Horizontal))
		m.logf("page %d: %d items (total %d, done=%t)", m.fs.Pages, len(msg.page.Items), len(m.items), msg.page.Done)
	}
	m.engine.Finish(m.pane, func(scroll.Host) {
		m.logf("load finished")
	})
}

func (m *model) reset() {
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.gen++
	m.items = nil
	m.fs = state.ResetFeed(m.fs)
	m.pane.SetItems(nil)
	m.logf("reset")
	restart := func() { m.engine.Begin(m.pane, true) }
	if m.engine.IsLoading(m.pane) {
		m.engine.Finish(m.pane, func(scroll.Host) { restart() })
		return
	}
	restart()
}

func (m *model) toggleDirection() {
	m.engine.Detach(m.pane)
	m.fs = state.ToggleDirection(m.fs)
	dir := scroll.Vertical
	if m.fs.Horizontal {
		dir = scroll.Horizontal
	}
	m.pane.SetAxis(dir)
	m.pane.SetItems(feed.Rows(m.items, m.fs.Horizontal))
	m.attach()
	m.logf("direction: %s", dir)
	if len(m.items) == 0 {
		m.engine.Begin(m.pane, true)
	}
}

func (m *model) snapshot() string {
	st, _ := m.engine.State(m.pane)
	return fmt.Sprintf("%s phase=%s loading=%t indicator=%g extra=%g items=%d",
		m.pane.Snapshot(), st.Phase, st.Loading, st.IndicatorInset, st.ExtraEndInset, len(m.items))
}

func (m *model) layout() {
	h := m.fs.Height - chrome
	if m.fs.ShowLogs {
		h -= logPanelLines + 3
	}
	m.pane.SetSize(m.fs.Width, max(h, 3))
}

func (m *model) Init() tea.Cmd { return waitLog(m.logCh) }

// Update handles all TUI interactions.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.pane.ScrollBy(3)
		case tea.MouseButtonWheelUp:
			m.pane.ScrollBy(-3)
		}
	case tea.WindowSizeMsg:
		m.fs = state.Resize(m.fs, msg.Width, msg.Height)
		m.layout()
		if !m.ready {
			m.ready = true
			m.logf("source: %s", m.src.Name())
			m.engine.Begin(m.pane, true)
		}
	case pageMsg:
		m.onPage(msg)
	case logMsg:
		m.logs.Append(string(msg))
		cmd = waitLog(m.logCh)
	default:
		m.pane.Update(msg)
	}
	m.sync()
	return m, tea.Batch(cmd, m.pane.Cmds())
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.fs.ShowLogs {
		if ok, status := m.logs.HandleKey(msg); ok {
			if status != "" {
				m.fs.Notice = status
			}
			return nil
		}
	}
	switch msg.String() {
	case "q", "ctrl+c":
		m.cancel()
		return tea.Quit
	case "?":
		m.fs = state.ToggleHelp(m.fs)
		m.layout()
	case "l":
		m.fs = state.ToggleLogs(m.fs)
		m.layout()
	case "j", "down", "right":
		m.pane.ScrollBy(1)
	case "k", "up", "left":
		m.pane.ScrollBy(-1)
	case "pgdown", " ":
		m.pane.ScrollBy(m.pane.Page())
	case "pgup":
		m.pane.ScrollBy(-m.pane.Page())
	case "g", "home":
		m.pane.ScrollToStart()
	case "G", "end":
		m.pane.ScrollToEnd()
	case "b":
		m.engine.Begin(m.pane, false)
	case "B":
		m.engine.Begin(m.pane, true)
	case "r":
		m.reset()
	case "d":
		m.toggleDirection()
	case "a":
		m.fs = state.ToggleAccessibility(m.fs)
		m.pane.SetAccessibility(m.fs.Accessibility)
	case "y":
		if err := m.copy(m.snapshot()); err != nil {
			m.fs.Notice = "clipboard: " + err.Error()
		} else {
			m.fs.Notice = "copied geometry"
		}
	}
	return nil
}

// sync mirrors pane and engine state into the UI state.
func (m *model) sync() {
	off := m.pane.ContentOffset()
	in := m.pane.ContentInset()
	if m.fs.Horizontal {
		m.fs.Offset, m.fs.Trailing = off.X, in.Right
	} else {
		m.fs.Offset, m.fs.Trailing = off.Y, in.Bottom
	}
	m.fs.Dragging = m.pane.Dragging()
	st, _ := m.engine.State(m.pane)
	m.fs.Phase = st.Phase.String()
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(m.st.Title.Render("infiniscroll") + "  " + m.st.Faint.Render(m.src.Name()) + "\n")
	if m.fs.ShowHelp {
		lines := strings.Split(strings.TrimRight(m.help.View(m.fs), "\n"), "\n")
		for len(lines) < int(m.pane.Bounds().Height) {
			lines = append(lines, "")
		}
		b.WriteString(strings.Join(lines, "\n") + "\n")
	} else {
		b.WriteString(m.pane.View() + "\n")
	}
	b.WriteString(m.st.Faint.Render(util.Clip(m.bar.View(m.fs), m.fs.Width)) + "\n")
	b.WriteString(feed.RenderTags(m.fs, m.fs.NoColor))
	if m.fs.ShowLogs {
		b.WriteString("\n" + m.logs.View(m.fs.Width, m.st))
	}
	return b.String()
}
