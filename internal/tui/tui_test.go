package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"infiniscroll/internal/config"
	"infiniscroll/internal/feedsrc"
	"infiniscroll/internal/scroll"
)

// harness feeds a model the way the bubbletea runtime would, minus real time.
// Init is never called since waitLog blocks on the log channel.
type harness struct {
	t    *testing.T
	m    *model
	ft   *fakeTicks
	quit bool
}

func newHarness(t *testing.T, total int) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Feed.PageSize = 5
	cfg.Feed.Total = total
	cfg.Feed.Latency.Duration = 0
	cfg.UI.NoColor = true
	m := newModel(Options{Config: cfg, Source: &feedsrc.Synthetic{Total: total}})
	ft := &fakeTicks{}
	m.pane.tick = ft.tick
	t.Cleanup(m.cancel)
	return &harness{t: t, m: m, ft: ft}
}

func (h *harness) send(msg tea.Msg) {
	_, cmd := h.m.Update(msg)
	h.exec(cmd)
}

func (h *harness) exec(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.exec(c)
		}
	case spinner.TickMsg:
		// spinner frames would need real time; drop them
	case tea.QuitMsg:
		h.quit = true
	default:
		h.send(msg)
	}
}

func (h *harness) key(k string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func (h *harness) run(d time.Duration) {
	h.ft.advance(d, h.send)
}

// start sizes the window (pane height 10) and lets the first page land.
func (h *harness) start() {
	h.send(tea.WindowSizeMsg{Width: 40, Height: 13})
	h.run(3 * time.Second)
}

func drainLogs(m *model) []string {
	var out []string
	for {
		select {
		case s := <-m.logCh:
			out = append(out, s)
		default:
			return out
		}
	}
}

func TestFirstSizeLoadsFirstPage(t *testing.T) {
	h := newHarness(t, 12)
	h.start()

	require.Len(t, h.m.items, 5)
	require.Equal(t, 1, h.m.fs.Pages)
	require.False(t, h.m.fs.Fetching)
	require.Equal(t, "idle", h.m.fs.Phase)
	require.Equal(t, 0.0, h.m.fs.Offset)
	require.Equal(t, 0.0, h.m.fs.Trailing)
	require.Equal(t, 10.0, h.m.pane.Bounds().Height)

	logs := drainLogs(h.m)
	require.Contains(t, logs, "source: synthetic")
	require.Contains(t, logs, "fetch offset=0 limit=5")
	require.Contains(t, logs, "page 1: 5 items (total 5, done=false)")
	require.Contains(t, logs, "load finished")

	v := h.m.View()
	require.Contains(t, v, "item 1 ")
	require.Contains(t, v, "items:5")
}

func TestScrollingToEndPagesUntilExhausted(t *testing.T) {
	h := newHarness(t, 12)
	h.start()

	for _, want := range []int{10, 12} {
		h.key("G")
		h.run(3 * time.Second)
		require.Len(t, h.m.items, want)
		require.Equal(t, "idle", h.m.fs.Phase)
	}
	require.True(t, h.m.fs.Exhausted)
	require.Equal(t, "end of feed (12 items)", h.m.fs.Notice)

	// the gate holds once the source is done
	h.key("G")
	require.False(t, h.m.engine.IsLoading(h.m.pane))
	h.key("B")
	require.False(t, h.m.engine.IsLoading(h.m.pane))
	h.run(3 * time.Second)
	require.Len(t, h.m.items, 12)
	require.Equal(t, 2.0, h.m.fs.Offset, "bounced back from the overscroll")
}

func TestResetDropsLatePagesAndStartsOver(t *testing.T) {
	h := newHarness(t, 12)
	h.start()
	oldGen := h.m.gen

	h.key("r")
	require.Equal(t, oldGen+1, h.m.gen)
	require.Empty(t, h.m.items)
	require.Equal(t, "reset", h.m.fs.Notice)

	h.send(pageMsg{gen: oldGen, page: feedsrc.Page{Items: []feedsrc.Item{{ID: 99, Title: "stale"}}}})
	require.Empty(t, h.m.items)

	h.run(3 * time.Second)
	require.Len(t, h.m.items, 5)
	require.Equal(t, 1, h.m.items[0].ID)
	require.Equal(t, 1, h.m.fs.Pages)
}

func TestFailedPageIsRetryable(t *testing.T) {
	h := newHarness(t, 12)
	h.start()

	h.send(pageMsg{gen: h.m.gen, err: errors.New("boom")})
	require.Equal(t, "boom", h.m.fs.LastError)
	require.False(t, h.m.fs.Fetching)
	require.Contains(t, drainLogs(h.m), "fetch failed: boom")

	h.key("B")
	h.run(3 * time.Second)
	require.Len(t, h.m.items, 10)
	require.Empty(t, h.m.fs.LastError)
}

func TestToggleDirectionReattaches(t *testing.T) {
	h := newHarness(t, 12)
	h.start()

	h.key("d")
	require.True(t, h.m.fs.Horizontal)
	require.Equal(t, scroll.Horizontal, h.m.pane.Axis())
	st, ok := h.m.engine.State(h.m.pane)
	require.True(t, ok)
	require.True(t, st.Initialized)
	require.Equal(t, scroll.Horizontal, st.Direction)
	require.Contains(t, h.m.View(), "#1 item 1")

	h.key("d")
	require.False(t, h.m.fs.Horizontal)
	require.Len(t, h.m.items, 5)
}

func TestHelpLogsAndCopy(t *testing.T) {
	h := newHarness(t, 12)
	h.start()

	h.key("?")
	require.Contains(t, h.m.View(), "Help (Axis: vertical)")
	h.key("l")
	require.False(t, h.m.fs.ShowHelp)
	require.True(t, h.m.fs.ShowLogs)
	require.Equal(t, 3.0, h.m.pane.Bounds().Height, "never squeezed below three rows")

	// the log panel owns "f" while it is open
	h.key("f")
	require.Equal(t, "Logs frozen", h.m.fs.Notice)

	var copied string
	h.m.copy = func(s string) error { copied = s; return nil }
	h.key("y")
	require.Equal(t, "copied geometry", h.m.fs.Notice)
	require.Contains(t, copied, "axis=vertical")
	require.Contains(t, copied, "phase=idle")
	require.Contains(t, copied, "items=5")

	h.m.copy = func(string) error { return errors.New("no clipboard") }
	h.key("y")
	require.Equal(t, "clipboard: no clipboard", h.m.fs.Notice)

	h.key("q")
	require.True(t, h.quit)
}

func TestLogLinesReachThePanel(t *testing.T) {
	h := newHarness(t, 12)
	var teed []string
	h.m.tee = func(s string) { teed = append(teed, s) }
	h.start()

	// the returned waitLog command would block, so skip exec here
	for _, s := range drainLogs(h.m) {
		h.m.Update(logMsg(s))
	}
	require.Equal(t, teed, h.m.logs.lines)
	h.key("l")
	require.True(t, strings.Contains(h.m.View(), "load finished"))
	require.Len(t, h.m.logs.lines, len(teed))
}
