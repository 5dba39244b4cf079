package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"infiniscroll/internal/config"
)

func press(t *testing.T, m settingsModel, msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	t.Helper()
	nm, cmd := m.Update(msg)
	sm, ok := nm.(settingsModel)
	if !ok {
		t.Fatalf("Update returned %T", nm)
	}
	return sm, cmd
}

func TestSettingsAdjust(t *testing.T) {
	m := newSettingsModel(config.Default())

	m, _ = press(t, m, runes("l"))
	if m.cfg.Scroll.Direction != "horizontal" {
		t.Fatalf("direction = %q", m.cfg.Scroll.Direction)
	}
	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, runes("+"))
	if m.cfg.Scroll.TriggerOffset != 3 {
		t.Fatalf("trigger = %g", m.cfg.Scroll.TriggerOffset)
	}
	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, runes("-"))
	if m.cfg.Scroll.IndicatorMargin != 0 {
		t.Fatalf("margin went negative: %g", m.cfg.Scroll.IndicatorMargin)
	}
	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, runes("l"))
	if m.cfg.Scroll.IndicatorStyle == "dot" {
		t.Fatalf("style did not cycle")
	}
	m, _ = press(t, m, runes("h"))
	if m.cfg.Scroll.IndicatorStyle != "dot" {
		t.Fatalf("style = %q", m.cfg.Scroll.IndicatorStyle)
	}
	if !strings.Contains(m.View(), "> Indicator style:") {
		t.Fatalf("cursor row not marked:\n%s", m.View())
	}
}

func TestSettingsEnterValidates(t *testing.T) {
	m := newSettingsModel(config.Default())
	m.cursor = fSource
	m, _ = press(t, m, runes("l"))
	if m.cfg.Feed.Source != "file" {
		t.Fatalf("source = %q", m.cfg.Feed.Source)
	}
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.done || cmd != nil || !strings.HasPrefix(m.msg, "! ") {
		t.Fatalf("expected a validation error, got done=%v msg=%q", m.done, m.msg)
	}

	dir := t.TempDir()
	feed := filepath.Join(dir, "feed.txt")
	if err := os.WriteFile(feed, []byte("a\nb\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.cursor = fPath
	m, _ = press(t, m, runes("e"))
	if !m.input.Active {
		t.Fatalf("editor not active")
	}
	m.input.Buf = filepath.Join(dir, "fe")
	m.computeSuggestions()
	if len(m.suggest) != 1 || !strings.HasSuffix(m.suggest[0], "feed.txt") {
		t.Fatalf("suggest = %v", m.suggest)
	}
	m.input.Buf = feed
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.cfg.Feed.Path != feed {
		t.Fatalf("path = %q", m.cfg.Feed.Path)
	}

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.done || cmd == nil {
		t.Fatalf("expected done, msg=%q", m.msg)
	}
}

func TestSettingsMissingPathAndCancel(t *testing.T) {
	m := newSettingsModel(config.Default())
	m.cursor = fPath
	m, _ = press(t, m, runes("e"))
	m.input.Buf = filepath.Join(t.TempDir(), "nope.txt")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.HasPrefix(m.msg, "! not found: ") || m.cfg.Feed.Path != "" {
		t.Fatalf("msg=%q path=%q", m.msg, m.cfg.Feed.Path)
	}

	m, cmd := press(t, m, runes("q"))
	if !m.cancelled || cmd == nil {
		t.Fatalf("q should cancel")
	}
}
