package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestTypeAndCommit(t *testing.T) {
	var l Line
	if l.Handle(runes("x")) != Ignored { t.Fatalf("inactive line should ignore keys") }
	l.Start("ab")
	l.Handle(runes("c"))
	l.Handle(tea.KeyMsg{Type: tea.KeySpace})
	l.Handle(runes("東"))
	l.Handle(tea.KeyMsg{Type: tea.KeyBackspace})
	if l.Buf != "abc " { t.Fatalf("got %q", l.Buf) }
	if l.View("> ") != "> abc █" { t.Fatalf("view %q", l.View("> ")) }
	if l.Handle(tea.KeyMsg{Type: tea.KeyEnter}) != Commit || l.Active { t.Fatalf("enter should commit") }
}

func TestCancel(t *testing.T) {
	var l Line
	l.Start("")
	if l.Handle(tea.KeyMsg{Type: tea.KeyEsc}) != Cancel || l.Active { t.Fatalf("esc should cancel") }
}
