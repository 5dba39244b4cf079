package editor

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Event is the outcome of a key handed to a Line.
type Event int

const (
	Ignored Event = iota
	Changed
	Commit
	Cancel
)

// Line is a single-line input buffer shared by the log search and the
// settings editor.
type Line struct {
	Buf    string
	Active bool
}

// Start activates the line with seed as its content.
func (l *Line) Start(seed string) {
	l.Active = true
	l.Buf = seed
}

// Handle applies a key. enter commits and esc cancels; both deactivate.
func (l *Line) Handle(msg tea.KeyMsg) Event {
	if !l.Active {
		return Ignored
	}
	switch msg.Type {
	case tea.KeyEnter:
		l.Active = false
		return Commit
	case tea.KeyEsc:
		l.Active = false
		return Cancel
	case tea.KeyBackspace, tea.KeyCtrlH:
		if r := []rune(l.Buf); len(r) > 0 {
			l.Buf = string(r[:len(r)-1])
		}
		return Changed
	case tea.KeyCtrlU:
		l.Buf = ""
		return Changed
	case tea.KeySpace:
		l.Buf += " "
		return Changed
	case tea.KeyRunes:
		l.Buf += string(msg.Runes)
		return Changed
	}
	return Ignored
}

// View renders the prompt, buffer and a block cursor when active.
func (l Line) View(prompt string) string {
	if l.Active {
		return prompt + l.Buf + "█"
	}
	return prompt + l.Buf
}
