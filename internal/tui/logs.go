package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"infiniscroll/internal/tui/util"
	"infiniscroll/internal/tui/widgets/editor"
)

const logPanelLines = 8

type logMsg string

func waitLog(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return logMsg(s)
	}
}

// logPanel is the scrollback shown under the feed: search, freeze and save.
type logPanel struct {
	lines     []string
	offset    int // lines scrolled up from the bottom
	wrap      bool
	frozen    bool
	frozenBuf []string
	saveDir   string
	// search state
	search editor.Line
	query  string
	idxs   []int
	pos    int
}

func newLogPanel() *logPanel {
	return &logPanel{saveDir: filepath.Join(".infiniscroll", "logs")}
}

func (l *logPanel) Append(s string) {
	if l.frozen {
		l.frozenBuf = append(l.frozenBuf, s)
		return
	}
	l.lines = append(l.lines, s)
}

// HandleKey consumes the keys the panel owns and returns a status message
// when there is something to report.
func (l *logPanel) HandleKey(msg tea.KeyMsg) (consumed bool, status string) {
	if l.search.Active {
		switch l.search.Handle(msg) {
		case editor.Commit:
			l.query = l.search.Buf
			l.computeSearch()
			l.jumpToResult(0)
		case editor.Cancel:
			l.query = ""
			l.idxs = nil
			l.pos = 0
		}
		return true, ""
	}
	switch msg.String() {
	case "/":
		l.search.Start("")
		return true, ""
	case "n":
		if len(l.idxs) == 0 && strings.TrimSpace(l.query) != "" {
			l.computeSearch()
		}
		if len(l.idxs) > 0 {
			l.jumpToResult(l.pos + 1)
		}
		return true, ""
	case "N":
		if len(l.idxs) == 0 && strings.TrimSpace(l.query) != "" {
			l.computeSearch()
		}
		if len(l.idxs) > 0 {
			l.jumpToResult(l.pos - 1)
		}
		return true, ""
	case "[":
		if l.offset < len(l.lines) {
			l.offset++
		}
		return true, ""
	case "]":
		if l.offset > 0 {
			l.offset--
		}
		return true, ""
	case "w":
		l.wrap = !l.wrap
		return true, ""
	case "f":
		l.frozen = !l.frozen
		if !l.frozen && len(l.frozenBuf) > 0 {
			l.lines = append(l.lines, l.frozenBuf...)
			l.frozenBuf = nil
		}
		if l.frozen {
			return true, "Logs frozen"
		}
		return true, "Logs resumed"
	case "S":
		path, err := l.save()
		if err != nil {
			return true, "Save failed: " + err.Error()
		}
		return true, "Saved logs to " + path
	}
	return false, ""
}

// computeSearch builds indexes of lines containing the query (case-insensitive)
func (l *logPanel) computeSearch() {
	l.idxs = nil
	l.pos = 0
	q := strings.ToLower(strings.TrimSpace(l.query))
	if q == "" {
		return
	}
	for i, ln := range l.lines {
		if strings.Contains(strings.ToLower(ln), q) {
			l.idxs = append(l.idxs, i)
		}
	}
}

func (l *logPanel) jumpToResult(pos int) {
	if len(l.idxs) == 0 {
		return
	}
	if pos < 0 {
		pos = len(l.idxs) - 1
	}
	if pos >= len(l.idxs) {
		pos = 0
	}
	l.pos = pos
	// put the match on the last visible line
	l.offset = max(len(l.lines)-(l.idxs[l.pos]+1), 0)
}

// window returns the visible slice bounds.
func (l *logPanel) window() (start, end int) {
	end = max(len(l.lines)-l.offset, 0)
	start = max(end-logPanelLines, 0)
	return start, end
}

func (l *logPanel) highlight(s string, idx int, st util.Styles) string {
	q := strings.ToLower(strings.TrimSpace(l.query))
	if q == "" || !containsIndex(l.idxs, idx) {
		return s
	}
	lower := strings.ToLower(s)
	if len(lower) != len(s) {
		// case folding moved byte offsets; leave the line alone
		return s
	}
	var b strings.Builder
	off := 0
	for {
		p := strings.Index(lower[off:], q)
		if p < 0 {
			break
		}
		p += off
		b.WriteString(s[off:p])
		b.WriteString(st.Highlight.Render(s[p : p+len(q)]))
		off = p + len(q)
	}
	b.WriteString(s[off:])
	return b.String()
}

func containsIndex(a []int, x int) bool {
	for _, v := range a {
		if v == x {
			return true
		}
	}
	return false
}

// View renders the panel in a bordered box width cells wide.
func (l *logPanel) View(width int, st util.Styles) string {
	var b strings.Builder
	if l.search.Active {
		b.WriteString(l.search.View("Search: ") + "\n")
	} else if len(l.idxs) > 0 {
		b.WriteString(st.Faint.Render(l.counter()) + "\n")
	}
	avail := max(width-4, 20)
	start, end := l.window()
	lines := make([]string, 0, end-start)
	for i, ln := range l.lines[start:end] {
		if !l.wrap {
			ln = util.Clip(ln, avail)
		}
		lines = append(lines, l.highlight(ln, start+i, st))
	}
	for len(lines) < logPanelLines {
		lines = append(lines, "")
	}
	box := st.Border
	if l.wrap {
		box = box.Width(avail + 2)
	}
	b.WriteString(box.Render(strings.Join(lines, "\n")))
	return b.String()
}

func (l *logPanel) counter() string {
	return fmt.Sprintf("[%d/%d] %s", l.pos+1, len(l.idxs), l.query)
}

func (l *logPanel) save() (string, error) {
	if err := os.MkdirAll(l.saveDir, 0o755); err != nil {
		return "", err
	}
	name := time.Now().Format("20060102_150405") + ".log"
	path := filepath.Join(l.saveDir, name)
	data := strings.Join(l.lines, "\n")
	return path, os.WriteFile(path, []byte(data), 0644)
}
