package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"infiniscroll/internal/tui/util"
)

// Context is the number of unchanged lines kept around each change.
const Context = 2

type styles struct {
	delLine, addLine, delChar, addChar, faint lipgloss.Style
}

func newStyles(noColor bool) styles {
	if util.NoColor(noColor) {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain}
	}
	return styles{
		delLine: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}),
		addLine: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}),
		delChar: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Underline(true),
		addChar: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true),
		faint:   lipgloss.NewStyle().Faint(true),
	}
}

type op struct {
	kind  dmp.Operation
	lines []string
}

func lineOps(want, got string) []op {
	d := dmp.New()
	a, b, table := d.DiffLinesToChars(want, got)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), table)
	out := make([]op, 0, len(diffs))
	for _, df := range diffs {
		lines := strings.Split(strings.TrimSuffix(df.Text, "\n"), "\n")
		out = append(out, op{kind: df.Type, lines: lines})
	}
	return out
}

// Stats counts added and removed lines.
func Stats(want, got string) (added, removed int) {
	for _, o := range lineOps(want, got) {
		switch o.kind {
		case dmp.DiffInsert:
			added += len(o.lines)
		case dmp.DiffDelete:
			removed += len(o.lines)
		}
	}
	return added, removed
}

// Render renders a unified diff of want against got with line- and
// char-level highlights. Long unchanged runs are folded.
func Render(want, got string, noColor bool) string {
	if want == got {
		return "No changes\n"
	}
	st := newStyles(noColor)
	ops := lineOps(want, got)
	var sb strings.Builder
	sb.WriteString(st.delLine.Render("--- expected") + "\n")
	sb.WriteString(st.addLine.Render("+++ actual") + "\n")
	for i := 0; i < len(ops); i++ {
		o := ops[i]
		switch o.kind {
		case dmp.DiffEqual:
			writeEqual(&sb, st, o.lines, i > 0, i < len(ops)-1)
		case dmp.DiffDelete:
			// a delete followed by an insert of the same size is a rewrite
			if i+1 < len(ops) && ops[i+1].kind == dmp.DiffInsert && len(ops[i+1].lines) == len(o.lines) {
				for j := range o.lines {
					writePair(&sb, st, o.lines[j], ops[i+1].lines[j])
				}
				i++
				continue
			}
			for _, l := range o.lines {
				sb.WriteString(st.delLine.Render("- "+l) + "\n")
			}
		case dmp.DiffInsert:
			for _, l := range o.lines {
				sb.WriteString(st.addLine.Render("+ "+l) + "\n")
			}
		}
	}
	return sb.String()
}

func writeEqual(sb *strings.Builder, st styles, lines []string, before, after bool) {
	head, tail := 0, 0
	if before {
		head = Context
	}
	if after {
		tail = Context
	}
	if head+tail >= len(lines) {
		for _, l := range lines {
			sb.WriteString("  " + st.faint.Render(l) + "\n")
		}
		return
	}
	for _, l := range lines[:head] {
		sb.WriteString("  " + st.faint.Render(l) + "\n")
	}
	sb.WriteString(st.faint.Render(fmt.Sprintf("  … %d unchanged", len(lines)-head-tail)) + "\n")
	for _, l := range lines[len(lines)-tail:] {
		sb.WriteString("  " + st.faint.Render(l) + "\n")
	}
}

func writePair(sb *strings.Builder, st styles, before, after string) {
	d := dmp.New()
	diffs := d.DiffMain(before, after, false)
	diffs = d.DiffCleanupSemantic(diffs)
	sb.WriteString(st.delLine.Render("- "))
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			sb.WriteString(st.delChar.Render(df.Text))
		case dmp.DiffEqual:
			sb.WriteString(st.delLine.Render(df.Text))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(st.addLine.Render("+ "))
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffInsert:
			sb.WriteString(st.addChar.Render(df.Text))
		case dmp.DiffEqual:
			sb.WriteString(st.addLine.Render(df.Text))
		}
	}
	sb.WriteString("\n")
}
