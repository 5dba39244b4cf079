package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Clip truncates s to width display cells with an ellipsis.
func Clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// Pad right-fills s with blanks to width display cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// CutCells returns exactly n display cells of s starting at cell from. Wide
// runes cut by either edge are replaced with blanks.
func CutCells(s string, from, n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	col, out := 0, 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		end := col + w
		switch {
		case end <= from:
		case col < from:
			// straddles the left edge
			k := min(end-from, n-out)
			b.WriteString(strings.Repeat(" ", k))
			out += k
		case out+w > n:
			b.WriteString(strings.Repeat(" ", n-out))
			out = n
		default:
			b.WriteRune(r)
			out += w
		}
		col = end
		if out >= n {
			break
		}
	}
	if out < n {
		b.WriteString(strings.Repeat(" ", n-out))
	}
	return b.String()
}
