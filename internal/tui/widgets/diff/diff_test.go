package diff

import (
	"strings"
	"testing"
)

func TestRenderRewrite(t *testing.T) {
	want := "a\nb\nc\n"
	got := "a\nx\nc\n"
	out := Render(want, got, true)
	for _, w := range []string{"--- expected\n", "+++ actual\n", "  a\n", "- b\n", "+ x\n", "  c\n"} {
		if !strings.Contains(out, w) {
			t.Fatalf("expected %q in:\n%s", w, out)
		}
	}
}

func TestRenderFoldsUnchanged(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "same")
	}
	want := strings.Join(append(lines, "old", "tail"), "\n") + "\n"
	got := strings.Join(append(lines, "tail"), "\n") + "\n"
	out := Render(want, got, true)
	if !strings.Contains(out, "  … 18 unchanged\n") {
		t.Fatalf("expected fold marker in:\n%s", out)
	}
	if !strings.Contains(out, "- old\n") {
		t.Fatalf("expected removed line in:\n%s", out)
	}
}

func TestStats(t *testing.T) {
	a, r := Stats("a\nb\n", "a\nc\nd\n")
	if a != 2 || r != 1 {
		t.Fatalf("got +%d -%d", a, r)
	}
	if Render("same", "same", true) != "No changes\n" {
		t.Fatalf("expected no-change marker")
	}
}
