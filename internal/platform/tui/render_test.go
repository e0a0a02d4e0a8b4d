package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(1, 1, "xy")

	lines := strings.Split(RenderScreen(s), "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() produced %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "abc") {
		t.Errorf("line 0 = %q, expected it to contain abc", lines[0])
	}
	if !strings.Contains(lines[1], "xy") {
		t.Errorf("line 1 = %q, expected it to contain xy", lines[1])
	}
}

func TestRenderScreenKeepsEveryRune(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.SetCell(0, 0, core.Cell{Rune: '█', Color: core.ColorCyan})
	s.SetCell(1, 0, core.Cell{Rune: '█', Color: core.ColorCyan})
	s.SetCell(2, 0, core.Cell{Rune: '·', Color: core.ColorDim})
	s.SetCell(3, 0, core.Cell{Rune: '│', Color: core.ColorGray})

	out := RenderScreen(s)
	for _, r := range "██·│" {
		if !strings.ContainsRune(out, r) {
			t.Errorf("RenderScreen() lost %q: %q", r, out)
		}
	}
}

func TestStyleForEveryColor(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorDim; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for %v", c)
		}
	}
	if got := styleFor(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("styleFor(unknown).Render() = %q, expected plain text", got)
	}
}
