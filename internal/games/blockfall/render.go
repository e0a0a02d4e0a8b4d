package blockfall

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

const (
	panelWidth = 16 // Side panel with preview and stats
	panelGap   = 2
	previewGap = 3 // Screen rows per preview entry

	blockRune = '█'
	ghostRune = '·'
)

// layout places the playfield and side panel on a screen of a given size.
type layout struct {
	cellW      int
	rows, cols int

	field core.Rect // Board interior, one row per board row
	box   core.Rect // Board border
	panel core.Rect
	hudY  int

	needW, needH int
	tooSmall     bool
}

// computeLayout centers the board and panel on a w x h screen.
func computeLayout(cfg config.BlockfallConfig, w, h int) layout {
	l := layout{
		cellW: max(cfg.Display.CellWidth, 1),
		rows:  cfg.Board.Rows,
		cols:  cfg.Board.Cols,
	}

	boxW := l.cols*l.cellW + 2
	boxH := l.rows + 2
	l.needW = boxW + panelGap + panelWidth
	l.needH = boxH + 1 // HUD line
	l.tooSmall = w < l.needW || h < l.needH

	x0 := max((w-l.needW)/2, 0)
	y0 := max((h-l.needH-1)/2, 0) // Keeps the row under the board free for key help

	l.hudY = y0
	l.box = core.NewRect(x0, y0+1, boxW, boxH)
	l.field = l.box.Inset(1)
	l.field.W = l.cols * l.cellW
	l.panel = core.NewRect(l.box.Right()+panelGap, l.box.Y, panelWidth, boxH)
	return l
}

// pointerSlot converts a screen column into a steering slot. With slots <= 0
// every board column is its own slot. ok is false outside the playfield.
func (l layout) pointerSlot(x, slots int) (slot, n int, ok bool) {
	if l.tooSmall || x < l.field.X || x >= l.field.Right() {
		return 0, 0, false
	}
	rel := x - l.field.X
	if slots <= 0 {
		return rel / l.cellW, l.cols, true
	}
	return rel * slots / l.field.W, slots, true
}

// kindColor maps piece kinds onto the screen palette.
func kindColor(k tetris.Kind) core.Color {
	switch k {
	case tetris.KindI:
		return core.ColorCyan
	case tetris.KindO:
		return core.ColorYellow
	case tetris.KindT:
		return core.ColorMagenta
	case tetris.KindS:
		return core.ColorGreen
	case tetris.KindZ:
		return core.ColorRed
	case tetris.KindJ:
		return core.ColorBlue
	case tetris.KindL:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.layout = computeLayout(g.cfg, dst.Width(), dst.Height())

	if g.err != nil {
		g.renderOverlay(dst, "Invalid configuration", g.err.Error())
		return
	}
	if g.engine == nil {
		return
	}
	if g.layout.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d, have %dx%d", g.layout.needW, g.layout.needH, dst.Width(), dst.Height()))
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderPanel(dst)

	switch {
	case g.engine.State() == tetris.StateGameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d  R: restart", g.engine.Score()))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the status line above the board.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf("%s  Score: %d  Lines: %d", g.Title(), g.engine.Score(), g.engine.Lines())
	if g.mode == ModeMarathon {
		hud += fmt.Sprintf("  Level: %d", g.Level())
	}
	dst.DrawTextCentered(g.layout.hudY, hud, core.ColorBrightWhite)
}

// renderBoard draws the border, settled cells, ghost and active piece.
func (g *Game) renderBoard(dst *core.Screen) {
	dst.DrawBox(g.layout.box, core.ColorGray)

	for _, c := range g.engine.Board().Settled() {
		g.drawCell(dst, c.Row, c.Col, core.Cell{Rune: blockRune, Color: kindColor(c.Kind)})
	}

	p, ok := g.engine.Active()
	if !ok {
		return
	}
	if g.cfg.Display.Ghost && g.engine.State() == tetris.StateRunning {
		for _, c := range g.engine.GhostCells() {
			g.drawCell(dst, c.Row, c.Col, core.Cell{Rune: ghostRune, Color: core.ColorDim})
		}
	}
	for _, c := range p.Cells() {
		g.drawCell(dst, c.Row, c.Col, core.Cell{Rune: blockRune, Color: kindColor(c.Kind)})
	}
}

// drawCell paints one board cell, which spans cellW screen columns.
func (g *Game) drawCell(dst *core.Screen, row, col int, cell core.Cell) {
	if row < 0 || row >= g.layout.rows || col < 0 || col >= g.layout.cols {
		return
	}
	x := g.layout.field.X + col*g.layout.cellW
	y := g.layout.field.Y + row
	for i := range g.layout.cellW {
		dst.SetCell(x+i, y, cell)
	}
}

// renderPanel draws the next-queue preview and the statistics.
func (g *Game) renderPanel(dst *core.Screen) {
	panel := g.layout.panel
	y := panel.Y
	line := func(text string, c core.Color) {
		if y < panel.Bottom() {
			dst.DrawTextColor(panel.X, y, text, c)
		}
		y++
	}

	if n := g.cfg.Display.PreviewCount; n > 0 {
		line("NEXT", core.ColorWhite)
		y++
		for _, k := range g.engine.NextQueue(n) {
			if y+2 > panel.Bottom() {
				break
			}
			g.drawPreview(dst, panel.X+1, y, k)
			y += previewGap
		}
	}

	line("SCORE", core.ColorWhite)
	line(fmt.Sprintf("%d", g.engine.Score()), core.ColorBrightWhite)
	line("LINES", core.ColorWhite)
	line(fmt.Sprintf("%d", g.engine.Lines()), core.ColorBrightWhite)
	if g.mode == ModeMarathon {
		line("LEVEL", core.ColorWhite)
		line(fmt.Sprintf("%d", g.Level()), core.ColorBrightWhite)
	}
}

// drawPreview draws a kind in its flattest rotation with the top-left
// occupied cell at (x, y).
func (g *Game) drawPreview(dst *core.Screen, x, y int, k tetris.Kind) {
	shape := previewShape(k)
	minRow, maxRow, minCol, maxCol := shape.Bounds()
	cell := core.Cell{Rune: blockRune, Color: kindColor(k)}

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if !shape[r][c] {
				continue
			}
			sx := x + (c-minCol)*g.layout.cellW
			for i := range g.layout.cellW {
				dst.SetCell(sx+i, y+r-minRow, cell)
			}
		}
	}
}

// previewShape returns the spawn rotation, or the first clockwise rotation
// when that one is flatter (the I piece spawns upright).
func previewShape(k tetris.Kind) tetris.Shape {
	spawn := tetris.ShapeOf(k, 0)
	turned := tetris.ShapeOf(k, 1)
	r0, r1, _, _ := spawn.Bounds()
	t0, t1, _, _ := turned.Bounds()
	if t1-t0 < r1-r0 {
		return turned
	}
	return spawn
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	textW := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2))
	box := core.NewRect((dst.Width()-textW-4)/2, (dst.Height()-5)/2, textW+4, 5)

	dst.DrawRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorWhite)
}
