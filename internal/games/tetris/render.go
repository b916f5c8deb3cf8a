package tetris

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
)

const (
	cellW    = 2 // Each grid column is two characters wide
	panelW   = 12
	panelGap = 2

	wellW = engine.Cols*cellW + 2 // +2 for borders
	wellH = engine.Rows + 2

	// MinWidth and MinHeight are the smallest screen the layout fits in.
	MinWidth  = wellW + panelGap + panelW
	MinHeight = wellH + 1 // +1 for title
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenW < MinWidth || g.screenH < MinHeight {
		g.renderTooSmall(dst)
		return
	}

	th := currentTheme()
	snap := g.session.Snapshot()

	left := core.Clamp((g.screenW-MinWidth)/2, 0, g.screenW-MinWidth)
	well := core.NewRect(left, 1, wellW, wellH)
	inner := core.NewRect(well.X+1, well.Y+1, engine.Cols*cellW, engine.Rows)

	dst.DrawTextColored(well.X+(well.W-len("TETRIS"))/2, 0, "TETRIS", core.ColorBrightWhite)
	dst.DrawBox(well)

	for row := 0; row < engine.Rows; row++ {
		for col := 0; col < engine.Cols; col++ {
			if v, ok := engine.VariantForCell(snap.Cells[row][col]); ok {
				drawCell(dst, inner, row, col, th.Block, th.Colors[v])
			}
		}
	}

	if th.ShowGhost && snap.HasGhost && snap.Ghost != snap.Piece {
		for _, c := range snap.Ghost.Cells() {
			drawCell(dst, inner, c.Row, c.Col, th.Ghost, core.ColorGray)
		}
	}
	if snap.State == engine.StateRunning {
		for _, c := range snap.Piece.Cells() {
			drawCell(dst, inner, c.Row, c.Col, th.Block, th.Colors[snap.Piece.Variant])
		}
	}

	g.renderPanel(dst, well.Right()+panelGap, well.Y, snap, th)
	g.renderOverlays(dst, inner, snap)
}

// drawCell paints one grid cell; cells outside the visible well (rows
// above the top during spawn) are skipped.
func drawCell(dst *core.Screen, inner core.Rect, row, col int, glyph [2]rune, c core.Color) {
	x := inner.X + col*cellW
	y := inner.Y + row
	if !inner.Contains(x, y) {
		return
	}
	dst.SetColored(x, y, glyph[0], c)
	dst.SetColored(x+1, y, glyph[1], c)
}

func (g *Game) renderPanel(dst *core.Screen, x, y int, snap engine.Snapshot, th Theme) {
	dst.DrawText(x, y, "SCORE")
	dst.DrawTextColored(x, y+1, fmt.Sprintf("%d", snap.Score), core.ColorBrightYellow)
	dst.DrawText(x, y+3, "LINES")
	dst.DrawTextColored(x, y+4, fmt.Sprintf("%d", snap.Lines), core.ColorBrightCyan)

	hintY := y + 7
	if th.ShowNext {
		dst.DrawText(x, y+6, "NEXT")
		box := core.NewRect(x, y+7, engine.MaskSize*cellW+2, engine.MaskSize+2)
		dst.DrawBox(box)
		boxInner := core.NewRect(box.X+1, box.Y+1, engine.MaskSize*cellW, engine.MaskSize)
		mask := engine.MaskFor(snap.Next, 0)
		for r, line := range mask {
			for c, v := range line {
				if v != 0 {
					drawCell(dst, boxInner, r, c, th.Block, th.Colors[snap.Next])
				}
			}
		}
		hintY = box.Bottom() + 1
	}

	for i, hint := range []string{"←→ move", "↑ rotate", "↓ soft", "⏎ hard", "P pause"} {
		dst.DrawTextColored(x, hintY+i, hint, core.ColorGray)
	}
}

func (g *Game) renderOverlays(dst *core.Screen, inner core.Rect, snap engine.Snapshot) {
	cx, cy := inner.Center()
	banner := func(y int, text string, c core.Color) {
		dst.DrawTextColored(cx-len([]rune(text))/2, y, text, c)
	}

	switch {
	case snap.State == engine.StateGameOver:
		banner(cy-1, " GAME OVER ", core.ColorBrightRed)
		banner(cy+1, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorBrightWhite)
		banner(cy+2, " R to restart ", core.ColorGray)
	case g.paused:
		banner(cy, " PAUSED ", core.ColorBrightYellow)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", MinWidth, MinHeight))
}
