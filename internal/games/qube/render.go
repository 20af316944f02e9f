package qube

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/qube-arcade/internal/core"
	"github.com/vovakirdan/qube-arcade/internal/games/qube/levels"
)

const (
	cellWidth  = 4 // Separator plus three content columns
	boardW     = levels.GridCols*cellWidth + 1
	hudHeight  = 2
	panelWidth = 22

	minScreenW = boardW + panelWidth + 3
	minScreenH = hudHeight + 2 + 6 + 1 // HUD, borders, a few rows, controls
)

// Glyphs for stage cells.
const (
	cubeGlyph      = "▓▓▓"
	emptyGlyph     = " · "
	markGlyph      = " × "
	advantageGlyph = " + "
)

// CubeColor returns the color a cube is drawn in by every frontend.
func CubeColor(c levels.Cell) core.Color {
	switch c {
	case levels.CellForbidden:
		return core.ColorRed
	case levels.CellAdvantage:
		return core.ColorGreen
	default:
		return core.ColorWhite
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardW - panelWidth - 2) / 2
	boardY := hudHeight

	visible := g.visibleRows()
	top := g.viewportTop(visible)

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY, top, visible)
	g.renderPanel(dst, boardX+boardW+2, boardY)

	boardH := visible + 2
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)

	dst.DrawTextCentered(g.screenH-1, g.Controls())
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// visibleRows returns how many stage rows fit on screen.
func (g *Game) visibleRows() int {
	room := g.screenH - hudHeight - 2 - 1
	return max(0, min(g.stageRows, room))
}

// viewportTop returns the first stage row shown, keeping the cursor in view.
func (g *Game) viewportTop(visible int) int {
	if visible >= g.stageRows {
		return 0
	}
	return core.Clamp(g.cursor.Y-visible/2, 0, g.stageRows-visible)
}

// renderHUD draws the title and score line.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	title := strings.ToUpper(g.Title())
	if g.mode != ModeGrid && len(g.levels) > 0 {
		title = fmt.Sprintf("%s - %s", title, g.Level().Title())
	}
	dst.DrawTextCentered(0, title)

	if g.mode == ModePlay {
		dst.DrawTextColored(boardX, 1, fmt.Sprintf("Score: %d", g.score), core.ColorBrightYellow)
	}
}

// renderBoard draws the visible part of the stage with cubes and marks.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY, top, visible int) {
	bottomY := boardY + visible + 1
	dst.DrawHLine(boardX, boardY, boardW, '─', core.ColorGray)
	dst.DrawHLine(boardX, bottomY, boardW, '─', core.ColorGray)
	for x := range levels.GridCols + 1 {
		sx := boardX + x*cellWidth
		top, bottom := '┬', '┴'
		switch x {
		case 0:
			top, bottom = '┌', '└'
		case levels.GridCols:
			top, bottom = '┐', '┘'
		}
		dst.SetColored(sx, boardY, top, core.ColorGray)
		dst.SetColored(sx, bottomY, bottom, core.ColorGray)
		dst.DrawVLine(sx, boardY+1, visible, '│', core.ColorGray)
	}

	if top > 0 {
		dst.SetColored(boardX+boardW, boardY, '↑', core.ColorGray)
	}
	if top+visible < g.stageRows {
		dst.SetColored(boardX+boardW, bottomY, '↓', core.ColorGray)
	}

	for i := range visible {
		y := top + i
		sy := boardY + 1 + i
		for x := range levels.GridCols {
			g.renderCell(dst, boardX+x*cellWidth+1, sy, x, y)
		}
	}
}

// renderCell draws the three content columns of stage cell (x, y).
func (g *Game) renderCell(dst *core.Screen, sx, sy, x, y int) {
	glyph, color := emptyGlyph, core.ColorGray

	cube, hasCube := g.CubeAt(x, y)
	switch {
	case hasCube:
		glyph, color = cubeGlyph, CubeColor(cube)
	case g.HasAdvantageMark(x, y):
		glyph, color = advantageGlyph, core.ColorBrightGreen
	}
	dst.DrawTextColored(sx, sy, glyph, color)

	if g.marked && g.mark == core.Pt(x, y) {
		if hasCube {
			dst.SetColored(sx+1, sy, '×', core.ColorBrightBlue)
		} else {
			dst.DrawTextColored(sx, sy, markGlyph, core.ColorBrightBlue)
		}
	}

	if cur, shown := g.Cursor(); shown && cur == core.Pt(x, y) {
		dst.SetColored(sx, sy, '[', core.ColorBrightYellow)
		dst.SetColored(sx+2, sy, ']', core.ColorBrightYellow)
	}
}

// renderPanel draws level information and the legend beside the board.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	line := func(text string, c core.Color) {
		dst.DrawTextColored(x, y, text, c)
		y++
	}

	if g.mode == ModeGrid {
		line(fmt.Sprintf("Grid %dx%d", levels.GridCols, g.stageRows), core.ColorDefault)
		return
	}

	line(fmt.Sprintf("Level %d/%d", g.levelIndex+1, len(g.levels)), core.ColorDefault)
	line(fmt.Sprintf("Puzzle %dx%d", g.puzzle.Cols(), g.puzzle.Rows()), core.ColorDefault)

	if g.mode == ModePlay {
		line(fmt.Sprintf("Stage rows: %d", g.stageRows), core.ColorDefault)
		line(fmt.Sprintf("Cubes left: %d", g.remaining()), core.ColorDefault)
		line(fmt.Sprintf("Captured:   %d", g.level.captured), core.ColorDefault)
		line(fmt.Sprintf("Escaped:    %d", g.level.escaped), core.ColorDefault)
		if g.pendingRows > 0 {
			line(fmt.Sprintf("Rows owed:  %d", g.pendingRows), core.ColorBrightRed)
		}
	}

	y++
	line("▓ normal", CubeColor(levels.CellNormal))
	line("▓ forbidden", CubeColor(levels.CellForbidden))
	line("▓ advantage", CubeColor(levels.CellAdvantage))
	line("× mark", core.ColorBrightBlue)
	if g.mode == ModePlay {
		line("+ advantage mark", core.ColorBrightGreen)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.won {
		g.drawOverlay(dst, centerX, centerY, "ALL PUZZLES CLEARED", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
		return
	}

	if g.gameOver {
		reason := "STAGE COLLAPSED"
		if g.crushed {
			reason = "CRUSHED"
		}
		g.drawOverlay(dst, centerX, centerY, reason, fmt.Sprintf("Score: %d", g.score), "Press R to restart")
		return
	}

	if g.levelCleared {
		head := "PUZZLE CLEARED"
		if g.level.perfect {
			head = "PERFECT!"
		}
		next := "Final puzzle!"
		if g.levelIndex < len(g.levels)-1 {
			next = "Next: " + g.levels[g.levelIndex+1].Title()
		}
		g.drawOverlay(dst, centerX, centerY, head, fmt.Sprintf("Puzzle score: %d", g.level.score), next)
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawText(x, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	switch g.mode {
	case ModeGrid:
		return "P: Pause | Q: Quit"
	case ModeStatic:
		return "Arrows/WASD: Move | Space: Mark | P: Pause | Q: Quit"
	default:
		return "Move: Arrows/WASD  Space: Mark  X: Advantage  F: Roll  P: Pause  Q: Quit"
	}
}
