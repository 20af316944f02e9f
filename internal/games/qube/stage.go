package qube

import (
	"slices"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/qube-arcade/internal/core"
	"github.com/vovakirdan/qube-arcade/internal/games/qube/levels"
)

// cellIndex packs a stage coordinate into a set key.
func cellIndex(x, y int) int {
	return y*levels.GridCols + x
}

// cellPoint unpacks a set key.
func cellPoint(idx int) core.Point {
	return core.Pt(idx%levels.GridCols, idx/levels.GridCols)
}

// stageRect returns the playable area in stage coordinates.
func (g *Game) stageRect() core.Rect {
	return core.NewRect(0, 0, levels.GridCols, g.stageRows)
}

// onStage reports whether (x, y) is a stage cell.
func (g *Game) onStage(x, y int) bool {
	return g.stageRect().Contains(x, y)
}

// CubeAt returns the live cube occupying stage cell (x, y), if any.
// Cubes above the stage are not reported.
func (g *Game) CubeAt(x, y int) (levels.Cell, bool) {
	if !g.onStage(x, y) {
		return levels.CellCleared, false
	}
	cell, ok := g.puzzle.At(x-g.colOffset, y-g.offset)
	if !ok || !cell.Live() {
		return levels.CellCleared, false
	}
	return cell, true
}

// clearCube removes the cube at stage cell (x, y).
func (g *Game) clearCube(x, y int) {
	g.puzzle[y-g.offset][x-g.colOffset] = levels.CellCleared
}

// moveCursor moves the cursor by (dx, dy), clamped to the stage.
// While playing the cursor cannot walk into a cube.
func (g *Game) moveCursor(dx, dy int) {
	next := g.stageRect().ClampPoint(g.cursor.Add(dx, dy))
	if g.mode == ModePlay {
		if _, blocked := g.CubeAt(next.X, next.Y); blocked {
			return
		}
	}
	g.cursor = next
}

// award adds points to the game and level score.
func (g *Game) award(points int) {
	g.score += points
	g.level.score += points
}

// capture takes the cube on stage cell p, if there is one.
func (g *Game) capture(p core.Point) bool {
	cell, ok := g.CubeAt(p.X, p.Y)
	if !ok {
		return false
	}
	g.clearCube(p.X, p.Y)

	switch cell {
	case levels.CellNormal:
		g.award(g.cfg.Scoring.NormalPoints)
		g.level.captured++
	case levels.CellAdvantage:
		g.award(g.cfg.Scoring.NormalPoints)
		g.level.captured++
		g.advantage.Add(cellIndex(p.X, p.Y))
	case levels.CellForbidden:
		g.level.forbidden++
		g.level.score -= g.cfg.Scoring.ForbiddenPenalty
		g.score = max(0, g.score-g.cfg.Scoring.ForbiddenPenalty)
		g.pendingRows++
	}
	return true
}

// detonateAdvantage captures every cube within one cell of an advantage
// mark. Advantage cubes captured by the blast leave new marks.
func (g *Game) detonateAdvantage() int {
	if g.advantage.Len() == 0 {
		return 0
	}

	area := intmap.NewSet[int](g.advantage.Len() * 9)
	for idx := range g.advantage.All() {
		center := cellPoint(idx)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				p := center.Add(dx, dy)
				if g.onStage(p.X, p.Y) {
					area.Add(cellIndex(p.X, p.Y))
				}
			}
		}
	}
	g.advantage.Clear()

	captured := 0
	for _, idx := range slices.Sorted(area.All()) {
		if g.capture(cellPoint(idx)) {
			captured++
		}
	}
	return captured
}

// roll moves the puzzle one row towards the player. The row pushed past
// the last stage row falls off; live normal or advantage cubes in it cost
// a stage row once the puzzle ends.
func (g *Game) roll() {
	if g.puzzle == nil {
		return
	}
	g.offset++

	if r := g.stageRows - g.offset; r >= 0 && r < g.puzzle.Rows() {
		lost := false
		for c, cell := range g.puzzle[r] {
			if !cell.Live() {
				continue
			}
			if cell != levels.CellForbidden {
				g.level.escaped++
				lost = true
			}
			g.puzzle[r][c] = levels.CellCleared
		}
		if lost {
			g.pendingRows++
		}
	}

	g.pushCursor()
}

// pushCursor moves the cursor out from under cubes that rolled onto it.
// A cursor pushed off the last row is crushed.
func (g *Game) pushCursor() {
	for {
		if _, ok := g.CubeAt(g.cursor.X, g.cursor.Y); !ok {
			return
		}
		if g.cursor.Y+1 >= g.stageRows {
			g.crushed = true
			g.gameOver = true
			return
		}
		g.cursor.Y++
	}
}

// remaining counts live cubes the player still has to capture.
func (g *Game) remaining() int {
	return g.puzzle.Count(levels.CellNormal) + g.puzzle.Count(levels.CellAdvantage)
}

// liveCubes counts every cube still in the puzzle, forbidden ones included.
func (g *Game) liveCubes() int {
	return g.remaining() + g.puzzle.Count(levels.CellForbidden)
}

// checkFinished ends the puzzle once no live cube is left in it. Forbidden
// cubes have to roll off the stage (or be captured) before it ends.
func (g *Game) checkFinished() {
	if g.puzzle == nil || g.levelCleared || g.liveCubes() > 0 {
		return
	}

	g.level.perfect = g.level.captured > 0 && g.level.escaped == 0 && g.level.forbidden == 0
	if g.level.perfect {
		g.award(g.cfg.Scoring.PerfectBonus)
	}

	g.events = append(g.events, core.Event{
		Kind:    core.EventLevelFinished,
		LevelID: g.Level().ID,
		Score:   g.level.score,
		Perfect: g.level.perfect,
		Count:   g.level.captured,
		Escaped: g.level.escaped,
	})

	g.marked = false
	g.advantage.Clear()
	g.levelCleared = true
	g.clearTicks = 0
}

// dropRows removes the rows owed for the finished puzzle from the far end
// of the stage and pulls the cursor back onto it.
func (g *Game) dropRows() {
	for ; g.pendingRows > 0 && g.stageRows > 0; g.pendingRows-- {
		g.stageRows--
		g.events = append(g.events, core.Event{
			Kind:    core.EventRowLost,
			LevelID: g.Level().ID,
			Count:   g.stageRows,
		})
	}
	g.pendingRows = 0

	g.cursor = g.stageRect().ClampPoint(g.cursor)
	if g.marked && !g.stageRect().ContainsPoint(g.mark) {
		g.marked = false
	}

	if g.stageRows < g.cfg.Stage.MinRows {
		g.gameOver = true
	}
}
