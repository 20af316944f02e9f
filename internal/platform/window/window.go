//go:build ebiten

// Package window runs Qube in a desktop window with Ebitengine, as an
// alternative to the terminal frontend. Build with -tags ebiten.
package window

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/qube-arcade/internal/core"
	"github.com/vovakirdan/qube-arcade/internal/games/qube"
	"github.com/vovakirdan/qube-arcade/internal/games/qube/levels"
	"github.com/vovakirdan/qube-arcade/internal/storage"
)

// Available reports whether this binary was built with the window frontend.
const Available = true

var errQuit = errors.New("window: quit")

// keyBindings maps keys to actions; all fire on the frame they go down.
var keyBindings = []struct {
	keys   []ebiten.Key
	action core.Action
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, core.ActionUp},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, core.ActionDown},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, core.ActionLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, core.ActionRight},
	{[]ebiten.Key{ebiten.KeySpace}, core.ActionMark},
	{[]ebiten.Key{ebiten.KeyX}, core.ActionAdvantage},
	{[]ebiten.Key{ebiten.KeyF}, core.ActionFastForward},
	{[]ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}, core.ActionPause},
	{[]ebiten.Key{ebiten.KeyR}, core.ActionRestart},
}

// app adapts a qube.Game to ebiten.Game.
type app struct {
	game   *qube.Game
	store  *storage.Store
	logger *log.Logger
	rc     core.RuntimeConfig
	saved  bool
}

// Run opens a window and plays game until it is closed or Q is pressed.
// Finished puzzles and final scores are saved to store when it is not nil.
func Run(game *qube.Game, store *storage.Store, logger *log.Logger, tickRate int) error {
	if tickRate <= 0 {
		tickRate = 60
	}
	// The game lays itself out for a terminal; give it a roomy one.
	rc := core.RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: tickRate}
	game.Reset(rc)

	a := &app{game: game, store: store, logger: logger, rc: rc}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetTPS(tickRate)

	err := ebiten.RunGame(a)
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

// Update advances the game by one tick.
func (a *app) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return errQuit
	}

	in := core.NewInputFrame()
	for _, b := range keyBindings {
		for _, k := range b.keys {
			if inpututil.IsKeyJustPressed(k) {
				in.Set(b.action)
			}
		}
	}

	if in.Has(core.ActionRestart) && a.game.State().GameOver {
		a.game.Reset(a.rc)
		a.saved = false
		return nil
	}

	res := a.game.Step(in)
	for _, ev := range res.Events {
		a.record(ev)
	}
	if res.State.GameOver && !a.saved && res.State.Score > 0 {
		if a.store != nil {
			if _, err := a.store.SaveScore(a.game.ID(), res.State.Score); err != nil {
				a.logger.Warn("could not save score", "error", err)
			}
		}
		a.saved = true
	}
	return nil
}

// record persists a finished puzzle.
func (a *app) record(ev core.Event) {
	if ev.Kind != core.EventLevelFinished || a.store == nil {
		return
	}
	_, err := a.store.SaveLevelResult(storage.LevelResult{
		GameID:   a.game.ID(),
		LevelID:  ev.LevelID,
		Score:    ev.Score,
		Perfect:  ev.Perfect,
		Captured: ev.Count,
		Escaped:  ev.Escaped,
	})
	if err != nil {
		a.logger.Warn("could not save level result", "level", ev.LevelID, "error", err)
	}
}

// Draw renders the stage, cubes, marks and side panel.
func (a *app) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x10, 0x12, 0x1a, 0xff})

	rows := a.game.StageRows()
	cur, showCursor := a.game.Cursor()
	mark, marked := a.game.Mark()

	for y := range rows {
		for x := range levels.GridCols {
			px := float32(boardX + x*cellSize)
			py := float32(boardY + y*cellSize)
			size := float32(cellSize - cellGap)

			fill := rgba(core.ColorGray, 0x30)
			if cell, ok := a.game.CubeAt(x, y); ok {
				fill = rgba(qube.CubeColor(cell), 0xff)
			} else if a.game.HasAdvantageMark(x, y) {
				fill = rgba(core.ColorBrightGreen, 0x80)
			}
			vector.DrawFilledRect(screen, px, py, size, size, fill, false)

			if marked && mark == core.Pt(x, y) {
				vector.StrokeRect(screen, px+4, py+4, size-8, size-8, 3, rgba(core.ColorBrightBlue, 0xff), false)
			}
			if showCursor && cur == core.Pt(x, y) {
				vector.StrokeRect(screen, px, py, size, size, 2, rgba(core.ColorBrightYellow, 0xff), false)
			}
		}
	}

	st := a.game.State()
	lvl := a.game.Level()
	snap := a.game.Snapshot()
	ebitenutil.DebugPrintAt(screen, a.game.Title(), panelX, boardY)
	if a.game.Mode() != qube.ModeGrid {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Level %d/%d  %s", snap.Level, a.game.LevelCount(), lvl.Title()), panelX, boardY+20)
	}
	if a.game.Mode() == qube.ModePlay {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score %d", st.Score), panelX, boardY+40)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Stage rows %d", rows), panelX, boardY+60)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Cubes left %d", snap.Remaining), panelX, boardY+80)
	}
	ebitenutil.DebugPrintAt(screen, stateLine(snap), panelX, boardY+120)
	ebitenutil.DebugPrintAt(screen, a.game.Controls(), boardX, controlsY)
}

// Layout fixes the logical screen size.
func (a *app) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

// stateLine describes non-playing states.
func stateLine(s qube.Snapshot) string {
	switch s.State {
	case qube.StatePaused:
		return "PAUSED"
	case qube.StateLevelCleared:
		return "PUZZLE CLEARED"
	case qube.StateWin:
		return "ALL PUZZLES CLEARED - R to restart"
	case qube.StateGameOver:
		if s.Crushed {
			return "CRUSHED - R to restart"
		}
		return "STAGE COLLAPSED - R to restart"
	}
	return ""
}

func rgba(c core.Color, alpha uint8) color.NRGBA {
	r, g, b := c.RGB()
	return color.NRGBA{r, g, b, alpha}
}
