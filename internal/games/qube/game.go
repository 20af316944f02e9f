// Package qube implements an Intelligent Qube style puzzle game.
// A block of cubes rolls down a narrow stage towards the player, who marks
// stage cells and detonates them to capture cubes as they roll over.
//
// Three modes are registered, one per stage of the game's development:
// the bare grid, the puzzle drawn over the grid, and the playable loop.
package qube

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/qube-arcade/internal/config"
	"github.com/vovakirdan/qube-arcade/internal/core"
	"github.com/vovakirdan/qube-arcade/internal/games/qube/levels"
	"github.com/vovakirdan/qube-arcade/internal/registry"
)

// Mode selects which version of the game runs.
type Mode string

const (
	ModeGrid   Mode = "grid"   // empty stage grid
	ModeStatic Mode = "static" // puzzle drawn over the grid, cursor and mark only
	ModePlay   Mode = "play"   // full game
)

// Game IDs as registered.
const (
	IDPlay   = "qube"
	IDStatic = "qube_static"
	IDGrid   = "qube_grid"
)

// staticTop is the stage row the puzzle is drawn at in static mode.
const staticTop = 2

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// levelSet overrides the embedded levels when non-nil
var levelSet []levels.Level

// startLevel is the level ID to begin with on the next Reset
var startLevel string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// SetLevels replaces the built-in level set. Passing nil restores it.
func SetLevels(lv []levels.Level) {
	levelSet = lv
}

// SetStartLevel sets the level ID the next game starts at.
// An empty ID starts from the first level.
func SetStartLevel(id string) {
	startLevel = id
}

// Levels returns the level set the next game will use.
func Levels() []levels.Level {
	if levelSet != nil {
		return levelSet
	}
	lv, err := levels.Default()
	if err != nil {
		return []levels.Level{fallbackLevel()}
	}
	return lv
}

// fallbackLevel keeps the game playable if the embedded levels are unreadable.
func fallbackLevel() levels.Level {
	return levels.Level{
		ID:   "fallback",
		Name: "Fallback",
		Puzzle: levels.Puzzle{
			{levels.CellNormal, levels.CellNormal, levels.CellNormal, levels.CellNormal},
			{levels.CellNormal, levels.CellNormal, levels.CellNormal, levels.CellNormal},
		},
	}
}

// levelTally accumulates results for the puzzle in play.
type levelTally struct {
	score     int
	captured  int
	escaped   int // live normal/advantage cubes that fell off
	forbidden int // forbidden cubes captured
	perfect   bool
}

// Game implements the Qube game logic.
type Game struct {
	mode Mode

	cfg        config.QubeConfig
	difficulty *config.DifficultyManager

	levels     []levels.Level
	levelIndex int

	// Puzzle placement. Puzzle row r sits on stage row offset+r and puzzle
	// column c on stage column colOffset+c.
	puzzle    levels.Puzzle
	offset    int
	colOffset int
	stageRows int

	cursor    core.Point
	mark      core.Point
	marked    bool
	advantage *intmap.Set[int] // stage cell indices holding an advantage mark

	tick      uint64
	rollTimer int

	score       int
	level       levelTally
	pendingRows int // rows to drop when the current puzzle ends

	screenW int
	screenH int

	gameOver     bool
	crushed      bool
	won          bool
	paused       bool
	tooSmall     bool
	levelCleared bool
	clearTicks   int

	events []core.Event

	startAt string // level this instance always starts at, if set
}

// New creates a game in the full play mode.
func New() *Game {
	return &Game{mode: ModePlay}
}

// NewStatic creates a game that shows the puzzle without rolling it.
func NewStatic() *Game {
	return &Game{mode: ModeStatic}
}

// NewGrid creates a game that only draws the stage grid.
func NewGrid() *Game {
	return &Game{mode: ModeGrid}
}

func init() {
	registry.Register(IDPlay, func() registry.Game {
		return New()
	})
	registry.Register(IDStatic, func() registry.Game {
		return NewStatic()
	})
	registry.Register(IDGrid, func() registry.Game {
		return NewGrid()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.mode {
	case ModeStatic:
		return IDStatic
	case ModeGrid:
		return IDGrid
	default:
		return IDPlay
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeStatic:
		return "Qube (Static Puzzle)"
	case ModeGrid:
		return "Qube (Grid)"
	default:
		return "Qube"
	}
}

// StartAt makes this game start, and restart, at the given level ID.
// It ignores the package-wide start level.
func (g *Game) StartAt(id string) {
	g.startAt = id
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadQube(configPath)
	if err != nil {
		cfg = config.DefaultQubeConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyQubePreset(&cfg, difficultyPreset)
	}

	g.applyConfig(cfg, rc)
}

// applyConfig resets all state using an already loaded configuration.
func (g *Game) applyConfig(cfg config.QubeConfig, rc core.RuntimeConfig) {
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.tick = 0
	g.rollTimer = 0
	g.score = 0
	g.pendingRows = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.gameOver = false
	g.crushed = false
	g.won = false
	g.paused = false
	g.levelCleared = false
	g.clearTicks = 0
	g.events = nil

	if g.advantage == nil {
		g.advantage = intmap.NewSet[int](levels.GridCols * levels.GridRows)
	}

	g.levels = Levels()
	g.levelIndex = 0
	want := g.startAt
	if startLevel != "" {
		if want == "" {
			want = startLevel
		}
		startLevel = "" // Reset after use
	}
	if want != "" {
		for i, lvl := range g.levels {
			if lvl.ID == want {
				g.levelIndex = i
				break
			}
		}
	}

	g.stageRows = levels.GridRows
	g.cursor = core.Pt(levels.GridCols/2, g.stageRows-1-g.stageRows/4)

	g.loadLevel()
	g.checkScreenSize()
}

// loadLevel places the current level's puzzle on the stage.
func (g *Game) loadLevel() {
	g.level = levelTally{}
	g.marked = false
	g.advantage.Clear()
	g.rollTimer = 0

	if g.mode == ModeGrid {
		g.puzzle = nil
		return
	}

	lvl := g.levels[g.levelIndex]
	g.puzzle = lvl.Puzzle.Clone()
	g.colOffset = (levels.GridCols - g.puzzle.Cols()) / 2

	if g.mode == ModeStatic {
		g.offset = min(staticTop, max(0, g.stageRows-g.puzzle.Rows()))
		return
	}

	// Enter from above the stage
	g.offset = -g.puzzle.Rows()
}

// Resize updates the screen size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.events = nil

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}

	if g.paused || g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	// Pause between puzzles
	if g.levelCleared {
		g.clearTicks++
		if g.clearTicks >= g.cfg.Timing.LevelClearTicks {
			g.advanceLevel()
		}
		return g.result()
	}

	switch g.mode {
	case ModeStatic:
		g.handleStaticInput(in)
	case ModePlay:
		g.handlePlayInput(in)
		if !g.gameOver {
			g.rollTimer++
			if g.rollTimer >= g.rollInterval() {
				g.rollTimer = 0
				g.roll()
			}
		}
		if !g.gameOver {
			g.checkFinished()
		}
	}

	return g.result()
}

// result builds the step result and hands over pending events.
func (g *Game) result() core.StepResult {
	res := core.StepResult{State: g.State(), Events: g.events}
	g.events = nil
	return res
}

// handleStaticInput moves the cursor and toggles the mark.
func (g *Game) handleStaticInput(in core.InputFrame) {
	g.handleMove(in)

	if in.Has(core.ActionMark) {
		if g.marked && g.mark == g.cursor {
			g.marked = false
		} else {
			g.mark = g.cursor
			g.marked = true
		}
	}
}

// handlePlayInput processes the player's actions for one tick.
func (g *Game) handlePlayInput(in core.InputFrame) {
	g.handleMove(in)

	if in.Has(core.ActionMark) {
		if g.marked {
			g.capture(g.mark)
			g.marked = false
		} else {
			g.mark = g.cursor
			g.marked = true
		}
	}

	if in.Has(core.ActionAdvantage) {
		g.detonateAdvantage()
	}

	if in.Has(core.ActionFastForward) {
		g.rollTimer = 0
		g.roll()
	}
}

// handleMove applies at most one cursor move per tick.
func (g *Game) handleMove(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(0, -1)
	case in.Has(core.ActionDown):
		g.moveCursor(0, 1)
	case in.Has(core.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionRight):
		g.moveCursor(1, 0)
	}
}

// rollInterval returns the current number of ticks per roll.
func (g *Game) rollInterval() int {
	return g.difficulty.RollInterval(g.cfg.Timing.RollTicks, g.cfg.Timing.MinRollTicks, g.score, int(g.tick))
}

// advanceLevel applies row losses and moves to the next puzzle.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.clearTicks = 0

	g.dropRows()
	if g.gameOver {
		return
	}

	if g.levelIndex >= len(g.levels)-1 {
		// Completed all levels
		g.won = true
		return
	}

	g.levelIndex++
	g.loadLevel()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// Level returns the level in play.
func (g *Game) Level() levels.Level {
	if len(g.levels) == 0 {
		return levels.Level{}
	}
	return g.levels[g.levelIndex]
}

// LevelCount returns the number of levels in the set.
func (g *Game) LevelCount() int {
	return len(g.levels)
}

// StageRows returns the number of stage rows left.
func (g *Game) StageRows() int {
	return g.stageRows
}

// Cursor returns the cursor position and whether it is shown.
func (g *Game) Cursor() (core.Point, bool) {
	return g.cursor, g.mode != ModeGrid
}

// Mark returns the marked stage cell, if any.
func (g *Game) Mark() (core.Point, bool) {
	return g.mark, g.marked
}

// HasAdvantageMark reports whether stage cell (x, y) holds an advantage mark.
func (g *Game) HasAdvantageMark(x, y int) bool {
	if !g.onStage(x, y) {
		return false
	}
	return g.advantage.Has(cellIndex(x, y))
}

// Crushed reports whether the game ended with the player crushed.
func (g *Game) Crushed() bool {
	return g.crushed
}
