package qube

import (
	"slices"

	"github.com/vovakirdan/qube-arcade/internal/core"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Mode       Mode
	LevelID    string
	Level      int // 1-indexed
	Score      int
	StageRows  int
	Offset     int
	Cursor     core.Point
	Mark       core.Point
	Marked     bool
	Advantage  []core.Point // sorted by row, then column
	Puzzle     string       // remaining puzzle in text form, '.' for captured cubes
	Remaining  int
	Captured   int
	Escaped    int
	RowsOwed   int
	State      GameStateType
	Crushed    bool
	LevelScore int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.levelCleared:
		state = StateLevelCleared
	}

	var adv []core.Point
	for _, idx := range slices.Sorted(g.advantage.All()) {
		adv = append(adv, cellPoint(idx))
	}

	return Snapshot{
		Tick:       g.tick,
		Mode:       g.mode,
		LevelID:    g.Level().ID,
		Level:      g.levelIndex + 1,
		Score:      g.score,
		StageRows:  g.stageRows,
		Offset:     g.offset,
		Cursor:     g.cursor,
		Mark:       g.mark,
		Marked:     g.marked,
		Advantage:  adv,
		Puzzle:     g.puzzle.String(),
		Remaining:  g.remaining(),
		Captured:   g.level.captured,
		Escaped:    g.level.escaped,
		RowsOwed:   g.pendingRows,
		State:      state,
		Crushed:    g.crushed,
		LevelScore: g.level.score,
	}
}
