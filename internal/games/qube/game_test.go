package qube

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/qube-arcade/internal/config"
	"github.com/vovakirdan/qube-arcade/internal/core"
	"github.com/vovakirdan/qube-arcade/internal/games/qube/levels"
	"github.com/vovakirdan/qube-arcade/internal/registry"
)

// testConfig disables automatic rolls so tests drive the puzzle with
// fast-forward.
func testConfig() config.QubeConfig {
	cfg := config.DefaultQubeConfig()
	cfg.Timing.RollTicks = 10000
	cfg.Timing.MinRollTicks = 10000
	cfg.Timing.LevelClearTicks = 1
	cfg.Difficulty.Enabled = false
	return cfg
}

func testLevel(t *testing.T, id string, rows ...string) levels.Level {
	t.Helper()
	p, err := levels.ParseRows(rows)
	if err != nil {
		t.Fatalf("ParseRows(%v) failed: %v", rows, err)
	}
	return levels.Level{ID: id, Puzzle: p}
}

func newTestGame(t *testing.T, g *Game, cfg config.QubeConfig, lv ...levels.Level) *Game {
	t.Helper()
	SetLevels(lv)
	t.Cleanup(func() { SetLevels(nil) })
	g.applyConfig(cfg, core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60})
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	return g.Step(core.InputOf(actions...))
}

// detonateAt marks stage cell (x, y) and detonates it.
func detonateAt(g *Game, x, y int) core.StepResult {
	g.mark, g.marked = core.Pt(x, y), true
	return step(g, core.ActionMark)
}

func TestRegisteredModes(t *testing.T) {
	tests := []struct {
		id   string
		mode Mode
	}{
		{IDPlay, ModePlay},
		{IDStatic, ModeStatic},
		{IDGrid, ModeGrid},
	}

	for _, tt := range tests {
		if !registry.Exists(tt.id) {
			t.Fatalf("%s is not registered", tt.id)
		}
		g, err := registry.Create(tt.id)
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", tt.id, err)
		}
		if g.ID() != tt.id {
			t.Errorf("ID() = %q, want %q", g.ID(), tt.id)
		}

		qg, ok := g.(*Game)
		if !ok {
			t.Fatalf("Create(%s) returned %T", tt.id, g)
		}
		if qg.Mode() != tt.mode {
			t.Errorf("Mode() = %q, want %q", qg.Mode(), tt.mode)
		}
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	moves := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionMark}

	for _, g := range []*Game{NewGrid(), NewStatic(), New()} {
		t.Run(string(g.Mode()), func(t *testing.T) {
			newTestGame(t, g, testConfig(), testLevel(t, "a", "0120", "2001"))
			rng := rand.New(rand.NewSource(7))

			for i := 0; i < 3000; i++ {
				step(g, moves[rng.Intn(len(moves))])
				cur, _ := g.Cursor()
				if !g.stageRect().ContainsPoint(cur) {
					t.Fatalf("step %d: cursor %v outside stage", i, cur)
				}
			}
		})
	}
}

func TestCursorClampsAtEdges(t *testing.T) {
	g := newTestGame(t, NewStatic(), testConfig(), testLevel(t, "a", "0000"))

	if cur := g.Snapshot().Cursor; cur != core.Pt(2, 18) {
		t.Fatalf("start cursor = %v, want (2, 18)", cur)
	}

	tests := []struct {
		action core.Action
		times  int
		want   func(core.Point) bool
		desc   string
	}{
		{core.ActionLeft, 10, func(p core.Point) bool { return p.X == 0 }, "left edge"},
		{core.ActionRight, 10, func(p core.Point) bool { return p.X == levels.GridCols-1 }, "right edge"},
		{core.ActionUp, 40, func(p core.Point) bool { return p.Y == 0 }, "top row"},
		{core.ActionDown, 40, func(p core.Point) bool { return p.Y == levels.GridRows-1 }, "last row"},
	}
	for _, tt := range tests {
		for range tt.times {
			step(g, tt.action)
		}
		if cur := g.Snapshot().Cursor; !tt.want(cur) {
			t.Errorf("cursor %v not on the %s", cur, tt.desc)
		}
	}
}

func TestOneMovePerTick(t *testing.T) {
	g := newTestGame(t, NewStatic(), testConfig(), testLevel(t, "a", "0"))
	step(g, core.ActionUp, core.ActionLeft)
	if cur := g.Snapshot().Cursor; cur != core.Pt(2, 17) {
		t.Errorf("cursor = %v, want (2, 17)", cur)
	}
}

func TestMoveBlockedByCube(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "a", "0000"))

	// Roll the puzzle until its row sits just above the cursor
	for range 18 {
		step(g, core.ActionFastForward)
	}
	snap := g.Snapshot()
	if snap.Offset != 17 || snap.Cursor != core.Pt(2, 18) {
		t.Fatalf("offset %d cursor %v, want 17 and (2, 18)", snap.Offset, snap.Cursor)
	}

	step(g, core.ActionUp)
	if cur := g.Snapshot().Cursor; cur != core.Pt(2, 18) {
		t.Errorf("cursor moved into a cube: %v", cur)
	}

	step(g, core.ActionLeft)
	if cur := g.Snapshot().Cursor; cur != core.Pt(1, 18) {
		t.Errorf("cursor = %v, want (1, 18)", cur)
	}
}

func TestMarkThenDetonateCapturesRolledCube(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "a", "0000"))

	step(g, core.ActionMark)
	snap := g.Snapshot()
	if !snap.Marked || snap.Mark != core.Pt(2, 18) {
		t.Fatalf("mark = %v (set %v), want (2, 18)", snap.Mark, snap.Marked)
	}

	// Roll the cube onto the marked cell; the cursor is pushed back
	for range 19 {
		step(g, core.ActionFastForward)
	}
	snap = g.Snapshot()
	if snap.Offset != 18 {
		t.Fatalf("offset = %d, want 18", snap.Offset)
	}
	if snap.Cursor != core.Pt(2, 19) {
		t.Errorf("cursor = %v, want pushed to (2, 19)", snap.Cursor)
	}

	step(g, core.ActionMark)
	snap = g.Snapshot()
	if snap.Marked {
		t.Error("mark should clear after detonating")
	}
	if snap.Score != 100 || snap.Captured != 1 || snap.Remaining != 3 {
		t.Errorf("score %d captured %d remaining %d, want 100, 1, 3", snap.Score, snap.Captured, snap.Remaining)
	}
	if snap.Puzzle != "00.0" {
		t.Errorf("puzzle = %q, want %q", snap.Puzzle, "00.0")
	}
}

func TestDetonatingEmptyMarkIsWasted(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "a", "0000"))

	step(g, core.ActionMark)
	step(g, core.ActionMark)

	snap := g.Snapshot()
	if snap.Marked || snap.Score != 0 || snap.Remaining != 4 {
		t.Errorf("marked %v score %d remaining %d, want a wasted mark", snap.Marked, snap.Score, snap.Remaining)
	}
}

func TestPerfectClear(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "only", "00"))
	g.offset = 10
	g.cursor = core.Pt(0, 20)

	// "00" is centred on stage columns 1 and 2
	detonateAt(g, 1, 10)
	res := detonateAt(g, 2, 10)

	if len(res.Events) != 1 {
		t.Fatalf("events = %+v, want one", res.Events)
	}
	ev := res.Events[0]
	want := core.Event{Kind: core.EventLevelFinished, LevelID: "only", Score: 200 + 1000, Perfect: true, Count: 2}
	if ev != want {
		t.Errorf("event = %+v, want %+v", ev, want)
	}
	if g.Snapshot().State != StateLevelCleared || !res.State.Paused {
		t.Errorf("state = %s, want level cleared and paused", g.Snapshot().State)
	}

	res = step(g)
	if len(res.Events) != 0 {
		t.Errorf("unexpected events after the last puzzle: %+v", res.Events)
	}
	snap := g.Snapshot()
	if !res.State.GameOver || snap.State != StateWin {
		t.Errorf("state = %s, want win", snap.State)
	}
	if snap.Score != 1200 {
		t.Errorf("score = %d, want 1200", snap.Score)
	}
}

func TestForbiddenOnlyPuzzleRollsThrough(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "f", "11", "11"))
	g.cursor = core.Pt(0, 18)

	res := step(g)
	snap := g.Snapshot()
	if len(res.Events) != 0 || snap.State != StatePlaying {
		t.Fatalf("puzzle above the stage finished: state %s events %+v", snap.State, res.Events)
	}
	if snap.Score != 0 || snap.Offset != -2 {
		t.Errorf("score %d offset %d, want 0 and -2", snap.Score, snap.Offset)
	}

	// The last row leaves the stage on the 27th roll
	for i := 1; i < 27; i++ {
		if res := step(g, core.ActionFastForward); len(res.Events) != 0 {
			t.Fatalf("roll %d: finished early with %+v", i, res.Events)
		}
	}
	if got := g.Snapshot().Puzzle; got != "11\n.." {
		t.Errorf("puzzle = %q, want the top row still live", got)
	}

	res = step(g, core.ActionFastForward)
	if len(res.Events) != 1 {
		t.Fatalf("events = %+v, want the puzzle to finish", res.Events)
	}
	ev := res.Events[0]
	if ev.Perfect || ev.Score != 0 || ev.Escaped != 0 {
		t.Errorf("event = %+v, want no bonus and nothing escaped", ev)
	}
	snap = g.Snapshot()
	if snap.Score != 0 || snap.RowsOwed != 0 {
		t.Errorf("score %d rows owed %d, want 0 and 0", snap.Score, snap.RowsOwed)
	}
}

func TestForbiddenLeftoversRollOff(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "a", "10"))
	g.offset = 10
	g.cursor = core.Pt(0, 20)

	// "10" sits on stage columns 1 and 2
	if res := detonateAt(g, 2, 10); len(res.Events) != 0 {
		t.Fatalf("finished with a forbidden cube on the stage: %+v", res.Events)
	}
	snap := g.Snapshot()
	if snap.State != StatePlaying || snap.Puzzle != "1." || snap.Remaining != 0 {
		t.Fatalf("state %s puzzle %q remaining %d", snap.State, snap.Puzzle, snap.Remaining)
	}
	if cube, ok := g.CubeAt(1, 10); !ok || cube != levels.CellForbidden {
		t.Errorf("forbidden cube vanished from (1, 10)")
	}

	for i := 0; i < 14; i++ {
		if res := step(g, core.ActionFastForward); len(res.Events) != 0 {
			t.Fatalf("roll %d: finished before the forbidden cube left", i+1)
		}
	}

	res := step(g, core.ActionFastForward)
	if len(res.Events) != 1 || !res.Events[0].Perfect {
		t.Fatalf("events = %+v, want a perfect finish", res.Events)
	}
	if got := g.Snapshot().Score; got != 100+1000 {
		t.Errorf("score = %d, want 1100", got)
	}
}

func TestNextLevelEntersAboveStage(t *testing.T) {
	g := newTestGame(t, New(), testConfig(),
		testLevel(t, "first", "0000"),
		testLevel(t, "second", "00", "00", "00"),
	)
	g.offset = 5
	for x := range levels.GridCols {
		detonateAt(g, x, 5)
	}
	if st := g.Snapshot().State; st != StateLevelCleared {
		t.Fatalf("state = %s, want level cleared", st)
	}

	step(g)
	snap := g.Snapshot()
	if snap.State != StatePlaying || snap.LevelID != "second" || snap.Level != 2 {
		t.Errorf("state %s level %s (%d), want second level playing", snap.State, snap.LevelID, snap.Level)
	}
	if snap.Offset != -3 {
		t.Errorf("offset = %d, want -3", snap.Offset)
	}
	if snap.StageRows != levels.GridRows || snap.Remaining != 6 || snap.Captured != 0 {
		t.Errorf("rows %d remaining %d captured %d", snap.StageRows, snap.Remaining, snap.Captured)
	}
}

func TestForbiddenCaptureCostsRow(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "a", "10"))
	g.offset = 10

	detonateAt(g, 1, 10)
	snap := g.Snapshot()
	if snap.Score != 0 {
		t.Errorf("score = %d, must not drop below zero", snap.Score)
	}
	if snap.RowsOwed != 1 || snap.LevelScore != -300 {
		t.Errorf("rows owed %d level score %d, want 1 and -300", snap.RowsOwed, snap.LevelScore)
	}

	res := detonateAt(g, 2, 10)
	if len(res.Events) != 1 {
		t.Fatalf("events = %+v, want one", res.Events)
	}
	if res.Events[0].Perfect || res.Events[0].Score != -200 {
		t.Errorf("event = %+v, want not perfect and -200", res.Events[0])
	}
	if got := g.Snapshot().Score; got != 100 {
		t.Errorf("score = %d, want 100", got)
	}

	res = step(g)
	if len(res.Events) != 1 || res.Events[0].Kind != core.EventRowLost {
		t.Fatalf("events = %+v, want one row lost", res.Events)
	}
	if res.Events[0].Count != levels.GridRows-1 || g.StageRows() != levels.GridRows-1 {
		t.Errorf("stage rows = %d, want %d", g.StageRows(), levels.GridRows-1)
	}
}

func TestAdvantageDetonation(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "a",
		"0000",
		"0200",
		"0010",
	))
	g.offset = 5
	g.cursor = core.Pt(0, 20)

	detonateAt(g, 1, 6)
	snap := g.Snapshot()
	if !reflect.DeepEqual(snap.Advantage, []core.Point{core.Pt(1, 6)}) || snap.Score != 100 {
		t.Fatalf("advantage %v score %d, want mark at (1, 6) and 100", snap.Advantage, snap.Score)
	}

	step(g, core.ActionAdvantage)
	snap = g.Snapshot()
	if len(snap.Advantage) != 0 {
		t.Errorf("advantage marks left: %v", snap.Advantage)
	}
	if snap.Puzzle != "...0\n...0\n...0" {
		t.Errorf("puzzle = %q", snap.Puzzle)
	}
	// Seven more normals then the forbidden cube, in row order
	if snap.Captured != 8 || snap.Score != 100+700-300 {
		t.Errorf("captured %d score %d, want 8 and 500", snap.Captured, snap.Score)
	}
	if snap.RowsOwed != 1 || snap.Remaining != 3 {
		t.Errorf("rows owed %d remaining %d, want 1 and 3", snap.RowsOwed, snap.Remaining)
	}
}

func TestAdvantageWithoutMarksDoesNothing(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "a", "0000"))
	g.offset = 5

	step(g, core.ActionAdvantage)
	if n := g.Snapshot().Remaining; n != 4 {
		t.Errorf("remaining = %d, want 4", n)
	}
}

func TestRollEscapes(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "a", "0000", "1111"))
	g.offset = levels.GridRows - 2
	g.cursor = core.Pt(0, 5)

	// Forbidden cubes fall off for free
	step(g, core.ActionFastForward)
	snap := g.Snapshot()
	if snap.Escaped != 0 || snap.RowsOwed != 0 {
		t.Errorf("escaped %d rows owed %d, want 0 and 0", snap.Escaped, snap.RowsOwed)
	}
	if snap.Puzzle != "0000\n...." {
		t.Errorf("puzzle = %q", snap.Puzzle)
	}

	res := step(g, core.ActionFastForward)
	if len(res.Events) != 1 {
		t.Fatalf("events = %+v, want one", res.Events)
	}
	ev := res.Events[0]
	if ev.Kind != core.EventLevelFinished || ev.Escaped != 4 || ev.Perfect || ev.Score != 0 {
		t.Errorf("event = %+v", ev)
	}
	if owed := g.Snapshot().RowsOwed; owed != 1 {
		t.Errorf("rows owed = %d, want one row for the escaped cubes", owed)
	}

	step(g)
	if g.StageRows() != levels.GridRows-1 {
		t.Errorf("stage rows = %d, want %d", g.StageRows(), levels.GridRows-1)
	}
	if st := g.Snapshot().State; st != StateWin {
		t.Errorf("state = %s, want win", st)
	}
}

func TestRollPushesCursor(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "a", "0000", "0000"))
	g.offset = 18
	g.cursor = core.Pt(1, 20)

	step(g, core.ActionFastForward)
	if cur := g.Snapshot().Cursor; cur != core.Pt(1, 21) {
		t.Errorf("cursor = %v, want (1, 21)", cur)
	}
	if g.State().GameOver {
		t.Error("pushing the cursor must not end the game")
	}
}

func TestCrushedOnLastRow(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "a", "0000"))
	g.offset = levels.GridRows - 2
	g.cursor = core.Pt(1, levels.GridRows-1)

	res := step(g, core.ActionFastForward)
	if !res.State.GameOver || !g.Crushed() || g.Snapshot().State != StateGameOver {
		t.Fatalf("state = %s, want crushed game over", g.Snapshot().State)
	}

	// Nothing moves after game over
	before := g.Snapshot()
	step(g, core.ActionFastForward, core.ActionLeft)
	after := g.Snapshot()
	if before.Offset != after.Offset || before.Cursor != after.Cursor {
		t.Errorf("game moved after game over: %+v -> %+v", before, after)
	}
}

func TestStageCollapseEndsGame(t *testing.T) {
	cfg := testConfig()
	cfg.Stage.MinRows = levels.GridRows

	g := newTestGame(t, New(), cfg, testLevel(t, "a", "0"), testLevel(t, "b", "0"))
	g.offset = levels.GridRows - 1
	g.cursor = core.Pt(0, 0)

	step(g, core.ActionFastForward)
	if st := g.Snapshot().State; st != StateLevelCleared {
		t.Fatalf("state = %s, want level cleared", st)
	}

	res := step(g)
	if !res.State.GameOver || g.Snapshot().State != StateGameOver {
		t.Errorf("state = %s, want game over", g.Snapshot().State)
	}
}

func TestRowLossClampsCursorAndMark(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "a", "1"), testLevel(t, "b", "0"))
	g.offset = 3
	g.cursor = core.Pt(3, levels.GridRows-1)

	// Capture the forbidden cube, the puzzle is then done
	detonateAt(g, 1, 3)
	if st := g.Snapshot().State; st != StateLevelCleared {
		t.Fatalf("state = %s, want level cleared", st)
	}

	step(g)
	snap := g.Snapshot()
	if snap.StageRows != levels.GridRows-1 {
		t.Errorf("stage rows = %d, want %d", snap.StageRows, levels.GridRows-1)
	}
	if snap.Cursor != core.Pt(3, levels.GridRows-2) {
		t.Errorf("cursor = %v, want clamped onto the shorter stage", snap.Cursor)
	}
}

func TestAutomaticRoll(t *testing.T) {
	cfg := testConfig()
	cfg.Timing.RollTicks = 5
	cfg.Timing.MinRollTicks = 5

	g := newTestGame(t, New(), cfg, testLevel(t, "a", "0000"))
	for range 4 {
		step(g)
	}
	if off := g.Snapshot().Offset; off != -1 {
		t.Errorf("offset after 4 ticks = %d, want -1", off)
	}
	step(g)
	if off := g.Snapshot().Offset; off != 0 {
		t.Errorf("offset after 5 ticks = %d, want 0", off)
	}
}

func TestStaticModeNeverRolls(t *testing.T) {
	g := newTestGame(t, NewStatic(), testConfig(), testLevel(t, "a", "012"))

	for range 50 {
		step(g, core.ActionFastForward, core.ActionAdvantage)
	}
	snap := g.Snapshot()
	if snap.Offset != staticTop || snap.Puzzle != "012" {
		t.Fatalf("offset %d puzzle %q, want a fixed puzzle", snap.Offset, snap.Puzzle)
	}

	// The cursor may walk over the puzzle
	for range 20 {
		step(g, core.ActionUp)
	}
	step(g, core.ActionDown)
	step(g, core.ActionDown)
	if cur := g.Snapshot().Cursor; cur != core.Pt(2, staticTop) {
		t.Errorf("cursor = %v, want (2, %d)", cur, staticTop)
	}

	// Mark toggles, nothing is captured
	step(g, core.ActionMark)
	if !g.Snapshot().Marked {
		t.Error("mark not set")
	}
	step(g, core.ActionMark)
	snap = g.Snapshot()
	if snap.Marked || snap.Score != 0 || snap.Puzzle != "012" {
		t.Errorf("marked %v score %d puzzle %q", snap.Marked, snap.Score, snap.Puzzle)
	}
}

func TestGridModeHasNoPuzzle(t *testing.T) {
	g := newTestGame(t, NewGrid(), testConfig(), testLevel(t, "a", "0"))

	start := g.Snapshot()
	step(g, core.ActionLeft)
	step(g, core.ActionMark)
	step(g, core.ActionFastForward)

	snap := g.Snapshot()
	if snap.Puzzle != "" || snap.Cursor != start.Cursor || snap.Marked {
		t.Errorf("grid mode changed state: %+v", snap)
	}
	if _, shown := g.Cursor(); shown {
		t.Error("grid mode should hide the cursor")
	}
}

func TestPauseFreezesGame(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "a", "0"))

	if res := step(g, core.ActionPause); !res.State.Paused {
		t.Fatal("game not paused")
	}

	offset := g.Snapshot().Offset
	step(g, core.ActionFastForward)
	if snap := g.Snapshot(); snap.Offset != offset || snap.State != StatePaused {
		t.Errorf("paused game moved: offset %d state %s", snap.Offset, snap.State)
	}

	step(g, core.ActionPause)
	step(g, core.ActionFastForward)
	if off := g.Snapshot().Offset; off != offset+1 {
		t.Errorf("offset = %d, want %d", off, offset+1)
	}
}

func TestStartLevel(t *testing.T) {
	lv := []levels.Level{testLevel(t, "a", "0"), testLevel(t, "b", "00")}

	SetStartLevel("b")
	g := newTestGame(t, New(), testConfig(), lv...)
	if g.Level().ID != "b" {
		t.Errorf("level = %q, want b", g.Level().ID)
	}
	if startLevel != "" {
		t.Errorf("start level %q not consumed by Reset", startLevel)
	}

	g.applyConfig(testConfig(), core.DefaultConfig())
	if g.Level().ID != "a" {
		t.Errorf("restart level = %q, want a", g.Level().ID)
	}
}

func TestStartAtPersistsAcrossRestarts(t *testing.T) {
	lv := []levels.Level{testLevel(t, "a", "0"), testLevel(t, "b", "00")}

	g := New()
	g.StartAt("b")
	newTestGame(t, g, testConfig(), lv...)
	if g.Level().ID != "b" {
		t.Errorf("level = %q, want b", g.Level().ID)
	}

	g.applyConfig(testConfig(), core.DefaultConfig())
	if g.Level().ID != "b" {
		t.Errorf("restart level = %q, want b", g.Level().ID)
	}

	g.StartAt("missing")
	g.applyConfig(testConfig(), core.DefaultConfig())
	if g.Level().ID != "a" {
		t.Errorf("unknown level should fall back to the first, got %q", g.Level().ID)
	}
}

func TestResizeKeepsState(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "a", "00", "00"))
	step(g, core.ActionFastForward)
	offset := g.Snapshot().Offset

	g.Resize(10, 5)
	if st := g.Snapshot().State; st != StatePausedSmall {
		t.Errorf("state = %s, want paused for a small window", st)
	}

	g.Resize(80, 40)
	snap := g.Snapshot()
	if snap.State != StatePlaying || snap.Offset != offset {
		t.Errorf("state %s offset %d, want playing at %d", snap.State, snap.Offset, offset)
	}
}

func TestDefaultLevelsUsedWhenUnset(t *testing.T) {
	SetLevels(nil)
	g := New()
	g.applyConfig(testConfig(), core.RuntimeConfig{ScreenW: 80, ScreenH: 40})

	def, err := levels.Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	if g.LevelCount() != len(def) || g.Level().ID != def[0].ID {
		t.Errorf("game uses %d levels starting at %q, want the built-in set", g.LevelCount(), g.Level().ID)
	}
}

func TestDeterminism(t *testing.T) {
	actions := []core.Action{
		core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight,
		core.ActionMark, core.ActionAdvantage, core.ActionFastForward, core.ActionNone,
	}

	cfg := config.DefaultQubeConfig()
	cfg.Timing.RollTicks = 6
	cfg.Timing.MinRollTicks = 2

	run := func() Snapshot {
		g := newTestGame(t, New(), cfg,
			testLevel(t, "a", "0120", "0000", "2001"),
			testLevel(t, "b", "1001", "0220"),
		)
		rng := rand.New(rand.NewSource(42))
		for range 2000 {
			step(g, actions[rng.Intn(len(actions))])
		}
		return g.Snapshot()
	}

	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Errorf("runs differ:\n%+v\n%+v", a, b)
	}
}

func TestRenderStaticPuzzle(t *testing.T) {
	g := newTestGame(t, NewStatic(), testConfig(), testLevel(t, "a", "012"))
	screen := core.NewScreen(80, 40)
	g.Render(screen)

	// Board starts at column 19, row 2; stage row 2 is screen row 5
	boardX, rowY := 19, 5
	top := []rune(screen.Row(2))[boardX : boardX+boardW]
	if string(top) != "┌───┬───┬───┬───┐" {
		t.Errorf("top border = %q", string(top))
	}
	bottom := []rune(screen.Row(2 + levels.GridRows + 1))[boardX : boardX+boardW]
	if string(bottom) != "└───┴───┴───┴───┘" {
		t.Errorf("bottom border = %q", string(bottom))
	}
	if sep := screen.GetCell(boardX+cellWidth, rowY); sep.Rune != '│' || sep.Color != core.ColorGray {
		t.Errorf("column separator = %+v", sep)
	}

	cases := []struct {
		col   int
		color core.Color
	}{
		{0, core.ColorWhite},
		{1, core.ColorRed},
		{2, core.ColorGreen},
	}
	for _, c := range cases {
		cell := screen.GetCell(boardX+c.col*cellWidth+1, rowY)
		if cell.Rune != '▓' || cell.Color != c.color {
			t.Errorf("col %d = %+v, want ▓ in %v", c.col, cell, c.color)
		}
	}

	// Column 3 is outside the three-wide puzzle
	if r := screen.GetCell(boardX+3*cellWidth+2, rowY).Rune; r != '·' {
		t.Errorf("empty cell = %q, want ·", r)
	}

	// Cursor brackets at (2, 18)
	cur := screen.GetCell(boardX+2*cellWidth+1, 2+1+18)
	if cur.Rune != '[' || cur.Color != core.ColorBrightYellow {
		t.Errorf("cursor cell = %+v", cur)
	}

	if !strings.Contains(screen.String(), "Level 1/1") {
		t.Error("panel missing level counter")
	}
}

func TestRenderViewportFollowsCursor(t *testing.T) {
	g := New()
	newTestGame(t, g, testConfig(), testLevel(t, "a", "0"))
	g.screenH = 15
	g.checkScreenSize()
	if g.tooSmall {
		t.Fatal("15 rows should be enough to play")
	}

	screen := core.NewScreen(80, 15)
	g.Render(screen)

	// Ten rows fit; the cursor on row 18 keeps rows 13..22 in view
	if top := g.viewportTop(g.visibleRows()); top != 13 {
		t.Errorf("viewport top = %d, want 13", top)
	}
	if !strings.Contains(screen.Row(2), "↑") {
		t.Error("missing scroll-up marker")
	}
	if !strings.Contains(screen.Row(2+g.visibleRows()+1), "↓") {
		t.Error("missing scroll-down marker")
	}
}

func TestRenderTooSmallAndOverlays(t *testing.T) {
	g := newTestGame(t, New(), testConfig(), testLevel(t, "a", "0"))
	g.screenW, g.screenH = 20, 8
	g.checkScreenSize()

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("missing window too small message")
	}
	if st := g.Snapshot().State; st != StatePausedSmall {
		t.Errorf("state = %s, want paused for a small window", st)
	}

	g.screenW, g.screenH = 80, 40
	g.checkScreenSize()
	g.gameOver, g.crushed = true, true
	screen = core.NewScreen(80, 40)
	g.Render(screen)
	if !strings.Contains(screen.String(), "CRUSHED") {
		t.Error("missing crushed overlay")
	}

	g.crushed = false
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "STAGE COLLAPSED") || !strings.Contains(out, "Press R to restart") {
		t.Error("missing collapsed overlay")
	}
}
