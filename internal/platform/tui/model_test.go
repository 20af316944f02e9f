package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/qube-arcade/internal/core"
	"github.com/vovakirdan/qube-arcade/internal/games/qube"
	"github.com/vovakirdan/qube-arcade/internal/registry"
	"github.com/vovakirdan/qube-arcade/internal/storage"
)

// scriptedGame replays a fixed list of step results.
type scriptedGame struct {
	steps   []core.StepResult
	n       int
	resets  int
	resized [2]int
}

func (g *scriptedGame) ID() string { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.n = 0
}

func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) Resize(w, h int) { g.resized = [2]int{w, h} }
func (g *scriptedGame) State() core.GameState { return g.current().State }

func (g *scriptedGame) current() core.StepResult {
	if g.n == 0 {
		return core.StepResult{}
	}
	return g.steps[min(g.n, len(g.steps))-1]
}

func (g *scriptedGame) Step(core.InputFrame) core.StepResult {
	if g.n < len(g.steps) {
		g.n++
	}
	return g.current()
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelRecordsLevelResults(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{steps: []core.StepResult{
		{State: core.GameState{Score: 100}},
		{
			State: core.GameState{Score: 1400, Paused: true},
			Events: []core.Event{
				{Kind: core.EventLevelFinished, LevelID: "01-first-steps", Score: 1400, Perfect: true, Count: 4},
				{Kind: core.EventRowLost, LevelID: "01-first-steps", Count: 22},
			},
		},
		{State: core.GameState{Score: 1400, GameOver: true}},
	}}

	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	for range 4 {
		m = tick(t, m)
	}

	results, err := store.LevelResults("scripted", "01-first-steps")
	if err != nil {
		t.Fatalf("LevelResults() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d level results, want 1", len(results))
	}
	if results[0].Score != 1400 || !results[0].Perfect || results[0].Captured != 4 {
		t.Errorf("unexpected level result: %+v", results[0])
	}

	// Score is saved exactly once after game over
	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores() error: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 1400 {
		t.Errorf("scores = %+v, want one entry of 1400", scores)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	game := &scriptedGame{steps: []core.StepResult{
		{State: core.GameState{GameOver: true}},
	}}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	m.Init()
	m = tick(t, m)

	m = press(t, m, runeKey('r'))
	m = tick(t, m)

	if game.resets != 2 {
		t.Errorf("resets = %d, want 2 (init + restart)", game.resets)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := &scriptedGame{}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	if game.resized != [2]int{120, 40} {
		t.Errorf("resized = %v, want [120 40]", game.resized)
	}
	if game.resets != 0 {
		t.Errorf("resize reset the game %d times", game.resets)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, want 120x40", m.screen.Width(), m.screen.Height())
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	game := &scriptedGame{steps: []core.StepResult{
		{State: core.GameState{}},
		{State: core.GameState{Paused: true}},
	}}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})

	m = tick(t, m)
	m = press(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back while running should be ignored")
	}

	m = tick(t, m)
	m = press(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back while paused should return to menu")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&scriptedGame{}, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	m = press(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quit")
	}
}

func TestModelRunsQube(t *testing.T) {
	game, err := registry.Create(qube.IDStatic)
	if err != nil {
		t.Fatalf("registry.Create() error: %v", err)
	}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 1})
	m.Init()
	m = tick(t, m)

	view := m.View()
	if !strings.Contains(view, "QUBE") {
		t.Errorf("view missing title:\n%s", view)
	}
}
