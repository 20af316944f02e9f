package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/qube-arcade/internal/core"
	"github.com/vovakirdan/qube-arcade/internal/games/qube"
	"github.com/vovakirdan/qube-arcade/internal/games/qube/levels"
	"github.com/vovakirdan/qube-arcade/internal/storage"
)

// LevelSelection holds the user's choice from the level picker.
type LevelSelection struct {
	LevelID string // empty = start from the first puzzle
}

// LevelSelectModel lets users pick the puzzle a Qube game starts at.
// The first row starts from the beginning; the rest list every level.
type LevelSelectModel struct {
	gameID    string
	levels    []levels.Level
	best      map[string]storage.LevelBest
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection LevelSelection
	choosing  bool
	quitting  bool
	back      bool
}

// NewLevelSelectModel creates a level picker for the given game mode.
// Best results are read from store when it is not nil.
func NewLevelSelectModel(store *storage.Store, gameID string, width, height int) LevelSelectModel {
	m := LevelSelectModel{
		gameID:    gameID,
		levels:    qube.Levels(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	if store != nil {
		if best, err := store.BestLevelResults(gameID); err == nil {
			m.best = best
		}
	}
	return m
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.levels) { // row 0 is "from the start"
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		if m.cursor > 0 {
			m.selection = LevelSelection{LevelID: m.levels[m.cursor-1].ID}
		}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the level list.
func (m LevelSelectModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT PUZZLE", m.width))
	b.WriteString("\n\n")

	rows := make([]string, 0, len(m.levels)+1)
	rows = append(rows, fmt.Sprintf("From the start (%d puzzles)", len(m.levels)))
	for i, lvl := range m.levels {
		rows = append(rows, m.levelLine(i, lvl))
	}

	// Keep the cursor in view on short terminals
	room := max(1, m.height-6)
	first := 0
	if len(rows) > room {
		first = core.Clamp(m.cursor-room/2, 0, len(rows)-room)
	}

	for i := first; i < len(rows) && i < first+room; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+rows[i], m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// levelLine formats one level entry with its best result.
func (m LevelSelectModel) levelLine(i int, lvl levels.Level) string {
	line := fmt.Sprintf("%2d. %-18s %dx%d", i+1, lvl.Title(), lvl.Puzzle.Cols(), lvl.Puzzle.Rows())
	best, ok := m.best[lvl.ID]
	if !ok {
		return line
	}
	line += fmt.Sprintf("  best %d", best.BestScore)
	if best.Perfects > 0 {
		line += " *"
	}
	return line
}

// Selected returns the selection, or nil if still choosing.
func (m LevelSelectModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level picker for gameID and returns the
// selection, or nil when the user backed out or quit.
func RunLevelSelector(store *storage.Store, gameID string, cfg core.RuntimeConfig) (*LevelSelection, core.RuntimeConfig, error) {
	model := NewLevelSelectModel(store, gameID, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok {
		return nil, cfg, nil
	}
	cfg.ScreenW = m.width
	cfg.ScreenH = m.height

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
