package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// EventKind identifies what happened during a tick.
type EventKind int

const (
	EventLevelFinished EventKind = iota + 1 // A puzzle was cleared or flushed off the stage
	EventRowLost                            // The stage shrank by one row
)

// Event is a notable game occurrence surfaced to the platform, which may
// persist or display it.
type Event struct {
	Kind    EventKind
	LevelID string
	Score   int // Points earned on the level (EventLevelFinished)
	Perfect bool
	Count   int // Cubes captured (EventLevelFinished) or rows left (EventRowLost)
	Escaped int
}
