package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	TickRate int     // Simulation ticks per second (default 60)
	Seed     int64   // RNG seed for deterministic gameplay
	Profile  Profile // Values persisted between sessions
}

// Profile holds the only state that survives across sessions.
type Profile struct {
	HighScore    int
	TutorialSeen bool
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
	Score     int  // Current score
	HighScore int  // Best score known to the game
	GameOver  bool // Whether the run has ended
	Paused    bool // Whether the game is paused
}

// EventKind identifies something the platform must react to, usually by
// persisting it.
type EventKind int

const (
	EventGameOver EventKind = iota + 1
	EventTutorialSeen
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventGameOver:
		return "game_over"
	case EventTutorialSeen:
		return "tutorial_seen"
	default:
		return "unknown"
	}
}

// Event is emitted by a step.
type Event struct {
	Kind    EventKind
	Score   int   // final score for EventGameOver
	AliveMs int64 // time alive for EventGameOver
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
