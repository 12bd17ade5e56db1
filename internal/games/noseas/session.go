package noseas

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/noseas/internal/config"
	"github.com/vovakirdan/noseas/internal/core"
)

// Mode is the top-level game state.
type Mode int

const (
	ModeMenu Mode = iota
	ModePlaying
	ModeGameOver
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModePlaying:
		return "playing"
	case ModeGameOver:
		return "gameover"
	default:
		return "?"
	}
}

// Session owns every piece of mutable game state.
type Session struct {
	cfg config.NoSeasConfig
	rng *rand.Rand
	log *log.Logger

	Mode      Mode
	Score     int
	HighScore int

	Player    Player
	canonical Player

	Obstacles   []Obstacle
	Fading      []FadingChest
	Backgrounds []Background
	Perks       PerkState
	Tutorial    Tutorial

	ramp    *config.Ramp
	spawner *Spawner

	StartedAt time.Time
	EndedAt   time.Time
	DiedAt    time.Time
	Running   bool

	// AssetErr blocks the transition into play.
	AssetErr error
}

// NewSession creates a session at the menu.
func NewSession(cfg config.NoSeasConfig, rng *rand.Rand, profile core.Profile, logger *log.Logger) *Session {
	s := &Session{
		cfg:       cfg,
		rng:       rng,
		log:       logger,
		Mode:      ModeMenu,
		HighScore: profile.HighScore,
		canonical: newPlayer(cfg),
		ramp:      config.NewRamp(cfg.Difficulty),
		spawner:   NewSpawner(cfg, rng),
		Tutorial:  newTutorial(cfg.Tutorial, cfg.World.Height, profile.TutorialSeen),
	}
	s.Player = s.canonical
	s.Backgrounds = newBackgrounds(cfg.World)
	return s
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.NoSeasConfig {
	return s.cfg
}

// Spawner exposes the obstacle spawner.
func (s *Session) Spawner() *Spawner {
	return s.spawner
}

// Speed returns the difficulty scalar.
func (s *Session) Speed() float64 {
	return s.ramp.Speed()
}

// Reset restores a fresh run. Calling it twice with the same now leaves
// identical state.
func (s *Session) Reset(now time.Time) {
	s.Score = 0
	s.Obstacles = s.Obstacles[:0]
	s.Fading = s.Fading[:0]

	s.Player = s.canonical
	s.Backgrounds = newBackgrounds(s.cfg.World)
	s.ramp.Reset(now)

	s.Perks.clear()
	s.spawner.Reset()

	s.StartedAt = now
	s.EndedAt = time.Time{}
	s.DiedAt = time.Time{}
	s.Running = true
}

// Start leaves the menu for a new run. It refuses while assets are invalid.
func (s *Session) Start(now time.Time) bool {
	if s.Mode != ModeMenu {
		return false
	}
	if s.AssetErr != nil {
		s.log.Warn("cannot start run", "err", s.AssetErr)
		return false
	}
	s.Reset(now)
	s.Mode = ModePlaying
	s.log.Info("run started", "high_score", s.HighScore)
	return true
}

// die ends the run and reports the final score.
func (s *Session) die(now time.Time) core.Event {
	s.DiedAt = now
	s.EndedAt = now
	s.Running = false
	s.Mode = ModeGameOver
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
	alive := s.Alive(now)
	s.log.Info("game over", "score", s.Score, "alive", alive)
	return core.Event{Kind: core.EventGameOver, Score: s.Score, AliveMs: alive.Milliseconds()}
}

// Alive returns how long the current or last run lasted.
func (s *Session) Alive(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	if s.Running {
		return now.Sub(s.StartedAt)
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// RestartIn returns how long until GameOver accepts Start.
func (s *Session) RestartIn(now time.Time) time.Duration {
	left := s.cfg.World.RestartDelay() - now.Sub(s.DiedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Step advances one tick in whatever mode the session is in.
func (s *Session) Step(now time.Time, in core.InputFrame) []core.Event {
	var events []core.Event

	switch s.Mode {
	case ModeMenu:
		events = s.stepMenu(now, in)
	case ModePlaying:
		events = s.update(now, in)
	case ModeGameOver:
		if (in.Start() || in.Has(core.ActionRestart)) && s.RestartIn(now) == 0 {
			s.Mode = ModeMenu
		}
	}

	s.Player.advanceFrame(s.cfg.World.SpriteFrames, s.cfg.World.FrameHold)
	return events
}

func (s *Session) stepMenu(now time.Time, in core.InputFrame) []core.Event {
	t := &s.Tutorial
	if t.Visible {
		t.Update()
		if in.Has(core.ActionSkip) || (in.Start() && t.Ready()) {
			t.Close()
			s.log.Debug("tutorial dismissed")
			return []core.Event{{Kind: core.EventTutorialSeen}}
		}
		return nil
	}

	if in.Has(core.ActionShowTutorial) {
		t.Open()
		return nil
	}
	if in.Start() {
		s.Start(now)
	}
	return nil
}
