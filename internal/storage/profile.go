package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/noseas/internal/core"
)

// LoadProfile reads the persisted values a new session starts from.
func (s *Store) LoadProfile() (core.Profile, error) {
	high, err := s.HighScore(GameID)
	if err != nil {
		return core.Profile{}, err
	}
	seen, err := s.Flag(FlagTutorialSeen)
	if err != nil {
		return core.Profile{}, err
	}
	return core.Profile{HighScore: high, TutorialSeen: seen}, nil
}

// Record persists a game event. Unknown kinds are an error.
func (s *Store) Record(ev core.Event) error {
	switch ev.Kind {
	case core.EventGameOver:
		if _, err := s.SaveScore(GameID, ev.Score, time.Duration(ev.AliveMs)*time.Millisecond); err != nil {
			return err
		}
	case core.EventTutorialSeen:
		if err := s.SetFlag(FlagTutorialSeen, true); err != nil {
			return err
		}
	default:
		return fmt.Errorf("storage: unknown event %v", ev.Kind)
	}
	return nil
}
