package noseas

import (
	"time"

	"github.com/vovakirdan/noseas/internal/core"
)

// update runs one Playing tick. Order matters: ramp, perks, physics,
// obstacles (move, animate, score, collide), spawn, timers, background.
func (s *Session) update(now time.Time, in core.InputFrame) []core.Event {
	if in.Start() && !s.Perks.Transitioning {
		s.Player.Jump(s.skyWalking())
	}

	s.ramp.Update(now)

	s.advancePerks(now)

	if s.Player.IsJumping && !s.Perks.Transitioning {
		s.Player.fall(s.skyWalking())
	}

	if s.updateObstacles(now) {
		return []core.Event{s.die(now)}
	}

	if !s.Blessed(now) && s.spawner.Due(s.Obstacles) {
		s.Obstacles = append(s.Obstacles, s.spawner.Spawn(now))
	}

	s.expireTimers(now)

	scrollBackgrounds(s.Backgrounds, s.cfg.World)
	return nil
}

// updateObstacles moves every obstacle and resolves collisions. It reports
// whether the player was killed; obstacles after the fatal one are left
// untouched.
func (s *Session) updateObstacles(now time.Time) bool {
	step := s.cfg.Physics.BaseSpeed * s.ramp.Speed()
	kept := s.Obstacles[:0]

	for i := 0; i < len(s.Obstacles); i++ {
		o := s.Obstacles[i]
		o.X -= step * o.SpeedMult
		o.animate(now)

		if o.Offscreen() {
			s.Score++
			continue
		}

		switch s.collide(&o, now) {
		case OutcomeConsumed:
			continue
		case OutcomeFatal:
			kept = append(kept, o)
			kept = append(kept, s.Obstacles[i+1:]...)
			s.Obstacles = kept
			return true
		}
		kept = append(kept, o)
	}

	s.Obstacles = kept
	return false
}

// expireTimers retires the Blessing and banner, and fades collected chests.
func (s *Session) expireTimers(now time.Time) {
	if s.Perks.Blessing.Expire(now) {
		s.log.Debug("blessing ended")
	}
	if s.Perks.Banner.Expire(now) {
		s.Perks.BannerText = ""
	}

	visible := s.Fading[:0]
	for _, f := range s.Fading {
		if f.fade(s.cfg.Perks.ChestFade) {
			visible = append(visible, f)
		}
	}
	s.Fading = visible
}
