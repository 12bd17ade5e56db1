package noseas

import (
	"math"
	"time"

	"github.com/vovakirdan/noseas/internal/clock"
)

// PerkKind identifies a timed power granted by a chest.
type PerkKind int

const (
	PerkPhase PerkKind = iota
	PerkSkyWalk
	PerkShrink
	PerkSlowSpawn
	perkCount // Sentinel for counting kinds
)

// String returns the HUD name.
func (k PerkKind) String() string {
	switch k {
	case PerkPhase:
		return "PHASE"
	case PerkSkyWalk:
		return "SKY WALK"
	case PerkShrink:
		return "SHRINK"
	case PerkSlowSpawn:
		return "SLOW SPAWN"
	default:
		return "?"
	}
}

// Stage is the sub-state of an active perk.
type Stage int

const (
	StageEnter Stage = iota
	StageHold
	StageExit
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageEnter:
		return "enter"
	case StageHold:
		return "hold"
	case StageExit:
		return "exit"
	default:
		return "?"
	}
}

// ActivePerk is the single occupied perk slot.
type ActivePerk struct {
	Kind  PerkKind
	Start time.Time
	End   time.Time
	Stage Stage
}

// Remaining returns time until natural expiry, never negative.
func (a *ActivePerk) Remaining(now time.Time) time.Duration {
	if left := a.End.Sub(now); left > 0 {
		return left
	}
	return 0
}

// PerkState holds the perk slot and everything that follows from it.
type PerkState struct {
	Active *ActivePerk

	// Blessing grants immunity and pauses spawning; both end on this one
	// deadline.
	Blessing clock.Deadline

	Banner     clock.Deadline
	BannerText string

	// Transitioning suppresses collisions and physics while SkyWalk moves
	// the player between floor and ceiling.
	Transitioning bool

	savedDistance float64
	fromY         float64
}

// clear empties the slot and every timer.
func (ps *PerkState) clear() {
	*ps = PerkState{}
}

// EaseInOutQuad maps linear progress to quadratic ease-in-out.
func EaseInOutQuad(p float64) float64 {
	if p < 0.5 {
		return 2 * p * p
	}
	return 1 - math.Pow(-2*p+2, 2)/2
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func (s *Session) perkDuration(kind PerkKind) time.Duration {
	switch kind {
	case PerkPhase:
		return s.cfg.Perks.Phase()
	case PerkSkyWalk:
		return s.cfg.Perks.SkyWalk()
	case PerkShrink:
		return s.cfg.Perks.Shrink()
	default:
		return s.cfg.Perks.SlowSpawn()
	}
}

// ActivatePerk fills the perk slot. It returns false and changes nothing
// while another perk is active.
func (s *Session) ActivatePerk(kind PerkKind, now time.Time) bool {
	ps := &s.Perks
	if ps.Active != nil {
		return false
	}

	a := &ActivePerk{
		Kind:  kind,
		Start: now,
		End:   now.Add(s.perkDuration(kind)),
		Stage: StageHold,
	}
	ps.Active = a

	switch kind {
	case PerkPhase:
		s.Player.IsPhasing = true
		s.Player.Opacity = s.cfg.Perks.PhaseOpacity
	case PerkSkyWalk:
		a.Stage = StageEnter
		s.Player.cancelJump()
		ps.fromY = s.Player.Y
		ps.Transitioning = true
	case PerkShrink:
		a.Stage = StageEnter
	case PerkSlowSpawn:
		ps.savedDistance = s.spawner.MinDistance
		s.spawner.MinDistance *= s.cfg.Perks.SlowSpawnFactor
	}

	ps.BannerText = kind.String()
	ps.Banner.Start(now, s.cfg.Perks.Banner())
	s.log.Info("perk activated", "perk", kind, "duration_ms", a.End.Sub(a.Start).Milliseconds())
	return true
}

// advancePerks moves the active perk through its stages and expires it.
func (s *Session) advancePerks(now time.Time) {
	a := s.Perks.Active
	if a == nil {
		return
	}
	if !now.Before(a.End) {
		s.expirePerk(now)
		return
	}

	switch a.Kind {
	case PerkPhase:
		s.advancePhase(a, now)
	case PerkSkyWalk:
		s.advanceSkyWalk(a, now)
	case PerkShrink:
		s.advanceShrink(a, now)
	}
}

func (s *Session) advancePhase(a *ActivePerk, now time.Time) {
	pc := s.cfg.Perks
	remaining := a.Remaining(now)
	warn := pc.PhaseWarn()
	if remaining >= warn || warn <= 0 {
		s.Player.Opacity = pc.PhaseOpacity
		return
	}

	// Blink faster as expiry approaches.
	a.Stage = StageExit
	frac := float64(remaining) / float64(warn)
	period := lerp(float64(pc.BlinkFastMs), float64(pc.BlinkSlowMs), frac)
	if period < 1 {
		period = 1
	}
	if int(float64(remaining.Milliseconds())/period)%2 == 0 {
		s.Player.Opacity = pc.PhaseOpacity
	} else {
		s.Player.Opacity = pc.PhaseBlinkOpacity
	}
}

func (s *Session) advanceSkyWalk(a *ActivePerk, now time.Time) {
	ps := &s.Perks
	p := &s.Player
	t := s.cfg.Perks.Transition()
	elapsed := now.Sub(a.Start)
	remaining := a.Remaining(now)
	ceiling := s.cfg.World.CeilingY

	switch {
	case remaining <= t:
		if a.Stage != StageExit {
			a.Stage = StageExit
			p.cancelJump()
			ps.fromY = p.Y
			ps.Transitioning = true
			p.IsInverted = false
			p.GroundY = s.floorGround()
		}
		prog := 1 - float64(remaining)/float64(t)
		p.Y = lerp(ps.fromY, p.GroundY, EaseInOutQuad(prog))
	case elapsed < t:
		prog := float64(elapsed) / float64(t)
		p.Y = lerp(ps.fromY, ceiling, EaseInOutQuad(prog))
	default:
		// Orientation flips only once the ceiling is reached, so the rise
		// stays on the floor side of gravity.
		if a.Stage == StageEnter {
			a.Stage = StageHold
			ps.Transitioning = false
			p.IsInverted = true
			p.Y = ceiling
			p.GroundY = ceiling
		}
	}
}

func (s *Session) advanceShrink(a *ActivePerk, now time.Time) {
	t := s.cfg.Perks.Transition()
	scale := s.cfg.Perks.ShrinkScale
	elapsed := now.Sub(a.Start)
	remaining := a.Remaining(now)

	var k float64
	switch {
	case remaining <= t:
		a.Stage = StageExit
		k = lerp(scale, 1, EaseInOutQuad(1-float64(remaining)/float64(t)))
	case elapsed < t:
		a.Stage = StageEnter
		k = lerp(1, scale, EaseInOutQuad(float64(elapsed)/float64(t)))
	default:
		a.Stage = StageHold
		k = scale
	}
	s.resize(k)
}

// resize scales the player from canonical size and keeps feet planted.
func (s *Session) resize(k float64) {
	p := &s.Player
	p.Width = s.canonical.Width * k
	p.Height = s.canonical.Height * k
	p.GroundY = s.floorGround()
	if !p.IsJumping || p.Y > p.GroundY {
		p.Y = p.GroundY
	}
}

func (s *Session) floorGround() float64 {
	return s.cfg.World.FloorY() - s.Player.Height
}

// expirePerk undoes the perk and starts exactly one Blessing.
func (s *Session) expirePerk(now time.Time) {
	ps := &s.Perks
	a := ps.Active
	p := &s.Player

	switch a.Kind {
	case PerkPhase:
		p.IsPhasing = false
		p.Opacity = 1
	case PerkSkyWalk:
		p.IsInverted = false
		p.GroundY = s.floorGround()
		p.land()
	case PerkShrink:
		s.resize(1)
	case PerkSlowSpawn:
		s.spawner.MinDistance = ps.savedDistance
	}

	ps.Active = nil
	ps.Transitioning = false
	ps.Blessing.Start(now, s.cfg.Perks.Blessing())
	s.log.Info("perk expired", "perk", a.Kind, "blessing_until", ps.Blessing.End().Format(time.TimeOnly))
}

// Blessed reports whether the Blessing window is open.
func (s *Session) Blessed(now time.Time) bool {
	return s.Perks.Blessing.Active(now)
}

// skyWalking reports whether inverted gravity applies.
func (s *Session) skyWalking() bool {
	a := s.Perks.Active
	return a != nil && a.Kind == PerkSkyWalk && a.Stage == StageHold
}
