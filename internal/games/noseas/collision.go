package noseas

import "time"

// Outcome is the result of testing the player against one obstacle.
type Outcome int

const (
	OutcomeNone     Outcome = iota // no overlap, or harmless overlap
	OutcomeIgnored                 // overlap while phasing or mid-transition
	OutcomeConsumed                // chest collected
	OutcomeFatal                   // run over
	OutcomeBlessed                 // dangerous overlap absorbed by the Blessing
)

// String returns the outcome name for logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeConsumed:
		return "consumed"
	case OutcomeFatal:
		return "fatal"
	case OutcomeBlessed:
		return "blessed"
	default:
		return "?"
	}
}

// Classify decides what an obstacle does to the player. It has no side
// effects.
func Classify(p *Player, o *Obstacle, transition, blessed bool) Outcome {
	if !p.Rect().Intersects(o.Rect()) {
		return OutcomeNone
	}
	if p.IsPhasing || transition {
		return OutcomeIgnored
	}
	if o.IsPerk {
		return OutcomeConsumed
	}
	if o.Dangerous {
		if blessed {
			return OutcomeBlessed
		}
		return OutcomeFatal
	}
	return OutcomeNone
}

// collide classifies o and applies chest effects. The caller removes
// consumed obstacles and ends the run on a fatal outcome.
func (s *Session) collide(o *Obstacle, now time.Time) Outcome {
	out := Classify(&s.Player, o, s.Perks.Transitioning, s.Blessed(now))
	if out == OutcomeConsumed {
		s.Fading = append(s.Fading, FadingChest{
			X: o.X, Y: o.Y, Width: o.Width, Height: o.Height, Opacity: 1,
		})
		kind := PerkKind(s.rng.Intn(int(perkCount)))
		if !s.ActivatePerk(kind, now) {
			s.log.Debug("chest collected while perk active", "perk", kind)
		}
	}
	return out
}
