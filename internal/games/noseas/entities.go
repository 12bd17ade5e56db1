package noseas

import (
	"math"
	"time"

	"github.com/vovakirdan/noseas/internal/config"
	"github.com/vovakirdan/noseas/internal/core"
)

// Animation selects the player sprite sheet.
type Animation int

const (
	AnimRun Animation = iota
	AnimJump
)

// String returns the sheet tag.
func (a Animation) String() string {
	if a == AnimJump {
		return "JUMP"
	}
	return "RUN"
}

// Player is the pirate. Y grows downward; GroundY is the resting line on the
// active side of gravity.
type Player struct {
	X, Y          float64
	Width, Height float64
	Velocity      float64

	Gravity          float64
	JumpForce        float64
	SkyWalkGravity   float64
	SkyWalkJumpForce float64

	JumpsRemaining int
	MaxJumps       int

	Animation  Animation
	Frame      int
	FrameCount int
	Opacity    float64

	IsJumping  bool
	IsPhasing  bool
	IsInverted bool
	GroundY    float64
}

// newPlayer builds the canonical player for a world.
func newPlayer(cfg config.NoSeasConfig) Player {
	groundY := cfg.World.FloorY() - cfg.Player.Height
	return Player{
		X:                cfg.World.Width/2 - cfg.Player.OffsetX,
		Y:                groundY,
		Width:            cfg.Player.Width,
		Height:           cfg.Player.Height,
		Gravity:          cfg.Physics.Gravity,
		JumpForce:        cfg.Physics.JumpForce,
		SkyWalkGravity:   cfg.Physics.SkyWalkGravity,
		SkyWalkJumpForce: cfg.Physics.SkyWalkJumpForce,
		JumpsRemaining:   cfg.Physics.MaxJumps,
		MaxJumps:         cfg.Physics.MaxJumps,
		Animation:        AnimRun,
		Opacity:          1,
		GroundY:          groundY,
	}
}

// Rect returns the collision box.
func (p *Player) Rect() core.RectF {
	return core.NewRectF(p.X, p.Y, p.Width, p.Height)
}

// Jump spends one jump from the budget. Under SkyWalk the impulse points
// down, away from the ceiling.
func (p *Player) Jump(skyWalk bool) bool {
	if p.JumpsRemaining <= 0 {
		return false
	}
	if skyWalk {
		p.Velocity = math.Abs(p.SkyWalkJumpForce)
	} else {
		p.Velocity = p.JumpForce
	}
	p.IsJumping = true
	p.Animation = AnimJump
	p.JumpsRemaining--
	return true
}

// fall integrates one tick of vertical motion and lands on GroundY.
func (p *Player) fall(skyWalk bool) {
	if skyWalk {
		p.Velocity -= p.SkyWalkGravity
		p.Y += p.Velocity
		if p.Y <= p.GroundY {
			p.land()
		}
		return
	}
	p.Velocity += p.Gravity
	p.Y += p.Velocity
	if p.Y >= p.GroundY {
		p.land()
	}
}

func (p *Player) land() {
	p.Y = p.GroundY
	p.Velocity = 0
	p.IsJumping = false
	p.Animation = AnimRun
	p.JumpsRemaining = p.MaxJumps
}

// cancelJump stops any vertical motion without touching Y.
func (p *Player) cancelJump() {
	p.Velocity = 0
	p.IsJumping = false
	p.Animation = AnimRun
}

// advanceFrame cycles the sprite frame every hold ticks.
func (p *Player) advanceFrame(frames, hold int) {
	p.FrameCount++
	if p.FrameCount >= hold {
		p.FrameCount = 0
		p.Frame = (p.Frame + 1) % frames
	}
}

// ObstacleKind identifies the obstacle type.
type ObstacleKind int

const (
	KindBarrel ObstacleKind = iota
	KindCrate
	KindChest
	KindAttack
)

// String returns the type tag.
func (k ObstacleKind) String() string {
	switch k {
	case KindBarrel:
		return "BARREL"
	case KindCrate:
		return "CRATE"
	case KindChest:
		return "CHEST"
	case KindAttack:
		return "ATTACK"
	default:
		return "UNKNOWN"
	}
}

// Obstacle scrolls from the right edge toward the player.
type Obstacle struct {
	Kind          ObstacleKind
	X, Y          float64
	RestY         float64
	Width, Height float64
	SpeedMult     float64
	Dangerous     bool
	IsPerk        bool

	BobAmount float64
	BobSpeed  float64 // radians per millisecond
	BobPhase  float64
	BobOffset float64
	RotAmount float64
	RotSpeed  float64
	Rotation  float64

	Taunt     string
	ShowTaunt bool
	SpawnedAt time.Time
}

// Rect returns the collision box at the animated position.
func (o *Obstacle) Rect() core.RectF {
	return core.NewRectF(o.X, o.Y, o.Width, o.Height)
}

// animate recomputes bob and rotation for the given time.
func (o *Obstacle) animate(now time.Time) {
	t := float64(now.Sub(o.SpawnedAt).Milliseconds())
	if o.BobAmount != 0 {
		o.BobOffset = math.Sin(t*o.BobSpeed+o.BobPhase) * o.BobAmount
	}
	if o.RotAmount != 0 {
		o.Rotation = math.Sin(t*o.RotSpeed+o.BobPhase) * o.RotAmount
	}
	o.Y = o.RestY + o.BobOffset
}

// TauntVisible reports whether the taunt should be drawn. It appears once
// the obstacle has crossed the middle of the world.
func (o *Obstacle) TauntVisible(worldW float64) bool {
	return o.ShowTaunt && o.X < worldW/2
}

// Offscreen reports whether the trailing edge has left the world.
func (o *Obstacle) Offscreen() bool {
	return o.X+o.Width < 0
}

// FadingChest is the ghost of a collected chest.
type FadingChest struct {
	X, Y, Width, Height float64
	Opacity             float64
}

// fade lowers opacity and reports whether the effect is still visible.
func (f *FadingChest) fade(step float64) bool {
	f.Opacity -= step
	return f.Opacity > 0
}

// Background is one scrolling backdrop tile.
type Background struct {
	X     float64
	Speed float64
}

// newBackgrounds lays three tiles edge to edge with a small overlap.
func newBackgrounds(w config.WorldConfig) []Background {
	bgs := make([]Background, 3)
	for i := range bgs {
		bgs[i] = Background{
			X:     float64(i) * (w.Width - w.BackgroundGap),
			Speed: w.BackgroundSpeed,
		}
	}
	return bgs
}

// scrollBackgrounds moves tiles left and recycles any that left the world
// behind the rightmost one.
func scrollBackgrounds(bgs []Background, w config.WorldConfig) {
	for i := range bgs {
		bgs[i].X -= bgs[i].Speed
		if bgs[i].X <= -w.Width {
			right := bgs[0].X
			for _, b := range bgs[1:] {
				right = math.Max(right, b.X)
			}
			bgs[i].X = right + w.Width - w.BackgroundGap
		}
	}
}
