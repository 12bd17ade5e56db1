package noseas

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/noseas/internal/config"
)

// Spawner decides when a new obstacle enters and what it is.
type Spawner struct {
	cfg    config.ObstaclesConfig
	rng    *rand.Rand
	worldW float64
	floorY float64

	// MinDistance is the gap required between the rightmost obstacle's
	// trailing edge and the right edge of the world. SlowSpawn scales it.
	MinDistance float64
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(cfg config.NoSeasConfig, rng *rand.Rand) *Spawner {
	return &Spawner{
		cfg:         cfg.Obstacles,
		rng:         rng,
		worldW:      cfg.World.Width,
		floorY:      cfg.World.FloorY(),
		MinDistance: cfg.Obstacles.MinDistance,
	}
}

// Reset restores the configured spacing.
func (sp *Spawner) Reset() {
	sp.MinDistance = sp.cfg.MinDistance
}

// BaseDistance returns the configured spacing.
func (sp *Spawner) BaseDistance() float64 {
	return sp.cfg.MinDistance
}

// Due reports whether a new obstacle should enter now.
func (sp *Spawner) Due(obstacles []Obstacle) bool {
	if len(obstacles) == 0 {
		return true
	}
	trailing := math.Inf(-1)
	for i := range obstacles {
		trailing = math.Max(trailing, obstacles[i].X+obstacles[i].Width)
	}
	return sp.worldW-trailing >= sp.MinDistance
}

// PickKind maps a uniform draw in [0,1) to an obstacle type.
func (sp *Spawner) PickKind(r float64) ObstacleKind {
	switch {
	case r < sp.cfg.BarrelBelow:
		return KindBarrel
	case r < sp.cfg.CrateBelow:
		return KindCrate
	case r < sp.cfg.AttackBelow:
		return KindAttack
	default:
		return KindChest
	}
}

// Spawn creates a random obstacle at the right edge.
func (sp *Spawner) Spawn(now time.Time) Obstacle {
	return sp.Build(sp.PickKind(sp.rng.Float64()), now)
}

// Build creates an obstacle of a given kind at the right edge.
func (sp *Spawner) Build(kind ObstacleKind, now time.Time) Obstacle {
	t := sp.typeOf(kind)
	restY := sp.floorY - t.Height
	o := Obstacle{
		Kind:      kind,
		X:         sp.worldW,
		Y:         restY,
		RestY:     restY,
		Width:     t.Width,
		Height:    t.Height,
		SpeedMult: t.SpeedMult,
		Dangerous: kind != KindChest,
		IsPerk:    kind == KindChest,
		SpawnedAt: now,
	}
	if o.SpeedMult == 0 {
		o.SpeedMult = 1
	}
	if kind == KindChest {
		return o
	}

	o.BobAmount = t.BobAmount
	o.BobSpeed = t.BobSpeed
	o.RotAmount = t.RotAmount
	o.RotSpeed = t.RotSpeed
	o.BobPhase = sp.rng.Float64() * 2 * math.Pi

	if kind == KindAttack && len(sp.cfg.Taunts) > 0 && sp.rng.Float64() < sp.cfg.TauntChance {
		o.ShowTaunt = true
		o.Taunt = sp.cfg.Taunts[sp.rng.Intn(len(sp.cfg.Taunts))]
	}
	return o
}

func (sp *Spawner) typeOf(kind ObstacleKind) config.ObstacleType {
	switch kind {
	case KindBarrel:
		return sp.cfg.Barrel
	case KindCrate:
		return sp.cfg.Crate
	case KindAttack:
		return sp.cfg.Attack
	default:
		return sp.cfg.Chest
	}
}
