// Package config provides YAML/TOML game configuration loading and
// difficulty management for NO SEAS.
package config

import "time"

// NoSeasConfig contains all tunable values for the runner.
type NoSeasConfig struct {
	World      WorldConfig     `yaml:"world" toml:"world"`
	Player     PlayerConfig    `yaml:"player" toml:"player"`
	Physics    PhysicsConfig   `yaml:"physics" toml:"physics"`
	Obstacles  ObstaclesConfig `yaml:"obstacles" toml:"obstacles"`
	Perks      PerksConfig     `yaml:"perks" toml:"perks"`
	Difficulty RampConfig      `yaml:"difficulty" toml:"difficulty"`
	Tutorial   TutorialConfig  `yaml:"tutorial" toml:"tutorial"`
}

// WorldConfig defines the playfield in world pixels.
type WorldConfig struct {
	Width           float64 `yaml:"width" toml:"width"`
	Height          float64 `yaml:"height" toml:"height"`
	FloorOffset     float64 `yaml:"floor_offset" toml:"floor_offset"` // floor line sits this far above the bottom
	CeilingY        float64 `yaml:"ceiling_y" toml:"ceiling_y"`
	BackgroundSpeed float64 `yaml:"background_speed" toml:"background_speed"`
	BackgroundGap   float64 `yaml:"background_overlap" toml:"background_overlap"`
	SpriteFrames    int     `yaml:"sprite_frames" toml:"sprite_frames"`
	FrameHold       int     `yaml:"frame_hold" toml:"frame_hold"` // ticks per sprite frame
	RestartDelayMs  int     `yaml:"restart_delay_ms" toml:"restart_delay_ms"`
}

// FloorY returns the y-coordinate of the floor line.
func (w WorldConfig) FloorY() float64 {
	return w.Height - w.FloorOffset
}

// RestartDelay is the minimum time between death and returning to the menu.
func (w WorldConfig) RestartDelay() time.Duration {
	return ms(w.RestartDelayMs)
}

// PlayerConfig defines the canonical player body.
type PlayerConfig struct {
	Width   float64 `yaml:"width" toml:"width"`
	Height  float64 `yaml:"height" toml:"height"`
	OffsetX float64 `yaml:"offset_x" toml:"offset_x"` // x = world.width/2 - offset_x
}

// PhysicsConfig defines vertical motion and scroll speed.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity" toml:"gravity"`
	JumpForce        float64 `yaml:"jump_force" toml:"jump_force"`
	SkyWalkGravity   float64 `yaml:"skywalk_gravity" toml:"skywalk_gravity"`
	SkyWalkJumpForce float64 `yaml:"skywalk_jump_force" toml:"skywalk_jump_force"`
	MaxJumps         int     `yaml:"max_jumps" toml:"max_jumps"`
	BaseSpeed        float64 `yaml:"base_speed" toml:"base_speed"` // pixels per tick at difficulty 1.0
}

// ObstacleType defines the fixed attributes of one obstacle kind.
type ObstacleType struct {
	Width     float64 `yaml:"width" toml:"width"`
	Height    float64 `yaml:"height" toml:"height"`
	SpeedMult float64 `yaml:"speed_mult" toml:"speed_mult"`
	BobAmount float64 `yaml:"bob_amount" toml:"bob_amount"`
	BobSpeed  float64 `yaml:"bob_speed" toml:"bob_speed"` // radians per millisecond
	RotAmount float64 `yaml:"rot_amount" toml:"rot_amount"`
	RotSpeed  float64 `yaml:"rot_speed" toml:"rot_speed"`
}

// ObstaclesConfig defines the spawner policy.
type ObstaclesConfig struct {
	MinDistance float64 `yaml:"min_distance" toml:"min_distance"`

	// Cumulative thresholds for a uniform draw r in [0,1):
	// r < BarrelBelow is a barrel, r < CrateBelow a crate, r < AttackBelow
	// an attack, anything else a chest.
	BarrelBelow float64 `yaml:"barrel_below" toml:"barrel_below"`
	CrateBelow  float64 `yaml:"crate_below" toml:"crate_below"`
	AttackBelow float64 `yaml:"attack_below" toml:"attack_below"`

	Barrel ObstacleType `yaml:"barrel" toml:"barrel"`
	Crate  ObstacleType `yaml:"crate" toml:"crate"`
	Chest  ObstacleType `yaml:"chest" toml:"chest"`
	Attack ObstacleType `yaml:"attack" toml:"attack"`

	TauntChance float64  `yaml:"taunt_chance" toml:"taunt_chance"`
	Taunts      []string `yaml:"taunts" toml:"taunts"`
}

// PerksConfig defines perk timings.
type PerksConfig struct {
	PhaseMs           int     `yaml:"phase_ms" toml:"phase_ms"`
	PhaseWarnMs       int     `yaml:"phase_warn_ms" toml:"phase_warn_ms"`
	PhaseOpacity      float64 `yaml:"phase_opacity" toml:"phase_opacity"`
	PhaseBlinkOpacity float64 `yaml:"phase_blink_opacity" toml:"phase_blink_opacity"`
	BlinkSlowMs       int     `yaml:"blink_slow_ms" toml:"blink_slow_ms"`
	BlinkFastMs       int     `yaml:"blink_fast_ms" toml:"blink_fast_ms"`
	SkyWalkMs         int     `yaml:"skywalk_ms" toml:"skywalk_ms"`
	ShrinkMs          int     `yaml:"shrink_ms" toml:"shrink_ms"`
	ShrinkScale       float64 `yaml:"shrink_scale" toml:"shrink_scale"`
	SlowSpawnMs       int     `yaml:"slow_spawn_ms" toml:"slow_spawn_ms"`
	SlowSpawnFactor   float64 `yaml:"slow_spawn_factor" toml:"slow_spawn_factor"`
	TransitionMs      int     `yaml:"transition_ms" toml:"transition_ms"`
	BlessingMs        int     `yaml:"blessing_ms" toml:"blessing_ms"`
	BannerMs          int     `yaml:"banner_ms" toml:"banner_ms"`
	ChestFade         float64 `yaml:"chest_fade" toml:"chest_fade"` // opacity lost per tick
}

// Phase returns the Phase perk duration.
func (p PerksConfig) Phase() time.Duration { return ms(p.PhaseMs) }

// PhaseWarn returns how long before Phase expiry the blink starts.
func (p PerksConfig) PhaseWarn() time.Duration { return ms(p.PhaseWarnMs) }

// SkyWalk returns the SkyWalk perk duration, transitions included.
func (p PerksConfig) SkyWalk() time.Duration { return ms(p.SkyWalkMs) }

// Shrink returns the Shrink perk duration.
func (p PerksConfig) Shrink() time.Duration { return ms(p.ShrinkMs) }

// SlowSpawn returns the SlowSpawn perk duration.
func (p PerksConfig) SlowSpawn() time.Duration { return ms(p.SlowSpawnMs) }

// Transition returns the enter/exit animation length.
func (p PerksConfig) Transition() time.Duration { return ms(p.TransitionMs) }

// Blessing returns the post-perk grace window.
func (p PerksConfig) Blessing() time.Duration { return ms(p.BlessingMs) }

// Banner returns how long the perk name stays on screen.
func (p PerksConfig) Banner() time.Duration { return ms(p.BannerMs) }

// RampConfig defines the time-stepped difficulty scalar.
type RampConfig struct {
	Enabled    bool    `yaml:"enabled" toml:"enabled"`
	Initial    float64 `yaml:"initial" toml:"initial"`
	Step       float64 `yaml:"step" toml:"step"`
	IntervalMs int     `yaml:"interval_ms" toml:"interval_ms"`
}

// Interval returns the time between increases.
func (r RampConfig) Interval() time.Duration { return ms(r.IntervalMs) }

// TutorialConfig defines the first-run scrolling overlay.
type TutorialConfig struct {
	ScrollSpeed float64 `yaml:"scroll_speed" toml:"scroll_speed"` // pixels per tick
	LineHeight  float64 `yaml:"line_height" toml:"line_height"`
	ReadyPad    float64 `yaml:"ready_pad" toml:"ready_pad"` // extra scroll before Start dismisses
	EndPad      float64 `yaml:"end_pad" toml:"end_pad"`     // scroll stops here
	Text        string  `yaml:"text" toml:"text"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch DifficultyPreset(name) {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name), true
	default:
		return "", false
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
