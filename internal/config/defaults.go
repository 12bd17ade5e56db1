package config

import (
	_ "embed"
	"strings"
)

//go:embed defaults/noseas.yaml
var defaultNoSeasYAML []byte

var defaultTutorial = strings.Join([]string{
	"Ahoy, landlubber! Welcome to NO SEAS!",
	"",
	"Ye be runnin' from the ghostly crew, see?",
	"",
	"Tap the SPACE key to make yer leap, like a dolphin off the bow!",
	"",
	"Got some sea legs? Tap SPACE twice for a mighty double jump!",
	"",
	"Them glowing chests be holdin' magical powers, grab 'em if ye dare!",
	"",
	"Dodge them nasty spirits or ye'll be joining their crew!",
	"",
	"The Pirate's Blessing will save ye in the nick of time!",
	"",
	"Ready to set sail? Press SPACE to begin yer adventure!",
}, "\n")

// DefaultNoSeasConfig returns the built-in configuration. It mirrors
// defaults/noseas.yaml and is used when the embedded file cannot be parsed.
func DefaultNoSeasConfig() NoSeasConfig {
	jitter := ObstacleType{
		Width:     50,
		Height:    50,
		SpeedMult: 1,
		BobAmount: 2,
		BobSpeed:  0.01,
		RotAmount: 0.12,
		RotSpeed:  0.008,
	}
	return NoSeasConfig{
		World: WorldConfig{
			Width:           1000,
			Height:          500,
			FloorOffset:     100,
			CeilingY:        40,
			BackgroundSpeed: 1,
			BackgroundGap:   2,
			SpriteFrames:    6,
			FrameHold:       5,
			RestartDelayMs:  1000,
		},
		Player: PlayerConfig{
			Width:   80,
			Height:  80,
			OffsetX: 40,
		},
		Physics: PhysicsConfig{
			Gravity:          0.8,
			JumpForce:        -18,
			SkyWalkGravity:   0.6,
			SkyWalkJumpForce: -9,
			MaxJumps:         2,
			BaseSpeed:        5.1,
		},
		Obstacles: ObstaclesConfig{
			MinDistance: 350,
			BarrelBelow: 0.30,
			CrateBelow:  0.50,
			AttackBelow: 0.70,
			Barrel:      jitter,
			Crate:       jitter,
			Chest:       ObstacleType{Width: 50, Height: 50, SpeedMult: 1},
			Attack: ObstacleType{
				Width:     60,
				Height:    76,
				SpeedMult: 1,
				BobAmount: 3,
				BobSpeed:  0.015,
			},
			TauntChance: 0.15,
			Taunts:      []string{"Boo!", "Gyat!", "Arrrr!", "I don't have a booty!"},
		},
		Perks: PerksConfig{
			PhaseMs:           6000,
			PhaseWarnMs:       2000,
			PhaseOpacity:      0.5,
			PhaseBlinkOpacity: 0.2,
			BlinkSlowMs:       250,
			BlinkFastMs:       60,
			SkyWalkMs:         10000,
			ShrinkMs:          6000,
			ShrinkScale:       0.5,
			SlowSpawnMs:       10000,
			SlowSpawnFactor:   2,
			TransitionMs:      500,
			BlessingMs:        2000,
			BannerMs:          1500,
			ChestFade:         0.05,
		},
		Difficulty: RampConfig{
			Enabled:    true,
			Initial:    1.0,
			Step:       0.1,
			IntervalMs: 2000,
		},
		Tutorial: TutorialConfig{
			ScrollSpeed: 1.215,
			LineHeight:  40,
			ReadyPad:    200,
			EndPad:      400,
			Text:        defaultTutorial,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultNoSeasYAML
}
