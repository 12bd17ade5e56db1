package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadNoSeas loads the runner configuration.
// Search order: customPath -> ~/.noseas/configs/noseas.{yaml,toml} ->
// ./configs/noseas.yaml -> embedded default.
//
// Files are decoded on top of the embedded default, so a file only needs the
// keys it overrides.
func LoadNoSeas(customPath string) (NoSeasConfig, error) {
	base := embeddedDefault()

	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath, base)
		if err != nil {
			return base, err
		}
		return cfg, nil
	}

	// Try user config directory
	for _, name := range []string{"noseas.yaml", "noseas.toml"} {
		if p := userConfigPath(name); p != "" {
			if cfg, err := loadFile(p, base); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", "noseas.yaml"), base); err == nil {
		return cfg, nil
	}

	return base, nil
}

func embeddedDefault() NoSeasConfig {
	cfg := DefaultNoSeasConfig()
	if err := yaml.Unmarshal(defaultNoSeasYAML, &cfg); err != nil {
		return DefaultNoSeasConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// loadFile decodes path over base, choosing the format by extension.
func loadFile(path string, base NoSeasConfig) (NoSeasConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := base
	// Slices are replaced wholesale, not merged.
	cfg.Obstacles.Taunts = nil
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return base, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Obstacles.Taunts == nil {
		cfg.Obstacles.Taunts = base.Obstacles.Taunts
	}
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// ErrInvalid is returned when a loaded configuration cannot drive the game.
var ErrInvalid = errors.New("invalid configuration")

// Validate checks the values the simulation divides by or depends on.
func (c NoSeasConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrInvalid)
	case c.World.CeilingY >= c.World.FloorY():
		return fmt.Errorf("%w: ceiling_y must be above the floor", ErrInvalid)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalid)
	case c.World.SpriteFrames <= 0 || c.World.FrameHold <= 0:
		return fmt.Errorf("%w: sprite_frames and frame_hold must be positive", ErrInvalid)
	case c.Physics.MaxJumps < 1:
		return fmt.Errorf("%w: max_jumps must be at least 1", ErrInvalid)
	case c.Obstacles.MinDistance <= 0:
		return fmt.Errorf("%w: min_distance must be positive", ErrInvalid)
	case !(c.Obstacles.BarrelBelow <= c.Obstacles.CrateBelow && c.Obstacles.CrateBelow <= c.Obstacles.AttackBelow):
		return fmt.Errorf("%w: obstacle thresholds must be non-decreasing", ErrInvalid)
	case c.Perks.TransitionMs*2 > c.Perks.SkyWalkMs || c.Perks.TransitionMs*2 > c.Perks.ShrinkMs:
		return fmt.Errorf("%w: transitions do not fit inside perk durations", ErrInvalid)
	case c.Difficulty.Enabled && c.Difficulty.IntervalMs <= 0:
		return fmt.Errorf("%w: difficulty interval_ms must be positive", ErrInvalid)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".noseas", "configs", filename)
}

// ApplyNoSeasPreset modifies the config based on a difficulty preset.
func ApplyNoSeasPreset(cfg *NoSeasConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	case DifficultyEasy:
		cfg.Difficulty.Initial = 0.8
		cfg.Difficulty.Step = 0.05
	case DifficultyHard:
		cfg.Difficulty.Initial = 1.3
		cfg.Difficulty.Step = 0.15
	default:
		cfg.Difficulty.Initial = 1.0
		cfg.Difficulty.Step = 0.1
	}
	cfg.Difficulty.Enabled = true
}
