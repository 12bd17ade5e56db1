// Package assets describes the sprite sheets the game depends on and
// validates them at startup. Loading pixels is left to renderers; the game
// only needs frame geometry.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var defaultManifest []byte

// ErrInvalidSheet is returned for a missing or malformed sprite sheet.
var ErrInvalidSheet = errors.New("invalid sprite sheet")

// Sheet names required by the game.
const (
	SheetRun        = "run"
	SheetJump       = "jump"
	SheetBackground = "background"
	SheetBarrel     = "barrel"
	SheetCrate      = "crate"
	SheetChest      = "chest"
	SheetAttack     = "attack"
)

// Required lists every sheet a manifest must declare.
var Required = []string{
	SheetRun, SheetJump, SheetBackground,
	SheetBarrel, SheetCrate, SheetChest, SheetAttack,
}

// Sheet is one horizontal strip of equal-width frames.
type Sheet struct {
	Path   string `yaml:"path"`
	Frames int    `yaml:"frames"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// FrameWidth returns the width of a single frame.
func (s Sheet) FrameWidth() int {
	if s.Frames <= 0 {
		return 0
	}
	return s.Width / s.Frames
}

// SourceX returns the x offset of frame i within the sheet.
func (s Sheet) SourceX(i int) int {
	if s.Frames <= 0 {
		return 0
	}
	return (i % s.Frames) * s.FrameWidth()
}

// Manifest maps sheet names to their geometry.
type Manifest struct {
	Sheets map[string]Sheet `yaml:"sheets"`
}

// Sheet returns the named sheet.
func (m Manifest) Sheet(name string) (Sheet, bool) {
	s, ok := m.Sheets[name]
	return s, ok
}

// Default returns the embedded manifest.
func Default() Manifest {
	m, err := Parse(defaultManifest, "")
	if err != nil {
		panic(fmt.Sprintf("assets: embedded manifest: %v", err))
	}
	return m
}

// Load reads a manifest file. An empty path selects the embedded default.
// Sheet paths are resolved relative to the manifest's directory, and every
// sheet is validated before Load returns.
func Load(path string) (Manifest, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("assets: read manifest: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes and validates manifest YAML.
func Parse(data []byte, baseDir string) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("assets: parse manifest: %w", err)
	}
	for name, s := range m.Sheets {
		if s.Path != "" && baseDir != "" && !filepath.IsAbs(s.Path) {
			s.Path = filepath.Join(baseDir, s.Path)
			m.Sheets[name] = s
		}
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks every required sheet. Sheets with an image path have
// their declared size filled in or checked against the decoded image header.
func (m *Manifest) Validate() error {
	for _, name := range Required {
		s, ok := m.Sheets[name]
		if !ok {
			return fmt.Errorf("assets: %s: %w: not declared", name, ErrInvalidSheet)
		}
		if s.Path != "" {
			w, h, err := imageSize(s.Path)
			if err != nil {
				return fmt.Errorf("assets: %s: %w: %v", name, ErrInvalidSheet, err)
			}
			if s.Width == 0 && s.Height == 0 {
				s.Width, s.Height = w, h
			} else if s.Width != w || s.Height != h {
				return fmt.Errorf("assets: %s: %w: declared %dx%d, image is %dx%d",
					name, ErrInvalidSheet, s.Width, s.Height, w, h)
			}
			m.Sheets[name] = s
		}
		if err := s.check(); err != nil {
			return fmt.Errorf("assets: %s: %w: %v", name, ErrInvalidSheet, err)
		}
	}
	return nil
}

func (s Sheet) check() error {
	switch {
	case s.Frames <= 0:
		return fmt.Errorf("frames must be positive, got %d", s.Frames)
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("size must be positive, got %dx%d", s.Width, s.Height)
	case s.Width%s.Frames != 0:
		return fmt.Errorf("width %d is not divisible into %d frames", s.Width, s.Frames)
	}
	return nil
}

func imageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
