// Package noseas implements NO SEAS, a pirate endless runner. The pirate
// jumps barrels, crates and ghost attacks while chests grant timed perks.
//
// All game logic lives in Session and is driven by an injected clock, so a
// run is fully deterministic for a given seed and time source.
package noseas

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/noseas/internal/assets"
	"github.com/vovakirdan/noseas/internal/clock"
	"github.com/vovakirdan/noseas/internal/config"
	"github.com/vovakirdan/noseas/internal/core"
)

// ID is the game identifier used for score storage.
const ID = "noseas"

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	assetsPath       string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config file's values.
func SetDifficultyPreset(preset string) {
	if p, ok := config.ParsePreset(preset); ok && preset != "" {
		difficultyPreset = p
		return
	}
	difficultyPreset = ""
}

// SetAssetsPath sets the sprite manifest to validate on Reset.
func SetAssetsPath(path string) {
	assetsPath = path
}

// SetLogger routes game logs. The default discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game adapts a Session to the platform's tick/render contract.
type Game struct {
	runtime  core.RuntimeConfig
	clock    *clock.Pausable
	session  *Session
	manifest assets.Manifest
	pinned   *config.NoSeasConfig
	paused   bool
}

// New creates a game driven by the wall clock.
func New() *Game {
	return NewWithClock(clock.Real{})
}

// NewWithClock creates a game driven by c.
func NewWithClock(c clock.Clock) *Game {
	return &Game{clock: clock.NewPausable(c)}
}

// SetConfig pins the configuration, bypassing file loading on Reset.
func (g *Game) SetConfig(cfg config.NoSeasConfig) {
	g.pinned = &cfg
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "NO SEAS"
}

// Reset builds a new session at the menu.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.clock.Resume()

	cfg := g.loadConfig()

	manifest, err := assets.Load(assetsPath)
	if err != nil {
		logger.Error("sprite assets rejected", "path", assetsPath, "err", err)
	}
	g.manifest = manifest
	// The run strip decides how many frames the animation cycles through.
	if run, ok := manifest.Sheet(assets.SheetRun); ok && run.Frames > 0 {
		cfg.World.SpriteFrames = run.Frames
	}

	rng := rand.New(rand.NewSource(runtime.Seed))
	g.session = NewSession(cfg, rng, runtime.Profile, logger)
	g.session.AssetErr = err
}

func (g *Game) loadConfig() config.NoSeasConfig {
	if g.pinned != nil {
		return *g.pinned
	}
	cfg, err := config.LoadNoSeas(configPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", configPath, "err", err)
	}
	if difficultyPreset != "" {
		config.ApplyNoSeasPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// Session exposes the underlying state.
func (g *Game) Session() *Session {
	return g.session
}

// Now returns game time; it stands still while paused.
func (g *Game) Now() time.Time {
	return g.clock.Now()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && g.session.Mode == ModePlaying {
		g.togglePause()
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	events := g.session.Step(g.clock.Now(), in)
	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.clock.Pause()
	} else {
		g.clock.Resume()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.session.Score,
		HighScore: g.session.HighScore,
		GameOver:  g.session.Mode == ModeGameOver,
		Paused:    g.paused,
	}
}

// Snapshot captures the current frame for renderers and spectators.
func (g *Game) Snapshot() Snapshot {
	sheet := assets.SheetRun
	if g.session.Player.Animation == AnimJump {
		sheet = assets.SheetJump
	}
	s, _ := g.manifest.Sheet(sheet)
	return g.session.Snapshot(g.clock.Now(), s)
}
