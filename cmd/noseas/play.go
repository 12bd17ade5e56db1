package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/noseas/internal/core"
	"github.com/vovakirdan/noseas/internal/games/noseas"
	"github.com/vovakirdan/noseas/internal/platform/tui"
	"github.com/vovakirdan/noseas/internal/spectate"
	"github.com/vovakirdan/noseas/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagAssets     string
	flagSpectate   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a voyage",
	Long: `Start playing NO SEAS.

Controls:
  Space/Up/W  - Jump (start from the menu)
  Enter       - Start / continue
  S/Tab       - Skip the tutorial
  J           - Replay the tutorial from the menu
  P           - Pause
  ?           - Toggle help
  Ctrl+S      - Save a text screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Slower start, gentler ramp
  normal - Default values
  hard   - Faster start, steeper ramp
  fixed  - No speed ramp

Examples:
  noseas play
  noseas play --difficulty easy
  noseas play --config ./my-noseas.yaml
  noseas play --spectate :8080`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML or TOML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagAssets, "assets", "", "Path to a sprite manifest to validate (default: embedded)")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Also serve the run to web viewers on this address")
}

func runPlay(_ *cobra.Command, _ []string) {
	exitCode := 0
	defer func() {
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}()

	logger, closeLog := openLogger()
	defer closeLog()

	noseas.SetLogger(logger)
	noseas.SetConfigPath(flagConfig)
	noseas.SetDifficultyPreset(flagDifficulty)
	noseas.SetAssetsPath(flagAssets)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts := tui.Options{Logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
		profile, profErr := store.LoadProfile()
		if profErr != nil {
			logger.Warn("could not load profile", "err", profErr)
		}
		cfg.Profile = profile
		opts.Recorder = store
	}

	if flagSpectate != "" {
		hub := spectate.NewHub()
		opts.Publisher = hub

		var scores spectate.ScoreSource
		if store != nil {
			scores = store
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go serveSpectators(ctx, spectate.NewServer(hub, scores, logger), flagSpectate, logger)
	}

	if err := tui.Run(noseas.New(), cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		exitCode = 1
	}
}

// serveSpectators runs the web viewer endpoint until ctx ends. Failures are
// logged so they never interrupt the game.
func serveSpectators(ctx context.Context, srv *spectate.Server, addr string, logger *log.Logger) {
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		logger.Error("spectator server stopped", "addr", addr, "err", err)
	}
}
