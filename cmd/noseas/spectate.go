package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/noseas/internal/core"
	"github.com/vovakirdan/noseas/internal/games/noseas"
	"github.com/vovakirdan/noseas/internal/spectate"
	"github.com/vovakirdan/noseas/internal/storage"
)

var flagSpectateAddr string

var spectateCmd = &cobra.Command{
	Use:   "spectate",
	Short: "Run an autopilot demo for web viewers",
	Long: `Run a headless game driven by an autopilot and stream every frame
to web viewers.

Endpoints:
  GET /healthz         - Server status
  GET /api/snapshot    - Latest frame as JSON
  GET /api/scores      - Top scores (?limit=N)
  GET /ws              - Frame stream (?format=json|msgpack)

Examples:
  noseas spectate
  noseas spectate --addr :9000 --seed 42`,
	Args: cobra.NoArgs,
	Run:  runSpectate,
}

func init() {
	spectateCmd.Flags().StringVar(&flagSpectateAddr, "addr", ":8080", "HTTP listen address")
}

func runSpectate(_ *cobra.Command, _ []string) {
	logger, closeLog := openLogger()
	defer closeLog()
	noseas.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var scores spectate.ScoreSource
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		defer store.Close()
		scores = store
	}

	game := noseas.New()
	// The demo never writes the profile, so the tutorial is skipped up front.
	game.Reset(core.RuntimeConfig{
		TickRate: flagFPS,
		Seed:     flagSeed,
		Profile:  core.Profile{TutorialSeen: true},
	})

	hub := spectate.NewHub()
	go func() {
		onEvent := func(ev core.Event) {
			if ev.Kind == core.EventGameOver {
				logger.Info("demo run ended", "score", ev.Score, "alive_ms", ev.AliveMs)
			}
		}
		if err := spectate.RunDemo(ctx, game, hub, flagFPS, onEvent); err != nil {
			logger.Error("demo stopped", "err", err)
		}
	}()

	fmt.Printf("Streaming NO SEAS demo on %s\n", flagSpectateAddr)
	fmt.Println("Press Ctrl+C to stop")

	srv := spectate.NewServer(hub, scores, logger)
	if err := srv.ListenAndServe(ctx, flagSpectateAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
