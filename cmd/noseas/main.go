// noseas is a pirate endless runner for the terminal.
//
// Usage:
//
//	noseas play             - Start a voyage
//	noseas scores           - Print the top scores
//	noseas scoreboard       - Browse scores interactively
//	noseas serve            - Start SSH server for remote play
//	noseas spectate         - Run an autopilot demo for web viewers
//	noseas reset-tutorial   - Show the tutorial again on next start
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.noseas/scores.db)
//	--log <path>    - Set log file (default: ~/.noseas/noseas.log)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogPath  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "noseas",
	Short: "NO SEAS - a pirate endless runner in your terminal",
	Long: `NO SEAS is an endless runner. Jump the barrels, crates and ghost
attacks, grab treasure chests for perks and see how long you survive.

Available commands:
  play            - Start a voyage
  scores          - Print the top scores
  scoreboard      - Browse scores interactively
  serve           - Start SSH server for remote play
  spectate        - Run an autopilot demo for web viewers
  reset-tutorial  - Show the tutorial again on next start

Examples:
  noseas play
  noseas play --difficulty hard
  noseas play --spectate :8080
  noseas serve --ssh :2222
  noseas scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.noseas/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.noseas/noseas.log", "Path to log file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(scoreboardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(spectateCmd)
	rootCmd.AddCommand(resetTutorialCmd)
}

// openLogger creates the file logger shared by the game and the platform.
// The full-screen UI owns stdout, so logs never go to the terminal while
// playing. The returned func closes the file.
func openLogger() (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}

	path, err := expandHome(flagLogPath)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o755)
	}
	var f *os.File
	if err == nil {
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "noseas"}), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "noseas",
	})
	return logger, func() { f.Close() }
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
