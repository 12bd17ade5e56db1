package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/noseas/internal/clock"
	"github.com/vovakirdan/noseas/internal/platform/tui"
	"github.com/vovakirdan/noseas/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the top scores",
	Long: `Display the best runs recorded in the scores database.

Examples:
  noseas scores
  noseas scores --limit 25
  noseas scores --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

var scoreboardCmd = &cobra.Command{
	Use:   "scoreboard",
	Short: "Browse scores interactively",
	Args:  cobra.NoArgs,
	Run:   runScoreboard,
}

var resetTutorialCmd = &cobra.Command{
	Use:   "reset-tutorial",
	Short: "Show the tutorial again on next start",
	Args:  cobra.NoArgs,
	Run:   runResetTutorial,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runScores(_ *cobra.Command, _ []string) {
	store := openStore()

	scores, err := store.TopScores(storage.GameID, flagScoresLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Println("High Scores - NO SEAS")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'noseas play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-10s  %s\n", "Rank", "Score", "Time Alive", "Date")
	fmt.Printf("  %-4s  %-8s  %-10s  %s\n", "----", "-----", "----------", "----")

	for i, entry := range scores {
		alive := clock.FormatSeconds(time.Duration(entry.AliveMs)*time.Millisecond) + "s"
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-10s  %s\n", i+1, entry.Score, alive, dateStr)
	}

	fmt.Println()
	if highScore, err := store.HighScore(storage.GameID); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}

func runScoreboard(_ *cobra.Command, _ []string) {
	store := openStore()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	err := tui.RunScoreboard(store, width, height)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
		os.Exit(1)
	}
}

func runResetTutorial(_ *cobra.Command, _ []string) {
	store := openStore()
	err := store.SetFlag(storage.FlagTutorialSeen, false)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting tutorial: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("The tutorial will play on next start.")
}
