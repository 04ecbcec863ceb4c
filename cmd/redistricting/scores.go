package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/redistricting/internal/platform/tui"
	"github.com/vovakirdan/redistricting/internal/storage"
)

var (
	flagScoresLimit       int
	flagScoresInteractive bool
	flagScoresClear       bool
	flagScoresRun         string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the longest runs",
	Long: `Display the runs that stayed in office the longest.

Examples:
  redistricting scores
  redistricting scores --limit 25
  redistricting scores --interactive
  redistricting scores --run <id>       # One run and its levels
  redistricting scores --clear`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse runs and their levels in the terminal UI")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show one run and the levels it played")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			fail("clearing runs: %v", err)
		}
		fmt.Println("All runs deleted.")
		return
	}

	if flagScoresRun != "" {
		if err := printRun(os.Stdout, store, flagScoresRun); err != nil {
			fail("%v", err)
		}
		return
	}

	if flagScoresInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	runs, err := store.TopRuns(flagScoresLimit)
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	fmt.Println("Longest Terms in Office")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'redistricting play' to get on the board!")
		return
	}

	fmt.Printf("  %-4s  %-5s  %-6s  %-10s  %-12s  %s\n", "Rank", "Years", "Levels", "Difficulty", "Player", "Date")
	fmt.Printf("  %-4s  %-5s  %-6s  %-10s  %-12s  %s\n", "----", "-----", "------", "----------", "------", "----")

	for i, run := range runs {
		player := run.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-4d  %-5d  %-6d  %-10s  %-12s  %s\n",
			i+1, run.Score, run.LevelsCleared, run.Difficulty, player,
			run.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, statsErr := store.GetStats(); statsErr == nil && stats.RunsCount > 0 {
		fmt.Println()
		fmt.Printf("%d runs, best %d years, average %.1f years\n", stats.RunsCount, stats.HighScore, stats.AvgScore)
	}
}

// printRun writes one run and its level history.
func printRun(w io.Writer, store *storage.Store, id string) error {
	run, err := store.RunByID(id)
	if err != nil {
		return fmt.Errorf("retrieving run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("no run with id %q", id)
	}
	levels, err := store.LevelHistory(id)
	if err != nil {
		return fmt.Errorf("retrieving levels: %w", err)
	}

	player := run.Player
	if player == "" {
		player = "local"
	}
	end := run.EndReason
	if end == "" {
		end = "in progress"
	}
	fmt.Fprintf(w, "Run %s\n", run.ID)
	fmt.Fprintf(w, "  Player:     %s\n", player)
	fmt.Fprintf(w, "  Difficulty: %s\n", run.Difficulty)
	fmt.Fprintf(w, "  Seed:       %d\n", run.Seed)
	fmt.Fprintf(w, "  Years:      %d (%d levels cleared)\n", run.Score, run.LevelsCleared)
	fmt.Fprintf(w, "  Ended:      %s\n", end)
	fmt.Fprintln(w)

	if len(levels) == 0 {
		fmt.Fprintln(w, "No levels recorded.")
		return nil
	}
	for _, l := range levels {
		outcome := "lost"
		if l.Solved {
			outcome = "won"
		}
		fmt.Fprintf(w, "  %2d. %-4s %s\n", l.Number, outcome, l.Level)
	}
	return nil
}
