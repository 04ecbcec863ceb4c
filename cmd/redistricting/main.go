// redistricting is a terminal puzzle game about drawing district lines.
// Each level is a grid of voters; carve it into contiguous districts of
// similar population so your party wins the majority of them.
//
// Usage:
//
//	redistricting play        - Play in the terminal
//	redistricting generate    - Print a generated level
//	redistricting levels      - Print the difficulty progression
//	redistricting scores      - Show the longest runs
//	redistricting serve       - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible campaigns
//	--db <path>           - Set database path (default: ~/.redistricting/scores.db)
//	--config <path>       - Path to a tuning YAML file
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/redistricting/internal/config"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "redistricting",
	Short: "Redistricting - draw the lines, win the majority",
	Long: `Redistricting is a terminal puzzle game. Every level is a map of
voters for your party (blue) and the opposition (red). Split the whole map
into contiguous districts of similar population so that your party wins
more than half of them. Each plan you get through keeps you in office for
another year, and the next map is harder.

Available commands:
  play      - Play in the terminal
  generate  - Print a generated level as text
  levels    - Show how difficulty grows level by level
  scores    - View the longest runs
  serve     - Start SSH server for remote play

Examples:
  redistricting play
  redistricting play --difficulty hard
  redistricting generate --level 5 --seed 42
  redistricting serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.redistricting/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the command logger writing to w at --log-level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadTuning reads the tuning config and the difficulty preset from flags.
// The preset is returned unapplied.
func loadTuning() (config.RedistrictingConfig, config.DifficultyPreset, error) {
	tuning, err := config.Load(flagConfig)
	if err != nil {
		return config.RedistrictingConfig{}, "", err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.RedistrictingConfig{}, "", err
	}
	return tuning, preset, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
