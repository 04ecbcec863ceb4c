package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/redistricting/internal/core"
	"github.com/vovakirdan/redistricting/internal/platform/tui"
	"github.com/vovakirdan/redistricting/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a campaign in the terminal.

Without --difficulty a menu lets you pick one and view the scoreboard.

Controls:
  Arrows/hjkl/wasd  - Move the cursor
  Space             - Paint the tile with the current district
  X/Backspace       - Erase the tile
  1-9, Tab/]        - Pick a district (Shift+Tab/[ for previous)
  C                 - Clear the whole map
  Enter             - Confirm the plan
  N                 - Redraw a new map for this level
  G                 - Concede and end the run
  R                 - New run (after the run is over)
  ?                 - Toggle help
  Esc               - Back to menu
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - A friendlier electorate that turns against you slowly
  normal - The standard campaign
  hard   - Larger maps and more districts from the start
  fixed  - No progression, every level is the opening level

Examples:
  redistricting play
  redistricting play --difficulty easy
  redistricting play --seed 42 --log-level debug --log-file play.log
  redistricting play --config ./my-tuning.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (logs are discarded otherwise)")
}

func runPlay(_ *cobra.Command, _ []string) {
	tuning, preset, err := loadTuning()
	if err != nil {
		fail("%v", err)
	}

	// The alternate screen owns stdout, so logs only go to a file.
	var out io.Writer = io.Discard
	if flagLogFile != "" {
		f, fileErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if fileErr != nil {
			fail("cannot open log file: %v", fileErr)
		}
		defer f.Close()
		out = f
	}
	logger, err := newLogger(out, "redistricting")
	if err != nil {
		fail("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW = width
	cfg.ScreenH = height
	cfg.Seed = flagSeed
	cfg.Difficulty = string(preset)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(store, tuning, cfg, flagDifficulty != "", logger)

	if store != nil {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warn("could not close scores database", "error", closeErr)
		}
	}

	if runErr != nil {
		logger.Error("play failed", "error", runErr)
		fail("%v", runErr)
	}
}
