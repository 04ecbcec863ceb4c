package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/redistricting/internal/config"
	"github.com/vovakirdan/redistricting/internal/district"
)

var flagLevel int

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a generated level",
	Long: `Generate the map of a level and print it as text.

Legend:
  F  - voter for your party
  u  - voter for the opposition
  .  - empty land

The same --seed, --level, --difficulty and --config always produce the
same map.

Examples:
  redistricting generate
  redistricting generate --level 8 --seed 42
  redistricting generate --difficulty hard --log-level debug`,
	Run: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&flagLevel, "level", 1, "Level number to generate (1 = first level)")
}

func runGenerate(_ *cobra.Command, _ []string) {
	if flagLevel < 1 {
		fail("--level must be at least 1, got %d", flagLevel)
	}

	tuning, preset, err := loadTuning()
	if err != nil {
		fail("%v", err)
	}
	config.ApplyPreset(&tuning, preset)

	logger, err := newLogger(os.Stderr, "generate")
	if err != nil {
		fail("%v", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	levels := tuning.Curve().Levels(tuning.FirstLevel(), flagLevel)
	level := levels[flagLevel-1]

	gen, err := district.NewGenerator(tuning.GenParams(), district.NewRand(seed)).Generate(level)
	if err != nil {
		logger.Error("generation failed", "level", flagLevel, "config", level.String(), "error", err)
		os.Exit(1)
	}
	logger.Debug("level generated",
		"level", flagLevel,
		"seed", seed,
		"population", gen.Map.Populated(),
		"min_favorable", gen.MinFavorable,
		"flips", gen.Flips,
	)

	fmt.Printf("Level %d (%s, seed %d)\n", flagLevel, preset, seed)
	fmt.Print(district.RenderSummary(gen))
	fmt.Println()
	fmt.Print(district.RenderASCII(gen.Map))
}
