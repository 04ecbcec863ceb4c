package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/redistricting/internal/config"
)

var flagLevelCount int

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Print the difficulty progression",
	Long: `Print the level configurations a campaign walks through.

District sizes are estimates from the expected population; the real
bounds are derived from each generated map.

Examples:
  redistricting levels
  redistricting levels --count 40
  redistricting levels --difficulty easy`,
	Run: runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagLevelCount, "count", 20, "Number of levels to print")
}

func runLevels(_ *cobra.Command, _ []string) {
	tuning, preset, err := loadTuning()
	if err != nil {
		fail("%v", err)
	}
	config.ApplyPreset(&tuning, preset)

	fmt.Printf("Progression - %s\n", preset)
	fmt.Println()
	fmt.Printf("  %-5s  %-5s  %-9s  %-6s  %-10s  %s\n", "Level", "Map", "Districts", "Good", "Populated", "Sizes")
	fmt.Printf("  %-5s  %-5s  %-9s  %-6s  %-10s  %s\n", "-----", "---", "---------", "----", "---------", "-----")

	for i, level := range tuning.Curve().Levels(tuning.FirstLevel(), max(flagLevelCount, 0)) {
		fmt.Printf("  %-5d  %-5s  %-9d  %-6s  %-10s  %d-%d\n",
			i+1,
			fmt.Sprintf("%dx%d", level.MapSize, level.MapSize),
			level.Districts,
			fmt.Sprintf("%.0f%%", level.GoodPct*100),
			fmt.Sprintf("%.0f%%", level.PopulatedPct*100),
			level.MinDistrictSize, level.MaxDistrictSize,
		)
	}
}
