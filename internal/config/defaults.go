package config

import (
	_ "embed"

	"github.com/vovakirdan/redistricting/internal/district"
)

//go:embed defaults/redistricting.yaml
var defaultRedistrictingYAML []byte

// DefaultRedistrictingConfig returns the built-in campaign tuning.
func DefaultRedistrictingConfig() RedistrictingConfig {
	first := district.FirstLevel()
	progression := district.DefaultProgression()
	gen := district.DefaultGenParams()

	return RedistrictingConfig{
		Start: StartConfig{
			Districts:    first.Districts,
			GoodPct:      first.GoodPct,
			PopulatedPct: first.PopulatedPct,
			MapSize:      first.MapSize,
		},
		Progression: ProgressionConfig{
			Enabled:          true,
			MaxMapSize:       progression.MaxMapSize,
			MinDistricts:     progression.MinDistricts,
			MaxDistricts:     progression.MaxDistricts,
			TilesPerDistrict: progression.TilesPerDistrict,
			PopulatedGrowth:  progression.PopulatedGrowth,
			MaxPopulatedPct:  progression.MaxPopulatedPct,
			GoodDecay:        progression.GoodDecay,
			MinGoodPct:       progression.MinGoodPct,
		},
		Generator: GeneratorConfig{
			GoodTolerance:      gen.GoodTolerance,
			MaxCorrectionSteps: gen.MaxCorrectionSteps,
		},
	}
}
