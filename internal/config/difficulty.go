package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/redistricting/internal/district"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	preset := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, p := range Presets() {
		if p == preset {
			return preset, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RedistrictingConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Progression.Enabled = false
		return
	}
	cfg.Progression.Enabled = true

	// Adjust the curve based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Start.GoodPct = 0.55
		cfg.Progression.GoodDecay = 0.95
		cfg.Progression.MinGoodPct = 0.4
	case DifficultyHard:
		cfg.Start.GoodPct = 0.45
		cfg.Start.MapSize = min(10, cfg.Progression.MaxMapSize)
		cfg.Start.Districts = min(5, cfg.Progression.MaxDistricts)
		cfg.Progression.GoodDecay = 0.85
	}
}

// Validate rejects tuning that cannot produce a playable campaign.
func (c RedistrictingConfig) Validate() error {
	if err := c.FirstLevel().Validate(); err != nil {
		return fmt.Errorf("config: start: %w", err)
	}

	p := c.Progression
	switch {
	case p.MaxMapSize < c.Start.MapSize:
		return fmt.Errorf("config: progression: max_map_size %d below start map_size %d", p.MaxMapSize, c.Start.MapSize)
	case p.MinDistricts < district.MinDistricts:
		return fmt.Errorf("config: progression: min_districts must be at least %d", district.MinDistricts)
	case p.MaxDistricts < c.Start.Districts:
		return fmt.Errorf("config: progression: max_districts %d below start districts %d", p.MaxDistricts, c.Start.Districts)
	case p.MaxDistricts < p.MinDistricts:
		return fmt.Errorf("config: progression: max_districts %d below min_districts %d", p.MaxDistricts, p.MinDistricts)
	case p.TilesPerDistrict <= 0:
		return fmt.Errorf("config: progression: tiles_per_district must be positive")
	case p.PopulatedGrowth < 1:
		return fmt.Errorf("config: progression: populated_growth must be at least 1")
	case p.MaxPopulatedPct <= 0 || p.MaxPopulatedPct > 1:
		return fmt.Errorf("config: progression: max_populated_pct must be in (0, 1]")
	case p.GoodDecay <= 0 || p.GoodDecay > 1:
		return fmt.Errorf("config: progression: good_decay must be in (0, 1]")
	case p.MinGoodPct <= 0 || p.MinGoodPct >= 1:
		return fmt.Errorf("config: progression: min_good_pct must be in (0, 1)")
	}

	g := c.Generator
	if g.GoodTolerance < 1 {
		return fmt.Errorf("config: generator: good_tolerance must be at least 1")
	}
	if g.MaxCorrectionSteps <= 0 {
		return fmt.Errorf("config: generator: max_correction_steps must be positive")
	}
	return nil
}

// FirstLevel returns the start level with district sizes estimated from
// its expected population.
func (c RedistrictingConfig) FirstLevel() district.LevelConfig {
	level := district.LevelConfig{
		Districts:    c.Start.Districts,
		GoodPct:      c.Start.GoodPct,
		PopulatedPct: c.Start.PopulatedPct,
		MapSize:      c.Start.MapSize,
	}
	level.MinDistrictSize, level.MaxDistrictSize = district.DistrictSizes(level.EstimatedPopulation(), level.Districts)
	return level
}

// Curve converts the progression section into the core's progression.
func (c RedistrictingConfig) Curve() district.Progression {
	p := c.Progression
	return district.Progression{
		MaxMapSize:       p.MaxMapSize,
		MinDistricts:     p.MinDistricts,
		MaxDistricts:     p.MaxDistricts,
		TilesPerDistrict: p.TilesPerDistrict,
		PopulatedGrowth:  p.PopulatedGrowth,
		MaxPopulatedPct:  p.MaxPopulatedPct,
		GoodDecay:        p.GoodDecay,
		MinGoodPct:       p.MinGoodPct,
		Fixed:            !p.Enabled,
	}
}

// GenParams converts the generator section into generator parameters.
func (c RedistrictingConfig) GenParams() district.GenParams {
	return district.GenParams{
		GoodTolerance:      c.Generator.GoodTolerance,
		MaxCorrectionSteps: c.Generator.MaxCorrectionSteps,
	}
}
