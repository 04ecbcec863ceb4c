// Package config provides YAML-based tuning for level generation and
// progression, plus difficulty presets.
package config

// RedistrictingConfig contains all tunable parameters of a campaign.
type RedistrictingConfig struct {
	Start       StartConfig       `yaml:"start"`
	Progression ProgressionConfig `yaml:"progression"`
	Generator   GeneratorConfig   `yaml:"generator"`
}

// StartConfig describes the first level of a campaign.
type StartConfig struct {
	Districts    int     `yaml:"districts"`
	GoodPct      float64 `yaml:"good_pct"`      // Target favorable share of the population
	PopulatedPct float64 `yaml:"populated_pct"` // Probability that a tile is populated
	MapSize      int     `yaml:"map_size"`
}

// ProgressionConfig defines how each level grows from the previous one.
type ProgressionConfig struct {
	Enabled          bool    `yaml:"enabled"` // false repeats the start level forever
	MaxMapSize       int     `yaml:"max_map_size"`
	MinDistricts     int     `yaml:"min_districts"`
	MaxDistricts     int     `yaml:"max_districts"`
	TilesPerDistrict float64 `yaml:"tiles_per_district"`
	PopulatedGrowth  float64 `yaml:"populated_growth"`
	MaxPopulatedPct  float64 `yaml:"max_populated_pct"`
	GoodDecay        float64 `yaml:"good_decay"`
	MinGoodPct       float64 `yaml:"min_good_pct"`
}

// GeneratorConfig tunes the map generator's correction pass.
type GeneratorConfig struct {
	GoodTolerance      float64 `yaml:"good_tolerance"` // Upper band as a multiple of good_pct
	MaxCorrectionSteps int     `yaml:"max_correction_steps"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted difficulty names in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
