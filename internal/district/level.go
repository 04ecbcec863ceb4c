package district

import (
	"fmt"
	"math"
)

// sizeTolerance is how far a district's population may stray from the
// average district population.
const sizeTolerance = 0.05

// LevelConfig describes one round's difficulty.
type LevelConfig struct {
	Districts       int     // Number of districts to draw (odd preferred)
	GoodPct         float64 // Target favorable share of populated tiles (0,1)
	PopulatedPct    float64 // Probability a tile is populated (0,1]
	MapSize         int     // Grid width and height
	MinDistrictSize int     // Minimum district population (derived)
	MaxDistrictSize int     // Maximum district population (derived)
}

// FirstLevel returns the opening level of a campaign.
func FirstLevel() LevelConfig {
	level := LevelConfig{
		Districts:    3,
		GoodPct:      0.5,
		PopulatedPct: 0.7,
		MapSize:      8,
	}
	level.MinDistrictSize, level.MaxDistrictSize = DistrictSizes(level.EstimatedPopulation(), level.Districts)
	return level
}

// Validate checks that the configuration is in range.
func (l LevelConfig) Validate() error {
	switch {
	case l.Districts < MinDistricts:
		return fmt.Errorf("%w: %d districts, need at least %d", ErrConfiguration, l.Districts, MinDistricts)
	case l.GoodPct <= 0 || l.GoodPct >= 1:
		return fmt.Errorf("%w: good_pct %.3f not in (0,1)", ErrConfiguration, l.GoodPct)
	case l.PopulatedPct <= 0 || l.PopulatedPct > 1:
		return fmt.Errorf("%w: populated_pct %.3f not in (0,1]", ErrConfiguration, l.PopulatedPct)
	case l.MapSize <= 0:
		return fmt.Errorf("%w: map size %d", ErrConfiguration, l.MapSize)
	case l.MinDistrictSize > l.MaxDistrictSize:
		return fmt.Errorf("%w: min district size %d > max %d", ErrConfiguration, l.MinDistrictSize, l.MaxDistrictSize)
	}
	return nil
}

// Tiles returns the number of cells on the level's map.
func (l LevelConfig) Tiles() int {
	return l.MapSize * l.MapSize
}

// EstimatedPopulation returns the expected number of populated tiles
// before generation.
func (l LevelConfig) EstimatedPopulation() int {
	return int(math.Round(float64(l.Tiles()) * l.PopulatedPct))
}

// DistrictsToWin returns the strict majority of districts.
func (l LevelConfig) DistrictsToWin() int {
	return l.Districts/2 + 1
}

// String returns a one-line summary of the level.
func (l LevelConfig) String() string {
	return fmt.Sprintf("%dx%d map, %d districts (pop %d-%d), good %.0f%%, populated %.0f%%",
		l.MapSize, l.MapSize, l.Districts, l.MinDistrictSize, l.MaxDistrictSize,
		l.GoodPct*100, l.PopulatedPct*100)
}

// DistrictSizes derives the min and max district population for a map
// with the given number of populated tiles.
func DistrictSizes(population, districts int) (lo, hi int) {
	if districts <= 0 {
		return 0, 0
	}
	avg := float64(population) / float64(districts)
	lo = int(math.Round(avg * (1 - sizeTolerance)))
	hi = int(math.Round(avg * (1 + sizeTolerance)))
	return lo, hi
}

// MinFavorable returns the number of favorable tiles needed for a level
// to be winnable. Winning districts are assumed to be packed at minimum
// size and conceded districts at maximum size; any population beyond that
// still needs about half of it favorable.
func MinFavorable(population int, level LevelConfig) int {
	need := level.DistrictsToWin()
	perDistrict := level.MinDistrictSize/2 + 1
	target := level.MinDistrictSize*need + level.MaxDistrictSize*(level.Districts-need)
	extra := population - target
	if extra < 0 {
		extra = 0
	}
	return perDistrict*need + (extra+1)/2
}
