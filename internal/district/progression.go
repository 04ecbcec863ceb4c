package district

import "math"

// Progression bounds.
const (
	MaxMapSize      = 16
	MinDistricts    = 3
	MaxDistricts    = 11
	MaxPopulatedPct = 0.9
	MinGoodPct      = 0.35
)

// Progression derives each level from the previous one.
type Progression struct {
	MaxMapSize       int
	MinDistricts     int
	MaxDistricts     int
	TilesPerDistrict float64 // Populated tiles per district
	PopulatedGrowth  float64 // Multiplier on PopulatedPct per level
	MaxPopulatedPct  float64
	GoodDecay        float64 // Multiplier on GoodPct per level
	MinGoodPct       float64
	Fixed            bool // Repeat the previous level's shape
}

// DefaultProgression returns the standard campaign curve.
func DefaultProgression() Progression {
	return Progression{
		MaxMapSize:       MaxMapSize,
		MinDistricts:     MinDistricts,
		MaxDistricts:     MaxDistricts,
		TilesPerDistrict: 35,
		PopulatedGrowth:  1.05,
		MaxPopulatedPct:  MaxPopulatedPct,
		GoodDecay:        0.9,
		MinGoodPct:       MinGoodPct,
	}
}

// NextLevel derives the next level with the default curve.
func NextLevel(prev LevelConfig) LevelConfig {
	return DefaultProgression().Next(prev)
}

// Next derives the level after prev. Map size, population and district
// count never decrease and the favorable share never increases, except
// that map size and district count are pulled back under their caps when
// prev was already past them.
func (p Progression) Next(prev LevelConfig) LevelConfig {
	next := prev
	if !p.Fixed {
		next.MapSize = min(p.MaxMapSize, prev.MapSize+1)
		next.PopulatedPct = math.Min(p.MaxPopulatedPct, prev.PopulatedPct*p.PopulatedGrowth)
		next.GoodPct = math.Max(p.MinGoodPct, prev.GoodPct*p.GoodDecay)
		// Never shrink if prev was already outside the bounds
		next.MapSize = max(next.MapSize, prev.MapSize)
		next.PopulatedPct = math.Max(next.PopulatedPct, prev.PopulatedPct)
		next.GoodPct = math.Min(next.GoodPct, prev.GoodPct)
		next.Districts = max(prev.Districts, p.districtsFor(next))
		// Caps win over monotonicity
		next.MapSize = min(next.MapSize, p.MaxMapSize)
		next.Districts = min(next.Districts, p.MaxDistricts)
	}
	next.MinDistrictSize, next.MaxDistrictSize = DistrictSizes(next.EstimatedPopulation(), next.Districts)
	return next
}

// Levels returns the first n levels of a campaign starting at first.
func (p Progression) Levels(first LevelConfig, n int) []LevelConfig {
	levels := make([]LevelConfig, 0, n)
	level := first
	for i := 0; i < n; i++ {
		levels = append(levels, level)
		level = p.Next(level)
	}
	return levels
}

// districtsFor targets one district per TilesPerDistrict populated tiles,
// rounded to the nearest odd count within bounds.
func (p Progression) districtsFor(level LevelConfig) int {
	perDistrict := p.TilesPerDistrict
	if perDistrict <= 0 {
		perDistrict = DefaultProgression().TilesPerDistrict
	}
	target := float64(level.Tiles()) * level.PopulatedPct / perDistrict
	districts := nearestOdd(target)

	lo, hi := p.MinDistricts, p.MaxDistricts
	if lo%2 == 0 {
		lo++
	}
	if hi%2 == 0 {
		hi--
	}
	return max(lo, min(hi, districts))
}

// nearestOdd rounds x to the closest odd integer.
func nearestOdd(x float64) int {
	return 2*int(math.Round((x-1)/2)) + 1
}
