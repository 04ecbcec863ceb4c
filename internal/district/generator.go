package district

import "fmt"

// GenParams configures the map generator behavior.
type GenParams struct {
	// GoodTolerance is the multiplier on GoodPct above which favorable
	// tiles are flipped back to unfavorable (e.g., 1.1).
	GoodTolerance float64

	// MaxCorrectionSteps caps the number of flips in the correction pass.
	// Exceeding it is reported as a configuration error.
	MaxCorrectionSteps int
}

// DefaultGenParams returns sensible defaults for map generation.
func DefaultGenParams() GenParams {
	return GenParams{
		GoodTolerance:      1.1,
		MaxCorrectionSteps: 10000,
	}
}

// Generation is the outcome of generating one level.
type Generation struct {
	Map          *Map
	Level        LevelConfig // Level with district sizes derived from Map
	MinFavorable int         // Favorable tiles required for winnability
	Flips        int         // Tiles flipped by the correction pass
}

// Generator creates maps for level configurations.
type Generator struct {
	params GenParams
	rng    Rand
}

// NewGenerator creates a map generator drawing from rng.
func NewGenerator(params GenParams, rng Rand) *Generator {
	if params.GoodTolerance < 1 {
		params.GoodTolerance = 1
	}
	if params.MaxCorrectionSteps <= 0 {
		params.MaxCorrectionSteps = DefaultGenParams().MaxCorrectionSteps
	}
	return &Generator{params: params, rng: rng}
}

// GenerateMap generates a map with default parameters. The returned level
// carries the derived district sizes.
func GenerateMap(level LevelConfig, rng Rand) (*Map, LevelConfig, error) {
	gen, err := NewGenerator(DefaultGenParams(), rng).Generate(level)
	if err != nil {
		return nil, level, err
	}
	return gen.Map, gen.Level, nil
}

// Generate builds a map for the level. The map is guaranteed to contain at
// least MinFavorable favorable tiles and, where the population allows, a
// favorable share within [GoodPct, GoodPct*GoodTolerance].
func (g *Generator) Generate(level LevelConfig) (Generation, error) {
	// District sizes are derived below; validate everything else.
	shape := level
	shape.MinDistrictSize, shape.MaxDistrictSize = 0, 0
	if err := shape.Validate(); err != nil {
		return Generation{}, err
	}

	m := g.sample(level)

	population := m.Populated()
	if population == 0 {
		return Generation{}, fmt.Errorf("%w: no populated tiles on %dx%d map", ErrConfiguration, level.MapSize, level.MapSize)
	}

	level.MinDistrictSize, level.MaxDistrictSize = DistrictSizes(population, level.Districts)
	if level.MinDistrictSize*level.Districts > population || population > level.MaxDistrictSize*level.Districts {
		return Generation{}, fmt.Errorf("%w: %d populated tiles cannot fill %d districts of %d-%d",
			ErrConfiguration, population, level.Districts, level.MinDistrictSize, level.MaxDistrictSize)
	}

	minFavorable := MinFavorable(population, level)
	if minFavorable > population {
		return Generation{}, fmt.Errorf("%w: need %d favorable tiles but only %d populated",
			ErrConfiguration, minFavorable, population)
	}

	flips, err := g.correct(m, level.GoodPct, minFavorable)
	if err != nil {
		return Generation{}, err
	}

	return Generation{
		Map:          m,
		Level:        level,
		MinFavorable: minFavorable,
		Flips:        flips,
	}, nil
}

// sample classifies every cell independently.
func (g *Generator) sample(level LevelConfig) *Map {
	m := NewMap(level.MapSize, level.Districts)
	for i := range m.tiles {
		if g.rng.Float64() >= level.PopulatedPct {
			continue
		}
		if g.rng.Float64() < level.GoodPct {
			m.setContent(i, ContentFavorable)
		} else {
			m.setContent(i, ContentUnfavorable)
		}
	}
	return m
}

// correct flips tiles until the favorable share sits in the target band
// and the winnability floor is met. Returns the number of flips.
func (g *Generator) correct(m *Map, goodPct float64, minFavorable int) (int, error) {
	favorable := make([]int, 0)
	unfavorable := make([]int, 0)
	for i, t := range m.tiles {
		switch t.Content {
		case ContentFavorable:
			favorable = append(favorable, i)
		case ContentUnfavorable:
			unfavorable = append(unfavorable, i)
		}
	}

	population := float64(m.Populated())
	upper := goodPct * g.params.GoodTolerance
	fraction := func() float64 {
		return float64(len(favorable)) / population
	}

	flips := 0
	for fraction() > upper {
		if flips >= g.params.MaxCorrectionSteps {
			return flips, fmt.Errorf("%w: correction exceeded %d steps", ErrConfiguration, g.params.MaxCorrectionSteps)
		}
		if len(favorable) == 0 {
			return flips, fmt.Errorf("%w: no favorable tile left to flip", ErrConfiguration)
		}
		favorable, unfavorable = g.flip(m, favorable, unfavorable, ContentUnfavorable)
		flips++
	}

	for fraction() < goodPct || len(favorable) < minFavorable {
		if flips >= g.params.MaxCorrectionSteps {
			return flips, fmt.Errorf("%w: correction exceeded %d steps", ErrConfiguration, g.params.MaxCorrectionSteps)
		}
		if len(unfavorable) == 0 {
			return flips, fmt.Errorf("%w: no unfavorable tile left to flip (favorable %d, need %d, share %.3f)",
				ErrConfiguration, len(favorable), minFavorable, goodPct)
		}
		unfavorable, favorable = g.flip(m, unfavorable, favorable, ContentFavorable)
		flips++
	}

	return flips, nil
}

// flip moves a uniformly random tile index from src to dst, setting its
// content. Returns the updated slices.
func (g *Generator) flip(m *Map, src, dst []int, to TileContent) ([]int, []int) {
	k := g.rng.Intn(len(src))
	idx := src[k]
	src[k] = src[len(src)-1]
	src = src[:len(src)-1]
	m.setContent(idx, to)
	return src, append(dst, idx)
}
