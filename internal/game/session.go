// Package game hosts one redistricting campaign: the current level and
// map, the player's score, and the transitions between levels.
package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/redistricting/internal/config"
	"github.com/vovakirdan/redistricting/internal/district"
)

// maxGenerateAttempts bounds how many fresh samples a level gets before
// its configuration is reported as unplayable.
const maxGenerateAttempts = 8

var (
	// ErrGameOver is returned by actions after the run has ended.
	ErrGameOver = errors.New("game: run is over")
	// ErrNotSolved is returned by Confirm when the map is not a winning plan.
	ErrNotSolved = errors.New("game: level is not solved")
)

// State is the lifecycle state of a session.
type State string

const (
	StatePlaying  State = "playing"
	StateSolved   State = "solved"
	StateGameOver State = "game_over"
)

// Options configures a new session.
type Options struct {
	First       district.LevelConfig
	Progression district.Progression
	GenParams   district.GenParams
	Seed        int64 // 0 picks a time-based seed
	Logger      *log.Logger
}

// DefaultOptions returns options for the standard campaign.
func DefaultOptions() Options {
	return Options{
		First:       district.FirstLevel(),
		Progression: district.DefaultProgression(),
		GenParams:   district.DefaultGenParams(),
	}
}

// OptionsFromConfig builds session options from campaign tuning.
func OptionsFromConfig(cfg config.RedistrictingConfig) Options {
	return Options{
		First:       cfg.FirstLevel(),
		Progression: cfg.Curve(),
		GenParams:   cfg.GenParams(),
	}
}

// Session is one campaign attempt. It is not safe for concurrent use;
// each front end owns its own session.
type Session struct {
	opts   Options
	seed   int64
	rng    *rand.Rand
	gen    *district.Generator
	logger *log.Logger

	number       int                  // Current level, 1-based
	template     district.LevelConfig // Level before generation fixed its sizes
	level        district.LevelConfig // Level as generated
	m            *district.Map
	minFavorable int
	score        int // Years survived
	over         bool
}

// New starts a campaign at opts.First.
func New(opts Options) (*Session, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.First == (district.LevelConfig{}) {
		opts.First = district.FirstLevel()
	}
	if opts.Progression == (district.Progression{}) {
		opts.Progression = district.DefaultProgression()
	}

	rng := rand.New(rand.NewSource(seed))
	s := &Session{
		opts:   opts,
		seed:   seed,
		rng:    rng,
		gen:    district.NewGenerator(opts.GenParams, rng),
		logger: logger,
		number: 1,
	}

	if err := s.load(opts.First); err != nil {
		return nil, err
	}
	return s, nil
}

// load generates a map for template and makes it the current level.
// The session is unchanged on error.
func (s *Session) load(template district.LevelConfig) error {
	var lastErr error
	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		gen, err := s.gen.Generate(template)
		if err != nil {
			lastErr = err
			s.logger.Debug("level generation failed", "level", s.number, "attempt", attempt, "error", err)
			continue
		}

		s.template = template
		s.level = gen.Level
		s.m = gen.Map
		s.minFavorable = gen.MinFavorable
		s.logger.Debug("level generated",
			"level", s.number,
			"size", gen.Level.MapSize,
			"districts", gen.Level.Districts,
			"population", gen.Map.Populated(),
			"favorable", gen.Map.CountContent(district.ContentFavorable),
			"min_favorable", gen.MinFavorable,
			"flips", gen.Flips,
		)
		return nil
	}
	return fmt.Errorf("game: cannot generate level %d (%s): %w", s.number, template, lastErr)
}

// Seed returns the seed the session's randomness started from.
func (s *Session) Seed() int64 { return s.seed }

// Number returns the current level number, starting at 1.
func (s *Session) Number() int { return s.number }

// Score returns the years survived.
func (s *Session) Score() int { return s.score }

// Level returns the current level's configuration.
func (s *Session) Level() district.LevelConfig { return s.level }

// MinFavorable returns the favorable count the current map was built to reach.
func (s *Session) MinFavorable() int { return s.minFavorable }

// Map returns the current map. Callers must mutate it only through the
// session.
func (s *Session) Map() *district.Map { return s.m }

// Over reports whether the run has ended.
func (s *Session) Over() bool { return s.over }

// Assign puts the tile at c into district id.
func (s *Session) Assign(c district.Coord, id district.DistrictID) error {
	if s.over {
		return ErrGameOver
	}
	return s.m.SetDistrict(c, id)
}

// Unassign removes the tile at c from its district.
func (s *Session) Unassign(c district.Coord) error {
	if s.over {
		return ErrGameOver
	}
	return s.m.ClearDistrict(c)
}

// ClearAll removes every tile from its district.
func (s *Session) ClearAll() error {
	if s.over {
		return ErrGameOver
	}
	s.m.ClearAll()
	return nil
}

// Results evaluates every district of the current map.
func (s *Session) Results() []district.DistrictResult {
	return district.Evaluate(s.m, s.level)
}

// Summary tallies the current results.
func (s *Session) Summary() district.Summary {
	return district.Summarize(s.m, s.Results())
}

// Solved reports whether the current map is a winning plan.
func (s *Session) Solved() bool {
	return district.IsSolved(s.m, s.level)
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	switch {
	case s.over:
		return StateGameOver
	case s.Solved():
		return StateSolved
	default:
		return StatePlaying
	}
}

// Confirm submits a solved map. The score grows by one year and the next
// level of the progression is generated; when that level cannot be
// generated the cleared level's shape is played again. It returns the
// level that was cleared. On error the solved map stays in place.
func (s *Session) Confirm() (district.LevelConfig, error) {
	if s.over {
		return district.LevelConfig{}, ErrGameOver
	}
	if !s.Solved() {
		return district.LevelConfig{}, ErrNotSolved
	}

	cleared := s.level
	next := s.opts.Progression.Next(s.template)

	s.number++
	if err := s.load(next); err != nil {
		// Stay on the cleared shape rather than strand a solved plan
		s.logger.Warn("next level cannot be generated, repeating the last one",
			"level", s.number, "next", next.String(), "error", err)
		if err := s.load(s.template); err != nil {
			s.number--
			s.logger.Warn("level cannot be regenerated", "level", s.number, "error", err)
			return district.LevelConfig{}, err
		}
	}
	s.score++

	s.logger.Info("level cleared", "level", s.number-1, "score", s.score, "next", s.template.String())
	return cleared, nil
}

// Concede ends the run and returns the final score.
func (s *Session) Concede() int {
	if !s.over {
		s.over = true
		s.logger.Info("run conceded", "level", s.number, "score", s.score)
	}
	return s.score
}

// Reroll replaces the current map with a fresh one for the same level.
func (s *Session) Reroll() error {
	if s.over {
		return ErrGameOver
	}
	if err := s.load(s.template); err != nil {
		return err
	}
	s.logger.Debug("level rerolled", "level", s.number)
	return nil
}

// Snapshot captures the session's observable state.
type Snapshot struct {
	Number       int
	Score        int
	Seed         int64
	Level        district.LevelConfig
	MinFavorable int
	State        State
	Summary      district.Summary
	Board        string // Contents, see district.RenderASCII
	Districts    string // Assignment, see district.RenderDistricts
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Number:       s.number,
		Score:        s.score,
		Seed:         s.seed,
		Level:        s.level,
		MinFavorable: s.minFavorable,
		State:        s.State(),
		Summary:      s.Summary(),
		Board:        district.RenderASCII(s.m),
		Districts:    district.RenderDistricts(s.m),
	}
}
