package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/redistricting/internal/district"
	"github.com/vovakirdan/redistricting/internal/storage"
)

// Recorder persists the runs of one player. A nil store turns every call
// into a no-op. Storage failures are logged and never interrupt play.
type Recorder struct {
	store      *storage.Store
	logger     *log.Logger
	player     string
	difficulty string
	runID      string
	finished   bool
}

// NewRecorder creates a recorder for player at the given difficulty.
func NewRecorder(store *storage.Store, player, difficulty string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{
		store:      store,
		logger:     logger,
		player:     player,
		difficulty: difficulty,
	}
}

// RunID returns the current run's ID, empty without storage.
func (r *Recorder) RunID() string {
	return r.runID
}

// Start records a new run for s.
func (r *Recorder) Start(s *Session) {
	r.runID = ""
	r.finished = false
	if r.store == nil {
		return
	}

	id, err := r.store.SaveRun(storage.Run{
		Player:     r.player,
		Seed:       s.Seed(),
		Difficulty: r.difficulty,
	})
	if err != nil {
		r.logger.Warn("could not record run", "error", err)
		return
	}
	r.runID = id
}

// LevelCleared records a confirmed level and the run's new score.
func (r *Recorder) LevelCleared(s *Session, number int, level district.LevelConfig) {
	r.saveLevel(number, level, true)
	r.saveRun(s, "")
}

// Finish records the end of the run once. When the run was conceded the
// unfinished level is stored as lost.
func (r *Recorder) Finish(s *Session, reason string) {
	if r.finished {
		return
	}
	r.finished = true
	if s.Over() {
		r.saveLevel(s.Number(), s.Level(), false)
	}
	r.saveRun(s, reason)
	r.logger.Info("run finished", "run", r.runID, "score", s.Score(), "reason", reason)
}

func (r *Recorder) saveLevel(number int, level district.LevelConfig, solved bool) {
	if r.store == nil || r.runID == "" {
		return
	}
	if _, err := r.store.SaveLevel(r.runID, number, level, solved); err != nil {
		r.logger.Warn("could not record level", "run", r.runID, "level", number, "error", err)
	}
}

func (r *Recorder) saveRun(s *Session, reason string) {
	if r.store == nil || r.runID == "" {
		return
	}
	_, err := r.store.SaveRun(storage.Run{
		ID:            r.runID,
		Player:        r.player,
		Score:         s.Score(),
		LevelsCleared: s.Number() - 1,
		Seed:          s.Seed(),
		Difficulty:    r.difficulty,
		EndReason:     reason,
	})
	if err != nil {
		r.logger.Warn("could not save run", "run", r.runID, "error", err)
	}
}
