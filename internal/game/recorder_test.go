package game

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/redistricting/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecorderWithoutStore(t *testing.T) {
	s := newTestSession(t, 1)
	r := NewRecorder(nil, "", "normal", nil)

	r.Start(s)
	r.LevelCleared(s, 1, s.Level())
	r.Finish(s, storage.EndQuit)

	if r.RunID() != "" {
		t.Errorf("RunID() = %q, expected empty without storage", r.RunID())
	}
}

func TestRecorderRun(t *testing.T) {
	store := openTestStore(t)
	s := newTestSession(t, 42)
	r := NewRecorder(store, "ada", "hard", nil)

	r.Start(s)
	if r.RunID() == "" {
		t.Fatal("Start should record a run")
	}

	loadSolvable(t, s)
	assignRows(t, s)
	cleared, err := s.Confirm()
	if err != nil {
		t.Fatalf("Confirm() failed: %v", err)
	}
	r.LevelCleared(s, 1, cleared)

	s.Concede()
	r.Finish(s, storage.EndConceded)
	r.Finish(s, storage.EndQuit) // ignored

	run, err := store.RunByID(r.RunID())
	if err != nil || run == nil {
		t.Fatalf("RunByID() = %v, %v", run, err)
	}
	if run.Score != 1 || run.LevelsCleared != 1 {
		t.Errorf("run score/levels = %d/%d, expected 1/1", run.Score, run.LevelsCleared)
	}
	if run.Player != "ada" || run.Difficulty != "hard" || run.Seed != 42 {
		t.Errorf("run = %+v, expected ada at hard with seed 42", run)
	}
	if run.EndReason != storage.EndConceded {
		t.Errorf("end reason = %q, expected %q", run.EndReason, storage.EndConceded)
	}

	levels, err := store.LevelHistory(r.RunID())
	if err != nil {
		t.Fatalf("LevelHistory() failed: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("recorded %d levels, expected 2", len(levels))
	}
	if !levels[0].Solved || levels[0].Number != 1 || levels[0].Level.MapSize != 3 {
		t.Errorf("first level = %+v, expected solved 3x3 level 1", levels[0])
	}
	if levels[1].Solved || levels[1].Number != 2 {
		t.Errorf("second level = %+v, expected lost level 2", levels[1])
	}
}

func TestRecorderStartResetsRun(t *testing.T) {
	store := openTestStore(t)
	r := NewRecorder(store, "", "normal", nil)

	first := newTestSession(t, 1)
	r.Start(first)
	firstID := r.RunID()
	r.Finish(first, storage.EndQuit)

	second := newTestSession(t, 2)
	r.Start(second)
	if r.RunID() == firstID {
		t.Error("Start should open a new run")
	}
	r.Finish(second, storage.EndQuit)

	run, err := store.RunByID(r.RunID())
	if err != nil || run == nil || run.EndReason != storage.EndQuit {
		t.Errorf("second run not finished: %+v, %v", run, err)
	}
}
