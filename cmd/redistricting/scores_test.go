package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/redistricting/internal/district"
	"github.com/vovakirdan/redistricting/internal/storage"
)

func TestPrintRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	id, err := store.SaveRun(storage.Run{
		Player:        "ada",
		Score:         1,
		LevelsCleared: 1,
		Seed:          42,
		Difficulty:    "hard",
		EndReason:     storage.EndConceded,
	})
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if _, err := store.SaveLevel(id, 1, district.FirstLevel(), true); err != nil {
		t.Fatalf("SaveLevel: %v", err)
	}
	if _, err := store.SaveLevel(id, 2, district.NextLevel(district.FirstLevel()), false); err != nil {
		t.Fatalf("SaveLevel: %v", err)
	}

	var buf bytes.Buffer
	if err := printRun(&buf, store, id); err != nil {
		t.Fatalf("printRun: %v", err)
	}
	out := buf.String()
	for _, want := range []string{id, "ada", "hard", "42", "conceded", " 1. won ", " 2. lost ", "8x8 map"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}

	if err := printRun(&buf, store, "missing"); err == nil {
		t.Error("printRun should fail for an unknown run")
	}
}
