package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/redistricting/internal/core"
	"github.com/vovakirdan/redistricting/internal/district"
)

const (
	F = district.ContentFavorable
	U = district.ContentUnfavorable
	E = district.ContentEmpty
)

func testMap(t *testing.T) *district.Map {
	t.Helper()
	m, err := district.NewMapFromContents([][]district.TileContent{
		{F, U},
		{E, F},
	}, 2)
	if err != nil {
		t.Fatalf("NewMapFromContents: %v", err)
	}
	return m
}

func TestBoardSize(t *testing.T) {
	w, h := BoardSize(8)
	if w != 8*tileWidth+2 || h != 10 {
		t.Errorf("BoardSize(8) = %dx%d, expected %dx10", w, h, 8*tileWidth+2)
	}
}

func TestDrawBoard(t *testing.T) {
	m := testMap(t)
	if err := m.SetDistrict(district.C(1, 0), 1); err != nil {
		t.Fatalf("SetDistrict: %v", err)
	}

	w, h := BoardSize(m.Size())
	s := core.NewScreen(w, h)
	DrawBoard(s, m, district.C(0, 0))

	expected := []string{
		"┌ 2x2 ─┐",
		"│[•] 2 │",
		"│ ·  • │",
		"└──────┘",
	}
	for y, row := range expected {
		if got := rowText(s, y); got != row {
			t.Errorf("row %d = %q, expected %q", y, got, row)
		}
	}

	tests := []struct {
		name string
		x, y int
		fg   core.Color
		bg   core.Color
	}{
		{"cursor tile is faded", 2, 1, core.ColorFavorableFaded, core.ColorCursor},
		{"assigned tile in party color", 5, 1, core.ColorUnfavorable, core.ColorDefault},
		{"empty tile", 2, 2, core.ColorEmpty, core.ColorDefault},
		{"unassigned favorable tile", 5, 2, core.ColorFavorableFaded, core.ColorDefault},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := s.GetCell(tc.x, tc.y)
			if c.Fg != tc.fg || c.Bg != tc.bg {
				t.Errorf("cell (%d, %d) colors = %v/%v, expected %v/%v", tc.x, tc.y, c.Fg, c.Bg, tc.fg, tc.bg)
			}
		})
	}
}

func TestDrawBoardCaptionNeedsRoom(t *testing.T) {
	m, err := district.NewMapFromContents([][]district.TileContent{{F}}, 1)
	if err != nil {
		t.Fatalf("NewMapFromContents: %v", err)
	}
	w, h := BoardSize(m.Size())
	s := core.NewScreen(w, h)
	DrawBoard(s, m, district.C(5, 5))

	if got := rowText(s, 0); got != "┌───┐" {
		t.Errorf("top border = %q, expected no caption on a 1x1 board", got)
	}
}

// rowText reads a screen row back as plain text.
func rowText(s *core.Screen, y int) string {
	var sb strings.Builder
	for x := 0; x < s.Width(); x++ {
		sb.WriteRune(s.Get(x, y))
	}
	return sb.String()
}

func TestDistrictLabel(t *testing.T) {
	tests := []struct {
		id       district.DistrictID
		expected string
	}{
		{district.Unassigned, "-"},
		{0, "1"},
		{8, "9"},
		{9, "a"},
		{10, "b"},
	}

	for _, tc := range tests {
		if got := DistrictLabel(tc.id); got != tc.expected {
			t.Errorf("DistrictLabel(%d) = %q, expected %q", tc.id, got, tc.expected)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab", core.ColorFavorable)
	s.DrawText(2, 0, "cd", core.ColorUnfavorable)

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen output %q should contain %q", out, want)
		}
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("hi", 6); got != "  hi" {
		t.Errorf("centerText = %q, expected %q", got, "  hi")
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText should not trim, got %q", got)
	}
}
