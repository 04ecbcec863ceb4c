package district_test

import (
	"testing"

	"github.com/vovakirdan/redistricting/internal/district"
)

func TestIsContiguousCoords(t *testing.T) {
	c := district.C

	tests := []struct {
		name     string
		coords   []district.Coord
		expected bool
	}{
		{"empty set", nil, false},
		{"single tile", []district.Coord{c(3, 3)}, true},
		{"horizontal pair", []district.Coord{c(0, 0), c(1, 0)}, true},
		{"diagonal pair", []district.Coord{c(0, 0), c(1, 1)}, false},
		{"gap of one", []district.Coord{c(0, 0), c(2, 0)}, false},
		{"L shape", []district.Coord{c(0, 0), c(0, 1), c(0, 2), c(1, 2), c(2, 2)}, true},
		{"plus shape", []district.Coord{c(1, 0), c(0, 1), c(1, 1), c(2, 1), c(1, 2)}, true},
		{"two islands", []district.Coord{c(0, 0), c(1, 0), c(3, 3), c(3, 4)}, false},
		{"ring with hole", []district.Coord{
			c(0, 0), c(1, 0), c(2, 0),
			c(0, 1), c(2, 1),
			c(0, 2), c(1, 2), c(2, 2),
		}, true},
		{"duplicates", []district.Coord{c(0, 0), c(0, 0), c(0, 1)}, true},
		{"no wraparound", []district.Coord{c(0, 0), c(7, 0)}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := district.IsContiguousCoords(tc.coords); got != tc.expected {
				t.Errorf("IsContiguousCoords() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestIsContiguousTiles(t *testing.T) {
	m := district.NewMap(3, 3)
	assignRows(t, m, [][]int{
		{0, 1, 0},
		{0, 1, 0},
		{0, 0, 0},
	})

	if !district.IsContiguous(m.DistrictTiles(0)) {
		t.Error("U-shaped district 0 should be contiguous")
	}
	if !district.IsContiguous(m.DistrictTiles(1)) {
		t.Error("vertical district 1 should be contiguous")
	}
	if district.IsContiguous(m.DistrictTiles(2)) {
		t.Error("empty district 2 should not be contiguous")
	}
}

func TestRegions(t *testing.T) {
	c := district.C
	regions := district.Regions([]district.Coord{c(0, 0), c(1, 0), c(4, 4), c(0, 1), c(4, 3)})

	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}
	if len(regions[0]) != 3 {
		t.Errorf("first region has %d tiles, expected 3", len(regions[0]))
	}
	if len(regions[1]) != 2 {
		t.Errorf("second region has %d tiles, expected 2", len(regions[1]))
	}
}
