package district_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/redistricting/internal/district"
)

const (
	F = district.ContentFavorable
	U = district.ContentUnfavorable
	E = district.ContentEmpty
)

// mustMap builds a fixture map or fails the test.
func mustMap(t *testing.T, rows [][]district.TileContent, districts int) *district.Map {
	t.Helper()
	m, err := district.NewMapFromContents(rows, districts)
	if err != nil {
		t.Fatalf("NewMapFromContents failed: %v", err)
	}
	return m
}

// assignRows assigns each tile to the district given by ids[y][x];
// negative values leave the tile unassigned.
func assignRows(t *testing.T, m *district.Map, ids [][]int) {
	t.Helper()
	for y, row := range ids {
		for x, id := range row {
			if id < 0 {
				continue
			}
			if err := m.SetDistrict(district.C(x, y), district.DistrictID(id)); err != nil {
				t.Fatalf("SetDistrict(%d,%d,%d) failed: %v", x, y, id, err)
			}
		}
	}
}

func TestNewMapCoordsMatchPosition(t *testing.T) {
	m := district.NewMap(6, 3)

	if m.Size() != 6 {
		t.Errorf("Size() = %d, expected 6", m.Size())
	}

	tiles := m.Tiles()
	if len(tiles) != 36 {
		t.Fatalf("expected 36 tiles, got %d", len(tiles))
	}

	for i, tile := range tiles {
		want := district.C(i%6, i/6)
		if tile.Coord != want {
			t.Errorf("tile %d has coord %v, expected %v", i, tile.Coord, want)
		}
		if tile.District != district.Unassigned {
			t.Errorf("tile %v should start unassigned, got %d", tile.Coord, tile.District)
		}
		if tile.Content != district.ContentEmpty {
			t.Errorf("tile %v should start empty, got %v", tile.Coord, tile.Content)
		}
	}
}

func TestNewMapFromContents(t *testing.T) {
	m := mustMap(t, [][]district.TileContent{
		{F, U, E},
		{E, F, F},
		{U, E, E},
	}, 3)

	if m.Populated() != 5 {
		t.Errorf("Populated() = %d, expected 5", m.Populated())
	}
	if got := m.CountContent(F); got != 3 {
		t.Errorf("CountContent(F) = %d, expected 3", got)
	}

	tile, err := m.Tile(district.C(1, 0))
	if err != nil {
		t.Fatalf("Tile failed: %v", err)
	}
	if tile.Content != U {
		t.Errorf("tile (1,0) content = %v, expected Unfavorable", tile.Content)
	}

	_, err = district.NewMapFromContents([][]district.TileContent{{F, U}, {F}}, 3)
	if !errors.Is(err, district.ErrConfiguration) {
		t.Errorf("ragged rows should fail with ErrConfiguration, got %v", err)
	}
}

func TestMapSetDistrict(t *testing.T) {
	m := district.NewMap(4, 3)

	tests := []struct {
		name    string
		coord   district.Coord
		id      district.DistrictID
		wantErr error
	}{
		{"valid first district", district.C(0, 0), 0, nil},
		{"valid last district", district.C(3, 3), 2, nil},
		{"clear assignment", district.C(1, 1), district.Unassigned, nil},
		{"district too large", district.C(1, 1), 3, district.ErrInvalidDistrict},
		{"negative district", district.C(1, 1), -2, district.ErrInvalidDistrict},
		{"x out of bounds", district.C(4, 0), 0, district.ErrOutOfBounds},
		{"y out of bounds", district.C(0, -1), 0, district.ErrOutOfBounds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := m.SetDistrict(tc.coord, tc.id)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("SetDistrict() = %v, expected nil", err)
				}
				tile, _ := m.Tile(tc.coord)
				if tile.District != tc.id {
					t.Errorf("district = %d, expected %d", tile.District, tc.id)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("SetDistrict() = %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

func TestMapTileOutOfBounds(t *testing.T) {
	m := district.NewMap(3, 3)
	if _, err := m.Tile(district.C(3, 3)); !errors.Is(err, district.ErrOutOfBounds) {
		t.Errorf("Tile(3,3) = %v, expected ErrOutOfBounds", err)
	}
	if err := m.ClearDistrict(district.C(-1, 0)); !errors.Is(err, district.ErrOutOfBounds) {
		t.Errorf("ClearDistrict(-1,0) = %v, expected ErrOutOfBounds", err)
	}
}

func TestMapClearAll(t *testing.T) {
	m := district.NewMap(3, 3)
	assignRows(t, m, [][]int{
		{0, 0, 0},
		{1, 1, 1},
		{2, 2, -1},
	})

	if m.UnassignedCount() != 1 {
		t.Errorf("UnassignedCount() = %d, expected 1", m.UnassignedCount())
	}
	if got := len(m.DistrictTiles(1)); got != 3 {
		t.Errorf("district 1 has %d tiles, expected 3", got)
	}

	m.ClearAll()
	if m.UnassignedCount() != 9 {
		t.Errorf("after ClearAll UnassignedCount() = %d, expected 9", m.UnassignedCount())
	}
}

func TestCoordAdjacent(t *testing.T) {
	tests := []struct {
		a, b     district.Coord
		expected bool
	}{
		{district.C(0, 0), district.C(1, 0), true},
		{district.C(0, 0), district.C(0, 1), true},
		{district.C(1, 1), district.C(2, 2), false},
		{district.C(0, 0), district.C(0, 0), false},
		{district.C(0, 0), district.C(2, 0), false},
	}

	for _, tc := range tests {
		if got := tc.a.Adjacent(tc.b); got != tc.expected {
			t.Errorf("%v.Adjacent(%v) = %v, expected %v", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestCoordNeighbors(t *testing.T) {
	got := district.C(2, 5).Neighbors()
	want := [4]district.Coord{district.C(2, 4), district.C(3, 5), district.C(2, 6), district.C(1, 5)}
	if got != want {
		t.Errorf("Neighbors() = %v, expected %v", got, want)
	}

	// The origin's neighbours are not clipped.
	for _, n := range district.C(0, 0).Neighbors() {
		if !n.Adjacent(district.C(0, 0)) {
			t.Errorf("%v is not adjacent to the origin", n)
		}
	}
}
