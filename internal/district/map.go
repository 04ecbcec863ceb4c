package district

import "fmt"

// Map is the square game board. Tiles are stored in row-major order:
// index = y*Size + x.
type Map struct {
	size      int
	districts int
	tiles     []Tile
	populated int
}

// NewMap creates a size×size map of empty, unassigned tiles for a level
// with the given number of districts.
func NewMap(size, districts int) *Map {
	if size < 0 {
		size = 0
	}
	m := &Map{
		size:      size,
		districts: districts,
		tiles:     make([]Tile, size*size),
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			m.tiles[y*size+x] = Tile{Coord: C(x, y), Content: ContentEmpty, District: Unassigned}
		}
	}
	return m
}

// NewMapFromContents builds a map from rows of contents, mainly for tests
// and level fixtures. All rows must have the same length as the number of
// rows.
func NewMapFromContents(rows [][]TileContent, districts int) (*Map, error) {
	size := len(rows)
	for y, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrConfiguration, y, len(row), size)
		}
	}
	m := NewMap(size, districts)
	for y, row := range rows {
		for x, content := range row {
			m.setContent(m.index(C(x, y)), content)
		}
	}
	return m, nil
}

// index converts a coordinate to a flat array index.
func (m *Map) index(c Coord) int {
	return c.Y*m.size + c.X
}

// Size returns the width (and height) of the map.
func (m *Map) Size() int {
	return m.size
}

// Districts returns the number of districts tiles can be assigned to.
func (m *Map) Districts() int {
	return m.districts
}

// Populated returns the number of non-empty tiles.
func (m *Map) Populated() int {
	return m.populated
}

// InBounds returns true if the coordinate is within the grid.
func (m *Map) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < m.size && c.Y >= 0 && c.Y < m.size
}

// Tile returns the tile at the given coordinate.
func (m *Map) Tile(c Coord) (Tile, error) {
	if !m.InBounds(c) {
		return Tile{}, fmt.Errorf("%w: %s on %dx%d map", ErrOutOfBounds, c, m.size, m.size)
	}
	return m.tiles[m.index(c)], nil
}

// Tiles returns a copy of all tiles in row-major order.
func (m *Map) Tiles() []Tile {
	tiles := make([]Tile, len(m.tiles))
	copy(tiles, m.tiles)
	return tiles
}

// SetDistrict assigns the tile at c to district id. Passing Unassigned
// clears the assignment.
func (m *Map) SetDistrict(c Coord, id DistrictID) error {
	if !m.InBounds(c) {
		return fmt.Errorf("%w: %s on %dx%d map", ErrOutOfBounds, c, m.size, m.size)
	}
	if id != Unassigned && (id < 0 || int(id) >= m.districts) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidDistrict, id, m.districts)
	}
	m.tiles[m.index(c)].District = id
	return nil
}

// ClearDistrict removes the district assignment of the tile at c.
func (m *Map) ClearDistrict(c Coord) error {
	return m.SetDistrict(c, Unassigned)
}

// ClearAll removes every district assignment.
func (m *Map) ClearAll() {
	for i := range m.tiles {
		m.tiles[i].District = Unassigned
	}
}

// DistrictTiles returns the tiles assigned to id in row-major order.
func (m *Map) DistrictTiles(id DistrictID) []Tile {
	tiles := make([]Tile, 0)
	for _, t := range m.tiles {
		if t.District == id {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// UnassignedCount returns the number of tiles without a district.
func (m *Map) UnassignedCount() int {
	count := 0
	for _, t := range m.tiles {
		if !t.District.Assigned() {
			count++
		}
	}
	return count
}

// CountContent returns the number of tiles with the given content.
func (m *Map) CountContent(content TileContent) int {
	count := 0
	for _, t := range m.tiles {
		if t.Content == content {
			count++
		}
	}
	return count
}

// FavorableFraction returns favorable tiles over populated tiles.
// Returns 0 for a map with no population.
func (m *Map) FavorableFraction() float64 {
	if m.populated == 0 {
		return 0
	}
	return float64(m.CountContent(ContentFavorable)) / float64(m.populated)
}

// setContent changes a tile's content and keeps the populated count in
// step. Only the generator and fixtures call it.
func (m *Map) setContent(i int, content TileContent) {
	if m.tiles[i].Content.Populated() {
		m.populated--
	}
	m.tiles[i].Content = content
	if content.Populated() {
		m.populated++
	}
}
