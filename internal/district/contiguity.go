package district

import "github.com/zyedidia/generic/mapset"

// IsContiguous returns true if the tiles form a single 4-connected region.
// An empty set is never contiguous.
func IsContiguous(tiles []Tile) bool {
	coords := make([]Coord, len(tiles))
	for i, t := range tiles {
		coords[i] = t.Coord
	}
	return IsContiguousCoords(coords)
}

// IsContiguousCoords returns true if the coordinates form a single
// 4-connected region. Duplicates are ignored.
func IsContiguousCoords(coords []Coord) bool {
	if len(coords) == 0 {
		return false
	}

	members := mapset.New[Coord]()
	for _, c := range coords {
		members.Put(c)
	}

	// BFS from the first member, restricted to members
	visited := mapset.New[Coord]()
	visited.Put(coords[0])
	queue := []Coord{coords[0]}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range current.Neighbors() {
			if members.Has(n) && !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}

	return visited.Size() == members.Size()
}

// Regions splits coordinates into their 4-connected components, each in
// discovery order. Used to point the player at stray pieces of a district.
func Regions(coords []Coord) [][]Coord {
	members := mapset.New[Coord]()
	for _, c := range coords {
		members.Put(c)
	}

	visited := mapset.New[Coord]()
	regions := make([][]Coord, 0)
	for _, start := range coords {
		if visited.Has(start) {
			continue
		}
		visited.Put(start)
		region := []Coord{start}
		for i := 0; i < len(region); i++ {
			for _, n := range region[i].Neighbors() {
				if members.Has(n) && !visited.Has(n) {
					visited.Put(n)
					region = append(region, n)
				}
			}
		}
		regions = append(regions, region)
	}
	return regions
}
