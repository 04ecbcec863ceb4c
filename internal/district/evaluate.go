package district

// DistrictResult summarizes one district for the current assignment.
type DistrictResult struct {
	ID          DistrictID
	Tiles       int // All tiles in the district, empty ones included
	Population  int // Populated tiles; compared against the size bounds
	Favorable   int
	Unfavorable int
	Contiguous  bool
	Winner      Winner
	Validity    Validity
}

// Valid returns true if the district satisfies size and contiguity.
func (r DistrictResult) Valid() bool {
	return r.Validity == ValidityValid
}

// Evaluate computes a result for every district id in [0, level.Districts).
// It only reads the map.
func Evaluate(m *Map, level LevelConfig) []DistrictResult {
	results := make([]DistrictResult, level.Districts)
	members := make([][]Coord, level.Districts)
	for i := range results {
		results[i].ID = DistrictID(i)
	}

	for _, t := range m.tiles {
		id := int(t.District)
		if id < 0 || id >= level.Districts {
			continue
		}
		r := &results[id]
		r.Tiles++
		switch t.Content {
		case ContentFavorable:
			r.Favorable++
			r.Population++
		case ContentUnfavorable:
			r.Unfavorable++
			r.Population++
		}
		members[id] = append(members[id], t.Coord)
	}

	for i := range results {
		r := &results[i]
		r.Contiguous = IsContiguousCoords(members[i])
		r.Winner = winner(*r)
		r.Validity = validity(*r, level)
	}
	return results
}

// winner decides the vote of a district.
func winner(r DistrictResult) Winner {
	switch {
	case !r.Contiguous:
		return WinnerNone
	case r.Favorable > r.Unfavorable:
		return WinnerFavorable
	case r.Favorable < r.Unfavorable:
		return WinnerUnfavorable
	default:
		return WinnerTie
	}
}

// validity classifies a district against the level's size bounds.
func validity(r DistrictResult, level LevelConfig) Validity {
	switch {
	case r.Population < level.MinDistrictSize:
		return ValidityTooSmall
	case r.Population > level.MaxDistrictSize:
		return ValidityTooBig
	case r.Winner == WinnerNone:
		return ValidityNonContiguous
	default:
		return ValidityValid
	}
}
