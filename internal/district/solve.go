package district

// Summary tallies district results for display and solve checking.
type Summary struct {
	Districts   int
	Valid       int
	Favorable   int // Districts won by the player's party
	Unfavorable int
	Ties        int
	Unassigned  int // Tiles without a district
}

// Summarize tallies the results of Evaluate for map m.
func Summarize(m *Map, results []DistrictResult) Summary {
	s := Summary{
		Districts:  len(results),
		Unassigned: m.UnassignedCount(),
	}
	for _, r := range results {
		if r.Valid() {
			s.Valid++
		}
		switch r.Winner {
		case WinnerFavorable:
			s.Favorable++
		case WinnerUnfavorable:
			s.Unfavorable++
		case WinnerTie:
			s.Ties++
		}
	}
	return s
}

// Solved reports whether the tallies meet the win condition: every
// district valid, every tile assigned and a strict favorable majority.
func (s Summary) Solved() bool {
	return s.Districts > 0 &&
		s.Valid == s.Districts &&
		s.Unassigned == 0 &&
		s.Favorable > s.Districts/2
}

// IsSolved returns true if the current assignment wins the level.
func IsSolved(m *Map, level LevelConfig) bool {
	return Summarize(m, Evaluate(m, level)).Solved()
}
