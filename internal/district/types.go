// Package district provides the puzzle logic for Redistricting: map
// generation, contiguity analysis, district evaluation and level
// progression. This package is UI-agnostic and deterministic given a
// seeded random source.
package district

import "errors"

// Errors returned by the core. Callers match them with errors.Is.
var (
	ErrConfiguration   = errors.New("unsatisfiable level configuration")
	ErrOutOfBounds     = errors.New("coordinate out of bounds")
	ErrInvalidDistrict = errors.New("invalid district id")
)

// TileContent classifies a tile's voting lean.
type TileContent uint8

const (
	ContentEmpty TileContent = iota
	ContentFavorable
	ContentUnfavorable
)

// String returns the string representation of a tile content.
func (c TileContent) String() string {
	switch c {
	case ContentEmpty:
		return "Empty"
	case ContentFavorable:
		return "Favorable"
	case ContentUnfavorable:
		return "Unfavorable"
	default:
		return "Unknown"
	}
}

// Populated returns true for tiles that cast a vote.
func (c TileContent) Populated() bool {
	return c == ContentFavorable || c == ContentUnfavorable
}

// DistrictID identifies a district. Valid ids are in [0, districts).
type DistrictID int

// Unassigned marks a tile that belongs to no district.
const Unassigned DistrictID = -1

// Assigned returns true if the id refers to a district.
func (id DistrictID) Assigned() bool {
	return id >= 0
}

// Tile is a single cell of the map.
type Tile struct {
	Coord    Coord
	Content  TileContent
	District DistrictID
}

// Winner is the outcome of a district's vote.
type Winner uint8

const (
	WinnerNone Winner = iota // non-contiguous districts have no winner
	WinnerFavorable
	WinnerUnfavorable
	WinnerTie
)

// String returns the string representation of a winner.
func (w Winner) String() string {
	switch w {
	case WinnerNone:
		return "None"
	case WinnerFavorable:
		return "Favorable"
	case WinnerUnfavorable:
		return "Unfavorable"
	case WinnerTie:
		return "Tie"
	default:
		return "Unknown"
	}
}

// Validity classifies a district against the level's size bounds.
type Validity uint8

const (
	ValidityValid Validity = iota
	ValidityTooSmall
	ValidityTooBig
	ValidityNonContiguous
)

// String returns the string representation of a validity.
func (v Validity) String() string {
	switch v {
	case ValidityValid:
		return "Valid"
	case ValidityTooSmall:
		return "TooSmall"
	case ValidityTooBig:
		return "TooBig"
	case ValidityNonContiguous:
		return "NonContiguous"
	default:
		return "Unknown"
	}
}
