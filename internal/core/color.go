package core

// Color represents a color for a screen cell.
// Front ends translate colors to terminal styles.
type Color uint8

// Palette. Party colors have a faded variant for tiles not yet placed in
// a district.
const (
	ColorDefault Color = iota
	ColorFavorable
	ColorFavorableFaded
	ColorUnfavorable
	ColorUnfavorableFaded
	ColorEmpty
	ColorCursor
	ColorInvalid
	ColorValid
	ColorTitle
	ColorMuted
)

// Faded returns the faded variant of a party color.
func (c Color) Faded() Color {
	switch c {
	case ColorFavorable:
		return ColorFavorableFaded
	case ColorUnfavorable:
		return ColorUnfavorableFaded
	default:
		return c
	}
}
