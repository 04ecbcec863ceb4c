package district

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderASCII draws the map's contents, one character per tile:
// 'F' favorable, 'u' unfavorable, '.' empty.
// Used by the generate command and for golden outputs in tests.
func RenderASCII(m *Map) string {
	var sb strings.Builder
	sb.Grow(m.size*m.size + m.size)
	for y := 0; y < m.size; y++ {
		for x := 0; x < m.size; x++ {
			sb.WriteRune(contentChar(m.tiles[m.index(C(x, y))].Content))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderDistricts draws the district assignment, one base-36 digit per
// tile and '.' for unassigned tiles.
func RenderDistricts(m *Map) string {
	var sb strings.Builder
	for y := 0; y < m.size; y++ {
		for x := 0; x < m.size; x++ {
			id := m.tiles[m.index(C(x, y))].District
			if !id.Assigned() || id >= 36 {
				sb.WriteRune('.')
				continue
			}
			sb.WriteString(strconv.FormatInt(int64(id), 36))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderSummary writes a header describing a generated level.
func RenderSummary(gen Generation) string {
	m := gen.Map
	return fmt.Sprintf("%s\npopulated %d/%d | favorable %d (%.1f%%) | min favorable %d | flips %d\n",
		gen.Level, m.Populated(), len(m.tiles), m.CountContent(ContentFavorable),
		m.FavorableFraction()*100, gen.MinFavorable, gen.Flips)
}

func contentChar(c TileContent) rune {
	switch c {
	case ContentFavorable:
		return 'F'
	case ContentUnfavorable:
		return 'u'
	default:
		return '.'
	}
}
