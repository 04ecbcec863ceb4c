package tui

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/redistricting/internal/core"
	"github.com/vovakirdan/redistricting/internal/district"
)

// tileWidth is the number of terminal columns per map tile.
const tileWidth = 3

// palette maps core.Color to terminal colors. Favorable is blue and
// unfavorable red; faded variants mark tiles not yet in a district.
var palette = map[core.Color]lipgloss.Color{
	core.ColorFavorable:        lipgloss.Color("39"),
	core.ColorFavorableFaded:   lipgloss.Color("24"),
	core.ColorUnfavorable:      lipgloss.Color("196"),
	core.ColorUnfavorableFaded: lipgloss.Color("88"),
	core.ColorEmpty:            lipgloss.Color("238"),
	core.ColorCursor:           lipgloss.Color("237"),
	core.ColorInvalid:          lipgloss.Color("214"),
	core.ColorValid:            lipgloss.Color("42"),
	core.ColorTitle:            lipgloss.Color("229"),
	core.ColorMuted:            lipgloss.Color("241"),
}

type cellStyle struct {
	fg, bg core.Color
}

var (
	styleMu    sync.Mutex
	styleCache = map[cellStyle]lipgloss.Style{}
)

// styleFor returns the lipgloss style for a foreground/background pair.
// SSH sessions render concurrently, so the cache is locked.
func styleFor(fg, bg core.Color) lipgloss.Style {
	styleMu.Lock()
	defer styleMu.Unlock()

	key := cellStyle{fg, bg}
	if style, ok := styleCache[key]; ok {
		return style
	}
	style := lipgloss.NewStyle()
	if c, ok := palette[fg]; ok {
		style = style.Foreground(c)
	}
	if c, ok := palette[bg]; ok {
		style = style.Background(c)
	}
	if fg == core.ColorFavorable || fg == core.ColorUnfavorable {
		style = style.Bold(true)
	}
	styleCache[key] = style
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			// Collect consecutive cells with the same colors
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}

// BoardSize returns the screen dimensions needed to draw a map of the
// given size, border included.
func BoardSize(mapSize int) (w, h int) {
	return mapSize*tileWidth + 2, mapSize + 2
}

// DrawBoard draws the map with a border into dst at its top-left corner.
// The map size is captioned in the top border when it fits. The cursor
// tile is bracketed and highlighted.
func DrawBoard(dst *core.Screen, m *district.Map, cursor district.Coord) {
	w, h := BoardSize(m.Size())
	drawBox(dst, w, h)
	if caption := fmt.Sprintf(" %dx%d ", m.Size(), m.Size()); len(caption)+2 <= w {
		dst.DrawText((w-len(caption))/2, 0, caption, core.ColorMuted)
	}

	for _, tile := range m.Tiles() {
		x := 1 + tile.Coord.X*tileWidth
		y := 1 + tile.Coord.Y

		glyph, fg := tileGlyph(tile)
		bg := core.ColorDefault
		left, right := ' ', ' '
		if tile.Coord == cursor {
			bg = core.ColorCursor
			left, right = '[', ']'
		}

		dst.SetCell(x, y, core.Cell{Rune: left, Fg: core.ColorTitle, Bg: bg})
		dst.SetCell(x+1, y, core.Cell{Rune: glyph, Fg: fg, Bg: bg})
		dst.SetCell(x+2, y, core.Cell{Rune: right, Fg: core.ColorTitle, Bg: bg})
	}
}

// tileGlyph picks the character and color of a tile. Assigned tiles show
// their district label in full party color.
func tileGlyph(tile district.Tile) (rune, core.Color) {
	color := contentColor(tile.Content)
	if !tile.District.Assigned() {
		if tile.Content.Populated() {
			return '•', color.Faded()
		}
		return '·', color
	}
	return []rune(DistrictLabel(tile.District))[0], color
}

func contentColor(c district.TileContent) core.Color {
	switch c {
	case district.ContentFavorable:
		return core.ColorFavorable
	case district.ContentUnfavorable:
		return core.ColorUnfavorable
	default:
		return core.ColorEmpty
	}
}

// DistrictLabel returns the one-character, one-based label of a district:
// 1-9, then a, b, ...
func DistrictLabel(id district.DistrictID) string {
	if !id.Assigned() {
		return "-"
	}
	return strconv.FormatInt(int64(id)+1, 36)
}

// drawBox draws a box outline using box-drawing characters.
func drawBox(dst *core.Screen, w, h int) {
	c := core.ColorMuted
	dst.Set(0, 0, '┌', c)
	dst.Set(w-1, 0, '┐', c)
	dst.Set(0, h-1, '└', c)
	dst.Set(w-1, h-1, '┘', c)

	for x := 1; x < w-1; x++ {
		dst.Set(x, 0, '─', c)
		dst.Set(x, h-1, '─', c)
	}
	for y := 1; y < h-1; y++ {
		dst.Set(0, y, '│', c)
		dst.Set(w-1, y, '│', c)
	}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
