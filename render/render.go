// Package render draws frames as plain text. It owns the table that turns a
// segment's role and orientation into a visual variant.
package render

import (
	"fmt"
	"strings"

	"github.com/battlesnakeio/classic/rules"
	runewidth "github.com/mattn/go-runewidth"
)

// Glyphs is a variant selection table.
type Glyphs struct {
	Head  map[rules.Direction]rune
	Body  map[rules.Direction]rune
	Tail  map[rules.Direction]rune
	Food  rune
	Empty rune
	Dead  rune
}

// DefaultGlyphs uses single width box drawing characters. Body segments
// share a variant for opposite orientations.
var DefaultGlyphs = Glyphs{
	Head: map[rules.Direction]rune{
		rules.DirectionUp:    '▲',
		rules.DirectionDown:  '▼',
		rules.DirectionLeft:  '◀',
		rules.DirectionRight: '▶',
	},
	Body: map[rules.Direction]rune{
		rules.DirectionUp:    '║',
		rules.DirectionDown:  '║',
		rules.DirectionLeft:  '═',
		rules.DirectionRight: '═',
	},
	Tail: map[rules.Direction]rune{
		rules.DirectionUp:    '╹',
		rules.DirectionDown:  '╻',
		rules.DirectionLeft:  '╸',
		rules.DirectionRight: '╺',
	},
	Food:  '●',
	Empty: '·',
	Dead:  'X',
}

// FruitGlyphs draws food as an emoji, which makes every cell two columns wide.
var FruitGlyphs = func() Glyphs {
	g := DefaultGlyphs
	g.Food = '🍎'
	return g
}()

// Renderer draws frames with a glyph table.
type Renderer struct {
	glyphs Glyphs
	cond   *runewidth.Condition
}

// New returns a renderer for the glyph table. Ambiguous width characters are
// counted as a single column so output does not depend on the locale.
func New(glyphs Glyphs) *Renderer {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	return &Renderer{glyphs: glyphs, cond: cond}
}

// Default renders with DefaultGlyphs.
var Default = New(DefaultGlyphs)

// Frame renders f on board with the default glyphs.
func Frame(board rules.Board, f *rules.Frame) string {
	return Default.Frame(board, f)
}

// Glyph selects the variant for a resolved segment. Unknown orientations
// fall back to the up variant.
func (r *Renderer) Glyph(s rules.Segment) rune {
	var table map[rules.Direction]rune
	switch s.Role {
	case rules.RoleHead:
		table = r.glyphs.Head
	case rules.RoleTail:
		table = r.glyphs.Tail
	default:
		table = r.glyphs.Body
	}
	if g, ok := table[s.Orientation]; ok {
		return g
	}
	return table[rules.DirectionUp]
}

func (r *Renderer) cellWidth() int {
	width := 1
	check := func(g rune) {
		if w := r.cond.RuneWidth(g); w > width {
			width = w
		}
	}
	for _, table := range []map[rules.Direction]rune{r.glyphs.Head, r.glyphs.Body, r.glyphs.Tail} {
		for _, g := range table {
			check(g)
		}
	}
	check(r.glyphs.Food)
	check(r.glyphs.Empty)
	check(r.glyphs.Dead)
	return width
}

// Frame draws the board with a border followed by a status line. Cells
// outside the board, such as the head of a snake that hit a wall, are not
// drawn.
func (r *Renderer) Frame(board rules.Board, f *rules.Frame) string {
	grid := make([][]rune, board.Height)
	for y := range grid {
		grid[y] = make([]rune, board.Width)
		for x := range grid[y] {
			grid[y][x] = r.glyphs.Empty
		}
	}
	set := func(p rules.Point, g rune) {
		if board.Contains(p) {
			grid[p.Y][p.X] = g
		}
	}

	if f.Food != nil {
		set(*f.Food, r.glyphs.Food)
	}
	for _, s := range rules.Segments(f) {
		set(s.Point, r.Glyph(s))
	}
	if !f.Alive() {
		set(f.Head, r.glyphs.Dead)
	}

	cw := r.cellWidth()
	var sb strings.Builder
	border := strings.Repeat("─", int(board.Width)*cw)
	sb.WriteString("┌" + border + "┐\n")
	for _, row := range grid {
		sb.WriteString("│")
		for _, g := range row {
			sb.WriteString(r.cond.FillRight(string(g), cw))
		}
		sb.WriteString("│\n")
	}
	sb.WriteString("└" + border + "┘\n")

	fmt.Fprintf(&sb, "turn %d  score %d  heading %s", f.Turn, f.Score(), f.Heading)
	switch {
	case f.Death != nil:
		fmt.Fprintf(&sb, "  dead: %s", f.Death.Cause)
	case f.Food == nil:
		sb.WriteString("  board full")
	}
	sb.WriteString("\n")
	return sb.String()
}
