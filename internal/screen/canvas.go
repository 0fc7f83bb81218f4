// Package screen implements the drawing surface meters write to: a fixed
// grid of cells, each holding one rune and the symbolic role it was written
// with. Roles are resolved to terminal attributes only when the canvas is
// flushed through a theme.Palette.
package screen

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/sumant1122/perftop/internal/theme"
)

// Cell is one terminal column. The column after a wide rune holds a
// continuation cell whose Rune is 0.
type Cell struct {
	Rune rune
	Role theme.Role
}

var blank = Cell{Rune: ' ', Role: theme.RoleReset}

func (c Cell) continuation() bool { return c.Rune == 0 }

type Canvas struct {
	width  int
	height int
	cells  []Cell
}

// New returns a blank canvas. Negative dimensions are treated as zero.
func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{width: width, height: height, cells: make([]Cell, width*height)}
	c.Clear()
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Clear resets every cell to a blank in the reset role.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blank
	}
}

// At returns the cell at x, y. Positions off the canvas read as blank.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return blank
	}
	return c.cells[y*c.width+x]
}

// Put writes s starting at x, y and returns the number of cells consumed,
// including any that fall off the right edge.
func (c *Canvas) Put(x, y int, role theme.Role, s string) int {
	return c.PutN(x, y, role, s, -1)
}

// PutN writes s into at most n cells (unlimited when n is negative) and
// returns the number of cells consumed. Wide runes take two cells; one
// that would be split by an edge of the canvas is drawn as a blank.
func (c *Canvas) PutN(x, y int, role theme.Role, s string, n int) int {
	if n == 0 {
		return 0
	}
	written := 0
	for _, r := range Sanitize(s) {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if n >= 0 && written+w > n {
			break
		}
		col := x + written
		if w == 2 && (col < 0 || col+1 >= c.width) {
			c.set(col, y, Cell{Rune: ' ', Role: role})
			c.set(col+1, y, Cell{Rune: ' ', Role: role})
		} else {
			c.set(col, y, Cell{Rune: r, Role: role})
			if w == 2 {
				c.set(col+1, y, Cell{Rune: 0, Role: role})
			}
		}
		written += w
	}
	return written
}

// set stores cell at x, y, blanking the other half of any wide rune it
// overwrites.
func (c *Canvas) set(x, y int, cell Cell) {
	if y < 0 || y >= c.height || x < 0 || x >= c.width {
		return
	}
	row := c.cells[y*c.width : (y+1)*c.width]
	if row[x].continuation() && x > 0 {
		row[x-1] = Cell{Rune: ' ', Role: row[x-1].Role}
	}
	if !row[x].continuation() && x+1 < c.width && row[x+1].continuation() {
		row[x+1] = Cell{Rune: ' ', Role: row[x+1].Role}
	}
	row[x] = cell
}

// Line returns the runes of row y without styling.
func (c *Canvas) Line(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	for _, cell := range c.cells[y*c.width : (y+1)*c.width] {
		if !cell.continuation() {
			b.WriteRune(cell.Rune)
		}
	}
	return b.String()
}

// String returns every row without styling, joined by newlines.
func (c *Canvas) String() string {
	lines := make([]string, c.height)
	for y := range lines {
		lines[y] = c.Line(y)
	}
	return strings.Join(lines, "\n")
}

// Render resolves roles through p and returns the styled rows joined by
// newlines. Consecutive cells sharing a role are styled as one run.
func (c *Canvas) Render(p theme.Palette) string {
	lines := make([]string, c.height)
	var b, run strings.Builder
	for y := 0; y < c.height; y++ {
		b.Reset()
		row := c.cells[y*c.width : (y+1)*c.width]
		for start := 0; start < len(row); {
			role := row[start].Role
			run.Reset()
			end := start
			for end < len(row) && row[end].Role == role {
				if !row[end].continuation() {
					run.WriteRune(row[end].Rune)
				}
				end++
			}
			b.WriteString(p.Style(role).Render(run.String()))
			start = end
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
