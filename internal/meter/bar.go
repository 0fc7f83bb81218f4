package meter

import (
	"math"
	"strings"

	"github.com/sumant1122/perftop/internal/theme"
)

const barCaptionLen = 3

// barBlock is the run of interior columns assigned to one value item.
type barBlock struct {
	item   int
	start  int
	length int
}

// blockLength is the number of columns item value v covers out of width
// when total is a full bar. Any positive value gets at least one column.
func blockLength(v, total float64, width int) int {
	if math.IsNaN(v) || v <= 0 || !(total > 0) {
		return 0
	}
	v = min(v, total)
	return int(math.Ceil(v / total * float64(width)))
}

// allocateBar splits width columns among values. Sequential bars lay the
// blocks end to end, clamping at the right border. Overlapping bars draw
// each block from the left edge, so items are visited smallest first and
// each one only claims the columns past the previous extent.
func allocateBar(values []float64, total float64, width int, overlapping bool) []barBlock {
	blocks := make([]barBlock, 0, len(values))
	if !overlapping {
		offset := 0
		for i, v := range values {
			next := min(offset+blockLength(v, total, width), width)
			blocks = append(blocks, barBlock{item: i, start: offset, length: next - offset})
			offset = next
		}
		return blocks
	}
	extent := 0
	for _, i := range ascendingOrder(values) {
		next := max(min(blockLength(values[i], total, width), width), extent)
		blocks = append(blocks, barBlock{item: i, start: extent, length: next - extent})
		extent = next
	}
	return blocks
}

// ascendingOrder returns the indices of values sorted by value. Equal
// values keep their index order.
func ascendingOrder(values []float64) []int {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	for i := range order {
		least := i
		for j := i + 1; j < len(order); j++ {
			if values[order[j]] < values[order[least]] {
				least = j
			}
		}
		picked := order[least]
		copy(order[i+1:least+1], order[i:least])
		order[i] = picked
	}
	return order
}

func drawBar(m *Meter, ctx *RenderContext, s Surface, x, y, w int) {
	g := ctx.glyphs()
	s.PutN(x, y, theme.RoleMeterText, m.barCaption(), barCaptionLen)
	x += barCaptionLen
	interior := w - barCaptionLen - 2

	s.Put(x, y, theme.RoleBarBorder, "[")
	s.Put(x+1+max(interior, 0), y, theme.RoleBarBorder, "]")
	if interior < 1 {
		return
	}
	x++

	// The display text is right-aligned in the interior and the fill only
	// replaces blank cells, so the text shows through the bar.
	cells := []rune(strings.Repeat(" ", interior))
	text := []rune(m.text)
	if len(text) > interior {
		text = text[:interior]
	}
	copy(cells[interior-len(text):], text)

	blocks := allocateBar(m.Values[:m.items], m.Max(), interior, m.class.Overlapping)
	owned := make([]bool, interior)
	for _, b := range blocks {
		fill := []rune(g.barGlyph(b.item, ctx.monochrome()))[0]
		for j := b.start; j < b.start+b.length; j++ {
			if owned[j] {
				continue
			}
			owned[j] = true
			if cells[j] == ' ' {
				cells[j] = fill
			}
		}
	}

	offset := 0
	for _, b := range blocks {
		if b.length == 0 {
			continue
		}
		s.Put(x+b.start, y, m.Attr(b.item), string(cells[b.start:b.start+b.length]))
		offset = max(offset, b.start+b.length)
	}
	if offset < interior {
		s.Put(x+offset, y, theme.RoleBarShadow, string(cells[offset:]))
	}
}
