package meter

// MaxBarItems is the number of per-item markers available to monochrome
// bars. Classes may not declare more items than this.
const MaxBarItems = 8

// GlyphSet is one of the two interchangeable glyph tables. ASCIIGlyphs is
// used on terminals without a UTF-8 locale.
type GlyphSet struct {
	Name       string
	BarFill    string
	BarMarkers [MaxBarItems]string
	// GraphDots is indexed by left*(PixPerRow+1)+right, where left and
	// right are the sub-rows lit in the two samples of one column.
	GraphDots []string
	PixPerRow int
	// LEDDigits[row][digit] is one 4-column slice of a digit.
	LEDDigits [LEDHeight][10]string
	// LEDTextRow is the row offset used for captions and non-digits.
	LEDTextRow int
}

var barMarkers = [MaxBarItems]string{"|", "#", "*", "@", "$", "%", "&", "."}

var ASCIIGlyphs = &GlyphSet{
	Name:       "ascii",
	BarFill:    "|",
	BarMarkers: barMarkers,
	GraphDots: []string{
		" ", ".", ":",
		".", ".", ":",
		":", ":", ":",
	},
	PixPerRow: 2,
	LEDDigits: [LEDHeight][10]string{
		{" __ ", "    ", " __ ", " __ ", "    ", " __ ", " __ ", " __ ", " __ ", " __ "},
		{"|  |", "   |", " __|", " __|", "|__|", "|__ ", "|__ ", "   |", "|__|", "|__|"},
		{"|__|", "   |", "|__ ", " __|", "   |", " __|", "|__|", "   |", "|__|", " __|"},
	},
	LEDTextRow: 2,
}

var UTF8Glyphs = &GlyphSet{
	Name:       "utf8",
	BarFill:    "|",
	BarMarkers: barMarkers,
	GraphDots: []string{
		" ", "⢀", "⢠", "⢰", "⢸",
		"⡀", "⣀", "⣠", "⣰", "⣸",
		"⡄", "⣄", "⣤", "⣴", "⣼",
		"⡆", "⣆", "⣦", "⣶", "⣾",
		"⡇", "⣇", "⣧", "⣷", "⣿",
	},
	PixPerRow: 4,
	LEDDigits: [LEDHeight][10]string{
		{"┌──┐", "  ┐ ", "╶──┐", "╶──┐", "╷  ╷", "┌──╴", "┌──╴", "╶──┐", "┌──┐", "┌──┐"},
		{"│  │", "  │ ", "┌──┘", " ──┤", "└──┤", "└──┐", "├──┐", "   │", "├──┤", "└──┤"},
		{"└──┘", "  ╵ ", "└──╴", "╶──┘", "   ╵", "╶──┘", "└──┘", "   ╵", "└──┘", "╶──┘"},
	},
	LEDTextRow: 1,
}

func (g *GlyphSet) barGlyph(item int, monochrome bool) string {
	if monochrome && item >= 0 && item < MaxBarItems {
		return g.BarMarkers[item]
	}
	return g.BarFill
}
