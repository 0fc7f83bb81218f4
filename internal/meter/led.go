package meter

import "github.com/sumant1122/perftop/internal/theme"

const ledDigitWidth = 4

func drawLED(m *Meter, ctx *RenderContext, s Surface, x, y, w int) {
	g := ctx.glyphs()
	textRow := y + g.LEDTextRow
	right := x + w

	var out RichText
	m.Display(&out)

	xx := x + s.PutN(x, textRow, theme.RoleLED, m.Caption, max(w, 0))
	for _, r := range out.String() {
		if r >= '0' && r <= '9' {
			if xx+ledDigitWidth > right {
				return
			}
			for row := 0; row < LEDHeight; row++ {
				s.Put(xx, y+row, theme.RoleLED, g.LEDDigits[row][r-'0'])
			}
			xx += ledDigitWidth
			continue
		}
		if xx >= right {
			return
		}
		s.Put(xx, textRow, theme.RoleLED, string(r))
		xx++
	}
}
