package meter

import "github.com/sumant1122/perftop/internal/theme"

func drawText(m *Meter, ctx *RenderContext, s Surface, x, y, w int) {
	if w <= 0 {
		return
	}
	n := s.PutN(x, y, theme.RoleMeterText, m.Caption, w)
	var out RichText
	m.Display(&out)
	out.print(s, x+n, y, w-n)
}
