package meter

import (
	"math"
	"time"

	"github.com/sumant1122/perftop/internal/theme"
)

// GraphBufferLen is the number of samples a graph remembers.
const GraphBufferLen = 256

const graphCaptionLen = 3

// GraphData is the per-meter graph history. It is created on the first
// graph draw and discarded whenever the meter's mode changes.
type GraphData struct {
	Values []float64
	// Next is the earliest time a new sample is taken.
	Next time.Time
}

func newGraphData() *GraphData {
	return &GraphData{Values: make([]float64, GraphBufferLen)}
}

// sample shifts the history left and appends v, unless the graph delay
// since the previous sample has not elapsed yet.
func (g *GraphData) sample(now time.Time, delay time.Duration, v func() float64) bool {
	if now.Before(g.Next) {
		return false
	}
	g.Next = now.Add(delay)
	copy(g.Values, g.Values[1:])
	g.Values[len(g.Values)-1] = v()
	return true
}

func drawGraph(m *Meter, ctx *RenderContext, s Surface, x, y, w int) {
	if m.graph == nil {
		m.graph = newGraphData()
	}
	data := m.graph
	g := ctx.glyphs()

	s.PutN(x, y, theme.RoleMeterText, m.barCaption(), graphCaptionLen)
	x += graphCaptionLen
	w -= graphCaptionLen

	data.sample(ctx.now(), ctx.graphDelay(), m.sample)

	// Each column shows two consecutive samples, newest at the right edge.
	n := len(data.Values)
	pix := g.PixPerRow * GraphHeight
	i, k := n-w*2+2, 0
	if i < 0 {
		k = -i / 2
		i = 0
	}
	for ; i < n-1; i, k = i+2, k+1 {
		v1 := graphPixels(data.Values[i], pix)
		v2 := graphPixels(data.Values[i+1], pix)
		role := theme.RoleGraph1
		for line := 0; line < GraphHeight; line++ {
			base := g.PixPerRow * (GraphHeight - 1 - line)
			l1 := min(max(v1-base, 0), g.PixPerRow)
			l2 := min(max(v2-base, 0), g.PixPerRow)
			s.Put(x+k, y+line, role, g.GraphDots[l1*(g.PixPerRow+1)+l2])
			role = theme.RoleGraph2
		}
	}
}

// graphPixels scales a [0, 1] sample to lit sub-rows. Every sample lights
// at least the bottom sub-row.
func graphPixels(v float64, pix int) int {
	return min(max(int(math.Round(v*float64(pix))), 1), pix)
}
