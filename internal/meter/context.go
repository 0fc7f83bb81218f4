package meter

import (
	"time"

	"github.com/sumant1122/perftop/internal/theme"
)

// DefaultGraphDelay is the graph sampling interval used when a
// RenderContext does not set one.
const DefaultGraphDelay = 1500 * time.Millisecond

// Surface receives role-tagged text. Put and PutN return the number of
// cells consumed, including cells clipped at the surface edge.
type Surface interface {
	Put(x, y int, role theme.Role, s string) int
	PutN(x, y int, role theme.Role, s string, n int) int
}

// RenderContext carries everything a draw call needs to know about the
// terminal it is drawing for. It is threaded explicitly through every draw
// so that switching glyphs or palettes never touches shared state.
type RenderContext struct {
	Glyphs *GlyphSet
	// Palette resolves roles when the surface is flushed.
	Palette theme.Palette
	// Monochrome switches bar fills to per-item markers.
	Monochrome   bool
	GraphDelay   time.Duration
	HeaderMargin bool
	Now          func() time.Time
}

func (c *RenderContext) glyphs() *GlyphSet {
	if c == nil || c.Glyphs == nil {
		return ASCIIGlyphs
	}
	return c.Glyphs
}

func (c *RenderContext) now() time.Time {
	if c == nil || c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *RenderContext) graphDelay() time.Duration {
	if c == nil || c.GraphDelay <= 0 {
		return DefaultGraphDelay
	}
	return c.GraphDelay
}

func (c *RenderContext) monochrome() bool {
	return c != nil && c.Monochrome
}

func (c *RenderContext) margin() int {
	if c != nil && c.HeaderMargin {
		return 2
	}
	return 0
}
