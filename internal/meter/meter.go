// Package meter is the rendering engine shared by every header meter: a
// class/instance model with optional hooks, a fixed catalog of draw modes
// (bar, text, graph, LED) and composite meters that own child meters.
package meter

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/sumant1122/perftop/internal/debug"
	"github.com/sumant1122/perftop/internal/theme"
)

// TextBufferLen bounds the display text, terminator included.
const TextBufferLen = 256

// Meter is one instance of a class placed in the header.
type Meter struct {
	class *Class
	param int

	// Values holds MaxItems slots; only the first Items are drawn.
	Values       []float64
	Total        float64
	Caption      string
	ShortCaption string

	items  int
	mode   Mode
	height int
	draw   drawFunc
	text   string
	graph  *GraphData
	data   any
}

// New creates a meter, runs the class's Init hook and applies the default
// mode.
func New(c *Class, param int) *Meter {
	m := &Meter{
		class:        c,
		param:        param,
		Values:       make([]float64, c.MaxItems),
		Total:        c.Total,
		Caption:      c.Caption,
		ShortCaption: c.ShortCaption,
		items:        c.MaxItems,
	}
	if c.init != nil {
		c.init(m)
	}
	m.SetMode(ModeDefault)
	return m
}

func (m *Meter) Class() *Class { return m.class }
func (m *Meter) Param() int    { return m.param }
func (m *Meter) Mode() Mode    { return m.mode }
func (m *Meter) Height() int   { return m.height }
func (m *Meter) Items() int    { return m.items }
func (m *Meter) Text() string  { return m.text }

// SetHeight is for ModeUpdater hooks of custom classes.
func (m *Meter) SetHeight(h int) { m.height = h }

// SetItems changes how many values are active.
func (m *Meter) SetItems(n int) {
	debug.Assert(n >= 0 && n <= len(m.Values), "meter: SetItems out of range")
	m.items = min(max(n, 0), len(m.Values))
}

// Data returns the class-private state installed by the class's hooks.
func (m *Meter) Data() any        { return m.data }
func (m *Meter) SetData(data any) { m.data = data }

// Name is the class name followed by the parameter when it is non-zero,
// in the form accepted by the header configuration.
func (m *Meter) Name() string {
	if m.param == 0 {
		return m.class.Name
	}
	return m.class.Name + "(" + strconv.Itoa(m.param) + ")"
}

// Max is the value drawn as a full bar or graph column.
func (m *Meter) Max() float64 {
	if m.class.max != nil {
		return m.class.max(m)
	}
	return m.Total
}

// Attr is the role of value item i.
func (m *Meter) Attr(i int) theme.Role {
	if m.class.attr != nil {
		return m.class.attr(m, i)
	}
	if i >= 0 && i < len(m.class.Attributes) {
		return m.class.Attributes[i]
	}
	return theme.RoleMeterValue
}

// Init re-runs the class's Init hook. Composites use it to rebuild their
// children.
func (m *Meter) Init() {
	if m.class.init != nil {
		m.class.init(m)
	}
}

// SetMode switches how the meter is drawn. Setting the current mode again
// is a no-op, except for ModeDefault which always reapplies. Any graph
// history is discarded.
func (m *Meter) SetMode(mode Mode) {
	if mode != ModeDefault && mode == m.mode {
		return
	}
	if mode == ModeDefault {
		mode = m.class.DefaultMode
		if mode == ModeCustom {
			mode = ModeBar
		}
	}
	debug.Assert(mode > ModeDefault && mode < ModeCustom, "meter: SetMode with a non-drawable mode")

	m.graph = nil
	m.mode = mode
	if m.class.DefaultMode == ModeCustom {
		m.draw = m.class.draw
		m.height = modes[mode].Height
		if m.class.updateMode != nil {
			m.class.updateMode(m, mode)
		}
		return
	}
	m.draw = modes[mode].draw
	m.height = modes[mode].Height
}

// Update refreshes the values through the class and stores the display
// text, truncated to TextBufferLen-1 bytes on a rune boundary.
func (m *Meter) Update() {
	text := m.class.update(m)
	if len(text) >= TextBufferLen {
		cut := TextBufferLen - 1
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	m.text = text
}

// Draw renders the meter into s with its top-left corner at x, y and w
// columns of width.
func (m *Meter) Draw(ctx *RenderContext, s Surface, x, y, w int) {
	if m.draw != nil {
		m.draw(m, ctx, s, x, y, w)
	}
}

// Destroy runs the class's Done hook and releases the meter's buffers. It
// is safe on a nil meter and the buffers are released even if the hook
// panics.
func (m *Meter) Destroy() {
	if m == nil {
		return
	}
	defer func() {
		m.graph = nil
		m.data = nil
		m.Values = nil
		m.items = 0
		m.text = ""
		m.draw = nil
	}()
	if m.class.done != nil {
		m.class.done(m)
	}
}

// Display writes the meter's display text into out.
func (m *Meter) Display(out *RichText) {
	if m.class.display != nil {
		m.class.display(m, out)
		return
	}
	out.Append(theme.RoleMeterValue, m.text)
}

func (m *Meter) barCaption() string {
	if m.ShortCaption != "" {
		return m.ShortCaption
	}
	return m.Caption
}

// sample is the fraction of Max covered by the active values, in [0, 1].
func (m *Meter) sample() float64 {
	sum := 0.0
	for _, v := range m.Values[:m.items] {
		sum += v
	}
	v := sum / m.Max()
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return min(v, 1)
}
