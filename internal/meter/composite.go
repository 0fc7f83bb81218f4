package meter

import (
	"github.com/sumant1122/perftop/internal/theme"
	"github.com/sumant1122/perftop/internal/vector"
)

// Range selects the slice of count children a composite shows, returning
// the index of the first one and how many to show.
type Range func(count int) (start, n int)

func AllRange(count int) (int, int)        { return 0, count }
func FirstHalfRange(count int) (int, int)  { return 0, (count + 1) / 2 }
func SecondHalfRange(count int) (int, int) { return (count + 1) / 2, count / 2 }

// Composite is the behavior of a meter that owns one child meter per
// counted resource (e.g. one CPU meter per core) and draws them stacked in
// one or two columns. Child parameters are 1-based.
type Composite struct {
	Child   *Class
	Count   func() int
	Range   Range
	Columns int
}

type compositeData struct {
	count    int
	children *vector.Vector[*Meter]
}

// CompositeDescriptor fills in the fields every composite class shares.
func CompositeDescriptor(name, uiName, description string) Descriptor {
	return Descriptor{
		Name:        name,
		UIName:      uiName,
		Description: description,
		DefaultMode: ModeCustom,
		MaxItems:    1,
		Attributes:  []theme.Role{theme.RoleMeterText},
	}
}

// Children returns the child meters of a composite, or nil for any other
// meter.
func Children(m *Meter) []*Meter {
	data, ok := m.data.(*compositeData)
	if !ok {
		return nil
	}
	return data.children.Items()
}

func (c *Composite) rangeOf(count int) (int, int) {
	if c.Range == nil {
		return AllRange(count)
	}
	return c.Range(count)
}

func (c *Composite) Init(m *Meter) {
	data, ok := m.data.(*compositeData)
	if !ok {
		data = &compositeData{count: c.Count(), children: vector.NewOwning[*Meter](0)}
		m.data = data
	}
	start, n := c.rangeOf(data.count)
	for i := 0; i < n; i++ {
		if i >= data.children.Len() || data.children.Get(i) == nil {
			data.children.Set(i, New(c.Child, start+i+1))
		}
		data.children.Get(i).Init()
	}
	c.layout(m, m.mode)
}

func (c *Composite) Done(m *Meter) {
	if data, ok := m.data.(*compositeData); ok {
		data.children.Prune()
	}
	m.data = nil
}

// UpdateValues refreshes every child. The children are rebuilt when the
// counted resource changes size.
func (c *Composite) UpdateValues(m *Meter) string {
	data, ok := m.data.(*compositeData)
	if !ok {
		return ""
	}
	if count := c.Count(); count != data.count {
		data.children.Prune()
		data.count = count
		c.Init(m)
		for _, child := range data.children.Items() {
			child.SetMode(m.mode)
		}
		c.layout(m, m.mode)
	}
	for _, child := range data.children.Items() {
		child.Update()
	}
	return ""
}

func (c *Composite) UpdateMode(m *Meter, mode Mode) {
	if data, ok := m.data.(*compositeData); ok {
		for _, child := range data.children.Items() {
			child.SetMode(mode)
		}
	}
	c.layout(m, mode)
}

func (c *Composite) layout(m *Meter, mode Mode) {
	info, ok := Info(mode)
	if !ok {
		info = modes[ModeBar]
	}
	n := 0
	if data, ok := m.data.(*compositeData); ok {
		n = data.children.Len()
	}
	if c.Columns == 2 {
		n = (n + 1) / 2
	}
	m.height = info.Height * n
}

func (c *Composite) Draw(m *Meter, ctx *RenderContext, s Surface, x, y, w int) {
	data, ok := m.data.(*compositeData)
	if !ok {
		return
	}
	children := data.children.Items()
	if c.Columns != 2 {
		for _, child := range children {
			child.Draw(ctx, s, x, y, w)
			y += child.Height()
		}
		return
	}

	pad := ctx.margin()
	colWidth := (w - pad) / 2
	rows := (len(children) + 1) / 2
	top := y
	for _, child := range children[:rows] {
		child.Draw(ctx, s, x, y, colWidth)
		y += child.Height()
	}
	y = top
	for _, child := range children[rows:] {
		child.Draw(ctx, s, x+(w-1)/2+1+pad/2, y, colWidth)
		y += child.Height()
	}
}
