package meter

import (
	"errors"
	"fmt"

	"github.com/sumant1122/perftop/internal/theme"
)

// ErrInvalidClass is wrapped by every NewClass validation failure.
var ErrInvalidClass = errors.New("invalid meter class")

// Descriptor holds the static data of a meter class.
type Descriptor struct {
	Name        string
	UIName      string
	Description string
	Caption     string
	// ShortCaption is the three-cell caption used by bar and graph modes.
	// The caption is truncated when it is empty.
	ShortCaption string
	DefaultMode  Mode
	// Modes restricts the modes a user may select. Nil means all of
	// CatalogModes.
	Modes       []Mode
	MaxItems    int
	Total       float64
	Attributes  []theme.Role
	Overlapping bool
}

// Behavior is the one hook every class provides: refresh the meter's
// values and return its display text.
type Behavior interface {
	UpdateValues(m *Meter) string
}

// The optional hooks. A Behavior implementing any of these overrides the
// corresponding default.
type (
	Initializer interface{ Init(m *Meter) }
	Finalizer   interface{ Done(m *Meter) }
	Drawer      interface {
		Draw(m *Meter, ctx *RenderContext, s Surface, x, y, w int)
	}
	ModeUpdater interface{ UpdateMode(m *Meter, mode Mode) }
	MaxGetter   interface{ Max(m *Meter) float64 }
	AttrGetter  interface {
		Attr(m *Meter, item int) theme.Role
	}
	Displayer interface{ Display(m *Meter, out *RichText) }
)

// Class is a validated descriptor with its hooks resolved. Classes are
// immutable and shared by every meter created from them.
type Class struct {
	Descriptor

	update     func(*Meter) string
	init       func(*Meter)
	done       func(*Meter)
	draw       drawFunc
	updateMode func(*Meter, Mode)
	max        func(*Meter) float64
	attr       func(*Meter, int) theme.Role
	display    func(*Meter, *RichText)
}

// NewClass validates d and binds the hooks b implements.
func NewClass(d Descriptor, b Behavior) (*Class, error) {
	fail := func(format string, args ...any) (*Class, error) {
		return nil, fmt.Errorf("%w %q: %s", ErrInvalidClass, d.Name, fmt.Sprintf(format, args...))
	}
	if d.Name == "" {
		return fail("missing name")
	}
	if b == nil {
		return fail("missing behavior")
	}
	if d.MaxItems < 1 || d.MaxItems > MaxBarItems {
		return fail("max items %d outside 1..%d", d.MaxItems, MaxBarItems)
	}
	if d.DefaultMode == ModeDefault {
		d.DefaultMode = ModeBar
	}
	if d.DefaultMode < ModeBar || d.DefaultMode > ModeCustom {
		return fail("default mode %s", d.DefaultMode)
	}
	for _, mode := range d.Modes {
		if _, ok := Info(mode); !ok {
			return fail("unsupported mode %s", mode)
		}
	}
	if d.UIName == "" {
		d.UIName = d.Name
	}

	c := &Class{Descriptor: d, update: b.UpdateValues}
	if h, ok := b.(Initializer); ok {
		c.init = h.Init
	}
	if h, ok := b.(Finalizer); ok {
		c.done = h.Done
	}
	if h, ok := b.(Drawer); ok {
		c.draw = h.Draw
	}
	if h, ok := b.(ModeUpdater); ok {
		c.updateMode = h.UpdateMode
	}
	if h, ok := b.(MaxGetter); ok {
		c.max = h.Max
	}
	if h, ok := b.(AttrGetter); ok {
		c.attr = h.Attr
	}
	if h, ok := b.(Displayer); ok {
		c.display = h.Display
	}

	if d.DefaultMode == ModeCustom && c.draw == nil {
		return fail("custom default mode without a Draw hook")
	}
	if c.attr == nil && len(d.Attributes) < d.MaxItems {
		return fail("%d attributes for %d items", len(d.Attributes), d.MaxItems)
	}
	return c, nil
}

// MustClass is NewClass for package-level class tables.
func MustClass(d Descriptor, b Behavior) *Class {
	c, err := NewClass(d, b)
	if err != nil {
		panic(err)
	}
	return c
}

// SupportsMode reports whether a user may put meters of this class in mode.
func (c *Class) SupportsMode(mode Mode) bool {
	if _, ok := Info(mode); !ok {
		return false
	}
	if c.Modes == nil {
		return true
	}
	for _, m := range c.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// NextMode returns the supported mode after current, wrapping around.
func (c *Class) NextMode(current Mode) Mode {
	mode := current
	for range CatalogModes {
		mode = mode.Next()
		if c.SupportsMode(mode) {
			return mode
		}
	}
	return current
}
