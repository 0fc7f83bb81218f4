// Package header lays meters out in the two columns above the rest of the
// screen.
package header

import (
	"errors"
	"fmt"

	"github.com/sumant1122/perftop/internal/config"
	"github.com/sumant1122/perftop/internal/logger"
	"github.com/sumant1122/perftop/internal/meter"
	"github.com/sumant1122/perftop/internal/meters"
	"github.com/sumant1122/perftop/internal/vector"
)

const Columns = config.Columns

// Header owns the meters of each column.
type Header struct {
	registry *meters.Registry
	columns  [Columns]*vector.Vector[*meter.Meter]
	margin   bool
	log      logger.Logger
}

func New(registry *meters.Registry, margin bool, log logger.Logger) *Header {
	h := &Header{registry: registry, margin: margin, log: log}
	for i := range h.columns {
		h.columns[i] = vector.NewOwning[*meter.Meter](0)
	}
	return h
}

// Populate adds the meters named in layout. Entries that cannot be
// created are skipped and reported together in the returned error.
func (h *Header) Populate(layout []config.Column) error {
	var errs []error
	for col, c := range layout {
		if col >= Columns {
			break
		}
		for _, entry := range c.Meters {
			mode, err := meter.ParseMode(entry.Mode)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", entry.Name, err))
			}
			if _, err := h.Add(col, entry.Name, mode); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Add appends a meter created from a name such as "CPU(2)" to column col.
// ModeDefault keeps the class's default mode, as does a mode the class
// does not support.
func (h *Header) Add(col int, name string, mode meter.Mode) (*meter.Meter, error) {
	m, err := h.registry.New(name)
	if err != nil {
		return nil, err
	}
	if mode != meter.ModeDefault {
		if m.Class().SupportsMode(mode) {
			m.SetMode(mode)
		} else {
			h.log.Warn("%s does not support %s mode", name, mode)
		}
	}
	h.columns[col].Add(m)
	return m, nil
}

func (h *Header) Len(col int) int {
	return h.columns[col].Len()
}

func (h *Header) Meter(col, i int) *meter.Meter {
	return h.columns[col].Get(i)
}

// Meters returns the meters of column col, top to bottom.
func (h *Header) Meters(col int) []*meter.Meter {
	return h.columns[col].Items()
}

func (h *Header) Remove(col, i int) {
	h.columns[col].Remove(i)
}

func (h *Header) MoveUp(col, i int)       { h.columns[col].MoveUp(i) }
func (h *Header) MoveDown(col, i int)     { h.columns[col].MoveDown(i) }
func (h *Header) MoveToTop(col, i int)    { h.columns[col].MoveToTop(i) }
func (h *Header) MoveToBottom(col, i int) { h.columns[col].MoveToBottom(i) }

// MoveToColumn moves meter i of col to the same row of the other column,
// or to its end when that column is shorter. It returns the new position.
func (h *Header) MoveToColumn(col, i int) (int, int) {
	other := (col + 1) % Columns
	m := h.columns[col].Take(i)
	h.columns[other].Insert(i, m)
	return other, min(i, h.columns[other].Len()-1)
}

// SetMargin toggles the blank border around the header.
func (h *Header) SetMargin(margin bool) { h.margin = margin }
func (h *Header) Margin() bool          { return h.margin }

func (h *Header) pad() int {
	if h.margin {
		return 2
	}
	return 0
}

// Update refreshes every meter.
func (h *Header) Update() {
	for _, col := range h.columns {
		for _, m := range col.Items() {
			m.Update()
		}
	}
}

// Height is the height of the tallest column plus the margin.
func (h *Header) Height() int {
	tallest := 0
	for _, col := range h.columns {
		height := 0
		for _, m := range col.Items() {
			height += m.Height()
		}
		tallest = max(tallest, height)
	}
	return tallest + h.pad()
}

// Draw renders both columns across width cells.
func (h *Header) Draw(ctx *meter.RenderContext, s meter.Surface, width int) {
	pad := h.pad()
	colWidth := width/2 - (pad*2 - 1) - 1
	x := pad
	for _, col := range h.columns {
		y := pad / 2
		for _, m := range col.Items() {
			m.Draw(ctx, s, x, y, colWidth)
			y += m.Height()
		}
		x += width / 2
	}
}

// Layout describes the current meters in configuration form.
func (h *Header) Layout() []config.Column {
	layout := make([]config.Column, Columns)
	for i, col := range h.columns {
		for _, m := range col.Items() {
			entry := config.MeterEntry{Name: m.Name()}
			if m.Mode() != m.Class().DefaultMode {
				entry.Mode = m.Mode().String()
			}
			layout[i].Meters = append(layout[i].Meters, entry)
		}
	}
	return layout
}

// Destroy destroys every meter.
func (h *Header) Destroy() {
	for _, col := range h.columns {
		col.Prune()
	}
}
