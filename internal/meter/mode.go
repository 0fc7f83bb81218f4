package meter

import (
	"fmt"
	"strings"
)

// Mode selects how a meter is drawn.
type Mode int

const (
	// ModeDefault asks SetMode for the class's default mode. It is always
	// re-applied, even when the meter is already in that mode.
	ModeDefault Mode = iota
	ModeBar
	ModeText
	ModeGraph
	ModeLED
	// ModeCustom marks a class that draws itself instead of using the
	// catalog. It is only meaningful as a class default.
	ModeCustom
)

const (
	GraphHeight = 4
	LEDHeight   = 3
)

// ModeInfo is an entry of the fixed mode catalog.
type ModeInfo struct {
	Height int
	Name   string
	draw   drawFunc
}

type drawFunc func(m *Meter, ctx *RenderContext, s Surface, x, y, w int)

var modes = [ModeCustom]ModeInfo{
	ModeBar:   {Height: 1, Name: "Bar", draw: drawBar},
	ModeText:  {Height: 1, Name: "Text", draw: drawText},
	ModeGraph: {Height: GraphHeight, Name: "Graph", draw: drawGraph},
	ModeLED:   {Height: LEDHeight, Name: "LED", draw: drawLED},
}

// CatalogModes lists the drawable modes in cycling order.
var CatalogModes = []Mode{ModeBar, ModeText, ModeGraph, ModeLED}

// Info returns the catalog entry for a drawable mode.
func Info(mode Mode) (ModeInfo, bool) {
	if mode <= ModeDefault || mode >= ModeCustom {
		return ModeInfo{}, false
	}
	return modes[mode], true
}

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeCustom:
		return "custom"
	}
	if info, ok := Info(m); ok {
		return strings.ToLower(info.Name)
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts the lower-case names produced by String. An empty
// string parses as ModeDefault.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return ModeDefault, nil
	case "bar":
		return ModeBar, nil
	case "text":
		return ModeText, nil
	case "graph":
		return ModeGraph, nil
	case "led":
		return ModeLED, nil
	}
	return ModeDefault, fmt.Errorf("unknown meter mode %q", s)
}

// Next returns the mode after m in CatalogModes, wrapping around.
func (m Mode) Next() Mode {
	for i, c := range CatalogModes {
		if c == m {
			return CatalogModes[(i+1)%len(CatalogModes)]
		}
	}
	return CatalogModes[0]
}
