package meters

import (
	"github.com/sumant1122/perftop/internal/meter"
	"github.com/sumant1122/perftop/internal/theme"
)

type memoryMeter struct{ src Source }

func newMemoryClass(src Source) *meter.Class {
	return meter.MustClass(meter.Descriptor{
		Name:        "Memory",
		UIName:      "Memory",
		Description: "Memory used, buffers and cache",
		Caption:     "Mem",
		DefaultMode: meter.ModeBar,
		MaxItems:    3,
		Total:       100,
		Attributes:  []theme.Role{theme.RoleMemoryUsed, theme.RoleMemoryBuffers, theme.RoleMemoryCache},
	}, &memoryMeter{src: src})
}

func (mm *memoryMeter) UpdateValues(m *meter.Meter) string {
	snap := mm.src.Snapshot()
	if !snap.HasMemory {
		clear(m.Values)
		return "n/a"
	}
	mem := snap.Memory
	m.Total = float64(mem.Total)
	m.Values[0] = float64(mem.Used)
	m.Values[1] = float64(mem.Buffers)
	m.Values[2] = float64(mem.Cached)
	return meter.HumanUnit(mem.Used) + "/" + meter.HumanUnit(mem.Total)
}

func (mm *memoryMeter) Display(m *meter.Meter, out *meter.RichText) {
	if m.Text() == "n/a" {
		out.Append(theme.RoleMeterValueNotice, "n/a")
		return
	}
	out.Append(theme.RoleMeterText, ":")
	out.Append(theme.RoleMeterValue, meter.HumanUnitFloat(m.Total))
	out.Append(theme.RoleMeterText, " used:")
	out.Append(theme.RoleMemoryUsed, meter.HumanUnitFloat(m.Values[0]))
	out.Append(theme.RoleMeterText, " buffers:")
	out.Append(theme.RoleMemoryBuffers, meter.HumanUnitFloat(m.Values[1]))
	out.Append(theme.RoleMeterText, " cache:")
	out.Append(theme.RoleMemoryCache, meter.HumanUnitFloat(m.Values[2]))
}

type swapMeter struct{ src Source }

func newSwapClass(src Source) *meter.Class {
	return meter.MustClass(meter.Descriptor{
		Name:        "Swap",
		UIName:      "Swap",
		Description: "Swap used",
		Caption:     "Swp",
		DefaultMode: meter.ModeBar,
		MaxItems:    1,
		Total:       100,
		Attributes:  []theme.Role{theme.RoleSwap},
	}, &swapMeter{src: src})
}

func (sm *swapMeter) UpdateValues(m *meter.Meter) string {
	snap := sm.src.Snapshot()
	if !snap.HasMemory {
		m.Values[0] = 0
		return "n/a"
	}
	mem := snap.Memory
	m.Total = float64(mem.SwapTotal)
	m.Values[0] = float64(mem.SwapUsed)
	return meter.HumanUnit(mem.SwapUsed) + "/" + meter.HumanUnit(mem.SwapTotal)
}

func (sm *swapMeter) Display(m *meter.Meter, out *meter.RichText) {
	if m.Text() == "n/a" {
		out.Append(theme.RoleMeterValueNotice, "n/a")
		return
	}
	out.Append(theme.RoleMeterText, ":")
	out.Append(theme.RoleMeterValue, meter.HumanUnitFloat(m.Total))
	out.Append(theme.RoleMeterText, " used:")
	out.Append(theme.RoleSwap, meter.HumanUnitFloat(m.Values[0]))
}
