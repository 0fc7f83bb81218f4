package meters

import (
	"fmt"

	"github.com/sumant1122/perftop/internal/meter"
	"github.com/sumant1122/perftop/internal/theme"
)

// Value slots of the CPU meter. Summary mode folds system, IRQ and soft
// IRQ into cpuKernel and steal plus guest into cpuIRQ.
const (
	cpuNice = iota
	cpuNormal
	cpuKernel
	cpuIRQ
	cpuSoftIRQ
	cpuSteal
	cpuGuest
	cpuIOWait
	cpuItems
)

const cpuSummaryItems = 4

type cpuMeter struct {
	src      Source
	settings Settings
}

// cpuState is the per-meter state kept between updates.
type cpuState struct {
	absent bool
	busy   float64
}

func newCPUClass(src Source, settings Settings) *meter.Class {
	return meter.MustClass(meter.Descriptor{
		Name:        "CPU",
		UIName:      "CPU",
		Description: "CPU average (param 0) or a single CPU (param n)",
		Caption:     "CPU",
		DefaultMode: meter.ModeBar,
		MaxItems:    cpuItems,
		Total:       100,
		Attributes: []theme.Role{
			theme.RoleCPUNice, theme.RoleCPUNormal, theme.RoleCPUKernel, theme.RoleCPUIRQ,
			theme.RoleCPUSoftIRQ, theme.RoleCPUSteal, theme.RoleCPUGuest, theme.RoleCPUIOWait,
		},
	}, &cpuMeter{src: src, settings: settings})
}

func (c *cpuMeter) Init(m *meter.Meter) {
	if m.Param() > 0 {
		m.Caption = fmt.Sprintf("%-3d", m.Param())
	} else {
		m.Caption = "Avg"
	}
	m.SetData(&cpuState{})
}

func (c *cpuMeter) Done(m *meter.Meter) {
	m.SetData(nil)
}

func (c *cpuMeter) state(m *meter.Meter) *cpuState {
	st, ok := m.Data().(*cpuState)
	if !ok {
		st = &cpuState{}
		m.SetData(st)
	}
	return st
}

func (c *cpuMeter) UpdateValues(m *meter.Meter) string {
	st := c.state(m)
	for i := range m.Values {
		m.Values[i] = 0
	}
	snap := c.src.Snapshot()
	if m.Param() > snap.CPUCount() || m.Param() >= len(snap.CPUs) {
		st.absent = true
		return "absent"
	}
	st.absent = false
	cpu := snap.CPUs[m.Param()]
	if !c.settings.AccountGuestInCPUMeter {
		cpu.Guest = 0
	}

	v := m.Values
	v[cpuNice] = cpu.Nice
	v[cpuNormal] = cpu.User
	if c.settings.DetailedCPUTime {
		m.SetItems(cpuItems)
		v[cpuKernel] = cpu.System
		v[cpuIRQ] = cpu.IRQ
		v[cpuSoftIRQ] = cpu.SoftIRQ
		v[cpuSteal] = cpu.Steal
		v[cpuGuest] = cpu.Guest
		v[cpuIOWait] = cpu.IOWait
	} else {
		m.SetItems(cpuSummaryItems)
		v[cpuKernel] = cpu.System + cpu.IRQ + cpu.SoftIRQ
		v[cpuIRQ] = cpu.Steal + cpu.Guest
	}
	st.busy = min(cpu.Busy(), 100)
	return fmt.Sprintf("%5.1f%%", st.busy)
}

// Attr colors the folded steal+guest slot as guest time in summary mode.
func (c *cpuMeter) Attr(m *meter.Meter, item int) theme.Role {
	if item == cpuIRQ && !c.settings.DetailedCPUTime {
		return theme.RoleCPUGuest
	}
	return m.Class().Attributes[item]
}

func (c *cpuMeter) Display(m *meter.Meter, out *meter.RichText) {
	if c.state(m).absent {
		out.Append(theme.RoleMeterValueNotice, "absent")
		return
	}
	v := m.Values
	field := func(label string, role theme.Role, value float64) {
		out.Append(theme.RoleMeterText, label)
		out.Appendf(role, "%5.1f%% ", value)
	}
	field(":", theme.RoleCPUNormal, v[cpuNormal])
	if c.settings.DetailedCPUTime {
		field("sy:", theme.RoleCPUKernel, v[cpuKernel])
		field("ni:", theme.RoleCPUNice, v[cpuNice])
		field("hi:", theme.RoleCPUIRQ, v[cpuIRQ])
		field("si:", theme.RoleCPUSoftIRQ, v[cpuSoftIRQ])
		field("st:", theme.RoleCPUSteal, v[cpuSteal])
		field("gu:", theme.RoleCPUGuest, v[cpuGuest])
		field("wa:", theme.RoleCPUIOWait, v[cpuIOWait])
		return
	}
	field("sys:", theme.RoleCPUKernel, v[cpuKernel])
	field("low:", theme.RoleCPUNice, v[cpuNice])
	field("vir:", theme.RoleCPUGuest, v[cpuIRQ])
}

// newCPUsClass builds a composite of per-CPU meters.
func newCPUsClass(name, uiName, description string, cpu *meter.Class, count func() int, r meter.Range, columns int) *meter.Class {
	return meter.MustClass(meter.CompositeDescriptor(name, uiName, description), &meter.Composite{
		Child:   cpu,
		Count:   count,
		Range:   r,
		Columns: columns,
	})
}
