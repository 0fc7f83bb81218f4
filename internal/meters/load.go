package meters

import (
	"fmt"

	"github.com/sumant1122/perftop/internal/meter"
	"github.com/sumant1122/perftop/internal/theme"
)

type loadAverageMeter struct{ src Source }

func newLoadAverageClass(src Source) *meter.Class {
	return meter.MustClass(meter.Descriptor{
		Name:        "LoadAverage",
		UIName:      "Load average",
		Description: "Load averages: 1 minute, 5 minutes, 15 minutes",
		Caption:     "Load average: ",
		DefaultMode: meter.ModeText,
		MaxItems:    3,
		Total:       100,
		Attributes:  []theme.Role{theme.RoleLoadAverageOne, theme.RoleLoadAverageFive, theme.RoleLoadAverageFifteen},
		Overlapping: true,
	}, &loadAverageMeter{src: src})
}

// UpdateValues scales the bar to the number of CPUs: a one-minute load
// below 1 fills against 1, up to the CPU count against the CPU count,
// and beyond that against twice the CPU count.
func (lm *loadAverageMeter) UpdateValues(m *meter.Meter) string {
	snap := lm.src.Snapshot()
	if !snap.HasLoad {
		clear(m.Values)
		return "n/a"
	}
	copy(m.Values, snap.Load[:])
	cpus := float64(max(snap.CPUCount(), 1))
	switch {
	case m.Values[0] < 1:
		m.Total = 1
	case m.Values[0] < cpus:
		m.Total = cpus
	default:
		m.Total = 2 * cpus
	}
	return fmt.Sprintf("%.2f/%.2f/%.2f", m.Values[0], m.Values[1], m.Values[2])
}

func (lm *loadAverageMeter) Display(m *meter.Meter, out *meter.RichText) {
	if m.Text() == "n/a" {
		out.Append(theme.RoleMeterValueNotice, "n/a")
		return
	}
	out.Appendf(theme.RoleLoadAverageOne, "%.2f ", m.Values[0])
	out.Appendf(theme.RoleLoadAverageFive, "%.2f ", m.Values[1])
	out.Appendf(theme.RoleLoadAverageFifteen, "%.2f ", m.Values[2])
}

type loadMeter struct{ src Source }

func newLoadClass(src Source) *meter.Class {
	return meter.MustClass(meter.Descriptor{
		Name:        "Load",
		UIName:      "Load",
		Description: "Load: average of ready processes in the last minute",
		Caption:     "Load: ",
		DefaultMode: meter.ModeText,
		MaxItems:    1,
		Total:       1,
		Attributes:  []theme.Role{theme.RoleLoad},
	}, &loadMeter{src: src})
}

// UpdateValues grows the total to the highest load seen.
func (lm *loadMeter) UpdateValues(m *meter.Meter) string {
	snap := lm.src.Snapshot()
	if !snap.HasLoad {
		m.Values[0] = 0
		return "n/a"
	}
	m.Values[0] = snap.Load[0]
	m.Total = max(m.Total, m.Values[0])
	return fmt.Sprintf("%.2f", m.Values[0])
}

func (lm *loadMeter) Max(m *meter.Meter) float64 {
	return max(m.Total, m.Values[0], 1)
}

func (lm *loadMeter) Display(m *meter.Meter, out *meter.RichText) {
	role := theme.RoleLoad
	if m.Text() == "n/a" {
		role = theme.RoleMeterValueNotice
	}
	out.Append(role, m.Text())
}
