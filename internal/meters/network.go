package meters

import (
	"github.com/sumant1122/perftop/internal/meter"
	"github.com/sumant1122/perftop/internal/monitor"
	"github.com/sumant1122/perftop/internal/theme"
)

type networkMeter struct{ src Source }

// networkState remembers the highest combined rate seen, which is the
// meter's scale.
type networkState struct {
	peak float64
}

func newNetworkIOClass(src Source) *meter.Class {
	return meter.MustClass(meter.Descriptor{
		Name:         "NetworkIO",
		UIName:       "Network IO",
		Description:  "Network receive and transmit rates",
		Caption:      "Network: ",
		ShortCaption: "Net",
		DefaultMode:  meter.ModeGraph,
		MaxItems:     2,
		Total:        1,
		Attributes:   []theme.Role{theme.RoleNetRx, theme.RoleNetTx},
	}, &networkMeter{src: src})
}

func (nm *networkMeter) Init(m *meter.Meter) {
	m.SetData(&networkState{peak: 1})
}

func (nm *networkMeter) state(m *meter.Meter) *networkState {
	st, ok := m.Data().(*networkState)
	if !ok {
		st = &networkState{peak: 1}
		m.SetData(st)
	}
	return st
}

func (nm *networkMeter) UpdateValues(m *meter.Meter) string {
	snap := nm.src.Snapshot()
	if !snap.HasNet {
		clear(m.Values)
		return "n/a"
	}
	m.Values[0] = snap.NetRx
	m.Values[1] = snap.NetTx
	st := nm.state(m)
	st.peak = max(st.peak, snap.NetRx+snap.NetTx)
	return "rx:" + monitor.FormatRate(snap.NetRx) + " tx:" + monitor.FormatRate(snap.NetTx)
}

func (nm *networkMeter) Max(m *meter.Meter) float64 {
	return nm.state(m).peak
}

func (nm *networkMeter) Display(m *meter.Meter, out *meter.RichText) {
	if m.Text() == "n/a" {
		out.Append(theme.RoleMeterValueNotice, "n/a")
		return
	}
	out.Append(theme.RoleMeterText, "rx:")
	out.Append(theme.RoleNetRx, monitor.FormatRate(m.Values[0]))
	out.Append(theme.RoleMeterText, " tx:")
	out.Append(theme.RoleNetTx, monitor.FormatRate(m.Values[1]))
}
