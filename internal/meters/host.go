package meters

import (
	"time"

	"github.com/sumant1122/perftop/internal/meter"
	"github.com/sumant1122/perftop/internal/theme"
)

type hostnameMeter struct{ src Source }

func newHostnameClass(src Source) *meter.Class {
	return meter.MustClass(meter.Descriptor{
		Name:        "Hostname",
		UIName:      "Hostname",
		Description: "Hostname",
		Caption:     "Hostname: ",
		DefaultMode: meter.ModeText,
		MaxItems:    1,
		Total:       100,
		Attributes:  []theme.Role{theme.RoleHostname},
		Modes:       []meter.Mode{meter.ModeText, meter.ModeLED},
	}, &hostnameMeter{src: src})
}

func (hm *hostnameMeter) UpdateValues(m *meter.Meter) string {
	if name := hm.src.Snapshot().Hostname; name != "" {
		return name
	}
	return "(unknown)"
}

func (hm *hostnameMeter) Display(m *meter.Meter, out *meter.RichText) {
	out.Append(theme.RoleHostname, m.Text())
}

type clockMeter struct{ now func() time.Time }

func newClockClass(now func() time.Time) *meter.Class {
	return meter.MustClass(meter.Descriptor{
		Name:        "Clock",
		UIName:      "Clock",
		Description: "Clock: current system time",
		Caption:     "Time: ",
		DefaultMode: meter.ModeText,
		MaxItems:    1,
		Total:       1440,
		Attributes:  []theme.Role{theme.RoleClock},
	}, &clockMeter{now: now})
}

// UpdateValues fills the bar with the minutes elapsed today.
func (cm *clockMeter) UpdateValues(m *meter.Meter) string {
	t := cm.now()
	m.Values[0] = float64(t.Hour()*60 + t.Minute())
	return t.Format("15:04:05")
}

func (cm *clockMeter) Display(m *meter.Meter, out *meter.RichText) {
	out.Append(theme.RoleClock, m.Text())
}
