package meters

import (
	"fmt"

	"github.com/sumant1122/perftop/internal/meter"
	"github.com/sumant1122/perftop/internal/monitor"
	"github.com/sumant1122/perftop/internal/theme"
)

type batteryMeter struct{ src Source }

func newBatteryClass(src Source) *meter.Class {
	return meter.MustClass(meter.Descriptor{
		Name:         "Battery",
		UIName:       "Battery",
		Description:  "Battery charge and power source",
		Caption:      "Battery: ",
		ShortCaption: "Bat",
		DefaultMode:  meter.ModeText,
		MaxItems:     1,
		Total:        100,
		Attributes:   []theme.Role{theme.RoleBattery},
	}, &batteryMeter{src: src})
}

// UpdateValues uses the long power source labels in text mode and the
// short ones where space is tight.
func (bm *batteryMeter) UpdateValues(m *meter.Meter) string {
	snap := bm.src.Snapshot()
	if !snap.HasBattery {
		m.Values[0] = 0
		return "n/a"
	}
	b := snap.Battery
	m.Values[0] = b.Percent
	text := m.Mode() == meter.ModeText
	switch {
	case b.AC == monitor.ACOnline && text:
		return fmt.Sprintf("%.1f%% (Running on A/C)", b.Percent)
	case b.AC == monitor.ACOnline:
		return fmt.Sprintf("%.1f%%(A/C)", b.Percent)
	case b.AC == monitor.ACOffline && text:
		return fmt.Sprintf("%.1f%% (Running on battery)", b.Percent)
	case b.AC == monitor.ACOffline:
		return fmt.Sprintf("%.1f%%(bat)", b.Percent)
	}
	return fmt.Sprintf("%.1f%%", b.Percent)
}
