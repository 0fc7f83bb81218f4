package meters

import (
	"fmt"
	"time"

	"github.com/sumant1122/perftop/internal/meter"
	"github.com/sumant1122/perftop/internal/theme"
)

type uptimeMeter struct{ src Source }

func newUptimeClass(src Source) *meter.Class {
	return meter.MustClass(meter.Descriptor{
		Name:        "Uptime",
		UIName:      "Uptime",
		Description: "Time since the system was booted",
		Caption:     "Uptime: ",
		DefaultMode: meter.ModeText,
		MaxItems:    1,
		Total:       100,
		Attributes:  []theme.Role{theme.RoleUptime},
	}, &uptimeMeter{src: src})
}

func (um *uptimeMeter) UpdateValues(m *meter.Meter) string {
	m.Values[0] = 0
	return formatUptime(um.src.Snapshot().Uptime)
}

func (um *uptimeMeter) Display(m *meter.Meter, out *meter.RichText) {
	out.Append(theme.RoleUptime, m.Text())
}

// formatUptime prints hh:mm:ss, preceded by the day count once the system
// has been up for a day. Over 100 days is flagged with "(!)".
func formatUptime(d time.Duration) string {
	if d < 0 {
		return "(unknown)"
	}
	total := int(d / time.Second)
	seconds := total % 60
	minutes := (total / 60) % 60
	hours := (total / 3600) % 24
	days := total / 86400

	var dayString string
	switch {
	case days > 100:
		dayString = fmt.Sprintf("%d days(!), ", days)
	case days > 1:
		dayString = fmt.Sprintf("%d days, ", days)
	case days == 1:
		dayString = "1 day, "
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", dayString, hours, minutes, seconds)
}
