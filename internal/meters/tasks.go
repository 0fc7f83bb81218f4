package meters

import (
	"fmt"

	"github.com/sumant1122/perftop/internal/meter"
	"github.com/sumant1122/perftop/internal/theme"
)

type tasksMeter struct{ src Source }

func newTasksClass(src Source) *meter.Class {
	return meter.MustClass(meter.Descriptor{
		Name:        "Tasks",
		UIName:      "Task counter",
		Description: "Number of tasks, running and blocked",
		Caption:     "Tasks: ",
		DefaultMode: meter.ModeText,
		MaxItems:    2,
		Total:       100,
		Attributes:  []theme.Role{theme.RoleTasksRunning, theme.RoleTasksBlocked},
	}, &tasksMeter{src: src})
}

func (tm *tasksMeter) UpdateValues(m *meter.Meter) string {
	snap := tm.src.Snapshot()
	if !snap.HasTasks {
		clear(m.Values)
		return "n/a"
	}
	t := snap.Tasks
	m.Total = float64(max(t.Total, 1))
	m.Values[0] = float64(t.Running)
	m.Values[1] = float64(t.Blocked)
	return fmt.Sprintf("%d/%d", t.Running, t.Total)
}

func (tm *tasksMeter) Display(m *meter.Meter, out *meter.RichText) {
	if m.Text() == "n/a" {
		out.Append(theme.RoleMeterValueNotice, "n/a")
		return
	}
	out.Appendf(theme.RoleMeterValue, "%d", int(m.Total))
	out.Append(theme.RoleMeterText, ", ")
	out.Appendf(theme.RoleTasksRunning, "%d", int(m.Values[0]))
	out.Append(theme.RoleMeterText, " running")
	if blocked := int(m.Values[1]); blocked > 0 {
		out.Append(theme.RoleMeterText, ", ")
		out.Appendf(theme.RoleTasksBlocked, "%d", blocked)
		out.Append(theme.RoleMeterText, " blocked")
	}
}
