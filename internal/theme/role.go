package theme

import "github.com/charmbracelet/lipgloss"

// Role is a symbolic attribute. Meters only ever write roles; a Palette
// decides what each role looks like on the current terminal.
type Role int

const (
	RoleReset Role = iota
	RoleMeterText
	RoleMeterValue
	RoleMeterValueNotice
	RoleBarBorder
	RoleBarShadow
	RoleGraph1
	RoleGraph2
	RoleLED
	RoleCPUNice
	RoleCPUNormal
	RoleCPUKernel
	RoleCPUIRQ
	RoleCPUSoftIRQ
	RoleCPUSteal
	RoleCPUGuest
	RoleCPUIOWait
	RoleMemoryUsed
	RoleMemoryBuffers
	RoleMemoryCache
	RoleSwap
	RoleLoad
	RoleLoadAverageOne
	RoleLoadAverageFive
	RoleLoadAverageFifteen
	RoleTasksRunning
	RoleTasksBlocked
	RoleUptime
	RoleBattery
	RoleHostname
	RoleClock
	RoleNetRx
	RoleNetTx

	roleCount
)

// Palette maps every Role to a lipgloss style.
type Palette struct {
	styles [roleCount]lipgloss.Style
}

// Style returns the style for r. Unknown roles resolve like RoleReset.
func (p Palette) Style(r Role) lipgloss.Style {
	if r < 0 || r >= roleCount {
		r = RoleReset
	}
	return p.styles[r]
}

// MonochromePalette resolves every role to the same plain attribute.
func MonochromePalette() Palette {
	var p Palette
	plain := lipgloss.NewStyle()
	for i := range p.styles {
		p.styles[i] = plain
	}
	return p
}

// BuildPalette derives role styles from a theme's colors.
func BuildPalette(t Theme) Palette {
	if t.Monochrome {
		return MonochromePalette()
	}
	fg := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}

	var p Palette
	p.styles[RoleReset] = fg(t.Ink)
	p.styles[RoleMeterText] = fg(t.Accent)
	p.styles[RoleMeterValue] = fg(t.Ink).Bold(true)
	p.styles[RoleMeterValueNotice] = fg(t.Warn).Bold(true)
	p.styles[RoleBarBorder] = fg(t.Ink).Bold(true)
	p.styles[RoleBarShadow] = fg(t.Muted).Faint(true)
	p.styles[RoleGraph1] = fg(t.Accent).Bold(true)
	p.styles[RoleGraph2] = fg(t.Accent)
	p.styles[RoleLED] = fg(t.Good)
	p.styles[RoleCPUNice] = fg(t.Info)
	p.styles[RoleCPUNormal] = fg(t.Good)
	p.styles[RoleCPUKernel] = fg(t.Bad)
	p.styles[RoleCPUIRQ] = fg(t.Warn)
	p.styles[RoleCPUSoftIRQ] = fg(t.Alt)
	p.styles[RoleCPUSteal] = fg(t.Muted)
	p.styles[RoleCPUGuest] = fg(t.Info).Bold(true)
	p.styles[RoleCPUIOWait] = fg(t.Muted).Bold(true)
	p.styles[RoleMemoryUsed] = fg(t.Good)
	p.styles[RoleMemoryBuffers] = fg(t.Info)
	p.styles[RoleMemoryCache] = fg(t.Warn)
	p.styles[RoleSwap] = fg(t.Bad)
	p.styles[RoleLoad] = fg(t.Ink)
	p.styles[RoleLoadAverageOne] = fg(t.Ink).Bold(true)
	p.styles[RoleLoadAverageFive] = fg(t.Ink)
	p.styles[RoleLoadAverageFifteen] = fg(t.Muted)
	p.styles[RoleTasksRunning] = fg(t.Good).Bold(true)
	p.styles[RoleTasksBlocked] = fg(t.Bad)
	p.styles[RoleUptime] = fg(t.Accent).Bold(true)
	p.styles[RoleBattery] = fg(t.Accent).Bold(true)
	p.styles[RoleHostname] = fg(t.Ink).Bold(true)
	p.styles[RoleClock] = fg(t.Ink).Bold(true)
	p.styles[RoleNetRx] = fg(t.Good)
	p.styles[RoleNetTx] = fg(t.Alt)
	return p
}
