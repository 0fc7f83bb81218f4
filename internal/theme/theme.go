package theme

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name       string
	Accent     string
	AccentDark string
	Ink        string
	Muted      string
	Background string
	Good       string
	Warn       string
	Bad        string
	Info       string
	Alt        string
	// Monochrome themes resolve every role to a single attribute.
	Monochrome bool
}

var Themes = []Theme{
	{
		Name:       "Ocean",
		Accent:     "#34B3A0",
		AccentDark: "#0F2E2B",
		Ink:        "#E6EDF3",
		Muted:      "#8AA1A8",
		Background: "#0B1115",
		Good:       "#4ade80",
		Warn:       "#facc15",
		Bad:        "#f87171",
		Info:       "#60a5fa",
		Alt:        "#c084fc",
	},
	{
		Name:       "Sand",
		Accent:     "#D7A86E",
		AccentDark: "#332819",
		Ink:        "#F2E8D5",
		Muted:      "#B8A387",
		Background: "#1A140D",
		Good:       "#a3be8c",
		Warn:       "#ebcb8b",
		Bad:        "#bf616a",
		Info:       "#81a1c1",
		Alt:        "#b48ead",
	},
	{
		Name:       "Day",
		Accent:     "#3B82F6",
		AccentDark: "#E6EEF9",
		Ink:        "#0B1220",
		Muted:      "#506072",
		Background: "#F7FAFF",
		Good:       "#15803d",
		Warn:       "#a16207",
		Bad:        "#b91c1c",
		Info:       "#1d4ed8",
		Alt:        "#7e22ce",
	},
	{
		Name:       "Monochrome",
		Monochrome: true,
	},
}

// Index returns the position of the theme called name, or -1.
func Index(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// MonochromeIndex is the position of the monochrome theme in Themes.
func MonochromeIndex() int {
	return Index("Monochrome")
}

type Styles struct {
	Header     lipgloss.Style
	Footer     lipgloss.Style
	Summary    lipgloss.Style
	Info       lipgloss.Style
	ContentBox lipgloss.Style
	Selected   lipgloss.Style

	// Palette resolves meter attribute roles.
	Palette Palette

	Accent     lipgloss.Color
	AccentDark lipgloss.Color
	Ink        lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
}

func BuildStyles(index int) Styles {
	if index < 0 || index >= len(Themes) {
		index = 0
	}
	t := Themes[index]

	s := Styles{}
	if t.Monochrome {
		plain := lipgloss.NewStyle()
		s.Header = plain
		s.Footer = plain
		s.Summary = plain.Reverse(true)
		s.Info = plain
		s.ContentBox = plain.Border(lipgloss.NormalBorder())
		s.Selected = plain.Reverse(true)
		s.Palette = MonochromePalette()
		return s
	}

	s.Accent = lipgloss.Color(t.Accent)
	s.AccentDark = lipgloss.Color(t.AccentDark)
	s.Ink = lipgloss.Color(t.Ink)
	s.Muted = lipgloss.Color(t.Muted)
	s.Background = lipgloss.Color(t.Background)

	s.Header = lipgloss.NewStyle().Foreground(s.Ink).Background(s.Background).Padding(0, 1)
	s.Footer = lipgloss.NewStyle().Foreground(s.Muted).Background(s.Background).Padding(0, 1)
	s.Summary = lipgloss.NewStyle().Foreground(s.Ink).Background(s.AccentDark).Padding(0, 1)
	s.Info = lipgloss.NewStyle().Foreground(s.Ink).Background(s.Background).Padding(0, 1)
	s.ContentBox = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(s.Muted).
		Padding(0, 1)
	s.Selected = lipgloss.NewStyle().Foreground(s.Background).Background(s.Accent).Bold(true)
	s.Palette = BuildPalette(t)

	return s
}
