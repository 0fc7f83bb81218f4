// Package ui runs the interactive header: a bubbletea model that samples,
// refreshes and redraws the meters once per delay.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sumant1122/perftop/internal/config"
	"github.com/sumant1122/perftop/internal/header"
	"github.com/sumant1122/perftop/internal/logger"
	"github.com/sumant1122/perftop/internal/meter"
	"github.com/sumant1122/perftop/internal/meters"
	"github.com/sumant1122/perftop/internal/monitor"
	"github.com/sumant1122/perftop/internal/screen"
	"github.com/sumant1122/perftop/internal/theme"
)

type tickMsg time.Time
type spinnerMsg time.Time

type sampleMsg struct {
	snap monitor.Snapshot
}

const (
	spinnerInterval = 200 * time.Millisecond
	// Rows outside the header and catalog: info line, footer and the
	// catalog border.
	fixedRows = 4
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// Deps are the collaborators a Model drives.
type Deps struct {
	Header     *header.Header
	Registry   *meters.Registry
	Sampler    *monitor.Sampler
	Store      *monitor.Store
	Context    meter.RenderContext
	ThemeIndex int
	Delay      time.Duration
	Config     config.Config
	ConfigPath string
	Log        logger.Logger
}

type Model struct {
	header   *header.Header
	registry *meters.Registry
	sampler  *monitor.Sampler
	store    *monitor.Store
	log      logger.Logger

	ctx        meter.RenderContext
	styles     theme.Styles
	themeIndex int
	delay      time.Duration
	cfg        config.Config
	cfgPath    string

	selCol int
	selRow int

	showCatalog   bool
	catalog       []*meter.Class
	catalogCursor int
	viewport      viewport.Model

	statusLine string
	spinnerIdx int
	width      int
	height     int
}

func NewModel(d Deps) Model {
	if d.Log == nil {
		d.Log = logger.Noop()
	}
	if d.Delay <= 0 {
		d.Delay = config.DefaultDelay
	}
	m := Model{
		header:   d.Header,
		registry: d.Registry,
		sampler:  d.Sampler,
		store:    d.Store,
		log:      d.Log,
		ctx:      d.Context,
		delay:    d.Delay,
		cfg:      d.Config,
		cfgPath:  d.ConfigPath,
		catalog:  d.Registry.Catalog(),
		viewport: viewport.New(0, 0),
	}
	m.setTheme(d.ThemeIndex)
	m.selectFirst()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sampleCmd(), spinnerTick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showCatalog {
			return m.updateCatalog(msg)
		}
		if isQuitKey(msg) {
			return m, tea.Quit
		}
		m.handleKey(msg.String())
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeCatalog()
	case sampleMsg:
		m.store.Set(msg.snap)
		m.header.Update()
		m.statusLine = "updated " + msg.snap.Time.Format("15:04:05")
		m.resizeCatalog()
		// The next sample is only scheduled once this one has landed.
		return m, tick(m.delay)
	case tickMsg:
		return m, m.sampleCmd()
	case spinnerMsg:
		m.spinnerIdx = (m.spinnerIdx + 1) % len(spinnerFrames)
		return m, spinnerTick()
	}
	return m, nil
}

func (m *Model) handleKey(key string) {
	switch key {
	case "tab":
		m.moveSelection(1)
	case "shift+tab":
		m.moveSelection(-1)
	case "m":
		if sel := m.selected(); sel != nil {
			sel.SetMode(sel.Class().NextMode(sel.Mode()))
			sel.Update()
			m.statusLine = fmt.Sprintf("%s: %s mode", sel.Name(), sel.Mode())
		}
	case "K":
		if m.selected() != nil && m.selRow > 0 {
			m.header.MoveUp(m.selCol, m.selRow)
			m.selRow--
		}
	case "J":
		if m.selected() != nil && m.selRow < m.header.Len(m.selCol)-1 {
			m.header.MoveDown(m.selCol, m.selRow)
			m.selRow++
		}
	case "g":
		if m.selected() != nil {
			m.header.MoveToTop(m.selCol, m.selRow)
			m.selRow = 0
		}
	case "G":
		if m.selected() != nil {
			m.header.MoveToBottom(m.selCol, m.selRow)
			m.selRow = m.header.Len(m.selCol) - 1
		}
	case "H", "L":
		if m.selected() != nil {
			m.selCol, m.selRow = m.header.MoveToColumn(m.selCol, m.selRow)
		}
	case "x", "delete":
		if sel := m.selected(); sel != nil {
			m.statusLine = "removed " + sel.Name()
			m.header.Remove(m.selCol, m.selRow)
			m.selRow = min(m.selRow, m.header.Len(m.selCol)-1)
			if m.selRow < 0 {
				m.selectFirst()
			}
		}
	case "t":
		m.setTheme((m.themeIndex + 1) % len(theme.Themes))
		m.statusLine = "theme " + theme.Themes[m.themeIndex].Name
	case "u":
		if m.ctx.Glyphs == meter.UTF8Glyphs {
			m.ctx.Glyphs = meter.ASCIIGlyphs
		} else {
			m.ctx.Glyphs = meter.UTF8Glyphs
		}
		m.statusLine = "glyphs " + m.glyphs().Name
	case "c":
		m.showCatalog = true
		m.resizeCatalog()
	case "w":
		m.saveConfig()
	}
}

func (m Model) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "c", "esc", "q":
		m.showCatalog = false
	case "up", "k":
		m.catalogCursor = max(m.catalogCursor-1, 0)
	case "down", "j":
		m.catalogCursor = max(min(m.catalogCursor+1, len(m.catalog)-1), 0)
	case "enter":
		if len(m.catalog) == 0 {
			break
		}
		c := m.catalog[m.catalogCursor]
		added, err := m.header.Add(m.selCol, c.Name, meter.ModeDefault)
		if err != nil {
			m.statusLine = "error: " + err.Error()
			break
		}
		added.Update()
		m.selRow = m.header.Len(m.selCol) - 1
		m.statusLine = "added " + added.Name()
	}
	m.resizeCatalog()
	return m, nil
}

func (m *Model) setTheme(index int) {
	if index < 0 || index >= len(theme.Themes) {
		index = 0
	}
	m.themeIndex = index
	m.styles = theme.BuildStyles(index)
	m.ctx.Palette = m.styles.Palette
	m.ctx.Monochrome = theme.Themes[index].Monochrome
}

func (m Model) glyphs() *meter.GlyphSet {
	if m.ctx.Glyphs == nil {
		return meter.ASCIIGlyphs
	}
	return m.ctx.Glyphs
}

func (m *Model) selectFirst() {
	m.selCol, m.selRow = 0, 0
	if m.header.Len(0) == 0 && m.header.Len(1) > 0 {
		m.selCol = 1
	}
}

func (m Model) selected() *meter.Meter {
	if m.selRow < 0 || m.selRow >= m.header.Len(m.selCol) {
		return nil
	}
	return m.header.Meter(m.selCol, m.selRow)
}

// moveSelection steps through the meters column by column.
func (m *Model) moveSelection(step int) {
	type pos struct{ col, row int }
	var all []pos
	current := 0
	for col := 0; col < header.Columns; col++ {
		for row := 0; row < m.header.Len(col); row++ {
			if col == m.selCol && row == m.selRow {
				current = len(all)
			}
			all = append(all, pos{col, row})
		}
	}
	if len(all) == 0 {
		return
	}
	next := all[(current+step+len(all))%len(all)]
	m.selCol, m.selRow = next.col, next.row
}

func (m *Model) saveConfig() {
	path := m.cfgPath
	if path == "" {
		var err error
		if path, err = config.SavePath(); err != nil {
			m.statusLine = "error: " + err.Error()
			return
		}
	}
	cfg := m.cfg
	cfg.Columns = m.header.Layout()
	cfg.Theme = theme.Themes[m.themeIndex].Name
	cfg.ASCII = m.glyphs() == meter.ASCIIGlyphs
	if err := config.Save(path, cfg); err != nil {
		m.log.Error("save config: %v", err)
		m.statusLine = "error: " + err.Error()
		return
	}
	m.cfg, m.cfgPath = cfg, path
	m.statusLine = "saved " + path
}

func (m *Model) resizeCatalog() {
	m.viewport.Width = max(m.width-2, 0)
	m.viewport.Height = max(m.height-m.header.Height()-fixedRows, 0)
	m.viewport.SetContent(m.renderCatalog())
	if m.catalogCursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.catalogCursor)
	} else if m.viewport.Height > 0 && m.catalogCursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.catalogCursor - m.viewport.Height + 1)
	}
}

func (m Model) sampleCmd() tea.Cmd {
	sampler, timeout := m.sampler, m.delay
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return sampleMsg{snap: sampler.Sample(ctx)}
	}
}

func tick(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg { return spinnerMsg(t) })
}

func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}
	parts := []string{RenderFrame(m.header, &m.ctx, m.width), m.renderInfo()}
	if m.showCatalog {
		parts = append(parts, m.styles.ContentBox.Width(m.width).Render(m.viewport.View()))
	}
	parts = append(parts, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RenderFrame draws the header once at width and returns the styled rows.
func RenderFrame(h *header.Header, ctx *meter.RenderContext, width int) string {
	canvas := screen.New(width, h.Height())
	h.Draw(ctx, canvas, width)
	return canvas.Render(ctx.Palette)
}

func (m Model) renderInfo() string {
	text := "no meters"
	if sel := m.selected(); sel != nil {
		text = fmt.Sprintf("selected: %s [%s]  column %d", sel.Name(), sel.Mode(), m.selCol+1)
	}
	text += fmt.Sprintf("  |  theme: %s  glyphs: %s", theme.Themes[m.themeIndex].Name, m.glyphs().Name)
	return m.styles.Info.Width(m.width).Render(text)
}

func (m Model) renderCatalog() string {
	lines := make([]string, len(m.catalog))
	for i, c := range m.catalog {
		line := fmt.Sprintf(" %-14s %s", c.UIName, c.Description)
		if i == m.catalogCursor {
			line = m.styles.Selected.Render(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	help := "q:quit  tab:select  m:mode  J/K:move  H/L:column  x:remove  t:theme  u:glyphs  c:catalog  w:save"
	if m.showCatalog {
		help = "up/down:choose  enter:add  c/esc:close"
	}
	spinner := spinnerFrames[m.spinnerIdx]
	if m.statusLine != "" {
		help = spinner + "  " + m.statusLine + "  |  " + help
	} else {
		help = spinner + "  " + help
	}
	return m.styles.Footer.Width(m.width).Render(help)
}

func isQuitKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		return true
	}
	switch msg.String() {
	case "q", "Q", "esc", "ctrl+c":
		return true
	}
	return false
}
