package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumant1122/perftop/internal/config"
	"github.com/sumant1122/perftop/internal/header"
	"github.com/sumant1122/perftop/internal/logger"
	"github.com/sumant1122/perftop/internal/meter"
	"github.com/sumant1122/perftop/internal/meters"
	"github.com/sumant1122/perftop/internal/monitor"
	"github.com/sumant1122/perftop/internal/theme"
)

var fixedNow = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

func newTestModel(t *testing.T) Model {
	t.Helper()
	store := monitor.NewStore()
	store.Set(monitor.Snapshot{Hostname: "box", CPUs: make([]monitor.CPU, 3), Uptime: time.Hour})
	reg := meters.NewRegistry(store, meters.Settings{Now: func() time.Time { return fixedNow }})
	h := header.New(reg, false, logger.Noop())
	t.Cleanup(h.Destroy)
	require.NoError(t, h.Populate([]config.Column{
		{Meters: []config.MeterEntry{{Name: "Hostname"}, {Name: "Clock"}}},
		{Meters: []config.MeterEntry{{Name: "Tasks"}}},
	}))
	h.Update()

	sampler := monitor.NewSampler(monitor.Probes{},
		monitor.WithClock(func() time.Time { return fixedNow }),
		monitor.WithLogger(logger.Noop()))
	return NewModel(Deps{
		Header:   h,
		Registry: reg,
		Sampler:  sampler,
		Store:    store,
		Context:  meter.RenderContext{Glyphs: meter.ASCIIGlyphs},
		Delay:    time.Second,
		Config:   config.Default(),
		Log:      logger.Noop(),
	})
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "expected Model type")
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestThemeToggle(t *testing.T) {
	m := newTestModel(t)
	initial := m.themeIndex

	m = press(t, m, runes("t"))
	assert.NotEqual(t, initial, m.themeIndex, "theme index should change after pressing 't'")
	assert.False(t, m.ctx.Monochrome)

	for m.themeIndex != theme.MonochromeIndex() {
		m = press(t, m, runes("t"))
	}
	assert.True(t, m.ctx.Monochrome)
	assert.Contains(t, m.statusLine, "Monochrome")
}

func TestQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runes("q"), runes("Q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newTestModel(t)
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, key.String())
		assert.IsType(t, tea.QuitMsg{}, cmd(), key.String())
	}
}

func TestSelectionWraps(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, "Hostname", m.selected().Name())

	tab := tea.KeyMsg{Type: tea.KeyTab}
	m = press(t, m, tab)
	assert.Equal(t, "Clock", m.selected().Name())
	m = press(t, m, tab)
	assert.Equal(t, "Tasks", m.selected().Name())
	assert.Equal(t, 1, m.selCol)
	m = press(t, m, tab)
	assert.Equal(t, "Hostname", m.selected().Name())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "Tasks", m.selected().Name())
}

func TestModeCycle(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, meter.ModeText, m.selected().Mode())

	m = press(t, m, runes("m"))
	assert.Equal(t, meter.ModeLED, m.selected().Mode())
	assert.Equal(t, meter.LEDHeight, m.selected().Height())

	m = press(t, m, runes("m"))
	assert.Equal(t, meter.ModeText, m.selected().Mode())
}

func TestMoveWithinAndAcrossColumns(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("J"))
	assert.Equal(t, "Hostname", m.header.Meter(0, 1).Name())
	assert.Equal(t, 1, m.selRow)

	m = press(t, m, runes("g"))
	assert.Equal(t, "Hostname", m.header.Meter(0, 0).Name())
	assert.Equal(t, 0, m.selRow)

	// The meter lands on the same row of the other column.
	m = press(t, m, runes("L"))
	assert.Equal(t, 1, m.selCol)
	assert.Equal(t, 0, m.selRow)
	assert.Equal(t, 1, m.header.Len(0))
	assert.Equal(t, "Hostname", m.selected().Name())
	assert.Equal(t, "Tasks", m.header.Meter(1, 1).Name())

	m = press(t, m, runes("K"))
	assert.Equal(t, "Hostname", m.header.Meter(1, 0).Name())
	assert.Equal(t, 0, m.selRow)

	m = press(t, m, runes("J"))
	assert.Equal(t, "Hostname", m.header.Meter(1, 1).Name())
	assert.Equal(t, 1, m.selRow)

	m = press(t, m, runes("H"))
	assert.Equal(t, 0, m.selCol)
	assert.Equal(t, 1, m.selRow)
	assert.Equal(t, []string{"Clock", "Hostname"}, []string{m.header.Meter(0, 0).Name(), m.header.Meter(0, 1).Name()})
	assert.Equal(t, "Hostname", m.selected().Name())
}

func TestRemoveSelected(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("x"))
	assert.Equal(t, 1, m.header.Len(0))
	assert.Equal(t, "Clock", m.selected().Name())

	m = press(t, m, runes("x"))
	assert.Equal(t, 0, m.header.Len(0))
	assert.Equal(t, "Tasks", m.selected().Name())

	m = press(t, m, runes("x"))
	assert.Nil(t, m.selected())
	// Nothing left to act on.
	m = press(t, m, runes("m"), runes("x"), runes("J"))
	assert.Nil(t, m.selected())
}

func TestGlyphToggle(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("u"))
	assert.Same(t, meter.UTF8Glyphs, m.ctx.Glyphs)
	m = press(t, m, runes("u"))
	assert.Same(t, meter.ASCIIGlyphs, m.ctx.Glyphs)
}

func TestSampleSchedulesNextTick(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(sampleMsg{snap: monitor.Snapshot{Time: fixedNow, Hostname: "other", Uptime: -1}})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, "other", m.store.Snapshot().Hostname)
	assert.Equal(t, "updated 09:30:00", m.statusLine)
	assert.Contains(t, m.header.Meter(0, 0).Text(), "other")

	_, cmd = m.Update(tickMsg(fixedNow))
	require.NotNil(t, cmd)
	msg, ok := cmd().(sampleMsg)
	require.True(t, ok)
	assert.Equal(t, fixedNow, msg.snap.Time)
}

func TestCatalogAddsMeter(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 30}, runes("c"))
	require.True(t, m.showCatalog)

	// Quit keys close the panel instead of the program.
	next, cmd := m.Update(runes("q"))
	assert.Nil(t, cmd)
	assert.False(t, next.(Model).showCatalog)

	m = press(t, m, runes("k"), runes("j"), runes("j"))
	assert.Equal(t, 2, m.catalogCursor)
	want := m.catalog[2]

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 3, m.header.Len(0))
	assert.Equal(t, 2, m.selRow)
	assert.Same(t, want, m.selected().Class())
	assert.Contains(t, m.statusLine, "added")
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perftop.toml")
	t.Setenv(config.EnvConfig, path)

	m := newTestModel(t)
	m = press(t, m, runes("m"), runes("w"))
	assert.Equal(t, "saved "+path, m.statusLine)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := config.Parse(data)
	require.NoError(t, err)
	require.Len(t, cfg.Columns, 2)
	assert.Equal(t, []config.MeterEntry{{Name: "Hostname", Mode: "led"}, {Name: "Clock"}}, cfg.Columns[0].Meters)
	assert.Equal(t, "Tasks", cfg.Columns[1].Meters[0].Name)
	assert.True(t, cfg.ASCII)
}

func TestViewShowsHeaderAndFooter(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, "", m.View())

	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	assert.Contains(t, view, "Hostname: box")
	assert.Contains(t, view, "09:30:00")
	assert.Contains(t, view, "selected: Hostname [text]")
	assert.Contains(t, view, "q:quit")
}

func TestRenderFrameMonochrome(t *testing.T) {
	m := newTestModel(t)
	ctx := meter.RenderContext{Palette: theme.MonochromePalette(), Monochrome: true}
	frame := RenderFrame(m.header, &ctx, 80)
	assert.Contains(t, frame, "Hostname: box")
	assert.Contains(t, frame, "Tasks:")
	assert.NotContains(t, frame, "\x1b[")
}
