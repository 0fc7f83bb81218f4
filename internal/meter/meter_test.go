package meter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumant1122/perftop/internal/screen"
	"github.com/sumant1122/perftop/internal/theme"
)

type fixed struct {
	values []float64
	text   string
	done   int
}

func (f *fixed) UpdateValues(m *Meter) string {
	copy(m.Values, f.values)
	return f.text
}

type finalized struct {
	fixed
	panics bool
}

func (f *finalized) Done(m *Meter) {
	f.done++
	if f.panics {
		panic("done failed")
	}
}

type custom struct{ fixed }

func (custom) Draw(m *Meter, ctx *RenderContext, s Surface, x, y, w int) {
	s.Put(x, y, theme.RoleMeterText, "custom")
}

func cpuDescriptor() Descriptor {
	return Descriptor{
		Name:        "CPU",
		Caption:     "CPU",
		DefaultMode: ModeBar,
		MaxItems:    3,
		Total:       100,
		Attributes:  []theme.Role{theme.RoleCPUNice, theme.RoleCPUNormal, theme.RoleCPUKernel},
	}
}

func newFixed(t *testing.T, d Descriptor, values []float64, text string) *Meter {
	t.Helper()
	c, err := NewClass(d, &fixed{values: values, text: text})
	require.NoError(t, err)
	m := New(c, 0)
	m.Update()
	return m
}

func TestNewClassValidation(t *testing.T) {
	tests := []struct {
		name string
		edit func(d *Descriptor)
		b    Behavior
	}{
		{"missing name", func(d *Descriptor) { d.Name = "" }, &fixed{}},
		{"nil behavior", func(d *Descriptor) {}, nil},
		{"too many items", func(d *Descriptor) { d.MaxItems = MaxBarItems + 1 }, &fixed{}},
		{"no items", func(d *Descriptor) { d.MaxItems = 0 }, &fixed{}},
		{"short attributes", func(d *Descriptor) { d.Attributes = d.Attributes[:1] }, &fixed{}},
		{"custom without draw", func(d *Descriptor) { d.DefaultMode = ModeCustom }, &fixed{}},
		{"bad accepted mode", func(d *Descriptor) { d.Modes = []Mode{ModeCustom} }, &fixed{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := cpuDescriptor()
			tt.edit(&d)
			_, err := NewClass(d, tt.b)
			assert.ErrorIs(t, err, ErrInvalidClass)
		})
	}
}

func TestNewClassDefaults(t *testing.T) {
	d := cpuDescriptor()
	d.DefaultMode = ModeDefault
	c, err := NewClass(d, &fixed{})
	require.NoError(t, err)
	assert.Equal(t, ModeBar, c.DefaultMode)
	assert.Equal(t, "CPU", c.UIName)
	assert.True(t, c.SupportsMode(ModeLED))
	assert.False(t, c.SupportsMode(ModeCustom))

	d.Modes = []Mode{ModeBar, ModeGraph}
	c, err = NewClass(d, &fixed{})
	require.NoError(t, err)
	assert.Equal(t, ModeGraph, c.NextMode(ModeBar))
	assert.Equal(t, ModeBar, c.NextMode(ModeGraph))
}

func TestNewMeter(t *testing.T) {
	m := newFixed(t, cpuDescriptor(), []float64{1, 2, 3}, "6.0%")
	assert.Len(t, m.Values, 3)
	assert.Equal(t, 3, m.Items())
	assert.Equal(t, 100.0, m.Total)
	assert.Equal(t, 100.0, m.Max())
	assert.Equal(t, ModeBar, m.Mode())
	assert.Equal(t, 1, m.Height())
	assert.Equal(t, "6.0%", m.Text())
	assert.Equal(t, theme.RoleCPUKernel, m.Attr(2))
	assert.Equal(t, theme.RoleMeterValue, m.Attr(7))
	assert.Equal(t, "CPU", m.Name())
}

func TestSetMode(t *testing.T) {
	d := cpuDescriptor()
	d.DefaultMode = ModeText
	m := newFixed(t, d, nil, "")
	assert.Equal(t, ModeText, m.Mode())

	m.SetMode(ModeGraph)
	assert.Equal(t, GraphHeight, m.Height())
	m.Draw(nil, screen.New(20, 4), 0, 0, 20)
	require.NotNil(t, m.graph)

	graph := m.graph
	m.SetMode(ModeGraph)
	assert.Same(t, graph, m.graph, "same mode is a no-op")

	m.SetMode(ModeLED)
	assert.Nil(t, m.graph)
	assert.Equal(t, LEDHeight, m.Height())

	m.SetMode(ModeDefault)
	assert.Equal(t, ModeText, m.Mode())
	assert.Equal(t, 1, m.Height())
}

func TestSetModeCustomClass(t *testing.T) {
	d := cpuDescriptor()
	d.DefaultMode = ModeCustom
	c, err := NewClass(d, &custom{})
	require.NoError(t, err)
	m := New(c, 0)
	assert.Equal(t, ModeBar, m.Mode())

	m.SetMode(ModeGraph)
	assert.Equal(t, GraphHeight, m.Height())
	s := screen.New(10, 4)
	m.Draw(nil, s, 0, 0, 10)
	assert.Equal(t, "custom    ", s.Line(0))
}

func TestUpdateTruncatesText(t *testing.T) {
	m := newFixed(t, cpuDescriptor(), nil, strings.Repeat("x", 300))
	assert.Len(t, m.Text(), TextBufferLen-1)

	m = newFixed(t, cpuDescriptor(), nil, strings.Repeat("x", 254)+"é")
	assert.Equal(t, strings.Repeat("x", 254), m.Text())
}

func TestDestroy(t *testing.T) {
	var nilMeter *Meter
	assert.NotPanics(t, nilMeter.Destroy)

	b := &finalized{}
	c, err := NewClass(cpuDescriptor(), b)
	require.NoError(t, err)
	m := New(c, 0)
	m.SetData("state")
	m.Destroy()
	assert.Equal(t, 1, b.done)
	assert.Nil(t, m.Data())
	assert.Nil(t, m.Values)
}

func TestDestroyReleasesWhenDonePanics(t *testing.T) {
	b := &finalized{panics: true}
	c, err := NewClass(cpuDescriptor(), b)
	require.NoError(t, err)
	m := New(c, 0)
	m.SetData("state")
	assert.Panics(t, m.Destroy)
	assert.Nil(t, m.Data())
	assert.Nil(t, m.Values)
}

func TestSampleClamps(t *testing.T) {
	m := newFixed(t, cpuDescriptor(), []float64{80, 40, 0}, "")
	assert.Equal(t, 1.0, m.sample())

	m.Values = []float64{10, 20, 30}
	m.SetItems(2)
	assert.InDelta(t, 0.3, m.sample(), 1e-9)

	m.Total = 0
	m.Values = []float64{0, 0, 0}
	assert.Equal(t, 0.0, m.sample())
}

func TestParseMode(t *testing.T) {
	for _, mode := range append([]Mode{ModeDefault}, CatalogModes...) {
		got, err := ParseMode(strings.ToUpper(mode.String()))
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}
	_, err := ParseMode("sparkline")
	assert.Error(t, err)
	assert.Equal(t, ModeBar, ModeLED.Next())
}

func TestGraphSamplingIdempotent(t *testing.T) {
	now := time.Unix(1000, 0)
	ctx := &RenderContext{Now: func() time.Time { return now }, GraphDelay: time.Second}
	m := newFixed(t, cpuDescriptor(), []float64{25, 25, 0}, "")
	m.SetMode(ModeGraph)

	m.Draw(ctx, screen.New(20, 4), 0, 0, 20)
	first := append([]float64(nil), m.graph.Values...)
	assert.Equal(t, 0.5, first[GraphBufferLen-1])

	m.Values[0] = 75
	m.Draw(ctx, screen.New(20, 4), 0, 0, 20)
	assert.Equal(t, first, m.graph.Values, "no new sample before the delay elapses")

	now = now.Add(time.Second)
	m.Draw(ctx, screen.New(20, 4), 0, 0, 20)
	assert.Equal(t, 0.5, m.graph.Values[GraphBufferLen-2])
	assert.Equal(t, 1.0, m.graph.Values[GraphBufferLen-1])
}
