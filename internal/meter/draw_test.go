package meter

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumant1122/perftop/internal/screen"
	"github.com/sumant1122/perftop/internal/theme"
)

func TestAllocateBarSequential(t *testing.T) {
	blocks := allocateBar([]float64{30, 10, 10}, 100, 15, false)
	assert.Equal(t, []barBlock{
		{item: 0, start: 0, length: 5},
		{item: 1, start: 5, length: 2},
		{item: 2, start: 7, length: 2},
	}, blocks)
}

func TestAllocateBarClampsAtBorder(t *testing.T) {
	blocks := allocateBar([]float64{6, 5, 0, -3}, 8, 8, false)
	assert.Equal(t, []barBlock{
		{item: 0, start: 0, length: 6},
		{item: 1, start: 6, length: 2},
		{item: 2, start: 8, length: 0},
		{item: 3, start: 8, length: 0},
	}, blocks)
}

func TestAllocateBarOverlapping(t *testing.T) {
	blocks := allocateBar([]float64{30, 10, 30}, 100, 15, true)
	assert.Equal(t, []barBlock{
		{item: 1, start: 0, length: 2},
		{item: 0, start: 2, length: 3},
		{item: 2, start: 5, length: 0},
	}, blocks)
}

func randomBar(rng *rand.Rand) ([]float64, float64, int) {
	total := 1 + rng.Float64()*199
	values := make([]float64, 1+rng.Intn(MaxBarItems))
	for i := range values {
		if rng.Intn(5) > 0 {
			values[i] = rng.Float64() * total
		}
	}
	return values, total, 1 + rng.Intn(40)
}

// owners maps each interior column to the item drawn there, or -1.
func owners(t *testing.T, blocks []barBlock, width int) []int {
	t.Helper()
	out := make([]int, width)
	for i := range out {
		out[i] = -1
	}
	for _, b := range blocks {
		for c := b.start; c < b.start+b.length; c++ {
			require.Equal(t, -1, out[c], "column %d painted twice", c)
			out[c] = b.item
		}
	}
	return out
}

func TestAllocateBarSequentialProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 2000; round++ {
		values, total, width := randomBar(rng)
		blocks := allocateBar(values, total, width, false)
		require.Len(t, blocks, len(values))

		used, want := 0, 0
		for i, b := range blocks {
			require.Equal(t, i, b.item)
			require.Equal(t, used, b.start)
			used += b.length
			want += blockLength(values[i], total, width)
		}
		require.LessOrEqual(t, used, width)
		if want <= width {
			for i, b := range blocks {
				require.Equal(t, blockLength(values[i], total, width), b.length)
			}
		}
		owners(t, blocks, width)
	}
}

func TestAllocateBarOverlappingProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for round := 0; round < 2000; round++ {
		values, total, width := randomBar(rng)
		got := owners(t, allocateBar(values, total, width, true), width)

		for c := 0; c < width; c++ {
			// The smallest value whose extent covers c keeps the column.
			want := -1
			for i, v := range values {
				if blockLength(v, total, width) <= c {
					continue
				}
				if want < 0 || v < values[want] {
					want = i
				}
			}
			require.Equal(t, want, got[c], "values %v width %d column %d", values, width, c)
		}
	}
}

func TestAscendingOrderIsStable(t *testing.T) {
	assert.Equal(t, []int{3, 1, 0, 2, 4}, ascendingOrder([]float64{5, 2, 5, 1, 7}))
	assert.Empty(t, ascendingOrder(nil))
}

func TestDrawBar(t *testing.T) {
	m := newFixed(t, cpuDescriptor(), []float64{30, 10, 10}, "50.0%")
	s := screen.New(20, 1)
	m.Draw(nil, s, 0, 0, 20)

	assert.Equal(t, "CPU[||||||||| 50.0%]", s.Line(0))
	assert.Equal(t, theme.RoleMeterText, s.At(0, 0).Role)
	assert.Equal(t, theme.RoleBarBorder, s.At(3, 0).Role)
	assert.Equal(t, theme.RoleCPUNice, s.At(4, 0).Role)
	assert.Equal(t, theme.RoleCPUNormal, s.At(9, 0).Role)
	assert.Equal(t, theme.RoleCPUKernel, s.At(12, 0).Role)
	for x := 13; x < 19; x++ {
		assert.Equal(t, theme.RoleBarShadow, s.At(x, 0).Role, "column %d", x)
	}
	assert.Equal(t, theme.RoleBarBorder, s.At(19, 0).Role)
}

func TestDrawBarMonochromeMarkers(t *testing.T) {
	m := newFixed(t, cpuDescriptor(), []float64{30, 10, 10}, "")
	s := screen.New(20, 1)
	m.Draw(&RenderContext{Monochrome: true}, s, 0, 0, 20)
	assert.Equal(t, "CPU[|||||##**      ]", s.Line(0))
}

func TestDrawBarTextShowsThroughFill(t *testing.T) {
	m := newFixed(t, cpuDescriptor(), []float64{100, 0, 0}, "99.9%")
	s := screen.New(12, 1)
	m.Draw(nil, s, 0, 0, 12)
	assert.Equal(t, "CPU[||99.9%]", s.Line(0))
	assert.Equal(t, theme.RoleCPUNice, s.At(6, 0).Role)
}

func TestDrawBarTooNarrow(t *testing.T) {
	m := newFixed(t, cpuDescriptor(), []float64{100, 0, 0}, "x")
	s := screen.New(8, 1)
	m.Draw(nil, s, 0, 0, 5)
	assert.Equal(t, "CPU[]   ", s.Line(0))
}

func TestDrawText(t *testing.T) {
	d := cpuDescriptor()
	d.Caption = "Mem:"
	m := newFixed(t, d, nil, "1.00Gi/4.00Gi")
	m.SetMode(ModeText)
	s := screen.New(20, 1)
	m.Draw(nil, s, 0, 0, 20)
	assert.Equal(t, "Mem:1.00Gi/4.00Gi   ", s.Line(0))
	assert.Equal(t, theme.RoleMeterText, s.At(0, 0).Role)
	assert.Equal(t, theme.RoleMeterValue, s.At(4, 0).Role)

	s = screen.New(20, 1)
	m.Draw(nil, s, 0, 0, 6)
	assert.Equal(t, "Mem:1.", s.Line(0)[:6])
	assert.Equal(t, ' ', s.At(6, 0).Rune)
}

type segmented struct{ fixed }

func (segmented) Display(m *Meter, out *RichText) {
	out.Append(theme.RoleTasksRunning, "3")
	out.Append(theme.RoleMeterText, " running")
}

func TestDrawTextSegments(t *testing.T) {
	c, err := NewClass(Descriptor{Name: "Tasks", Caption: "Tasks: ", MaxItems: 1, Attributes: []theme.Role{theme.RoleTasksRunning}}, &segmented{})
	require.NoError(t, err)
	m := New(c, 0)
	m.SetMode(ModeText)
	s := screen.New(16, 1)
	m.Draw(nil, s, 0, 0, 16)
	assert.Equal(t, "Tasks: 3 running", s.Line(0))
	assert.Equal(t, theme.RoleTasksRunning, s.At(7, 0).Role)
	assert.Equal(t, theme.RoleMeterText, s.At(9, 0).Role)
}

func TestDrawGraphASCII(t *testing.T) {
	m := newFixed(t, cpuDescriptor(), []float64{50, 0, 0}, "")
	m.SetMode(ModeGraph)
	s := screen.New(5, 4)
	m.Draw(nil, s, 0, 0, 5)

	// One column: the previous (empty) sample on the left, 0.5 on the right.
	assert.Equal(t, "CPU  ", s.Line(0))
	assert.Equal(t, "     ", s.Line(1))
	assert.Equal(t, "   : ", s.Line(2))
	assert.Equal(t, "   : ", s.Line(3))
	assert.Equal(t, theme.RoleGraph1, s.At(3, 0).Role)
	assert.Equal(t, theme.RoleGraph2, s.At(3, 3).Role)
}

func TestDrawGraphUTF8Full(t *testing.T) {
	m := newFixed(t, cpuDescriptor(), []float64{100, 0, 0}, "")
	m.SetMode(ModeGraph)
	m.graph = newGraphData()
	for i := range m.graph.Values {
		m.graph.Values[i] = 1
	}
	s := screen.New(6, 4)
	m.Draw(&RenderContext{Glyphs: UTF8Glyphs}, s, 0, 0, 6)
	assert.Equal(t, "CPU⣿⣿ ", s.Line(0))
	for y := 1; y < GraphHeight; y++ {
		assert.Equal(t, "   ⣿⣿ ", s.Line(y), "row %d", y)
	}
}

func TestDrawLEDASCII(t *testing.T) {
	d := cpuDescriptor()
	d.Caption = ""
	m := newFixed(t, d, nil, "12:")
	m.SetMode(ModeLED)
	s := screen.New(10, 3)
	m.Draw(nil, s, 0, 0, 10)
	assert.Equal(t, "     __   ", s.Line(0))
	assert.Equal(t, "   | __|  ", s.Line(1))
	assert.Equal(t, "   ||__ : ", s.Line(2))
}

func TestDrawLEDCaptionOnTextRow(t *testing.T) {
	d := cpuDescriptor()
	d.Caption = "up "
	m := newFixed(t, d, nil, "7")
	m.SetMode(ModeLED)

	s := screen.New(8, 3)
	m.Draw(&RenderContext{Glyphs: UTF8Glyphs}, s, 0, 0, 8)
	assert.Equal(t, "   ╶──┐ ", s.Line(0))
	assert.Equal(t, "up    │ ", s.Line(1))
	assert.Equal(t, "      ╵ ", s.Line(2))

	s = screen.New(5, 3)
	m.Draw(nil, s, 0, 0, 5)
	assert.Equal(t, "up   ", s.Line(2), "digit clipped at the right edge")
}
