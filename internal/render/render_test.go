package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/fracmatch/internal/fraction"
)

func TestRenderCircle(t *testing.T) {
	d := Render(fraction.New(1, 4), fraction.ShapeCircle, "#60A5FA")

	require.Len(t, d.Slices, 4)
	assert.Empty(t, d.Segments)
	assert.Equal(t, 1, d.FilledCount())

	// First slice starts at the top and ends at 3 o'clock.
	assert.Equal(t, Point{X: 50, Y: 5}, d.Slices[0].Start)
	assert.Equal(t, Point{X: 95, Y: 50}, d.Slices[0].End)
	assert.Equal(t, "#60A5FA", d.Slices[0].Fill)
	for _, s := range d.Slices[1:] {
		assert.Equal(t, NeutralFill, s.Fill)
		assert.False(t, s.Filled)
	}
	// Slices tile the disc: each ends where the next starts.
	for i := 0; i < len(d.Slices)-1; i++ {
		assert.Equal(t, d.Slices[i].End, d.Slices[i+1].Start)
	}
	assert.Equal(t, d.Slices[0].Start, d.Slices[3].End)

	assert.Equal(t, "M 50,50 L 50,5 A 45,45 0 0 1 95,50 Z", d.Slices[0].Path(d.Center, d.Radius))
}

func TestRenderBar(t *testing.T) {
	d := Render(fraction.New(2, 3), fraction.ShapeBar, "#F87171")

	require.Len(t, d.Segments, 3)
	assert.Empty(t, d.Slices)
	assert.Equal(t, 2, d.FilledCount())

	width := (100.0 - 2*BarGap) / 3
	assert.InDelta(t, width, d.Segments[0].Width, 0.001)
	assert.Equal(t, 0.0, d.Segments[0].X)
	assert.InDelta(t, width+BarGap, d.Segments[1].X, 0.001)
	last := d.Segments[2]
	assert.InDelta(t, 100.0, last.X+last.Width, 0.01, "segments span the strip")
	assert.Equal(t, "#F87171", d.Segments[1].Fill)
	assert.Equal(t, NeutralFill, d.Segments[2].Fill)
}

func TestRenderZeroDenominatorIsEmpty(t *testing.T) {
	for _, shape := range []fraction.Shape{fraction.ShapeCircle, fraction.ShapeBar} {
		d := Render(fraction.New(3, 0), shape, "#000")
		assert.True(t, d.Empty())
		assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="100%" viewBox="0 0 100 100"></svg>`, d.SVG())
	}
}

func TestRenderSingleSliceIsWholeDisc(t *testing.T) {
	d := Render(fraction.New(1, 1), fraction.ShapeCircle, "#34D399")
	require.Len(t, d.Slices, 1)
	assert.Equal(t, "M 50,5 A 45,45 0 1 1 50,95 A 45,45 0 1 1 50,5 Z", d.Slices[0].Path(d.Center, d.Radius))
}

func TestRenderVisualMatchesRender(t *testing.T) {
	v := fraction.Visual{Fraction: fraction.New(3, 6), Shape: fraction.ShapeBar, Color: "#A78BFA"}
	assert.Equal(t, Render(v.Fraction, v.Shape, v.Color), RenderVisual(v))
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	d := Render(fraction.New(1, 2), fraction.ShapeCircle, `#fff" onload="x`)
	require.NoError(t, d.WriteSVG(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Equal(t, 2, strings.Count(out, "<path"))
	assert.Contains(t, out, `fill="#fff&quot; onload=&quot;x"`)
	assert.Contains(t, out, `fill="#E5E7EB"`)

	bars := Render(fraction.New(1, 2), fraction.ShapeBar, "#FBBF24").SVG()
	assert.Equal(t, 2, strings.Count(bars, "<rect"))
	assert.Contains(t, bars, `width="49"`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVGPropagatesErrors(t *testing.T) {
	err := Render(fraction.New(1, 2), fraction.ShapeBar, "#000").WriteSVG(failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write svg")
}
