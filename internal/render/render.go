// Package render lays out pie and bar drawings of fractions.
//
// Everything here is a pure function of its inputs; the output can be written
// as SVG or walked by any other front end.
package render

import (
	"math"

	"github.com/DoyleJ11/fracmatch/internal/fraction"
)

const (
	Size         = 100.0
	Margin       = 5.0
	Radius       = Size/2 - Margin
	BarGap       = 2.0
	CornerRadius = 4.0
	StrokeWidth  = 2.0
	NeutralFill  = "#E5E7EB"
	OutlineColor = "#FFFFFF"
)

type Point struct {
	X, Y float64
}

// Slice is one wedge of a circle, clockwise from Start to End.
type Slice struct {
	Start, End Point
	// Sweep is the wedge's share of a full turn.
	Sweep  float64
	Filled bool
	Fill   string
}

type Segment struct {
	X, Y, Width, Height float64
	Filled              bool
	Fill                string
}

type Drawing struct {
	Shape    fraction.Shape
	Width    float64
	Height   float64
	Center   Point
	Radius   float64
	Slices   []Slice
	Segments []Segment
}

// Empty reports whether there is nothing to draw.
func (d Drawing) Empty() bool {
	return len(d.Slices) == 0 && len(d.Segments) == 0
}

func (d Drawing) FilledCount() int {
	n := 0
	for _, s := range d.Slices {
		if s.Filled {
			n++
		}
	}
	for _, s := range d.Segments {
		if s.Filled {
			n++
		}
	}
	return n
}

// Render partitions the shape into f.Denominator parts and fills the first
// f.Numerator of them with color. Unknown shapes are drawn as bars.
func Render(f fraction.Fraction, shape fraction.Shape, color string) Drawing {
	d := Drawing{Shape: shape, Width: Size, Height: Size}
	if f.Denominator <= 0 {
		return d
	}
	if shape == fraction.ShapeCircle {
		d.Center = Point{X: Size / 2, Y: Size / 2}
		d.Radius = Radius
		d.Slices = circle(f, color, d.Center)
		return d
	}
	d.Shape = fraction.ShapeBar
	d.Segments = bar(f, color)
	return d
}

func RenderVisual(v fraction.Visual) Drawing {
	return Render(v.Fraction, v.Shape, v.Color)
}

func circle(f fraction.Fraction, color string, c Point) []Slice {
	sweep := 1 / float64(f.Denominator)
	slices := make([]Slice, 0, f.Denominator)
	for i := 0; i < f.Denominator; i++ {
		// Shift a quarter turn back so the first slice starts at 12 o'clock.
		start := float64(i)*sweep - 0.25
		end := float64(i+1)*sweep - 0.25
		filled := i < f.Numerator
		slices = append(slices, Slice{
			Start:  onCircle(c, start),
			End:    onCircle(c, end),
			Sweep:  sweep,
			Filled: filled,
			Fill:   fillFor(filled, color),
		})
	}
	return slices
}

func bar(f fraction.Fraction, color string) []Segment {
	width := (Size - float64(f.Denominator-1)*BarGap) / float64(f.Denominator)
	segments := make([]Segment, 0, f.Denominator)
	for i := 0; i < f.Denominator; i++ {
		filled := i < f.Numerator
		segments = append(segments, Segment{
			X:      round(float64(i) * (width + BarGap)),
			Y:      0,
			Width:  round(width),
			Height: Size,
			Filled: filled,
			Fill:   fillFor(filled, color),
		})
	}
	return segments
}

func onCircle(c Point, turn float64) Point {
	return Point{
		X: round(c.X + Radius*math.Cos(2*math.Pi*turn)),
		Y: round(c.Y + Radius*math.Sin(2*math.Pi*turn)),
	}
}

func fillFor(filled bool, color string) string {
	if filled {
		return color
	}
	return NeutralFill
}

// round trims float noise so coordinates print stably.
func round(v float64) float64 {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return 0
	}
	return r
}
