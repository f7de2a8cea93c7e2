package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Path returns the SVG path data for a wedge centred on c.
func (s Slice) Path(c Point, r float64) string {
	if s.Sweep >= 1 {
		// A single wedge is the whole disc; one arc cannot close on itself.
		opposite := Point{X: 2*c.X - s.Start.X, Y: 2*c.Y - s.Start.Y}
		return fmt.Sprintf("M %s,%s A %s,%s 0 1 1 %s,%s A %s,%s 0 1 1 %s,%s Z",
			num(s.Start.X), num(s.Start.Y),
			num(r), num(r), num(opposite.X), num(opposite.Y),
			num(r), num(r), num(s.Start.X), num(s.Start.Y))
	}
	largeArc := 0
	if s.Sweep > 0.5 {
		largeArc = 1
	}
	return fmt.Sprintf("M %s,%s L %s,%s A %s,%s 0 %d 1 %s,%s Z",
		num(c.X), num(c.Y),
		num(s.Start.X), num(s.Start.Y),
		num(r), num(r), largeArc,
		num(s.End.X), num(s.End.Y))
}

// WriteSVG writes the drawing as a standalone SVG document.
func (d Drawing) WriteSVG(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="100%%" height="100%%" viewBox="0 0 %s %s">`,
		num(d.Width), num(d.Height))
	for _, s := range d.Slices {
		fmt.Fprintf(&b, `<path d="%s" fill="%s" stroke="%s" stroke-width="%s"/>`,
			s.Path(d.Center, d.Radius), attr(s.Fill), OutlineColor, num(StrokeWidth))
	}
	for _, s := range d.Segments {
		fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s" rx="%s" ry="%s"/>`,
			num(s.X), num(s.Y), num(s.Width), num(s.Height), attr(s.Fill), num(CornerRadius), num(CornerRadius))
	}
	b.WriteString("</svg>")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func (d Drawing) SVG() string {
	var b strings.Builder
	_ = d.WriteSVG(&b)
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;", `'`, "&#39;")

func attr(s string) string {
	return attrEscaper.Replace(s)
}
