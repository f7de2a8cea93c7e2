package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DoyleJ11/fracmatch/internal/fraction"
	"github.com/DoyleJ11/fracmatch/internal/render"
)

type Styles struct {
	Header   lipgloss.Style
	Label    lipgloss.Style
	Cursor   lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Disabled lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E293B")),
		Label:    lipgloss.NewStyle().Bold(true),
		Cursor:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563EB")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B")),
		Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#22C55E")).Padding(0, 1),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#EF4444")).Padding(0, 1),
		Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")),
	}
}

// glyphs draws a visual fraction as one character per part: a ring of dots
// for circles, a strip of blocks for bars.
func glyphs(v fraction.Visual) string {
	d := render.RenderVisual(v)
	if d.Empty() {
		return "∅"
	}

	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(v.Color))
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color(render.NeutralFill))

	var b strings.Builder
	switch d.Shape {
	case fraction.ShapeCircle:
		b.WriteString("(")
		for _, s := range d.Slices {
			if s.Filled {
				b.WriteString(filled.Render("●"))
			} else {
				b.WriteString(empty.Render("○"))
			}
		}
		b.WriteString(")")
	default:
		b.WriteString("[")
		for _, s := range d.Segments {
			if s.Filled {
				b.WriteString(filled.Render("█"))
			} else {
				b.WriteString(empty.Render("░"))
			}
		}
		b.WriteString("]")
	}
	return b.String()
}
