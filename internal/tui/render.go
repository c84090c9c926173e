package tui

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"boundsel/internal/geom"
	"boundsel/internal/preview"
)

// renderSurface draws the preview with half-block cells and overlays the
// selection outline and its four corner handles.
func (m Model) renderSurface(s surface) string {
	if m.cells == nil {
		msg := "no preview"
		if m.loading {
			msg = "loading preview…"
		}
		return lipgloss.Place(s.cols, s.rows, lipgloss.Center, lipgloss.Center, dimStyle.Render(msg))
	}
	handle := lipgloss.Color(m.cfg.Style.Handle)
	br := newBrailleBuf(s.cols, s.rows)
	handles := map[[2]int]bool{}
	if r, ok := m.sel.Rect(); ok {
		x0, y0 := s.micro(geom.Point{X: r.XMin, Y: r.YMin})
		x1, y1 := s.micro(geom.Point{X: r.XMax, Y: r.YMax})
		br.drawRect(x0, y0, x1, y1)
		for _, p := range []geom.Point{
			{X: r.XMin, Y: r.YMin}, {X: r.XMax, Y: r.YMin},
			{X: r.XMin, Y: r.YMax}, {X: r.XMax, Y: r.YMax},
		} {
			cx, cy := s.cell(p)
			handles[[2]int{cx, cy}] = true
		}
	}

	b := m.cells.Bounds()
	at := func(x, y int) color.Color {
		if y >= b.Max.Y {
			y = b.Max.Y - 1
		}
		return m.cells.At(b.Min.X+x, b.Min.Y+y)
	}
	lines := make([]string, s.rows)
	for y := 0; y < s.rows; y++ {
		var sb strings.Builder
		for x := 0; x < s.cols; x++ {
			top, bottom := at(x, 2*y), at(x, 2*y+1)
			cell := lipgloss.NewStyle().Background(hexColor(bottom))
			switch {
			case handles[[2]int{x, y}]:
				sb.WriteString(cell.Foreground(handle).Bold(true).Render("●"))
			case br.glyph(x, y) != 0:
				sb.WriteString(cell.Foreground(handle).Render(string(br.glyph(x, y))))
			default:
				sb.WriteString(cell.Foreground(hexColor(top)).Render("▀"))
			}
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// renderInfo summarises the inputs and the current selection.
func (m Model) renderInfo() string {
	row := func(k, v string) string { return dimStyle.Render(padRight(k, 8-len(k))) + v }
	var out []string
	src := m.sel.Preview()
	if src == "" {
		src = "<none>"
	}
	out = append(out, row("preview", preview.Describe(src)))
	if m.selPath != "" {
		out = append(out, row("opened", filepath.Base(m.selPath)))
	}
	if shape, ok := m.sel.Shape(); ok {
		out = append(out, row("shape", fmt.Sprintf("%d×%d px", shape.Width, shape.Height)))
	}
	for _, d := range []geom.Dim{geom.DimX, geom.DimY} {
		name := m.axes.Name(d)
		a, ok := geom.Find(m.coords, name)
		if !ok {
			out = append(out, row(d.String(), fmt.Sprintf("%s (not in coordinates)", name)))
			continue
		}
		rev := ""
		if a.ReverseOrder {
			rev = " reversed"
		}
		out = append(out, row(d.String(), fmt.Sprintf("%s %s of %s%s", a.Name, boundsLabel(a), formatRange(a.FullBounds), rev)))
	}
	out = append(out, row("grab", fmt.Sprintf("±%.0f px", m.sel.Allowance())))
	if r, ok := m.sel.Rect(); ok {
		out = append(out, row("rect", fmt.Sprintf("[%.0f %.0f %.0f %.0f]", r.XMin, r.YMin, r.XMax, r.YMax)))
	}
	if m.sel.Dragging() {
		out = append(out, row("drag", describeDrag(m.sel)))
	}
	if len(m.last) > 0 {
		out = append(out, row("emitted", formatUpdates(m.last)))
	}
	return strings.Join(out, "\n")
}

// hoverReadout gives the domain values under the mouse for the footer.
func (m Model) hoverReadout() string {
	if !m.hovering {
		return ""
	}
	shape, ok := m.sel.Shape()
	if !ok {
		return ""
	}
	var parts []string
	for _, d := range []geom.Dim{geom.DimX, geom.DimY} {
		a, ok := geom.Find(m.coords, m.axes.Name(d))
		if !ok {
			continue
		}
		px := m.hoverPx.X
		if d == geom.DimY {
			px = m.hoverPx.Y
		}
		if v, ok := geom.ValueAt(a, d, shape.Size(d), px); ok {
			parts = append(parts, fmt.Sprintf("%s=%.2f", a.Name, v))
		}
	}
	return strings.Join(parts, " ")
}
