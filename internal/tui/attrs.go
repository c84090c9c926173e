package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"boundsel/internal/geom"
)

func coordColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "axis", Width: 4},
		{Title: "name", Width: 10},
		{Title: "bounds", Width: 16},
		{Title: "full", Width: 16},
		{Title: "rev", Width: 5},
	}
}

// refreshAttrsFromCurrent rebuilds the coordinate table from the host's list
func (m *Model) refreshAttrsFromCurrent() {
	rows := make([]table.Row, 0, len(m.coords))
	for i, c := range m.coords {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			m.assignedDim(c.Name),
			c.Name,
			formatRange(c.Bounds),
			formatRange(c.FullBounds),
			fmt.Sprintf("%v", bool(c.ReverseOrder)),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(coordColumns())
	m.tbl.SetRows(rows)
}

func (m *Model) assignedDim(name string) string {
	switch name {
	case m.axes.X:
		return "x"
	case m.axes.Y:
		return "y"
	}
	return ""
}

func formatRange(r [2]float64) string {
	return fmt.Sprintf("[%g, %g]", r[0], r[1])
}

// boundsLabel renders an axis' bounds with its labels when it has any.
func boundsLabel(a geom.CoordinateAxis) string {
	if len(a.Labels) == 0 {
		return formatRange(a.Bounds)
	}
	lo, hi := int(geom.Round(a.Bounds[0])), int(geom.Round(a.Bounds[1]))
	return fmt.Sprintf("[%s, %s]", a.Label(lo), a.Label(hi))
}
