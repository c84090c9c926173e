package tui

import (
	"math"

	"boundsel/internal/geom"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
	// rows shown before the first preview has loaded
	placeholderRows = 10
)

// surface is the on-screen placement of the preview, in terminal cells.
// Each cell covers cellW × cellH preview pixels, two pixel rows per half-block.
type surface struct {
	originX int
	originY int
	cols    int
	rows    int
	cellW   float64
	cellH   float64
}

func (m Model) surface() surface {
	s := surface{cols: m.cfg.Display.Columns, originY: headerHeight + 1, originX: 1}
	if m.showSidebar {
		s.originX += sidebarWidth + 1
	}
	width := m.sel.Width()
	s.cellW = float64(width) / float64(s.cols)
	s.cellH = 2 * s.cellW
	s.rows = placeholderRows
	if shape, ok := m.sel.Shape(); ok {
		s.rows = max(1, int(math.Ceil(float64(shape.Height)/s.cellH)))
	}
	return s
}

// toPixel maps a terminal cell to the preview pixel at its centre.
func (s surface) toPixel(cx, cy int) (geom.Point, bool) {
	x, y := cx-s.originX, cy-s.originY
	inside := x >= 0 && x < s.cols && y >= 0 && y < s.rows
	return geom.Point{
		X: (float64(x) + 0.5) * s.cellW,
		Y: (float64(y) + 0.5) * s.cellH,
	}, inside
}

// cell maps a preview pixel to the cell containing it, clamped to the surface.
func (s surface) cell(p geom.Point) (int, int) {
	cx := int(p.X / s.cellW)
	cy := int(p.Y / s.cellH)
	return clamp(cx, 0, s.cols-1), clamp(cy, 0, s.rows-1)
}

// micro maps a preview pixel onto the 2x4 braille microgrid, clamped to the surface.
func (s surface) micro(p geom.Point) (int, int) {
	mx := int(p.X / s.cellW * 2)
	my := int(p.Y / s.cellH * 4)
	return clamp(mx, 0, s.cols*2-1), clamp(my, 0, s.rows*4-1)
}
