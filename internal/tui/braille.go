package tui

// brailleBuf is an overlay at 2x4 dots per cell.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// dotBits maps [column][row] within a cell to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[rx][ry]
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawRect outlines the rectangle spanned by two micro corners.
func (b *brailleBuf) drawRect(x0, y0, x1, y1 int) {
	b.drawLineMicro(x0, y0, x1, y0)
	b.drawLineMicro(x1, y0, x1, y1)
	b.drawLineMicro(x1, y1, x0, y1)
	b.drawLineMicro(x0, y1, x0, y0)
}

// glyph returns the braille rune for a cell, or 0 when the cell is empty.
func (b *brailleBuf) glyph(cx, cy int) rune {
	if cy < 0 || cy >= b.h || cx < 0 || cx >= b.w || b.m[cy][cx] == 0 {
		return 0
	}
	return rune(0x2800 + int(b.m[cy][cx]))
}
