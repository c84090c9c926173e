package geom

import "math"

// DisplayWidth is the fixed width, in pixels, previews are rendered at.
const DisplayWidth = 300

// ShapeFor scales a natural image size to the given display width,
// preserving aspect ratio with a rounded height.
func ShapeFor(naturalW, naturalH, width int) (PixelShape, bool) {
	if naturalW <= 0 || naturalH <= 0 || width <= 0 {
		return PixelShape{}, false
	}
	factor := float64(width) / float64(naturalW)
	return PixelShape{Width: width, Height: int(Round(float64(naturalH) * factor))}, true
}

// Round rounds halves toward positive infinity.
func Round(v float64) float64 { return math.Floor(v + 0.5) }

// flipped reports whether increasing domain values run against increasing pixels.
// Pixel y grows downward, so the y axis is flipped unless the axis says otherwise.
func flipped(a CoordinateAxis, d Dim) bool {
	if d == DimY {
		return !bool(a.ReverseOrder)
	}
	return bool(a.ReverseOrder)
}

// ToPixel maps the selected bounds of a to a pixel interval of length size.
// ok is false when the full range is empty or size is not positive.
func ToPixel(a CoordinateAxis, d Dim, size float64) (lo, hi float64, ok bool) {
	span := a.Span()
	if span == 0 || size <= 0 {
		return 0, 0, false
	}
	min := (a.Bounds[0] - a.FullBounds[0]) / span * size
	max := (a.Bounds[1] - a.FullBounds[0]) / span * size
	if flipped(a, d) {
		return size - max, size - min, true
	}
	return min, max, true
}

// ToDomain maps a pixel interval back to integer domain bounds of a.
func ToDomain(a CoordinateAxis, d Dim, size, lo, hi float64) ([2]int, bool) {
	if size <= 0 {
		return [2]int{}, false
	}
	if flipped(a, d) {
		lo, hi = size-hi, size-lo
	}
	span := a.Span()
	return [2]int{
		int(Round(lo/size*span + a.FullBounds[0])),
		int(Round(hi/size*span + a.FullBounds[0])),
	}, true
}

// ValueAt returns the unrounded domain value under pixel coordinate px.
func ValueAt(a CoordinateAxis, d Dim, size, px float64) (float64, bool) {
	if size <= 0 {
		return 0, false
	}
	if flipped(a, d) {
		px = size - px
	}
	return px/size*a.Span() + a.FullBounds[0], true
}

// Find returns the first axis in coords called name.
func Find(coords []CoordinateAxis, name string) (CoordinateAxis, bool) {
	for _, c := range coords {
		if c.Name == name {
			return c, true
		}
	}
	return CoordinateAxis{}, false
}

// RectFromAxes derives the pixel rectangle for the assigned axes.
// Extents whose axis is missing or degenerate are carried over from prev.
func RectFromAxes(axes AxisAssignment, coords []CoordinateAxis, shape PixelShape, prev PixelRect) PixelRect {
	r := prev
	if !shape.Valid() {
		return r
	}
	for _, d := range []Dim{DimX, DimY} {
		a, ok := Find(coords, axes.Name(d))
		if !ok {
			continue
		}
		if lo, hi, ok := ToPixel(a, d, shape.Size(d)); ok {
			r = r.WithExtent(d, lo, hi)
		}
	}
	return r
}
