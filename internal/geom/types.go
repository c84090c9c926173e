package geom

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Dim selects which pixel dimension an axis is laid out along.
type Dim int

const (
	DimX Dim = iota
	DimY
)

func (d Dim) String() string {
	if d == DimY {
		return "y"
	}
	return "x"
}

// Flag is a boolean that also accepts the "True"/"False" strings some hosts send.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		*f = Flag(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*f = Flag(v)
	return nil
}

// CoordinateAxis describes one named domain axis.
// Bounds is the selected sub-range of FullBounds.
type CoordinateAxis struct {
	Name         string     `json:"name"`
	Bounds       [2]float64 `json:"bounds"`
	FullBounds   [2]float64 `json:"full_bounds"`
	ReverseOrder Flag       `json:"reverse_order"`
	Labels       []string   `json:"labels,omitempty"`
}

// Span is the length of the full range.
func (a CoordinateAxis) Span() float64 { return a.FullBounds[1] - a.FullBounds[0] }

// Label returns the label for a bound value, falling back to the number itself.
func (a CoordinateAxis) Label(v int) string {
	if v >= 0 && v < len(a.Labels) {
		return a.Labels[v]
	}
	return strconv.Itoa(v)
}

// AxisAssignment names the axes mapped to the horizontal and vertical image dimensions.
type AxisAssignment struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// Name returns the axis name assigned to d.
func (a AxisAssignment) Name(d Dim) string {
	if d == DimY {
		return a.Y
	}
	return a.X
}

// Swapped exchanges the x and y assignments.
func (a AxisAssignment) Swapped() AxisAssignment { return AxisAssignment{X: a.Y, Y: a.X} }

// PixelShape is the rendered preview size in pixels.
type PixelShape struct {
	Width  int
	Height int
}

// Size returns the pixel extent along d.
func (s PixelShape) Size(d Dim) float64 {
	if d == DimY {
		return float64(s.Height)
	}
	return float64(s.Width)
}

// Valid reports whether both dimensions are positive.
func (s PixelShape) Valid() bool { return s.Width > 0 && s.Height > 0 }

// Point is a location in pixel space.
type Point struct {
	X float64
	Y float64
}

// PixelRect is the selection rectangle in pixel space.
type PixelRect struct {
	XMin float64
	YMin float64
	XMax float64
	YMax float64
}

// Extent returns the [min, max] pair along d.
func (r PixelRect) Extent(d Dim) (float64, float64) {
	if d == DimY {
		return r.YMin, r.YMax
	}
	return r.XMin, r.XMax
}

// WithExtent returns a copy of r with the extent along d replaced.
func (r PixelRect) WithExtent(d Dim, lo, hi float64) PixelRect {
	if d == DimY {
		r.YMin, r.YMax = lo, hi
	} else {
		r.XMin, r.XMax = lo, hi
	}
	return r
}

// Expanded grows the rectangle by n on every side.
func (r PixelRect) Expanded(n float64) PixelRect {
	return PixelRect{XMin: r.XMin - n, YMin: r.YMin - n, XMax: r.XMax + n, YMax: r.YMax + n}
}

// Contains reports whether p lies inside r, edges included.
func (r PixelRect) Contains(p Point) bool {
	return p.X >= r.XMin && p.X <= r.XMax && p.Y >= r.YMin && p.Y <= r.YMax
}

// Scene bundles an axis assignment with its coordinate list, as stored on disk.
type Scene struct {
	Preview     string           `json:"preview,omitempty"`
	Axes        AxisAssignment   `json:"axes"`
	Coordinates []CoordinateAxis `json:"coordinates"`
}
