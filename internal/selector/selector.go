// Package selector binds a preview, an axis assignment and a coordinate list
// to an interactive selection rectangle.
//
// The rectangle is re-derived from the coordinate bounds whenever an input
// changes, except during a drag, when the rectangle itself is authoritative.
// Inputs that arrive mid-drag take effect on release.
// Releasing a drag yields one Update per assigned axis; the caller owns the
// coordinate list and decides whether to apply them.
package selector

import (
	"boundsel/internal/drag"
	"boundsel/internal/geom"
)

// Update is an update-bounds event for one axis.
type Update struct {
	Name   string `json:"name"`
	Bounds [2]int `json:"bounds"`
}

// Selector is not safe for concurrent use; feed it from a single event loop.
type Selector struct {
	width    int
	preview  string
	axes     geom.AxisAssignment
	coords   []geom.CoordinateAxis
	shape    geom.PixelShape
	hasShape bool

	// shape of an image that finished loading mid-drag
	pending    geom.PixelShape
	hasPending bool
	rect       geom.PixelRect
	drag       *drag.Controller
}

// New returns a selector rendering previews width pixels wide.
func New(width int, allowance float64) *Selector {
	if width <= 0 {
		width = geom.DisplayWidth
	}
	return &Selector{width: width, drag: drag.New(allowance)}
}

// Width is the display width previews are scaled to.
func (s *Selector) Width() int { return s.width }

// Allowance is the hit-test margin around the rectangle, in pixels.
func (s *Selector) Allowance() float64 { return s.drag.Allowance() }

// SetPreview records a new preview source. It reports whether the source
// changed, in which case the caller should load it and call ImageLoaded.
// The previous shape stays in effect until then.
func (s *Selector) SetPreview(src string) bool {
	if src == s.preview {
		return false
	}
	s.preview = src
	return true
}

// Preview returns the current preview source.
func (s *Selector) Preview() string { return s.preview }

// ImageLoaded completes a load of src with its natural size.
// Loads for a source that is no longer current are ignored. During a drag
// the new shape is held back until release so the dragged rectangle keeps
// the pixel frame it was pressed in.
func (s *Selector) ImageLoaded(src string, naturalW, naturalH int) bool {
	if src != s.preview {
		return false
	}
	shape, ok := geom.ShapeFor(naturalW, naturalH, s.width)
	if !ok {
		return false
	}
	if s.drag.Active() {
		s.pending, s.hasPending = shape, true
		return true
	}
	s.shape, s.hasShape = shape, true
	s.refresh()
	return true
}

// SetAxes replaces the axis assignment.
func (s *Selector) SetAxes(a geom.AxisAssignment) {
	s.axes = a
	s.refresh()
}

// Axes returns the current axis assignment.
func (s *Selector) Axes() geom.AxisAssignment { return s.axes }

// SetCoordinates replaces the coordinate list. The slice is copied.
func (s *Selector) SetCoordinates(coords []geom.CoordinateAxis) {
	s.coords = append(s.coords[:0:0], coords...)
	s.refresh()
}

// Axis returns the coordinate assigned to d.
func (s *Selector) Axis(d geom.Dim) (geom.CoordinateAxis, bool) {
	return geom.Find(s.coords, s.axes.Name(d))
}

func (s *Selector) refresh() {
	if !s.hasShape || s.drag.Active() {
		return
	}
	s.rect = geom.RectFromAxes(s.axes, s.coords, s.shape, s.rect)
}

// Shape returns the preview pixel shape once an image has loaded.
func (s *Selector) Shape() (geom.PixelShape, bool) { return s.shape, s.hasShape }

// Rect returns the current pixel rectangle; ok is false before the first load.
func (s *Selector) Rect() (geom.PixelRect, bool) { return s.rect, s.hasShape }

// Dragging reports whether a drag is active.
func (s *Selector) Dragging() bool { return s.drag.Active() }

// DragState exposes the active drag, if any.
func (s *Selector) DragState() (drag.State, bool) { return s.drag.State() }

// PointerDown starts a drag when p hits the rectangle.
func (s *Selector) PointerDown(p geom.Point) bool {
	if !s.hasShape {
		return false
	}
	return s.drag.Press(p, s.rect)
}

// PointerMove updates the rectangle during a drag. It reports whether it changed.
func (s *Selector) PointerMove(p geom.Point) bool {
	if !s.drag.Active() {
		return false
	}
	prev := s.rect
	s.rect = s.drag.Move(p, s.rect, s.shape)
	return s.rect != prev
}

// PointerUp ends a drag and returns the committed bounds. The rectangle is
// then re-derived from the inputs, so it only keeps the dragged position
// once the caller applies the updates.
func (s *Selector) PointerUp() []Update {
	if !s.drag.Release() {
		return nil
	}
	ups := s.commit()
	if s.hasPending {
		s.shape, s.hasShape = s.pending, true
		s.pending, s.hasPending = geom.PixelShape{}, false
	}
	s.refresh()
	return ups
}

// PointerLeave is treated as a release.
func (s *Selector) PointerLeave() []Update { return s.PointerUp() }

// commit converts the rectangle to one Update per distinct assigned axis.
// An axis assigned to both dimensions is reported for x only.
func (s *Selector) commit() []Update {
	var out []Update
	for _, d := range []geom.Dim{geom.DimX, geom.DimY} {
		a, ok := s.Axis(d)
		if !ok {
			continue
		}
		if d == geom.DimY && s.axes.Y == s.axes.X {
			continue
		}
		lo, hi := s.rect.Extent(d)
		b, ok := geom.ToDomain(a, d, s.shape.Size(d), lo, hi)
		if !ok {
			continue
		}
		out = append(out, Update{Name: a.Name, Bounds: b})
	}
	return out
}

// Apply returns a copy of coords with the updates applied.
// Names not present in coords are ignored.
func Apply(coords []geom.CoordinateAxis, updates []Update) []geom.CoordinateAxis {
	out := append(coords[:0:0], coords...)
	for _, u := range updates {
		for i := range out {
			if out[i].Name == u.Name {
				out[i].Bounds = [2]float64{float64(u.Bounds[0]), float64(u.Bounds[1])}
			}
		}
	}
	return out
}
