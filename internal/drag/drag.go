// Package drag tracks which part of a selection rectangle the pointer is moving.
package drag

import (
	"math"

	"boundsel/internal/geom"
)

// Allowance is the default hit-test slack in pixels.
const Allowance = 5.0

// State is the transient record of an active drag.
type State struct {
	From     geom.Point
	XMin     bool
	XMax     bool
	YMin     bool
	YMax     bool
	WholeBox bool
}

// Controller is Idle while state is nil and Dragging otherwise.
type Controller struct {
	allowance float64
	state     *State
}

// New returns an idle controller. A non-positive allowance selects the default.
func New(allowance float64) *Controller {
	if allowance <= 0 {
		allowance = Allowance
	}
	return &Controller{allowance: allowance}
}

// Allowance returns the hit-test slack in use.
func (c *Controller) Allowance() float64 { return c.allowance }

// Active reports whether a drag is in progress.
func (c *Controller) Active() bool { return c.state != nil }

// State returns a copy of the current drag state.
func (c *Controller) State() (State, bool) {
	if c.state == nil {
		return State{}, false
	}
	return *c.state, true
}

// Press starts a drag if p lies within r grown by the allowance.
// Edges within twice the allowance become active; with none, the whole box moves.
func (c *Controller) Press(p geom.Point, r geom.PixelRect) bool {
	if !r.Expanded(c.allowance).Contains(p) {
		return false
	}
	tol := 2 * c.allowance
	s := &State{From: p}
	s.XMin = math.Abs(p.X-r.XMin) <= tol
	s.XMax = math.Abs(p.X-r.XMax) <= tol
	s.YMin = math.Abs(p.Y-r.YMin) <= tol
	s.YMax = math.Abs(p.Y-r.YMax) <= tol
	s.WholeBox = !(s.XMin || s.XMax || s.YMin || s.YMax)
	c.state = s
	return true
}

// Move applies the pointer delta since the last event to r.
// Each axis is committed only if it stays within shape; otherwise it is left as is.
func (c *Controller) Move(p geom.Point, r geom.PixelRect, shape geom.PixelShape) geom.PixelRect {
	s := c.state
	if s == nil {
		return r
	}
	dx, dy := p.X-s.From.X, p.Y-s.From.Y
	s.From = p
	r = shift(r, geom.DimX, dx, s.XMin || s.WholeBox, s.XMax || s.WholeBox, shape.Size(geom.DimX))
	r = shift(r, geom.DimY, dy, s.YMin || s.WholeBox, s.YMax || s.WholeBox, shape.Size(geom.DimY))
	return r
}

func shift(r geom.PixelRect, d geom.Dim, delta float64, lo, hi bool, size float64) geom.PixelRect {
	if !lo && !hi {
		return r
	}
	min, max := r.Extent(d)
	if lo {
		min += delta
	}
	if hi {
		max += delta
	}
	if min >= 0 && max <= size {
		return r.WithExtent(d, min, max)
	}
	return r
}

// Release ends the drag. It reports whether a drag was in progress.
func (c *Controller) Release() bool {
	if c.state == nil {
		return false
	}
	c.state = nil
	return true
}
