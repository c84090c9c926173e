package drag

import (
	"testing"

	"boundsel/internal/geom"
)

var box = geom.PixelRect{XMin: 75, YMin: 50, XMax: 225, YMax: 150}

func TestPressAllowance(t *testing.T) {
	c := New(Allowance)
	if !c.Press(geom.Point{X: 70, Y: 100}, box) {
		t.Fatal("press 5px outside xMin should hit")
	}
	c.Release()
	if c.Press(geom.Point{X: 69, Y: 100}, box) {
		t.Error("press 6px outside xMin should miss")
	}
	if c.Active() {
		t.Error("missed press must leave the controller idle")
	}
	if c.Press(geom.Point{X: 150, Y: 156}, box) {
		t.Error("press 6px below yMax should miss")
	}
}

func TestPressEdgeSelection(t *testing.T) {
	cases := []struct {
		name string
		p    geom.Point
		want State
	}{
		{"interior", geom.Point{X: 150, Y: 100}, State{WholeBox: true}},
		{"near xMin", geom.Point{X: 84, Y: 100}, State{XMin: true}},
		{"near xMax", geom.Point{X: 230, Y: 100}, State{XMax: true}},
		{"near yMin", geom.Point{X: 150, Y: 45}, State{YMin: true}},
		{"corner", geom.Point{X: 226, Y: 149}, State{XMax: true, YMax: true}},
	}
	for _, tc := range cases {
		c := New(0)
		if !c.Press(tc.p, box) {
			t.Errorf("%s: expected hit", tc.name)
			continue
		}
		s, _ := c.State()
		tc.want.From = tc.p
		if s != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.name, s, tc.want)
		}
	}
}

func TestMoveWholeBox(t *testing.T) {
	c := New(Allowance)
	c.Press(geom.Point{X: 150, Y: 100}, box)
	r := c.Move(geom.Point{X: 160, Y: 95}, box, geom.PixelShape{Width: 300, Height: 200})
	want := geom.PixelRect{XMin: 85, YMin: 45, XMax: 235, YMax: 145}
	if r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}
	s, _ := c.State()
	if s.From != (geom.Point{X: 160, Y: 95}) {
		t.Errorf("last position not updated: %+v", s.From)
	}
}

func TestMoveClampsAxesIndependently(t *testing.T) {
	c := New(Allowance)
	c.Press(geom.Point{X: 150, Y: 100}, box)
	r := c.Move(geom.Point{X: 230, Y: 110}, box, geom.PixelShape{Width: 300, Height: 200})
	if r.XMin != box.XMin || r.XMax != box.XMax {
		t.Errorf("x extent should be rejected, got %+v", r)
	}
	if r.YMin != 60 || r.YMax != 160 {
		t.Errorf("y extent should apply, got %+v", r)
	}
}

func TestMoveSingleEdge(t *testing.T) {
	c := New(Allowance)
	c.Press(geom.Point{X: 75, Y: 100}, box)
	r := c.Move(geom.Point{X: 60, Y: 130}, box, geom.PixelShape{Width: 300, Height: 200})
	want := box
	want.XMin = 60
	if r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}
	r = c.Move(geom.Point{X: -5, Y: 130}, r, geom.PixelShape{Width: 300, Height: 200})
	if r.XMin != 60 {
		t.Errorf("xMin below zero should be rejected, got %v", r.XMin)
	}
}

func TestMoveIdle(t *testing.T) {
	c := New(Allowance)
	if r := c.Move(geom.Point{X: 1, Y: 1}, box, geom.PixelShape{Width: 300, Height: 200}); r != box {
		t.Errorf("idle move changed the rectangle: %+v", r)
	}
	if c.Release() {
		t.Error("release while idle should report false")
	}
}
