package tui

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"boundsel/internal/config"
	"boundsel/internal/geom"
	"boundsel/internal/preview"
)

func testScene() geom.Scene {
	return geom.Scene{
		Preview: "map.png",
		Axes:    geom.AxisAssignment{X: "lon", Y: "lat"},
		Coordinates: []geom.CoordinateAxis{
			{Name: "lon", Bounds: [2]float64{-90, 90}, FullBounds: [2]float64{-180, 180}},
			{Name: "lat", Bounds: [2]float64{-45, 45}, FullBounds: [2]float64{-90, 90}},
		},
	}
}

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{20, 40, 60, 255})
		}
	}
	return img
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func readyModel(t *testing.T) Model {
	t.Helper()
	m := NewWithScene(config.Default(), testScene())
	if m.Init() == nil {
		t.Fatal("Init should start loading the preview")
	}
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m = send(t, m, previewLoadedMsg{src: "map.png", img: preview.Image{
		Source:  "map.png",
		Natural: image.Pt(600, 400),
		Shape:   geom.PixelShape{Width: 300, Height: 200},
		Display: solid(300, 200),
	}})
	if _, ok := m.sel.Shape(); !ok {
		t.Fatal("preview not applied")
	}
	return m
}

func mouse(x, y int, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestSurfaceMapping(t *testing.T) {
	m := readyModel(t)
	s := m.surface()
	if s.cols != 60 || s.rows != 20 || s.originX != 1 || s.originY != 2 {
		t.Fatalf("unexpected surface %+v", s)
	}
	p, inside := s.toPixel(1, 2)
	if !inside || p != (geom.Point{X: 2.5, Y: 5}) {
		t.Errorf("top-left cell maps to %+v inside=%v", p, inside)
	}
	if _, inside := s.toPixel(0, 2); inside {
		t.Error("border column should be outside")
	}
	if cx, cy := s.cell(geom.Point{X: 300, Y: 200}); cx != 59 || cy != 19 {
		t.Errorf("far corner cell (%d,%d)", cx, cy)
	}
}

func TestDragCommitsToHostCoordinates(t *testing.T) {
	m := readyModel(t)
	m = send(t, m, mouse(30, 10, tea.MouseActionPress))
	if !m.sel.Dragging() {
		t.Fatal("press inside the box should start a drag")
	}
	m = send(t, m, mouse(32, 10, tea.MouseActionMotion))
	m = send(t, m, mouse(32, 10, tea.MouseActionRelease))
	if m.sel.Dragging() {
		t.Fatal("release should end the drag")
	}
	got := m.Scene().Coordinates
	if got[0].Bounds != [2]float64{-78, 102} {
		t.Errorf("lon bounds %v, want [-78 102]", got[0].Bounds)
	}
	if got[1].Bounds != [2]float64{-45, 45} {
		t.Errorf("lat bounds %v, want [-45 45]", got[1].Bounds)
	}
	if len(m.Updates()) != 2 {
		t.Errorf("expected two update events, got %+v", m.Updates())
	}
	if !strings.Contains(m.status, "lon=[-78, 102]") {
		t.Errorf("status %q", m.status)
	}
}

func TestLeavingSurfaceCommits(t *testing.T) {
	m := readyModel(t)
	m = send(t, m, mouse(30, 10, tea.MouseActionPress))
	m = send(t, m, mouse(30, 11, tea.MouseActionMotion))
	m = send(t, m, mouse(100, 11, tea.MouseActionMotion))
	if m.sel.Dragging() {
		t.Fatal("leaving the surface should end the drag")
	}
	if lat := m.Scene().Coordinates[1].Bounds; lat != [2]float64{-54, 36} {
		t.Errorf("lat bounds %v, want [-54 36]", lat)
	}
}

func TestPressOutsideBoxIgnored(t *testing.T) {
	m := readyModel(t)
	m = send(t, m, mouse(2, 3, tea.MouseActionPress))
	if m.sel.Dragging() {
		t.Error("press far from the box should not drag")
	}
	m = send(t, m, mouse(2, 3, tea.MouseActionRelease))
	if m.Updates() != nil {
		t.Error("release without drag should emit nothing")
	}
}

func TestStaleAndFailedLoads(t *testing.T) {
	m := readyModel(t)
	m = send(t, m, previewLoadedMsg{src: "old.png", err: errors.New("boom")})
	if strings.Contains(m.status, "boom") {
		t.Error("stale load should be ignored")
	}
	cmd := m.setPreview("new.png")
	if cmd == nil {
		t.Fatal("new source should start a load")
	}
	m = send(t, m, previewLoadedMsg{src: "new.png", err: errors.New("boom")})
	if !strings.Contains(m.status, "boom") || m.loading {
		t.Errorf("failed load not reported: %q loading=%v", m.status, m.loading)
	}
	if shape, _ := m.sel.Shape(); shape.Height != 200 {
		t.Error("previous shape should survive a failed load")
	}
}

func TestSupersededLoadCancelled(t *testing.T) {
	m := readyModel(t)
	first := m.setPreview("a.png")
	if m.setPreview("b.png") == nil {
		t.Fatal("second source should start a load")
	}
	msg, ok := first().(previewLoadedMsg)
	if !ok || !errors.Is(msg.err, context.Canceled) {
		t.Errorf("superseded load should be cancelled, got %+v", msg)
	}
	m = send(t, m, msg)
	if !m.loading {
		t.Error("cancelled load for an old source must not end the current one")
	}
}

func TestPreviewLoadedWhileDragging(t *testing.T) {
	m := readyModel(t)
	m.setPreview("tall.png")
	m = send(t, m, mouse(30, 10, tea.MouseActionPress))
	m = send(t, m, previewLoadedMsg{src: "tall.png", img: preview.Image{
		Source:  "tall.png",
		Natural: image.Pt(300, 400),
		Shape:   geom.PixelShape{Width: 300, Height: 400},
		Display: solid(300, 400),
	}})
	if !m.sel.Dragging() {
		t.Fatal("load should not interrupt the drag")
	}
	m = send(t, m, mouse(32, 10, tea.MouseActionMotion))
	m = send(t, m, mouse(32, 10, tea.MouseActionRelease))
	got := m.Scene().Coordinates
	if got[0].Bounds != [2]float64{-78, 102} || got[1].Bounds != [2]float64{-45, 45} {
		t.Errorf("bounds %v %v, want [-78 102] [-45 45]", got[0].Bounds, got[1].Bounds)
	}
	if s := m.surface(); s.rows != 40 || m.cells.Bounds().Dy() != 80 {
		t.Errorf("surface not refitted to the new shape: rows=%d cells=%v", s.rows, m.cells.Bounds())
	}
}

func TestKeys(t *testing.T) {
	m := readyModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if m.axes != (geom.AxisAssignment{X: "lat", Y: "lon"}) {
		t.Errorf("swap produced %+v", m.axes)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	for _, c := range m.Scene().Coordinates {
		if c.Bounds != c.FullBounds {
			t.Errorf("%s not reset: %v", c.Name, c.Bounds)
		}
	}
	if m.Updates() != nil {
		t.Error("reset is not a drag and should not record update events")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if !m.showAttrs || len(m.tbl.Rows()) != 2 {
		t.Errorf("table not populated: show=%v rows=%d", m.showAttrs, len(m.tbl.Rows()))
	}
}

func TestPasteCoordinates(t *testing.T) {
	m := readyModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	if !m.pasteMode {
		t.Fatal("expected paste mode")
	}
	m.ta.SetValue(`[{"name":"lon","bounds":[0,180],"full_bounds":[-180,180]},{"name":"lat","bounds":[0,90],"full_bounds":[-90,90]}]`)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.pasteMode {
		t.Fatalf("paste not applied: %q", m.status)
	}
	if m.axes.X != "lon" {
		t.Errorf("axes should be kept when the paste has none: %+v", m.axes)
	}
	r, _ := m.sel.Rect()
	if r.XMin != 150 || r.XMax != 300 || r.YMin != 0 || r.YMax != 100 {
		t.Errorf("rect not re-derived from pasted coordinates: %+v", r)
	}
}

func TestViewRenders(t *testing.T) {
	m := readyModel(t)
	out := m.View()
	if !strings.Contains(out, "boundsel") || !strings.Contains(out, "●") {
		t.Error("view should contain the header and corner handles")
	}
}

func TestBrailleRect(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.drawRect(0, 0, 3, 3)
	if b.glyph(0, 0) == 0 || b.glyph(1, 0) == 0 {
		t.Error("outline should mark both cells")
	}
	if b.glyph(5, 5) != 0 {
		t.Error("out of range cell should be empty")
	}
}
