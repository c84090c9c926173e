package tui

import (
	"fmt"
	"log"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"boundsel/internal/geom"
	"boundsel/internal/selector"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.height-headerHeight-footerHeight-2)
		}
	case previewLoadedMsg:
		m.onPreviewLoaded(msg)
		return m, nil
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "ctrl+s":
				text := strings.TrimSpace(m.ta.Value())
				if text == "" {
					m.status = "paste: empty"
					return m, nil
				}
				s, err := geom.ParseScene([]byte(text))
				if err != nil {
					m.status = "paste error: " + err.Error()
					return m, nil
				}
				if s.Axes == (geom.AxisAssignment{}) {
					s.Axes = m.axes
				}
				m.applyScene(s)
				m.status = fmt.Sprintf("pasted %d coordinates", len(s.Coordinates))
				m.pasteMode = false
				m.ta.Blur()
				var cmd tea.Cmd
				if s.Preview != "" {
					cmd = m.setPreview(s.Preview)
				}
				return m, cmd
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.commit(m.sel.PointerLeave())
			m.cancelLoad()
			return m, tea.Quit
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.height-headerHeight-footerHeight-2)
			}
		case "p":
			m.pasteMode = true
			m.showAttrs = false
			m.ta.SetValue("")
			m.status = "paste mode"
			return m, m.ta.Focus()
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "s":
			if m.sel.Dragging() {
				break
			}
			m.axes = m.axes.Swapped()
			m.sel.SetAxes(m.axes)
			m.status = fmt.Sprintf("axes: x=%s y=%s", m.axes.X, m.axes.Y)
		case "r":
			if m.sel.Dragging() {
				break
			}
			m.resetBounds()
		case "h":
			m.helpVisible = !m.helpVisible
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					return m, m.openPath(it.path)
				}
			}
		}
	case tea.MouseMsg:
		m.onMouse(msg)
		return m, nil
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// onMouse routes pointer events to the selector. Leaving the surface mid-drag commits.
func (m *Model) onMouse(msg tea.MouseMsg) {
	s := m.surface()
	p, inside := s.toPixel(msg.X, msg.Y)
	_, loaded := m.sel.Shape()
	m.hovering = inside && loaded
	m.hoverPx = p

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return
		}
		if m.sel.PointerDown(p) {
			m.status = "dragging " + describeDrag(m.sel)
		}
	case tea.MouseActionMotion:
		if !m.sel.Dragging() {
			return
		}
		if !inside {
			m.commit(m.sel.PointerLeave())
			return
		}
		m.sel.PointerMove(p)
	case tea.MouseActionRelease:
		m.commit(m.sel.PointerUp())
	}
}

// commit handles the update-bounds events of a finished drag.
func (m *Model) commit(ups []selector.Update) {
	m.fitCells()
	if len(ups) == 0 {
		return
	}
	for _, u := range ups {
		log.Printf("update-bounds name=%s bounds=%v", u.Name, u.Bounds)
	}
	m.last = ups
	m.apply(ups)
	m.status = "update-bounds " + formatUpdates(ups)
}

// apply writes updates into the coordinate list owned by the host.
func (m *Model) apply(ups []selector.Update) {
	m.coords = selector.Apply(m.coords, ups)
	m.sel.SetCoordinates(m.coords)
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}

func formatUpdates(ups []selector.Update) string {
	parts := make([]string, 0, len(ups))
	for _, u := range ups {
		parts = append(parts, fmt.Sprintf("%s=[%d, %d]", u.Name, u.Bounds[0], u.Bounds[1]))
	}
	return strings.Join(parts, " ")
}

// resetBounds widens the assigned axes to their full range.
func (m *Model) resetBounds() {
	var ups []selector.Update
	for _, d := range []geom.Dim{geom.DimX, geom.DimY} {
		a, ok := geom.Find(m.coords, m.axes.Name(d))
		if !ok {
			continue
		}
		ups = append(ups, selector.Update{
			Name:   a.Name,
			Bounds: [2]int{int(geom.Round(a.FullBounds[0])), int(geom.Round(a.FullBounds[1]))},
		})
	}
	if len(ups) == 0 {
		m.status = "reset: no assigned axes"
		return
	}
	m.apply(ups)
	m.status = "reset " + formatUpdates(ups)
}

func describeDrag(sel *selector.Selector) string {
	st, ok := sel.DragState()
	if !ok {
		return ""
	}
	if st.WholeBox {
		return "box"
	}
	var edges []string
	for _, e := range []struct {
		on   bool
		name string
	}{{st.XMin, "xMin"}, {st.XMax, "xMax"}, {st.YMin, "yMin"}, {st.YMax, "yMax"}} {
		if e.on {
			edges = append(edges, e.name)
		}
	}
	return strings.Join(edges, "+")
}
