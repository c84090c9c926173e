package tui

import (
	"context"
	"image"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"boundsel/internal/config"
	"boundsel/internal/geom"
	"boundsel/internal/preview"
	"boundsel/internal/selector"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	cfg    *config.Config
	loader *preview.Loader

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Selection. coords and axes are owned here and handed to sel as inputs.
	sel     *selector.Selector
	axes    geom.AxisAssignment
	coords  []geom.CoordinateAxis
	img     image.Image
	cells   image.Image
	loading bool
	last    []selector.Update

	// preview load in flight; cancel aborts it, initLoad starts the first one
	cancel   context.CancelFunc
	initLoad tea.Cmd

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// coordinate table
	showAttrs bool
	tbl       table.Model

	// hover state
	hovering bool
	hoverPx  geom.Point
}

func New(cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	m := Model{
		helpVisible: true,
		status:      "boundsel ready",
		cfg:         cfg,
		loader:      preview.NewLoader(cfg.Display.Width, cfg.Timeout(), cfg.Preview.MaxBytes),
		sel:         selector.New(cfg.Display.Width, cfg.Drag.Allowance),
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a coordinate list or scene as JSON. Press Ctrl+S to apply; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(40)
	m.ta.SetHeight(8)
	// coordinate table setup
	m.tbl = table.New(table.WithFocused(true), table.WithColumns(coordColumns()))
	m.tbl.SetHeight(8)
	m.refreshDir()
	return m
}

// NewWithScene preloads a scene; its preview is fetched by Init.
func NewWithScene(cfg *config.Config, s geom.Scene) Model {
	m := New(cfg)
	m.applyScene(s)
	if s.Preview != "" {
		m.initLoad = m.setPreview(s.Preview)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.initLoad
}

// Scene returns the caller-side state: preview, axes and current coordinates.
func (m Model) Scene() geom.Scene {
	return geom.Scene{Preview: m.sel.Preview(), Axes: m.axes, Coordinates: m.coords}
}

// Updates returns the update-bounds events of the last committed drag.
func (m Model) Updates() []selector.Update { return m.last }

func (m *Model) applyScene(s geom.Scene) {
	m.coords = append(m.coords[:0:0], s.Coordinates...)
	m.axes = s.Axes
	m.sel.SetAxes(m.axes)
	m.sel.SetCoordinates(m.coords)
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}
