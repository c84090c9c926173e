package tui

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/disintegration/imaging"

	"boundsel/internal/geom"
	"boundsel/internal/preview"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

// previewLoadedMsg completes a preview load started by loadPreview.
type previewLoadedMsg struct {
	src string
	img preview.Image
	err error
}

func loadPreview(ctx context.Context, l *preview.Loader, src string) tea.Cmd {
	return func() tea.Msg {
		img, err := l.Load(ctx, src)
		return previewLoadedMsg{src: src, img: img, err: err}
	}
}

// setPreview switches the preview source and starts loading it.
// A load still running for the previous source is cancelled.
func (m *Model) setPreview(src string) tea.Cmd {
	if !m.sel.SetPreview(src) {
		return nil
	}
	m.cancelLoad()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.loading = true
	m.status = "loading " + preview.Describe(src)
	return loadPreview(ctx, m.loader, src)
}

func (m *Model) cancelLoad() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *Model) onPreviewLoaded(msg previewLoadedMsg) {
	if msg.src != m.sel.Preview() {
		return
	}
	m.loading = false
	m.cancelLoad()
	if msg.err != nil {
		log.Printf("preview load failed src=%s err=%v", preview.Describe(msg.src), msg.err)
		m.status = "load error: " + msg.err.Error()
		return
	}
	if !m.sel.ImageLoaded(msg.src, msg.img.Natural.X, msg.img.Natural.Y) {
		return
	}
	m.img = msg.img.Display
	m.cells = nil
	m.fitCells()
	log.Printf("preview loaded src=%s natural=%v shape=%+v", preview.Describe(msg.src), msg.img.Natural, msg.img.Shape)
	m.status = fmt.Sprintf("loaded %s  %dx%d", filepath.Base(preview.Describe(msg.src)), msg.img.Shape.Width, msg.img.Shape.Height)
}

// fitCells downsamples the preview to two pixel rows per surface cell.
// It only resizes when the surface rows changed, e.g. after a shape held
// back during a drag takes effect.
func (m *Model) fitCells() {
	if m.img == nil {
		return
	}
	s := m.surface()
	if m.cells != nil && m.cells.Bounds().Dx() == s.cols && m.cells.Bounds().Dy() == s.rows*2 {
		return
	}
	m.cells = imaging.Resize(m.img, s.cols, s.rows*2, imaging.Box)
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		p := filepath.Join(m.cwd, name)
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		switch {
		case preview.IsImageFile(name):
			items = append(items, fileItem{title: name, desc: "preview", path: p})
		case ext == ".json" || ext == ".csv":
			items = append(items, fileItem{title: name, desc: "coordinates", path: p})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no images or coordinate files in current directory"
	}
}

// openPath loads an image as the preview or a coordinate file as the scene.
func (m *Model) openPath(p string) tea.Cmd {
	m.selPath = p
	if preview.IsImageFile(p) {
		return m.setPreview(p)
	}
	s, err := geom.LoadScene(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return nil
	}
	m.applyScene(s)
	m.status = "loaded: " + filepath.Base(p) + fmt.Sprintf("  coordinates=%d", len(s.Coordinates))
	if s.Preview != "" {
		return m.setPreview(s.Preview)
	}
	return nil
}
