package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 4 {
		contentHeight = 4
	}
	contentWidth := max(10, m.width)

	// Header
	header := titleStyle.Render(" boundsel ─ preview bounds selector ")
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, contentHeight-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	// Preview surface: its origin must match surface() for mouse mapping
	s := m.surface()
	surfaceView := surfaceStyle(m.cfg.Style.Outline).Render(m.renderSurface(s))

	// Side panel: paste area, coordinate table or summary
	panelW := max(24, contentWidth-s.originX-s.cols-3)
	var panel string
	switch {
	case m.pasteMode:
		m.ta.SetWidth(panelW - 4)
		m.ta.SetHeight(min(contentHeight-2, 12))
		panel = boxStyle.Render(m.ta.View())
	case m.showAttrs:
		m.tbl.SetHeight(min(contentHeight-4, 12))
		panel = boxStyle.Render(m.tbl.View())
	default:
		panel = boxStyle.Width(panelW).Render(m.renderInfo())
	}

	// Body row
	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", surfaceView, " ", panel)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, surfaceView, " ", panel)
	}
	body = lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(body)

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	// domain values under the mouse at bottom-right
	coords := ""
	if r := m.hoverReadout(); r != "" {
		coords = dimStyle.Render("  " + r + "  ")
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"drag box/edges",
		"s swap axes",
		"r reset",
		"Tab files",
		"Enter open",
		"p paste",
		"a table",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
