package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geoedit/internal/session"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	r := m.layout()
	contentWidth := max(10, m.width)

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, r.h-2)
	}

	header := lipgloss.NewStyle().Width(contentWidth).Render(m.renderHeader())

	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.prompt != promptNone:
		m.ta.SetWidth(min(r.w-4, 80))
		m.ta.SetHeight(min(r.h-4, 6))
		box := boxStyle.Render(titleStyle.Render(m.prompt.title()) + "\n" + m.ta.View())
		mapView = lipgloss.Place(r.w, r.h, lipgloss.Center, lipgloss.Center, box)
	case m.showAttrs:
		// infer a reasonable width from columns
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, contentWidth-6)
		}
		maxW := min(r.w, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(r.h-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(r.w, r.h, lipgloss.Center, lipgloss.Center, attrsBox)
	default:
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(r.w).Height(r.h).Render(m.renderMap(r.w, r.h))
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	st := dimStyle
	if m.errMsg {
		st = errStyle
	}
	status := st.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo && m.hovering {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.6f lat=%.6f  ", m.hoverLon, m.hoverLat))
	}
	spacerW := max(0, contentWidth-lipgloss.Width(status)-lipgloss.Width(coords))
	line1 := lipgloss.JoinHorizontal(lipgloss.Bottom, status, strings.Repeat(" ", spacerW), coords)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinVertical(lipgloss.Left, line1, m.renderHelp()))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderHeader() string {
	st := m.sess.State()
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<no file>"
	}
	parts := []string{
		titleStyle.Render(" geoedit "),
		modeStyle.Render(st.SelectionMode.String()),
		fmt.Sprintf(" %s  %d pts  %d sel", name, len(st.Points), len(st.SelectedPoints)),
	}
	if st.SelectionAddMode {
		parts = append(parts, selectedStyle.Render(" +add"))
	}
	if st.IsDrawing {
		parts = append(parts, polygonStyle.Render(fmt.Sprintf(" drawing %d", len(st.DrawnPolygon))))
	}
	switch st.SelectionMode {
	case session.ModeTranslate:
		d := st.TranslationDelta
		parts = append(parts, dimStyle.Render(fmt.Sprintf("  Δlat=%.6f Δlon=%.6f Δalt=%.1f  locks %s",
			d.DLat, d.DLon, d.DAlt, lockFlags(st.TranslationLock))))
	case session.ModeRotate:
		if st.RotationCenter != nil {
			parts = append(parts, pivotStyle.Render(fmt.Sprintf("  pivot %.6f,%.6f", st.RotationCenter.Lon(), st.RotationCenter.Lat())))
		}
	}
	if m.sess.CanUndo() || m.sess.CanRedo() {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("  history %d", m.sess.HistoryLen())))
	}
	return strings.Join(parts, "")
}

func lockFlags(l session.TranslationLock) string {
	flag := func(on bool, c string) string {
		if on {
			return strings.ToUpper(c)
		}
		return c
	}
	return flag(l.Lat, "y") + flag(l.Lon, "x") + flag(l.Alt, "z")
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"s/g/t/r mode",
		"click select",
		"m add",
		"/ query",
		"n range",
		"e edit",
		"w wkt",
		"d dup",
		"x del",
		"v reverse",
		"u/U undo",
		"o export",
		"a attrs",
		"Tab files",
		"q quit",
	}
	return dimStyle.Render(" " + strings.Join(keys, "  "))
}
