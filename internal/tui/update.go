package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geoedit/internal/session"
)

const rotateStep = 5.0 // degrees per key press

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().h-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.prompt != promptNone {
			switch msg.String() {
			case "esc":
				m.closePrompt()
				m.status = "cancelled"
				return m, nil
			case "enter":
				m.submitPrompt()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if m.showAttrs {
			switch msg.String() {
			case "up", "down", "pgup", "pgdown", "home", "end", "j", "k":
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			case "enter", " ":
				if id, ok := m.selectedRowID(); ok {
					m.sess.TogglePointSelection(id)
					m.changed()
				}
				return m, nil
			case "esc":
				m.showAttrs = false
				return m, nil
			}
		}
		if quit := m.handleKey(msg.String()); quit {
			m.save()
			return m, tea.Quit
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey runs a global shortcut and reports whether the program should
// quit.
func (m *Model) handleKey(k string) bool {
	mode := m.sess.Mode()
	switch k {
	case "ctrl+c", "q":
		return true
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.layout().h-2)
		}
	case "enter":
		st := m.sess.State()
		switch {
		case m.showSidebar:
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		case st.IsDrawing:
			n := m.sess.FinishPolygonSelection()
			m.status = fmt.Sprintf("polygon: %d selected", n)
		case mode == session.ModeTranslate:
			m.sess.ApplyTranslation()
			m.status = "translation applied"
		case mode == session.ModeRotate:
			m.sess.ApplyRotation()
			m.status = "rotation applied"
		}
		m.changed()
	case "esc":
		m.sess.HandleKey(session.KeyEscape)
		m.status = "mode: " + m.sess.Mode().String()
		m.changed()
	case "ctrl+z", "u":
		m.sess.HandleKey(session.KeyUndo)
		m.status = fmt.Sprintf("undo  (%d steps)", m.sess.HistoryLen())
		m.changed()
	case "ctrl+y", "U":
		m.sess.HandleKey(session.KeyRedo)
		m.status = "redo"
		m.changed()
	case "x", "delete":
		n := len(m.sess.Selected())
		m.sess.HandleKey(session.KeyDelete)
		m.status = fmt.Sprintf("deleted %d points", n)
		m.changed()
	case "up", "down", "left", "right":
		m.arrow(k)
	case "pgup", "pgdown":
		if mode == session.ModeTranslate {
			dAlt := m.cfg.AltitudeSensitivity
			if k == "pgdown" {
				dAlt = -dAlt
			}
			m.sess.TranslateSelectedPoints(session.Delta{DAlt: dAlt})
			m.changed()
		}
	case "+":
		m.zoomBy(1.2)
	case "-", "_":
		m.zoomBy(1 / 1.2)
	case "0":
		m.fit()
	case "s":
		m.setMode(session.ModeSingle)
	case "g":
		m.setMode(session.ModePolygon)
	case "t":
		m.setMode(session.ModeTranslate)
	case "r":
		m.setMode(session.ModeRotate)
	case "ctrl+a":
		m.sess.SelectAll(true)
		m.status = fmt.Sprintf("all %d selected", len(m.sess.Selected()))
		m.changed()
	case "c":
		m.sess.ClearSelection()
		m.status = "selection cleared"
		m.changed()
	case "m":
		on := !m.sess.State().SelectionAddMode
		m.sess.SetSelectionAddMode(on)
		m.status = fmt.Sprintf("add to selection: %v", on)
	case "d":
		m.sess.DuplicateSelectedPoints()
		m.status = fmt.Sprintf("duplicated %d points", len(m.sess.Selected()))
		m.changed()
	case "v":
		m.sess.ReverseFlightPoints()
		m.status = "flight order reversed"
		m.changed()
	case "1", "2", "3":
		m.toggleLock(k)
	case "<", ">":
		if mode == session.ModeRotate {
			a := rotateStep
			if k == ">" {
				a = -a
			}
			m.sess.RotateSelectedPoints(a)
			m.status = "rotating  Enter apply  Esc cancel"
			m.changed()
		}
	case "/":
		m.openPrompt(promptQuery, "")
	case "n":
		m.openPrompt(promptRange, "")
	case "b":
		m.openPrompt(promptBatch, "")
	case "e":
		m.openPrompt(promptEdit, "")
	case "w":
		m.openPrompt(promptWKT, "")
	case "o":
		m.openPrompt(promptExport, "export.csv")
	case "=":
		if mode == session.ModeTranslate {
			m.openPrompt(promptOffset, "")
		}
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrs()
		}
	case "h":
		m.helpVisible = !m.helpVisible
	}
	return false
}

func (m *Model) setMode(mode session.Mode) {
	if !m.sess.SetSelectionMode(mode) {
		m.fail(fmt.Sprintf("%s needs at least two selected points", mode))
		return
	}
	m.errMsg = false
	switch mode {
	case session.ModePolygon:
		m.status = "polygon: click vertices, Enter or right click to finish"
	case session.ModeRotate:
		m.status = "rotate: click a pivot, then drag or < >"
	case session.ModeTranslate:
		m.status = "translate: drag or arrows, Enter apply, Esc cancel"
	default:
		m.status = "mode: " + mode.String()
	}
	m.changed()
}

// arrow nudges the selection by one cell in translate mode and pans
// otherwise.
func (m *Model) arrow(k string) {
	if m.sess.Mode() == session.ModeTranslate && len(m.sess.Selected()) > 0 {
		r := m.layout()
		cellLon := (m.bbox.MaxX - m.bbox.MinX) / m.zoom / float64(max(1, r.w-1))
		cellLat := (m.bbox.MaxY - m.bbox.MinY) / m.zoom / float64(max(1, r.h-1))
		var d session.Delta
		switch k {
		case "up":
			d.DLat = cellLat
		case "down":
			d.DLat = -cellLat
		case "left":
			d.DLon = -cellLon
		case "right":
			d.DLon = cellLon
		}
		m.sess.TranslateSelectedPoints(d)
		m.changed()
		return
	}
	switch k {
	case "up":
		m.offsetY--
	case "down":
		m.offsetY++
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2
	}
}

func (m *Model) toggleLock(k string) {
	l := m.sess.State().TranslationLock
	var a session.Axis
	var on bool
	switch k {
	case "1":
		a, on = session.AxisLat, !l.Lat
	case "2":
		a, on = session.AxisLon, !l.Lon
	default:
		a, on = session.AxisAlt, !l.Alt
	}
	m.sess.SetTranslationLock(a, on)
	m.status = fmt.Sprintf("%s lock: %v", a, on)
}

func (m *Model) zoomBy(f float64) {
	z := m.zoom * f
	if z > 64 || z < 0.05 {
		return
	}
	m.zoom = z
	m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	r := m.layout()
	cx, cy := msg.X-r.x, msg.Y-r.y
	inMap := r.contains(msg.X, msg.Y) && !m.showAttrs && m.prompt == promptNone
	m.hover(inMap, cx, cy)
	if !inMap && !m.pressed {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.pressed = true
			m.panned = false
			m.lastX, m.lastY = msg.X, msg.Y
			if p, ok := m.cellPoint(cx, cy); ok {
				m.dragging = m.sess.PointerDown(p.Lon(), p.Lat())
			}
		case tea.MouseButtonRight:
			if n, ok := m.sess.ContextMenu(); ok {
				m.status = fmt.Sprintf("polygon: %d selected", n)
				m.changed()
			}
		case tea.MouseButtonWheelUp:
			m.zoomBy(1.2)
		case tea.MouseButtonWheelDown:
			m.zoomBy(1 / 1.2)
		}
	case tea.MouseActionMotion:
		if !m.pressed {
			return
		}
		dx, dy := msg.X-m.lastX, msg.Y-m.lastY
		if dx == 0 && dy == 0 {
			return
		}
		m.lastX, m.lastY = msg.X, msg.Y
		if m.dragging {
			if p, ok := m.cellPoint(cx, cy); ok {
				m.sess.PointerMove(p.Lon(), p.Lat(), float64(dx), float64(dy))
				if m.showAttrs {
					m.refreshAttrs()
				}
			}
			return
		}
		m.offsetX += dx
		m.offsetY += dy
		m.panned = true
	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		if m.dragging {
			m.dragging = false
			m.sess.PointerUp()
			m.changed()
			return
		}
		if m.panned || !inMap {
			return
		}
		if p, ok := m.cellPoint(cx, cy); ok {
			id, _ := m.hitTest(cx, cy)
			m.sess.Click(p.Lon(), p.Lat(), id)
			m.status = fmt.Sprintf("%s  %d selected", m.sess.Mode(), len(m.sess.Selected()))
			m.changed()
		}
	}
}

func (m *Model) hover(inMap bool, cx, cy int) {
	if !inMap {
		m.hovering = false
		return
	}
	m.hovering = true
	m.hoverCellX, m.hoverCellY = cx, cy
	if p, ok := m.cellPoint(cx, cy); ok {
		m.hoverHasGeo = true
		m.hoverLon, m.hoverLat = p.Lon(), p.Lat()
	} else {
		m.hoverHasGeo = false
	}
}

// changed refreshes derived views and saves after a session command.
func (m *Model) changed() {
	if m.showAttrs {
		m.refreshAttrs()
	}
	m.save()
}
