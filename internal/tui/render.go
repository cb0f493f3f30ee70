package tui

import (
	"strings"

	"github.com/paulmach/orb"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// mapRect is the map area in terminal cells; it must match View.
type mapRect struct {
	x, y int
	w, h int
}

func (m Model) layout() mapRect {
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth + 1
	}
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	return mapRect{
		x: sw,
		y: headerHeight,
		w: max(10, contentWidth-sw),
		h: contentHeight,
	}
}

func (r mapRect) contains(cx, cy int) bool {
	return cx >= r.x && cx < r.x+r.w && cy >= r.y && cy < r.y+r.h
}

// cellToLonLat converts a map cell coordinate back to lon/lat using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if !m.bbox.Valid() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX)
	lat := m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY)
	return lon, lat, true
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	if !m.bbox.Valid() {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w*2-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(h*4-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps lon/lat to the cell holding its braille micro-pixel.
func (m Model) screenXY(lon, lat float64, w, h int) (int, int, bool) {
	mx, my, ok := m.screenXYMicro(lon, lat, w, h)
	if !ok || mx < 0 || my < 0 {
		return -1, -1, false
	}
	return mx / 2, my / 4, true
}

// renderMap draws the flight path and waypoints. Selected waypoints go to
// a separate buffer so they can be coloured over the path.
func (m Model) renderMap(w, h int) string {
	st := m.sess.State()
	path := newBrailleBuf(w, h)
	sel := newBrailleBuf(w, h)
	poly := newBrailleBuf(w, h)

	var prev *[2]int
	for _, p := range st.Points {
		mx, my, ok := m.screenXYMicro(p.Lon, p.Lat, w, h)
		if !ok {
			continue
		}
		if prev != nil {
			path.drawLineMicro(prev[0], prev[1], mx, my)
		}
		prev = &[2]int{mx, my}
		if st.SelectedPoints.Has(p.ID) {
			sel.setMarker(mx, my)
		} else {
			path.setMarker(mx, my)
		}
	}

	// polygon being drawn, closed back to its first vertex
	if n := len(st.DrawnPolygon); n > 0 {
		var mic [][2]int
		for _, v := range st.DrawnPolygon {
			if mx, my, ok := m.screenXYMicro(v.Lng, v.Lat, w, h); ok {
				mic = append(mic, [2]int{mx, my})
			}
		}
		for i := range mic {
			a := mic[i]
			b := mic[(i+1)%len(mic)]
			poly.drawLineMicro(a[0], a[1], b[0], b[1])
		}
	}

	pivotX, pivotY := -1, -1
	if st.RotationCenter != nil {
		pivotX, pivotY, _ = m.screenXY(st.RotationCenter.Lon(), st.RotationCenter.Lat(), w, h)
	}
	hoverX, hoverY := -1, -1
	if m.hovering {
		if id, ok := m.hitTest(m.hoverCellX, m.hoverCellY); ok {
			for _, p := range st.Points {
				if p.ID == id {
					hoverX, hoverY, _ = m.screenXY(p.Lon, p.Lat, w, h)
					break
				}
			}
		}
	}

	var sb strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			switch {
			case x == pivotX && y == pivotY:
				sb.WriteString(pivotStyle.Render("✛"))
			case x == hoverX && y == hoverY:
				sb.WriteString(pivotStyle.Render("◯"))
			case sel.cell(x, y) != 0:
				sb.WriteString(selectedStyle.Render(string(sel.cell(x, y) | path.cell(x, y))))
			case poly.cell(x, y) != 0:
				sb.WriteString(polygonStyle.Render(string(poly.cell(x, y) | path.cell(x, y))))
			case path.cell(x, y) != 0:
				sb.WriteRune(path.cell(x, y))
			default:
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}

// hitTest returns the waypoint drawn within one cell of (cx, cy), nearest
// first.
func (m Model) hitTest(cx, cy int) (string, bool) {
	r := m.layout()
	w, h := r.w, r.h
	best, bestD := "", 3
	for _, p := range m.sess.Points() {
		sx, sy, ok := m.screenXY(p.Lon, p.Lat, w, h)
		if !ok {
			continue
		}
		dx, dy := abs(sx-cx), abs(sy-cy)
		if dx > 1 || dy > 1 {
			continue
		}
		if d := dx + dy; d < bestD {
			best, bestD = p.ID, d
		}
	}
	return best, best != ""
}

// cellPoint converts a map cell to an orb point.
func (m Model) cellPoint(cx, cy int) (orb.Point, bool) {
	r := m.layout()
	lon, lat, ok := m.cellToLonLat(cx, cy, r.w, r.h)
	return orb.Point{lon, lat}, ok
}
