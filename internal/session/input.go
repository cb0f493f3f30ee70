package session

import (
	"github.com/paulmach/orb"

	"geoedit/internal/geom"
)

// Key is a keyboard shortcut understood by the session.
type Key int

const (
	KeyEscape Key = iota
	KeyUndo
	KeyRedo
	KeyDelete
)

// Click handles a primary click at (lon, lat). hitID is the point under the
// pointer, or empty.
func (s *Session) Click(lon, lat float64, hitID string) {
	if s.drag.kind != dragNone {
		return
	}
	st := s.hist.State()
	switch {
	case st.IsDrawing:
		s.AddPolygonVertex(geom.Vertex{Lng: lon, Lat: lat})
	case st.SelectionMode == ModeRotate:
		if st.RotationCenter == nil {
			s.SetRotationCenter(orb.Point{lon, lat})
		}
	case st.SelectionMode == ModeTranslate:
		// the selection is fixed while a translate is open
	case hitID != "":
		s.TogglePointSelection(hitID)
	case st.SelectionMode == ModeSingle && !st.SelectionAddMode && len(st.SelectedPoints) > 0:
		s.ClearSelection()
	}
}

// PointerDown starts a drag gesture. It reports whether the session took
// the gesture, in which case the front end should not pan.
func (s *Session) PointerDown(lon, lat float64) bool {
	st := s.hist.State()
	switch {
	case st.SelectionMode == ModeTranslate && len(st.SelectedPoints) > 0 && st.PointsBeforeTranslate != nil:
		s.drag = dragState{kind: dragTranslate, lastLon: lon, lastLat: lat}
		return true
	case st.SelectionMode == ModeRotate && st.RotationCenter != nil:
		if s.BeginRotate() {
			s.drag = dragState{kind: dragRotate, lastLon: lon, lastLat: lat}
			return true
		}
	}
	return false
}

// PointerMove continues a drag. lon/lat is the pointer position on the map;
// dx/dy is the screen movement since the last event, in cells. Dragging up
// raises altitude during translate; dragging right turns clockwise during
// rotate.
func (s *Session) PointerMove(lon, lat, dx, dy float64) {
	switch s.drag.kind {
	case dragTranslate:
		s.TranslateSelectedPoints(Delta{
			DLat: lat - s.drag.lastLat,
			DLon: lon - s.drag.lastLon,
			DAlt: -dy * s.cfg.AltitudeSensitivity,
		})
		s.drag.lastLon, s.drag.lastLat = lon, lat
	case dragRotate:
		if dx != 0 {
			s.RotateSelectedPoints(-dx * s.cfg.RotationSensitivity)
			s.drag.moved = true
		}
		s.drag.lastLon, s.drag.lastLat = lon, lat
	}
}

// PointerUp ends a drag. A rotate drag that turned the selection is
// committed on release; a press without motion leaves the rotate open. A
// translate stays open until applied or cancelled.
func (s *Session) PointerUp() {
	d := s.drag
	s.drag = dragState{}
	if d.kind == dragRotate && d.moved {
		s.ApplyRotation()
	}
}

// Dragging reports whether a drag gesture is in progress.
func (s *Session) Dragging() bool { return s.drag.kind != dragNone }

// ContextMenu handles a secondary click. While drawing it closes the polygon
// and returns the selection count and true.
func (s *Session) ContextMenu() (int, bool) {
	if !s.hist.State().IsDrawing {
		return 0, false
	}
	return s.FinishPolygonSelection(), true
}

// HandleKey runs a keyboard shortcut.
func (s *Session) HandleKey(k Key) {
	switch k {
	case KeyEscape:
		st := s.hist.State()
		switch {
		case st.IsDrawing:
			s.SetSelectionMode(ModeSingle)
		case st.SelectionMode == ModeTranslate:
			s.CancelTranslation()
		case st.SelectionMode == ModeRotate:
			s.CancelRotation()
		}
	case KeyUndo:
		s.Undo()
	case KeyRedo:
		s.Redo()
	case KeyDelete:
		if len(s.hist.State().SelectedPoints) > 0 {
			s.DeleteSelectedPoints()
		}
	}
}
