package session

import (
	"log/slog"

	"github.com/paulmach/orb"

	"geoedit/internal/dataset"
)

// switchMode moves st to next. Leaving translate or rotate without a commit
// restores the points from the open snapshot and closes the transaction.
func switchMode(st State, next Mode) State {
	if st.SelectionMode == ModeTranslate && next != ModeTranslate {
		if st.PointsBeforeTranslate != nil {
			st = restore(st, st.PointsBeforeTranslate)
		}
		st.PointsBeforeTranslate = nil
		st.TranslationDelta = Delta{}
	}
	if st.SelectionMode == ModeRotate && next != ModeRotate {
		if st.PointsBeforeRotate != nil {
			st = restore(st, st.PointsBeforeRotate)
		}
		st.PointsBeforeRotate = nil
		st.RotationCenter = nil
	}
	st.SelectionMode = next
	return st
}

// restore puts snapshot back as the live points and drops selected ids that
// only existed after the snapshot was taken.
func restore(st State, snapshot []dataset.FeaturePoint) State {
	st.Points = snapshot
	ids := st.ids()
	sel := make(IDSet, len(st.SelectedPoints))
	for id := range st.SelectedPoints {
		if ids.Has(id) {
			sel[id] = struct{}{}
		}
	}
	st.SelectedPoints = sel
	return st
}

// SetSelectionMode switches the interaction mode. Entering translate with a
// selection opens a translate transaction. Entering rotate needs at least two
// selected points; otherwise the switch is refused and false is returned.
func (s *Session) SetSelectionMode(m Mode) bool {
	cur := s.hist.State()
	if m == ModeRotate && len(cur.SelectedPoints) < 2 {
		s.log.Info("rotate needs at least two selected points", slog.Int("selected", len(cur.SelectedPoints)))
		return false
	}
	s.drag = dragState{}
	s.update(false, func(st State) State {
		st = switchMode(st, m)
		st.IsDrawing = m == ModePolygon
		st.DrawnPolygon = nil
		st.PointsBeforeTranslate = nil
		st.TranslationDelta = Delta{}
		st.RotationCenter = nil
		st.PointsBeforeRotate = nil
		switch m {
		case ModePolygon:
			if !st.SelectionAddMode {
				st.SelectedPoints = IDSet{}
			}
		case ModeTranslate:
			if len(st.SelectedPoints) > 0 {
				st.PointsBeforeTranslate = st.Points
			}
		case ModeAttribute:
			st.AttributeQuery = nil
		}
		return st
	})
	return true
}

// SetTranslationLock freezes or frees one axis for drag translation.
func (s *Session) SetTranslationLock(a Axis, locked bool) {
	s.update(true, func(st State) State {
		switch a {
		case AxisLat:
			st.TranslationLock.Lat = locked
		case AxisLon:
			st.TranslationLock.Lon = locked
		case AxisAlt:
			st.TranslationLock.Alt = locked
		}
		return st
	})
}

// TranslateSelectedPoints moves the selection by d within the open translate
// transaction. Locked axes are ignored. Each call is its own undo step.
func (s *Session) TranslateSelectedPoints(d Delta) {
	s.update(false, func(st State) State {
		if st.PointsBeforeTranslate == nil {
			return st
		}
		d := st.TranslationLock.apply(d)
		st.Points = translatePoints(st.Points, st.SelectedPoints, d, st.Mapping)
		st.TranslationDelta = Delta{
			DLat: st.TranslationDelta.DLat + d.DLat,
			DLon: st.TranslationDelta.DLon + d.DLon,
			DAlt: st.TranslationDelta.DAlt + d.DAlt,
		}
		return st
	})
}

// SetTranslationValue sets the cumulative offset on one axis, moving the
// selection by the difference to the previous value.
func (s *Session) SetTranslationValue(a Axis, v float64) {
	s.update(false, func(st State) State {
		if st.PointsBeforeTranslate == nil {
			return st
		}
		change := Delta{}.with(a, v-st.TranslationDelta.get(a))
		st.Points = translatePoints(st.Points, st.SelectedPoints, change, st.Mapping)
		st.TranslationDelta = st.TranslationDelta.with(a, v)
		return st
	})
}

// ApplyTranslation commits the translate transaction. Outside translate
// mode it does nothing.
func (s *Session) ApplyTranslation() {
	if s.drag.kind == dragTranslate {
		s.drag = dragState{}
	}
	s.update(false, func(st State) State {
		if st.SelectionMode != ModeTranslate {
			return st
		}
		st.PointsBeforeTranslate = nil
		st.TranslationDelta = Delta{}
		return switchMode(st, ModeSingle)
	})
}

// CancelTranslation reverts the translate transaction. Outside translate
// mode it does nothing.
func (s *Session) CancelTranslation() {
	if s.drag.kind == dragTranslate {
		s.drag = dragState{}
	}
	s.update(false, func(st State) State {
		if st.SelectionMode != ModeTranslate {
			return st
		}
		return switchMode(st, ModeSingle)
	})
}

// SetRotationCenter places the rotation pivot. Only meaningful in rotate mode.
func (s *Session) SetRotationCenter(p orb.Point) {
	s.update(true, func(st State) State {
		if st.SelectionMode != ModeRotate {
			return st
		}
		st.RotationCenter = &p
		return st
	})
}

// BeginRotate opens the rotate transaction once a pivot is set. It is called
// when a rotate drag starts and does nothing if one is already open.
func (s *Session) BeginRotate() bool {
	opened := false
	s.update(true, func(st State) State {
		if st.SelectionMode != ModeRotate || st.RotationCenter == nil {
			return st
		}
		opened = true
		if st.PointsBeforeRotate == nil {
			st.PointsBeforeRotate = st.Points
		}
		return st
	})
	return opened
}

// RotateSelectedPoints turns the selection about the pivot by angle degrees,
// counter-clockwise for positive angles. Calls compose; each is its own undo
// step.
func (s *Session) RotateSelectedPoints(angle float64) {
	s.update(false, func(st State) State {
		if st.SelectionMode != ModeRotate || st.RotationCenter == nil {
			return st
		}
		if st.PointsBeforeRotate == nil {
			st.PointsBeforeRotate = st.Points
		}
		st.Points = rotatePoints(st.Points, st.SelectedPoints, *st.RotationCenter, angle, st.Mapping)
		return st
	})
}

// ApplyRotation commits the rotate transaction. Without one it does nothing.
func (s *Session) ApplyRotation() {
	s.drag = dragState{}
	s.update(false, func(st State) State {
		if st.PointsBeforeRotate == nil {
			return st
		}
		st.PointsBeforeRotate = nil
		st.RotationCenter = nil
		st.SelectionMode = ModeSingle
		return st
	})
}

// CancelRotation reverts the rotate transaction and returns to single mode.
func (s *Session) CancelRotation() {
	s.drag = dragState{}
	s.update(false, func(st State) State {
		if st.SelectionMode != ModeRotate {
			return st
		}
		return switchMode(st, ModeSingle)
	})
}
