package session

import (
	"log/slog"

	"geoedit/internal/geom"
)

// Selection commands only touch the current history entry; none of them
// adds an undo step.

// TogglePointSelection applies the click rule to id. Unknown ids are ignored.
func (s *Session) TogglePointSelection(id string) {
	s.update(true, func(st State) State {
		if !st.ids().Has(id) {
			return st
		}
		sel := PickSelection(st.SelectedPoints, id, st.SelectionAddMode)
		st = switchMode(st, ModeSingle)
		st.SelectedPoints = sel
		return st
	})
}

// SelectAll selects every point (mode all) or none (mode single).
func (s *Session) SelectAll(all bool) {
	s.update(true, func(st State) State {
		if all {
			st = switchMode(st, ModeAll)
			st.SelectedPoints = st.ids()
			return st
		}
		st = switchMode(st, ModeSingle)
		st.SelectedPoints = IDSet{}
		return st
	})
}

// ClearSelection empties the selection and leaves add mode.
func (s *Session) ClearSelection() {
	s.update(true, func(st State) State {
		st = switchMode(st, ModeSingle)
		st.SelectedPoints = IDSet{}
		st.SelectionAddMode = false
		return st
	})
}

// SetSelectionAddMode toggles whether new selections union with the current one.
func (s *Session) SetSelectionAddMode(on bool) {
	s.update(true, func(st State) State {
		st.SelectionAddMode = on
		return st
	})
}

// AddPolygonVertex extends the polygon being drawn.
func (s *Session) AddPolygonVertex(v geom.Vertex) {
	s.update(true, func(st State) State {
		if !st.IsDrawing {
			return st
		}
		st.DrawnPolygon = append(st.DrawnPolygon[:len(st.DrawnPolygon):len(st.DrawnPolygon)], v)
		return st
	})
}

// SetDrawnPolygon replaces the polygon being drawn, e.g. with one read from WKT.
func (s *Session) SetDrawnPolygon(vs []geom.Vertex) {
	s.update(true, func(st State) State {
		if !st.IsDrawing {
			return st
		}
		st.DrawnPolygon = append([]geom.Vertex(nil), vs...)
		return st
	})
}

// FinishPolygonSelection closes the drawn polygon and selects the points
// inside it. It returns the number of points found. Fewer than three
// vertices select nothing and return to single mode.
func (s *Session) FinishPolygonSelection() int {
	found := 0
	s.update(true, func(st State) State {
		ring := geom.ClosedRing(st.DrawnPolygon)
		st.IsDrawing = false
		st.DrawnPolygon = nil
		if ring == nil {
			return switchMode(st, ModeSingle)
		}
		ids := PolygonSelection(st.Points, ring)
		found = len(ids)
		st.SelectedPoints = combine(st.SelectedPoints, ids, st.SelectionAddMode)
		if len(st.SelectedPoints) > 0 {
			return switchMode(st, ModeBatchEdit)
		}
		return switchMode(st, ModeSingle)
	})
	s.log.Info("polygon selection", slog.Int("found", found))
	return found
}

// SetAttributeQuery stores the query to apply; nil clears it. Numeric
// operands are stored as float64. A query with an operand of any other
// non-attribute type is refused and logged.
func (s *Session) SetAttributeQuery(q *AttributeQuery) {
	var c *AttributeQuery
	if q != nil {
		n, err := q.normalize()
		if err != nil {
			s.log.Warn("attribute query refused", slog.Any("err", err))
			return
		}
		c = &n
	}
	s.update(false, func(st State) State {
		st.AttributeQuery = c
		return st
	})
}

// ApplyAttributeSelection evaluates the stored query, combines the matches
// with the selection and clears the query. It returns the match count.
func (s *Session) ApplyAttributeSelection() int {
	if s.hist.State().AttributeQuery == nil {
		s.log.Warn("no attribute query to apply")
		return 0
	}
	found := 0
	s.update(true, func(st State) State {
		ids := AttributeSelection(st.Points, *st.AttributeQuery)
		found = len(ids)
		st.SelectedPoints = combine(st.SelectedPoints, ids, st.SelectionAddMode)
		st.AttributeQuery = nil
		if len(st.SelectedPoints) > 0 {
			return switchMode(st, ModeBatchEdit)
		}
		return switchMode(st, ModeSingle)
	})
	if found == 0 {
		s.log.Warn("attribute query matched no points")
	}
	return found
}

// ApplyBatchSelection selects ids, dropping any that are not points, and
// enters batch-edit. An empty request changes nothing. It returns the number
// of ids kept.
func (s *Session) ApplyBatchSelection(ids []string) int {
	if len(ids) == 0 {
		s.log.Warn("no ids provided for batch selection")
		return 0
	}
	kept := 0
	s.update(true, func(st State) State {
		known := st.ids()
		valid := make([]string, 0, len(ids))
		for _, id := range ids {
			if known.Has(id) {
				valid = append(valid, id)
			}
		}
		kept = len(valid)
		st.SelectedPoints = combine(st.SelectedPoints, valid, st.SelectionAddMode)
		return switchMode(st, ModeBatchEdit)
	})
	if kept == 0 {
		s.log.Warn("no points selected after batch selection")
	}
	return kept
}

// SelectRange selects points by 1-based flight order, from and to inclusive.
func (s *Session) SelectRange(from, to int) int {
	ids := RangeSelection(s.hist.State().Points, from, to)
	if len(ids) == 0 {
		s.log.Warn("no points in range", slog.Int("from", from), slog.Int("to", to))
		return 0
	}
	return s.ApplyBatchSelection(ids)
}
