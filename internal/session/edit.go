package session

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"geoedit/internal/dataset"
)

// PointPatch is a partial point update. Nil fields are left unchanged;
// Attributes are merged key by key into the point's attributes.
type PointPatch struct {
	Lat         *float64
	Lon         *float64
	Alt         *float64
	Heading     *float64
	GimbalPitch *float64
	Attributes  dataset.Attributes
}

// Empty reports whether the patch changes nothing.
func (pp PointPatch) Empty() bool {
	return pp.Lat == nil && pp.Lon == nil && pp.Alt == nil && pp.Heading == nil &&
		pp.GimbalPitch == nil && len(pp.Attributes) == 0
}

// apply merges attributes first so the typed fields win in the mirror.
func (pp PointPatch) apply(p dataset.FeaturePoint, m dataset.Mapping) dataset.FeaturePoint {
	if len(pp.Attributes) > 0 {
		attrs := p.Attributes.Clone()
		if attrs == nil {
			attrs = dataset.Attributes{}
		}
		for k, v := range pp.Attributes {
			attrs[k] = v
		}
		p.Attributes = attrs
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Lat, pp.Lat)
	set(&p.Lon, pp.Lon)
	set(&p.Alt, pp.Alt)
	set(&p.Heading, pp.Heading)
	set(&p.GimbalPitch, pp.GimbalPitch)
	return mirror(p, m)
}

// UpdatePoint applies patch to the point with the given id.
func (s *Session) UpdatePoint(id string, patch PointPatch) {
	if patch.Empty() {
		return
	}
	s.update(false, func(st State) State {
		i := slices.IndexFunc(st.Points, func(p dataset.FeaturePoint) bool { return p.ID == id })
		if i < 0 {
			return st
		}
		pts := slices.Clone(st.Points)
		pts[i] = patch.apply(pts[i], st.Mapping)
		st.Points = pts
		return st
	})
}

// UpdateSelectedPoints applies patch to every selected point as one undo step.
func (s *Session) UpdateSelectedPoints(patch PointPatch) {
	if patch.Empty() {
		return
	}
	s.update(false, func(st State) State {
		if len(st.SelectedPoints) == 0 {
			return st
		}
		pts := make([]dataset.FeaturePoint, len(st.Points))
		for i, p := range st.Points {
			if st.SelectedPoints.Has(p.ID) {
				p = patch.apply(p, st.Mapping)
			}
			pts[i] = p
		}
		st.Points = pts
		return st
	})
}

// Typed field names accepted by ParseBatchEdit.
const (
	FieldLat         = "lat"
	FieldLon         = "lon"
	FieldAlt         = "alt"
	FieldHeading     = "heading"
	FieldGimbalPitch = "gimbalPitch"
)

// ParseBatchEdit turns form input into a patch. Blank values are skipped.
// The typed fields must parse as numbers; any other key is an attribute,
// stored as a number when the schema says the column is numeric and the
// value parses.
func (s *Session) ParseBatchEdit(fields map[string]string) (PointPatch, error) {
	var patch PointPatch
	schema := s.hist.State().Schema
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		raw := strings.TrimSpace(fields[k])
		if raw == "" {
			continue
		}
		var dst **float64
		switch k {
		case FieldLat:
			dst = &patch.Lat
		case FieldLon:
			dst = &patch.Lon
		case FieldAlt:
			dst = &patch.Alt
		case FieldHeading:
			dst = &patch.Heading
		case FieldGimbalPitch:
			dst = &patch.GimbalPitch
		}
		if dst != nil {
			n, ok := dataset.ParseNumber(raw)
			if !ok {
				return PointPatch{}, &dataset.ValidationError{
					Field: k,
					Msg:   fmt.Sprintf("%q is not a number", raw),
					Err:   dataset.ErrNotNumeric,
				}
			}
			*dst = &n
			continue
		}
		if patch.Attributes == nil {
			patch.Attributes = dataset.Attributes{}
		}
		var v any = raw
		if f, ok := schema.Field(k); ok && f.Type == dataset.FieldNumber {
			if n, ok := dataset.ParseNumber(raw); ok {
				v = n
			}
		}
		patch.Attributes[k] = v
	}
	return patch, nil
}

// DuplicateSelectedPoints appends an offset clone of every selected point,
// in point order, and makes the clones the new selection. The originals are
// deselected.
func (s *Session) DuplicateSelectedPoints() {
	off := s.cfg.DuplicateOffset
	s.update(false, func(st State) State {
		if len(st.SelectedPoints) == 0 {
			return st
		}
		pts := slices.Clone(st.Points)
		sel := IDSet{}
		for _, p := range st.Points {
			if !st.SelectedPoints.Has(p.ID) {
				continue
			}
			c := p.Clone()
			c.ID = s.newID()
			c.Lon += off
			c.Lat += off
			pts = append(pts, mirror(c, st.Mapping))
			sel[c.ID] = struct{}{}
		}
		st.Points = pts
		st.SelectedPoints = sel
		return st
	})
}

// DeleteSelectedPoints removes the selection and leaves add mode.
func (s *Session) DeleteSelectedPoints() {
	s.update(false, func(st State) State {
		st.Points = slices.DeleteFunc(slices.Clone(st.Points), func(p dataset.FeaturePoint) bool {
			return st.SelectedPoints.Has(p.ID)
		})
		st.SelectedPoints = IDSet{}
		st.SelectionAddMode = false
		return st
	})
}

// ReverseFlightPoints reverses the flight path order.
func (s *Session) ReverseFlightPoints() {
	s.update(false, func(st State) State {
		if len(st.Points) < 2 {
			return st
		}
		pts := slices.Clone(st.Points)
		slices.Reverse(pts)
		st.Points = pts
		return st
	})
}
