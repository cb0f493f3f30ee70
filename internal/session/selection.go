package session

import (
	"github.com/paulmach/orb"

	"geoedit/internal/dataset"
	"geoedit/internal/geom"
)

// PickSelection is the single-mode click rule. In add mode the clicked id
// joins the selection. Otherwise clicking the sole selected point clears the
// selection and any other click replaces it.
func PickSelection(selected IDSet, id string, addMode bool) IDSet {
	if addMode {
		return combine(selected, []string{id}, true)
	}
	if len(selected) == 1 && selected.Has(id) {
		return IDSet{}
	}
	return NewIDSet(id)
}

// PolygonSelection returns the ids of points inside or on the boundary of
// ring, in point order.
func PolygonSelection(points []dataset.FeaturePoint, ring orb.Ring) []string {
	var ids []string
	for _, p := range points {
		if geom.RingContains(ring, orb.Point{p.Lon, p.Lat}) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// AttributeSelection returns the ids of points matching q, in point order.
func AttributeSelection(points []dataset.FeaturePoint, q AttributeQuery) []string {
	var ids []string
	for _, p := range points {
		if q.Matches(p.Attributes) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// RangeSelection returns the ids at 1-based positions from..to inclusive,
// clamped to the point count. A range lying wholly past either end is empty.
func RangeSelection(points []dataset.FeaturePoint, from, to int) []string {
	lo := max(from, 1) - 1
	hi := min(to, len(points)) - 1
	if lo > hi {
		return nil
	}
	ids := make([]string, 0, hi-lo+1)
	for _, p := range points[lo : hi+1] {
		ids = append(ids, p.ID)
	}
	return ids
}

// combine merges found into current in add mode, else replaces it.
func combine(current IDSet, found []string, addMode bool) IDSet {
	if !addMode {
		return NewIDSet(found...)
	}
	out := make(IDSet, len(current)+len(found))
	for k := range current {
		out[k] = struct{}{}
	}
	for _, id := range found {
		out[id] = struct{}{}
	}
	return out
}
