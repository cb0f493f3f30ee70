package session

import (
	"maps"
	"slices"

	"github.com/paulmach/orb"

	"geoedit/internal/dataset"
	"geoedit/internal/geom"
)

// Mode is the interaction strategy that decides what clicks and drags do.
type Mode int

const (
	ModeSingle Mode = iota
	ModePolygon
	ModeAll
	ModeTranslate
	ModeBatchEdit
	ModeAttribute
	ModeRotate
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModePolygon:
		return "polygon"
	case ModeAll:
		return "all"
	case ModeTranslate:
		return "translate"
	case ModeBatchEdit:
		return "batch-edit"
	case ModeAttribute:
		return "attribute"
	case ModeRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// ParseMode parses the String form of a mode.
func ParseMode(s string) (Mode, bool) {
	for m := ModeSingle; m <= ModeRotate; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return ModeSingle, false
}

// IDSet is a set of point ids.
type IDSet map[string]struct{}

func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted lists the ids in lexical order.
func (s IDSet) Sorted() []string { return slices.Sorted(maps.Keys(s)) }

type Axis int

const (
	AxisLat Axis = iota
	AxisLon
	AxisAlt
)

func (a Axis) String() string {
	switch a {
	case AxisLat:
		return "lat"
	case AxisLon:
		return "lon"
	case AxisAlt:
		return "alt"
	default:
		return "unknown"
	}
}

// TranslationLock freezes individual axes during drag translation.
type TranslationLock struct {
	Lat bool
	Lon bool
	Alt bool
}

// Delta is a translation offset in degrees (lat/lon) and metres (alt).
type Delta struct {
	DLat float64
	DLon float64
	DAlt float64
}

func (d Delta) get(a Axis) float64 {
	switch a {
	case AxisLat:
		return d.DLat
	case AxisLon:
		return d.DLon
	default:
		return d.DAlt
	}
}

func (d Delta) with(a Axis, v float64) Delta {
	switch a {
	case AxisLat:
		d.DLat = v
	case AxisLon:
		d.DLon = v
	default:
		d.DAlt = v
	}
	return d
}

// State is the whole editing session, the unit kept in history. A stored
// State is never mutated; commands derive a new one and replace slices or
// maps they change.
type State struct {
	Points          []dataset.FeaturePoint
	SelectedPoints  IDSet
	OriginalHeaders []string
	// Mapping is the column mapping of the import, used to keep the
	// attribute mirror in sync with the typed fields.
	Mapping       dataset.Mapping
	SelectionMode Mode
	DrawnPolygon  []geom.Vertex
	IsDrawing     bool

	TranslationLock  TranslationLock
	TranslationDelta Delta
	// Non-nil iff a translate transaction is open.
	PointsBeforeTranslate []dataset.FeaturePoint

	RotationCenter *orb.Point
	// Non-nil iff a rotate transaction is open.
	PointsBeforeRotate []dataset.FeaturePoint

	Schema           dataset.Schema
	AttributeQuery   *AttributeQuery
	SelectionAddMode bool
}

// InitialState is the empty session before any import.
func InitialState() State {
	return State{SelectedPoints: IDSet{}, SelectionMode: ModeSingle}
}

// FromImport builds the fresh state for a completed import.
func FromImport(imp *dataset.Imported, m dataset.Mapping) State {
	s := InitialState()
	s.Points = imp.Points
	if s.Points == nil {
		s.Points = []dataset.FeaturePoint{}
	}
	s.OriginalHeaders = imp.Headers
	s.Schema = imp.Schema
	s.Mapping = m
	return s
}

// Clone deep-copies s so the result can be handed to code outside the session.
func (s State) Clone() State {
	s.Points = dataset.ClonePoints(s.Points)
	s.SelectedPoints = maps.Clone(s.SelectedPoints)
	s.OriginalHeaders = slices.Clone(s.OriginalHeaders)
	s.DrawnPolygon = slices.Clone(s.DrawnPolygon)
	s.PointsBeforeTranslate = dataset.ClonePoints(s.PointsBeforeTranslate)
	s.PointsBeforeRotate = dataset.ClonePoints(s.PointsBeforeRotate)
	if s.RotationCenter != nil {
		c := *s.RotationCenter
		s.RotationCenter = &c
	}
	if s.AttributeQuery != nil {
		q := s.AttributeQuery.clone()
		s.AttributeQuery = &q
	}
	return s
}

// Equal is structural equality over every field.
func (s State) Equal(o State) bool {
	return dataset.PointsEqual(s.Points, o.Points) &&
		maps.Equal(s.SelectedPoints, o.SelectedPoints) &&
		slices.Equal(s.OriginalHeaders, o.OriginalHeaders) &&
		s.Mapping == o.Mapping &&
		s.SelectionMode == o.SelectionMode &&
		slices.Equal(s.DrawnPolygon, o.DrawnPolygon) &&
		s.IsDrawing == o.IsDrawing &&
		s.TranslationLock == o.TranslationLock &&
		s.TranslationDelta == o.TranslationDelta &&
		dataset.PointsEqual(s.PointsBeforeTranslate, o.PointsBeforeTranslate) &&
		pointPtrEq(s.RotationCenter, o.RotationCenter) &&
		dataset.PointsEqual(s.PointsBeforeRotate, o.PointsBeforeRotate) &&
		s.Schema.Equal(o.Schema) &&
		queryPtrEq(s.AttributeQuery, o.AttributeQuery) &&
		s.SelectionAddMode == o.SelectionAddMode
}

func pointPtrEq(a, b *orb.Point) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func queryPtrEq(a, b *AttributeQuery) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// ids returns the id set of the current points.
func (s State) ids() IDSet {
	out := make(IDSet, len(s.Points))
	for _, p := range s.Points {
		out[p.ID] = struct{}{}
	}
	return out
}
