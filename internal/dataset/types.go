// Package dataset holds the waypoint data model and the file codecs that
// move it in and out of the editor: CSV import/export with schema inference,
// GeoJSON and XLSX export.
package dataset

import (
	"maps"

	"github.com/google/uuid"
)

// Attributes mirrors every original CSV column of a point. Values are nil,
// string, float64 or bool.
type Attributes map[string]any

// Clone returns a shallow copy; values are immutable scalars.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// FeaturePoint is a single waypoint of the flight plan.
type FeaturePoint struct {
	ID          string
	Lat         float64
	Lon         float64
	Alt         float64
	Heading     float64
	GimbalPitch float64
	Attributes  Attributes
}

// Clone returns a copy that shares nothing mutable with p.
func (p FeaturePoint) Clone() FeaturePoint {
	p.Attributes = p.Attributes.Clone()
	return p
}

// Equal reports whether both points carry the same id, coordinates and attributes.
func (p FeaturePoint) Equal(o FeaturePoint) bool {
	if p.ID != o.ID || p.Lat != o.Lat || p.Lon != o.Lon || p.Alt != o.Alt ||
		p.Heading != o.Heading || p.GimbalPitch != o.GimbalPitch {
		return false
	}
	if len(p.Attributes) != len(o.Attributes) {
		return false
	}
	for k, v := range p.Attributes {
		ov, ok := o.Attributes[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// ClonePoints deep-copies a point slice. nil stays nil.
func ClonePoints(pts []FeaturePoint) []FeaturePoint {
	if pts == nil {
		return nil
	}
	out := make([]FeaturePoint, len(pts))
	for i, p := range pts {
		out[i] = p.Clone()
	}
	return out
}

// PointsEqual compares two point sequences element by element. A nil and an
// empty slice are different: nil marks an absent snapshot.
func PointsEqual(a, b []FeaturePoint) bool {
	if (a == nil) != (b == nil) || len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Mapping names the CSV columns holding the typed point fields. Lat and Lon
// are required; the others may be empty.
type Mapping struct {
	Lat         string `yaml:"lat"`
	Lon         string `yaml:"lon"`
	Alt         string `yaml:"alt"`
	Heading     string `yaml:"heading"`
	GimbalPitch string `yaml:"gimbal_pitch"`
}

// Imported is the result of a CSV import.
type Imported struct {
	Points  []FeaturePoint
	Headers []string
	Schema  Schema
	// Dropped counts rows skipped for bad coordinates.
	Dropped int
}

// NewID mints a fresh point id.
func NewID() string { return uuid.NewString() }
