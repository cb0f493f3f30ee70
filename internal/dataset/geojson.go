package dataset

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ToGeoJSON builds a FeatureCollection with the flight path as a LineString
// followed by one Point feature per waypoint. Point properties carry the
// 1-based index, the id, the typed fields and every attribute.
func ToGeoJSON(points []FeaturePoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if len(points) == 0 {
		return fc
	}
	path := make(orb.LineString, 0, len(points))
	alts := make([]float64, 0, len(points))
	for _, p := range points {
		path = append(path, orb.Point{p.Lon, p.Lat})
		alts = append(alts, p.Alt)
	}
	line := geojson.NewFeature(path)
	line.Properties["kind"] = "path"
	line.Properties["altitudes"] = alts
	fc.Append(line)

	for i, p := range points {
		f := geojson.NewFeature(orb.Point{p.Lon, p.Lat})
		for k, v := range p.Attributes {
			f.Properties[k] = v
		}
		f.Properties["index"] = i + 1
		f.Properties["id"] = p.ID
		f.Properties["altitude"] = p.Alt
		f.Properties["heading"] = p.Heading
		f.Properties["gimbalPitch"] = p.GimbalPitch
		fc.Append(f)
	}
	return fc
}

// ExportGeoJSON writes ToGeoJSON(points) to w.
func ExportGeoJSON(w io.Writer, points []FeaturePoint) error {
	b, err := ToGeoJSON(points).MarshalJSON()
	if err != nil {
		return fmt.Errorf("geojson: marshal: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("geojson: write: %w", err)
	}
	return nil
}
