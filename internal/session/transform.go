package session

import (
	"github.com/paulmach/orb"

	"geoedit/internal/dataset"
	"geoedit/internal/geom"
)

// translatePoints shifts every selected point by d. The returned slice is
// new; unselected points are shared with the input.
func translatePoints(points []dataset.FeaturePoint, selected IDSet, d Delta, m dataset.Mapping) []dataset.FeaturePoint {
	out := make([]dataset.FeaturePoint, len(points))
	for i, p := range points {
		if !selected.Has(p.ID) {
			out[i] = p
			continue
		}
		p.Lat += d.DLat
		p.Lon += d.DLon
		p.Alt += d.DAlt
		out[i] = mirror(p, m)
	}
	return out
}

// rotatePoints turns every selected point around pivot by angle degrees,
// counter-clockwise for positive angles.
func rotatePoints(points []dataset.FeaturePoint, selected IDSet, pivot orb.Point, angle float64, m dataset.Mapping) []dataset.FeaturePoint {
	out := make([]dataset.FeaturePoint, len(points))
	for i, p := range points {
		if !selected.Has(p.ID) {
			out[i] = p
			continue
		}
		r := geom.RotateAbout(pivot, orb.Point{p.Lon, p.Lat}, angle)
		p.Lon, p.Lat = r[0], r[1]
		out[i] = mirror(p, m)
	}
	return out
}

// mirror copies the typed fields of p into the attribute columns named by m.
// Attributes are cloned before writing, so p may share its map with a
// stored state.
func mirror(p dataset.FeaturePoint, m dataset.Mapping) dataset.FeaturePoint {
	cols := []struct {
		name string
		v    float64
	}{
		{m.Lat, p.Lat},
		{m.Lon, p.Lon},
		{m.Alt, p.Alt},
		{m.Heading, p.Heading},
		{m.GimbalPitch, p.GimbalPitch},
	}
	attrs := p.Attributes.Clone()
	if attrs == nil {
		attrs = dataset.Attributes{}
	}
	for _, c := range cols {
		if c.name != "" {
			attrs[c.name] = c.v
		}
	}
	p.Attributes = attrs
	return p
}

// apply zeroes the components of d frozen by l.
func (l TranslationLock) apply(d Delta) Delta {
	if l.Lat {
		d.DLat = 0
	}
	if l.Lon {
		d.DLon = 0
	}
	if l.Alt {
		d.DAlt = 0
	}
	return d
}
