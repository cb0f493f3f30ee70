package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// ParseWKTPolygon reads the outer ring of a WKT POLYGON as drawn vertices,
// without the closing vertex.
func ParseWKTPolygon(s string) ([]Vertex, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("wkt: %w", err)
	}
	poly, ok := g.(orb.Polygon)
	if !ok {
		return nil, fmt.Errorf("wkt: want POLYGON, got %s", g.GeoJSONType())
	}
	if len(poly) == 0 || len(poly[0]) < 3 {
		return nil, errors.New("wkt polygon: fewer than 3 vertices")
	}
	ring := poly[0]
	if len(ring) > 3 && ring.Closed() {
		ring = ring[:len(ring)-1]
	}
	out := make([]Vertex, len(ring))
	for i, p := range ring {
		out[i] = Vertex{Lng: p[0], Lat: p[1]}
	}
	return out, nil
}
