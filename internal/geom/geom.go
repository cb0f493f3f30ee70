package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// ClosedRing closes the drawn vertex list by repeating the first vertex.
// Fewer than 3 vertices give nil.
func ClosedRing(vs []Vertex) orb.Ring {
	if len(vs) < 3 {
		return nil
	}
	r := make(orb.Ring, 0, len(vs)+1)
	for _, v := range vs {
		r = append(r, v.Point())
	}
	return append(r, vs[0].Point())
}

// RingContains reports whether p lies inside r or on its boundary.
func RingContains(r orb.Ring, p orb.Point) bool {
	if len(r) < 4 {
		return false
	}
	return planar.RingContains(r, p)
}

// RotateAbout rotates p around pivot by angle degrees, counter-clockwise for
// positive angles. Distance and bearing are taken on the sphere so the
// result keeps its ground distance to the pivot.
func RotateAbout(pivot, p orb.Point, angle float64) orb.Point {
	d := geo.Distance(pivot, p)
	if d == 0 {
		return p
	}
	b := geo.Bearing(pivot, p)
	return geo.PointAtBearingAndDistance(pivot, b-angle, d)
}
