// Package geom holds the geometric primitives of the editor: bounds for the
// map viewport, boundary-inclusive polygon containment and pivot rotation.
package geom

import "github.com/paulmach/orb"

// BBox is a lon/lat bounding box.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether the box has a non-zero extent on both axes.
func (b BBox) Valid() bool { return b.MaxX > b.MinX && b.MaxY > b.MinY }

// Bounds returns the box around pts, padded so that a single point or a
// straight line still has an area to render into.
func Bounds(pts []orb.Point) BBox {
	if len(pts) == 0 {
		return BBox{}
	}
	bd := orb.MultiPoint(pts).Bound()
	b := BBox{MinX: bd.Min[0], MinY: bd.Min[1], MaxX: bd.Max[0], MaxY: bd.Max[1]}
	const pad = 0.0005
	if b.MaxX-b.MinX < pad {
		b.MinX -= pad
		b.MaxX += pad
	}
	if b.MaxY-b.MinY < pad {
		b.MinY -= pad
		b.MaxY += pad
	}
	return b
}

// Vertex is a polygon vertex as drawn on the map surface.
type Vertex struct {
	Lng float64
	Lat float64
}

func (v Vertex) Point() orb.Point { return orb.Point{v.Lng, v.Lat} }
