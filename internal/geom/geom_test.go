package geom

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var square = []Vertex{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

func TestClosedRing(t *testing.T) {
	r := ClosedRing(square)
	require.Len(t, r, 5)
	assert.Equal(t, r[0], r[4])
	assert.Nil(t, ClosedRing(square[:2]))
}

func TestRingContainsIsBoundaryInclusive(t *testing.T) {
	r := ClosedRing(square)
	for _, tc := range []struct {
		p    orb.Point
		want bool
	}{
		{orb.Point{5, 5}, true},
		{orb.Point{0, 5}, true},
		{orb.Point{10, 10}, true},
		{orb.Point{5, 0}, true},
		{orb.Point{10.001, 5}, false},
		{orb.Point{-1, -1}, false},
	} {
		assert.Equal(t, tc.want, RingContains(r, tc.p), "%v", tc.p)
	}
	assert.False(t, RingContains(nil, orb.Point{1, 1}))
}

func TestRotateAbout(t *testing.T) {
	pivot := orb.Point{0, 0}
	got := RotateAbout(pivot, orb.Point{1, 0}, 90)
	assert.InDelta(t, 0, got[0], 1e-6)
	assert.InDelta(t, 1, got[1], 1e-6)

	got = RotateAbout(pivot, orb.Point{1, 0}, -90)
	assert.InDelta(t, 0, got[0], 1e-6)
	assert.InDelta(t, -1, got[1], 1e-6)

	assert.Equal(t, pivot, RotateAbout(pivot, pivot, 45))
}

func TestRotateAboutComposes(t *testing.T) {
	pivot := orb.Point{10, 45}
	start := orb.Point{10.01, 45.005}
	p := start
	for range 4 {
		p = RotateAbout(pivot, p, 90)
	}
	assert.InDelta(t, start[0], p[0], 1e-7)
	assert.InDelta(t, start[1], p[1], 1e-7)
}

func TestBounds(t *testing.T) {
	b := Bounds([]orb.Point{{1, 2}, {3, -4}})
	assert.Equal(t, BBox{MinX: 1, MinY: -4, MaxX: 3, MaxY: 2}, b)
	assert.True(t, b.Valid())

	single := Bounds([]orb.Point{{5, 5}})
	assert.True(t, single.Valid())
	assert.False(t, Bounds(nil).Valid())
}

func TestParseWKTPolygon(t *testing.T) {
	vs, err := ParseWKTPolygon("POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))")
	require.NoError(t, err)
	assert.Equal(t, square, vs)

	_, err = ParseWKTPolygon("POINT(1 2)")
	assert.Error(t, err)
	_, err = ParseWKTPolygon("")
	assert.Error(t, err)
}
