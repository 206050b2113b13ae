package main

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b LineSegment
		want bool
	}{
		{
			name: "proper crossing",
			a:    LineSegment{P1: Point{0, 0}, P2: Point{2, 2}},
			b:    LineSegment{P1: Point{0, 2}, P2: Point{2, 0}},
			want: true,
		},
		{
			name: "shared endpoint",
			a:    LineSegment{P1: Point{0, 0}, P2: Point{1, 1}},
			b:    LineSegment{P1: Point{1, 1}, P2: Point{2, 0}},
			want: false,
		},
		{
			name: "collinear overlap",
			a:    LineSegment{P1: Point{0, 0}, P2: Point{2, 0}},
			b:    LineSegment{P1: Point{1, 0}, P2: Point{3, 0}},
			want: false,
		},
		{
			name: "endpoint touching interior",
			a:    LineSegment{P1: Point{0, 0}, P2: Point{2, 0}},
			b:    LineSegment{P1: Point{1, 0}, P2: Point{1, 2}},
			want: false,
		},
		{
			name: "disjoint",
			a:    LineSegment{P1: Point{0, 0}, P2: Point{1, 0}},
			b:    LineSegment{P1: Point{0, 1}, P2: Point{1, 1}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(tt.a), "intersection must be symmetric")
		})
	}
}

func TestSegmentContainsPoint(t *testing.T) {
	seg := LineSegment{P1: Point{0, 0}, P2: Point{2, 2}}

	assert.True(t, seg.ContainsPoint(Point{1, 1}))
	assert.True(t, seg.ContainsPoint(Point{1.0004, 1}), "within tolerance of the line")
	assert.False(t, seg.ContainsPoint(Point{0, 0}), "endpoints are excluded")
	assert.False(t, seg.ContainsPoint(Point{2.0005, 1.9995}), "points equal to an endpoint are excluded")
	assert.False(t, seg.ContainsPoint(Point{3, 3}), "beyond the far endpoint")
	assert.False(t, seg.ContainsPoint(Point{-1, -1}), "before the near endpoint")
	assert.False(t, seg.ContainsPoint(Point{1, 1.5}))
}

func TestSegmentHelpers(t *testing.T) {
	seg := LineSegment{P1: Point{0, 0}, P2: Point{3, 4}}

	assert.InDelta(t, 5.0, seg.Length(), 1e-12)
	assert.Equal(t, Point{1.5, 2}, seg.Midpoint())
	assert.True(t, seg.SameEndpoints(LineSegment{P1: Point{3, 4}, P2: Point{0, 0}}))
	assert.False(t, seg.SameEndpoints(LineSegment{P1: Point{3, 4}, P2: Point{0, 1}}))
}

func TestPointEqual(t *testing.T) {
	assert.True(t, Point{1, 1}.Equal(Point{1.0009, 0.9991}))
	assert.False(t, Point{1, 1}.Equal(Point{1.002, 1}))
	assert.InDelta(t, 5.0, Point{0, 0}.Distance(Point{3, 4}), 1e-12)
}

func TestPolygonContainsPoint(t *testing.T) {
	// Clockwise ring
	sq := square(4, 4, 6, 6)
	assert.True(t, sq.ContainsPoint(Point{5, 5}))
	assert.True(t, sq.ContainsPoint(Point{4.01, 5}))
	assert.False(t, sq.ContainsPoint(Point{4, 5}), "points on an edge are outside")
	assert.False(t, sq.ContainsPoint(Point{4.0005, 5}), "points within tolerance of an edge are outside")
	assert.False(t, sq.ContainsPoint(Point{4, 4}))
	assert.False(t, sq.ContainsPoint(Point{7, 5}))

	// Counter-clockwise ring
	tri := Polygon{Vertices: []Point{{0, 0}, {4, 0}, {0, 4}}}
	assert.True(t, tri.ContainsPoint(Point{1, 1}))
	assert.False(t, tri.ContainsPoint(Point{3, 3}))
	assert.False(t, tri.ContainsPoint(Point{2, 2}), "on the hypotenuse")
}

func TestPolygonIntersectsSegment(t *testing.T) {
	sq := square(4, 4, 6, 6)

	assert.True(t, sq.IntersectsSegment(LineSegment{P1: Point{3, 5}, P2: Point{7, 5}}), "crosses two edges")
	assert.True(t, sq.IntersectsSegment(LineSegment{P1: Point{3, 5}, P2: Point{5, 3}}), "grazes a vertex")
	assert.False(t, sq.IntersectsSegment(LineSegment{P1: Point{4, 4}, P2: Point{4, 6}}), "runs along an edge")
	assert.False(t, sq.IntersectsSegment(LineSegment{P1: Point{0, 0}, P2: Point{0, 9}}))
}

func TestIsSegmentClear(t *testing.T) {
	boundary := square(0, 0, 10, 10)
	obstacles := []Polygon{square(4, 4, 6, 6)}

	assert.False(t, IsSegmentClear(LineSegment{P1: Point{4, 4}, P2: Point{6, 6}}, boundary, obstacles),
		"corner to corner through the interior")
	assert.True(t, IsSegmentClear(LineSegment{P1: Point{4, 6}, P2: Point{6, 6}}, boundary, obstacles),
		"along an obstacle edge")
	assert.False(t, IsSegmentClear(LineSegment{P1: Point{1, 1}, P2: Point{11, 1}}, boundary, obstacles),
		"leaves the boundary")
	assert.True(t, IsSegmentClear(LineSegment{P1: Point{1, 1}, P2: Point{1, 9}}, boundary, obstacles))
}

func TestNewPolygon(t *testing.T) {
	_, err := NewPolygon([]Point{{0, 0}, {1, 1}})
	assert.True(t, errors.Is(err, ErrDegenerateGeometry))

	_, err = NewPolygon([]Point{{0, 0}, {1, 0}, {1.0005, 0}, {0, 1}})
	assert.True(t, errors.Is(err, ErrDegenerateGeometry), "coincident vertices")

	_, err = NewPolygon([]Point{{0, 0}, {1, 1}, {2, 2}})
	assert.True(t, errors.Is(err, ErrDegenerateGeometry), "zero area")

	poly, err := NewPolygon([]Point{{0, 0}, {2, 0}, {0, 2}})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, poly.Area(), 1e-12)
	assert.Len(t, poly.Edges(), 3)
	assert.Nil(t, poly.RegionEdges())
}

func TestRegionEdges(t *testing.T) {
	region := squareRegion(Point{0.5, 0.5}, 1)

	edges := region.RegionEdges()
	assert.Len(t, edges, 6, "every vertex pair including the diagonals")
	assert.Contains(t, edges, LineSegment{P1: Point{0, 0}, P2: Point{1, 1}})
	assert.Contains(t, edges, LineSegment{P1: Point{0, 1}, P2: Point{1, 0}})
}

func TestSquareRegion(t *testing.T) {
	region := squareRegion(Point{1, 1}, 0.5)

	assert.True(t, region.Region)
	requireSamePointSet(t, []Point{{0.75, 0.75}, {0.75, 1.25}, {1.25, 1.25}, {1.25, 0.75}}, region.Vertices)
	assert.Equal(t, Point{1, 1}, region.Center())
}

func TestInsideBoundary(t *testing.T) {
	boundary := square(0, 0, 10, 10)

	assert.True(t, insideBoundary(boundary, Point{5, 5}))
	assert.False(t, insideBoundary(boundary, Point{11, 5}))
	assert.False(t, insideBoundary(boundary, Point{-0.5, 5}))
}

func TestNewPolygonRejectsBadCoordinates(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e13} {
		_, err := NewPolygon([]Point{{0, 0}, {v, 0}, {0, 1}})
		assert.True(t, errors.Is(err, ErrMalformedInput), "x = %v: got %v", v, err)
		assert.ErrorContains(t, err, "vertex 1")
	}

	_, err := NewPolygon([]Point{{-MaxCoordinate, -MaxCoordinate}, {MaxCoordinate, -MaxCoordinate}, {0, MaxCoordinate}})
	assert.NoError(t, err, "the limit itself is accepted")
}
