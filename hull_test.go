package main

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireConvexCCW(t *testing.T, poly Polygon) {
	t.Helper()
	n := len(poly.Vertices)
	for i := 0; i < n; i++ {
		a, b, c := poly.Vertices[i], poly.Vertices[(i+1)%n], poly.Vertices[(i+2)%n]
		require.Greaterf(t, direction(a, b, c), 0.0, "vertices %d..%d do not turn left", i, (i+2)%n)
	}
}

func TestGrowSquare(t *testing.T) {
	obstacle := square(4, 4, 6, 6)
	footprint := squareRegion(Point{}, 0.35)

	grown, err := Grow(obstacle, footprint)
	require.NoError(t, err)

	requireSamePointSet(t, []Point{
		{3.825, 3.825},
		{3.825, 6.175},
		{6.175, 6.175},
		{6.175, 3.825},
	}, grown.Vertices)
	assert.True(t, grown.Vertices[0].Equal(Point{6.175, 3.825}), "ring starts at the lowest, rightmost vertex")
	requireConvexCCW(t, grown)

	for _, v := range obstacle.Vertices {
		assert.True(t, grown.ContainsPoint(v), "obstacle vertex (%v, %v) must be inside", v.X, v.Y)
	}
}

func TestGrowTriangle(t *testing.T) {
	obstacle := Polygon{Vertices: []Point{{0, 0}, {4, 0}, {0, 4}}}
	footprint := squareRegion(Point{}, 2)

	grown, err := Grow(obstacle, footprint)
	require.NoError(t, err)

	requireSamePointSet(t, []Point{{-1, -1}, {5, -1}, {5, 1}, {1, 5}, {-1, 5}}, grown.Vertices)
	requireConvexCCW(t, grown)
}

func TestGrowZeroFootprint(t *testing.T) {
	obstacle := square(4, 4, 6, 6)

	grown, err := Grow(obstacle, squareRegion(Point{}, 0))
	require.NoError(t, err)
	requireSamePointSet(t, obstacle.Vertices, grown.Vertices)

	twice, err := Grow(grown, squareRegion(Point{}, 0))
	require.NoError(t, err)
	requireSamePointSet(t, obstacle.Vertices, twice.Vertices)
}

func TestGrowIgnoresFootprintPosition(t *testing.T) {
	obstacle := Polygon{Vertices: []Point{{0, 0}, {3, 1}, {2, 4}}}

	atOrigin, err := Grow(obstacle, squareRegion(Point{}, 0.5))
	require.NoError(t, err)
	elsewhere, err := Grow(obstacle, squareRegion(Point{X: 7, Y: -3}, 0.5))
	require.NoError(t, err)

	requireSamePointSet(t, atOrigin.Vertices, elsewhere.Vertices)
}

func TestGrowDegenerate(t *testing.T) {
	collinear := Polygon{Vertices: []Point{{0, 0}, {1, 1}, {2, 2}}}

	_, err := Grow(collinear, squareRegion(Point{}, 0))
	assert.True(t, errors.Is(err, ErrDegenerateGeometry))

	_, err = Grow(Polygon{}, squareRegion(Point{}, 1))
	assert.True(t, errors.Is(err, ErrDegenerateGeometry))
}

func TestConvexHull(t *testing.T) {
	// Corners plus collinear edge points, an interior point and a near-duplicate corner
	points := []Point{
		{0, 0}, {2, 0}, {1, 0},
		{2, 2}, {0, 2}, {1, 2},
		{1, 1},
		{0.0004, 0},
	}

	hull := convexHull(points)
	requireSamePointSet(t, []Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}, hull)
	assert.Equal(t, Point{2, 0}, hull[0])
	requireConvexCCW(t, Polygon{Vertices: hull})
}

func TestOffsetRadius(t *testing.T) {
	assert.InDelta(t, 0.175, offsetRadius(squareRegion(Point{}, 0.35)), 1e-12)

	rect := Polygon{Vertices: []Point{{0, 0}, {0, 1}, {3, 1}, {3, 0}}}
	assert.InDelta(t, 1.5, offsetRadius(rect), 1e-12, "the larger half-extent wins")
}
