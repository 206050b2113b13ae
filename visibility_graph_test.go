package main

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func grownScenario(t *testing.T) (World, []Polygon) {
	t.Helper()
	world := scenarioWorld()
	grown, err := Grow(world.Obstacles[0], squareRegion(Point{}, DefaultRobotDiameter))
	require.NoError(t, err)
	return world, []Polygon{grown}
}

func TestBuildVisibilityGraph(t *testing.T) {
	world, obstacles := grownScenario(t)
	logger := zaptest.NewLogger(t).Sugar()

	vg, err := BuildVisibilityGraph(context.Background(), world.Start, world.Goal, world.Boundary, obstacles, testConfig(), logger)
	require.NoError(t, err)

	require.Len(t, vg.Vertices, 6)
	assert.Equal(t, world.Start, vg.Vertices[0])
	assert.Equal(t, world.Goal, vg.Vertices[1])

	hasEdge := func(a, b Point) bool {
		for _, e := range vg.Edges {
			if e.SameEndpoints(LineSegment{P1: a, P2: b}) {
				return true
			}
		}
		return false
	}

	assert.False(t, hasEdge(world.Start, world.Goal), "the direct segment passes through the grown obstacle")
	assert.False(t, hasEdge(Point{3.825, 3.825}, Point{6.175, 6.175}), "diagonals run through the interior")
	assert.False(t, hasEdge(Point{3.825, 6.175}, Point{6.175, 3.825}), "diagonals run through the interior")
	assert.True(t, hasEdge(Point{3.825, 3.825}, Point{3.825, 6.175}), "obstacle edges are traversable")
	assert.True(t, hasEdge(world.Start, Point{3.825, 6.175}))
	assert.True(t, hasEdge(Point{3.825, 6.175}, world.Goal))

	for _, e := range vg.Edges {
		assert.False(t, e.P1.Equal(e.P2), "no self loops")
		for _, o := range obstacles {
			assert.False(t, o.ContainsPoint(e.Midpoint()), "edge (%v)-(%v) midpoint inside an obstacle", e.P1, e.P2)
			assert.False(t, o.IntersectsSegment(e), "edge (%v)-(%v) crosses an obstacle", e.P1, e.P2)
		}
		assert.False(t, world.Boundary.IntersectsSegment(e))
	}
}

func TestBuildVisibilityGraphNoObstacles(t *testing.T) {
	world := scenarioWorld()

	vg, err := BuildVisibilityGraph(context.Background(), world.Start, world.Goal, world.Boundary, nil, testConfig(), nil)
	require.NoError(t, err)

	require.Len(t, vg.Edges, 1)
	assert.Equal(t, LineSegment{P1: world.Start, P2: world.Goal}, vg.Edges[0])
}

func TestBuildVisibilityGraphWorkerCountDoesNotMatter(t *testing.T) {
	world, obstacles := grownScenario(t)
	obstacles = append(obstacles, square(1, 6, 2, 8), square(7, 1, 8, 3))

	serial := testConfig()
	serial.Workers = 1
	parallel := testConfig()
	parallel.Workers = 8

	a, err := BuildVisibilityGraph(context.Background(), world.Start, world.Goal, world.Boundary, obstacles, serial, nil)
	require.NoError(t, err)
	b, err := BuildVisibilityGraph(context.Background(), world.Start, world.Goal, world.Boundary, obstacles, parallel, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Vertices, b.Vertices)
	assert.Equal(t, a.Edges, b.Edges)
}

func TestBuildVisibilityGraphBudget(t *testing.T) {
	world, obstacles := grownScenario(t)
	cfg := testConfig()
	cfg.MaxCandidatePairs = 14 // 6 vertices give 15 pairs

	_, err := BuildVisibilityGraph(context.Background(), world.Start, world.Goal, world.Boundary, obstacles, cfg, nil)
	assert.True(t, errors.Is(err, ErrBudgetExceeded))
}

func TestBuildVisibilityGraphCancelled(t *testing.T) {
	world, obstacles := grownScenario(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildVisibilityGraph(ctx, world.Start, world.Goal, world.Boundary, obstacles, testConfig(), nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBuildVisibilityGraphCoincidentStart(t *testing.T) {
	world, obstacles := grownScenario(t)
	start := Point{3.8251, 3.8249} // within tolerance of a grown corner

	vg, err := BuildVisibilityGraph(context.Background(), start, world.Goal, world.Boundary, obstacles, testConfig(), nil)
	require.NoError(t, err)

	assert.Len(t, vg.Vertices, 5)
	assert.Equal(t, start, vg.Vertices[0], "start keeps its own coordinates")
}
