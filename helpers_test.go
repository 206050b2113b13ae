package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func square(minX, minY, maxX, maxY float64) Polygon {
	return Polygon{Vertices: []Point{
		{X: minX, Y: minY},
		{X: minX, Y: maxY},
		{X: maxX, Y: maxY},
		{X: maxX, Y: minY},
	}}
}

// scenarioWorld is a 10x10 room with one 2x2 obstacle in the middle
func scenarioWorld() World {
	return World{
		Boundary:  square(0, 0, 10, 10),
		Obstacles: []Polygon{square(4, 4, 6, 6)},
		Start:     Point{X: 1, Y: 1},
		Goal:      Point{X: 9, Y: 9},
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Workers = 2
	return cfg
}

func newTestEnvironment(t *testing.T, world World, cfg Config) *Environment {
	t.Helper()
	env, err := world.Environment(WithConfig(cfg), WithLogger(zaptest.NewLogger(t).Sugar()))
	require.NoError(t, err)
	return env
}

func requireSamePointSet(t *testing.T, expected, actual []Point) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for _, e := range expected {
		found := false
		for _, a := range actual {
			if a.Equal(e) {
				found = true
				break
			}
		}
		require.Truef(t, found, "missing point (%v, %v) in %v", e.X, e.Y, actual)
	}
}
