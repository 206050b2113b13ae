package main

import "github.com/pkg/errors"

var (
	// ErrMalformedInput is returned by the loaders when a world or start/goal file cannot be parsed
	ErrMalformedInput = errors.New("malformed input")

	// ErrDegenerateGeometry is returned when a polygon has too few distinct vertices or zero area
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrOutsideBoundary is returned when the start or goal lies outside the boundary polygon
	ErrOutsideBoundary = errors.New("point outside boundary")

	// ErrNoPath is returned when the search exhausts the frontier without reaching the goal
	ErrNoPath = errors.New("no path between start and goal")

	// ErrVertexMismatch is returned when start or goal cannot be found among the graph vertices
	ErrVertexMismatch = errors.New("start or goal not found in visibility graph")

	// ErrBudgetExceeded is returned when graph construction or search runs past its configured budget
	ErrBudgetExceeded = errors.New("planning budget exceeded")

	ErrNotGrown        = errors.New("obstacles have not been grown")
	ErrGraphNotBuilt   = errors.New("visibility graph has not been built")
	ErrPathNotComputed = errors.New("shortest path has not been computed")
)
