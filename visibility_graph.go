package main

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// VisibilityGraph is the set of collision-free segments between points of interest
type VisibilityGraph struct {
	Vertices []Point       `json:"vertices"`
	Edges    []LineSegment `json:"edges"`
}

// BuildVisibilityGraph constructs a visibility graph from start, goal and the (grown) obstacle
// vertices. Every unordered pair of distinct vertices is a candidate; a candidate survives when it
// does not cross the boundary, does not cross or touch an obstacle edge, and its midpoint is not
// inside an obstacle. Candidate rows are pruned in parallel.
func BuildVisibilityGraph(ctx context.Context, start, goal Point, boundary Polygon, obstacles []Polygon,
	cfg Config, logger *zap.SugaredLogger,
) (*VisibilityGraph, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	// Start and goal come first so they keep their own coordinates when a vertex coincides
	points := []Point{start, goal}
	totalVertices := 0
	for _, obstacle := range obstacles {
		points = append(points, obstacle.Vertices...)
		totalVertices += len(obstacle.Vertices)
	}
	logger.Debugf("   Total vertices in obstacles: %d", totalVertices)

	vertices := newPointIndex().dedupe(points)
	totalNodes := len(vertices)
	totalPairs := totalNodes * (totalNodes - 1) / 2
	logger.Debugf("   Unique nodes: %d", totalNodes)
	logger.Debugf("   Checking %d candidate edges...", totalPairs)

	if totalPairs > cfg.MaxCandidatePairs {
		return nil, errors.Wrapf(ErrBudgetExceeded, "%d candidate edges over limit of %d", totalPairs, cfg.MaxCandidatePairs)
	}

	index := NewSpatialIndex(obstacles)
	logger.Debugf("   Indexed %d obstacles", index.Len())

	// valid[i][k] holds the verdict for the pair (i, i+1+k); each row is written by one goroutine
	valid := make([][]bool, totalNodes)
	for i := range valid {
		valid[i] = make([]bool, totalNodes-i-1)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i := 0; i < totalNodes; i++ {
		i := i
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			row := valid[i]
			for j := i + 1; j < totalNodes; j++ {
				seg := LineSegment{P1: vertices[i], P2: vertices[j]}
				row[j-i-1] = IsSegmentClear(seg, boundary, index.QuerySegment(seg))
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, errors.Wrap(err, "visibility graph construction stopped")
	}

	graph := &VisibilityGraph{Vertices: vertices}
	for i, row := range valid {
		for k, ok := range row {
			if ok {
				graph.Edges = append(graph.Edges, LineSegment{P1: vertices[i], P2: vertices[i+1+k]})
			}
		}
	}

	logger.Debugf("   Edges added: %d", len(graph.Edges))

	return graph, nil
}
