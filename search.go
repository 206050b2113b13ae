package main

import (
	"container/heap"
	"context"

	"github.com/pkg/errors"
)

// Path is an ordered sequence of waypoints from start to goal
type Path []Point

// Length returns the total Euclidean length of the path
func (p Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		total += p[i-1].Distance(p[i])
	}
	return total
}

// frontierNode is a graph node discovered by the search. cost is the best known distance from
// the start; priority adds the goal estimate, which is zero for Dijkstra.
type frontierNode struct {
	id       int
	cost     float64
	estimate float64
	priority float64
	prev     *frontierNode
	slot     int // position in the frontier heap, -1 once extracted
}

// frontier is a min-heap of discovered nodes keyed by priority
type frontier []*frontierNode

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool { return f[i].priority < f[j].priority }

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].slot = i
	f[j].slot = j
}

func (f *frontier) Push(x interface{}) {
	n := x.(*frontierNode)
	n.slot = len(*f)
	*f = append(*f, n)
}

func (f *frontier) Pop() interface{} {
	old := *f
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.slot = -1
	*f = old[:last]
	return n
}

// ShortestPath finds the cheapest path from start to goal. Start and goal are matched to graph
// nodes by Epsilon equality; a point with no matching node is ErrVertexMismatch. An exhausted
// frontier is ErrNoPath. When start equals goal the path is that single point.
func ShortestPath(ctx context.Context, graph *Graph, start, goal Point, heuristic Heuristic, maxIterations int) (Path, error) {
	if graph == nil || len(graph.Nodes) == 0 {
		return nil, errors.Wrap(ErrVertexMismatch, "graph is empty")
	}

	startIdx, ok := graph.NodeID(start)
	if !ok {
		return nil, errors.Wrapf(ErrVertexMismatch, "start (%.4f, %.4f)", start.X, start.Y)
	}
	endIdx, ok := graph.NodeID(goal)
	if !ok {
		return nil, errors.Wrapf(ErrVertexMismatch, "goal (%.4f, %.4f)", goal.X, goal.Y)
	}

	estimate := func(int) float64 { return 0 }
	if heuristic == HeuristicAStar {
		endPoint := graph.Nodes[endIdx]
		estimate = func(id int) float64 { return graph.Nodes[id].Distance(endPoint) }
	}

	return searchGraph(ctx, graph, startIdx, endIdx, estimate, maxIterations)
}

// searchGraph is Dijkstra when estimate is zero and A* when it is an admissible heuristic.
// Improved costs are fixed in place in the heap instead of pushing duplicates.
func searchGraph(ctx context.Context, graph *Graph, startIdx, endIdx int, estimate func(int) float64, maxIterations int) (Path, error) {
	open := &frontier{}
	heap.Init(open)

	first := &frontierNode{id: startIdx, estimate: estimate(startIdx)}
	first.priority = first.estimate
	heap.Push(open, first)

	discovered := map[int]*frontierNode{startIdx: first}
	finalized := make(map[int]bool)

	expanded := 0
	for open.Len() > 0 {
		if expanded%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(err, "search stopped")
			}
		}
		if expanded >= maxIterations {
			return nil, errors.Wrapf(ErrBudgetExceeded, "search explored %d nodes", expanded)
		}

		current := heap.Pop(open).(*frontierNode)
		expanded++

		if current.id == endIdx {
			return tracePath(graph, current), nil
		}
		finalized[current.id] = true

		for _, edge := range graph.Edges[current.id] {
			if finalized[edge.To] {
				continue
			}
			cost := current.cost + edge.Cost

			next, seen := discovered[edge.To]
			switch {
			case !seen:
				next = &frontierNode{id: edge.To, cost: cost, estimate: estimate(edge.To), prev: current}
				next.priority = next.cost + next.estimate
				heap.Push(open, next)
				discovered[edge.To] = next
			case cost < next.cost:
				next.cost = cost
				next.priority = cost + next.estimate
				next.prev = current
				heap.Fix(open, next.slot)
			}
		}
	}

	return nil, ErrNoPath
}

// tracePath follows predecessor links back to the start and returns the points in travel order
func tracePath(graph *Graph, end *frontierNode) Path {
	var path Path
	for n := end; n != nil; n = n.prev {
		path = append(path, graph.Nodes[n.id])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
