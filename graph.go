package main

import "math"

// Graph represents the adjacency structure searched for the shortest path.
// Nodes live in an arena and are addressed by index.
type Graph struct {
	Nodes []Point
	Edges [][]Edge
	index *pointIndex
}

// Edge represents a connection between two nodes with a cost
type Edge struct {
	To   int     // Index of the destination node
	Cost float64 // Euclidean distance
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{index: newPointIndex()}
}

// GraphFromVisibility builds an undirected adjacency structure from a visibility graph.
// Every vertex becomes a node even when no edge survived pruning.
func GraphFromVisibility(vg *VisibilityGraph) *Graph {
	graph := NewGraph()
	for _, v := range vg.Vertices {
		graph.AddNode(v)
	}
	for _, e := range vg.Edges {
		graph.AddEdge(e.P1, e.P2)
	}
	return graph
}

// AddNode returns the node for p, creating it if no node lies within Epsilon
func (g *Graph) AddNode(p Point) int {
	id, inserted := g.index.insert(p)
	if inserted {
		g.Nodes = append(g.Nodes, p)
		g.Edges = append(g.Edges, nil)
	}
	return id
}

// AddEdge adds a bidirectional edge weighted by Euclidean distance
func (g *Graph) AddEdge(a, b Point) {
	i := g.AddNode(a)
	j := g.AddNode(b)
	if i == j {
		return
	}
	cost := g.Nodes[i].Distance(g.Nodes[j])
	g.Edges[i] = append(g.Edges[i], Edge{To: j, Cost: cost})
	g.Edges[j] = append(g.Edges[j], Edge{To: i, Cost: cost})
}

// NodeID finds the node matching p within Epsilon
func (g *Graph) NodeID(p Point) (int, bool) {
	return g.index.find(p)
}

// NumEdges counts undirected edges
func (g *Graph) NumEdges() int {
	total := 0
	for _, edges := range g.Edges {
		total += len(edges)
	}
	return total / 2
}

// pointKey is a coordinate quantized to Epsilon-sized buckets
type pointKey struct {
	X, Y int64
}

func keyOf(p Point) pointKey {
	return pointKey{
		X: int64(math.Floor(p.X / Epsilon)),
		Y: int64(math.Floor(p.Y / Epsilon)),
	}
}

// pointIndex maps points to dense indices using Epsilon equality.
// Points equal within Epsilon always fall in the same or a neighboring bucket.
type pointIndex struct {
	buckets map[pointKey][]int
	points  []Point
}

func newPointIndex() *pointIndex {
	return &pointIndex{buckets: make(map[pointKey][]int)}
}

func (idx *pointIndex) find(p Point) (int, bool) {
	k := keyOf(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, id := range idx.buckets[pointKey{X: k.X + dx, Y: k.Y + dy}] {
				if idx.points[id].Equal(p) {
					return id, true
				}
			}
		}
	}
	return -1, false
}

func (idx *pointIndex) insert(p Point) (int, bool) {
	if id, ok := idx.find(p); ok {
		return id, false
	}
	id := len(idx.points)
	idx.points = append(idx.points, p)
	k := keyOf(p)
	idx.buckets[k] = append(idx.buckets[k], id)
	return id, true
}

// dedupe keeps the first of every group of points equal within Epsilon, preserving order
func (idx *pointIndex) dedupe(points []Point) []Point {
	unique := make([]Point, 0, len(points))
	for _, p := range points {
		if _, inserted := idx.insert(p); inserted {
			unique = append(unique, p)
		}
	}
	return unique
}
