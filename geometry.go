package main

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// Epsilon is the coordinate tolerance used for point identity and on-segment tests
const Epsilon = 1e-3

// MaxCoordinate bounds accepted coordinates so quantized point keys stay well inside int64
const MaxCoordinate = 1e9

// Point is an immutable position in the workspace
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return other.vec().Sub(p.vec()).Norm()
}

// Equal compares coordinates within Epsilon
func (p Point) Equal(other Point) bool {
	return math.Abs(p.X-other.X) <= Epsilon && math.Abs(p.Y-other.Y) <= Epsilon
}

func (p Point) vec() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

func (p Point) orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

func pointFromOrb(p orb.Point) Point {
	return Point{X: p[0], Y: p[1]}
}

// validate rejects NaN, infinite and out-of-range coordinates
func (p Point) validate() error {
	for _, v := range []float64{p.X, p.Y} {
		if math.IsNaN(v) || math.Abs(v) > MaxCoordinate {
			return errors.Wrapf(ErrMalformedInput, "coordinate (%v, %v) is not finite or exceeds %g", p.X, p.Y, MaxCoordinate)
		}
	}
	return nil
}

// LineSegment represents a line segment between two points
type LineSegment struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
}

// Intersects reports whether the two segments properly cross.
// Shared endpoints and collinear overlaps are not crossings.
func (s LineSegment) Intersects(other LineSegment) bool {
	d1 := direction(s.P1, s.P2, other.P1)
	d2 := direction(s.P1, s.P2, other.P2)
	d3 := direction(other.P1, other.P2, s.P1)
	d4 := direction(other.P1, other.P2, s.P2)

	return d1*d2 < 0 && d3*d4 < 0
}

// ContainsPoint reports whether c lies on the segment without being one of its endpoints
func (s LineSegment) ContainsPoint(c Point) bool {
	if c.Equal(s.P1) || c.Equal(s.P2) {
		return false
	}

	d := s.P2.vec().Sub(s.P1.vec())
	v := c.vec().Sub(s.P1.vec())
	if math.Abs(d.Cross(v)) > Epsilon {
		return false
	}

	dot := d.Dot(v)
	return dot >= 0 && dot <= d.Dot(d)
}

// Midpoint returns the point halfway between the endpoints
func (s LineSegment) Midpoint() Point {
	return Point{X: (s.P1.X + s.P2.X) / 2, Y: (s.P1.Y + s.P2.Y) / 2}
}

// Length returns the Euclidean length of the segment
func (s LineSegment) Length() float64 {
	return s.P1.Distance(s.P2)
}

// SameEndpoints reports whether both segments join the same two points, in either order
func (s LineSegment) SameEndpoints(other LineSegment) bool {
	return (s.P1.Equal(other.P1) && s.P2.Equal(other.P2)) ||
		(s.P1.Equal(other.P2) && s.P2.Equal(other.P1))
}

// bound returns the segment's bounding box
func (s LineSegment) bound() orb.Bound {
	return orb.Bound{Min: s.P1.orb(), Max: s.P1.orb()}.Extend(s.P2.orb())
}

// direction calculates the cross product (p2-p1) x (p3-p1); positive when p3 is left of p1->p2
func direction(p1, p2, p3 Point) float64 {
	return p2.vec().Sub(p1.vec()).Cross(p3.vec().Sub(p1.vec()))
}

// Polygon is a closed ring of vertices; edge i joins vertex i to vertex i+1 and the last vertex
// joins the first. A region polygon also exposes the edges between every pair of its vertices.
type Polygon struct {
	Vertices []Point `json:"vertices"`
	Region   bool    `json:"region,omitempty"`
}

// NewPolygon validates the vertex ring. Out-of-range coordinates, coincident vertices and zero-area
// rings are rejected.
func NewPolygon(vertices []Point) (Polygon, error) {
	if len(vertices) < 3 {
		return Polygon{}, errors.Wrapf(ErrDegenerateGeometry, "polygon needs at least 3 vertices, got %d", len(vertices))
	}
	for i, v := range vertices {
		if err := v.validate(); err != nil {
			return Polygon{}, errors.Wrapf(err, "vertex %d", i)
		}
	}
	for i := 0; i < len(vertices); i++ {
		for j := i + 1; j < len(vertices); j++ {
			if vertices[i].Equal(vertices[j]) {
				return Polygon{}, errors.Wrapf(ErrDegenerateGeometry,
					"vertices %d and %d coincide at (%.4f, %.4f)", i, j, vertices[i].X, vertices[i].Y)
			}
		}
	}

	poly := Polygon{Vertices: append([]Point(nil), vertices...)}
	if poly.Area() <= Epsilon*Epsilon {
		return Polygon{}, errors.Wrap(ErrDegenerateGeometry, "polygon has zero area")
	}
	return poly, nil
}

// squareRegion builds an axis-aligned square region of the given side centered on c
func squareRegion(c Point, side float64) Polygon {
	r := side / 2
	return Polygon{
		Vertices: []Point{
			{X: c.X - r, Y: c.Y - r},
			{X: c.X - r, Y: c.Y + r},
			{X: c.X + r, Y: c.Y + r},
			{X: c.X + r, Y: c.Y - r},
		},
		Region: true,
	}
}

// Edges returns the boundary ring
func (p Polygon) Edges() []LineSegment {
	n := len(p.Vertices)
	edges := make([]LineSegment, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, LineSegment{P1: p.Vertices[i], P2: p.Vertices[(i+1)%n]})
	}
	return edges
}

// RegionEdges returns the edge between every pair of vertices, or nil for non-region polygons
func (p Polygon) RegionEdges() []LineSegment {
	if !p.Region {
		return nil
	}
	n := len(p.Vertices)
	edges := make([]LineSegment, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, LineSegment{P1: p.Vertices[i], P2: p.Vertices[j]})
		}
	}
	return edges
}

// Ring converts the polygon to a closed orb ring
func (p Polygon) Ring() orb.Ring {
	ring := make(orb.Ring, 0, len(p.Vertices)+1)
	for _, v := range p.Vertices {
		ring = append(ring, v.orb())
	}
	if len(p.Vertices) > 0 {
		ring = append(ring, p.Vertices[0].orb())
	}
	return ring
}

// Bound returns the axis-aligned bounding box
func (p Polygon) Bound() orb.Bound {
	return p.Ring().Bound()
}

// Center returns the center of the bounding box
func (p Polygon) Center() Point {
	return pointFromOrb(p.Bound().Center())
}

// Area returns the unsigned area enclosed by the ring
func (p Polygon) Area() float64 {
	return math.Abs(planar.Area(p.Ring()))
}

// Reflect mirrors every vertex through c
func (p Polygon) Reflect(c Point) Polygon {
	reflected := Polygon{Vertices: make([]Point, len(p.Vertices)), Region: p.Region}
	for i, v := range p.Vertices {
		reflected.Vertices[i] = Point{X: 2*c.X - v.X, Y: 2*c.Y - v.Y}
	}
	return reflected
}

// ContainsPoint reports whether pt lies strictly inside the convex polygon, at least Epsilon away
// from every edge. For axis-aligned rectangles this is the bounding box interior shrunk by Epsilon.
func (p Polygon) ContainsPoint(pt Point) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}

	// Interior lies left of each edge for counter-clockwise rings
	sign := 1.0
	if p.Ring().Orientation() == orb.CW {
		sign = -1.0
	}

	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		length := a.Distance(b)
		if length == 0 {
			continue
		}
		if sign*direction(a, b, pt)/length <= Epsilon {
			return false
		}
	}
	return true
}

// IntersectsSegment reports whether seg properly crosses any edge of the polygon or passes
// through one of its vertices
func (p Polygon) IntersectsSegment(seg LineSegment) bool {
	for _, edge := range p.Edges() {
		if seg.Intersects(edge) {
			return true
		}
	}
	for _, v := range p.Vertices {
		if seg.ContainsPoint(v) {
			return true
		}
	}
	return false
}

// IsSegmentClear checks if a straight segment is collision-free against the boundary and obstacles
func IsSegmentClear(seg LineSegment, boundary Polygon, obstacles []Polygon) bool {
	if boundary.IntersectsSegment(seg) {
		return false
	}

	midpoint := seg.Midpoint()
	for _, obstacle := range obstacles {
		// Check if the segment intersects the obstacle boundary
		if obstacle.IntersectsSegment(seg) {
			return false
		}

		// Check if the midpoint is inside (handles segments running through the interior corner to corner)
		if obstacle.ContainsPoint(midpoint) {
			return false
		}
	}

	return true
}

// insideBoundary reports whether pt is within the boundary ring
func insideBoundary(boundary Polygon, pt Point) bool {
	return planar.RingContains(boundary.Ring(), pt.orb())
}
