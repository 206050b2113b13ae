package main

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// ObstacleEntry wraps an obstacle for R-tree storage
type ObstacleEntry struct {
	Polygon Polygon
	BBox    rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (o *ObstacleEntry) Bounds() rtreego.Rect {
	return o.BBox
}

// SpatialIndex answers which obstacles a candidate segment could touch.
// It is read-only after construction and safe for concurrent queries.
type SpatialIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewSpatialIndex creates a new spatial index
func NewSpatialIndex(obstacles []Polygon) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	size := 0
	for _, obstacle := range obstacles {
		bbox, err := boundToRect(obstacle.Bound())
		if err == nil {
			tree.Insert(&ObstacleEntry{
				Polygon: obstacle,
				BBox:    bbox,
			})
			size++
		}
	}

	return &SpatialIndex{tree: tree, size: size}
}

// Len returns the number of indexed obstacles
func (si *SpatialIndex) Len() int {
	return si.size
}

// QuerySegment returns obstacles whose bounding box meets the segment's bounding box
func (si *SpatialIndex) QuerySegment(seg LineSegment) []Polygon {
	bbox, err := boundToRect(seg.bound())
	if err != nil {
		return []Polygon{}
	}

	results := si.tree.SearchIntersect(bbox)
	obstacles := make([]Polygon, 0, len(results))

	for _, item := range results {
		entry := item.(*ObstacleEntry)
		obstacles = append(obstacles, entry.Polygon)
	}

	return obstacles
}

// boundToRect converts a bounding box to an R-tree rectangle padded by Epsilon on every side,
// which keeps degenerate boxes (vertical or horizontal segments) valid
func boundToRect(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min[0] - Epsilon, b.Min[1] - Epsilon},
		[]float64{b.Max[0] - b.Min[0] + 2*Epsilon, b.Max[1] - b.Min[1] + 2*Epsilon},
	)
}
