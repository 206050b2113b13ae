package main

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// collinearTolerance absorbs rounding in the Graham scan turn test
const collinearTolerance = 1e-9

// polarPoint is a hull candidate with its sort keys relative to the pivot
type polarPoint struct {
	point    Point
	angle    float64
	distance float64
}

// Grow enlarges an obstacle by a robot footprint so the robot can be planned as a point.
// Each vertex is offset to the four corners of the reflected footprint's bounding square and
// the convex hull of those candidates becomes the grown obstacle.
func Grow(obstacle, footprint Polygon) (Polygon, error) {
	if len(obstacle.Vertices) == 0 || len(footprint.Vertices) == 0 {
		return Polygon{}, errors.Wrap(ErrDegenerateGeometry, "cannot grow an empty polygon")
	}

	rad := offsetRadius(footprint)

	candidates := make([]Point, 0, 4*len(obstacle.Vertices))
	for _, v := range obstacle.Vertices {
		candidates = append(candidates,
			Point{X: v.X - rad, Y: v.Y + rad},
			Point{X: v.X + rad, Y: v.Y + rad},
			Point{X: v.X + rad, Y: v.Y - rad},
			Point{X: v.X - rad, Y: v.Y - rad},
		)
	}

	grown, err := NewPolygon(convexHull(candidates))
	if err != nil {
		return Polygon{}, errors.Wrap(err, "grown obstacle")
	}
	return grown, nil
}

// offsetRadius is the half-extent of the footprint reflected through its own center
func offsetRadius(footprint Polygon) float64 {
	robot := footprint.Reflect(footprint.Center())
	bound := robot.Bound()
	return math.Max(bound.Max[0]-bound.Min[0], bound.Max[1]-bound.Min[1]) / 2
}

// convexHull computes the convex hull using Graham scan. The ring starts at the pivot (lowest Y,
// highest X on ties) and runs counter-clockwise. Collinear candidates are dropped.
func convexHull(points []Point) []Point {
	unique := newPointIndex().dedupe(points)
	if len(unique) < 3 {
		return unique
	}

	pivot := unique[0]
	for _, p := range unique[1:] {
		if p.Y < pivot.Y || (p.Y == pivot.Y && p.X > pivot.X) {
			pivot = p
		}
	}

	sorted := make([]polarPoint, len(unique))
	for i, p := range unique {
		sorted[i] = polarPoint{
			point:    p,
			angle:    polarAngle(pivot, p),
			distance: pivot.Distance(p),
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].angle != sorted[j].angle {
			return sorted[i].angle < sorted[j].angle
		}
		return sorted[i].distance < sorted[j].distance
	})

	// The last sorted point sits under the pivot so the first turn can be tested
	hull := []Point{sorted[len(sorted)-1].point, sorted[0].point}
	for i := 1; i < len(sorted); i++ {
		p := sorted[i].point
		// Remove points that do not make a strict left turn, never popping the pivot
		for len(hull) > 2 && direction(hull[len(hull)-2], hull[len(hull)-1], p) <= collinearTolerance {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// The scan ends on the sentinel point again
	return hull[1:]
}

// polarAngle calculates the polar angle from pivot to point
func polarAngle(pivot, point Point) float64 {
	if point == pivot {
		return 0
	}
	return math.Atan2(point.Y-pivot.Y, point.X-pivot.X)
}
