package main

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// normalizePolygon cleans a loaded vertex ring: consecutive duplicates are merged and vertices
// lying within Epsilon of the line through their neighbors are dropped (Douglas-Peucker).
// Fewer than 3 remaining vertices is ErrDegenerateGeometry.
func normalizePolygon(vertices []Point) ([]Point, error) {
	// Merge consecutive duplicates, including an explicit closing vertex
	deduped := make([]Point, 0, len(vertices))
	for _, v := range vertices {
		if len(deduped) > 0 && deduped[len(deduped)-1].Equal(v) {
			continue
		}
		deduped = append(deduped, v)
	}
	for len(deduped) > 1 && deduped[0].Equal(deduped[len(deduped)-1]) {
		deduped = deduped[:len(deduped)-1]
	}
	if len(deduped) < 3 {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "polygon has %d distinct vertices", len(deduped))
	}

	// Simplify the closed ring as a line string so both ends stay pinned to the start vertex
	ls := orb.LineString(lo.Map(deduped, func(p Point, _ int) orb.Point { return p.orb() }))
	ls = append(ls, ls[0])

	simplified, ok := simplify.DouglasPeucker(Epsilon).Simplify(ls.Clone()).(orb.LineString)
	if !ok || len(simplified) < 4 {
		return nil, errors.Wrap(ErrDegenerateGeometry, "polygon collapses to a line")
	}

	result := lo.Map([]orb.Point(simplified[:len(simplified)-1]), func(p orb.Point, _ int) Point { return pointFromOrb(p) })

	// The ring's start vertex is always kept by the simplifier; drop it too when it is collinear
	if len(result) > 3 {
		prev, next := result[len(result)-1], result[1]
		if perpendicularDistance(result[0], prev, next) <= Epsilon {
			result = result[1:]
		}
	}

	if len(result) < 3 {
		return nil, errors.Wrap(ErrDegenerateGeometry, "polygon collapses to a line")
	}
	return result, nil
}

// perpendicularDistance calculates perpendicular distance from point to the line through
// lineStart and lineEnd
func perpendicularDistance(point, lineStart, lineEnd Point) float64 {
	length := lineStart.Distance(lineEnd)
	if length == 0 {
		return point.Distance(lineStart)
	}
	return math.Abs(direction(lineStart, lineEnd, point)) / length
}
