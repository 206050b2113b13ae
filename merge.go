package main

import "go.uber.org/zap"

// dropContainedObstacles removes convex obstacles that lie strictly inside another obstacle.
// Vertices of such an obstacle can never carry a visibility edge, so the graph loses nothing
// except candidate pairs.
func dropContainedObstacles(obstacles []Polygon, logger *zap.SugaredLogger) []Polygon {
	if len(obstacles) <= 1 {
		return obstacles
	}

	result := make([]Polygon, 0, len(obstacles))
	contained := make([]bool, len(obstacles))

	// Check each obstacle against all others
	for i := 0; i < len(obstacles); i++ {
		if contained[i] {
			continue
		}

		for j := 0; j < len(obstacles); j++ {
			if i == j || contained[j] {
				continue
			}

			// Check if obstacle i is contained in obstacle j
			if isPolygonContainedIn(obstacles[i], obstacles[j]) {
				contained[i] = true
				break
			}

			// Check if obstacle j is contained in obstacle i
			if isPolygonContainedIn(obstacles[j], obstacles[i]) {
				contained[j] = true
			}
		}
	}

	// Collect non-contained obstacles
	for i := 0; i < len(obstacles); i++ {
		if !contained[i] {
			result = append(result, obstacles[i])
		}
	}

	if removed := len(obstacles) - len(result); removed > 0 && logger != nil {
		logger.Debugf("   Obstacles after removing contained: %d (removed %d)", len(result), removed)
	}

	return result
}

// isPolygonContainedIn checks if polygon a lies strictly inside convex polygon b
func isPolygonContainedIn(a, b Polygon) bool {
	if len(a.Vertices) == 0 || len(b.Vertices) == 0 {
		return false
	}

	// Quick bounding box check first
	outer := b.Bound()
	inner := a.Bound()
	if !outer.Contains(inner.Min) || !outer.Contains(inner.Max) {
		return false
	}

	// Check if all vertices of a are inside b
	for _, vertex := range a.Vertices {
		if !b.ContainsPoint(vertex) {
			return false
		}
	}

	return true
}
