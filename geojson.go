package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Feature roles understood by LoadWorldGeoJSON
const (
	roleBoundary = "boundary"
	roleObstacle = "obstacle"
	roleStart    = "start"
	roleGoal     = "goal"
)

// LoadWorldGeoJSON parses a FeatureCollection into a World. Polygon features carry a "role"
// property of "boundary" or "obstacle" (the default); MultiPolygon features may only be obstacles.
// Point features carry "start" or "goal", each at most once. Only the outer ring of each polygon
// is used.
func LoadWorldGeoJSON(data []byte, logger *zap.SugaredLogger) (World, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return World{}, errors.Wrap(ErrMalformedInput, err.Error())
	}

	var world World
	var haveBoundary, haveStart, haveGoal bool

	for i, feature := range fc.Features {
		role := feature.Properties.MustString("role", roleObstacle)

		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			polygons, err := polygonsFromOrb(orb.MultiPolygon{g})
			if err != nil {
				return World{}, errors.Wrapf(err, "feature %d", i)
			}
			switch role {
			case roleBoundary:
				if haveBoundary {
					return World{}, errors.Wrapf(ErrMalformedInput, "feature %d: second boundary", i)
				}
				world.Boundary = polygons[0]
				haveBoundary = true
			case roleObstacle:
				world.Obstacles = append(world.Obstacles, polygons...)
			default:
				return World{}, errors.Wrapf(ErrMalformedInput, "feature %d: polygon with role %q", i, role)
			}

		case orb.MultiPolygon:
			if role != roleObstacle {
				return World{}, errors.Wrapf(ErrMalformedInput, "feature %d: multipolygon with role %q", i, role)
			}
			polygons, err := polygonsFromOrb(g)
			if err != nil {
				return World{}, errors.Wrapf(err, "feature %d", i)
			}
			world.Obstacles = append(world.Obstacles, polygons...)

		case orb.Point:
			switch role {
			case roleStart:
				if haveStart {
					return World{}, errors.Wrapf(ErrMalformedInput, "feature %d: second start", i)
				}
				world.Start = pointFromOrb(g)
				haveStart = true
			case roleGoal:
				if haveGoal {
					return World{}, errors.Wrapf(ErrMalformedInput, "feature %d: second goal", i)
				}
				world.Goal = pointFromOrb(g)
				haveGoal = true
			default:
				logger.Warnf("⚠️  Ignoring point feature %d with role %q", i, role)
			}

		case nil:
			logger.Warnf("⚠️  Ignoring feature %d without geometry", i)

		default:
			logger.Warnf("⚠️  Ignoring feature %d of type %s", i, g.GeoJSONType())
		}
	}

	switch {
	case !haveBoundary:
		return World{}, errors.Wrap(ErrMalformedInput, "no boundary feature")
	case !haveStart:
		return World{}, errors.Wrap(ErrMalformedInput, "no start feature")
	case !haveGoal:
		return World{}, errors.Wrap(ErrMalformedInput, "no goal feature")
	}

	logger.Debugf("   Loaded %d obstacles from GeoJSON", len(world.Obstacles))
	return world, nil
}

// polygonsFromOrb converts the outer rings of a multipolygon to validated polygons
func polygonsFromOrb(mp orb.MultiPolygon) ([]Polygon, error) {
	polygons := make([]Polygon, 0, len(mp))
	for _, poly := range mp {
		if len(poly) == 0 {
			continue
		}
		// First ring is the outer boundary
		vertices := lo.Map([]orb.Point(poly[0]), func(p orb.Point, _ int) Point { return pointFromOrb(p) })
		normalized, err := normalizePolygon(vertices)
		if err != nil {
			return nil, err
		}
		polygon, err := NewPolygon(normalized)
		if err != nil {
			return nil, err
		}
		polygons = append(polygons, polygon)
	}
	if len(polygons) == 0 {
		return nil, errors.Wrap(ErrMalformedInput, "polygon without rings")
	}
	return polygons, nil
}

// PlanFeatureCollection exports the environment and every computed artifact. Each feature has a
// "layer" property naming what it is.
func PlanFeatureCollection(env *Environment) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	addPolygon := func(p Polygon, layer string, index int) {
		f := geojson.NewFeature(orb.Polygon{p.Ring()})
		f.Properties["layer"] = layer
		if index >= 0 {
			f.Properties["index"] = index
		}
		fc.Append(f)
	}

	addPolygon(env.Boundary, "boundary", -1)
	for i, o := range env.Obstacles {
		addPolygon(o, "obstacle", i)
	}
	for i, o := range env.GrownObstacles() {
		addPolygon(o, "grown", i)
	}
	for i, o := range env.SafeGrownObstacles() {
		addPolygon(o, "safe_grown", i)
	}
	addPolygon(env.StartRegion, "start_region", -1)
	addPolygon(env.GoalRegion, "goal_region", -1)

	start := geojson.NewFeature(env.Start.orb())
	start.Properties["layer"] = roleStart
	fc.Append(start)
	goal := geojson.NewFeature(env.Goal.orb())
	goal.Properties["layer"] = roleGoal
	fc.Append(goal)

	if vg := env.VisibilityGraph(); vg != nil {
		for _, e := range vg.Edges {
			f := geojson.NewFeature(orb.LineString{e.P1.orb(), e.P2.orb()})
			f.Properties["layer"] = "visibility"
			fc.Append(f)
		}
	}

	if path := env.Path(); len(path) > 0 {
		f := geojson.NewFeature(orb.LineString(lo.Map([]Point(path), func(p Point, _ int) orb.Point { return p.orb() })))
		f.Properties["layer"] = "path"
		f.Properties["length"] = path.Length()
		fc.Append(f)
	}

	return fc
}
