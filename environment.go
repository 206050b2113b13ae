package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ObstacleSet selects which grown obstacles the visibility graph is built against
type ObstacleSet int

const (
	// TightObstacles are grown once by the robot footprint
	TightObstacles ObstacleSet = iota
	// SafeObstacles are the tight set grown again by half the footprint
	SafeObstacles
)

func (s ObstacleSet) String() string {
	switch s {
	case TightObstacles:
		return "tight"
	case SafeObstacles:
		return "safe"
	default:
		return fmt.Sprintf("ObstacleSet(%d)", int(s))
	}
}

// Environment holds the workspace and every artifact derived from it. Derived artifacts are nil
// until computed; recomputing a stage clears the stages that depend on it.
type Environment struct {
	Boundary    Polygon
	Obstacles   []Polygon
	Start       Point
	Goal        Point
	StartRegion Polygon // Keep-out square around the start, side = robot diameter
	GoalRegion  Polygon // Keep-out square around the goal, side = robot diameter

	cfg    Config
	logger *zap.SugaredLogger

	grown     []Polygon
	safeGrown []Polygon
	graph     *VisibilityGraph
	path      Path
}

// Option configures an Environment
type Option func(*Environment)

// WithConfig overrides the default configuration
func WithConfig(cfg Config) Option {
	return func(e *Environment) {
		e.cfg = cfg
	}
}

// WithLogger sets the logger used for planning progress
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Environment) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEnvironment validates the workspace. Every invalid polygon is reported in the returned error.
func NewEnvironment(boundary Polygon, obstacles []Polygon, start, goal Point, opts ...Option) (*Environment, error) {
	env := &Environment{
		Start:  start,
		Goal:   goal,
		cfg:    DefaultConfig(),
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(env)
	}

	if err := env.cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	var err error
	b, bErr := NewPolygon(boundary.Vertices)
	if bErr != nil {
		err = multierr.Append(err, errors.Wrap(bErr, "boundary"))
	}
	env.Boundary = b

	env.Obstacles = make([]Polygon, 0, len(obstacles))
	for i, obstacle := range obstacles {
		o, oErr := NewPolygon(obstacle.Vertices)
		if oErr != nil {
			err = multierr.Append(err, errors.Wrapf(oErr, "obstacle %d", i))
			continue
		}
		env.Obstacles = append(env.Obstacles, o)
	}
	if err != nil {
		return nil, err
	}

	if sErr := start.validate(); sErr != nil {
		err = multierr.Append(err, errors.Wrap(sErr, "start"))
	}
	if gErr := goal.validate(); gErr != nil {
		err = multierr.Append(err, errors.Wrap(gErr, "goal"))
	}
	if err != nil {
		return nil, err
	}

	if !insideBoundary(env.Boundary, start) {
		err = multierr.Append(err, errors.Wrapf(ErrOutsideBoundary, "start (%.4f, %.4f)", start.X, start.Y))
	}
	if !insideBoundary(env.Boundary, goal) {
		err = multierr.Append(err, errors.Wrapf(ErrOutsideBoundary, "goal (%.4f, %.4f)", goal.X, goal.Y))
	}
	if err != nil {
		return nil, err
	}

	env.StartRegion = squareRegion(start, env.cfg.RobotDiameter)
	env.GoalRegion = squareRegion(goal, env.cfg.RobotDiameter)

	return env, nil
}

// Config returns the configuration in use
func (e *Environment) Config() Config {
	return e.cfg
}

// Grow computes the tight grown obstacles and, when safe is set, the safe-margin set.
// The visibility graph and path are cleared.
func (e *Environment) Grow(safe bool) error {
	e.ClearGrowth()

	footprint := squareRegion(Point{}, e.cfg.RobotDiameter)
	safeFootprint := squareRegion(Point{}, e.cfg.RobotDiameter/2)

	grown := make([]Polygon, len(e.Obstacles))
	var safeGrown []Polygon
	if safe {
		safeGrown = make([]Polygon, len(e.Obstacles))
	}

	var err error
	for i, obstacle := range e.Obstacles {
		g, gErr := Grow(obstacle, footprint)
		if gErr != nil {
			err = multierr.Append(err, errors.Wrapf(gErr, "obstacle %d", i))
			continue
		}
		grown[i] = g

		if safe {
			s, sErr := Grow(g, safeFootprint)
			if sErr != nil {
				err = multierr.Append(err, errors.Wrapf(sErr, "obstacle %d (safe)", i))
				continue
			}
			safeGrown[i] = s
		}
	}
	if err != nil {
		return err
	}

	e.grown = grown
	e.safeGrown = safeGrown
	e.logger.Debugf("   Grown %d obstacles (safe: %t)", len(grown), safe)
	return nil
}

// GrownObstacles returns the tight grown set, or nil before Grow
func (e *Environment) GrownObstacles() []Polygon {
	return e.grown
}

// SafeGrownObstacles returns the safe-margin set, or nil unless Grow(true) ran
func (e *Environment) SafeGrownObstacles() []Polygon {
	return e.safeGrown
}

// BuildVisibilityGraph builds the visibility graph against the selected grown obstacles.
// The path is cleared.
func (e *Environment) BuildVisibilityGraph(ctx context.Context, set ObstacleSet) error {
	e.ClearGraph()

	var obstacles []Polygon
	switch set {
	case TightObstacles:
		obstacles = e.grown
	case SafeObstacles:
		obstacles = e.safeGrown
	default:
		return errors.Errorf("unknown obstacle set %v", set)
	}
	if obstacles == nil {
		return errors.Wrapf(ErrNotGrown, "%s obstacles", set)
	}

	if !e.cfg.KeepContained {
		obstacles = dropContainedObstacles(obstacles, e.logger)
	}

	graph, err := BuildVisibilityGraph(ctx, e.Start, e.Goal, e.Boundary, obstacles, e.cfg, e.logger)
	if err != nil {
		return err
	}
	e.graph = graph
	return nil
}

// VisibilityGraph returns the built graph, or nil
func (e *Environment) VisibilityGraph() *VisibilityGraph {
	return e.graph
}

// ComputeShortestPath searches the visibility graph from start to goal
func (e *Environment) ComputeShortestPath(ctx context.Context) (Path, error) {
	e.ClearPath()

	if e.graph == nil {
		return nil, ErrGraphNotBuilt
	}

	graph := GraphFromVisibility(e.graph)
	e.logger.Debugf("   Search graph: %d nodes, %d edges", len(graph.Nodes), graph.NumEdges())
	path, err := ShortestPath(ctx, graph, e.Start, e.Goal, e.cfg.Heuristic, e.cfg.MaxSearchIterations)
	if err != nil {
		return nil, err
	}
	e.path = path
	return path, nil
}

// Path returns the computed path, or nil
func (e *Environment) Path() Path {
	return e.path
}

// Commands translates the computed path into drive commands
func (e *Environment) Commands() ([]Command, error) {
	if e.path == nil {
		return nil, ErrPathNotComputed
	}
	return TranslateToCommands(e.path), nil
}

// ClearGrowth drops both grown sets and everything derived from them
func (e *Environment) ClearGrowth() {
	e.grown = nil
	e.safeGrown = nil
	e.ClearGraph()
}

// ClearGraph drops the visibility graph and the path
func (e *Environment) ClearGraph() {
	e.graph = nil
	e.ClearPath()
}

// ClearPath drops the path
func (e *Environment) ClearPath() {
	e.path = nil
}

// Plan runs every stage: grow, build the graph against the tight (or safe) set, search, and
// translate
func (e *Environment) Plan(ctx context.Context, safe bool) (Path, []Command, error) {
	e.logger.Info("🧱 Growing obstacles...")
	if err := e.Grow(safe); err != nil {
		e.logger.Errorf("❌ Growth failed: %v", err)
		return nil, nil, err
	}

	set := TightObstacles
	if safe {
		set = SafeObstacles
	}

	e.logger.Infof("🕸️  Building visibility graph (%s obstacles)...", set)
	if err := e.BuildVisibilityGraph(ctx, set); err != nil {
		e.logger.Errorf("❌ Visibility graph failed: %v", err)
		return nil, nil, err
	}
	e.logger.Infof("   Vertices: %d, edges: %d", len(e.graph.Vertices), len(e.graph.Edges))

	e.logger.Infof("🔍 Running %s...", e.cfg.Heuristic)
	path, err := e.ComputeShortestPath(ctx)
	if err != nil {
		e.logger.Errorf("❌ No path found: %v", err)
		return nil, nil, err
	}
	e.logger.Infof("✅ Path found with %d waypoints, length %.3f", len(path), path.Length())

	commands, err := e.Commands()
	if err != nil {
		return nil, nil, err
	}
	return path, commands, nil
}
