package main

import (
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Heuristic selects the search used by ComputeShortestPath
type Heuristic string

const (
	HeuristicDijkstra Heuristic = "dijkstra"
	HeuristicAStar    Heuristic = "astar"
)

const (
	// DefaultRobotDiameter is the footprint of an iRobot Create in meters
	DefaultRobotDiameter = 0.35

	DefaultMaxCandidatePairs   = 2_000_000
	DefaultMaxSearchIterations = 1_000_000
)

// Config holds the tunables of the planning engine
type Config struct {
	RobotDiameter       float64   `json:"robotDiameter"`
	Workers             int       `json:"workers"`
	MaxCandidatePairs   int       `json:"maxCandidatePairs"`
	MaxSearchIterations int       `json:"maxSearchIterations"`
	Heuristic           Heuristic `json:"heuristic"`
	KeepContained       bool      `json:"keepContained"` // Skip dropping grown obstacles nested in others
}

// DefaultConfig returns the configuration used when no overrides are given
func DefaultConfig() Config {
	return Config{
		RobotDiameter:       DefaultRobotDiameter,
		Workers:             runtime.GOMAXPROCS(0),
		MaxCandidatePairs:   DefaultMaxCandidatePairs,
		MaxSearchIterations: DefaultMaxSearchIterations,
		Heuristic:           HeuristicDijkstra,
	}
}

// Validate reports every invalid field at once
func (c Config) Validate() error {
	var err error
	if !(c.RobotDiameter >= 0 && c.RobotDiameter <= MaxCoordinate) {
		err = multierr.Append(err, errors.Errorf("robot diameter must be between 0 and %g, got %v", MaxCoordinate, c.RobotDiameter))
	}
	if c.Workers < 1 {
		err = multierr.Append(err, errors.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.MaxCandidatePairs < 1 {
		err = multierr.Append(err, errors.Errorf("max candidate pairs must be at least 1, got %d", c.MaxCandidatePairs))
	}
	if c.MaxSearchIterations < 1 {
		err = multierr.Append(err, errors.Errorf("max search iterations must be at least 1, got %d", c.MaxSearchIterations))
	}
	switch c.Heuristic {
	case HeuristicDijkstra, HeuristicAStar:
	default:
		err = multierr.Append(err, errors.Errorf("unknown heuristic %q", c.Heuristic))
	}
	return err
}
