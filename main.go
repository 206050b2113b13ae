package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	// Global flags.
	flagDebug         = "debug"
	flagRobotDiameter = "robot-diameter"
	flagWorkers       = "workers"
	flagMaxCandidates = "max-candidates"
	flagMaxIterations = "max-iterations"
	flagHeuristic     = "heuristic"
	flagKeepContained = "keep-contained"

	// Command flags.
	flagWorld     = "world"
	flagStartGoal = "start-goal"
	flagIn        = "in"
	flagOut       = "out"
	flagSafe      = "safe"
	flagSVG       = "svg"
	flagGeoJSON   = "geojson"
	flagAddr      = "addr"

	envPrefix = "ROBOPATH_"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	var logger *zap.SugaredLogger
	defaults := DefaultConfig()

	outputFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  flagOut,
			Value: "robot_path.txt",
			Usage: "write turn/distance commands to `FILE` (- for stdout)",
		},
		&cli.BoolFlag{
			Name:    flagSafe,
			Usage:   "plan against obstacles grown with an extra half-footprint margin",
			EnvVars: []string{envPrefix + "SAFE"},
		},
		&cli.StringFlag{
			Name:  flagSVG,
			Usage: "also render the plan to `FILE` as SVG",
		},
		&cli.StringFlag{
			Name:  flagGeoJSON,
			Usage: "also export the plan to `FILE` as GeoJSON",
		},
	}

	return &cli.App{
		Name:  "robopath",
		Usage: "plan collision-free paths for a disc robot among polygonal obstacles",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
				EnvVars: []string{envPrefix + "DEBUG"},
			},
			&cli.Float64Flag{
				Name:    flagRobotDiameter,
				Value:   defaults.RobotDiameter,
				Usage:   "robot footprint diameter",
				EnvVars: []string{envPrefix + "ROBOT_DIAMETER"},
			},
			&cli.IntFlag{
				Name:    flagWorkers,
				Value:   defaults.Workers,
				Usage:   "parallel workers for visibility pruning",
				EnvVars: []string{envPrefix + "WORKERS"},
			},
			&cli.IntFlag{
				Name:    flagMaxCandidates,
				Value:   defaults.MaxCandidatePairs,
				Usage:   "refuse graphs with more candidate edges than this",
				EnvVars: []string{envPrefix + "MAX_CANDIDATES"},
			},
			&cli.IntFlag{
				Name:    flagMaxIterations,
				Value:   defaults.MaxSearchIterations,
				Usage:   "stop the search after this many expanded nodes",
				EnvVars: []string{envPrefix + "MAX_ITERATIONS"},
			},
			&cli.StringFlag{
				Name:    flagHeuristic,
				Value:   string(defaults.Heuristic),
				Usage:   "search algorithm: dijkstra or astar",
				EnvVars: []string{envPrefix + "HEURISTIC"},
			},
			&cli.BoolFlag{
				Name:    flagKeepContained,
				Usage:   "keep grown obstacles that lie inside other obstacles",
				EnvVars: []string{envPrefix + "KEEP_CONTAINED"},
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			logger, err = newLogger(c.Bool(flagDebug))
			return err
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				logger.Sync() //nolint:errcheck
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "plan",
				Usage: "plan from a world file and a start/goal file",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     flagWorld,
						Required: true,
						Usage:    "boundary and obstacles `FILE`",
					},
					&cli.StringFlag{
						Name:     flagStartGoal,
						Required: true,
						Usage:    "start and goal `FILE`",
					},
				}, outputFlags...),
				Action: func(c *cli.Context) error {
					world, err := LoadWorldFiles(c.String(flagWorld), c.String(flagStartGoal))
					if err != nil {
						return err
					}
					return runPlan(c, world, logger)
				},
			},
			{
				Name:  "plan-geojson",
				Usage: "plan from a GeoJSON FeatureCollection",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     flagIn,
						Required: true,
						Usage:    "GeoJSON world `FILE`",
					},
				}, outputFlags...),
				Action: func(c *cli.Context) error {
					data, err := os.ReadFile(c.String(flagIn))
					if err != nil {
						return errors.Wrap(err, "failed to read file")
					}
					world, err := LoadWorldGeoJSON(data, logger)
					if err != nil {
						return err
					}
					return runPlan(c, world, logger)
				},
			},
			{
				Name:  "serve",
				Usage: "answer planning requests over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    flagAddr,
						Value:   ":8080",
						Usage:   "listen address",
						EnvVars: []string{envPrefix + "ADDR"},
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := configFromFlags(c)
					if err != nil {
						return err
					}
					return serve(c.Context, c.String(flagAddr), cfg, logger)
				},
			},
		},
	}
}

// configFromFlags maps the global flags onto a validated Config
func configFromFlags(c *cli.Context) (Config, error) {
	cfg := Config{
		RobotDiameter:       c.Float64(flagRobotDiameter),
		Workers:             c.Int(flagWorkers),
		MaxCandidatePairs:   c.Int(flagMaxCandidates),
		MaxSearchIterations: c.Int(flagMaxIterations),
		Heuristic:           Heuristic(c.String(flagHeuristic)),
		KeepContained:       c.Bool(flagKeepContained),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid flags")
	}
	return cfg, nil
}

// runPlan plans and writes every requested output. The SVG and GeoJSON exports are written even
// when planning fails so the failed stage can be inspected.
func runPlan(c *cli.Context, world World, logger *zap.SugaredLogger) error {
	cfg, err := configFromFlags(c)
	if err != nil {
		return err
	}

	env, err := world.Environment(WithConfig(cfg), WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Infof("   Start: (%.4f, %.4f)", env.Start.X, env.Start.Y)
	logger.Infof("   Goal:  (%.4f, %.4f)", env.Goal.X, env.Goal.Y)
	logger.Infof("   Obstacles: %d", len(env.Obstacles))

	_, commands, planErr := env.Plan(c.Context, c.Bool(flagSafe))

	if path := c.String(flagSVG); path != "" {
		if err := writeFile(path, func(w io.Writer) error { return RenderSVG(w, env) }); err != nil {
			return err
		}
		logger.Infof("🖼️  Wrote %s", path)
	}
	if path := c.String(flagGeoJSON); path != "" {
		if err := writeFile(path, func(w io.Writer) error {
			data, err := PlanFeatureCollection(env).MarshalJSON()
			if err != nil {
				return errors.Wrap(err, "failed to marshal geojson")
			}
			_, err = w.Write(data)
			return err
		}); err != nil {
			return err
		}
		logger.Infof("🗺️  Wrote %s", path)
	}

	if planErr != nil {
		return planErr
	}

	out := c.String(flagOut)
	if out == "-" {
		return WriteCommands(os.Stdout, commands)
	}
	if err := writeFile(out, func(w io.Writer) error { return WriteCommands(w, commands) }); err != nil {
		return err
	}
	logger.Infof("💾 Wrote %d commands to %s", len(commands), out)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "failed to close file")
}

// serve runs the HTTP server until ctx is cancelled
func serve(ctx context.Context, addr string, cfg Config, logger *zap.SugaredLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewServer(cfg, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("⚠️  Shutdown: %v", err)
		}
	}()

	logger.Info("========================================")
	logger.Info("🚀 Robot Path Planner Server")
	logger.Info("========================================")
	logger.Infof("Server starting on %s", addr)
	logger.Info("Endpoints:")
	logger.Info("  POST /plan    - Plan a path through a world")
	logger.Info("  GET  /health  - Check server status")
	logger.Info("CORS enabled for all origins")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
