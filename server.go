package main

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type PlanRequest struct {
	World
	Safe          bool     `json:"safe"`
	RobotDiameter *float64 `json:"robotDiameter,omitempty"` // Optional: overrides the server default
}

type PlanResponse struct {
	Path            []Point   `json:"path"`
	Commands        []Command `json:"commands"`
	Success         bool      `json:"success"`
	Message         string    `json:"message,omitempty"`
	Distance        float64   `json:"distance,omitempty"`
	VisibilityEdges int       `json:"visibilityEdges"`
}

// Server answers planning requests over HTTP
type Server struct {
	cfg    Config
	logger *zap.SugaredLogger
}

// NewServer creates a server planning with cfg unless a request overrides the robot diameter
func NewServer(cfg Config, logger *zap.SugaredLogger) *Server {
	return &Server{cfg: cfg, logger: logger}
}

// Handler returns the routes with CORS enabled for all origins
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/plan", s.planHandler)
	mux.HandleFunc("/health", s.healthHandler)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
}

// POST /plan - Grow obstacles, build the visibility graph and return the shortest path
func (s *Server) planHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("========================================")
	s.logger.Info("📍 Plan request received")

	if r.Method != http.MethodPost {
		s.logger.Warnf("❌ Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warnf("❌ Invalid request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.logger.Infof("   Start: (%.4f, %.4f)", req.Start.X, req.Start.Y)
	s.logger.Infof("   Goal:  (%.4f, %.4f)", req.Goal.X, req.Goal.Y)
	s.logger.Infof("   Obstacles: %d", len(req.Obstacles))

	cfg := s.cfg
	if req.RobotDiameter != nil {
		cfg.RobotDiameter = *req.RobotDiameter
	}

	env, err := req.World.Environment(WithConfig(cfg), WithLogger(s.logger))
	if err != nil {
		s.logger.Warnf("❌ Invalid world: %v", err)
		s.writeJSON(w, http.StatusUnprocessableEntity, PlanResponse{Success: false, Message: err.Error()})
		return
	}

	path, commands, err := env.Plan(r.Context(), req.Safe)

	response := PlanResponse{}
	if vg := env.VisibilityGraph(); vg != nil {
		response.VisibilityEdges = len(vg.Edges)
	}

	switch {
	case err == nil:
		response.Success = true
		response.Path = path
		response.Commands = commands
		response.Distance = path.Length()
	case errors.Is(err, ErrDegenerateGeometry):
		s.writeJSON(w, http.StatusUnprocessableEntity, PlanResponse{Success: false, Message: err.Error()})
		return
	default:
		response.Message = err.Error()
	}

	s.writeJSON(w, http.StatusOK, response)
	s.logger.Info("========================================")
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "ready",
		"robotDiameter": s.cfg.RobotDiameter,
		"heuristic":     s.cfg.Heuristic,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("❌ Failed to write response: %v", err)
	}
}
