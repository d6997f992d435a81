// Package api serves the simulation state over HTTP.
// GET endpoints are public (read-only observation).
// POST command endpoints require a bearer token and are rate limited.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/talgya/anthive/internal/graph"
	"github.com/talgya/anthive/internal/pheromone"
	"github.com/talgya/anthive/internal/sim"
)

// Server exposes a Simulation over HTTP.
type Server struct {
	Sim      *sim.Simulation
	Eng      *sim.Engine
	Port     int
	RunID    string
	AdminKey string // Bearer token for POST endpoints. Empty = commands disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	commandLimiter := NewRateLimiter(60, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints (read-only — anyone can watch the colony).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/nodes", s.handleNodes)
	mux.HandleFunc("/api/v1/trails", s.handleTrails)
	mux.HandleFunc("/api/v1/ants", s.handleAnts)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	// Command endpoints (player control plane).
	mux.HandleFunc("/api/v1/command/pheromone", RateLimitMiddleware(commandLimiter, s.requireAdmin(s.handlePlacePheromone)))
	mux.HandleFunc("/api/v1/command/boost", RateLimitMiddleware(commandLimiter, s.requireAdmin(s.handleBoost)))
	mux.HandleFunc("/api/v1/command/disrupt", RateLimitMiddleware(commandLimiter, s.requireAdmin(s.handleDisrupt)))
	mux.HandleFunc("/api/v1/command/expand", RateLimitMiddleware(commandLimiter, s.requireAdmin(s.handleExpand)))

	addr := fmt.Sprintf(":%d", s.Port)
	go func() {
		slog.Info("api server listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("api server failed", "error", err)
		}
	}()
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "commands disabled", http.StatusForbidden)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.Sim.CurrentStats()
	writeJSON(w, map[string]any{
		"run_id": s.RunID,
		"tick":   s.Eng.Tick,
		"speed":  s.Eng.Speed,
		"stats":  stats,
	})
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Nodes())
}

func (s *Server) handleTrails(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Trails())
}

func (s *Server) handleAnts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Ants())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.RecentEvents(50))
}

// commandResult is the uniform response for command endpoints: ok mirrors
// the boolean the core returns, with no partial effects either way.
type commandResult struct {
	OK bool `json:"ok"`
}

func (s *Server) handlePlacePheromone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From   graph.NodeID `json:"from"`
		To     graph.NodeID `json:"to"`
		Type   string       `json:"type"`
		Amount float64      `json:"amount"`
		By     string       `json:"by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	kind := pheromone.TrailExploration
	if req.Type == "food" {
		kind = pheromone.TrailFood
	}
	if req.Amount <= 0 {
		req.Amount = 1.0
	}
	if req.By == "" {
		req.By = "player"
	}
	writeJSON(w, commandResult{OK: s.Sim.PlacePheromone(req.From, req.To, kind, req.Amount, req.By)})
}

func (s *Server) handleBoost(w http.ResponseWriter, r *http.Request) {
	s.handleTimedEffect(w, r, s.Sim.BoostNode)
}

func (s *Server) handleDisrupt(w http.ResponseWriter, r *http.Request) {
	s.handleTimedEffect(w, r, s.Sim.DisruptNode)
}

func (s *Server) handleTimedEffect(w http.ResponseWriter, r *http.Request, apply func(graph.NodeID, float64, string) bool) {
	var req struct {
		Node    graph.NodeID `json:"node"`
		Seconds float64      `json:"seconds"`
		By      string       `json:"by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Seconds <= 0 {
		req.Seconds = 30
	}
	if req.By == "" {
		req.By = "player"
	}
	writeJSON(w, commandResult{OK: apply(req.Node, req.Seconds, req.By)})
}

func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Node graph.NodeID `json:"node"`
		By   string       `json:"by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.By == "" {
		req.By = "player"
	}
	writeJSON(w, commandResult{OK: s.Sim.ExpandNode(req.Node, req.By)})
}
