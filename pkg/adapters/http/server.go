package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/canopy/internal/presentation/graph"
	"github.com/aretw0/canopy/pkg/core"
	"github.com/aretw0/canopy/pkg/loader"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines the surface of the canopy engine the server exposes.
type Engine interface {
	Trees() []*core.BehaviorTree
	Tree(id string) (*core.BehaviorTree, error)
	Describe(treeID string) (*loader.TreeSpec, error)
	Tick(ctx context.Context, treeID, agentID string, target any) (core.Status, error)
}

// Server serves tree introspection and tick requests over HTTP.
type Server struct {
	engine  Engine
	metrics *prometheus.Registry
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts a Prometheus registry at /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.metrics = reg
	}
}

// WithLogger sets a structured logger for request handling errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for an engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{engine: engine, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/trees", s.listTrees)
	r.Get("/trees/{treeID}", s.getTree)
	r.Get("/trees/{treeID}/graph", s.getGraph)
	r.Post("/ticks", s.postTick)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

type treeSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func (s *Server) listTrees(w http.ResponseWriter, r *http.Request) {
	trees := s.engine.Trees()
	out := make([]treeSummary, 0, len(trees))
	for _, bt := range trees {
		out = append(out, treeSummary{
			ID:          bt.ID(),
			Title:       bt.Title(),
			Description: bt.Description(),
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	spec, err := s.engine.Describe(chi.URLParam(r, "treeID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, spec)
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	bt, err := s.engine.Tree(chi.URLParam(r, "treeID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(bt)))
}

type tickRequest struct {
	Tree   string `json:"tree"`
	Agent  string `json:"agent"`
	Target any    `json:"target,omitempty"`
}

type tickResponse struct {
	Status string `json:"status"`
}

func (s *Server) postTick(w http.ResponseWriter, r *http.Request) {
	var req tickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Tree == "" || req.Agent == "" {
		http.Error(w, "tree and agent are required", http.StatusBadRequest)
		return
	}

	status, err := s.engine.Tick(r.Context(), req.Tree, req.Agent, req.Target)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tickResponse{Status: status.String()})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrTreeNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.logger.Error("request failed", "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
