// Package server exposes a built dependency graph over a read-only HTTP API.
//
// The API answers the same questions as the CLI - build order, transitive
// dependents, validation - for tooling that prefers HTTP over shelling out.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/buildplan/buildplan/pkg/graph"
)

// Server serves graph queries over HTTP. The graph is an immutable snapshot
// taken at startup; rescanning requires a restart.
type Server struct {
	graph  *graph.DependencyGraph
	logger *log.Logger
}

// New creates a server for the given graph.
func New(g *graph.DependencyGraph, logger *log.Logger) *Server {
	return &Server{graph: g, logger: logger}
}

// Handler builds the HTTP route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/graph", s.handleGraph)
	r.Get("/order", s.handleOrder)
	r.Get("/validate", s.handleValidate)
	r.Get("/packages", s.handlePackages)
	r.Route("/packages/{name}", func(r chi.Router) {
		r.Get("/", s.handlePackage)
		r.Get("/dependents", s.handleDependents)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, graph.Serialize(s.graph))
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	order, err := graph.Sort(s.graph)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"order": order})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, graph.Validate(s.graph))
}

// packageSummary is the list representation of a node.
type packageSummary struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Location     string   `json:"location"`
	Dependencies []string `json:"dependencies"`
	Dependents   []string `json:"dependents"`
}

func (s *Server) handlePackages(w http.ResponseWriter, r *http.Request) {
	nodes := s.graph.Nodes()
	out := make([]packageSummary, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, s.summary(n))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePackage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	n, ok := s.graph.Node(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown package: "+name)
		return
	}
	writeJSON(w, http.StatusOK, s.summary(n))
}

func (s *Server) handleDependents(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := s.graph.Node(name); !ok {
		writeError(w, http.StatusNotFound, "unknown package: "+name)
		return
	}

	dependents := graph.DependentsOf(name, s.graph)
	names := make([]string, 0, len(dependents))
	for _, candidate := range s.graph.Names() {
		if dependents[candidate] {
			names = append(names, candidate)
		}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"dependents": names})
}

func (s *Server) summary(n *graph.PackageNode) packageSummary {
	return packageSummary{
		Name:         n.Name,
		Version:      n.Version,
		Location:     n.Location,
		Dependencies: s.graph.Dependencies(n.Name),
		Dependents:   s.graph.Dependents(n.Name),
	}
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
