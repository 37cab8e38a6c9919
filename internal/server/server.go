// Package server is the HTTP adapter the dashboard UI talks to. It routes
// requests to the history services, the plan generator, and the backend
// proxies.
package server

import (
	"fmt"
	"net/http"

	"gymdash/internal/backend"
	"gymdash/internal/history"
	"gymdash/internal/logging"
	"gymdash/internal/planner"
)

type Server struct {
	histories map[history.Kind]*history.Service
	backend   *backend.Client
	generator planner.Generator // nil when plan generation is not configured
	logger    logging.Logger
}

// New creates a Server wired to the per-kind history services and the
// backend client.
func New(diet, workout *history.Service, bc *backend.Client, gen planner.Generator, logger logging.Logger) *Server {
	return &Server{
		histories: map[history.Kind]*history.Service{
			history.KindDiet:    diet,
			history.KindWorkout: workout,
		},
		backend:   bc,
		generator: gen,
		logger:    logger,
	}
}

// Handler returns the root http.Handler for the dashboard API.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/history", s.handleHistory)

	api.HandleFunc("/plans/generate", s.handleGeneratePlan)
	api.HandleFunc("/plans/save", s.handleSavePlan)
	api.HandleFunc("/plans/preview", s.handlePreviewPlan)

	api.HandleFunc("/gym", s.handleGym)
	api.HandleFunc("/attendance", s.handleAttendance)
	api.HandleFunc("/membership", s.handleMembership)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.withRequestLogging(root)
}

// historyFor resolves the kind query/body parameter to a history service.
func (s *Server) historyFor(kind string) (*history.Service, error) {
	k, err := history.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	svc, ok := s.histories[k]
	if !ok {
		return nil, fmt.Errorf("no history service for kind %q", kind)
	}
	return svc, nil
}
