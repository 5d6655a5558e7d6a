// Package api is the thin HTTP layer over the billing engine. It is only
// responsible for input ingestion, engine orchestration, and output
// serialization; it never performs cost logic itself.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"paperbill/adapters/storage"
	"paperbill/core/calendar"
	"paperbill/core/engine"
	"paperbill/internal/errors"
)

// Server is the API server
type Server struct {
	engine  *engine.Engine
	store   storage.Store
	mux     *http.ServeMux
	version string
}

// NewServer creates an API server over a store
func NewServer(version string, store storage.Store) *Server {
	s := &Server{
		engine:  engine.New(store),
		store:   store,
		mux:     http.NewServeMux(),
		version: version,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoint
	s.mux.HandleFunc("POST /calculate", s.handleCalculate)

	// Record management
	s.mux.HandleFunc("GET /papers", s.handleGetPapers)
	s.mux.HandleFunc("POST /papers", s.handleAddPaper)
	s.mux.HandleFunc("PATCH /papers/{id}", s.handleEditPaper)
	s.mux.HandleFunc("DELETE /papers/{id}", s.handleDeletePaper)
	s.mux.HandleFunc("GET /undelivered", s.handleGetUndelivered)
	s.mux.HandleFunc("POST /undelivered", s.handleAddUndelivered)
	s.mux.HandleFunc("DELETE /undelivered", s.handleDeleteUndelivered)
	s.mux.HandleFunc("GET /logs", s.handleGetLogs)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version": s.version,
		"engine":  "paperbill",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := "INTERNAL_ERROR"
	status := http.StatusInternalServerError

	if e, ok := err.(*errors.Error); ok {
		code = string(e.Type)
		switch e.Type {
		case errors.TypeInput, errors.TypeCalendar:
			status = http.StatusBadRequest
		case errors.TypeNotFound:
			status = http.StatusNotFound
		case errors.TypeConflict:
			status = http.StatusConflict
		}
	}

	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": err.Error(),
		},
	}, status)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "invalid JSON body", err))
		return false
	}
	return true
}

// monthSpec resolves a request's month/year, defaulting both-zero to the
// previous calendar month
func monthSpec(month, year int) calendar.MonthSpec {
	if month == 0 && year == 0 {
		return calendar.PreviousMonth(time.Now())
	}
	return calendar.MonthSpec{Month: month, Year: year}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
