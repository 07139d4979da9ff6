// Package api exposes the tour engine over HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/neurotoxic-dev/tour-server/internal/db"
	"github.com/neurotoxic-dev/tour-server/internal/engine"
	"github.com/neurotoxic-dev/tour-server/internal/events"
	mw "github.com/neurotoxic-dev/tour-server/internal/middleware"
	"github.com/neurotoxic-dev/tour-server/internal/random"
	"github.com/neurotoxic-dev/tour-server/internal/traits"
	"github.com/neurotoxic-dev/tour-server/internal/validation"
)

// Server handles HTTP requests.
type Server struct {
	router      chi.Router
	db          *db.DB
	catalog     *events.Catalog
	log         *slog.Logger
	sessions    map[string]*engine.Engine
	bandNames   map[string]string
	sessionsMu  sync.RWMutex
	rateLimiter *mw.RateLimiter
}

// NewServer creates a new API server.
func NewServer(database *db.DB, catalog *events.Catalog, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		router:      chi.NewRouter(),
		db:          database,
		catalog:     catalog,
		log:         log,
		sessions:    make(map[string]*engine.Engine),
		bandNames:   make(map[string]string),
		rateLimiter: mw.NewRateLimiter(100, 20),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.SetHeader("Content-Type", "application/json"))
	s.router.Use(s.rateLimiter.Middleware)
	s.router.Use(mw.SecurityHeadersMiddleware)
	s.router.Use(mw.MaxBodySizeMiddleware(1024 * 1024)) // 1MB max

	// Session creation issues the token; everything else requires it.
	s.router.Post("/api/sessions", s.createSession)

	s.router.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware)
		r.Get("/api/sessions", s.listSessions)
		r.Get("/api/sessions/{id}/state", s.getState)
		r.Post("/api/sessions/{id}/events/check", s.checkEvent)
		r.Post("/api/sessions/{id}/events/resolve", s.resolveEvent)
		r.Post("/api/sessions/{id}/milestones", s.reportMilestone)
		r.Post("/api/sessions/{id}/save", s.saveSession)
		r.Delete("/api/sessions/{id}", s.deleteSession)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response wraps API responses.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError sanitizes server-side failures before they leave the
// process.
func writeError(w http.ResponseWriter, status int, message string) {
	if status >= 500 {
		message = "Internal server error"
	}
	writeJSON(w, status, Response{Success: false, Error: message})
}

// checkSessionOwnership verifies the user owns the session.
func (s *Server) checkSessionOwnership(w http.ResponseWriter, r *http.Request, sessionID string) bool {
	userID := mw.UserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Missing user ID")
		return false
	}
	isOwner, err := s.db.IsSessionOwner(sessionID, userID)
	if err != nil || !isOwner {
		writeError(w, http.StatusForbidden, "Access denied")
		return false
	}
	return true
}

// getEngine returns the in-memory engine for a session, restoring it
// from the latest snapshot when the process was restarted.
func (s *Server) getEngine(sessionID string) (*engine.Engine, error) {
	s.sessionsMu.RLock()
	eng, ok := s.sessions[sessionID]
	s.sessionsMu.RUnlock()
	if ok {
		return eng, nil
	}

	state, err := s.db.LoadSession(sessionID)
	if err != nil {
		return nil, err
	}
	eng = engine.NewFromState(state, s.catalog, random.NewCrypto(), s.log)

	s.sessionsMu.Lock()
	if existing, ok := s.sessions[sessionID]; ok {
		eng = existing
	} else {
		s.sessions[sessionID] = eng
	}
	s.sessionsMu.Unlock()
	return eng, nil
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BandName string `json:"band_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.BandName == "" {
		req.BandName = "Neurotoxic"
	}
	if err := validation.ValidateBandName(req.BandName); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := uuid.New().String()
	userID := uuid.New().String()

	token, err := mw.IssueToken(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	eng := engine.New(s.catalog, random.NewCrypto(), s.log)

	s.sessionsMu.Lock()
	s.sessions[sessionID] = eng
	s.bandNames[sessionID] = req.BandName
	s.sessionsMu.Unlock()

	if err := s.db.SaveSessionOwnership(sessionID, userID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	if err := s.db.SaveSession(sessionID, req.BandName, eng.State()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"token":      token,
			"state":      eng.State(),
		},
	})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	userID := mw.UserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Missing user ID")
		return
	}

	ids, err := s.db.GetUserSessions(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: ids})
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := validation.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}
	if !s.checkSessionOwnership(w, r, sessionID) {
		return
	}

	eng, err := s.getEngine(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"state":        eng.State(),
			"active_event": eng.ActiveEvent(),
		},
	})
}

func (s *Server) checkEvent(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := validation.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}
	if !s.checkSessionOwnership(w, r, sessionID) {
		return
	}

	var req struct {
		Category string `json:"category"`
		Trigger  string `json:"trigger"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateCategory(req.Category); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.ValidateTrigger(req.Trigger); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	eng, err := s.getEngine(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	ev, err := eng.CheckEvent(req.Category, req.Trigger)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"event": ev},
	})
}

func (s *Server) resolveEvent(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := validation.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}
	if !s.checkSessionOwnership(w, r, sessionID) {
		return
	}

	var req struct {
		OptionIndex int `json:"option_index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	eng, err := s.getEngine(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	active := eng.ActiveEvent()
	if active == nil {
		writeError(w, http.StatusConflict, "No active event")
		return
	}
	if err := validation.ValidateOptionIndex(req.OptionIndex, len(active.Options)); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := eng.ResolveActive(req.OptionIndex)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: res})
}

func (s *Server) reportMilestone(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := validation.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}
	if !s.checkSessionOwnership(w, r, sessionID) {
		return
	}

	var ctx traits.Context
	if err := json.NewDecoder(r.Body).Decode(&ctx); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if ctx.Type == "" {
		writeError(w, http.StatusBadRequest, "Missing milestone type")
		return
	}

	eng, err := s.getEngine(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	unlocks, toasts, err := eng.ReportMilestone(&ctx)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"unlocks": unlocks,
			"toasts":  toasts,
		},
	})
}

func (s *Server) saveSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := validation.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}
	if !s.checkSessionOwnership(w, r, sessionID) {
		return
	}

	eng, err := s.getEngine(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	s.sessionsMu.RLock()
	bandName := s.bandNames[sessionID]
	s.sessionsMu.RUnlock()

	if err := s.db.SaveSession(sessionID, bandName, eng.State()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := validation.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}
	if !s.checkSessionOwnership(w, r, sessionID) {
		return
	}

	if err := s.db.DeleteSession(sessionID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	s.sessionsMu.Lock()
	delete(s.sessions, sessionID)
	delete(s.bandNames, sessionID)
	s.sessionsMu.Unlock()

	writeJSON(w, http.StatusOK, Response{Success: true})
}
