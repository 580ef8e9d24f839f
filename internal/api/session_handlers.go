package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/your-username/game-event-analytics/internal/auth"
	"github.com/your-username/game-event-analytics/internal/models"
	"github.com/your-username/game-event-analytics/internal/session"
)

// SessionHandler manages operator sessions and their time-period lists.
type SessionHandler struct {
	auth  *auth.Manager
	store *session.Store
}

func NewSessionHandler(authManager *auth.Manager, store *session.Store) *SessionHandler {
	return &SessionHandler{
		auth:  authManager,
		store: store,
	}
}

// CreateSession issues a fresh session token.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	token, sessionID, err := h.auth.NewSession()
	if err != nil {
		log.Error().Err(err).Msg("Failed to create session")
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	log.Info().Str("session_id", sessionID).Msg("Session created")
	writeJSON(w, map[string]interface{}{
		"token": token,
	})
}

type addPeriodRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AddPeriod appends one time period to the session's list.
func (h *SessionHandler) AddPeriod(w http.ResponseWriter, r *http.Request) {
	var req addPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	period, err := h.store.Add(auth.SessionID(r.Context()), models.TimePeriod{
		Start: req.Start,
		End:   req.End,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, period)
}

// ListPeriods returns the session's current time periods.
func (h *SessionHandler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	periods := h.store.List(auth.SessionID(r.Context()))
	writeJSON(w, map[string]interface{}{
		"periods": periods,
		"count":   len(periods),
	})
}

// RemovePeriod deletes one period by ID.
func (h *SessionHandler) RemovePeriod(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "id")
	if periodID == "" {
		http.Error(w, "Period ID required", http.StatusBadRequest)
		return
	}

	if !h.store.Remove(auth.SessionID(r.Context()), periodID) {
		http.Error(w, "Period not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearPeriods removes every period from the session.
func (h *SessionHandler) ClearPeriods(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(auth.SessionID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}
