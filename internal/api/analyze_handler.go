package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/your-username/game-event-analytics/internal/analytics"
	"github.com/your-username/game-event-analytics/internal/auth"
	"github.com/your-username/game-event-analytics/internal/database"
	"github.com/your-username/game-event-analytics/internal/models"
	"github.com/your-username/game-event-analytics/internal/session"
)

// AnalyzeHandler runs event analyses for the operator's session.
type AnalyzeHandler struct {
	svc   *analytics.Service
	store *session.Store
}

func NewAnalyzeHandler(svc *analytics.Service, store *session.Store) *AnalyzeHandler {
	return &AnalyzeHandler{
		svc:   svc,
		store: store,
	}
}

type analyzeRequest struct {
	EventName string `json:"event_name"`
	Platform  string `json:"platform"`
	MinLevel  int    `json:"min_level"`
}

// Analyze builds the filter from the request and the session's accumulated
// time periods, then runs both report queries. Validation problems come back
// as 400 with an actionable message; a per-query failure is embedded in the
// response so the other report still renders.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	platform, err := models.ParsePlatform(req.Platform)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter := models.Filter{
		EventName:   req.EventName,
		Platform:    platform,
		MinLevel:    req.MinLevel,
		TimePeriods: h.store.List(auth.SessionID(r.Context())),
	}

	result, err := h.svc.Run(r.Context(), filter)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			http.Error(w, validationErr.Error(), http.StatusBadRequest)
			return
		}
		var connErr *database.ConnectionError
		if errors.As(err, &connErr) {
			http.Error(w, connErr.Error(), http.StatusServiceUnavailable)
			return
		}
		log.Error().Err(err).Str("event", req.EventName).Msg("Analysis failed")
		http.Error(w, "Analysis failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, result)
}

// EventsHandler serves the event catalog for the picker.
type EventsHandler struct {
	svc *analytics.Service
}

func NewEventsHandler(svc *analytics.Service) *EventsHandler {
	return &EventsHandler{svc: svc}
}

// ListEvents returns the distinct event names for a platform.
func (h *EventsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	platform, err := models.ParsePlatform(r.URL.Query().Get("platform"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	names, err := h.svc.EventNames(r.Context(), platform)
	if err != nil {
		var connErr *database.ConnectionError
		if errors.As(err, &connErr) {
			http.Error(w, connErr.Error(), http.StatusServiceUnavailable)
			return
		}
		log.Error().Err(err).Str("platform", string(platform)).Msg("Failed to list events")
		http.Error(w, "Failed to list events", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"events": names,
		"count":  len(names),
	})
}
