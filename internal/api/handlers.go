package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/your-username/game-event-analytics/internal/database"
)

// HealthCheck returns the health status of the service
func HealthCheck(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC(),
		}

		if err := db.Health(ctx); err != nil {
			status["status"] = "error"
			status["database"] = "unhealthy"
			status["error"] = err.Error()
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			status["database"] = "healthy"
		}

		writeJSON(w, status)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
