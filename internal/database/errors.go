package database

import (
	"fmt"

	"github.com/your-username/game-event-analytics/internal/models"
)

// ConnectionError means the engine is unreachable for a platform. Analysis
// for that platform is blocked; other platforms are unaffected.
type ConnectionError struct {
	Platform models.Platform
	Err      error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("clickhouse connection unavailable for %s", e.Platform)
	}
	return fmt.Sprintf("clickhouse connection unavailable for %s: %v", e.Platform, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError carries enough context (platform, which query) for the operator
// to retry or adjust filters. An empty result set is never a QueryError.
type QueryError struct {
	Platform models.Platform
	Kind     string
	Err      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s query failed for %s: %v", e.Kind, e.Platform, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
