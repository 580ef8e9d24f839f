package models

import (
	"time"
)

// TimePeriod is one operator-selected start/end timestamp range. Periods are
// immutable once added to a session; removal happens by ID.
type TimePeriod struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate enforces the end-not-before-start invariant.
func (p TimePeriod) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return &ValidationError{Field: "time_period", Message: "start and end are required"}
	}
	if p.End.Before(p.Start) {
		return &ValidationError{Field: "time_period", Message: "end must not be before start"}
	}
	return nil
}
