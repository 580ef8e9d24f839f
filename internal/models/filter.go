package models

// ValidationError marks operator input that must be fixed before any query
// is issued. Handlers surface it as a 400, never as a server failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Filter fully determines an analysis run. Two equal Filters must produce
// identical query text, which is what makes result caching sound.
type Filter struct {
	EventName   string       `json:"event_name"`
	Platform    Platform     `json:"platform"`
	MinLevel    int          `json:"min_level"`
	TimePeriods []TimePeriod `json:"time_periods"`
}

// Validate checks the filter before query construction. An empty period list
// blocks analysis rather than producing a query over nothing.
func (f Filter) Validate() error {
	if f.EventName == "" {
		return &ValidationError{Field: "event_name", Message: "event name is required"}
	}
	if _, err := ParsePlatform(string(f.Platform)); err != nil {
		return err
	}
	if f.MinLevel < 1 {
		return &ValidationError{Field: "min_level", Message: "minimum level must be at least 1"}
	}
	if len(f.TimePeriods) == 0 {
		return &ValidationError{Field: "time_periods", Message: "add at least one time period"}
	}
	for _, p := range f.TimePeriods {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
