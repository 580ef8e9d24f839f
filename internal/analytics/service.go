package analytics

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/your-username/game-event-analytics/internal/database"
	"github.com/your-username/game-event-analytics/internal/models"
	"github.com/your-username/game-event-analytics/internal/querybuilder"
)

// Executor issues one round-trip per query against the analytical engine.
type Executor interface {
	Connected(platform models.Platform) bool
	Participation(ctx context.Context, platform models.Platform, q *querybuilder.Query) ([]models.ParticipationRow, error)
	Engagement(ctx context.Context, platform models.Platform, q *querybuilder.Query) ([]models.EngagementRow, error)
	EventNames(ctx context.Context, platform models.Platform, q *querybuilder.Query) ([]string, error)
}

// Service runs analysis requests end to end: filter validation, query
// construction, execution and summary derivation.
type Service struct {
	db     Executor
	prefix string
}

func NewService(db Executor, tablePrefix string) *Service {
	return &Service{
		db:     db,
		prefix: tablePrefix,
	}
}

// Result is one completed analysis run. The two queries succeed or fail
// independently; a failed query leaves its table empty and its error message
// set while the other still reports. The generated SQL is included so the
// operator can inspect what actually ran.
type Result struct {
	EventName   string                 `json:"event_name"`
	Platform    models.Platform        `json:"platform"`
	MinLevel    int                    `json:"min_level"`
	TimePeriods []models.TimePeriod    `json:"time_periods"`
	Summary     models.AnalysisSummary `json:"summary"`

	Participation      []models.ParticipationRow `json:"participation"`
	ParticipationSQL   string                    `json:"participation_sql"`
	ParticipationError string                    `json:"participation_error,omitempty"`

	Engagement      []models.EngagementRow `json:"engagement"`
	EngagementSQL   string                 `json:"engagement_sql"`
	EngagementError string                 `json:"engagement_error,omitempty"`
}

// Run executes both report queries for the filter. The round-trips are
// independent and run concurrently; neither aborts the other on failure.
// Validation problems and missing platform connections are returned as
// errors before anything is issued to the engine.
func (s *Service) Run(ctx context.Context, f models.Filter) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if !s.db.Connected(f.Platform) {
		return nil, &database.ConnectionError{Platform: f.Platform}
	}

	participationQuery, err := querybuilder.Participation(f, s.prefix)
	if err != nil {
		return nil, err
	}
	engagementQuery, err := querybuilder.Engagement(f, s.prefix)
	if err != nil {
		return nil, err
	}

	result := &Result{
		EventName:        f.EventName,
		Platform:         f.Platform,
		MinLevel:         f.MinLevel,
		TimePeriods:      f.TimePeriods,
		Participation:    []models.ParticipationRow{},
		ParticipationSQL: participationQuery.SQL,
		Engagement:       []models.EngagementRow{},
		EngagementSQL:    engagementQuery.SQL,
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		rows, err := s.db.Participation(ctx, f.Platform, participationQuery)
		if err != nil {
			log.Error().Err(err).Str("platform", string(f.Platform)).Msg("Participation query failed")
			result.ParticipationError = err.Error()
			return
		}
		result.Participation = rows
	}()

	go func() {
		defer wg.Done()
		rows, err := s.db.Engagement(ctx, f.Platform, engagementQuery)
		if err != nil {
			log.Error().Err(err).Str("platform", string(f.Platform)).Msg("Engagement query failed")
			result.EngagementError = err.Error()
			return
		}
		result.Engagement = rows
	}()

	wg.Wait()

	result.Summary = Summarize(result.Participation, result.Engagement)
	return result, nil
}

// EventNames lists the events available for the platform's picker.
func (s *Service) EventNames(ctx context.Context, platform models.Platform) ([]string, error) {
	if !s.db.Connected(platform) {
		return nil, &database.ConnectionError{Platform: platform}
	}

	q, err := querybuilder.EventNames(platform, s.prefix)
	if err != nil {
		return nil, err
	}
	return s.db.EventNames(ctx, platform, q)
}
