package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-username/game-event-analytics/internal/database"
	"github.com/your-username/game-event-analytics/internal/models"
	"github.com/your-username/game-event-analytics/internal/querybuilder"
)

type fakeExecutor struct {
	connected        map[models.Platform]bool
	participation    []models.ParticipationRow
	participationErr error
	engagement       []models.EngagementRow
	engagementErr    error
	events           []string

	participationCalls int
	engagementCalls    int
}

func (f *fakeExecutor) Connected(p models.Platform) bool {
	if f.connected == nil {
		return true
	}
	return f.connected[p]
}

func (f *fakeExecutor) Participation(ctx context.Context, p models.Platform, q *querybuilder.Query) ([]models.ParticipationRow, error) {
	f.participationCalls++
	return f.participation, f.participationErr
}

func (f *fakeExecutor) Engagement(ctx context.Context, p models.Platform, q *querybuilder.Query) ([]models.EngagementRow, error) {
	f.engagementCalls++
	return f.engagement, f.engagementErr
}

func (f *fakeExecutor) EventNames(ctx context.Context, p models.Platform, q *querybuilder.Query) ([]string, error) {
	return f.events, nil
}

func runFilter(t *testing.T) models.Filter {
	t.Helper()
	start, err := time.Parse("2006-01-02 15:04:05", "2024-01-01 00:00:00")
	require.NoError(t, err)
	return models.Filter{
		EventName: "spring_event",
		Platform:  models.PlatformAndroid,
		MinLevel:  5,
		TimePeriods: []models.TimePeriod{
			{Start: start, End: start.AddDate(0, 0, 7)},
		},
	}
}

func TestRun(t *testing.T) {
	db := &fakeExecutor{
		participation: []models.ParticipationRow{
			{ParticipationGroup: models.GroupParticipant, TotalUsers: 25, TotalRevenue: 500},
			{ParticipationGroup: models.GroupNonParticipant, TotalUsers: 75},
		},
		engagement: []models.EngagementRow{
			{UniqueUsers: 10, TotalInteractions: 50},
		},
	}
	svc := NewService(db, "game_analytics")

	result, err := svc.Run(context.Background(), runFilter(t))
	require.NoError(t, err)

	assert.Equal(t, 1, db.participationCalls)
	assert.Equal(t, 1, db.engagementCalls)
	assert.Len(t, result.Participation, 2)
	assert.Len(t, result.Engagement, 1)
	assert.Empty(t, result.ParticipationError)
	assert.Empty(t, result.EngagementError)

	assert.Equal(t, 0.25, result.Summary.ParticipationRate)
	assert.Equal(t, float64(500), result.Summary.TotalRevenue)
	assert.Equal(t, uint64(50), result.Summary.TotalEngagement)

	assert.NotEmpty(t, result.ParticipationSQL)
	assert.NotEmpty(t, result.EngagementSQL)
}

func TestRunOneQueryFails(t *testing.T) {
	db := &fakeExecutor{
		participationErr: &database.QueryError{
			Platform: models.PlatformAndroid,
			Kind:     database.KindParticipation,
			Err:      errors.New("syntax error"),
		},
		engagement: []models.EngagementRow{
			{TotalInteractions: 30},
		},
	}
	svc := NewService(db, "game_analytics")

	result, err := svc.Run(context.Background(), runFilter(t))
	require.NoError(t, err)

	// The engagement report still renders and the failure carries context.
	assert.Contains(t, result.ParticipationError, "participation")
	assert.Contains(t, result.ParticipationError, "Android")
	assert.Empty(t, result.Participation)
	assert.Len(t, result.Engagement, 1)
	assert.Equal(t, uint64(30), result.Summary.TotalEngagement)
	assert.Equal(t, float64(0), result.Summary.ParticipationRate)
}

func TestRunValidationBlocksExecution(t *testing.T) {
	db := &fakeExecutor{}
	svc := NewService(db, "game_analytics")

	f := runFilter(t)
	f.TimePeriods = nil

	_, err := svc.Run(context.Background(), f)
	require.Error(t, err)

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Zero(t, db.participationCalls)
	assert.Zero(t, db.engagementCalls)
}

func TestRunDisconnectedPlatform(t *testing.T) {
	db := &fakeExecutor{connected: map[models.Platform]bool{models.PlatformIOS: true}}
	svc := NewService(db, "game_analytics")

	_, err := svc.Run(context.Background(), runFilter(t))
	require.Error(t, err)

	var connErr *database.ConnectionError
	assert.ErrorAs(t, err, &connErr)
	assert.Equal(t, models.PlatformAndroid, connErr.Platform)
}

func TestEventNames(t *testing.T) {
	db := &fakeExecutor{events: []string{"autumn_event", "spring_event"}}
	svc := NewService(db, "game_analytics")

	names, err := svc.EventNames(context.Background(), models.PlatformAndroid)
	require.NoError(t, err)
	assert.Equal(t, []string{"autumn_event", "spring_event"}, names)
}
