package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/your-username/game-event-analytics/internal/models"
	"github.com/your-username/game-event-analytics/internal/querybuilder"
)

// Query kinds used in errors, logs and cache keys.
const (
	KindParticipation = "participation"
	KindEngagement    = "engagement"
	KindEvents        = "events"
)

// Participation executes the participation query and scans rows in the
// column order the builder declares. An empty result is an empty table.
func (db *DB) Participation(ctx context.Context, platform models.Platform, q *querybuilder.Query) ([]models.ParticipationRow, error) {
	if cached, ok := db.results.Get(string(platform), KindParticipation, q.SQL, q.Params); ok {
		return cached.([]models.ParticipationRow), nil
	}

	conn, err := db.conn(platform)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	start := time.Now()
	rows, err := conn.Query(ctx, q.SQL, q.Params...)
	if err != nil {
		return nil, &QueryError{Platform: platform, Kind: KindParticipation, Err: err}
	}
	defer rows.Close()

	result := make([]models.ParticipationRow, 0)
	for rows.Next() {
		var r models.ParticipationRow
		if err := rows.Scan(
			&r.CreatedDay,
			&r.ParticipationGroup,
			&r.TotalUsers,
			&r.PayingUsers,
			&r.PurchaseCount,
			&r.TotalRevenue,
			&r.Revenue25thPercentile,
			&r.RevenueMedian,
			&r.Revenue75thPercentile,
			&r.Revenue90thPercentile,
			&r.FirstTimePayers,
			&r.ConversionRate,
			&r.PayRate,
			&r.ARPU,
			&r.ARPPU,
		); err != nil {
			return nil, &QueryError{Platform: platform, Kind: KindParticipation, Err: err}
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Platform: platform, Kind: KindParticipation, Err: err}
	}

	log.Debug().
		Str("platform", string(platform)).
		Int("rows", len(result)).
		Dur("elapsed", time.Since(start)).
		Msg("Participation query executed")

	db.results.Set(string(platform), KindParticipation, q.SQL, q.Params, result)
	return result, nil
}

// Engagement executes the engagement query.
func (db *DB) Engagement(ctx context.Context, platform models.Platform, q *querybuilder.Query) ([]models.EngagementRow, error) {
	if cached, ok := db.results.Get(string(platform), KindEngagement, q.SQL, q.Params); ok {
		return cached.([]models.EngagementRow), nil
	}

	conn, err := db.conn(platform)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	start := time.Now()
	rows, err := conn.Query(ctx, q.SQL, q.Params...)
	if err != nil {
		return nil, &QueryError{Platform: platform, Kind: KindEngagement, Err: err}
	}
	defer rows.Close()

	result := make([]models.EngagementRow, 0)
	for rows.Next() {
		var r models.EngagementRow
		if err := rows.Scan(
			&r.CreatedDay,
			&r.UniqueUsers,
			&r.TotalInteractions,
			&r.AvgInteractionsPerUser,
			&r.UniqueSessions,
			&r.AvgInteractionsPerSession,
		); err != nil {
			return nil, &QueryError{Platform: platform, Kind: KindEngagement, Err: err}
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Platform: platform, Kind: KindEngagement, Err: err}
	}

	log.Debug().
		Str("platform", string(platform)).
		Int("rows", len(result)).
		Dur("elapsed", time.Since(start)).
		Msg("Engagement query executed")

	db.results.Set(string(platform), KindEngagement, q.SQL, q.Params, result)
	return result, nil
}

// EventNames executes the event catalog query.
func (db *DB) EventNames(ctx context.Context, platform models.Platform, q *querybuilder.Query) ([]string, error) {
	if cached, ok := db.events.Get(string(platform), KindEvents, q.SQL, q.Params); ok {
		return cached.([]string), nil
	}

	conn, err := db.conn(platform)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	rows, err := conn.Query(ctx, q.SQL, q.Params...)
	if err != nil {
		return nil, &QueryError{Platform: platform, Kind: KindEvents, Err: err}
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &QueryError{Platform: platform, Kind: KindEvents, Err: err}
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Platform: platform, Kind: KindEvents, Err: err}
	}

	db.events.Set(string(platform), KindEvents, q.SQL, q.Params, names)
	return names, nil
}
