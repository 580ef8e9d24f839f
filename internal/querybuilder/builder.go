package querybuilder

import (
	"fmt"
	"regexp"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/your-username/game-event-analytics/internal/models"
)

// Source table names within each per-platform database. The schema is an
// external contract shared with the data pipeline.
const (
	eventTable     = "f_sdk_event_data"
	retentionTable = "f_sdk_retention_data"
	purchaseTable  = "f_sdk_in_app_data"
)

// Query is a complete statement plus the named parameters it binds. The SQL
// text is deterministic for equal inputs; values travel only through Params.
type Query struct {
	SQL    string
	Params []any
}

// Identifiers cannot be bound as parameters, so the database name assembled
// from prefix and platform token is allow-listed instead.
var identPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func platformDatabase(prefix string, platform models.Platform) (string, error) {
	db := fmt.Sprintf("%s_%s", prefix, platform.Token())
	if !identPattern.MatchString(db) {
		return "", fmt.Errorf("invalid database identifier %q", db)
	}
	return db, nil
}

// Participation builds the query classifying eligible users into
// participant/non-participant groups per day and aggregating purchase
// metrics for each group. Eligibility comes from the retention source,
// participation from the event source, spend from the purchase source, all
// filtered by the same period and level condition. Every derived ratio is
// guarded so a zero denominator yields 0 rather than an error.
func Participation(f models.Filter, prefix string) (*Query, error) {
	db, err := platformDatabase(prefix, f.Platform)
	if err != nil {
		return nil, err
	}
	cond, params, err := timeCondition(f.TimePeriods)
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf(`WITH eligible_users AS (
    SELECT DISTINCT
        account_id,
        created_day
    FROM %[1]s.%[2]s
    WHERE %[5]s
        AND level >= {min_level:UInt32}
),
event_participants AS (
    SELECT DISTINCT
        account_id,
        created_day
    FROM %[1]s.%[3]s
    WHERE %[5]s
        AND event_name = {event_name:String}
        AND level >= {min_level:UInt32}
),
user_participation AS (
    SELECT
        eu.account_id,
        eu.created_day,
        CASE
            WHEN ep.account_id IS NOT NULL THEN 'Event Participant'
            ELSE 'Non-Participant'
        END AS participation_group
    FROM eligible_users eu
    LEFT JOIN event_participants ep
        ON eu.account_id = ep.account_id
        AND eu.created_day = ep.created_day
),
daily_group_totals AS (
    SELECT
        created_day,
        participation_group,
        COUNT(DISTINCT account_id) AS group_total_users
    FROM user_participation
    GROUP BY created_day, participation_group
),
eligible_purchases AS (
    SELECT
        account_id,
        created_day,
        uuid,
        price_usd,
        in_app_count
    FROM %[1]s.%[4]s
    WHERE %[5]s
        AND level >= {min_level:UInt32}
),
purchase_metrics AS (
    SELECT
        i.created_day,
        up.participation_group,
        COUNT(DISTINCT i.account_id) AS paying_users,
        COUNT(DISTINCT i.uuid) AS purchase_count,
        SUM(i.price_usd) AS total_revenue,
        quantile(0.25)(i.price_usd) AS revenue_25th_percentile,
        quantile(0.50)(i.price_usd) AS revenue_median,
        quantile(0.75)(i.price_usd) AS revenue_75th_percentile,
        quantile(0.90)(i.price_usd) AS revenue_90th_percentile,
        countIf(i.in_app_count = 1) AS first_time_payers
    FROM eligible_purchases i
    INNER JOIN user_participation up
        ON i.account_id = up.account_id
        AND i.created_day = up.created_day
    GROUP BY i.created_day, up.participation_group
)
SELECT
    dt.created_day,
    dt.participation_group,
    dt.group_total_users,
    pm.paying_users,
    pm.purchase_count,
    pm.total_revenue,
    pm.revenue_25th_percentile,
    pm.revenue_median,
    pm.revenue_75th_percentile,
    pm.revenue_90th_percentile,
    pm.first_time_payers,
    toFloat64(if(dt.group_total_users = 0, 0, pm.first_time_payers / dt.group_total_users)) AS conversion_rate,
    toFloat64(if(dt.group_total_users = 0, 0, pm.paying_users / dt.group_total_users)) AS pay_rate,
    toFloat64(if(dt.group_total_users = 0, 0, pm.total_revenue / dt.group_total_users)) AS arpu,
    toFloat64(if(pm.paying_users = 0, 0, pm.total_revenue / pm.paying_users)) AS arppu
FROM purchase_metrics pm
INNER JOIN daily_group_totals dt
    ON pm.created_day = dt.created_day
    AND pm.participation_group = dt.participation_group
ORDER BY dt.created_day, dt.participation_group`,
		db, retentionTable, eventTable, purchaseTable, cond)

	params = append(params,
		clickhouse.Named("event_name", f.EventName),
		clickhouse.Named("min_level", uint32(f.MinLevel)),
	)
	return &Query{SQL: sql, Params: params}, nil
}

// Engagement builds the per-day interaction metrics query for one event.
func Engagement(f models.Filter, prefix string) (*Query, error) {
	db, err := platformDatabase(prefix, f.Platform)
	if err != nil {
		return nil, err
	}
	cond, params, err := timeCondition(f.TimePeriods)
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf(`SELECT
    created_day,
    COUNT(DISTINCT account_id) AS unique_users,
    COUNT(*) AS total_interactions,
    toFloat64(if(COUNT(DISTINCT account_id) = 0, 0, COUNT(*) / COUNT(DISTINCT account_id))) AS avg_interactions_per_user,
    COUNT(DISTINCT session_id) AS unique_sessions,
    toFloat64(if(COUNT(DISTINCT session_id) = 0, 0, COUNT(*) / COUNT(DISTINCT session_id))) AS avg_interactions_per_session
FROM %s.%s
WHERE %s
    AND event_name = {event_name:String}
    AND level >= {min_level:UInt32}
GROUP BY created_day
ORDER BY created_day`,
		db, eventTable, cond)

	params = append(params,
		clickhouse.Named("event_name", f.EventName),
		clickhouse.Named("min_level", uint32(f.MinLevel)),
	)
	return &Query{SQL: sql, Params: params}, nil
}

// EventNames builds the event catalog query backing the event picker.
func EventNames(platform models.Platform, prefix string) (*Query, error) {
	db, err := platformDatabase(prefix, platform)
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf(`SELECT DISTINCT event_name
FROM %s.%s
ORDER BY event_name`, db, eventTable)

	return &Query{SQL: sql}, nil
}
