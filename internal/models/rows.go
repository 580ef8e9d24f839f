package models

import (
	"time"
)

// Participation group labels emitted by the participation query.
const (
	GroupParticipant    = "Event Participant"
	GroupNonParticipant = "Non-Participant"
)

// ParticipationRow is one (day, group) slice of the participation result.
// Field order matches the SELECT list of the participation query; the
// executor scans by that declared order, not by guessed column names.
type ParticipationRow struct {
	CreatedDay            time.Time `json:"created_day"`
	ParticipationGroup    string    `json:"participation_group"`
	TotalUsers            uint64    `json:"group_total_users"`
	PayingUsers           uint64    `json:"paying_users"`
	PurchaseCount         uint64    `json:"purchase_count"`
	TotalRevenue          float64   `json:"total_revenue"`
	Revenue25thPercentile float64   `json:"revenue_25th_percentile"`
	RevenueMedian         float64   `json:"revenue_median"`
	Revenue75thPercentile float64   `json:"revenue_75th_percentile"`
	Revenue90thPercentile float64   `json:"revenue_90th_percentile"`
	FirstTimePayers       uint64    `json:"first_time_payers"`
	ConversionRate        float64   `json:"conversion_rate"`
	PayRate               float64   `json:"pay_rate"`
	ARPU                  float64   `json:"arpu"`
	ARPPU                 float64   `json:"arppu"`
}

// EngagementRow is one day of event interaction metrics.
type EngagementRow struct {
	CreatedDay                time.Time `json:"created_day"`
	UniqueUsers               uint64    `json:"unique_users"`
	TotalInteractions         uint64    `json:"total_interactions"`
	AvgInteractionsPerUser    float64   `json:"avg_interactions_per_user"`
	UniqueSessions            uint64    `json:"unique_sessions"`
	AvgInteractionsPerSession float64   `json:"avg_interactions_per_session"`
}

// AnalysisSummary holds the roll-up tiles shown above the tables.
type AnalysisSummary struct {
	ParticipationRate float64 `json:"participation_rate"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalEngagement   uint64  `json:"total_engagement"`
}
