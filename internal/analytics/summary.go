package analytics

import (
	"github.com/your-username/game-event-analytics/internal/models"
)

// Ratio is the guarded division used for every derived rate in this package:
// a zero denominator yields 0, never an error.
func Ratio(num, denom float64) float64 {
	if denom == 0 {
		return 0
	}
	return num / denom
}

// OverallParticipationRate is the participant share of all eligible users
// across the whole table. Empty tables yield 0.
func OverallParticipationRate(rows []models.ParticipationRow) float64 {
	var participants, total float64
	for _, r := range rows {
		if r.ParticipationGroup == models.GroupParticipant {
			participants += float64(r.TotalUsers)
		}
		total += float64(r.TotalUsers)
	}
	return Ratio(participants, total)
}

// OverallRevenue sums revenue attributed to event participants.
func OverallRevenue(rows []models.ParticipationRow) float64 {
	var revenue float64
	for _, r := range rows {
		if r.ParticipationGroup == models.GroupParticipant {
			revenue += r.TotalRevenue
		}
	}
	return revenue
}

// TotalEngagement sums interactions across all engagement rows.
func TotalEngagement(rows []models.EngagementRow) uint64 {
	var total uint64
	for _, r := range rows {
		total += r.TotalInteractions
	}
	return total
}

// Summarize derives the roll-up tiles from both result tables. Either table
// may be nil or empty; the summary is total over whatever is present.
func Summarize(participation []models.ParticipationRow, engagement []models.EngagementRow) models.AnalysisSummary {
	return models.AnalysisSummary{
		ParticipationRate: OverallParticipationRate(participation),
		TotalRevenue:      OverallRevenue(participation),
		TotalEngagement:   TotalEngagement(engagement),
	}
}
