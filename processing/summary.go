package processing

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"lumiere/api/models"
)

// Summarize computes the monitoring headline numbers for a derived table:
// totals, completion rate, group coverage, the group distribution, and a
// sessions-per-day timeline keyed by UTC date.
func Summarize(rows []models.Row) models.DatasetSummary {
	summary := models.DatasetSummary{
		TotalSessions:     len(rows),
		GroupDistribution: make(map[int]int),
		SessionsPerDay:    make(map[string]int),
	}

	var durations []float64
	for _, row := range rows {
		if row.IsCompleted {
			summary.CompletedSessions++
		}
		if row.DebugMode {
			summary.DebugSessions++
		}
		if row.Group != nil {
			summary.WithExplicitGroup++
		} else if row.GroupReconstructed != nil {
			summary.WithReconstructed++
		}
		if row.GroupFinal != nil {
			summary.GroupDistribution[*row.GroupFinal]++
		}
		if row.StartedAt != nil {
			day := time.Unix(int64(*row.StartedAt), 0).UTC().Format("2006-01-02")
			summary.SessionsPerDay[day]++
		}
		if row.SessionDurationSec != nil {
			durations = append(durations, *row.SessionDurationSec)
		}
	}

	if summary.TotalSessions > 0 {
		summary.CompletionRate = float64(summary.CompletedSessions) / float64(summary.TotalSessions)
	}
	if len(durations) > 0 {
		avg := stat.Mean(durations, nil)
		summary.AvgSessionDurationSec = &avg
	}
	return summary
}
