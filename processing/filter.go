package processing

import "lumiere/api/models"

// FilterOptions selects which sessions stay in the analysis set. Duration
// bounds only keep rows whose duration is known and inside the bound; a row
// with no measurable duration cannot satisfy a bound.
type FilterOptions struct {
	ExcludeDebug          bool
	ExcludeIncomplete     bool
	ExcludePIDs           []string
	MinSessionDurationSec *float64
	MaxSessionDurationSec *float64
}

// FilterRows returns a new slice with the sessions that pass every enabled
// criterion. The input slice is not modified.
func FilterRows(rows []models.Row, opts FilterOptions) []models.Row {
	excluded := make(map[string]bool, len(opts.ExcludePIDs))
	for _, pid := range opts.ExcludePIDs {
		excluded[pid] = true
	}

	kept := make([]models.Row, 0, len(rows))
	for _, row := range rows {
		if opts.ExcludeDebug && row.DebugMode {
			continue
		}
		if opts.ExcludeIncomplete && row.CompletedAt == nil {
			continue
		}
		if row.PID != nil && excluded[*row.PID] {
			continue
		}
		if opts.MinSessionDurationSec != nil &&
			(row.SessionDurationSec == nil || *row.SessionDurationSec < *opts.MinSessionDurationSec) {
			continue
		}
		if opts.MaxSessionDurationSec != nil &&
			(row.SessionDurationSec == nil || *row.SessionDurationSec > *opts.MaxSessionDurationSec) {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}
