package models

// ColumnQuality describes one checked column of the derived table. The
// numeric summary fields are nil for non-numeric columns and for columns that
// are entirely absent.
type ColumnQuality struct {
	Present        bool     `json:"present"`
	MissingCount   int      `json:"missing_count,omitempty"`
	MissingPercent float64  `json:"missing_percent,omitempty"`
	Dtype          string   `json:"dtype,omitempty"`
	Min            *float64 `json:"min,omitempty"`
	Max            *float64 `json:"max,omitempty"`
	Mean           *float64 `json:"mean,omitempty"`
	Std            *float64 `json:"std,omitempty"`
	OutliersCount  *int     `json:"outliers_count,omitempty"`
}

// QualityReport summarizes data-quality problems in a derived table. The
// issues list is free text for the dashboard; everything machine-readable is
// in the structured fields.
type QualityReport struct {
	TotalRows         int                      `json:"total_rows"`
	Columns           map[string]ColumnQuality `json:"columns"`
	Issues            []string                 `json:"issues"`
	GroupDistribution map[int]int              `json:"group_distribution,omitempty"`
	DuplicateSessions int                      `json:"duplicate_sessions,omitempty"`
}

// DatasetSummary carries the monitoring headline numbers.
type DatasetSummary struct {
	TotalSessions         int            `json:"total_sessions"`
	CompletedSessions     int            `json:"completed_sessions"`
	CompletionRate        float64        `json:"completion_rate"`
	DebugSessions         int            `json:"debug_sessions"`
	WithExplicitGroup     int            `json:"with_explicit_group"`
	WithReconstructed     int            `json:"with_reconstructed_group"`
	GroupDistribution     map[int]int    `json:"group_distribution"`
	SessionsPerDay        map[string]int `json:"sessions_per_day"`
	AvgSessionDurationSec *float64       `json:"avg_session_duration_sec"`
}
