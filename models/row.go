package models

// Row is one flattened session of the derived table: every input field plus
// the reconstruction output and derived variables. Optional values are
// pointers; nil means absent, which the CSV exporter renders as an empty cell.
// Timestamps are Unix epoch seconds.
type Row struct {
	SessionID *string `json:"session_id"`
	DocID     *string `json:"doc_id"`
	PID       *string `json:"pid"`

	StartedAt         *float64 `json:"started_at"`
	CompletedAt       *float64 `json:"completed_at"`
	ConsentedAt       *float64 `json:"consented_at"`
	GroupAssignedAt   *float64 `json:"group_assigned_at"`
	SurveySubmittedAt *float64 `json:"survey_submitted_at"`

	Consented   bool    `json:"consented"`
	DebugMode   bool    `json:"debug_mode"`
	DeviceType  *string `json:"device_type"`
	ARSupported *bool   `json:"ar_supported"`
	Locale      *string `json:"locale"`
	Timezone    *string `json:"timezone"`

	// Group is the explicit condition label assigned at runtime, when the
	// document carried one. GroupFinal is Group when present, otherwise
	// GroupReconstructed.
	Group                    *int    `json:"group"`
	GroupReconstructed       *int    `json:"group_reconstructed"`
	GroupFinal               *int    `json:"group_final"`
	ReconstructionMethod     string  `json:"reconstruction_method"`
	ReconstructionConfidence float64 `json:"reconstruction_confidence"`
	GroupAssignmentStatus    *string `json:"group_assignment_status"`

	// Events and FinalCart can be arbitrarily large per row; they are kept
	// for export control but never serialized in API responses.
	Events         []Event `json:"-"`
	FinalCart      []any   `json:"-"`
	FinalCartCount int     `json:"final_cart_count"`

	// Survey holds the flattened survey_final answers, keyed survey_<question>.
	Survey         map[string]any `json:"survey,omitempty"`
	HasSurveyFinal bool           `json:"has_survey_final"`

	EventMetrics

	Variety            *string  `json:"variety"`
	AREnabled          *bool    `json:"ar_enabled"`
	SessionDurationSec *float64 `json:"session_duration_sec"`
	TimeToSurveySec    *float64 `json:"time_to_survey_sec"`
	IsCompleted        bool     `json:"is_completed"`
	HasSurvey          bool     `json:"has_survey"`
}
