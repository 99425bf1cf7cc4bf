package processing

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"lumiere/api/models"
)

// ExportOptions controls CSV serialization. Events and the final cart can be
// arbitrarily large per row, so they are dropped unless explicitly requested.
type ExportOptions struct {
	IncludeEvents bool
}

var exportColumns = []string{
	"session_id",
	"doc_id",
	"pid",
	"started_at",
	"completed_at",
	"consented_at",
	"group_assigned_at",
	"survey_submitted_at",
	"consented",
	"debug_mode",
	"device_type",
	"ar_supported",
	"locale",
	"timezone",
	"group",
	"group_reconstructed",
	"group_final",
	"reconstruction_method",
	"reconstruction_confidence",
	"group_assignment_status",
	"events",
	"final_cart",
	"final_cart_count",
	"has_survey_final",
	"total_ar_time_sec",
	"ar_session_count",
	"unique_products_viewed",
	"cart_additions",
	"cart_removals",
	"page_views",
	"avg_ar_duration_sec",
	"total_ar_rotations",
	"total_ar_zooms",
	"time_on_gallery_sec",
	"time_on_detail_sec",
	"scrolled_to_bottom",
	"variety",
	"ar_enabled",
	"session_duration_sec",
	"time_to_survey_sec",
	"is_completed",
	"has_survey",
}

// ExportCSV serializes a derived table. Fixed columns come first in a stable
// order; the union of per-row survey_* columns follows, sorted by name.
// Absent values become empty cells.
func ExportCSV(rows []models.Row, opts ExportOptions) (string, error) {
	columns := make([]string, 0, len(exportColumns))
	for _, col := range exportColumns {
		if !opts.IncludeEvents && (col == "events" || col == "final_cart") {
			continue
		}
		columns = append(columns, col)
	}

	surveySet := make(map[string]bool)
	for _, row := range rows {
		for key := range row.Survey {
			surveySet[key] = true
		}
	}
	surveyColumns := make([]string, 0, len(surveySet))
	for key := range surveySet {
		surveyColumns = append(surveyColumns, key)
	}
	sort.Strings(surveyColumns)

	var out strings.Builder
	w := csv.NewWriter(&out)
	if err := w.Write(append(append([]string{}, columns...), surveyColumns...)); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, 0, len(columns)+len(surveyColumns))
	for _, row := range rows {
		record = record[:0]
		for _, col := range columns {
			record = append(record, formatCell(cellValue(row, col)))
		}
		for _, col := range surveyColumns {
			record = append(record, formatCell(row.Survey[col]))
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return out.String(), nil
}

func cellValue(row models.Row, column string) any {
	switch column {
	case "session_id":
		return ptrVal(row.SessionID)
	case "doc_id":
		return ptrVal(row.DocID)
	case "pid":
		return ptrVal(row.PID)
	case "started_at":
		return ptrVal(row.StartedAt)
	case "completed_at":
		return ptrVal(row.CompletedAt)
	case "consented_at":
		return ptrVal(row.ConsentedAt)
	case "group_assigned_at":
		return ptrVal(row.GroupAssignedAt)
	case "survey_submitted_at":
		return ptrVal(row.SurveySubmittedAt)
	case "consented":
		return row.Consented
	case "debug_mode":
		return row.DebugMode
	case "device_type":
		return ptrVal(row.DeviceType)
	case "ar_supported":
		return ptrVal(row.ARSupported)
	case "locale":
		return ptrVal(row.Locale)
	case "timezone":
		return ptrVal(row.Timezone)
	case "group":
		return ptrVal(row.Group)
	case "group_reconstructed":
		return ptrVal(row.GroupReconstructed)
	case "group_final":
		return ptrVal(row.GroupFinal)
	case "reconstruction_method":
		return row.ReconstructionMethod
	case "reconstruction_confidence":
		return row.ReconstructionConfidence
	case "group_assignment_status":
		return ptrVal(row.GroupAssignmentStatus)
	case "events":
		return row.Events
	case "final_cart":
		return row.FinalCart
	case "final_cart_count":
		return row.FinalCartCount
	case "has_survey_final":
		return row.HasSurveyFinal
	case "total_ar_time_sec":
		return row.TotalARTimeSec
	case "ar_session_count":
		return row.ARSessionCount
	case "unique_products_viewed":
		return row.UniqueProductsViewed
	case "cart_additions":
		return row.CartAdditions
	case "cart_removals":
		return row.CartRemovals
	case "page_views":
		return row.PageViews
	case "avg_ar_duration_sec":
		return ptrVal(row.AvgARDurationSec)
	case "total_ar_rotations":
		return row.TotalARRotations
	case "total_ar_zooms":
		return row.TotalARZooms
	case "time_on_gallery_sec":
		return ptrVal(row.TimeOnGallerySec)
	case "time_on_detail_sec":
		return ptrVal(row.TimeOnDetailSec)
	case "scrolled_to_bottom":
		return row.ScrolledToBottom
	case "variety":
		return ptrVal(row.Variety)
	case "ar_enabled":
		return ptrVal(row.AREnabled)
	case "session_duration_sec":
		return ptrVal(row.SessionDurationSec)
	case "time_to_survey_sec":
		return ptrVal(row.TimeToSurveySec)
	case "is_completed":
		return row.IsCompleted
	case "has_survey":
		return row.HasSurvey
	default:
		return nil
	}
}

func ptrVal[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func formatCell(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
