package processing

import "lumiere/api/models"

// NumericColumns lists the derived-table columns that can serve as a
// dependent variable in statistics and quality checks.
var NumericColumns = []string{
	"session_duration_sec",
	"time_to_survey_sec",
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
	"final_cart_count",
	"reconstruction_confidence",
}

// IsNumericColumn reports whether name is a known numeric column.
func IsNumericColumn(name string) bool {
	for _, col := range NumericColumns {
		if col == name {
			return true
		}
	}
	return false
}

// NumericValue reads the named numeric column from a row; nil means the value
// is absent for that session. Unknown names read as absent.
func NumericValue(row models.Row, column string) *float64 {
	switch column {
	case "session_duration_sec":
		return row.SessionDurationSec
	case "time_to_survey_sec":
		return row.TimeToSurveySec
	case "total_ar_time_sec":
		return floatPtr(row.TotalARTimeSec)
	case "ar_session_count":
		return floatPtr(float64(row.ARSessionCount))
	case "unique_products_viewed":
		return floatPtr(float64(row.UniqueProductsViewed))
	case "cart_additions":
		return floatPtr(float64(row.CartAdditions))
	case "cart_removals":
		return floatPtr(float64(row.CartRemovals))
	case "page_views":
		return floatPtr(float64(row.PageViews))
	case "avg_ar_duration_sec":
		return row.AvgARDurationSec
	case "total_ar_rotations":
		return floatPtr(float64(row.TotalARRotations))
	case "total_ar_zooms":
		return floatPtr(float64(row.TotalARZooms))
	case "time_on_gallery_sec":
		return row.TimeOnGallerySec
	case "time_on_detail_sec":
		return row.TimeOnDetailSec
	case "final_cart_count":
		return floatPtr(float64(row.FinalCartCount))
	case "reconstruction_confidence":
		return floatPtr(row.ReconstructionConfidence)
	default:
		return nil
	}
}

func floatPtr(f float64) *float64 { return &f }
