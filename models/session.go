package models

// RawSession is a session document exactly as it comes out of the document
// store: a nested key-value structure with no schema enforced upstream. Keys
// may be absent and values may be null; all reads go through defensive
// coercion in the processing package.
type RawSession = map[string]any

// GroupSignals is the condition-revealing evidence extracted from one
// session's event log. It feeds the reconstruction cascade and the per-session
// debug view; it is not a column of the derived table.
type GroupSignals struct {
	HasAREvents                  bool     `json:"has_ar_events"`
	AREventCount                 int      `json:"ar_event_count"`
	HasHighVarietyExclusive      bool     `json:"has_high_variety_exclusive"`
	HighVarietyExclusiveProducts []int    `json:"high_variety_exclusive_products"`
	UniqueProductsViewed         []int    `json:"unique_products_viewed"`
	GalleryViewTime              *float64 `json:"gallery_view_time"`
	ScrollToBottomTime           *float64 `json:"scroll_to_bottom_time"`
	ScrollTimeAfterGallery       *float64 `json:"scroll_time_after_gallery"`
	GroupFromEvent               *int     `json:"group_from_event"`
}

// Reconstruction is the cascade's verdict for one session.
type Reconstruction struct {
	Group      *int    `json:"group"`
	Method     string  `json:"method"`
	Confidence float64 `json:"confidence"`
}

// EventMetrics are the aggregate behavioral metrics computed from one
// session's event log. The zero value is the defined default for a session
// with no events.
type EventMetrics struct {
	TotalARTimeSec       float64  `json:"total_ar_time_sec"`
	ARSessionCount       int      `json:"ar_session_count"`
	UniqueProductsViewed int      `json:"unique_products_viewed"`
	CartAdditions        int      `json:"cart_additions"`
	CartRemovals         int      `json:"cart_removals"`
	PageViews            int      `json:"page_views"`
	AvgARDurationSec     *float64 `json:"avg_ar_duration_sec"`
	TotalARRotations     int      `json:"total_ar_rotations"`
	TotalARZooms         int      `json:"total_ar_zooms"`
	TimeOnGallerySec     *float64 `json:"time_on_gallery_sec"`
	TimeOnDetailSec      *float64 `json:"time_on_detail_sec"`
	ScrolledToBottom     bool     `json:"scrolled_to_bottom"`
}
