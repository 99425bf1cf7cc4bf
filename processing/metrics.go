package processing

import (
	"sort"

	"lumiere/api/models"
)

// ExtractEventMetrics computes the aggregate behavioral metrics for one
// session in a single forward scan of its event log. An empty or nil log
// yields the zero-value metrics record: counters at 0, averages and dwell
// times absent, scrolled_to_bottom false.
func ExtractEventMetrics(events []models.Event) models.EventMetrics {
	var m models.EventMetrics

	products := make(map[int]struct{})
	var arDurations []float64

	// Dwell-time state: the page currently open and when it was entered.
	// A view_page to anything other than gallery/detail closes both
	// intervals without attributing time.
	var galleryStart, detailStart *float64
	var galleryTime, detailTime float64
	lastPage := ""

	for _, ev := range events {
		switch ev.Type() {
		case models.EventViewPage:
			m.PageViews++
			ts := ev.Timestamp()
			if lastPage == "gallery" && galleryStart != nil {
				galleryTime += ts - *galleryStart
			} else if lastPage == "detail" && detailStart != nil {
				detailTime += ts - *detailStart
			}
			page := ev.Page()
			switch page {
			case "gallery":
				galleryStart = &ts
			case "detail":
				detailStart = &ts
			default:
				galleryStart = nil
				detailStart = nil
			}
			lastPage = page

		case models.EventView:
			if id, ok := ev.ProductID(); ok {
				products[id] = struct{}{}
			}

		case models.EventAREnd:
			m.ARSessionCount++
			if d := ev.DurationMs(); d > 0 {
				arDurations = append(arDurations, d/1000)
				m.TotalARTimeSec += d / 1000
			}
			m.TotalARRotations += ev.Rotations()
			m.TotalARZooms += ev.Zooms()

		case models.EventCartAddDetail, models.EventCartAddGallery:
			m.CartAdditions++
			if id, ok := ev.ProductID(); ok {
				products[id] = struct{}{}
			}

		case models.EventCartRemove:
			m.CartRemovals++
			if id, ok := ev.ProductID(); ok {
				products[id] = struct{}{}
			}

		case models.EventScrollToBottom:
			m.ScrolledToBottom = true
		}
	}

	m.UniqueProductsViewed = len(products)
	if len(arDurations) > 0 {
		var sum float64
		for _, d := range arDurations {
			sum += d
		}
		avg := sum / float64(len(arDurations))
		m.AvgARDurationSec = &avg
	}
	// nil distinguishes "no visits" from "instant visits": only accumulated
	// time converts to a value.
	if galleryTime > 0 {
		sec := galleryTime / 1000
		m.TimeOnGallerySec = &sec
	}
	if detailTime > 0 {
		sec := detailTime / 1000
		m.TimeOnDetailSec = &sec
	}
	return m
}

func sortedIDs(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
