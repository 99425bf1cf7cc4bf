package processing

import "lumiere/api/models"

// ExtractGroupSignals scans one session's event log for condition-revealing
// evidence. First occurrence wins for the gallery-view and scroll-to-bottom
// timestamps; for group_assigned the last occurrence wins (more than one is
// anomalous, and a later assignment supersedes an earlier one).
func ExtractGroupSignals(events []models.Event) models.GroupSignals {
	var s models.GroupSignals

	products := make(map[int]struct{})
	exclusive := make(map[int]struct{})

	for _, ev := range events {
		switch ev.Type() {
		case models.EventARStart, models.EventAREnd:
			s.HasAREvents = true
			s.AREventCount++

		case models.EventView, models.EventCartAddDetail, models.EventCartAddGallery, models.EventCartRemove:
			if id, ok := ev.ProductID(); ok {
				products[id] = struct{}{}
				if HighVarietyExclusive[id] {
					exclusive[id] = struct{}{}
					s.HasHighVarietyExclusive = true
				}
			}

		case models.EventViewPage:
			if ev.Page() == "gallery" && s.GalleryViewTime == nil {
				ts := ev.Timestamp()
				s.GalleryViewTime = &ts
			}

		case models.EventScrollToBottom:
			if s.ScrollToBottomTime == nil {
				ts := ev.Timestamp()
				s.ScrollToBottomTime = &ts
			}

		case models.EventGroupAssigned:
			if v, ok := ev.GroupValue(); ok {
				g := v
				s.GroupFromEvent = &g
			}
		}
	}

	s.UniqueProductsViewed = sortedIDs(products)
	s.HighVarietyExclusiveProducts = sortedIDs(exclusive)

	if s.GalleryViewTime != nil && s.ScrollToBottomTime != nil {
		sec := (*s.ScrollToBottomTime - *s.GalleryViewTime) / 1000
		s.ScrollTimeAfterGallery = &sec
	}
	return s
}
