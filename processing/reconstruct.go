package processing

import "lumiere/api/models"

// Reconstruction method tags.
const (
	MethodOriginal        = "original"
	MethodExplicitEvent   = "explicit_event"
	MethodARWithExclusive = "ar_events + high_variety_products"
	MethodARNoExclusive   = "ar_events + no_high_variety"
	MethodExclusiveNoAR   = "high_variety_products + no_ar"
	MethodProductCount    = "product_count_heuristic"
	MethodScrollFast      = "scroll_timing_fast"
	MethodScrollSlow      = "scroll_timing_slow"
	MethodInsufficient    = "insufficient_signals"
)

// Heuristic parameters from the study design. Tunable, not derived; changing
// them changes which sessions get a reconstructed label.
const (
	confARProducts    = 0.9
	confAROnly        = 0.7
	confProductCount  = 0.8
	confScrollFast    = 0.6
	confScrollSlow    = 0.5
	productCountFloor = 5   // strictly more than this many distinct products implies high variety
	scrollFastSec     = 3.0 // full gallery scroll faster than this implies the short catalog
	scrollSlowSec     = 6.0 // slower than this implies the long catalog
)

// ReconstructGroup infers a condition label from extracted signals via a
// priority-ordered rule cascade: the first matching rule wins, so a weak
// behavioral proxy can never override a near-deterministic fingerprint like
// AR activity or exclusive-product exposure.
func ReconstructGroup(s models.GroupSignals) models.Reconstruction {
	if s.GroupFromEvent != nil {
		return verdict(*s.GroupFromEvent, MethodExplicitEvent, 1.0)
	}
	if s.HasAREvents && s.HasHighVarietyExclusive {
		return verdict(4, MethodARWithExclusive, 1.0)
	}
	if s.HasAREvents {
		// AR alone with zero product interaction is a weaker signal.
		if len(s.UniqueProductsViewed) > 0 {
			return verdict(2, MethodARNoExclusive, confARProducts)
		}
		return verdict(2, MethodARNoExclusive, confAROnly)
	}
	if s.HasHighVarietyExclusive {
		return verdict(3, MethodExclusiveNoAR, 1.0)
	}
	if len(s.UniqueProductsViewed) > productCountFloor {
		return verdict(3, MethodProductCount, confProductCount)
	}
	if s.ScrollTimeAfterGallery != nil {
		if *s.ScrollTimeAfterGallery < scrollFastSec {
			return verdict(1, MethodScrollFast, confScrollFast)
		}
		if *s.ScrollTimeAfterGallery > scrollSlowSec {
			return verdict(3, MethodScrollSlow, confScrollSlow)
		}
	}
	return models.Reconstruction{Method: MethodInsufficient, Confidence: 0}
}

// ResolveGroup merges the explicit runtime label with the cascade output.
// An explicit label always wins and is tagged "original"; the cascade result
// is still reported separately for audit.
func ResolveGroup(explicit *int, recon models.Reconstruction) (group *int, method string, confidence float64) {
	if explicit != nil {
		return explicit, MethodOriginal, 1.0
	}
	return recon.Group, recon.Method, recon.Confidence
}

func verdict(group int, method string, confidence float64) models.Reconstruction {
	g := group
	return models.Reconstruction{Group: &g, Method: method, Confidence: confidence}
}
