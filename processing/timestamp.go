package processing

import (
	"time"

	"lumiere/api/models"
)

// NormalizeTimestamp converts a timestamp field from a session document into
// Unix epoch seconds. Three shapes are accepted: the document store's map
// encoding (seconds/nanoseconds under short or underscore-prefixed keys), a
// native time.Time, and nil. Anything else degrades to nil; this never
// panics, whatever the input.
func NormalizeTimestamp(v any) *float64 {
	switch ts := v.(type) {
	case nil:
		return nil
	case map[string]any:
		seconds := mapNumber(ts, "_seconds", "seconds")
		nanos := mapNumber(ts, "_nanoseconds", "nanoseconds")
		epoch := seconds + nanos/1e9
		return &epoch
	case time.Time:
		epoch := float64(ts.UnixNano()) / 1e9
		return &epoch
	case *time.Time:
		if ts == nil {
			return nil
		}
		epoch := float64(ts.UnixNano()) / 1e9
		return &epoch
	default:
		return nil
	}
}

// mapNumber reads the first of the given keys that coerces to a number,
// defaulting to 0 like the upstream writer does for half-filled timestamps.
func mapNumber(m map[string]any, keys ...string) float64 {
	for _, key := range keys {
		if raw, ok := m[key]; ok {
			if f, ok := models.AsFloat(raw); ok {
				return f
			}
		}
	}
	return 0
}
