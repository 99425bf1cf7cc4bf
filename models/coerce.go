package models

import (
	"encoding/json"
	"strconv"
)

// Loose-document coercion helpers. Session documents carry no schema, so the
// same field can show up as float64 (JSON), int64 (driver), json.Number, or a
// numeric string. ok is false when the value is absent or unconvertible.

func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	case string:
		if n == "" {
			return 0, false
		}
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}
