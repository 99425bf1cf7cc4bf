package processing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTimestamp(t *testing.T) {
	t.Run("prefixed map keys", func(t *testing.T) {
		got := NormalizeTimestamp(map[string]any{
			"_seconds":     float64(1700000000),
			"_nanoseconds": float64(500000000),
		})
		require.NotNil(t, got)
		assert.InDelta(t, 1700000000.5, *got, 1e-9)
	})

	t.Run("short map keys", func(t *testing.T) {
		got := NormalizeTimestamp(map[string]any{
			"seconds":     float64(1700000000),
			"nanoseconds": float64(250000000),
		})
		require.NotNil(t, got)
		assert.InDelta(t, 1700000000.25, *got, 1e-9)
	})

	t.Run("prefixed keys win over short keys", func(t *testing.T) {
		got := NormalizeTimestamp(map[string]any{
			"_seconds": float64(100),
			"seconds":  float64(999),
		})
		require.NotNil(t, got)
		assert.InDelta(t, 100, *got, 1e-9)
	})

	t.Run("integer-typed seconds", func(t *testing.T) {
		got := NormalizeTimestamp(map[string]any{"_seconds": int64(1700000000)})
		require.NotNil(t, got)
		assert.InDelta(t, 1700000000, *got, 1e-9)
	})

	t.Run("native time", func(t *testing.T) {
		ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		got := NormalizeTimestamp(ts)
		require.NotNil(t, got)
		assert.InDelta(t, float64(ts.Unix()), *got, 1e-9)
	})

	t.Run("nil is missing", func(t *testing.T) {
		assert.Nil(t, NormalizeTimestamp(nil))
	})

	t.Run("unrecognized shapes degrade to missing", func(t *testing.T) {
		assert.Nil(t, NormalizeTimestamp("2025-01-02T03:04:05Z"))
		assert.Nil(t, NormalizeTimestamp(42))
		assert.Nil(t, NormalizeTimestamp([]any{1, 2}))
	})

	t.Run("half-filled map defaults the other part to zero", func(t *testing.T) {
		got := NormalizeTimestamp(map[string]any{"_nanoseconds": float64(500000000)})
		require.NotNil(t, got)
		assert.InDelta(t, 0.5, *got, 1e-9)
	})
}
