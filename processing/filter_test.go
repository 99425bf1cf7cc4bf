package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lumiere/api/models"
)

func TestFilterRows(t *testing.T) {
	rows := []models.Row{
		{SessionID: strPtr("debug"), DebugMode: true, CompletedAt: f64Ptr(100), SessionDurationSec: f64Ptr(100)},
		{SessionID: strPtr("short"), CompletedAt: f64Ptr(100), SessionDurationSec: f64Ptr(30)},
		{SessionID: strPtr("long"), CompletedAt: f64Ptr(100), SessionDurationSec: f64Ptr(5000)},
		{SessionID: strPtr("incomplete"), PID: strPtr("p-9")},
		{SessionID: strPtr("normal"), PID: strPtr("p-1"), CompletedAt: f64Ptr(100), SessionDurationSec: f64Ptr(400)},
	}

	ids := func(rows []models.Row) []string {
		var out []string
		for _, r := range rows {
			out = append(out, *r.SessionID)
		}
		return out
	}

	t.Run("no criteria keeps everything", func(t *testing.T) {
		kept := FilterRows(rows, FilterOptions{})
		assert.Len(t, kept, len(rows))
	})

	t.Run("debug exclusion", func(t *testing.T) {
		kept := FilterRows(rows, FilterOptions{ExcludeDebug: true})
		assert.NotContains(t, ids(kept), "debug")
		assert.Len(t, kept, 4)
	})

	t.Run("incomplete exclusion", func(t *testing.T) {
		kept := FilterRows(rows, FilterOptions{ExcludeIncomplete: true})
		assert.NotContains(t, ids(kept), "incomplete")
	})

	t.Run("pid exclusion", func(t *testing.T) {
		kept := FilterRows(rows, FilterOptions{ExcludePIDs: []string{"p-9"}})
		assert.NotContains(t, ids(kept), "incomplete")
	})

	t.Run("duration bounds drop unknown durations", func(t *testing.T) {
		kept := FilterRows(rows, FilterOptions{
			MinSessionDurationSec: f64Ptr(60),
			MaxSessionDurationSec: f64Ptr(1000),
		})
		assert.ElementsMatch(t, []string{"debug", "normal"}, ids(kept))
	})

	t.Run("input is untouched", func(t *testing.T) {
		_ = FilterRows(rows, FilterOptions{ExcludeDebug: true})
		assert.Len(t, rows, 5)
	})
}
