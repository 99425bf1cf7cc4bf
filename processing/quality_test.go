package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumiere/api/models"
)

func TestBuildQualityReport(t *testing.T) {
	t.Run("empty table reports every column as absent", func(t *testing.T) {
		report := BuildQualityReport(nil)

		assert.Zero(t, report.TotalRows)
		for name, col := range report.Columns {
			assert.False(t, col.Present, "column %s", name)
		}
		assert.Contains(t, report.Issues, "Missing column: group")
	})

	t.Run("column never populated is reported absent", func(t *testing.T) {
		rows := []models.Row{
			{SessionID: strPtr("a"), FinalCartCount: 1},
			{SessionID: strPtr("b"), FinalCartCount: 2},
		}
		report := BuildQualityReport(rows)

		assert.False(t, report.Columns["group"].Present)
		assert.Contains(t, report.Issues, "Missing column: group")
		assert.True(t, report.Columns["session_id"].Present)
	})

	t.Run("high missing rate is flagged above ten percent", func(t *testing.T) {
		rows := make([]models.Row, 10)
		for i := range rows {
			id := string(rune('a' + i))
			rows[i] = models.Row{SessionID: strPtr(id), PID: strPtr(id), GroupFinal: intPtr(1)}
		}
		rows[0].PID = nil
		rows[1].PID = nil

		report := BuildQualityReport(rows)
		assert.Contains(t, report.Issues, "High missing rate (20.0%) for pid")

		quality := report.Columns["pid"]
		assert.Equal(t, 2, quality.MissingCount)
		assert.InDelta(t, 20.0, quality.MissingPercent, 1e-9)
	})

	t.Run("numeric summary and outliers", func(t *testing.T) {
		rows := make([]models.Row, 20)
		for i := range rows {
			rows[i] = models.Row{SessionID: strPtr(string(rune('a' + i))), SessionDurationSec: f64Ptr(100)}
		}
		rows[0].SessionDurationSec = f64Ptr(102)
		// One extreme value against an otherwise tight distribution.
		rows[19].SessionDurationSec = f64Ptr(100000)

		report := BuildQualityReport(rows)
		quality := report.Columns["session_duration_sec"]
		require.True(t, quality.Present)
		require.NotNil(t, quality.Min)
		assert.InDelta(t, 100, *quality.Min, 1e-9)
		require.NotNil(t, quality.Max)
		assert.InDelta(t, 100000, *quality.Max, 1e-9)
		require.NotNil(t, quality.OutliersCount)
		assert.Equal(t, 1, *quality.OutliersCount)
	})

	t.Run("constant column has no outlier count", func(t *testing.T) {
		rows := []models.Row{
			{SessionID: strPtr("a"), SessionDurationSec: f64Ptr(50)},
			{SessionID: strPtr("b"), SessionDurationSec: f64Ptr(50)},
		}
		report := BuildQualityReport(rows)
		assert.Nil(t, report.Columns["session_duration_sec"].OutliersCount)
	})

	t.Run("duplicate session ids", func(t *testing.T) {
		rows := []models.Row{
			{SessionID: strPtr("dup")},
			{SessionID: strPtr("dup")},
			{SessionID: strPtr("other")},
		}
		report := BuildQualityReport(rows)

		assert.Equal(t, 1, report.DuplicateSessions)
		assert.Contains(t, report.Issues, "Found 1 duplicate session IDs")
	})

	t.Run("imbalanced groups", func(t *testing.T) {
		var rows []models.Row
		for i := 0; i < 10; i++ {
			rows = append(rows, models.Row{SessionID: strPtr(string(rune('a' + i))), GroupFinal: intPtr(1)})
		}
		rows = append(rows, models.Row{SessionID: strPtr("z"), GroupFinal: intPtr(2)})

		report := BuildQualityReport(rows)
		assert.Contains(t, report.Issues, "Imbalanced group distribution detected")
		assert.Equal(t, 10, report.GroupDistribution[1])
		assert.Equal(t, 1, report.GroupDistribution[2])
	})

	t.Run("balanced groups raise no imbalance issue", func(t *testing.T) {
		rows := []models.Row{
			{SessionID: strPtr("a"), GroupFinal: intPtr(1)},
			{SessionID: strPtr("b"), GroupFinal: intPtr(1)},
			{SessionID: strPtr("c"), GroupFinal: intPtr(2)},
		}
		report := BuildQualityReport(rows)
		assert.NotContains(t, report.Issues, "Imbalanced group distribution detected")
	})
}
