package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumiere/api/models"
)

func TestSummarize(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		summary := Summarize(nil)

		assert.Zero(t, summary.TotalSessions)
		assert.Zero(t, summary.CompletionRate)
		assert.Nil(t, summary.AvgSessionDurationSec)
		assert.Empty(t, summary.GroupDistribution)
	})

	t.Run("headline numbers", func(t *testing.T) {
		day := float64(1700000000) // 2023-11-14 UTC
		rows := []models.Row{
			{SessionID: strPtr("a"), Group: intPtr(1), GroupFinal: intPtr(1), IsCompleted: true, StartedAt: &day, SessionDurationSec: f64Ptr(100)},
			{SessionID: strPtr("b"), GroupReconstructed: intPtr(2), GroupFinal: intPtr(2), StartedAt: &day, SessionDurationSec: f64Ptr(300)},
			{SessionID: strPtr("c"), DebugMode: true},
			{SessionID: strPtr("d"), Group: intPtr(1), GroupFinal: intPtr(1), IsCompleted: true},
		}

		summary := Summarize(rows)

		assert.Equal(t, 4, summary.TotalSessions)
		assert.Equal(t, 2, summary.CompletedSessions)
		assert.InDelta(t, 0.5, summary.CompletionRate, 1e-9)
		assert.Equal(t, 1, summary.DebugSessions)
		assert.Equal(t, 2, summary.WithExplicitGroup)
		assert.Equal(t, 1, summary.WithReconstructed)
		assert.Equal(t, 2, summary.GroupDistribution[1])
		assert.Equal(t, 1, summary.GroupDistribution[2])
		assert.Equal(t, 2, summary.SessionsPerDay["2023-11-14"])
		require.NotNil(t, summary.AvgSessionDurationSec)
		assert.InDelta(t, 200, *summary.AvgSessionDurationSec, 1e-9)
	})
}
