package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumiere/api/models"
)

func analysisRow(group int, duration float64) models.Row {
	g := group
	d := duration
	row := models.Row{GroupFinal: &g, SessionDurationSec: &d}
	if variety := "low"; group >= 3 {
		variety = "high"
		row.Variety = &variety
	} else {
		row.Variety = &variety
	}
	ar := group == 2 || group == 4
	row.AREnabled = &ar
	return row
}

func TestAnalyze(t *testing.T) {
	t.Run("unknown dependent variable", func(t *testing.T) {
		_, err := Analyze(nil, "no_such_column")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no_such_column")
	})

	t.Run("full analysis over four conditions", func(t *testing.T) {
		var rows []models.Row
		base := map[int]float64{1: 100, 2: 200, 3: 300, 4: 400}
		for group, mean := range base {
			for _, offset := range []float64{-10, -5, 0, 5, 10} {
				rows = append(rows, analysisRow(group, mean+offset))
			}
		}

		analysis, err := Analyze(rows, "session_duration_sec")
		require.NoError(t, err)

		assert.Equal(t, "session_duration_sec", analysis.DV)
		assert.Equal(t, 20, analysis.Overall.N)
		require.Len(t, analysis.ByGroup, 4)
		assert.Equal(t, 1, analysis.ByGroup[0].Group)
		assert.InDelta(t, 100, analysis.ByGroup[0].Mean, 1e-9)
		assert.Equal(t, 4, analysis.ByGroup[3].Group)
		assert.InDelta(t, 400, analysis.ByGroup[3].Mean, 1e-9)

		require.Len(t, analysis.Comparisons, 2)
		assert.Equal(t, "Low vs High Variety", analysis.Comparisons[0].Label)
		assert.Less(t, analysis.Comparisons[0].P, 0.001)

		require.NotNil(t, analysis.ANOVA)
		assert.Less(t, analysis.ANOVA.P, 0.001)
	})

	t.Run("rows without values are skipped", func(t *testing.T) {
		rows := []models.Row{
			analysisRow(1, 100),
			{}, // no group, no duration
		}
		analysis, err := Analyze(rows, "session_duration_sec")
		require.NoError(t, err)
		assert.Equal(t, 1, analysis.Overall.N)
		assert.Nil(t, analysis.ANOVA)
	})
}
