package stats

import (
	"fmt"

	"lumiere/api/models"
	"lumiere/api/processing"
)

// GroupDescriptives are the per-condition descriptives for one dependent
// variable.
type GroupDescriptives struct {
	Group int `json:"group"`
	Descriptives
}

// Comparison is one labeled two-sample test (variety low vs high, AR vs no
// AR) on a dependent variable.
type Comparison struct {
	Label  string `json:"label"`
	Effect string `json:"effect"`
	TTestResult
}

// Analysis bundles everything the analysis view shows for one dependent
// variable.
type Analysis struct {
	DV          string              `json:"dv"`
	ByGroup     []GroupDescriptives `json:"by_group"`
	Overall     Descriptives        `json:"overall"`
	Comparisons []Comparison        `json:"comparisons"`
	ANOVA       *ANOVAResult        `json:"anova,omitempty"`
}

// Analyze runs descriptives, the two factorial main-effect t-tests, and a
// one-way ANOVA across the four conditions for the named dependent variable.
// Comparisons without enough observations are skipped, not errored.
func Analyze(rows []models.Row, dv string) (Analysis, error) {
	if !processing.IsNumericColumn(dv) {
		return Analysis{}, fmt.Errorf("unknown dependent variable %q", dv)
	}

	analysis := Analysis{DV: dv}

	var overall []float64
	groupValues := make(map[int][]float64)
	var lowVariety, highVariety, arOn, arOff []float64
	for _, row := range rows {
		v := processing.NumericValue(row, dv)
		if v == nil {
			continue
		}
		overall = append(overall, *v)
		if row.GroupFinal != nil {
			groupValues[*row.GroupFinal] = append(groupValues[*row.GroupFinal], *v)
		}
		if row.Variety != nil {
			if *row.Variety == "low" {
				lowVariety = append(lowVariety, *v)
			} else {
				highVariety = append(highVariety, *v)
			}
		}
		if row.AREnabled != nil {
			if *row.AREnabled {
				arOn = append(arOn, *v)
			} else {
				arOff = append(arOff, *v)
			}
		}
	}

	analysis.Overall = Describe(overall)
	var anovaGroups [][]float64
	for group := 1; group <= 4; group++ {
		values := groupValues[group]
		if len(values) == 0 {
			continue
		}
		analysis.ByGroup = append(analysis.ByGroup, GroupDescriptives{
			Group:        group,
			Descriptives: Describe(values),
		})
		anovaGroups = append(anovaGroups, values)
	}

	comparisons := []struct {
		label string
		a, b  []float64
	}{
		{"Low vs High Variety", lowVariety, highVariety},
		{"AR vs No AR", arOn, arOff},
	}
	for _, c := range comparisons {
		result, ok := IndependentTTest(c.a, c.b)
		if !ok {
			continue
		}
		analysis.Comparisons = append(analysis.Comparisons, Comparison{
			Label:       c.label,
			Effect:      InterpretCohensD(result.CohensD),
			TTestResult: result,
		})
	}

	if anova, ok := OneWayANOVA(anovaGroups); ok {
		analysis.ANOVA = &anova
	}
	return analysis, nil
}
