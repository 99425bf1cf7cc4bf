// Package stats implements the descriptive statistics and hypothesis tests
// the analysis views run against the derived table. All functions guard
// against degenerate samples and never emit NaN, so results are always
// JSON-serializable.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Descriptives summarizes one sample.
type Descriptives struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	SD       float64 `json:"sd"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`
}

// Describe computes sample descriptives. SD is the sample standard deviation
// and skewness the adjusted Fisher-Pearson estimate; both are 0 when the
// sample is too small to estimate them.
func Describe(values []float64) Descriptives {
	d := Descriptives{N: len(values)}
	if len(values) == 0 {
		return d
	}

	d.Mean = stat.Mean(values, nil)
	d.Min, d.Max = values[0], values[0]
	for _, v := range values {
		d.Min = math.Min(d.Min, v)
		d.Max = math.Max(d.Max, v)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		d.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		d.Median = sorted[mid]
	}

	if len(values) >= 2 {
		d.SD = stat.StdDev(values, nil)
	}
	if len(values) >= 3 && d.SD > 0 {
		d.Skewness = stat.Skew(values, nil)
	}
	return d
}

// CohensD computes the pooled-variance standardized mean difference between
// two samples. Zero-variance samples yield 0 rather than a blowup.
func CohensD(a, b []float64) float64 {
	n1, n2 := len(a), len(b)
	if n1 < 2 || n2 < 2 {
		return 0
	}
	var1 := stat.Variance(a, nil)
	var2 := stat.Variance(b, nil)
	pooled := math.Sqrt((float64(n1-1)*var1 + float64(n2-1)*var2) / float64(n1+n2-2))
	if pooled == 0 {
		return 0
	}
	return (stat.Mean(a, nil) - stat.Mean(b, nil)) / pooled
}

// InterpretCohensD labels an effect size by magnitude (Cohen's conventions).
func InterpretCohensD(d float64) string {
	d = math.Abs(d)
	switch {
	case d < 0.2:
		return "negligible"
	case d < 0.5:
		return "small"
	case d < 0.8:
		return "medium"
	default:
		return "large"
	}
}

// EtaSquared is the proportion of total variance explained by the grouping.
func EtaSquared(ssBetween, ssTotal float64) float64 {
	if ssTotal == 0 {
		return 0
	}
	return ssBetween / ssTotal
}

// InterpretEtaSquared labels an eta-squared effect size by magnitude.
func InterpretEtaSquared(etaSq float64) string {
	switch {
	case etaSq < 0.01:
		return "negligible"
	case etaSq < 0.06:
		return "small"
	case etaSq < 0.14:
		return "medium"
	default:
		return "large"
	}
}

// TTestResult is an independent two-sample t-test. EqualVariance records
// whether the pooled (Student) or Welch form was used, chosen by a
// Brown-Forsythe variance test at alpha 0.05.
type TTestResult struct {
	N1            int     `json:"n1"`
	N2            int     `json:"n2"`
	Mean1         float64 `json:"mean1"`
	SD1           float64 `json:"sd1"`
	Mean2         float64 `json:"mean2"`
	SD2           float64 `json:"sd2"`
	T             float64 `json:"t"`
	P             float64 `json:"p"`
	DF            float64 `json:"df"`
	CohensD       float64 `json:"cohens_d"`
	EqualVariance bool    `json:"equal_variance"`
}

// IndependentTTest compares two samples. ok is false when either sample has
// fewer than two observations or both samples have zero variance.
func IndependentTTest(a, b []float64) (TTestResult, bool) {
	n1, n2 := len(a), len(b)
	if n1 < 2 || n2 < 2 {
		return TTestResult{}, false
	}

	r := TTestResult{
		N1: n1, N2: n2,
		Mean1: stat.Mean(a, nil), SD1: stat.StdDev(a, nil),
		Mean2: stat.Mean(b, nil), SD2: stat.StdDev(b, nil),
		CohensD: CohensD(a, b),
	}
	var1, var2 := r.SD1*r.SD1, r.SD2*r.SD2
	if var1 == 0 && var2 == 0 {
		return TTestResult{}, false
	}

	_, levineP, leveneOK := leveneTest(a, b)
	r.EqualVariance = leveneOK && levineP > 0.05

	diff := r.Mean1 - r.Mean2
	if r.EqualVariance {
		pooled := (float64(n1-1)*var1 + float64(n2-1)*var2) / float64(n1+n2-2)
		se := math.Sqrt(pooled * (1/float64(n1) + 1/float64(n2)))
		r.T = diff / se
		r.DF = float64(n1 + n2 - 2)
	} else {
		se1, se2 := var1/float64(n1), var2/float64(n2)
		se := math.Sqrt(se1 + se2)
		r.T = diff / se
		// Welch-Satterthwaite degrees of freedom.
		num := (se1 + se2) * (se1 + se2)
		den := se1*se1/float64(n1-1) + se2*se2/float64(n2-1)
		r.DF = num / den
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: r.DF}
	r.P = 2 * tDist.Survival(math.Abs(r.T))
	return r, true
}

// leveneTest runs a Brown-Forsythe (median-centered Levene) test for equal
// variances across two samples.
func leveneTest(a, b []float64) (w, p float64, ok bool) {
	za := absDeviationsFromMedian(a)
	zb := absDeviationsFromMedian(b)
	result, ok := OneWayANOVA([][]float64{za, zb})
	if !ok {
		return 0, 0, false
	}
	return result.F, result.P, true
}

func absDeviationsFromMedian(values []float64) []float64 {
	med := Describe(values).Median
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Abs(v - med)
	}
	return out
}

// ANOVAResult is a one-way analysis of variance across k groups.
type ANOVAResult struct {
	F          float64 `json:"f"`
	P          float64 `json:"p"`
	DFBetween  int     `json:"df_between"`
	DFWithin   int     `json:"df_within"`
	EtaSquared float64 `json:"eta_squared"`
}

// OneWayANOVA tests whether k group means differ. ok is false with fewer
// than two non-empty groups, no within-group degrees of freedom, or zero
// within-group variance.
func OneWayANOVA(groups [][]float64) (ANOVAResult, bool) {
	var nonEmpty [][]float64
	total := 0
	var grandSum float64
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		nonEmpty = append(nonEmpty, g)
		total += len(g)
		for _, v := range g {
			grandSum += v
		}
	}
	k := len(nonEmpty)
	if k < 2 || total <= k {
		return ANOVAResult{}, false
	}
	grandMean := grandSum / float64(total)

	var ssBetween, ssWithin float64
	for _, g := range nonEmpty {
		mean := stat.Mean(g, nil)
		ssBetween += float64(len(g)) * (mean - grandMean) * (mean - grandMean)
		for _, v := range g {
			ssWithin += (v - mean) * (v - mean)
		}
	}

	dfBetween := k - 1
	dfWithin := total - k
	msWithin := ssWithin / float64(dfWithin)
	if msWithin == 0 {
		return ANOVAResult{}, false
	}

	f := (ssBetween / float64(dfBetween)) / msWithin
	fDist := distuv.F{D1: float64(dfBetween), D2: float64(dfWithin)}
	return ANOVAResult{
		F:          f,
		P:          fDist.Survival(f),
		DFBetween:  dfBetween,
		DFWithin:   dfWithin,
		EtaSquared: EtaSquared(ssBetween, ssBetween+ssWithin),
	}, true
}
