package processing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"lumiere/api/models"
)

// qualityColumn describes one checked column of the derived table. numeric is
// nil for string-typed columns; for numeric ones it returns nil when the
// value is absent in that row.
type qualityColumn struct {
	name    string
	dtype   string
	numeric func(models.Row) *float64
	present func(models.Row) bool
}

var qualityColumns = []qualityColumn{
	{name: "session_id", dtype: "string", present: func(r models.Row) bool { return r.SessionID != nil }},
	{
		name: "group", dtype: "int64",
		numeric: func(r models.Row) *float64 {
			if r.GroupFinal == nil {
				return nil
			}
			return floatPtr(float64(*r.GroupFinal))
		},
		present: func(r models.Row) bool { return r.GroupFinal != nil },
	},
	{
		name: "started_at", dtype: "float64",
		numeric: func(r models.Row) *float64 { return r.StartedAt },
		present: func(r models.Row) bool { return r.StartedAt != nil },
	},
	{
		name: "completed_at", dtype: "float64",
		numeric: func(r models.Row) *float64 { return r.CompletedAt },
		present: func(r models.Row) bool { return r.CompletedAt != nil },
	},
	{name: "pid", dtype: "string", present: func(r models.Row) bool { return r.PID != nil }},
	{name: "device_type", dtype: "string", present: func(r models.Row) bool { return r.DeviceType != nil }},
	{
		name: "final_cart_count", dtype: "int64",
		numeric: func(r models.Row) *float64 { return floatPtr(float64(r.FinalCartCount)) },
		present: func(models.Row) bool { return true },
	},
	{
		name: "session_duration_sec", dtype: "float64",
		numeric: func(r models.Row) *float64 { return r.SessionDurationSec },
		present: func(r models.Row) bool { return r.SessionDurationSec != nil },
	},
}

// BuildQualityReport checks the key columns of a derived table: missing
// rates, numeric summaries, z-score outliers (|z| > 3 on columns with nonzero
// variance), duplicate session ids, and group balance. Data problems become
// report entries, never errors.
func BuildQualityReport(rows []models.Row) models.QualityReport {
	report := models.QualityReport{
		TotalRows: len(rows),
		Columns:   make(map[string]models.ColumnQuality, len(qualityColumns)),
		Issues:    []string{},
	}

	for _, col := range qualityColumns {
		missing := 0
		var values []float64
		for _, row := range rows {
			if !col.present(row) {
				missing++
				continue
			}
			if col.numeric != nil {
				if v := col.numeric(row); v != nil {
					values = append(values, *v)
				}
			}
		}

		// A column no session ever carried is reported as absent, the same
		// way a dataset written before the field existed would look.
		if len(rows) == 0 || missing == len(rows) {
			report.Columns[col.name] = models.ColumnQuality{Present: false}
			report.Issues = append(report.Issues, fmt.Sprintf("Missing column: %s", col.name))
			continue
		}

		missingPct := round1(float64(missing) / float64(len(rows)) * 100)
		quality := models.ColumnQuality{
			Present:        true,
			MissingCount:   missing,
			MissingPercent: missingPct,
			Dtype:          col.dtype,
		}

		if col.numeric != nil && len(values) > 0 {
			minV, maxV := values[0], values[0]
			for _, v := range values {
				minV = math.Min(minV, v)
				maxV = math.Max(maxV, v)
			}
			mean := stat.Mean(values, nil)
			std := stat.StdDev(values, nil)
			if math.IsNaN(std) {
				std = 0
			}
			quality.Min = floatPtr(minV)
			quality.Max = floatPtr(maxV)
			quality.Mean = floatPtr(mean)
			quality.Std = floatPtr(std)

			if std > 0 {
				outliers := 0
				for _, v := range values {
					if math.Abs((v-mean)/std) > 3 {
						outliers++
					}
				}
				quality.OutliersCount = &outliers
			}
		}

		report.Columns[col.name] = quality
		if missingPct > 10 {
			report.Issues = append(report.Issues,
				fmt.Sprintf("High missing rate (%.1f%%) for %s", missingPct, col.name))
		}
	}

	seen := make(map[string]bool, len(rows))
	duplicates := 0
	for _, row := range rows {
		if row.SessionID == nil {
			continue
		}
		if seen[*row.SessionID] {
			duplicates++
		}
		seen[*row.SessionID] = true
	}
	if duplicates > 0 {
		report.DuplicateSessions = duplicates
		report.Issues = append(report.Issues, fmt.Sprintf("Found %d duplicate session IDs", duplicates))
	}

	distribution := make(map[int]int)
	for _, row := range rows {
		if row.GroupFinal != nil {
			distribution[*row.GroupFinal]++
		}
	}
	if len(distribution) > 0 {
		report.GroupDistribution = distribution
		minCount, maxCount := math.MaxInt, 0
		for _, count := range distribution {
			if count < minCount {
				minCount = count
			}
			if count > maxCount {
				maxCount = count
			}
		}
		if maxCount > minCount*2 {
			report.Issues = append(report.Issues, "Imbalanced group distribution detected")
		}
	}

	return report
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
