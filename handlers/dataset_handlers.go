// api/handlers/dataset_handlers.go
package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lumiere/api/models"
	"lumiere/api/processing"
	"lumiere/api/stats"
	"lumiere/api/store"
)

type DatasetHandlers struct {
	Sessions *store.SessionStore
	Archive  *store.ArchiveStore
}

func NewDatasetHandlers(sessions *store.SessionStore, archive *store.ArchiveStore) *DatasetHandlers {
	return &DatasetHandlers{Sessions: sessions, Archive: archive}
}

// buildFilteredDataset fetches all session documents, builds the derived
// table, and applies the request's filter query parameters.
func (h *DatasetHandlers) buildFilteredDataset(c *gin.Context) ([]models.Row, error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	sessions, err := h.Sessions.FetchSessions(ctx)
	if err != nil {
		return nil, err
	}

	rows := processing.BuildDataset(sessions)
	opts, err := parseFilterOptions(c)
	if err != nil {
		return nil, err
	}
	return processing.FilterRows(rows, opts), nil
}

func parseFilterOptions(c *gin.Context) (processing.FilterOptions, error) {
	// Debug traffic is excluded unless explicitly requested.
	opts := processing.FilterOptions{ExcludeDebug: true}

	if v := c.Query("exclude_debug"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid 'exclude_debug' parameter: %s", v)
		}
		opts.ExcludeDebug = parsed
	}
	if v := c.Query("exclude_incomplete"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid 'exclude_incomplete' parameter: %s", v)
		}
		opts.ExcludeIncomplete = parsed
	}
	if v := c.Query("exclude_pids"); v != "" {
		for _, pid := range strings.Split(v, ",") {
			if pid = strings.TrimSpace(pid); pid != "" {
				opts.ExcludePIDs = append(opts.ExcludePIDs, pid)
			}
		}
	}
	if v := c.Query("min_duration"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid 'min_duration' parameter: %s", v)
		}
		opts.MinSessionDurationSec = &parsed
	}
	if v := c.Query("max_duration"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid 'max_duration' parameter: %s", v)
		}
		opts.MaxSessionDurationSec = &parsed
	}
	return opts, nil
}

// GetDataset returns the filtered derived table as JSON. The events and
// final_cart payloads stay server-side; use the CSV export with
// include_events=true to get them.
func (h *DatasetHandlers) GetDataset(c *gin.Context) {
	rows, err := h.buildFilteredDataset(c)
	if err != nil {
		log.Printf("Error building dataset: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dataset"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_rows": len(rows), "rows": rows})
}

// GetQuality returns the data-quality report for the filtered table.
func (h *DatasetHandlers) GetQuality(c *gin.Context) {
	rows, err := h.buildFilteredDataset(c)
	if err != nil {
		log.Printf("Error building dataset for quality report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build quality report"})
		return
	}
	c.JSON(http.StatusOK, processing.BuildQualityReport(rows))
}

// GetSummary returns the monitoring headline numbers.
func (h *DatasetHandlers) GetSummary(c *gin.Context) {
	rows, err := h.buildFilteredDataset(c)
	if err != nil {
		log.Printf("Error building dataset for summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, processing.Summarize(rows))
}

// GetStats runs descriptives, t-tests, and a one-way ANOVA for the dependent
// variable named in the 'dv' query parameter.
func (h *DatasetHandlers) GetStats(c *gin.Context) {
	dv := c.DefaultQuery("dv", "session_duration_sec")
	if !processing.IsNumericColumn(dv) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   fmt.Sprintf("unknown dependent variable '%s'", dv),
			"allowed": processing.NumericColumns,
		})
		return
	}

	rows, err := h.buildFilteredDataset(c)
	if err != nil {
		log.Printf("Error building dataset for stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build statistics"})
		return
	}

	analysis, err := stats.Analyze(rows, dv)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// ExportCSV streams the derived table as a CSV attachment. The events and
// final_cart columns are dropped unless include_events=true.
func (h *DatasetHandlers) ExportCSV(c *gin.Context) {
	includeEvents := false
	if v := c.Query("include_events"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid 'include_events' parameter: %s", v)})
			return
		}
		includeEvents = parsed
	}

	rows, err := h.buildFilteredDataset(c)
	if err != nil {
		log.Printf("Error building dataset for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}

	csvData, err := processing.ExportCSV(rows, processing.ExportOptions{IncludeEvents: includeEvents})
	if err != nil {
		log.Printf("Error serializing CSV export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize export"})
		return
	}

	filename := fmt.Sprintf("lumiere_sessions_%s.csv", uuid.New().String())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvData))
}

// GetSession looks one raw session document up by session_id and recomputes
// its signals and reconstruction for the debug view.
func (h *DatasetHandlers) GetSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id path parameter is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	session, err := h.Sessions.FetchSessionByID(ctx, sessionID)
	if err != nil {
		log.Printf("Session lookup failed for '%s': %v", sessionID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Session '%s' not found", sessionID)})
		return
	}

	row := processing.BuildRow(session)
	signals := processing.ExtractGroupSignals(row.Events)
	c.JSON(http.StatusOK, gin.H{
		"session": session,
		"row":     row,
		"reconstruction": gin.H{
			"signals": signals,
			"result":  processing.ReconstructGroup(signals),
		},
	})
}

// ArchiveDataset builds the filtered derived table and batch-inserts it into
// the warehouse.
func (h *DatasetHandlers) ArchiveDataset(c *gin.Context) {
	rows, err := h.buildFilteredDataset(c)
	if err != nil {
		log.Printf("Error building dataset for archive: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dataset"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	if err := h.Archive.InsertDerivedRows(ctx, rows); err != nil {
		log.Printf("Error archiving derived rows: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive dataset"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"archived_rows": len(rows)})
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
