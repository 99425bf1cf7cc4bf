package store

import (
	"context"
	"fmt"
	"log"

	"lumiere/api/database"
	"lumiere/api/models"
)

// ArchiveStore batch-inserts derived tables into ClickHouse so downstream BI
// tooling can query the flattened study data without touching the document
// store.
type ArchiveStore struct {
	DB *database.ClickHouseClient
}

func NewArchiveStore(chClient *database.ClickHouseClient) *ArchiveStore {
	return &ArchiveStore{DB: chClient}
}

// InsertDerivedRows appends the scalar columns of a derived table to the
// derived_sessions table. Nullable columns take the row's pointer fields
// directly. Column names and order must match the ClickHouse schema.
func (s *ArchiveStore) InsertDerivedRows(ctx context.Context, rows []models.Row) error {
	if len(rows) == 0 {
		return nil
	}

	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO derived_sessions (
			session_id, pid, started_at, completed_at, debug_mode,
			group_final, group_reconstructed, reconstruction_method, reconstruction_confidence,
			variety, ar_enabled, session_duration_sec, time_to_survey_sec,
			total_ar_time_sec, ar_session_count, unique_products_viewed,
			cart_additions, cart_removals, page_views, avg_ar_duration_sec,
			total_ar_rotations, total_ar_zooms, time_on_gallery_sec, time_on_detail_sec,
			scrolled_to_bottom, final_cart_count, is_completed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, row := range rows {
		err := batch.Append(
			row.SessionID,
			row.PID,
			row.StartedAt,
			row.CompletedAt,
			row.DebugMode,
			row.GroupFinal,
			row.GroupReconstructed,
			row.ReconstructionMethod,
			row.ReconstructionConfidence,
			row.Variety,
			row.AREnabled,
			row.SessionDurationSec,
			row.TimeToSurveySec,
			row.TotalARTimeSec,
			row.ARSessionCount,
			row.UniqueProductsViewed,
			row.CartAdditions,
			row.CartRemovals,
			row.PageViews,
			row.AvgARDurationSec,
			row.TotalARRotations,
			row.TotalARZooms,
			row.TimeOnGallerySec,
			row.TimeOnDetailSec,
			row.ScrolledToBottom,
			row.FinalCartCount,
			row.IsCompleted,
		)
		if err != nil {
			sessionID := "<missing session_id>"
			if row.SessionID != nil {
				sessionID = *row.SessionID
			}
			log.Printf("Error appending derived row to batch (SessionID: %s): %v", sessionID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	log.Printf("Successfully archived %d derived session rows.", len(rows))
	return nil
}
