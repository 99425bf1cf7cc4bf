package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"lumiere/api/models"
)

// sessionSchema is the permissive shape check applied to each fetched
// document. It flags obviously broken documents (wrong container types) for
// the logs; it does not reject them, because sparse and partial session logs
// are expected data, not errors.
const sessionSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["session_id"],
	"properties": {
		"session_id": {"type": "string"},
		"pid": {"type": ["string", "null"]},
		"group": {"type": ["integer", "null"]},
		"debug_mode": {"type": ["boolean", "null"]},
		"final_cart": {"type": ["array", "null"]},
		"final_cart_count": {"type": ["integer", "null"]},
		"events": {
			"type": ["array", "null"],
			"items": {"type": "object"}
		},
		"survey": {"type": ["object", "null"]}
	}
}`

// SessionStore reads raw session documents out of the sessions table, where
// each study participant-session is one JSONB document.
type SessionStore struct {
	DB     *sql.DB
	schema *jsonschema.Schema
}

func NewSessionStore(db *sql.DB) (*SessionStore, error) {
	schema, err := jsonschema.CompileString("session.schema.json", sessionSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile session schema: %w", err)
	}
	return &SessionStore{DB: db, schema: schema}, nil
}

// FetchSessions returns every stored session document. Documents that fail
// JSON decoding are skipped with a log line; documents that merely violate
// the schema are logged and kept.
func (s *SessionStore) FetchSessions(ctx context.Context) ([]models.RawSession, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT doc_id, doc FROM sessions ORDER BY doc_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.RawSession
	invalid := 0
	for rows.Next() {
		var docID string
		var raw []byte
		if err := rows.Scan(&docID, &raw); err != nil {
			log.Printf("Error scanning session row: %v", err)
			continue
		}

		session, err := s.decodeDocument(docID, raw)
		if err != nil {
			log.Printf("Skipping undecodable session document %s: %v", docID, err)
			continue
		}
		if err := s.schema.Validate(map[string]any(session)); err != nil {
			invalid++
			log.Printf("Session document %s violates schema: %v", docID, err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while fetching sessions: %w", err)
	}

	if invalid > 0 {
		log.Printf("Fetched %d session documents (%d with schema violations).", len(sessions), invalid)
	} else {
		log.Printf("Fetched %d session documents.", len(sessions))
	}
	return sessions, nil
}

// FetchSessionByID looks a single document up by its session_id field.
func (s *SessionStore) FetchSessionByID(ctx context.Context, sessionID string) (models.RawSession, error) {
	var docID string
	var raw []byte
	err := s.DB.QueryRowContext(ctx,
		`SELECT doc_id, doc FROM sessions WHERE doc->>'session_id' = $1 LIMIT 1`,
		sessionID,
	).Scan(&docID, &raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session with id '%s' not found", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session '%s': %w", sessionID, err)
	}
	return s.decodeDocument(docID, raw)
}

func (s *SessionStore) decodeDocument(docID string, raw []byte) (models.RawSession, error) {
	var session models.RawSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	session["_doc_id"] = docID
	return session, nil
}
