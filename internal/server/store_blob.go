package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Storage keys, one versioned JSON blob each.
const (
	keyLists       = "lists"
	keyTrips       = "trips"
	keyAttachments = "poi_attachments"
	keyComments    = "poi_comments"
	keyHidden      = "hidden_pois"
	keyCategories  = "point_categories"
	keyShapes      = "shape_meta"
	keySession     = "session"
)

func (s *WorkspaceStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS blobs (
			key  TEXT PRIMARY KEY,
			data JSONB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("creating blobs table: %w", err)
	}
	return nil
}

// loadEnvelope reads one blob as a generic JSON object. A missing key
// returns ErrNotFound so the caller starts the collection empty. A blob
// that is not valid JSON is discarded the same way, logged, never
// surfaced as an error: corruption degrades to an empty collection.
func (s *WorkspaceStore) loadEnvelope(ctx context.Context, key string) (map[string]any, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM blobs WHERE key = ?`, key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var env map[string]any
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		s.logger.Warn("discarding corrupt blob", "key", key, "error", err)
		return nil, ErrNotFound
	}
	return env, nil
}

// saveBlob rewrites one blob whole. Write failures are logged, not
// returned: the operation already succeeded against in-memory state and
// a quota-style storage failure must not fail the caller.
func (s *WorkspaceStore) saveBlob(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("marshaling blob", "key", key, "error", err)
		return
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO blobs (key, data) VALUES (?, jsonb(?))`,
		key, string(data),
	)
	if err != nil {
		s.logger.Error("writing blob", "key", key, "error", err)
	}
}

// decodeEnvelope re-marshals a migrated envelope into its typed blob.
// Decode failures after migration mean the stored shape is beyond
// repair; the collection starts empty.
func (s *WorkspaceStore) decodeEnvelope(key string, env map[string]any, dest any) bool {
	data, err := json.Marshal(env)
	if err == nil {
		err = json.Unmarshal(data, dest)
	}
	if err != nil {
		s.logger.Warn("discarding unmigratable blob", "key", key, "error", err)
		return false
	}
	return true
}
