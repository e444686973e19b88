package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/offsync/internal/crdt"
	"github.com/iudanet/offsync/internal/queue"
)

// SaveSnapshot stores the merged per-field LWW snapshot of an entity
func (s *Storage) SaveSnapshot(ctx context.Context, entityType, entityID string, m *crdt.Map) error {
	if s.db == nil {
		return queue.ErrStorageClosed
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO sync_snapshots (entity_type, entity_id, fields) VALUES (?, ?, ?)
		ON CONFLICT(entity_type, entity_id) DO UPDATE SET fields = excluded.fields
	`

	if _, err := s.db.ExecContext(ctx, query, entityType, entityID, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// GetSnapshot retrieves the merged snapshot of an entity
func (s *Storage) GetSnapshot(ctx context.Context, entityType, entityID string) (*crdt.Map, error) {
	if s.db == nil {
		return nil, queue.ErrStorageClosed
	}

	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT fields FROM sync_snapshots WHERE entity_type = ? AND entity_id = ?`,
		entityType, entityID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, queue.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	m := crdt.NewMap()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return m, nil
}
