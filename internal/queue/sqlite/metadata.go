package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/offsync/internal/queue"
)

const keyLastSyncTime = "last_sync_time"

// SaveLastSyncTime saves the timestamp of the last successful sync pass
func (s *Storage) SaveLastSyncTime(ctx context.Context, t time.Time) error {
	if s.db == nil {
		return queue.ErrStorageClosed
	}

	query := `
		INSERT INTO sync_metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`

	if _, err := s.db.ExecContext(ctx, query, keyLastSyncTime, t.UnixNano()); err != nil {
		return fmt.Errorf("failed to save last sync time: %w", err)
	}

	return nil
}

// GetLastSyncTime retrieves the timestamp of the last successful sync pass
// Returns zero time if no pass has completed yet
func (s *Storage) GetLastSyncTime(ctx context.Context) (time.Time, error) {
	if s.db == nil {
		return time.Time{}, queue.ErrStorageClosed
	}

	var nanos int64
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM sync_metadata WHERE key = ?`, keyLastSyncTime,
	).Scan(&nanos)
	if errors.Is(err, sql.ErrNoRows) {
		// Синхронизация еще не выполнялась
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last sync time: %w", err)
	}

	return time.Unix(0, nanos).UTC(), nil
}
