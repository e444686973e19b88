// Package queue определяет долговечную очередь мутаций: append-only
// хранилище отложенных изменений сущностей с отслеживанием статусов.
// Реализации хранилищ находятся в подпакетах boltdb и sqlite.
package queue

import (
	"context"
	"time"

	"github.com/iudanet/offsync/internal/crdt"
	"github.com/iudanet/offsync/internal/models"
)

//go:generate moq -out store_mock.go . Store

// Store defines interface for the durable mutation queue.
// Items are append-only: завершенные и неудачные элементы остаются
// в хранилище для аудита и истории повторов.
type Store interface {
	// Enqueue appends a new item in pending status.
	// Always succeeds for a valid item; no deduplication is performed.
	Enqueue(ctx context.Context, item *models.QueueItem) error

	// GetItem retrieves a queue item by ID.
	// Returns ErrItemNotFound if item doesn't exist.
	GetItem(ctx context.Context, id string) (*models.QueueItem, error)

	// SelectBatch returns up to maxItems pending items ordered
	// ascending by creation time (FIFO). Does not mutate state.
	SelectBatch(ctx context.Context, maxItems int) ([]*models.QueueItem, error)

	// MarkInProgress transitions pending items to in_progress.
	// Returns ErrInvalidTransition if any item is not pending.
	MarkInProgress(ctx context.Context, ids []string) error

	// MarkCompleted transitions a single in_progress item to completed.
	MarkCompleted(ctx context.Context, id string) error

	// MarkFailed transitions a single in_progress item to failed,
	// increments its retry count and records the error message.
	MarkFailed(ctx context.Context, id string, errMsg string) error

	// ApplyResults commits the outcome of a whole batch atomically:
	// либо фиксируются все переходы completed/failed, либо ни один.
	ApplyResults(ctx context.Context, results []models.ItemResult) error

	// RequeueFailed returns failed items eligible under the retry
	// policy back to pending. Returns the number of requeued items.
	RequeueFailed(ctx context.Context, policy RetryPolicy, now time.Time) (int, error)

	// PendingCount returns the number of pending items.
	// Tolerates an unavailable store by returning 0 without error.
	PendingCount(ctx context.Context) (int, error)

	// LastSyncTime operations persist the timestamp of the last
	// successful sync pass. Zero time means no pass has completed.
	SaveLastSyncTime(ctx context.Context, t time.Time) error
	GetLastSyncTime(ctx context.Context) (time.Time, error)

	// Close releases the underlying store.
	Close() error
}

//go:generate moq -out snapshot_mock.go . SnapshotStore

// SnapshotStore defines interface for persisting remote-confirmed
// entity snapshots as per-field LWW maps.
type SnapshotStore interface {
	// SaveSnapshot stores the merged snapshot of an entity.
	SaveSnapshot(ctx context.Context, entityType, entityID string, m *crdt.Map) error

	// GetSnapshot retrieves the snapshot of an entity.
	// Returns ErrSnapshotNotFound if no snapshot exists.
	GetSnapshot(ctx context.Context, entityType, entityID string) (*crdt.Map, error)
}
