package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/offsync/internal/models"
	"github.com/iudanet/offsync/internal/queue"
)

// Enqueue stores a new queue item in pending status
func (s *Storage) Enqueue(ctx context.Context, item *models.QueueItem) error {
	if s.db == nil {
		return queue.ErrStorageClosed
	}
	if item.ID == "" || !item.Operation.Valid() {
		return queue.ErrInvalidItem
	}

	query := `
		INSERT INTO sync_queue (
			id, entity_type, entity_id, operation, payload,
			status, retry_count, last_error, created_at, failed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		item.ID,
		item.EntityType,
		item.EntityID,
		string(item.Operation),
		item.Payload,
		string(item.Status),
		item.RetryCount,
		item.LastError,
		item.CreatedAt.UnixNano(),
		timeToNano(item.FailedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	return nil
}

// GetItem retrieves a queue item by ID
func (s *Storage) GetItem(ctx context.Context, id string) (*models.QueueItem, error) {
	if s.db == nil {
		return nil, queue.ErrStorageClosed
	}

	query := `
		SELECT id, entity_type, entity_id, operation, payload,
		       status, retry_count, last_error, created_at, failed_at
		FROM sync_queue
		WHERE id = ?
	`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %s: %w", id, queue.ErrItemNotFound)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// SelectBatch returns up to maxItems pending items in FIFO order
func (s *Storage) SelectBatch(ctx context.Context, maxItems int) ([]*models.QueueItem, error) {
	if s.db == nil {
		return nil, queue.ErrStorageClosed
	}
	if maxItems <= 0 {
		return nil, nil
	}

	query := `
		SELECT id, entity_type, entity_id, operation, payload,
		       status, retry_count, last_error, created_at, failed_at
		FROM sync_queue
		WHERE status = ?
		ORDER BY created_at ASC, id ASC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, string(models.StatusPending), maxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to select batch: %w", err)
	}
	defer rows.Close()

	var items []*models.QueueItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return items, nil
}

// MarkInProgress transitions pending items to in_progress
func (s *Storage) MarkInProgress(ctx context.Context, ids []string) error {
	if s.db == nil {
		return queue.ErrStorageClosed
	}
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range ids {
		res, err := tx.ExecContext(ctx,
			`UPDATE sync_queue SET status = ? WHERE id = ? AND status = ?`,
			string(models.StatusInProgress), id, string(models.StatusPending),
		)
		if err != nil {
			return fmt.Errorf("failed to update item %s: %w", id, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			// Различаем отсутствующий элемент и запрещенный переход
			var status string
			err := tx.QueryRowContext(ctx,
				`SELECT status FROM sync_queue WHERE id = ?`, id,
			).Scan(&status)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("item %s: %w", id, queue.ErrItemNotFound)
			}
			if err != nil {
				return fmt.Errorf("failed to check item %s: %w", id, err)
			}
			return fmt.Errorf("item %s is %s: %w", id, status, queue.ErrInvalidTransition)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// MarkCompleted transitions a single in_progress item to completed
func (s *Storage) MarkCompleted(ctx context.Context, id string) error {
	return s.ApplyResults(ctx, []models.ItemResult{{ItemID: id}})
}

// MarkFailed transitions a single in_progress item to failed
func (s *Storage) MarkFailed(ctx context.Context, id string, errMsg string) error {
	return s.ApplyResults(ctx, []models.ItemResult{{ItemID: id, Error: errMsg}})
}

// ApplyResults commits batch outcomes in a single transaction
func (s *Storage) ApplyResults(ctx context.Context, results []models.ItemResult) error {
	if s.db == nil {
		return queue.ErrStorageClosed
	}
	if len(results) == 0 {
		return nil
	}

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, result := range results {
		var res sql.Result
		if result.Error == "" {
			res, err = tx.ExecContext(ctx,
				`UPDATE sync_queue SET status = ? WHERE id = ? AND status = ?`,
				string(models.StatusCompleted), result.ItemID, string(models.StatusInProgress),
			)
		} else {
			res, err = tx.ExecContext(ctx,
				`UPDATE sync_queue
				 SET status = ?, retry_count = retry_count + 1, last_error = ?, failed_at = ?
				 WHERE id = ? AND status = ?`,
				string(models.StatusFailed), result.Error, now.UnixNano(),
				result.ItemID, string(models.StatusInProgress),
			)
		}
		if err != nil {
			return fmt.Errorf("failed to update item %s: %w", result.ItemID, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			var status string
			err := tx.QueryRowContext(ctx,
				`SELECT status FROM sync_queue WHERE id = ?`, result.ItemID,
			).Scan(&status)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("item %s: %w", result.ItemID, queue.ErrItemNotFound)
			}
			if err != nil {
				return fmt.Errorf("failed to check item %s: %w", result.ItemID, err)
			}
			return fmt.Errorf("item %s is %s: %w", result.ItemID, status, queue.ErrInvalidTransition)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// RequeueFailed returns failed items eligible under the retry policy
// back to pending status
func (s *Storage) RequeueFailed(ctx context.Context, policy queue.RetryPolicy, now time.Time) (int, error) {
	if s.db == nil {
		return 0, queue.ErrStorageClosed
	}
	if policy.Mode != queue.RetryBackoff {
		return 0, nil
	}

	// Кандидаты отбираются в Go: расписание backoff зависит от retry_count
	query := `
		SELECT id, entity_type, entity_id, operation, payload,
		       status, retry_count, last_error, created_at, failed_at
		FROM sync_queue
		WHERE status = ?
	`

	rows, err := s.db.QueryContext(ctx, query, string(models.StatusFailed))
	if err != nil {
		return 0, fmt.Errorf("failed to select failed items: %w", err)
	}

	var eligible []string
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan item: %w", err)
		}
		if policy.Eligible(item, now) {
			eligible = append(eligible, item.ID)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("rows iteration failed: %w", err)
	}
	rows.Close()

	if len(eligible) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range eligible {
		if _, err := tx.ExecContext(ctx,
			`UPDATE sync_queue SET status = ? WHERE id = ? AND status = ?`,
			string(models.StatusPending), id, string(models.StatusFailed),
		); err != nil {
			return 0, fmt.Errorf("failed to requeue item %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return len(eligible), nil
}

// PendingCount returns the number of pending items.
// Возвращает 0 без ошибки, если хранилище недоступно.
func (s *Storage) PendingCount(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, nil
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sync_queue WHERE status = ?`,
		string(models.StatusPending),
	).Scan(&count)
	if err != nil {
		return 0, nil
	}

	return count, nil
}

// rowScanner объединяет sql.Row и sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem читает одну строку sync_queue в модель
func scanItem(row rowScanner) (*models.QueueItem, error) {
	var (
		item      models.QueueItem
		operation string
		status    string
		createdAt int64
		failedAt  int64
	)

	err := row.Scan(
		&item.ID,
		&item.EntityType,
		&item.EntityID,
		&operation,
		&item.Payload,
		&status,
		&item.RetryCount,
		&item.LastError,
		&createdAt,
		&failedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Operation = models.Operation(operation)
	item.Status = models.ItemStatus(status)
	item.CreatedAt = time.Unix(0, createdAt).UTC()
	if failedAt != 0 {
		item.FailedAt = time.Unix(0, failedAt).UTC()
	}

	return &item, nil
}

// timeToNano конвертирует время в UnixNano, ноль для нулевого времени
func timeToNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}
