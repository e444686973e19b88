package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"

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

	// Сериализуем элемент в JSON
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal queue item: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return queue.ErrStorageClosed
		}

		// Сохраняем по ключу ID
		if err := bucket.Put([]byte(item.ID), data); err != nil {
			return fmt.Errorf("failed to save item: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("enqueue transaction failed: %w", err)
	}

	return nil
}

// GetItem retrieves a queue item by ID
func (s *Storage) GetItem(ctx context.Context, id string) (*models.QueueItem, error) {
	if s.db == nil {
		return nil, queue.ErrStorageClosed
	}

	var item *models.QueueItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return queue.ErrItemNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return queue.ErrItemNotFound
		}

		item = &models.QueueItem{}
		if err := json.Unmarshal(data, item); err != nil {
			return fmt.Errorf("failed to unmarshal item: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// SelectBatch returns up to maxItems pending items in FIFO order
// (ascending by creation time). Does not mutate state.
func (s *Storage) SelectBatch(ctx context.Context, maxItems int) ([]*models.QueueItem, error) {
	if s.db == nil {
		return nil, queue.ErrStorageClosed
	}
	if maxItems <= 0 {
		return nil, nil
	}

	var pending []*models.QueueItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var item models.QueueItem
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("failed to unmarshal item: %w", err)
			}

			// Отбираем только pending
			if item.Status == models.StatusPending {
				pending = append(pending, &item)
			}

			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select batch: %w", err)
	}

	// FIFO: старые элементы первыми, при равном времени - по ID
	sort.Slice(pending, func(i, j int) bool {
		if !pending[i].CreatedAt.Equal(pending[j].CreatedAt) {
			return pending[i].CreatedAt.Before(pending[j].CreatedAt)
		}
		return pending[i].ID < pending[j].ID
	})

	if len(pending) > maxItems {
		pending = pending[:maxItems]
	}

	return pending, nil
}

// MarkInProgress transitions pending items to in_progress
func (s *Storage) MarkInProgress(ctx context.Context, ids []string) error {
	if s.db == nil {
		return queue.ErrStorageClosed
	}
	if len(ids) == 0 {
		return nil
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return queue.ErrStorageClosed
		}

		for _, id := range ids {
			item, err := getItemTx(bucket, id)
			if err != nil {
				return err
			}

			if !item.Status.CanTransitionTo(models.StatusInProgress) {
				return fmt.Errorf("item %s is %s: %w", id, item.Status, queue.ErrInvalidTransition)
			}

			item.Status = models.StatusInProgress
			if err := putItemTx(bucket, item); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("mark in progress failed: %w", err)
	}

	return nil
}

// MarkCompleted transitions a single in_progress item to completed
func (s *Storage) MarkCompleted(ctx context.Context, id string) error {
	return s.ApplyResults(ctx, []models.ItemResult{{ItemID: id}})
}

// MarkFailed transitions a single in_progress item to failed,
// incrementing its retry count and recording the error
func (s *Storage) MarkFailed(ctx context.Context, id string, errMsg string) error {
	return s.ApplyResults(ctx, []models.ItemResult{{ItemID: id, Error: errMsg}})
}

// ApplyResults commits batch outcomes in a single transaction:
// все переходы completed/failed фиксируются атомарно.
func (s *Storage) ApplyResults(ctx context.Context, results []models.ItemResult) error {
	if s.db == nil {
		return queue.ErrStorageClosed
	}
	if len(results) == 0 {
		return nil
	}

	now := time.Now().UTC()

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return queue.ErrStorageClosed
		}

		for _, result := range results {
			item, err := getItemTx(bucket, result.ItemID)
			if err != nil {
				return err
			}

			next := models.StatusCompleted
			if result.Error != "" {
				next = models.StatusFailed
			}

			if !item.Status.CanTransitionTo(next) {
				return fmt.Errorf("item %s is %s: %w", item.ID, item.Status, queue.ErrInvalidTransition)
			}

			item.Status = next
			if next == models.StatusFailed {
				item.RetryCount++
				item.LastError = result.Error
				item.FailedAt = now
			}

			if err := putItemTx(bucket, item); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("apply results failed: %w", err)
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

	count := 0

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		// Сначала собираем кандидатов: модификация bucket во время
		// итерации курсором не допускается
		var eligible []*models.QueueItem
		err := bucket.ForEach(func(k, v []byte) error {
			var item models.QueueItem
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("failed to unmarshal item: %w", err)
			}

			if policy.Eligible(&item, now) {
				eligible = append(eligible, &item)
			}

			return nil
		})
		if err != nil {
			return err
		}

		for _, item := range eligible {
			item.Status = models.StatusPending
			if err := putItemTx(bucket, item); err != nil {
				return err
			}
			count++
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("requeue failed items: %w", err)
	}

	return count, nil
}

// PendingCount returns the number of pending items.
// Возвращает 0 без ошибки, если хранилище недоступно
// (например, в момент запуска).
func (s *Storage) PendingCount(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, nil
	}

	count := 0

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var item models.QueueItem
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("failed to unmarshal item: %w", err)
			}

			if item.Status == models.StatusPending {
				count++
			}

			return nil
		})
	})
	if err != nil {
		return 0, nil
	}

	return count, nil
}

// getItemTx читает и десериализует элемент внутри транзакции
func getItemTx(bucket *bbolt.Bucket, id string) (*models.QueueItem, error) {
	data := bucket.Get([]byte(id))
	if data == nil {
		return nil, fmt.Errorf("item %s: %w", id, queue.ErrItemNotFound)
	}

	item := &models.QueueItem{}
	if err := json.Unmarshal(data, item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	return item, nil
}

// putItemTx сериализует и сохраняет элемент внутри транзакции
func putItemTx(bucket *bbolt.Bucket, item *models.QueueItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	if err := bucket.Put([]byte(item.ID), data); err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}

	return nil
}
