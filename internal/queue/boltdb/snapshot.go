package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/offsync/internal/crdt"
	"github.com/iudanet/offsync/internal/queue"
)

// snapshotKey строит ключ снимка по типу и идентификатору сущности
func snapshotKey(entityType, entityID string) []byte {
	return []byte(entityType + "/" + entityID)
}

// SaveSnapshot stores the merged per-field LWW snapshot of an entity
func (s *Storage) SaveSnapshot(ctx context.Context, entityType, entityID string, m *crdt.Map) error {
	if s.db == nil {
		return queue.ErrStorageClosed
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshots)
		if bucket == nil {
			return queue.ErrStorageClosed
		}

		if err := bucket.Put(snapshotKey(entityType, entityID), data); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("snapshot transaction failed: %w", err)
	}

	return nil
}

// GetSnapshot retrieves the merged snapshot of an entity
func (s *Storage) GetSnapshot(ctx context.Context, entityType, entityID string) (*crdt.Map, error) {
	if s.db == nil {
		return nil, queue.ErrStorageClosed
	}

	var m *crdt.Map

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshots)
		if bucket == nil {
			return queue.ErrSnapshotNotFound
		}

		data := bucket.Get(snapshotKey(entityType, entityID))
		if data == nil {
			return queue.ErrSnapshotNotFound
		}

		m = crdt.NewMap()
		if err := json.Unmarshal(data, m); err != nil {
			return fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}
