package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/offsync/internal/models"
	"github.com/iudanet/offsync/internal/queue"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "offsync-test.db")
	storage, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, storage.Close())
	})

	return storage
}

func enqueueAt(t *testing.T, s *Storage, entityID string, createdAt time.Time) *models.QueueItem {
	t.Helper()

	item := models.NewQueueItem("product", entityID, models.OperationUpdate, []byte(`{"price":10}`))
	item.CreatedAt = createdAt
	require.NoError(t, s.Enqueue(context.Background(), item))
	return item
}

func TestStorage_EnqueueAndGet(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	item := models.NewQueueItem("product", "7", models.OperationUpdate, []byte(`{"price":10}`))
	require.NoError(t, s.Enqueue(ctx, item))

	got, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, []byte(`{"price":10}`), got.Payload)
}

func TestStorage_Enqueue_InvalidItem(t *testing.T) {
	s := newTestStorage(t)

	item := models.NewQueueItem("product", "7", models.Operation("rename"), nil)
	err := s.Enqueue(context.Background(), item)
	assert.ErrorIs(t, err, queue.ErrInvalidItem)
}

func TestStorage_GetItem_NotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetItem(context.Background(), "missing")
	assert.ErrorIs(t, err, queue.ErrItemNotFound)
}

func TestStorage_SelectBatch_FIFO(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	base := time.Now().UTC()
	// Постановка в обратном порядке: порядок выборки определяется CreatedAt
	item3 := enqueueAt(t, s, "3", base.Add(3*time.Second))
	item1 := enqueueAt(t, s, "1", base.Add(1*time.Second))
	item2 := enqueueAt(t, s, "2", base.Add(2*time.Second))

	batch, err := s.SelectBatch(ctx, 2)
	require.NoError(t, err)
	require.Len(t, batch, 2)

	assert.Equal(t, item1.ID, batch[0].ID, "Oldest item should come first")
	assert.Equal(t, item2.ID, batch[1].ID)

	// SelectBatch не меняет состояние
	got, err := s.GetItem(ctx, item3.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestStorage_SelectBatch_SkipsNonPending(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	base := time.Now().UTC()
	item1 := enqueueAt(t, s, "1", base)
	item2 := enqueueAt(t, s, "2", base.Add(time.Second))

	require.NoError(t, s.MarkInProgress(ctx, []string{item1.ID}))

	batch, err := s.SelectBatch(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, item2.ID, batch[0].ID)
}

func TestStorage_MarkInProgress_InvalidTransition(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	item := enqueueAt(t, s, "1", time.Now().UTC())
	require.NoError(t, s.MarkInProgress(ctx, []string{item.ID}))

	// Повторный перевод in_progress -> in_progress запрещен
	err := s.MarkInProgress(ctx, []string{item.ID})
	assert.ErrorIs(t, err, queue.ErrInvalidTransition)
}

func TestStorage_ApplyResults(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	base := time.Now().UTC()
	item1 := enqueueAt(t, s, "1", base)
	item2 := enqueueAt(t, s, "2", base.Add(time.Second))
	item3 := enqueueAt(t, s, "3", base.Add(2*time.Second))

	ids := []string{item1.ID, item2.ID, item3.ID}
	require.NoError(t, s.MarkInProgress(ctx, ids))

	// Элемент 2 завершился ошибкой, остальные успешно
	results := []models.ItemResult{
		{ItemID: item1.ID},
		{ItemID: item2.ID, Error: "remote call failed"},
		{ItemID: item3.ID},
	}
	require.NoError(t, s.ApplyResults(ctx, results))

	got1, err := s.GetItem(ctx, item1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got1.Status)

	got2, err := s.GetItem(ctx, item2.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got2.Status)
	assert.Equal(t, 1, got2.RetryCount)
	assert.Equal(t, "remote call failed", got2.LastError)
	assert.False(t, got2.FailedAt.IsZero())

	got3, err := s.GetItem(ctx, item3.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got3.Status)
}

func TestStorage_ApplyResults_AtomicOnError(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	item1 := enqueueAt(t, s, "1", time.Now().UTC())
	require.NoError(t, s.MarkInProgress(ctx, []string{item1.ID}))

	// Второй элемент не существует: вся партия должна откатиться
	results := []models.ItemResult{
		{ItemID: item1.ID},
		{ItemID: "missing"},
	}
	err := s.ApplyResults(ctx, results)
	require.ErrorIs(t, err, queue.ErrItemNotFound)

	got, err := s.GetItem(ctx, item1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status, "No partial commit expected")
}

func TestStorage_RequeueFailed(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	item1 := enqueueAt(t, s, "1", time.Now().UTC())
	item2 := enqueueAt(t, s, "2", time.Now().UTC())
	require.NoError(t, s.MarkInProgress(ctx, []string{item1.ID, item2.ID}))
	require.NoError(t, s.ApplyResults(ctx, []models.ItemResult{
		{ItemID: item1.ID, Error: "boom"},
		{ItemID: item2.ID},
	}))

	// Нулевая начальная задержка: элемент доступен сразу
	policy := queue.RetryPolicy{
		Mode:            queue.RetryBackoff,
		InitialInterval: 0,
		MaxInterval:     time.Minute,
		Multiplier:      2.0,
		MaxRetries:      3,
	}

	count, err := s.RequeueFailed(ctx, policy, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := s.GetItem(ctx, item1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, 1, got.RetryCount, "Retry count is preserved across requeue")

	// Завершенный элемент не затронут
	got2, err := s.GetItem(ctx, item2.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got2.Status)
}

func TestStorage_RequeueFailed_ManualMode(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	item := enqueueAt(t, s, "1", time.Now().UTC())
	require.NoError(t, s.MarkInProgress(ctx, []string{item.ID}))
	require.NoError(t, s.MarkFailed(ctx, item.ID, "boom"))

	count, err := s.RequeueFailed(ctx, queue.RetryPolicy{Mode: queue.RetryManual}, time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, count)

	got, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
}

func TestStorage_PendingCount(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	count, err := s.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	item1 := enqueueAt(t, s, "1", time.Now().UTC())
	enqueueAt(t, s, "2", time.Now().UTC())

	count, err = s.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, s.MarkInProgress(ctx, []string{item1.ID}))

	count, err = s.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStorage_PendingCount_ClosedStorage(t *testing.T) {
	// Недоступное хранилище дает 0 без ошибки
	s := &Storage{}

	count, err := s.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStorage_LastSyncTime(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	// До первой синхронизации - нулевое время
	got, err := s.GetLastSyncTime(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	now := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, s.SaveLastSyncTime(ctx, now))

	got, err = s.GetLastSyncTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, now, got)
}
