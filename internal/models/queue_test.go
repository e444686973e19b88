package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueueItem(t *testing.T) {
	item := NewQueueItem("product", "7", OperationUpdate, []byte(`{"price":10}`))

	require.NotNil(t, item)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "product", item.EntityType)
	assert.Equal(t, "7", item.EntityID)
	assert.Equal(t, OperationUpdate, item.Operation)
	assert.Equal(t, StatusPending, item.Status)
	assert.False(t, item.CreatedAt.IsZero())
	assert.Zero(t, item.RetryCount)
	assert.Empty(t, item.LastError)
}

func TestNewQueueItem_UniqueIDs(t *testing.T) {
	a := NewQueueItem("product", "1", OperationCreate, nil)
	b := NewQueueItem("product", "1", OperationCreate, nil)

	// Повторная постановка той же сущности - отдельный элемент
	assert.NotEqual(t, a.ID, b.ID)
}

func TestOperation_Valid(t *testing.T) {
	assert.True(t, OperationCreate.Valid())
	assert.True(t, OperationUpdate.Valid())
	assert.True(t, OperationDelete.Valid())
	assert.False(t, Operation("rename").Valid())
	assert.False(t, Operation("").Valid())
}

func TestItemStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    ItemStatus
		to      ItemStatus
		allowed bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusFailed, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusFailed, true},
		{StatusInProgress, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusFailed, false},
		// failed -> pending разрешен только для политики повторов
		{StatusFailed, StatusPending, true},
		{StatusFailed, StatusCompleted, false},
		{StatusFailed, StatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestQueueItem_Clone(t *testing.T) {
	item := NewQueueItem("note", "42", OperationDelete, []byte("payload"))
	item.RetryCount = 2
	item.LastError = "timeout"

	clone := item.Clone()

	require.Equal(t, item, clone)

	// Изменение клона не затрагивает оригинал
	clone.Payload[0] = 'X'
	clone.Status = StatusFailed
	assert.Equal(t, byte('p'), item.Payload[0])
	assert.Equal(t, StatusPending, item.Status)
}
