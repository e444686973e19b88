package models

import (
	"time"

	"github.com/google/uuid"
)

// Operation тип операции, отложенной в очереди синхронизации.
type Operation string

// Поддерживаемые операции над сущностями
const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Valid проверяет, что операция одна из поддерживаемых.
func (op Operation) Valid() bool {
	switch op {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// ItemStatus статус элемента очереди синхронизации.
type ItemStatus string

// Жизненный цикл элемента очереди:
// pending -> in_progress -> {completed, failed}.
// Переход failed -> pending выполняется только политикой повторов (requeue).
const (
	StatusPending    ItemStatus = "pending"
	StatusInProgress ItemStatus = "in_progress"
	StatusCompleted  ItemStatus = "completed"
	StatusFailed     ItemStatus = "failed"
)

// CanTransitionTo проверяет допустимость перехода статуса.
func (s ItemStatus) CanTransitionTo(next ItemStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted || next == StatusFailed
	case StatusFailed:
		// Элемент возвращается в очередь политикой повторов
		return next == StatusPending
	}
	return false
}

// QueueItem представляет одну отложенную мутацию сущности.
// Создается при постановке в очередь, изменяется только оркестратором
// во время прохода синхронизации. Элементы никогда не удаляются:
// завершенные и неудачные остаются для аудита и истории повторов.
type QueueItem struct {
	CreatedAt  time.Time  `json:"created_at"` // CreatedAt время постановки в очередь, определяет порядок отправки
	FailedAt   time.Time  `json:"failed_at"`  // FailedAt время последнего перехода в failed (для backoff)
	ID         string     `json:"id"`         // ID уникальный идентификатор элемента (UUID), он же ключ идемпотентности
	EntityType string     `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	Operation  Operation  `json:"operation"`
	LastError  string     `json:"last_error"` // LastError текст последней ошибки удаленного применения
	Payload    []byte     `json:"payload"`    // Payload сериализованный снимок сущности
	RetryCount int        `json:"retry_count"`
	Status     ItemStatus `json:"status"`
}

// NewQueueItem создает новый элемент очереди в статусе pending.
func NewQueueItem(entityType, entityID string, op Operation, payload []byte) *QueueItem {
	return &QueueItem{
		ID:         uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		Operation:  op,
		Payload:    payload,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
}

// Clone создает глубокую копию элемента очереди.
func (i *QueueItem) Clone() *QueueItem {
	payload := make([]byte, len(i.Payload))
	copy(payload, i.Payload)

	clone := *i
	clone.Payload = payload
	return &clone
}

// ItemResult результат удаленного применения одного элемента очереди.
// Пустая Error означает успех.
type ItemResult struct {
	ItemID string
	Error  string
}
