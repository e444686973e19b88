package models

import "time"

// SyncState состояние оркестратора синхронизации.
type SyncState string

// Состояния машины состояний оркестратора
const (
	StateIdle    SyncState = "idle"
	StateSyncing SyncState = "syncing"
	StateError   SyncState = "error"
	StateOffline SyncState = "offline"
)

// StateChange уведомление о переходе машины состояний.
// Рассылается подписчикам при каждом переходе.
type StateChange struct {
	At      time.Time
	Old     SyncState
	New     SyncState
	Message string
}

// SyncEvent уведомление о завершении прохода синхронизации.
type SyncEvent struct {
	At           time.Time
	Duration     time.Duration
	ErrorMessage string
	SyncedCount  int
	FailedCount  int
	Success      bool // Success = ни один элемент партии не завершился ошибкой
}

// SyncResult результат явно запрошенного прохода синхронизации.
type SyncResult struct {
	Duration    time.Duration
	SyncedCount int
	FailedCount int
	Success     bool
	Coalesced   bool // Coalesced = проход уже выполнялся, вызов завершен без работы
}

// SyncSnapshot неизменяемый снимок текущего состояния оркестратора.
// PendingCount всегда пересчитывается из очереди, никогда не кэшируется.
type SyncSnapshot struct {
	LastSyncTime time.Time
	State        SyncState
	PendingCount int
}
