// Package sync реализует оркестратор синхронизации: машину состояний,
// периодический фоновый драйвер и single-flight выполнение проходов,
// опустошающих очередь мутаций через удаленную точку применения.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	stdsync "sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/iudanet/offsync/internal/crdt"
	"github.com/iudanet/offsync/internal/models"
	"github.com/iudanet/offsync/internal/netmon"
	"github.com/iudanet/offsync/internal/queue"
	"github.com/iudanet/offsync/internal/remote"
	"github.com/iudanet/offsync/pkg/api"
)

// Service определяет интерфейс оркестратора синхронизации
type Service interface {
	// Start запускает периодический фоновый драйвер
	Start(ctx context.Context) error

	// Stop останавливает драйвер, дожидаясь завершения текущего прохода
	Stop() error

	// SyncNow выполняет один проход синхронизации. В офлайне
	// возвращает ErrNetworkUnavailable без обращения к хранилищу.
	SyncNow(ctx context.Context) (*models.SyncResult, error)

	// QueueForSync сериализует сущность и ставит мутацию в очередь.
	// Единственный путь записи в очередь извне ядра.
	QueueForSync(ctx context.Context, entityType, entityID string, op models.Operation, entity any) error

	// State возвращает текущее состояние машины состояний
	State() models.SyncState

	// LastSyncTime возвращает время последнего завершенного прохода
	LastSyncTime() time.Time

	// PendingCount возвращает количество ожидающих элементов очереди
	PendingCount(ctx context.Context) int

	// Snapshot возвращает неизменяемый снимок состояния оркестратора
	Snapshot(ctx context.Context) models.SyncSnapshot

	// SubscribeStateChanges подписывает на переходы состояний.
	// Возвращаемая функция отменяет подписку.
	SubscribeStateChanges(h func(models.StateChange)) func()

	// SubscribeCompletions подписывает на события завершения проходов
	SubscribeCompletions(h func(models.SyncEvent)) func()

	// Clock возвращает логические часы оркестратора
	Clock() *crdt.Clock
}

// Config содержит настройки оркестратора.
type Config struct {
	// BatchSize ограничивает размер партии одного прохода.
	BatchSize int
	// Interval задает период фонового драйвера.
	Interval time.Duration
	// RetryPolicy управляет возвратом неудачных элементов в очередь.
	RetryPolicy queue.RetryPolicy
}

// DefaultConfig возвращает конфигурацию оркестратора по умолчанию.
func DefaultConfig() Config {
	return Config{
		BatchSize:   100,
		Interval:    5 * time.Minute,
		RetryPolicy: queue.DefaultRetryPolicy(),
	}
}

// service handles synchronization between the local queue and the
// remote endpoint.
type service struct {
	cfg       Config
	store     queue.Store
	snapshots queue.SnapshotStore
	endpoint  remote.Endpoint
	monitor   netmon.Monitor
	clock     *crdt.Clock
	events    *registry
	logger    *slog.Logger

	// flight это бинарный permit прохода: неблокирующий захват,
	// проигравший вызов завершается как no-op
	flight *semaphore.Weighted

	// mu защищает state и lastSyncTime
	mu           stdsync.Mutex
	state        models.SyncState
	lastSyncTime time.Time

	// runMu защищает жизненный цикл фонового драйвера
	runMu       stdsync.Mutex
	cancel      context.CancelFunc
	done        chan struct{}
	unsubscribe func()
	wg          stdsync.WaitGroup
}

// NewService creates a new sync orchestrator. Снимочное хранилище
// snapshots может быть nil, тогда подтвержденное состояние сервера
// не сохраняется.
func NewService(
	cfg Config,
	store queue.Store,
	snapshots queue.SnapshotStore,
	endpoint remote.Endpoint,
	monitor netmon.Monitor,
	logger *slog.Logger,
) Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	return &service{
		cfg:       cfg,
		store:     store,
		snapshots: snapshots,
		endpoint:  endpoint,
		monitor:   monitor,
		clock:     crdt.NewClock(),
		events:    newRegistry(logger),
		logger:    logger,
		flight:    semaphore.NewWeighted(1),
		state:     models.StateIdle,
	}
}

// Start запускает периодический драйвер и подписку на изменения сети
func (s *service) Start(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.cancel != nil {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	// Восстанавливаем время последней синхронизации из хранилища
	if t, err := s.store.GetLastSyncTime(runCtx); err != nil {
		s.logger.Warn("Failed to load last sync time", "error", err)
	} else {
		s.mu.Lock()
		s.lastSyncTime = t
		s.mu.Unlock()
	}

	s.unsubscribe = s.monitor.Subscribe(func(change netmon.Change) {
		s.onConnectivityChange(runCtx, change)
	})

	go s.loop(runCtx)

	s.logger.Info("Sync driver started",
		"interval", s.cfg.Interval,
		"batch_size", s.cfg.BatchSize)
	return nil
}

// Stop останавливает драйвер и дожидается завершения текущей работы
func (s *service) Stop() error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.cancel == nil {
		return ErrNotStarted
	}

	s.unsubscribe()
	s.cancel()
	<-s.done
	// Дожидаемся проходов, запущенных из callback'ов сети
	s.wg.Wait()

	s.cancel = nil
	s.done = nil
	s.unsubscribe = nil

	s.logger.Info("Sync driver stopped")
	return nil
}

// loop выполняет периодические проходы до отмены контекста
func (s *service) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.monitor.IsOnline() {
				s.logger.Debug("Skipping sync pass while offline")
				continue
			}
			// Ошибка прохода логируется, драйвер продолжает работу
			if _, err := s.runPass(ctx); err != nil {
				s.logger.Error("Sync pass failed", "error", err)
			}
		}
	}
}

// SyncNow выполняет один проход синхронизации по требованию
func (s *service) SyncNow(ctx context.Context) (*models.SyncResult, error) {
	if !s.monitor.IsOnline() {
		s.transition(models.StateOffline, "network unavailable")
		return &models.SyncResult{Success: false}, ErrNetworkUnavailable
	}
	return s.runPass(ctx)
}

// QueueForSync сериализует сущность и ставит мутацию в очередь
func (s *service) QueueForSync(ctx context.Context, entityType, entityID string, op models.Operation, entity any) error {
	var payload []byte
	if entity != nil {
		data, err := json.Marshal(entity)
		if err != nil {
			return fmt.Errorf("failed to marshal entity: %w", err)
		}
		payload = data
	}

	item := models.NewQueueItem(entityType, entityID, op, payload)
	if err := s.store.Enqueue(ctx, item); err != nil {
		return fmt.Errorf("failed to enqueue mutation: %w", err)
	}

	s.logger.Debug("Mutation queued",
		"item_id", item.ID,
		"entity_type", entityType,
		"entity_id", entityID,
		"operation", op)
	return nil
}

// runPass выполняет один проход синхронизации под single-flight permit.
// Проигравший захват permit вызов возвращает успешный Coalesced
// результат без какой-либо работы.
func (s *service) runPass(ctx context.Context) (*models.SyncResult, error) {
	if !s.flight.TryAcquire(1) {
		return &models.SyncResult{Success: true, Coalesced: true}, nil
	}
	defer s.flight.Release(1)

	start := time.Now()
	s.transition(models.StateSyncing, "")

	result, err := s.drainBatch(ctx)
	if err != nil {
		s.transition(models.StateError, err.Error())
		s.events.publishEvent(models.SyncEvent{
			At:           time.Now().UTC(),
			Duration:     time.Since(start),
			ErrorMessage: err.Error(),
			Success:      false,
		})
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.store.SaveLastSyncTime(ctx, now); err != nil {
		// Не прерываем проход из-за ошибки сохранения метки времени
		s.logger.Warn("Failed to save last sync time", "error", err)
	}
	s.mu.Lock()
	s.lastSyncTime = now
	s.mu.Unlock()

	result.Duration = time.Since(start)
	s.transition(models.StateIdle, "")
	s.events.publishEvent(models.SyncEvent{
		At:          now,
		Duration:    result.Duration,
		SyncedCount: result.SyncedCount,
		FailedCount: result.FailedCount,
		Success:     result.Success,
	})

	s.logger.Info("Sync pass completed",
		"synced", result.SyncedCount,
		"failed", result.FailedCount,
		"duration", result.Duration)
	return result, nil
}

// drainBatch выбирает партию ожидающих элементов и применяет их по
// одному. Ошибка отдельного элемента фиксируется в его результате и
// не прерывает партию; ошибки хранилища фатальны для прохода.
func (s *service) drainBatch(ctx context.Context) (*models.SyncResult, error) {
	requeued, err := s.store.RequeueFailed(ctx, s.cfg.RetryPolicy, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to requeue items: %w", err)
	}
	if requeued > 0 {
		s.logger.Info("Requeued failed items", "count", requeued)
	}

	items, err := s.store.SelectBatch(ctx, s.cfg.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to select batch: %w", err)
	}
	if len(items) == 0 {
		return &models.SyncResult{Success: true}, nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	if err := s.store.MarkInProgress(ctx, ids); err != nil {
		return nil, fmt.Errorf("failed to mark batch in progress: %w", err)
	}

	result := &models.SyncResult{}
	results := make([]models.ItemResult, 0, len(items))
	for _, item := range items {
		resp, err := s.endpoint.Apply(ctx, item)
		if err != nil {
			result.FailedCount++
			results = append(results, models.ItemResult{ItemID: item.ID, Error: err.Error()})
			s.logger.Warn("Failed to apply mutation",
				"item_id", item.ID,
				"entity_type", item.EntityType,
				"entity_id", item.EntityID,
				"error", err)
			continue
		}

		result.SyncedCount++
		results = append(results, models.ItemResult{ItemID: item.ID})
		s.mergeConfirmed(ctx, item, resp)
	}

	// Результаты всей партии фиксируются атомарно
	if err := s.store.ApplyResults(ctx, results); err != nil {
		return nil, fmt.Errorf("failed to apply batch results: %w", err)
	}

	result.Success = result.FailedCount == 0
	return result, nil
}

// mergeConfirmed сливает подтвержденное сервером состояние записи в
// локальный снимок. Ошибки не фатальны: снимок это кэш, источником
// истины остается сервер.
func (s *service) mergeConfirmed(ctx context.Context, item *models.QueueItem, resp *api.MutationResponse) {
	if resp == nil {
		return
	}
	// Локальные часы не должны отставать от уже увиденных серверных
	s.clock.Observe(resp.ServerTimestamp)
	if s.snapshots == nil || len(resp.Fields) == 0 {
		return
	}

	confirmed := crdt.NewMap()
	for field, reg := range resp.Fields {
		confirmed.Set(field, reg.Value, reg.Timestamp, reg.OriginID)
	}

	existing, err := s.snapshots.GetSnapshot(ctx, item.EntityType, item.EntityID)
	if err != nil {
		if !errors.Is(err, queue.ErrSnapshotNotFound) {
			s.logger.Warn("Failed to load entity snapshot",
				"entity_type", item.EntityType,
				"entity_id", item.EntityID,
				"error", err)
			return
		}
		existing = crdt.NewMap()
	}

	merged := existing.Merge(confirmed)
	s.clock.Observe(merged.MaxTimestamp())
	if err := s.snapshots.SaveSnapshot(ctx, item.EntityType, item.EntityID, merged); err != nil {
		s.logger.Warn("Failed to save entity snapshot",
			"entity_type", item.EntityType,
			"entity_id", item.EntityID,
			"error", err)
	}
}

// onConnectivityChange обрабатывает уведомление монитора сети
func (s *service) onConnectivityChange(ctx context.Context, change netmon.Change) {
	if !change.Online {
		s.transition(models.StateOffline, "network unavailable")
		return
	}

	// Восстановление сети переводит в Idle только из Offline
	if !s.transitionFrom(models.StateOffline, models.StateIdle, "network restored") {
		return
	}

	s.logger.Info("Network restored, triggering sync pass", "transport", change.Transport)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.runPass(ctx); err != nil {
			s.logger.Error("Sync pass failed", "error", err)
		}
	}()
}

// transition переводит машину состояний в новое состояние.
// Переход в то же самое состояние не рассылается.
func (s *service) transition(next models.SyncState, message string) {
	s.transitionFrom("", next, message)
}

// transitionFrom выполняет переход только из состояния only; пустое
// only означает переход из любого состояния. Возвращает true если
// переход состоялся.
func (s *service) transitionFrom(only, next models.SyncState, message string) bool {
	s.mu.Lock()
	old := s.state
	if only != "" && old != only {
		s.mu.Unlock()
		return false
	}
	if old == next {
		s.mu.Unlock()
		return false
	}
	s.state = next
	s.mu.Unlock()

	s.events.publishState(models.StateChange{
		At:      time.Now().UTC(),
		Old:     old,
		New:     next,
		Message: message,
	})
	return true
}

// State возвращает текущее состояние машины состояний
func (s *service) State() models.SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastSyncTime возвращает время последнего завершенного прохода
func (s *service) LastSyncTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSyncTime
}

// PendingCount возвращает количество ожидающих элементов очереди
func (s *service) PendingCount(ctx context.Context) int {
	count, err := s.store.PendingCount(ctx)
	if err != nil {
		s.logger.Debug("Failed to count pending items", "error", err)
		return 0
	}
	return count
}

// Snapshot возвращает снимок текущего состояния оркестратора
func (s *service) Snapshot(ctx context.Context) models.SyncSnapshot {
	s.mu.Lock()
	state := s.state
	lastSync := s.lastSyncTime
	s.mu.Unlock()

	return models.SyncSnapshot{
		State:        state,
		LastSyncTime: lastSync,
		PendingCount: s.PendingCount(ctx),
	}
}

// SubscribeStateChanges подписывает на переходы состояний
func (s *service) SubscribeStateChanges(h func(models.StateChange)) func() {
	return s.events.subscribeState(h)
}

// SubscribeCompletions подписывает на события завершения проходов
func (s *service) SubscribeCompletions(h func(models.SyncEvent)) func() {
	return s.events.subscribeEvent(h)
}

// Clock возвращает логические часы оркестратора
func (s *service) Clock() *crdt.Clock {
	return s.clock
}
