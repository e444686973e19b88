package sync

import (
	"log/slog"
	stdsync "sync"

	"github.com/iudanet/offsync/internal/models"
)

// registry хранит подписчиков на события оркестратора.
// Подписчики вызываются синхронно в порядке регистрации; паника
// подписчика изолируется и не прерывает рассылку остальным.
type registry struct {
	mu        stdsync.RWMutex
	nextID    int
	stateSubs map[int]func(models.StateChange)
	eventSubs map[int]func(models.SyncEvent)
	logger    *slog.Logger
}

func newRegistry(logger *slog.Logger) *registry {
	return &registry{
		stateSubs: make(map[int]func(models.StateChange)),
		eventSubs: make(map[int]func(models.SyncEvent)),
		logger:    logger,
	}
}

// subscribeState регистрирует подписчика на переходы состояний.
// Возвращаемая функция отменяет подписку.
func (r *registry) subscribeState(h func(models.StateChange)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.stateSubs[id] = h
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.stateSubs, id)
	}
}

// subscribeEvent регистрирует подписчика на события завершения прохода.
func (r *registry) subscribeEvent(h func(models.SyncEvent)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.eventSubs[id] = h
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.eventSubs, id)
	}
}

func (r *registry) publishState(change models.StateChange) {
	r.mu.RLock()
	handlers := make([]func(models.StateChange), 0, len(r.stateSubs))
	for _, h := range r.stateSubs {
		handlers = append(handlers, h)
	}
	r.mu.RUnlock()

	for _, h := range handlers {
		r.call(func() { h(change) })
	}
}

func (r *registry) publishEvent(event models.SyncEvent) {
	r.mu.RLock()
	handlers := make([]func(models.SyncEvent), 0, len(r.eventSubs))
	for _, h := range r.eventSubs {
		handlers = append(handlers, h)
	}
	r.mu.RUnlock()

	for _, h := range handlers {
		r.call(func() { h(event) })
	}
}

// call вызывает обработчик, изолируя его панику.
func (r *registry) call(h func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Event subscriber panicked", "panic", rec)
		}
	}()
	h()
}
