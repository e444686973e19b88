// Package remote определяет границу с удаленной стороной: применение
// одной мутации очереди. Транспортный протокол не является частью ядра;
// реализация по умолчанию (HTTP) находится в подпакете httpclient.
package remote

import (
	"context"

	"github.com/iudanet/offsync/internal/models"
	"github.com/iudanet/offsync/pkg/api"
)

//go:generate moq -out remote_mock.go . Endpoint

// Endpoint defines interface for applying a single queued mutation
// on the remote side.
//
// Контракт доставки at-least-once: оркестратор не дедуплицирует
// повторные применения. Реализация (или сервер) обязана быть
// идемпотентной по ID элемента очереди; HTTP-реализация передает его
// заголовком Idempotency-Key.
type Endpoint interface {
	// Apply performs the remote mutation for one queue item.
	// Возвращаемый ответ может содержать подтвержденное состояние
	// записи для слияния в локальный снимок; nil-ответ допустим.
	Apply(ctx context.Context, item *models.QueueItem) (*api.MutationResponse, error)
}
