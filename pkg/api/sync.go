// Package api содержит wire-типы для обмена с удаленной стороной.
package api

import (
	"encoding/json"
	"time"
)

// MutationRequest представляет одну мутацию сущности для применения
// на удаленной стороне.
type MutationRequest struct {
	CreatedAt  time.Time       `json:"created_at"`
	ID         string          `json:"id"` // ID элемента очереди, он же ключ идемпотентности
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Operation  string          `json:"operation"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// FieldRegister представляет LWW-регистр одного поля в подтвержденном
// состоянии записи на сервере.
type FieldRegister struct {
	Value     json.RawMessage `json:"value"`
	OriginID  string          `json:"origin_id"`
	Timestamp int64           `json:"timestamp"`
}

// MutationResponse представляет ответ сервера на применение мутации.
type MutationResponse struct {
	Fields          map[string]FieldRegister `json:"fields,omitempty"` // Подтвержденное состояние записи
	ServerTimestamp int64                    `json:"server_timestamp"` // Текущий логический timestamp сервера
	Applied         bool                     `json:"applied"`          // Applied false = мутация проиграла по LWW
}

// ErrorResponse представляет ошибку, возвращаемую сервером.
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
