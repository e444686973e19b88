// Package netmon предоставляет сигнал состояния сети: текущий снимок
// online/offline и уведомления об изменениях.
package netmon

import "time"

//go:generate moq -out netmon_mock.go . Monitor

// Transport классификация транспорта сети.
type Transport string

// Известные типы транспорта
const (
	TransportUnknown  Transport = "unknown"
	TransportEthernet Transport = "ethernet"
	TransportWiFi     Transport = "wifi"
	TransportCellular Transport = "cellular"
	TransportNone     Transport = "none"
)

// Change уведомление об изменении состояния сети.
type Change struct {
	At        time.Time
	Transport Transport
	Online    bool
}

// Handler обработчик уведомлений об изменении состояния сети.
type Handler func(Change)

// Monitor defines interface for the network connectivity signal.
type Monitor interface {
	// IsOnline returns the current connectivity snapshot.
	IsOnline() bool

	// Subscribe registers a change handler and returns an
	// unsubscribe function. Handlers are invoked on every
	// online/offline transition.
	Subscribe(h Handler) func()
}
