package crdt

import (
	"sync"

	"github.com/google/uuid"
)

// Clock представляет логические часы Лампорта для упорядочивания правок
// в распределенной системе без доверия к физическому времени.
// Выданные timestamp используются как метки LWW-регистров.
type Clock struct {
	counter int64      // монотонно возрастающий счетчик
	nodeID  string     // уникальный идентификатор узла
	mu      sync.Mutex // мьютекс для потокобезопасности
}

// NewClock создает новые логические часы с уникальным
// идентификатором узла (UUID).
func NewClock() *Clock {
	return &Clock{
		nodeID: uuid.New().String(),
	}
}

// NewClockWithNodeID создает логические часы с заданным идентификатором
// узла. Используется для тестирования или восстановления состояния.
func NewClockWithNodeID(nodeID string) *Clock {
	return &Clock{
		nodeID: nodeID,
	}
}

// Tick увеличивает счетчик и возвращает новый timestamp.
// Вызывается при создании нового локального события.
func (c *Clock) Tick() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counter++
	return c.counter
}

// Observe обновляет счетчик по полученному удаленному timestamp.
// Вызывается при получении события от другого узла.
// По алгоритму Лампорта: counter = max(local, remote) + 1.
func (c *Clock) Observe(remoteTimestamp int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if remoteTimestamp > c.counter {
		c.counter = remoteTimestamp
	}
	c.counter++

	return c.counter
}

// Now возвращает текущее значение счетчика без его изменения.
func (c *Clock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.counter
}

// NodeID возвращает уникальный идентификатор узла.
func (c *Clock) NodeID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.nodeID
}

// SetTimestamp устанавливает счетчик в заданное значение.
// Используется для восстановления состояния часов после перезапуска.
func (c *Clock) SetTimestamp(timestamp int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counter = timestamp
}
