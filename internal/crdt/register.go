package crdt

// Register представляет LWW-регистр (Last-Write-Wins) одного поля.
// Это минимальный CRDT: при конфликте побеждает значение с большим
// timestamp, при равных timestamp - значение с лексикографически
// большим OriginID. Это гарантирует сходимость даже при расхождении
// часов между узлами, выдающими одинаковые timestamp.
type Register[T any] struct {
	Value     T      `json:"value"`
	OriginID  string `json:"origin_id"`
	Timestamp int64  `json:"timestamp"`
	Present   bool   `json:"present"` // Present false = значение отсутствует
}

// NewRegister создает пустой регистр (значение отсутствует).
func NewRegister[T any]() Register[T] {
	return Register[T]{}
}

// Update заменяет хранимое значение, если пара (timestamp, originID)
// новее текущей. Пустой регистр принимает любое значение.
// Возвращает true, если значение было заменено.
// Операция тотальна: ошибочных входов не существует.
func (r *Register[T]) Update(value T, timestamp int64, originID string) bool {
	if r.Present && !newer(timestamp, originID, r.Timestamp, r.OriginID) {
		return false
	}

	r.Value = value
	r.Timestamp = timestamp
	r.OriginID = originID
	r.Present = true
	return true
}

// Merge возвращает новый регистр с победителем по правилу LWW.
// Операнды не изменяются: ссылочная прозрачность обязательна для
// сходимости при конкурентных слияниях.
// Merge коммутативна, ассоциативна и идемпотентна.
func (r Register[T]) Merge(other Register[T]) Register[T] {
	// Отсутствующее значение всегда проигрывает присутствующему
	if !r.Present {
		return other
	}
	if !other.Present {
		return r
	}

	if newer(other.Timestamp, other.OriginID, r.Timestamp, r.OriginID) {
		return other
	}
	return r
}

// newer определяет, что версия (aTs, aOrigin) строго новее (bTs, bOrigin).
// Правило LWW:
// 1. Больший timestamp выигрывает
// 2. При равных timestamp выигрывает лексикографически больший origin
func newer(aTs int64, aOrigin string, bTs int64, bOrigin string) bool {
	if aTs != bTs {
		return aTs > bTs
	}
	return aOrigin > bOrigin
}
