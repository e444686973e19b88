package netmon

// Static реализует Monitor с фиксированным состоянием сети.
// Используется, когда зондирование не настроено: движок считает
// сеть всегда доступной (или всегда недоступной).
type Static bool

// IsOnline returns the fixed connectivity state
func (s Static) IsOnline() bool {
	return bool(s)
}

// Subscribe is a no-op: состояние никогда не меняется
func (s Static) Subscribe(_ Handler) func() {
	return func() {}
}
