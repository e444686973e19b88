package crdt

import "encoding/json"

// Map представляет CRDT целой записи: отображение имени поля в
// LWW-регистр. Разрешение конфликтов выполняется независимо по
// каждому полю, поэтому две расходящиеся правки разных полей одной
// записи сливаются без потерь.
//
// Значения полей считаются неизменяемыми после Set: регистры
// копируются по значению, но ссылочные типы внутри Value не клонируются.
type Map struct {
	Fields map[string]Register[any] `json:"fields"`
}

// NewMap создает пустой Map.
func NewMap() *Map {
	return &Map{
		Fields: make(map[string]Register[any]),
	}
}

// Set записывает значение поля. При первой записи создается регистр,
// иначе применяется правило LWW (см. Register.Update).
// Возвращает true, если значение поля было заменено.
func (m *Map) Set(field string, value any, timestamp int64, originID string) bool {
	if m.Fields == nil {
		m.Fields = make(map[string]Register[any])
	}

	reg := m.Fields[field]
	changed := reg.Update(value, timestamp, originID)
	if changed {
		m.Fields[field] = reg
	}
	return changed
}

// Get возвращает значение поля и признак его наличия.
func (m *Map) Get(field string) (any, bool) {
	reg, ok := m.Fields[field]
	if !ok || !reg.Present {
		return nil, false
	}
	return reg.Value, true
}

// Field возвращает регистр поля целиком (копию по значению).
func (m *Map) Field(field string) (Register[any], bool) {
	reg, ok := m.Fields[field]
	return reg, ok && reg.Present
}

// Len возвращает количество полей с присутствующим значением.
func (m *Map) Len() int {
	count := 0
	for _, reg := range m.Fields {
		if reg.Present {
			count++
		}
	}
	return count
}

// Merge возвращает новый Map: объединение по ключам.
// Поля, присутствующие в обоих операндах, сливаются по правилу LWW;
// поля только одного операнда копируются как есть.
// Результат не зависит от порядка аргументов:
// a.Merge(b) и b.Merge(a) по полям равны.
func (m *Map) Merge(other *Map) *Map {
	result := NewMap()

	for field, reg := range m.Fields {
		result.Fields[field] = reg
	}

	if other == nil {
		return result
	}

	for field, otherReg := range other.Fields {
		if existing, ok := result.Fields[field]; ok {
			result.Fields[field] = existing.Merge(otherReg)
		} else {
			result.Fields[field] = otherReg
		}
	}

	return result
}

// MaxTimestamp возвращает максимальный timestamp среди полей.
// Используется для продвижения логических часов при получении
// подтвержденного состояния с сервера.
func (m *Map) MaxTimestamp() int64 {
	var maxTs int64
	for _, reg := range m.Fields {
		if reg.Present && reg.Timestamp > maxTs {
			maxTs = reg.Timestamp
		}
	}
	return maxTs
}

// MarshalJSON сериализует Map как объект полей.
func (m *Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Fields)
}

// UnmarshalJSON восстанавливает Map из объекта полей.
func (m *Map) UnmarshalJSON(data []byte) error {
	fields := make(map[string]Register[any])
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	m.Fields = fields
	return nil
}
