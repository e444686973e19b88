package crdt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Set(t *testing.T) {
	m := NewMap()

	// Первая запись создает регистр
	changed := m.Set("price", 10, 1, "node1")
	assert.True(t, changed)
	assert.Equal(t, 1, m.Len())

	// Более новая запись заменяет значение
	changed = m.Set("price", 12, 2, "node1")
	assert.True(t, changed)

	value, ok := m.Get("price")
	require.True(t, ok)
	assert.Equal(t, 12, value)

	// Устаревшая запись игнорируется
	changed = m.Set("price", 8, 1, "node0")
	assert.False(t, changed)

	value, _ = m.Get("price")
	assert.Equal(t, 12, value)
}

func TestMap_Get_MissingField(t *testing.T) {
	m := NewMap()

	_, ok := m.Get("missing")
	assert.False(t, ok)
}

func TestMap_Merge_FieldIndependence(t *testing.T) {
	// Слияние {x: (1, t=5, "A")} и {y: (2, t=3, "B")}
	// дает оба поля без изменений
	a := NewMap()
	a.Set("x", 1, 5, "A")

	b := NewMap()
	b.Set("y", 2, 3, "B")

	merged := a.Merge(b)

	require.Equal(t, 2, merged.Len())

	x, ok := merged.Get("x")
	require.True(t, ok)
	assert.Equal(t, 1, x)

	y, ok := merged.Get("y")
	require.True(t, ok)
	assert.Equal(t, 2, y)

	xReg, _ := merged.Field("x")
	assert.Equal(t, int64(5), xReg.Timestamp)
	assert.Equal(t, "A", xReg.OriginID)
}

func TestMap_Merge_OrderIndependence(t *testing.T) {
	a := NewMap()
	a.Set("title", "draft", 3, "node1")
	a.Set("price", 10, 7, "node1")
	a.Set("stock", 5, 2, "node1")

	b := NewMap()
	b.Set("title", "final", 4, "node2")
	b.Set("price", 11, 7, "node0") // проигрывает по origin
	b.Set("color", "red", 1, "node2")

	ab := a.Merge(b)
	ba := b.Merge(a)

	assert.Equal(t, ab.Fields, ba.Fields, "a.Merge(b) and b.Merge(a) must be field-wise equal")

	title, _ := ab.Get("title")
	assert.Equal(t, "final", title, "Newer timestamp should win")

	price, _ := ab.Get("price")
	assert.Equal(t, 10, price, "Greater origin should win on equal timestamps")
}

func TestMap_Merge_DoesNotMutateOperands(t *testing.T) {
	a := NewMap()
	a.Set("x", 1, 1, "node1")

	b := NewMap()
	b.Set("x", 2, 2, "node2")

	merged := a.Merge(b)

	x, _ := merged.Get("x")
	assert.Equal(t, 2, x)

	// Операнды не изменились
	ax, _ := a.Get("x")
	assert.Equal(t, 1, ax)
	bx, _ := b.Get("x")
	assert.Equal(t, 2, bx)
}

func TestMap_Merge_Idempotence(t *testing.T) {
	a := NewMap()
	a.Set("x", 1, 5, "node1")
	a.Set("y", "text", 3, "node2")

	merged := a.Merge(a)
	assert.Equal(t, a.Fields, merged.Fields)
}

func TestMap_Merge_Associativity(t *testing.T) {
	a := NewMap()
	a.Set("f", "a", 5, "node1")

	b := NewMap()
	b.Set("f", "b", 5, "node2")
	b.Set("g", 1, 1, "node2")

	c := NewMap()
	c.Set("f", "c", 6, "node0")
	c.Set("h", 2, 2, "node3")

	left := a.Merge(b).Merge(c)
	right := a.Merge(b.Merge(c))

	assert.Equal(t, left.Fields, right.Fields)
}

func TestMap_Merge_NilOther(t *testing.T) {
	a := NewMap()
	a.Set("x", 1, 1, "node1")

	merged := a.Merge(nil)
	assert.Equal(t, a.Fields, merged.Fields)
}

func TestMap_MaxTimestamp(t *testing.T) {
	m := NewMap()
	assert.Equal(t, int64(0), m.MaxTimestamp())

	m.Set("a", 1, 3, "node1")
	m.Set("b", 2, 9, "node1")
	m.Set("c", 3, 5, "node1")

	assert.Equal(t, int64(9), m.MaxTimestamp())
}

func TestMap_JSONRoundTrip(t *testing.T) {
	m := NewMap()
	m.Set("price", float64(10), 5, "node1")
	m.Set("title", "product", 3, "node2")

	data, err := json.Marshal(m)
	require.NoError(t, err)

	restored := NewMap()
	require.NoError(t, json.Unmarshal(data, restored))

	require.Equal(t, 2, restored.Len())

	price, ok := restored.Get("price")
	require.True(t, ok)
	assert.Equal(t, float64(10), price)

	reg, ok := restored.Field("title")
	require.True(t, ok)
	assert.Equal(t, int64(3), reg.Timestamp)
	assert.Equal(t, "node2", reg.OriginID)
}
