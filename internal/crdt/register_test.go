package crdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRegister(value string, ts int64, origin string) Register[string] {
	r := NewRegister[string]()
	r.Update(value, ts, origin)
	return r
}

func TestRegister_Update_EmptyAcceptsAnyValue(t *testing.T) {
	r := NewRegister[string]()
	require.False(t, r.Present)

	changed := r.Update("v1", 0, "")
	assert.True(t, changed, "Empty register should accept any value")
	assert.True(t, r.Present)
	assert.Equal(t, "v1", r.Value)
}

func TestRegister_Update(t *testing.T) {
	tests := []struct {
		name          string
		newValue      string
		newTs         int64
		newOrigin     string
		expectChanged bool
		expectValue   string
	}{
		{
			name:          "newer timestamp wins",
			newValue:      "updated",
			newTs:         20,
			newOrigin:     "node1",
			expectChanged: true,
			expectValue:   "updated",
		},
		{
			name:          "older timestamp ignored",
			newValue:      "stale",
			newTs:         5,
			newOrigin:     "node9",
			expectChanged: false,
			expectValue:   "initial",
		},
		{
			name:          "equal timestamp greater origin wins",
			newValue:      "from node2",
			newTs:         10,
			newOrigin:     "node2",
			expectChanged: true,
			expectValue:   "from node2",
		},
		{
			name:          "equal timestamp lesser origin ignored",
			newValue:      "from node0",
			newTs:         10,
			newOrigin:     "node0",
			expectChanged: false,
			expectValue:   "initial",
		},
		{
			name:          "equal timestamp equal origin ignored",
			newValue:      "duplicate",
			newTs:         10,
			newOrigin:     "node1",
			expectChanged: false,
			expectValue:   "initial",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := makeRegister("initial", 10, "node1")

			changed := r.Update(tt.newValue, tt.newTs, tt.newOrigin)

			assert.Equal(t, tt.expectChanged, changed)
			assert.Equal(t, tt.expectValue, r.Value)
		})
	}
}

func TestRegister_Merge_DoesNotMutateOperands(t *testing.T) {
	a := makeRegister("a", 10, "node1")
	b := makeRegister("b", 20, "node2")

	merged := a.Merge(b)

	assert.Equal(t, "b", merged.Value)
	// Операнды не изменяются
	assert.Equal(t, "a", a.Value)
	assert.Equal(t, int64(10), a.Timestamp)
	assert.Equal(t, "b", b.Value)
	assert.Equal(t, int64(20), b.Timestamp)
}

func TestRegister_Merge_Commutativity(t *testing.T) {
	regs := []Register[string]{
		NewRegister[string](),
		makeRegister("x", 5, "node1"),
		makeRegister("y", 5, "node2"),
		makeRegister("z", 7, "node1"),
		makeRegister("w", 7, "node0"),
	}

	// a.Merge(b) == b.Merge(a) для всех пар
	for _, a := range regs {
		for _, b := range regs {
			assert.Equal(t, a.Merge(b), b.Merge(a),
				"Merge must be commutative for (%v, %v)", a, b)
		}
	}
}

func TestRegister_Merge_Associativity(t *testing.T) {
	regs := []Register[string]{
		NewRegister[string](),
		makeRegister("x", 5, "node1"),
		makeRegister("y", 5, "node2"),
		makeRegister("z", 9, "node3"),
	}

	// (a.Merge(b)).Merge(c) == a.Merge(b.Merge(c)) для всех троек
	for _, a := range regs {
		for _, b := range regs {
			for _, c := range regs {
				left := a.Merge(b).Merge(c)
				right := a.Merge(b.Merge(c))
				assert.Equal(t, left, right,
					"Merge must be associative for (%v, %v, %v)", a, b, c)
			}
		}
	}
}

func TestRegister_Merge_Idempotence(t *testing.T) {
	regs := []Register[string]{
		NewRegister[string](),
		makeRegister("x", 5, "node1"),
		makeRegister("y", 0, ""),
	}

	for _, a := range regs {
		assert.Equal(t, a, a.Merge(a), "a.Merge(a) must equal a")
	}
}

func TestRegister_Merge_DeterministicTieBreak(t *testing.T) {
	// Одинаковые timestamp, origin "node1" < "node2":
	// значение node2 побеждает независимо от направления слияния
	a := makeRegister("from node1", 42, "node1")
	b := makeRegister("from node2", 42, "node2")

	assert.Equal(t, "from node2", a.Merge(b).Value)
	assert.Equal(t, "from node2", b.Merge(a).Value)
}

func TestRegister_Merge_AbsentLosesToPresent(t *testing.T) {
	empty := NewRegister[string]()
	full := makeRegister("v", 1, "node1")

	assert.Equal(t, full, empty.Merge(full))
	assert.Equal(t, full, full.Merge(empty))
	assert.Equal(t, empty, empty.Merge(empty))
}
