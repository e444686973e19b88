package netmon

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPProbe_InitialStateOnline(t *testing.T) {
	p := NewHTTPProbe(DefaultProbeConfig("http://localhost:1"), discardLogger())

	assert.True(t, p.IsOnline(), "Probe should assume online until first failed check")
}

func TestHTTPProbe_SetOnline_NotifiesOnChange(t *testing.T) {
	p := NewHTTPProbe(DefaultProbeConfig("http://localhost:1"), discardLogger())

	var changes []Change
	unsubscribe := p.Subscribe(func(ch Change) {
		changes = append(changes, ch)
	})
	defer unsubscribe()

	p.SetOnline(false)
	p.SetOnline(false) // без изменения - без уведомления
	p.SetOnline(true)

	require.Len(t, changes, 2)

	assert.False(t, changes[0].Online)
	assert.Equal(t, TransportNone, changes[0].Transport)
	assert.False(t, changes[0].At.IsZero())

	assert.True(t, changes[1].Online)
	assert.Equal(t, TransportUnknown, changes[1].Transport)

	assert.True(t, p.IsOnline())
}

func TestHTTPProbe_Unsubscribe(t *testing.T) {
	p := NewHTTPProbe(DefaultProbeConfig("http://localhost:1"), discardLogger())

	calls := 0
	unsubscribe := p.Subscribe(func(Change) {
		calls++
	})

	p.SetOnline(false)
	unsubscribe()
	p.SetOnline(true)

	assert.Equal(t, 1, calls, "Unsubscribed handler must not be invoked")
}

func TestHTTPProbe_HandlerPanicIsolated(t *testing.T) {
	p := NewHTTPProbe(DefaultProbeConfig("http://localhost:1"), discardLogger())

	delivered := false
	p.Subscribe(func(Change) {
		panic("handler exploded")
	})
	p.Subscribe(func(Change) {
		delivered = true
	})

	// Паника одного обработчика не мешает доставке остальным
	assert.NotPanics(t, func() {
		p.SetOnline(false)
	})
	assert.True(t, delivered)
}

func TestStatic(t *testing.T) {
	online := Static(true)
	assert.True(t, online.IsOnline())

	offline := Static(false)
	assert.False(t, offline.IsOnline())

	// Subscribe - no-op, unsubscribe не паникует
	unsubscribe := online.Subscribe(func(Change) {
		t.Fatal("static monitor must never notify")
	})
	assert.NotPanics(t, unsubscribe)
}
