package netmon

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// ProbeConfig конфигурация HTTP-зондирования сети.
type ProbeConfig struct {
	// URL адрес для периодической проверки доступности.
	URL string

	// Interval период между проверками.
	Interval time.Duration

	// Timeout таймаут одной проверки.
	Timeout time.Duration

	// Transport классификация транспорта, сообщаемая подписчикам.
	Transport Transport
}

// DefaultProbeConfig возвращает конфигурацию зондирования по умолчанию.
func DefaultProbeConfig(url string) ProbeConfig {
	return ProbeConfig{
		URL:       url,
		Interval:  30 * time.Second,
		Timeout:   5 * time.Second,
		Transport: TransportUnknown,
	}
}

// HTTPProbe реализует Monitor периодическим HEAD-запросом к известному
// адресу. Смена результата проверки рассылается подписчикам.
type HTTPProbe struct {
	cfg        ProbeConfig
	httpClient *http.Client
	logger     *slog.Logger

	mu       sync.RWMutex
	online   bool
	handlers map[int]Handler
	nextID   int

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewHTTPProbe создает монитор сети с HTTP-зондированием.
// Монитор считается online до первой неудачной проверки.
func NewHTTPProbe(cfg ProbeConfig, logger *slog.Logger) *HTTPProbe {
	return &HTTPProbe{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:   logger,
		online:   true,
		handlers: make(map[int]Handler),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновое зондирование.
func (p *HTTPProbe) Start(ctx context.Context) {
	go p.loop(ctx)
}

// Stop останавливает фоновое зондирование и дожидается выхода.
func (p *HTTPProbe) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
	<-p.done
}

// IsOnline returns the current connectivity snapshot
func (p *HTTPProbe) IsOnline() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.online
}

// Subscribe registers a change handler and returns an unsubscribe function
func (p *HTTPProbe) Subscribe(h Handler) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.handlers[id] = h

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.handlers, id)
	}
}

// SetOnline принудительно устанавливает состояние сети.
// Используется в тестах и для ручного перевода в offline из CLI.
func (p *HTTPProbe) SetOnline(online bool) {
	p.setOnline(online)
}

func (p *HTTPProbe) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			p.setOnline(p.probe(ctx))
		}
	}
}

// probe выполняет одну проверку доступности
func (p *HTTPProbe) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.cfg.URL, nil)
	if err != nil {
		p.logger.Warn("failed to create probe request", "error", err)
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Любой ответ сервера означает, что сеть доступна
	return resp.StatusCode < http.StatusInternalServerError
}

// setOnline обновляет состояние и уведомляет подписчиков при изменении
func (p *HTTPProbe) setOnline(online bool) {
	p.mu.Lock()
	if p.online == online {
		p.mu.Unlock()
		return
	}
	p.online = online

	transport := p.cfg.Transport
	if !online {
		transport = TransportNone
	}

	change := Change{
		At:        time.Now().UTC(),
		Transport: transport,
		Online:    online,
	}

	handlers := make([]Handler, 0, len(p.handlers))
	for _, h := range p.handlers {
		handlers = append(handlers, h)
	}
	p.mu.Unlock()

	p.logger.Info("connectivity changed", "online", online, "transport", transport)

	// Уведомляем вне блокировки: обработчики могут обращаться к монитору
	for _, h := range handlers {
		p.notify(h, change)
	}
}

// notify вызывает обработчик, изолируя его панику от остальных
func (p *HTTPProbe) notify(h Handler, change Change) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("connectivity handler panicked", "panic", r)
		}
	}()
	h(change)
}
