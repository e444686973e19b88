// Package httpclient реализует remote.Endpoint поверх HTTP JSON API.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/iudanet/offsync/internal/models"
	"github.com/iudanet/offsync/pkg/api"
)

// Config содержит настройки HTTP клиента.
type Config struct {
	// BaseURL is the server base URL, e.g. "https://sync.example.com".
	BaseURL string
	// Token is the bearer token sent in Authorization header. Empty
	// token disables the header.
	Token string
	// MaxTries limits attempts per mutation including the first one.
	MaxTries uint
	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration
	// Timeout applies to each individual HTTP request.
	Timeout time.Duration
}

// DefaultConfig возвращает конфигурацию клиента по умолчанию.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		MaxTries:       3,
		InitialBackoff: 500 * time.Millisecond,
		Timeout:        30 * time.Second,
	}
}

// Client представляет HTTP клиент для применения мутаций на сервере.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// NewClient создает новый API клиент.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// statusError сигнализирует неуспешный HTTP статус.
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.code, e.message)
}

// Apply отправляет одну мутацию на сервер. Повтор мутации с тем же ID
// безопасен: сервер дедуплицирует по заголовку Idempotency-Key.
// Временные ошибки (сеть, 5xx) повторяются с экспоненциальной
// задержкой, ошибки 4xx считаются постоянными.
func (c *Client) Apply(ctx context.Context, item *models.QueueItem) (*api.MutationResponse, error) {
	req := api.MutationRequest{
		ID:         item.ID,
		EntityType: item.EntityType,
		EntityID:   item.EntityID,
		Operation:  string(item.Operation),
		Payload:    json.RawMessage(item.Payload),
		CreatedAt:  item.CreatedAt,
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.cfg.InitialBackoff

	resp, err := backoff.Retry(ctx, func() (*api.MutationResponse, error) {
		var resp api.MutationResponse
		err := c.doRequest(ctx, http.MethodPost, "/api/v1/mutations", item.ID, req, &resp)
		if err != nil {
			var se *statusError
			if errors.As(err, &se) && se.code >= 400 && se.code < 500 {
				// Клиентская ошибка, повторять бессмысленно
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return &resp, nil
	}, backoff.WithBackOff(eb), backoff.WithMaxTries(c.cfg.MaxTries))
	if err != nil {
		return nil, fmt.Errorf("apply mutation failed: %w", err)
	}
	return resp, nil
}

// doRequest выполняет HTTP запрос.
func (c *Client) doRequest(ctx context.Context, method, path, idempotencyKey string, body, result interface{}) error {
	url := c.cfg.BaseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return &statusError{code: resp.StatusCode, message: errResp.Message}
		}
		return &statusError{code: resp.StatusCode, message: string(respBody)}
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
