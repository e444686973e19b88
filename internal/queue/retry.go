package queue

import (
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/iudanet/offsync/internal/models"
)

// RetryMode режим повторной обработки неудачных элементов очереди.
type RetryMode string

const (
	// RetryManual - неудачные элементы не возвращаются в очередь
	// автоматически; требуется ручное вмешательство.
	RetryManual RetryMode = "manual"

	// RetryBackoff - неудачные элементы возвращаются в pending после
	// экспоненциальной задержки, пока не исчерпан лимит попыток.
	RetryBackoff RetryMode = "backoff"
)

// RetryPolicy определяет, когда неудачный элемент очереди снова
// становится доступным для отправки.
type RetryPolicy struct {
	Mode            RetryMode
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	MaxRetries      int // MaxRetries максимум неудачных попыток на элемент
}

// DefaultRetryPolicy возвращает политику повторов по умолчанию:
// экспоненциальная задержка от 30 секунд до 30 минут, до 5 попыток.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Mode:            RetryBackoff,
		InitialInterval: 30 * time.Second,
		MaxInterval:     30 * time.Minute,
		Multiplier:      2.0,
		MaxRetries:      5,
	}
}

// Delay возвращает задержку перед повтором после retryCount неудач.
// Расписание детерминировано (без случайного разброса), чтобы
// Eligible была воспроизводимой.
func (p RetryPolicy) Delay(retryCount int) time.Duration {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialInterval
	eb.MaxInterval = p.MaxInterval
	eb.Multiplier = p.Multiplier
	eb.RandomizationFactor = 0

	delay := eb.NextBackOff()
	for i := 1; i < retryCount; i++ {
		delay = eb.NextBackOff()
	}
	return delay
}

// Eligible проверяет, пора ли вернуть неудачный элемент в очередь.
func (p RetryPolicy) Eligible(item *models.QueueItem, now time.Time) bool {
	if p.Mode != RetryBackoff {
		return false
	}
	if item.Status != models.StatusFailed {
		return false
	}
	if item.RetryCount >= p.MaxRetries {
		// Лимит попыток исчерпан: элемент остается failed
		return false
	}
	if item.FailedAt.IsZero() {
		return true
	}
	return !now.Before(item.FailedAt.Add(p.Delay(item.RetryCount)))
}
