package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/offsync/internal/models"
)

func failedItem(retryCount int, failedAt time.Time) *models.QueueItem {
	item := models.NewQueueItem("product", "1", models.OperationUpdate, nil)
	item.Status = models.StatusFailed
	item.RetryCount = retryCount
	item.FailedAt = failedAt
	return item
}

func TestRetryPolicy_Delay(t *testing.T) {
	policy := RetryPolicy{
		Mode:            RetryBackoff,
		InitialInterval: time.Second,
		MaxInterval:     time.Minute,
		Multiplier:      2.0,
		MaxRetries:      10,
	}

	// Экспоненциальное расписание: 1s, 2s, 4s, ... с потолком 1m
	assert.Equal(t, time.Second, policy.Delay(1))
	assert.Equal(t, 2*time.Second, policy.Delay(2))
	assert.Equal(t, 4*time.Second, policy.Delay(3))
	assert.Equal(t, 8*time.Second, policy.Delay(4))
	assert.Equal(t, time.Minute, policy.Delay(10), "Delay should be capped at MaxInterval")
}

func TestRetryPolicy_Eligible(t *testing.T) {
	now := time.Now().UTC()

	policy := RetryPolicy{
		Mode:            RetryBackoff,
		InitialInterval: time.Minute,
		MaxInterval:     time.Hour,
		Multiplier:      2.0,
		MaxRetries:      3,
	}

	tests := []struct {
		name     string
		item     *models.QueueItem
		policy   RetryPolicy
		eligible bool
	}{
		{
			name:     "backoff elapsed",
			item:     failedItem(1, now.Add(-2*time.Minute)),
			policy:   policy,
			eligible: true,
		},
		{
			name:     "backoff not yet elapsed",
			item:     failedItem(1, now.Add(-10*time.Second)),
			policy:   policy,
			eligible: false,
		},
		{
			name:     "max retries reached",
			item:     failedItem(3, now.Add(-24*time.Hour)),
			policy:   policy,
			eligible: false,
		},
		{
			name:     "manual mode never requeues",
			item:     failedItem(1, now.Add(-24*time.Hour)),
			policy:   RetryPolicy{Mode: RetryManual, MaxRetries: 5},
			eligible: false,
		},
		{
			name:     "zero failed_at is immediately eligible",
			item:     failedItem(1, time.Time{}),
			policy:   policy,
			eligible: true,
		},
		{
			name: "pending item is not eligible",
			item: func() *models.QueueItem {
				i := failedItem(1, now.Add(-24*time.Hour))
				i.Status = models.StatusPending
				return i
			}(),
			policy:   policy,
			eligible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, tt.policy.Eligible(tt.item, now))
		})
	}
}

func TestDefaultRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()

	assert.Equal(t, RetryBackoff, policy.Mode)
	assert.Equal(t, 5, policy.MaxRetries)
	assert.Equal(t, 30*time.Second, policy.InitialInterval)
	assert.Equal(t, 30*time.Minute, policy.MaxInterval)
}
