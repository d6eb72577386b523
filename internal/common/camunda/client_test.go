// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"benevolence-intake/internal/common/errors"
	"benevolence-intake/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRetry(maxRetries int) *RetryConfig {
	return &RetryConfig{
		MaxRetries: maxRetries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
	}
}

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		msg       string
		retryable bool
	}{
		{"rpc error: code = Unavailable desc = connection refused", true},
		{"context deadline exceeded", true},
		{"write: broken pipe", true},
		{"Command 'CREATE' rejected: process not found", false},
		{"invalid argument", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableZeebeError(stderrors.New(tt.msg)))
		})
	}
}

func TestMapZeebeError(t *testing.T) {
	tests := []struct {
		msg          string
		expectedCode errors.ErrorCode
	}{
		{"connection refused", errors.ErrCodeExternalService},
		{"deadline exceeded", errors.ErrCodeTimeout},
		{"resource already exists", errors.ErrCodeInvalidRequest},
		{"job not found", errors.ErrCodeInternal},
		{"permission denied", errors.ErrCodeInternal},
		{"something odd", errors.ErrCodeExternalService},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := mapZeebeError(stderrors.New(tt.msg), "complete-job", 2)
			assert.Equal(t, tt.expectedCode, errors.CodeOf(err))
		})
	}
}

func TestExecuteWithRetry(t *testing.T) {
	t.Run("retries transient errors until success", func(t *testing.T) {
		calls := 0

		err := executeWithRetry(context.Background(), testRetry(3), func(context.Context) error {
			calls++
			if calls < 3 {
				return stderrors.New("unavailable")
			}
			return nil
		}, "complete-job")

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent errors are not retried", func(t *testing.T) {
		calls := 0

		err := executeWithRetry(context.Background(), testRetry(3), func(context.Context) error {
			calls++
			return stderrors.New("job not found")
		}, "complete-job")

		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0

		err := executeWithRetry(context.Background(), testRetry(2), func(context.Context) error {
			calls++
			return stderrors.New("connection reset")
		}, "complete-job")

		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, errors.ErrCodeExternalService, errors.CodeOf(err))
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0

		err := executeWithRetry(ctx, &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}, func(context.Context) error {
			calls++
			cancel()
			return stderrors.New("unavailable")
		}, "complete-job")

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestInstrument_TracksActiveJobs(t *testing.T) {
	var during float64
	gauge := metrics.WorkerJobsActive.WithLabelValues("camunda-instrument-test")

	wrapped := instrument("camunda-instrument-test", func(worker.JobClient, entities.Job) {
		during = testutil.ToFloat64(gauge)
	})
	wrapped(nil, entities.Job{})

	assert.Equal(t, 1.0, during)
	assert.Equal(t, 0.0, testutil.ToFloat64(gauge))
}
