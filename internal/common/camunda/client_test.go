package camunda

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premium-estimator/internal/common/errors"
)

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"rpc error: code = Unavailable desc = connection refused", true},
		{"context deadline exceeded", true},
		{"broken pipe", true},
		{"NOT_FOUND: no process with id 'estimate'", false},
		{"invalid argument", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableZeebeError(fmt.Errorf("%s", tt.msg)))
		})
	}
}

func TestMapZeebeError(t *testing.T) {
	tests := []struct {
		msg      string
		wantCode errors.ErrorCode
	}{
		{"connection reset by peer", "EXTERNAL_SERVICE_ERROR"},
		{"deadline exceeded", "TIMEOUT_ERROR"},
		{"process not found", "RESOURCE_NOT_FOUND"},
		{"something odd", "EXTERNAL_SERVICE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := mapZeebeError(fmt.Errorf("%s", tt.msg), "create-instance", 2)
			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, stdErr.Code)
		})
	}
}

func TestExecuteWithRetry(t *testing.T) {
	c := &Client{config: &ClientConfig{RetryConfig: &RetryConfig{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
	}}}

	t.Run("transient error then success", func(t *testing.T) {
		attempts := 0
		got, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			attempts++
			if attempts < 2 {
				return nil, fmt.Errorf("unavailable")
			}
			return "ok", nil
		}, "op")

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 2, attempts)
	})

	t.Run("permanent error is not retried", func(t *testing.T) {
		attempts := 0
		_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			attempts++
			return nil, fmt.Errorf("not found")
		}, "op")

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		attempts := 0
		_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			attempts++
			return nil, fmt.Errorf("timeout")
		}, "op")

		require.Error(t, err)
		assert.Equal(t, 3, attempts)
	})
}
