package errors

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{
			name:        "validation errors are thrown without retry",
			err:         NewProfileValidationFailedError("age out of range", nil),
			wantCode:    "PROFILE_VALIDATION_FAILED",
			wantRetries: 0,
		},
		{
			name:        "predictor timeout maps onto prediction failure",
			err:         NewPredictorTimeoutError(2 * time.Second),
			wantCode:    "PREDICTION_FAILED",
			wantRetries: 2,
		},
		{
			name:        "database insert is retried",
			err:         NewDatabaseInsertFailedError(fmt.Errorf("conn reset")),
			wantCode:    "DATABASE_INSERT_FAILED",
			wantRetries: 3,
		},
		{
			name:        "unmapped code passes through",
			err:         &StandardError{Code: "SOMETHING_ELSE", Message: "x", Retryable: true},
			wantCode:    "SOMETHING_ELSE",
			wantRetries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, bpmnErr.Code)
			assert.Equal(t, tt.wantRetries, bpmnErr.Retries)
			assert.Equal(t, string(tt.err.Code), bpmnErr.ErrorVariables["originalErrorCode"])
		})
	}
}

func TestBPMNError_ToErrorVariables(t *testing.T) {
	bpmnErr := &BPMNError{
		Code:           "PREDICTION_FAILED",
		Message:        "Premium prediction failed",
		Details:        "503",
		Retryable:      true,
		ErrorVariables: map[string]interface{}{"requestId": "r-1"},
	}

	vars := bpmnErr.ToErrorVariables()
	assert.Equal(t, "PREDICTION_FAILED", vars["errorCode"])
	assert.Equal(t, "Premium prediction failed", vars["errorMessage"])
	assert.Equal(t, "503", vars["errorDetails"])
	assert.Equal(t, true, vars["retryable"])
	assert.Equal(t, "r-1", vars["requestId"])
}

func TestNormalize(t *testing.T) {
	t.Run("wrapped standard error is found", func(t *testing.T) {
		inner := NewThemeNotFoundError("neon")
		got := Normalize(fmt.Errorf("render: %w", inner))
		assert.Same(t, inner, got)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		got := Normalize(fmt.Errorf("boom"))
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.Equal(t, "boom", got.Details)
		assert.False(t, got.Retryable)
	})
}

func TestProfileValidationFailedError_CarriesFieldErrors(t *testing.T) {
	fieldErrs := []string{"age", "region"}
	err := NewProfileValidationFailedError("2 violations", fieldErrs)

	require.NotNil(t, err.Metadata)
	assert.Equal(t, fieldErrs, err.Metadata["errors"])
	assert.Equal(t, "StandardError[PROFILE_VALIDATION_FAILED]: Applicant profile validation failed", err.Error())
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeProfileValidationFailed, "VALIDATION"},
		{ErrCodePredictionFailed, "PREDICTOR"},
		{ErrCodePredictorTimeout, "PREDICTOR"},
		{ErrCodeDatabaseInsertFailed, "DATABASE"},
		{ErrCodeNotificationSendFailed, "NOTIFICATION"},
		{ErrCodeThemeNotFound, "PRESENTATION"},
		{ErrCodeInternal, "OTHER"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorCategory(tt.code))
		})
	}
}

func TestGetRetryCount(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeNotificationSendFailed))
	assert.Equal(t, 2, GetRetryCount(ErrCodePredictionFailed))
	assert.Equal(t, 0, GetRetryCount(ErrCodeProfileValidationFailed))
	assert.Equal(t, 0, GetRetryCount(ErrCodeThemeNotFound))
}
