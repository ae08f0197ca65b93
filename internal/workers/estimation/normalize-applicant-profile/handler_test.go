package normalizeapplicantprofile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premium-estimator/internal/common/config"
	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/common/logger"
	"premium-estimator/internal/models"
	"premium-estimator/internal/profile"
)

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	n, err := profile.NewNormalizer()
	require.NoError(t, err)
	return NewHandler(LoadConfig(config.WorkerConfig{}), n, logger.NewTestLogger(t))
}

func createTestInput() *Input {
	return &Input{
		RequestID: "req-001",
		ApplicationData: map[string]interface{}{
			"Age":                  41.0,
			"Number of Dependents": 2.0,
			"Income in Lakhs":      18.0,
			"Genetical Risk":       1.0,
			"BMI Category":         "Overweight",
			"Smoking status":       "No Smoking",
			"Gender":               "Female",
			"Maritial Status":      "Married",
			"Medical History":      "Thyroid",
			"Insurance Plan":       "Bronze",
			"Employment Status":    "Freelancer",
			"Region":               "Southeast",
		},
	}
}

func TestLoadConfig(t *testing.T) {
	assert.Equal(t, "10s", LoadConfig(config.WorkerConfig{}).Timeout.String())
	assert.Equal(t, "2.5s", LoadConfig(config.WorkerConfig{Timeout: 2500}).Timeout.String())
	assert.Equal(t, 3, LoadConfig(config.WorkerConfig{MaxRetries: 3}).MaxRetries)
}

func TestHandler_Execute_Success(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.Equal(t, 41, out.Profile.Age)
	assert.Equal(t, 2, out.Profile.Dependents)
	assert.Equal(t, models.BMIOverweight, out.Profile.BMICategory)
	assert.Equal(t, models.MaritalMarried, out.Profile.MaritalStatus)
	assert.Equal(t, models.HistoryThyroid, out.Profile.MedicalHistory)
	assert.Equal(t, models.RegionSoutheast, out.Profile.Region)
}

func TestHandler_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *Input)
	}{
		{"missing application data", func(in *Input) { in.ApplicationData = nil }},
		{"age below range", func(in *Input) { in.ApplicationData["Age"] = 17.0 }},
		{"unknown plan", func(in *Input) { in.ApplicationData["Insurance Plan"] = "Platinum" }},
		{"fractional dependents", func(in *Input) { in.ApplicationData["Number of Dependents"] = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t)
			in := createTestInput()
			tt.mutate(in)

			out, err := h.Execute(context.Background(), in)
			assert.Nil(t, out)

			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeProfileValidationFailed, stdErr.Code)
			assert.False(t, stdErr.Retryable)
		})
	}
}

func TestValidationError_ThrownAsBPMNError(t *testing.T) {
	h := createTestHandler(t)
	in := createTestInput()
	in.ApplicationData["Region"] = "Central"

	_, err := h.Execute(context.Background(), in)
	bpmn := errors.ConvertToBPMNError(errors.Normalize(err))
	assert.Equal(t, "PROFILE_VALIDATION_FAILED", bpmn.Code)
	assert.Equal(t, 0, bpmn.Retries)
}
