package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/common/logger"
	"premium-estimator/internal/estimate"
	"premium-estimator/internal/models"
	"premium-estimator/internal/predictor"
	"premium-estimator/internal/presentation"
	"premium-estimator/internal/profile"
	"premium-estimator/internal/repository"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// ==========================
// Mocks
// ==========================

type MockQuotes struct {
	mock.Mock
}

func (m *MockQuotes) GetByRequestID(ctx context.Context, requestID string) (models.Quote, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).(models.Quote), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEstimateRequest(ctx context.Context, processID string, variables map[string]interface{}) (int64, error) {
	args := m.Called(ctx, processID, variables)
	return args.Get(0).(int64), args.Error(1)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestService(t *testing.T, p predictor.Predictor) *estimate.Service {
	t.Helper()
	n, err := profile.NewNormalizer()
	require.NoError(t, err)
	presenter, err := presentation.NewPresenter(presentation.ThemeOcean)
	require.NoError(t, err)

	svc, err := estimate.NewService(estimate.Options{
		Normalizer:     n,
		Predictor:      p,
		Presenter:      presenter,
		PredictTimeout: time.Second,
		Logger:         logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return svc
}

func createTestRouter(t *testing.T, p predictor.Predictor, opts Options) *gin.Engine {
	t.Helper()
	opts.Estimator = createTestService(t, p)
	opts.Logger = logger.NewTestLogger(t)
	return NewRouter(opts)
}

func healthyApplicant() map[string]interface{} {
	return map[string]interface{}{
		"age":               30,
		"dependents":        0,
		"income":            12.5,
		"genetical_risk":    0,
		"bmi_category":      "Normal",
		"smoking_status":    "No Smoking",
		"gender":            "Female",
		"marital_status":    "Unmarried",
		"medical_history":   "No Disease",
		"insurance_plan":    "Silver",
		"employment_status": "Salaried",
		"region":            "Southwest",
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func fixedPremium(v float64) predictor.Predictor {
	return predictor.Func(func(context.Context, models.ApplicantProfile) (float64, error) {
		return v, nil
	})
}

// ==========================
// Estimate Endpoint
// ==========================

func TestCreateEstimate_Success(t *testing.T) {
	r := createTestRouter(t, fixedPremium(12345.5), Options{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/estimates", healthyApplicant())
	require.Equal(t, http.StatusOK, w.Code)

	var view presentation.EstimateView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, presentation.StatusSuccess, view.Status)
	assert.Equal(t, presentation.ThemeOcean, view.Theme)
	assert.Equal(t, "12,346", view.Premium.Display)
	assert.Equal(t, 10, view.Health.Score)
	assert.Equal(t, models.RiskTierGood, view.Health.RiskTier)
	assert.Len(t, view.Health.Tips, 1)
}

func TestCreateEstimate_ThemeQuery(t *testing.T) {
	r := createTestRouter(t, fixedPremium(1000), Options{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/estimates?theme=classic", healthyApplicant())
	require.Equal(t, http.StatusOK, w.Code)

	var view presentation.EstimateView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, presentation.ThemeClassic, view.Theme)
}

func TestCreateEstimate_PredictorFailure(t *testing.T) {
	failing := predictor.Func(func(context.Context, models.ApplicantProfile) (float64, error) {
		return 0, fmt.Errorf("connection refused")
	})
	r := createTestRouter(t, failing, Options{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/estimates", healthyApplicant())
	require.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, presentation.StatusError, body["status"])
	assert.Equal(t, "❌ Prediction failed: connection refused", body["error"])
	assert.NotContains(t, body, "premium")
	assert.NotContains(t, body, "health")
}

func TestCreateEstimate_BadInput(t *testing.T) {
	r := createTestRouter(t, fixedPremium(1), Options{})

	outOfRange := healthyApplicant()
	outOfRange["dependents"] = 9

	tests := []struct {
		name     string
		path     string
		body     interface{}
		wantCode errors.ErrorCode
	}{
		{"out of range", "/api/v1/estimates", outOfRange, errors.ErrCodeProfileValidationFailed},
		{"not an object", "/api/v1/estimates", []int{1, 2}, errors.ErrCodeProfileValidationFailed},
		{"unknown theme", "/api/v1/estimates?theme=neon", healthyApplicant(), errors.ErrCodeThemeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var stdErr errors.StandardError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stdErr))
			assert.Equal(t, tt.wantCode, stdErr.Code)
		})
	}
}

func TestCreateEstimate_ReportsFieldErrors(t *testing.T) {
	r := createTestRouter(t, fixedPremium(1), Options{})

	raw := healthyApplicant()
	raw["region"] = "Midwest"
	delete(raw, "age")

	w := doJSON(t, r, http.MethodPost, "/api/v1/estimates", raw)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var stdErr errors.StandardError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stdErr))
	fieldErrs, ok := stdErr.Metadata["errors"].([]interface{})
	require.True(t, ok)
	assert.Len(t, fieldErrs, 2)
}

func TestListThemes(t *testing.T) {
	r := createTestRouter(t, fixedPremium(1), Options{})

	w := doJSON(t, r, http.MethodGet, "/api/v1/themes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"themes":["classic","ocean"]}`, w.Body.String())
}

// ==========================
// Quotes and Async Endpoints
// ==========================

func TestGetQuote(t *testing.T) {
	premium := 4200.0
	quotes := new(MockQuotes)
	quotes.On("GetByRequestID", mock.Anything, "req-1").Return(models.Quote{
		ID: "q-1", RequestID: "req-1", Premium: &premium, Status: models.QuoteStatusSucceeded,
	}, nil)
	quotes.On("GetByRequestID", mock.Anything, "missing").Return(models.Quote{}, repository.ErrQuoteNotFound)

	r := createTestRouter(t, fixedPremium(1), Options{Quotes: quotes})

	w := doJSON(t, r, http.MethodGet, "/api/v1/quotes/req-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var q models.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, "q-1", q.ID)
	assert.Equal(t, 4200.0, *q.Premium)

	w = doJSON(t, r, http.MethodGet, "/api/v1/quotes/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	quotes.AssertExpectations(t)
}

func TestQuotesRoute_AbsentWithoutRepository(t *testing.T) {
	r := createTestRouter(t, fixedPremium(1), Options{})

	w := doJSON(t, r, http.MethodGet, "/api/v1/quotes/req-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateEstimateAsync(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishEstimateRequest", mock.Anything, "premium-estimate", mock.MatchedBy(func(v map[string]interface{}) bool {
		return v["requestId"] != "" && v["theme"] == "classic" && v["recipientEmail"] == "a@example.com"
	})).Return(int64(2251799813685249), nil)

	r := createTestRouter(t, fixedPremium(1), Options{Publisher: pub, ProcessID: "premium-estimate"})

	w := doJSON(t, r, http.MethodPost, "/api/v1/estimates/async", map[string]interface{}{
		"applicationData": healthyApplicant(),
		"theme":           "classic",
		"recipientEmail":  "a@example.com",
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp AsyncEstimateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, int64(2251799813685249), resp.ProcessInstanceKey)
	pub.AssertExpectations(t)
}

func TestCreateEstimateAsync_Rejections(t *testing.T) {
	pub := new(MockPublisher)
	r := createTestRouter(t, fixedPremium(1), Options{Publisher: pub, ProcessID: "premium-estimate"})

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing application data", map[string]interface{}{"theme": "ocean"}},
		{"bad email", map[string]interface{}{"applicationData": healthyApplicant(), "recipientEmail": "nope"}},
		{"unknown theme", map[string]interface{}{"applicationData": healthyApplicant(), "theme": "neon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/estimates/async", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	pub.AssertNotCalled(t, "PublishEstimateRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateEstimateAsync_EngineUnavailable(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishEstimateRequest", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), errors.NewExternalServiceError("zeebe", fmt.Errorf("unavailable")))

	r := createTestRouter(t, fixedPremium(1), Options{Publisher: pub, ProcessID: "premium-estimate"})

	w := doJSON(t, r, http.MethodPost, "/api/v1/estimates/async", map[string]interface{}{
		"applicationData": healthyApplicant(),
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

// ==========================
// Operational Endpoints
// ==========================

func TestHealth(t *testing.T) {
	r := createTestRouter(t, fixedPremium(1), Options{})

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]ReadinessCheck
		wantStatus int
	}{
		{"no checks", nil, http.StatusOK},
		{
			"all pass",
			map[string]ReadinessCheck{"redis": func(context.Context) error { return nil }},
			http.StatusOK,
		},
		{
			"one fails",
			map[string]ReadinessCheck{
				"redis":    func(context.Context) error { return nil },
				"postgres": func(context.Context) error { return fmt.Errorf("dial tcp: refused") },
			},
			http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := createTestRouter(t, fixedPremium(1), Options{Checks: tt.checks})
			w := doJSON(t, r, http.MethodGet, "/ready", nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Contains(t, w.Body.String(), "postgres")
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := createTestRouter(t, fixedPremium(1), Options{})
	doJSON(t, r, http.MethodPost, "/api/v1/estimates", healthyApplicant())

	w := doJSON(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "estimates_total")
}
