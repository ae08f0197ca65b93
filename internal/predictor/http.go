package predictor

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"premium-estimator/internal/common/errors"
	commonhttp "premium-estimator/internal/common/http"
	"premium-estimator/internal/common/metrics"
	"premium-estimator/internal/models"
)

var errNoPrediction = stderrors.New("response carries no prediction")

type predictRequest struct {
	InputData map[string]interface{} `json:"input_data"`
}

// predictResponse accepts {"prediction": 123.4} and {"prediction": [123.4]}.
type predictResponse struct {
	Prediction json.RawMessage `json:"prediction"`
}

func (r predictResponse) value() (float64, error) {
	if len(r.Prediction) == 0 || string(r.Prediction) == "null" {
		return 0, errNoPrediction
	}
	var n float64
	if err := json.Unmarshal(r.Prediction, &n); err == nil {
		return n, nil
	}
	var list []float64
	if err := json.Unmarshal(r.Prediction, &list); err != nil {
		return 0, fmt.Errorf("prediction is neither a number nor a list: %s", r.Prediction)
	}
	if len(list) != 1 {
		return 0, fmt.Errorf("expected exactly one prediction, got %d", len(list))
	}
	return list[0], nil
}

// HTTPPredictor calls a model server that takes the labelled feature mapping.
type HTTPPredictor struct {
	client   *commonhttp.Client
	endpoint string
	apiKey   string
	timeout  time.Duration
}

func NewHTTPPredictor(endpoint, apiKey string, timeout time.Duration) *HTTPPredictor {
	return &HTTPPredictor{
		// The per-call context enforces timeout; the client bound is a backstop.
		client:   commonhttp.NewClient(timeout + time.Second),
		endpoint: endpoint,
		apiKey:   apiKey,
		timeout:  timeout,
	}
}

// Predict returns PREDICTOR_TIMEOUT when the call outlives its own timeout
// and PREDICTION_FAILED for every other failure.
func (p *HTTPPredictor) Predict(ctx context.Context, profile models.ApplicantProfile) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	headers := map[string]string{}
	if p.apiKey != "" {
		headers["Authorization"] = "Bearer " + p.apiKey
	}

	start := time.Now()
	var resp predictResponse
	err := p.client.PostJSON(ctx, p.endpoint, headers, predictRequest{InputData: profile.Features()}, &resp)

	var premium float64
	if err == nil {
		premium, err = resp.value()
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.PredictorLatency.WithLabelValues(status).Observe(time.Since(start).Seconds())

	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, errors.NewPredictorTimeoutError(p.timeout)
		}
		return 0, errors.NewPredictionFailedError(err)
	}
	return premium, nil
}
