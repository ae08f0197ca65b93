package predictpremium

import "premium-estimator/internal/models"

type Input struct {
	RequestID string                  `json:"requestId"`
	Profile   models.ApplicantProfile `json:"profile"`
}

// Output always completes the job. Premium is null and PredictionError set
// when the model call failed.
type Output struct {
	Premium          *float64 `json:"premium"`
	PredictionStatus string   `json:"predictionStatus"`
	PredictionError  string   `json:"predictionError,omitempty"`
}
