package recordquote

import "premium-estimator/internal/models"

type Input struct {
	RequestID        string                  `json:"requestId"`
	Profile          models.ApplicantProfile `json:"profile"`
	Premium          *float64                `json:"premium"`
	PredictionStatus string                  `json:"predictionStatus"`
	PredictionError  string                  `json:"predictionError"`
}

type Output struct {
	QuoteID    string `json:"quoteId"`
	RecordedAt string `json:"recordedAt"`
}
