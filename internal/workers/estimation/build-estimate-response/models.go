package buildestimateresponse

import (
	"premium-estimator/internal/models"
	"premium-estimator/internal/presentation"
)

type Input struct {
	RequestID        string                   `json:"requestId"`
	Premium          *float64                 `json:"premium"`
	PredictionStatus string                   `json:"predictionStatus"`
	PredictionError  string                   `json:"predictionError"`
	HealthAssessment *models.HealthAssessment `json:"healthAssessment"`
	// Theme may be empty; the presenter default applies.
	Theme string `json:"theme"`
}

type Output struct {
	Response presentation.EstimateView `json:"response"`
}
