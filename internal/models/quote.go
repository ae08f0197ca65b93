// internal/models/quote.go
package models

import "time"

type QuoteStatus string

const (
	QuoteStatusSucceeded QuoteStatus = "succeeded"
	QuoteStatusFailed    QuoteStatus = "failed"
)

// Quote is the audit record of one estimate request. It carries the outcome
// of the premium prediction only; health feedback is not stored.
type Quote struct {
	ID            string        `json:"id"`
	RequestID     string        `json:"requestId"`
	InsurancePlan InsurancePlan `json:"insurancePlan"`
	Region        Region        `json:"region"`
	Premium       *float64      `json:"premium,omitempty"`
	Status        QuoteStatus   `json:"status"`
	ErrorMessage  string        `json:"errorMessage,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Prediction outcomes passed between workflow steps.
const (
	PredictionSucceeded = "succeeded"
	PredictionFailed    = "failed"
)
