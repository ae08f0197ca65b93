package assesshealth

import "premium-estimator/internal/models"

type Input struct {
	RequestID string                  `json:"requestId"`
	Profile   models.ApplicantProfile `json:"profile"`
}

type Output struct {
	HealthAssessment models.HealthAssessment `json:"healthAssessment"`
}
