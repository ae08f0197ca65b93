package normalizeapplicantprofile

import "premium-estimator/internal/models"

// Input carries the raw form fields, keyed by canonical names or form labels.
type Input struct {
	RequestID       string                 `json:"requestId"`
	ApplicationData map[string]interface{} `json:"applicationData"`
}

type Output struct {
	Profile models.ApplicantProfile `json:"profile"`
}
