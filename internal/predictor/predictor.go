// Package predictor defines the premium model capability and its backings:
// a remote HTTP model server, a Redis read-through cache and a func adapter.
package predictor

import (
	"context"

	"premium-estimator/internal/models"
)

// Predictor produces a premium estimate for a profile. Implementations may
// fail for any reason; callers own the error boundary.
type Predictor interface {
	Predict(ctx context.Context, profile models.ApplicantProfile) (float64, error)
}

// Func adapts an ordinary function to Predictor.
type Func func(ctx context.Context, profile models.ApplicantProfile) (float64, error)

func (f Func) Predict(ctx context.Context, profile models.ApplicantProfile) (float64, error) {
	return f(ctx, profile)
}
