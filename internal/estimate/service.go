// Package estimate runs one estimate request end to end: normalize, predict,
// assess, render and record.
package estimate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/common/logger"
	"premium-estimator/internal/common/metrics"
	"premium-estimator/internal/common/observability"
	"premium-estimator/internal/health"
	"premium-estimator/internal/models"
	"premium-estimator/internal/predictor"
	"premium-estimator/internal/presentation"
	"premium-estimator/internal/profile"
	"premium-estimator/internal/repository"
)

// QuoteRecorder stores request outcomes. *repository.QuoteRepository
// satisfies it.
type QuoteRecorder interface {
	Record(ctx context.Context, q models.Quote) (models.Quote, error)
}

type Options struct {
	Normalizer     *profile.Normalizer
	Predictor      predictor.Predictor
	Presenter      *presentation.Presenter
	PredictTimeout time.Duration
	// Quotes is optional; nil disables recording.
	Quotes        QuoteRecorder
	Observability *observability.Observability
	Logger        logger.Logger
}

type Service struct {
	normalizer     *profile.Normalizer
	predictor      predictor.Predictor
	presenter      *presentation.Presenter
	predictTimeout time.Duration
	quotes         QuoteRecorder
	obs            *observability.Observability
	logger         logger.Logger
}

// Result is the outcome of one request. PredictionErr is set (and View is
// the error view) when the premium model failed; that is not an error of
// Estimate itself.
type Result struct {
	RequestID     string
	View          presentation.EstimateView
	PredictionErr error
}

func NewService(opts Options) (*Service, error) {
	if opts.Normalizer == nil || opts.Predictor == nil || opts.Presenter == nil {
		return nil, fmt.Errorf("estimate: normalizer, predictor and presenter are required")
	}
	if opts.PredictTimeout <= 0 {
		return nil, fmt.Errorf("estimate: predict timeout must be positive")
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	obs := opts.Observability
	if obs == nil {
		obs = &observability.Observability{}
	}

	return &Service{
		normalizer:     opts.Normalizer,
		predictor:      opts.Predictor,
		presenter:      opts.Presenter,
		predictTimeout: opts.PredictTimeout,
		quotes:         opts.Quotes,
		obs:            obs,
		logger:         log.WithFields(map[string]interface{}{"component": "estimate"}),
	}, nil
}

// Estimate returns an error only for bad input (PROFILE_VALIDATION_FAILED,
// THEME_NOT_FOUND). Predictor failures come back inside Result.
func (s *Service) Estimate(ctx context.Context, raw map[string]interface{}, theme string) (*Result, error) {
	requestID := uuid.New().String()

	ctx, span := s.obs.StartSpan(ctx, "estimate", attribute.String("requestId", requestID))
	defer span.End()

	p, err := s.normalizer.Normalize(raw)
	if err != nil {
		metrics.EstimatesTotal.WithLabelValues(metrics.OutcomeInvalidProfile).Inc()
		span.SetStatus(codes.Error, "invalid profile")
		s.logger.Info("profile rejected", map[string]interface{}{"requestId": requestID, "error": err})
		return nil, err
	}

	if theme != "" {
		if _, err := presentation.LookupTheme(theme); err != nil {
			span.SetStatus(codes.Error, "unknown theme")
			return nil, err
		}
	}

	premium, predErr := s.Predict(ctx, p)
	if predErr != nil {
		metrics.EstimatesTotal.WithLabelValues(metrics.OutcomePredictionFailed).Inc()
		span.RecordError(predErr)
		s.logger.Warn("prediction failed", map[string]interface{}{
			"requestId": requestID,
			"error":     predErr,
		})

		view, err := s.presenter.RenderError(theme, requestID, predErr)
		if err != nil {
			return nil, err
		}
		s.record(ctx, repository.NewQuote(requestID, p, nil, presentation.FailureDetail(predErr)))
		return &Result{RequestID: requestID, View: view, PredictionErr: predErr}, nil
	}

	assessment := health.Assess(p)
	metrics.HealthTiers.WithLabelValues(string(assessment.RiskTier)).Inc()
	s.obs.RecordHealthScore(ctx, assessment.Score, string(assessment.RiskTier))

	view, err := s.presenter.Render(theme, requestID, premium, assessment)
	if err != nil {
		return nil, err
	}

	metrics.EstimatesTotal.WithLabelValues(metrics.OutcomeSucceeded).Inc()
	s.record(ctx, repository.NewQuote(requestID, p, &premium, ""))

	s.logger.Info("estimate complete", map[string]interface{}{
		"requestId": requestID,
		"riskTier":  string(assessment.RiskTier),
	})
	return &Result{RequestID: requestID, View: view}, nil
}

// Predict is the error boundary around the model call: it bounds the call
// with its own timeout and turns panics into errors.
func (s *Service) Predict(ctx context.Context, p models.ApplicantProfile) (premium float64, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.predictTimeout)
	defer cancel()

	ctx, span := s.obs.StartSpan(ctx, "predict")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			premium = 0
			err = errors.NewPredictionFailedError(fmt.Errorf("predictor panicked: %v", r))
		}
	}()

	premium, err = s.predictor.Predict(ctx, p)
	if err != nil {
		if _, ok := errors.AsStandardError(err); !ok {
			if ctx.Err() == context.DeadlineExceeded {
				return 0, errors.NewPredictorTimeoutError(s.predictTimeout)
			}
			return 0, errors.NewPredictionFailedError(err)
		}
		return 0, err
	}
	return premium, nil
}

// record is best-effort: a lost audit row never changes the response.
func (s *Service) record(ctx context.Context, q models.Quote) {
	if s.quotes == nil {
		return
	}
	if _, err := s.quotes.Record(ctx, q); err != nil {
		s.logger.Warn("quote not recorded", map[string]interface{}{
			"requestId": q.RequestID,
			"error":     err,
		})
	}
}
