package predictpremium

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"premium-estimator/internal/common/camunda"
	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/common/logger"
	"premium-estimator/internal/models"
	"premium-estimator/internal/predictor"
	"premium-estimator/internal/presentation"
)

const TaskType = "predict-premium"

type Handler struct {
	config       *Config
	predictor    predictor.Predictor
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler expects the bounded predictor (*estimate.Service), so timeouts
// and panics already arrive as errors.
func NewHandler(config *Config, p predictor.Predictor, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		predictor:    p,
		errorHandler: errors.NewErrorHandler(log).WithMaxRetries(config.MaxRetries),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		err = errors.NewInputParsingFailedError(err)
		h.errorHandler.HandleJobError(context.Background(), client, job, err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(context.Background(), client, job, err)
		return err
	}

	return camunda.CompleteJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// execute never fails on a predictor error: the failure becomes part of the
// output so the response step can render it.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	premium, err := h.predictor.Predict(ctx, input.Profile)
	if err != nil {
		h.logger.Warn("prediction failed", map[string]interface{}{
			"requestId": input.RequestID,
			"error":     err,
		})
		return &Output{
			PredictionStatus: models.PredictionFailed,
			PredictionError:  presentation.FailureDetail(err),
		}, nil
	}

	h.logger.Info("premium predicted", map[string]interface{}{
		"requestId": input.RequestID,
		"premium":   premium,
	})
	return &Output{
		Premium:          &premium,
		PredictionStatus: models.PredictionSucceeded,
	}, nil
}
