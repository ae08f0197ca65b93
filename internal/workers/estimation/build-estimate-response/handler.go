package buildestimateresponse

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"premium-estimator/internal/common/camunda"
	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/common/logger"
	"premium-estimator/internal/common/metrics"
	"premium-estimator/internal/models"
	"premium-estimator/internal/presentation"
)

const TaskType = "build-estimate-response"

type Handler struct {
	config       *Config
	presenter    *presentation.Presenter
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, presenter *presentation.Presenter, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		presenter:    presenter,
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

// execute renders either the success view or the error view, never both.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.PredictionStatus == models.PredictionFailed {
		view, err := h.presenter.RenderError(input.Theme, input.RequestID, stderrors.New(input.PredictionError))
		if err != nil {
			return nil, err
		}
		metrics.EstimatesTotal.WithLabelValues(metrics.OutcomePredictionFailed).Inc()
		return &Output{Response: view}, nil
	}

	if input.Premium == nil || input.HealthAssessment == nil {
		return nil, errors.NewInputParsingFailedError(
			stderrors.New("premium and healthAssessment are required for a successful prediction"))
	}

	view, err := h.presenter.Render(input.Theme, input.RequestID, *input.Premium, *input.HealthAssessment)
	if err != nil {
		return nil, err
	}
	metrics.EstimatesTotal.WithLabelValues(metrics.OutcomeSucceeded).Inc()

	h.logger.Info("response built", map[string]interface{}{
		"requestId": input.RequestID,
		"theme":     view.Theme,
	})
	return &Output{Response: view}, nil
}
