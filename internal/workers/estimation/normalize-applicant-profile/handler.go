package normalizeapplicantprofile

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"premium-estimator/internal/common/camunda"
	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/common/logger"
	"premium-estimator/internal/profile"
)

const TaskType = "normalize-applicant-profile"

type Handler struct {
	config       *Config
	normalizer   *profile.Normalizer
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, normalizer *profile.Normalizer, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		normalizer:   normalizer,
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.ApplicationData == nil {
		return nil, errors.NewProfileValidationFailedError("applicationData is required", nil)
	}

	p, err := h.normalizer.Normalize(input.ApplicationData)
	if err != nil {
		h.logger.Info("profile rejected", map[string]interface{}{
			"requestId": input.RequestID,
			"error":     err,
		})
		return nil, err
	}

	h.logger.Debug("profile normalized", map[string]interface{}{
		"requestId":     input.RequestID,
		"insurancePlan": string(p.InsurancePlan),
		"region":        string(p.Region),
	})

	return &Output{Profile: p}, nil
}
