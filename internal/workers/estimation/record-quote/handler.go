package recordquote

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"premium-estimator/internal/common/camunda"
	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/common/logger"
	"premium-estimator/internal/models"
	"premium-estimator/internal/repository"
)

const TaskType = "record-quote"

// Recorder is satisfied by *repository.QuoteRepository.
type Recorder interface {
	Record(ctx context.Context, q models.Quote) (models.Quote, error)
}

type Handler struct {
	config       *Config
	quotes       Recorder
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, quotes Recorder, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		quotes:       quotes,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.RequestID == "" {
		return nil, errors.NewInputParsingFailedError(stderrors.New("requestId is required"))
	}

	premium := input.Premium
	if input.PredictionStatus == models.PredictionFailed {
		premium = nil
	}

	q, err := h.quotes.Record(ctx, repository.NewQuote(input.RequestID, input.Profile, premium, input.PredictionError))
	if err != nil {
		return nil, err
	}

	h.logger.Info("quote recorded", map[string]interface{}{
		"requestId": input.RequestID,
		"quoteId":   q.ID,
		"status":    string(q.Status),
	})

	return &Output{
		QuoteID:    q.ID,
		RecordedAt: q.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}
