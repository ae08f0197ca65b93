// Package sendquotenotification delivers a finished estimate by email (SES)
// and SMS (SNS).
package sendquotenotification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"premium-estimator/internal/common/aws"
	"premium-estimator/internal/common/camunda"
	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/common/logger"
	"premium-estimator/internal/presentation"
)

const TaskType = "send-quote-notification"

const (
	channelEmail = "email"
	channelSMS   = "sms"
)

// EmailSender is satisfied by *aws.SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, msg aws.Email) (string, error)
}

// SMSSender is satisfied by *aws.SNSClient.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config       *Config
	email        EmailSender
	sms          SMSSender
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler accepts nil senders for disabled channels.
func NewHandler(config *Config, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		email:        email,
		sms:          sms,
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
	out := &Output{NotificationID: uuid.New().String()}

	// Error views are shown to the caller only.
	if input.Response.Status != presentation.StatusSuccess {
		out.Status = StatusSkipped
		return out, nil
	}

	if !h.config.EmailEnabled && !h.config.SMSEnabled {
		out.Status = StatusDisabled
		return out, nil
	}

	wantEmail := h.config.EmailEnabled && input.RecipientEmail != ""
	wantSMS := h.config.SMSEnabled && input.RecipientPhone != ""
	if !wantEmail && !wantSMS {
		out.Status = StatusSkipped
		return out, nil
	}

	sendEmail := wantEmail && h.email != nil
	sendSMS := wantSMS && h.sms != nil
	if !sendEmail && !sendSMS {
		out.Status = StatusDisabled
		return out, nil
	}

	var (
		sent     int
		firstErr error
	)

	if sendEmail {
		id, err := h.email.SendEmail(ctx, aws.Email{
			To:       input.RecipientEmail,
			Subject:  h.config.Subject,
			TextBody: input.Response.Text(),
		})
		if err != nil {
			firstErr = errors.NewNotificationSendFailedError(channelEmail, err)
			h.logger.Warn("email not sent", map[string]interface{}{"requestId": input.RequestID, "error": err})
		} else {
			sent++
			out.EmailMessageID = id
		}
	}

	if sendSMS {
		id, err := h.sms.SendSMS(ctx, input.RecipientPhone, smsText(input.Response))
		if err != nil {
			if firstErr == nil {
				firstErr = errors.NewNotificationSendFailedError(channelSMS, err)
			}
			h.logger.Warn("sms not sent", map[string]interface{}{"requestId": input.RequestID, "error": err})
		} else {
			sent++
			out.SMSMessageID = id
		}
	}

	// Only a total failure is retried; partial delivery completes.
	if sent == 0 {
		return nil, firstErr
	}

	out.Status = StatusSent
	if firstErr != nil {
		out.Status = StatusPartial
	}
	out.SentAt = time.Now().UTC().Format(time.RFC3339)

	h.logger.Info("notification sent", map[string]interface{}{
		"requestId":      input.RequestID,
		"notificationId": out.NotificationID,
		"status":         out.Status,
	})
	return out, nil
}

// smsText is the one-line form of a success view.
func smsText(v presentation.EstimateView) string {
	parts := []string{strings.TrimSpace(v.Title)}
	if v.Premium != nil {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Premium.Label, v.Premium.Display))
	}
	if v.Health != nil {
		parts = append(parts, fmt.Sprintf("Health score %d (%s)", v.Health.Score, v.Health.RiskTier))
	}
	return strings.Join(parts, ". ")
}
