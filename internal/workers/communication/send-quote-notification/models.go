package sendquotenotification

import "premium-estimator/internal/presentation"

const (
	StatusSent     = "sent"
	StatusPartial  = "partial"
	StatusSkipped  = "skipped"
	StatusDisabled = "disabled"
)

type Input struct {
	RequestID      string                    `json:"requestId"`
	RecipientEmail string                    `json:"recipientEmail"`
	RecipientPhone string                    `json:"recipientPhone"`
	Response       presentation.EstimateView `json:"response"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"`
	SentAt         string `json:"sentAt,omitempty"`
	EmailMessageID string `json:"emailMessageId,omitempty"`
	SMSMessageID   string `json:"smsMessageId,omitempty"`
}
