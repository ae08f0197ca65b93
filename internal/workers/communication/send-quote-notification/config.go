package sendquotenotification

import (
	"time"

	"premium-estimator/internal/common/config"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	Subject      string
	Timeout      time.Duration
	MaxRetries   int
}

func LoadConfig(nc config.NotificationConfig, wc config.WorkerConfig) *Config {
	timeout := time.Duration(wc.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	subject := nc.Email.Subject
	if subject == "" {
		subject = "Your premium estimate"
	}
	return &Config{
		EmailEnabled: nc.Email.Enabled,
		SMSEnabled:   nc.SMS.Enabled,
		Subject:      subject,
		Timeout:      timeout,
		MaxRetries:   wc.MaxRetries,
	}
}
