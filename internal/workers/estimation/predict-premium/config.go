package predictpremium

import (
	"time"

	"premium-estimator/internal/common/config"
)

// Config bounds a whole job. The predictor call has its own, shorter timeout.
type Config struct {
	Timeout    time.Duration
	MaxRetries int
}

func LoadConfig(wc config.WorkerConfig) *Config {
	timeout := time.Duration(wc.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Config{Timeout: timeout, MaxRetries: wc.MaxRetries}
}
