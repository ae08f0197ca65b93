package buildestimateresponse

import (
	"time"

	"premium-estimator/internal/common/config"
)

type Config struct {
	Timeout    time.Duration
	MaxRetries int
}

func LoadConfig(wc config.WorkerConfig) *Config {
	timeout := time.Duration(wc.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Config{Timeout: timeout, MaxRetries: wc.MaxRetries}
}
