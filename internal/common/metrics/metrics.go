package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Estimate outcomes.
const (
	OutcomeSucceeded        = "succeeded"
	OutcomePredictionFailed = "prediction_failed"
	OutcomeInvalidProfile   = "invalid_profile"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	EstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimates_total",
			Help: "Estimate requests by outcome",
		},
		[]string{"outcome"},
	)

	HealthTiers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "health_assessments_total",
			Help: "Health assessments by risk tier",
		},
		[]string{"risk_tier"},
	)

	PredictorLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "predictor_request_duration_seconds",
			Help:    "Latency of premium model calls",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)

	PredictorCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictor_cache_lookups_total",
			Help: "Predictor cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)

// JobStarted marks a job as in flight and returns a func that records its
// duration and outcome. Pass an empty errorCode for success.
func JobStarted(taskType string) func(errorCode string) {
	start := time.Now()
	WorkerJobsActive.WithLabelValues(taskType).Inc()

	return func(errorCode string) {
		WorkerJobsActive.WithLabelValues(taskType).Dec()
		WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
		if errorCode == "" {
			WorkerJobsCompleted.WithLabelValues(taskType).Inc()
			return
		}
		WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
	}
}
