package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"premium-estimator/internal/common/config"
	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/common/logger"
	"premium-estimator/internal/common/metrics"
)

// JobHandler settles a job (complete, fail or throw) and reports the error
// that caused a non-completion, if any.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

// JobRecorder receives per-job outcomes in addition to the Prometheus
// worker metrics. *observability.Observability satisfies it.
type JobRecorder interface {
	RecordJobProcessed(ctx context.Context, taskType, status string)
	RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string)
}

// Registration binds a task type to its handler and worker settings.
type Registration struct {
	TaskType string
	Config   config.WorkerConfig
	Handler  JobHandler
}

// StartWorkers opens one job worker per enabled registration. The returned
// workers must be closed on shutdown. rec may be nil.
func StartWorkers(client zbc.Client, regs []Registration, rec JobRecorder, log logger.Logger) []worker.JobWorker {
	started := make([]worker.JobWorker, 0, len(regs))

	for _, reg := range regs {
		if !reg.Config.Enabled {
			log.Info("worker disabled", map[string]interface{}{"taskType": reg.TaskType})
			continue
		}

		jw := client.NewJobWorker().
			JobType(reg.TaskType).
			Handler(instrument(reg.TaskType, reg.Handler, rec, log)).
			MaxJobsActive(reg.Config.MaxJobsActive).
			Timeout(time.Duration(reg.Config.Timeout) * time.Millisecond).
			Open()
		started = append(started, jw)

		log.Info("worker started", map[string]interface{}{
			"taskType":      reg.TaskType,
			"maxJobsActive": reg.Config.MaxJobsActive,
			"timeout_ms":    reg.Config.Timeout,
		})
	}

	return started
}

// instrument adapts a JobHandler to the Zeebe handler signature and records
// the worker_* Prometheus metrics for every job.
func instrument(taskType string, h JobHandler, rec JobRecorder, log logger.Logger) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		done := metrics.JobStarted(taskType)
		start := time.Now()

		err := h.Handle(client, job)

		status := "completed"
		code := ""
		if err != nil {
			status = "failed"
			code = string(errors.Normalize(err).Code)
			log.Warn("job not completed", map[string]interface{}{
				"taskType":  taskType,
				"jobKey":    job.Key,
				"errorCode": code,
			})
		}
		done(code)

		if rec != nil {
			ctx := context.Background()
			rec.RecordJobProcessed(ctx, taskType, status)
			rec.RecordJobDuration(ctx, taskType, time.Since(start), status)
		}
	}
}
