package main

import (
	"context"

	"premium-estimator/internal/common/aws"
	"premium-estimator/internal/common/camunda"
	"premium-estimator/internal/common/config"
	"premium-estimator/internal/common/logger"
	"premium-estimator/internal/predictor"
	"premium-estimator/internal/presentation"
	"premium-estimator/internal/profile"
	"premium-estimator/internal/repository"
	"premium-estimator/pkg/registry"

	sqn "premium-estimator/internal/workers/communication/send-quote-notification"
	ah "premium-estimator/internal/workers/estimation/assess-health"
	ber "premium-estimator/internal/workers/estimation/build-estimate-response"
	nap "premium-estimator/internal/workers/estimation/normalize-applicant-profile"
	pp "premium-estimator/internal/workers/estimation/predict-premium"
	rq "premium-estimator/internal/workers/estimation/record-quote"
)

type workerDeps struct {
	normalizer *profile.Normalizer
	// predictor must be the bounded one (*estimate.Service).
	predictor predictor.Predictor
	presenter *presentation.Presenter
	quotes    *repository.QuoteRepository
}

func buildRegistrations(ctx context.Context, cfg *config.Config, deps workerDeps, log logger.Logger) ([]camunda.Registration, error) {
	wc := func(taskType string) config.WorkerConfig {
		return config.GetWorkerConfig(cfg, taskType)
	}

	regs := []camunda.Registration{
		{
			TaskType: nap.TaskType,
			Config:   wc(nap.TaskType),
			Handler:  nap.NewHandler(nap.LoadConfig(wc(nap.TaskType)), deps.normalizer, log),
		},
		{
			TaskType: pp.TaskType,
			Config:   wc(pp.TaskType),
			Handler:  pp.NewHandler(pp.LoadConfig(wc(pp.TaskType)), deps.predictor, log),
		},
		{
			TaskType: ah.TaskType,
			Config:   wc(ah.TaskType),
			Handler:  ah.NewHandler(ah.LoadConfig(wc(ah.TaskType)), log),
		},
		{
			TaskType: ber.TaskType,
			Config:   wc(ber.TaskType),
			Handler:  ber.NewHandler(ber.LoadConfig(wc(ber.TaskType)), deps.presenter, log),
		},
	}

	if deps.quotes != nil {
		regs = append(regs, camunda.Registration{
			TaskType: rq.TaskType,
			Config:   wc(rq.TaskType),
			Handler:  rq.NewHandler(rq.LoadConfig(wc(rq.TaskType)), deps.quotes, log),
		})
	} else {
		log.Warn("quotes disabled, record-quote worker not started", nil)
	}

	notification, err := notificationHandler(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	regs = append(regs, camunda.Registration{
		TaskType: sqn.TaskType,
		Config:   wc(sqn.TaskType),
		Handler:  notification,
	})

	return regs, nil
}

func notificationHandler(ctx context.Context, cfg *config.Config, log logger.Logger) (*sqn.Handler, error) {
	nc := cfg.Notifications
	var (
		email sqn.EmailSender
		sms   sqn.SMSSender
	)

	if nc.Email.Enabled {
		ses, err := aws.NewSESClient(ctx, nc.AWS.Region, nc.Email.FromEmail)
		if err != nil {
			return nil, err
		}
		email = ses
	}
	if nc.SMS.Enabled {
		sns, err := aws.NewSNSClient(ctx, nc.AWS.Region, nc.SMS.SenderID)
		if err != nil {
			return nil, err
		}
		sms = sns
	}

	return sqn.NewHandler(sqn.LoadConfig(nc, config.GetWorkerConfig(cfg, sqn.TaskType)), email, sms, log), nil
}

// checkRegistry warns about workers missing from the activity registry. A
// missing or broken registry file is not fatal.
func checkRegistry(path string, regs []camunda.Registration, log logger.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry not loaded", map[string]interface{}{"path": path, "error": err})
		return
	}
	if err := reg.Validate(); err != nil {
		log.Warn("activity registry invalid", map[string]interface{}{"path": path, "error": err})
		return
	}

	taskTypes := make([]string, 0, len(regs))
	for _, r := range regs {
		taskTypes = append(taskTypes, r.TaskType)
	}
	for _, tt := range reg.Unregistered(taskTypes) {
		log.Warn("worker not in activity registry", map[string]interface{}{"taskType": tt})
	}
}
