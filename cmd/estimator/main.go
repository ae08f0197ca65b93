package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"premium-estimator/internal/api"
	"premium-estimator/internal/common/camunda"
	"premium-estimator/internal/common/config"
	"premium-estimator/internal/common/database"
	"premium-estimator/internal/common/logger"
	"premium-estimator/internal/common/observability"
	"premium-estimator/internal/estimate"
	"premium-estimator/internal/predictor"
	"premium-estimator/internal/presentation"
	"premium-estimator/internal/profile"
	"premium-estimator/internal/repository"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting premium estimator...",
		zap.String("environment", cfg.App.Environment),
		zap.String("theme", cfg.Presentation.Theme),
	)

	obsOpts := observability.Options{ServiceName: cfg.Observability.ServiceName}
	if cfg.Observability.TracingEnabled {
		obsOpts.JaegerEndpoint = cfg.Observability.JaegerEndpoint
	}
	obs, err := observability.New(obsOpts)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()
	checks := map[string]api.ReadinessCheck{}

	// --- Predictor, optionally behind the Redis cache ---
	var pred predictor.Predictor = predictor.NewHTTPPredictor(
		cfg.Predictor.Endpoint,
		cfg.Predictor.APIKey,
		config.GetDuration(cfg.Predictor.Timeout),
	)

	var rdb *database.RedisClient
	if cfg.Predictor.Cache.Enabled {
		rdb = database.NewRedis(cfg.Database.Redis)
		checks["redis"] = rdb.Ping
		pred = predictor.NewCachingPredictor(
			pred,
			rdb.Client,
			time.Duration(cfg.Predictor.Cache.TTL)*time.Second,
			cfg.Predictor.Cache.Prefix,
			log,
		)
		zapLog.Info("Predictor cache enabled", zap.String("redis", cfg.Database.Redis.Address))
	}

	// --- Quote audit log (PostgreSQL, with retry) ---
	var (
		pg     *database.PostgresClient
		quotes *repository.QuoteRepository
	)
	if cfg.Quotes.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("quotes schema setup failed", zap.Error(err))
		}
		checks["postgres"] = pg.Ping
		quotes = repository.NewQuoteRepository(pg.DB)
	}

	// --- Estimate pipeline ---
	normalizer, err := profile.NewNormalizer()
	if err != nil {
		zapLog.Fatal("profile schema failed to compile", zap.Error(err))
	}
	presenter, err := presentation.NewPresenter(cfg.Presentation.Theme)
	if err != nil {
		zapLog.Fatal("invalid presentation theme", zap.Error(err))
	}

	svcOpts := estimate.Options{
		Normalizer:     normalizer,
		Predictor:      pred,
		Presenter:      presenter,
		PredictTimeout: config.GetDuration(cfg.Predictor.Timeout),
		Observability:  obs,
		Logger:         log,
	}
	if quotes != nil && cfg.Quotes.RecordFromAPI {
		svcOpts.Quotes = quotes
	}
	svc, err := estimate.NewService(svcOpts)
	if err != nil {
		zapLog.Fatal("estimate service init failed", zap.Error(err))
	}

	apiOpts := api.Options{
		Estimator: svc,
		Checks:    checks,
		Logger:    log,
	}
	if quotes != nil {
		apiOpts.Quotes = quotes
	}

	// --- Zeebe client and job workers (with retry) ---
	var (
		zeebe   *camunda.Client
		workers []worker.JobWorker
	)
	if cfg.Camunda.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			zeebe, err = camunda.NewClient(cfg.Camunda)
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")

		checks["zeebe"] = zeebe.HealthCheck
		apiOpts.Publisher = zeebe
		apiOpts.ProcessID = cfg.Camunda.ProcessID

		regs, err := buildRegistrations(ctx, cfg, workerDeps{
			normalizer: normalizer,
			predictor:  svc,
			presenter:  presenter,
			quotes:     quotes,
		}, log)
		if err != nil {
			zapLog.Fatal("worker setup failed", zap.Error(err))
		}
		checkRegistry(cfg.Camunda.RegistryPath, regs, log)
		workers = camunda.StartWorkers(zeebe.GetClient(), regs, obs, log)
	}

	// --- HTTP API, health and metrics ---
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.NewRouter(apiOpts),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}
	if pg != nil {
		if err := pg.Close(); err != nil {
			zapLog.Error("Error closing PostgreSQL", zap.Error(err))
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			zapLog.Error("Error closing Redis", zap.Error(err))
		}
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing telemetry", zap.Error(err))
	}

	zapLog.Info("Premium estimator stopped gracefully")
}
