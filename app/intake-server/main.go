// app/intake-server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsclients "benevolence-intake/internal/common/aws"
	"benevolence-intake/internal/common/config"
	"benevolence-intake/internal/common/database"
	"benevolence-intake/internal/common/logger"
	"benevolence-intake/internal/common/observability"
	"benevolence-intake/internal/common/retry"
	"benevolence-intake/internal/intake"
	"benevolence-intake/internal/rest"
	"benevolence-intake/internal/workers/application"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog, "intake-server")

	zapLog.Info("Starting intake server...", zap.String("version", cfg.App.Version))

	obs := observability.New("intake-server", zapLog)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retry.WithBackoff(func() error {
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
	defer pg.Close()
	if err := pg.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("schema setup failed", zap.Error(err))
	}

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retry.WithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()

	// --- Init Elasticsearch with retry ---
	var es *database.ElasticsearchClient
	err = retry.WithBackoff(func() error {
		var err error
		es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return es.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	if err := es.EnsureIndex(ctx, cfg.Database.Elasticsearch.Index, database.ApplicationIndexMapping); err != nil {
		zapLog.Warn("search index setup failed", zap.Error(err))
	}

	deps := application.Dependencies{
		DB:            pg.DB,
		Redis:         rdb.Client,
		Elasticsearch: es.Client,
	}
	notify := cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled
	if notify {
		aws, err := awsclients.NewClients(ctx, cfg.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws clients failed", zap.Error(err))
		}
		deps.SES = aws.SES
		deps.SNS = aws.SNS
	}

	handlers := application.NewHandlers(cfg, deps, log)
	steps := intake.Steps{
		Validate: handlers.Validate,
		Score:    handlers.Score,
		Route:    handlers.Route,
		Persist:  handlers.Persist,
		Index:    handlers.Index,
	}
	if notify {
		steps.Notify = handlers.Notify
	}

	service := intake.NewService(&intake.Config{
		StepTimeout: config.GetDuration(cfg.Intake.StepTimeout),
	}, steps, log).WithObservability(obs)
	if cfg.Intake.RateLimit.Enabled {
		service.WithRateLimiter(intake.NewRateLimiter(rdb.Client, cfg.Intake.RateLimit.Requests, cfg.Intake.RateLimit.Window()))
	}

	apps := rest.NewApplicationHandler(service, rest.UploadLimits{
		MaxFileSize: cfg.Intake.MaxFileSize,
		MaxFiles:    cfg.Intake.MaxFiles,
	}, 6*config.GetDuration(cfg.Intake.StepTimeout), log)

	health := rest.NewHealthHandler(map[string]rest.Check{
		"postgres":      pg.Ping,
		"redis":         rdb.Ping,
		"elasticsearch": es.Ping,
	})

	e := rest.NewServer(cfg.Server, apps, health, log)

	go func() {
		zapLog.Info("Intake server listening", zap.String("address", cfg.Server.Address))
		if err := e.Start(cfg.Server.Address); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("intake server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down server", zap.Error(err))
	}
	zapLog.Info("Intake server stopped gracefully")
}
