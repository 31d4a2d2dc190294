package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/barberbook/barber-api/internal/config"
	"github.com/barberbook/barber-api/internal/repository/postgres"
	cleanup "github.com/barberbook/barber-api/internal/worker"
	"github.com/barberbook/barber-api/pkg/logger"
	"github.com/barberbook/barber-api/pkg/messaging/redis"
	"github.com/barberbook/barber-api/pkg/metrics"
	"github.com/barberbook/barber-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(db)

	processor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		appLogger,
		metrics.NewMetrics("barberbook", "worker"),
		cfg.Outbox.ToWorkerConfig(),
	)
	pruner := cleanup.NewOutboxCleanupWorker(outboxRepo, appLogger, cfg.Outbox.RetainFor, time.Hour)

	startHealthServer(appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("shutting down worker")
		cancel()
	}()

	go pruner.Start(ctx)
	processor.Start(ctx)
}

func startHealthServer(log *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			log.Error(err, "health server failed")
		}
	}()
}
