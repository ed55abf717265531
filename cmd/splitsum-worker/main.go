package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"splitsum/internal/amqp"
	"splitsum/internal/config"
	applog "splitsum/internal/log"
	"splitsum/internal/storage"
	"splitsum/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		applog.Setup(applog.Config{Level: "info", Format: "text"}).
			Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		applog.Setup(applog.Config{Level: "info", Format: "text"}).
			Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	logger := applog.WithComponent(
		applog.Setup(applog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}),
		applog.ComponentWorker)
	logger.Info("Starting splitsum-worker", "queue", cfg.AMQPQueue)

	// The worker reads the same database the server writes; events only
	// carry identifiers.
	repo, err := storage.New(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	relay := worker.NewRelay(repo)

	logger.Info("Consuming ledger events")
	if err := amqpClient.ConsumeEvents(ctx, relay.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Event consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
