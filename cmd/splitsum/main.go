package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"splitsum/internal/amqp"
	"splitsum/internal/config"
	apphttp "splitsum/internal/http"
	"splitsum/internal/ledger"
	applog "splitsum/internal/log"
	"splitsum/internal/storage"
	"splitsum/internal/token"
	"splitsum/internal/token/memory"
	"splitsum/internal/token/rail"
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

	logger := applog.WithComponent(
		applog.Setup(applog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}),
		applog.ComponentApp)
	logger.Info("Starting splitsum", "port", cfg.Port)

	repo, err := storage.New(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// Event publishing is optional; without a broker the ledger runs
	// standalone.
	var publisher ledger.Publisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP publishing enabled", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP publishing disabled - no AMQP_URL provided")
	}

	var transferrer token.Transferrer
	switch cfg.TokenBackend {
	case "rail":
		transferrer = rail.NewClient(cfg.TokenRailURL)
		logger.Info("Token rail backend initialized", "url", cfg.TokenRailURL)
	default:
		transferrer = memory.New()
		logger.Warn("In-memory token backend active; settlements need minted test balances")
	}

	svc := ledger.New(repo, publisher, transferrer)
	srv := apphttp.NewServer(":"+cfg.Port, svc)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
