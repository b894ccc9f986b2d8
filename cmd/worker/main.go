package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fleetadmin/config"
	"fleetadmin/internal/adapters/email"
	"fleetadmin/internal/adapters/queue"
	"fleetadmin/internal/services"
)

const concurrency = 4

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stdout, cfg.App.Environment, cfg.Log.Level)
	slog.SetDefault(logger)

	if !cfg.Redis.Enabled() {
		logger.Error("REDIS_ADDR is required for the worker")
		os.Exit(1)
	}

	mailer := email.NewMailer(cfg.Mailer, logger)
	sender := services.NewReceiptMailer(mailer, email.NewTemplateRenderer(), logger)
	consumer := queue.NewConsumer(cfg.Redis, concurrency, queue.NewReceiptHandler(sender, logger), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(); err != nil {
		logger.Error("failed to start consumer", "err", err)
		os.Exit(1)
	}
	logger.Info("worker started", "redis_addr", cfg.Redis.Addr, "concurrency", concurrency)

	<-ctx.Done()
	consumer.Stop()
	logger.Info("worker stopped")
}
