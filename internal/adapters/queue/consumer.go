package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"fleetadmin/config"
	"fleetadmin/internal/domain"
)

// ReceiptHandler delivers queued payment receipts through a notifier that sends them directly.
type ReceiptHandler struct {
	notifier domain.ReceiptNotifier
	logger   *slog.Logger
}

func NewReceiptHandler(notifier domain.ReceiptNotifier, logger *slog.Logger) *ReceiptHandler {
	return &ReceiptHandler{notifier: notifier, logger: logger.With("component", "receipt_worker")}
}

// ProcessTask implements asynq.Handler. Malformed payloads are not retried.
func (h *ReceiptHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var receipt domain.PaymentReceipt
	if err := json.Unmarshal(t.Payload(), &receipt); err != nil {
		h.logger.ErrorContext(ctx, "failed to unmarshal payload", "err", err, "payload", string(t.Payload()))
		return fmt.Errorf("unmarshal payment receipt: %v: %w", err, asynq.SkipRetry)
	}
	if receipt.PaymentID == "" || receipt.CustomerEmail == "" {
		h.logger.ErrorContext(ctx, "incomplete payment receipt", "payment_id", receipt.PaymentID)
		return fmt.Errorf("incomplete payment receipt: %w", asynq.SkipRetry)
	}

	h.logger.InfoContext(ctx, "processing payment receipt", "payment_id", receipt.PaymentID)
	if err := h.notifier.NotifyPaymentReceipt(ctx, &receipt); err != nil {
		h.logger.ErrorContext(ctx, "failed to send payment receipt", "payment_id", receipt.PaymentID, "err", err)
		return err
	}
	return nil
}

// Consumer runs the asynq server for notification tasks.
type Consumer struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

// NewConsumer creates an asynq server bound to Redis and registers the receipt handler.
func NewConsumer(cfg config.RedisConfig, concurrency int, receipts *ReceiptHandler, logger *slog.Logger) *Consumer {
	server := asynq.NewServer(RedisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			QueueNotifications: 10,
			"default":          1,
		},
		Logger: newAsynqLogger(logger),
	})
	mux := asynq.NewServeMux()
	mux.Handle(TypePaymentReceipt, receipts)
	return &Consumer{server: server, mux: mux, logger: logger}
}

// Start begins processing tasks in the background.
func (c *Consumer) Start() error {
	c.logger.Info("starting task consumer")
	return c.server.Start(c.mux)
}

// Stop stops pulling new tasks and waits for active ones to finish.
func (c *Consumer) Stop() {
	c.logger.Info("stopping task consumer")
	c.server.Stop()
	c.server.Shutdown()
}
