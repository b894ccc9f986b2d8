package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"fleetadmin/config"
	"fleetadmin/internal/domain"
)

// Task types and queues.
const (
	TypePaymentReceipt = "notification:payment_receipt"
	QueueNotifications = "notifications"

	receiptMaxRetry = 5
	receiptTimeout  = time.Minute
)

// enqueuer is the subset of *asynq.Client the producer calls.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// ReceiptProducer queues payment receipts for the worker. It implements domain.ReceiptNotifier.
type ReceiptProducer struct {
	client enqueuer
}

var _ domain.ReceiptNotifier = (*ReceiptProducer)(nil)

// RedisOpt converts the Redis section of the config into asynq connection options.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
}

// NewReceiptProducer connects an asynq client to Redis.
func NewReceiptProducer(cfg config.RedisConfig) *ReceiptProducer {
	return &ReceiptProducer{client: asynq.NewClient(RedisOpt(cfg))}
}

// NewPaymentReceiptTask builds the task carrying receipt as JSON.
func NewPaymentReceiptTask(receipt *domain.PaymentReceipt) (*asynq.Task, error) {
	payload, err := json.Marshal(receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypePaymentReceipt, payload,
		asynq.MaxRetry(receiptMaxRetry),
		asynq.Queue(QueueNotifications),
		asynq.Timeout(receiptTimeout),
	), nil
}

func (p *ReceiptProducer) NotifyPaymentReceipt(ctx context.Context, receipt *domain.PaymentReceipt) error {
	if receipt == nil {
		return fmt.Errorf("payment receipt is nil")
	}
	task, err := NewPaymentReceiptTask(receipt)
	if err != nil {
		return err
	}
	// The payment ID doubles as task ID so a retried request cannot queue a second receipt.
	_, err = p.client.EnqueueContext(ctx, task, asynq.TaskID("receipt:"+receipt.PaymentID))
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (p *ReceiptProducer) Close() error {
	return p.client.Close()
}
