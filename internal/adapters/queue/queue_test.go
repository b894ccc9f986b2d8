package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetadmin/internal/domain"
)

type fakeEnqueuer struct {
	task   *asynq.Task
	opts   []asynq.Option
	err    error
	closed bool
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.task, f.opts = task, opts
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{ID: "receipt:pay-1", Queue: QueueNotifications}, nil
}

func (f *fakeEnqueuer) Close() error {
	f.closed = true
	return nil
}

type fakeNotifier struct {
	got *domain.PaymentReceipt
	err error
}

func (f *fakeNotifier) NotifyPaymentReceipt(_ context.Context, r *domain.PaymentReceipt) error {
	f.got = r
	return f.err
}

func sampleReceipt() *domain.PaymentReceipt {
	return &domain.PaymentReceipt{
		PaymentID:      "pay-1",
		ContractNumber: "FC-20260110-AB12",
		CustomerName:   "Ana Pérez",
		CustomerEmail:  "ana@example.com",
		Amount:         "$1250.50",
		Method:         "card",
		PaidAt:         "05 Mar 2026, 14:30",
	}
}

func TestReceiptProducer_Enqueues(t *testing.T) {
	client := &fakeEnqueuer{}
	p := &ReceiptProducer{client: client}

	require.NoError(t, p.NotifyPaymentReceipt(context.Background(), sampleReceipt()))

	require.NotNil(t, client.task)
	assert.Equal(t, TypePaymentReceipt, client.task.Type())
	var decoded domain.PaymentReceipt
	require.NoError(t, json.Unmarshal(client.task.Payload(), &decoded))
	assert.Equal(t, *sampleReceipt(), decoded)
	require.Len(t, client.opts, 1)
	assert.Equal(t, "receipt:pay-1", client.opts[0].Value())

	require.NoError(t, p.Close())
	assert.True(t, client.closed)
}

func TestReceiptProducer_Errors(t *testing.T) {
	p := &ReceiptProducer{client: &fakeEnqueuer{err: errors.New("redis: connection refused")}}
	err := p.NotifyPaymentReceipt(context.Background(), sampleReceipt())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	require.Error(t, p.NotifyPaymentReceipt(context.Background(), nil))
}

func TestReceiptProducer_DuplicateIsNotAnError(t *testing.T) {
	p := &ReceiptProducer{client: &fakeEnqueuer{err: asynq.ErrTaskIDConflict}}
	assert.NoError(t, p.NotifyPaymentReceipt(context.Background(), sampleReceipt()))
}

func TestReceiptHandler_ProcessTask(t *testing.T) {
	task, err := NewPaymentReceiptTask(sampleReceipt())
	require.NoError(t, err)

	tests := []struct {
		name         string
		task         *asynq.Task
		notifierErr  error
		wantErr      bool
		wantSkip     bool
		wantNotified bool
	}{
		{name: "delivers receipt", task: task, wantNotified: true},
		{name: "send failure is retried", task: task, notifierErr: errors.New("ses throttled"), wantErr: true, wantNotified: true},
		{name: "malformed payload", task: asynq.NewTask(TypePaymentReceipt, []byte("{")), wantErr: true, wantSkip: true},
		{name: "missing recipient", task: asynq.NewTask(TypePaymentReceipt, []byte(`{"payment_id":"pay-1"}`)), wantErr: true, wantSkip: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeNotifier{err: tt.notifierErr}
			h := NewReceiptHandler(notifier, slog.New(slog.DiscardHandler))

			err := h.ProcessTask(context.Background(), tt.task)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantSkip, errors.Is(err, asynq.SkipRetry))
			if tt.wantNotified {
				require.NotNil(t, notifier.got)
				assert.Equal(t, "ana@example.com", notifier.got.CustomerEmail)
			} else {
				assert.Nil(t, notifier.got)
			}
		})
	}
}

func TestAsynqLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newAsynqLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	exitCode := -1
	l.exit = func(code int) { exitCode = code }

	l.Info("scheduler ", "started")
	l.Fatal("redis gone")

	out := buf.String()
	assert.Contains(t, out, `msg="scheduler started"`)
	assert.Contains(t, out, "component=asynq")
	assert.Contains(t, out, `msg="redis gone"`)
	assert.Equal(t, 1, exitCode)
}
